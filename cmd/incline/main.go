package main

import (
	"fmt"
	"github.com/BurntSushi/toml"
	"github.com/alexflint/go-arg"
	"github.com/cheggaaa/pb/v3"
	"github.com/go-errors/errors"
	"github.com/incline-ml/incline"
	"github.com/incline-ml/incline/benchmark"
	"github.com/incline-ml/incline/learner"
	"github.com/incline-ml/incline/measure"
	"github.com/incline-ml/incline/output"
	"github.com/incline-ml/incline/resample"
	"github.com/incline-ml/incline/task"
	"github.com/incline-ml/incline/viz"
	"github.com/peterbourgon/diskv"
	"log"
	"os"
	"strings"
)

var (
	name    = "incline"
	version = "04.Feb.2021"
	author  = "incline-ml"
)

type args struct {
	NoPlot      bool     `help:"do not send plots to the rendering service" arg:"-n"`
	Experiments []string `help:"experiment files to run" arg:"required,positional"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s`, name, author, version)
}

// experiment is the TOML description of one learning curve run.
type experiment struct {
	Task        task.Task         `toml:"task"`
	Resampling  resampling        `toml:"resampling"`
	Learners    []learner.Learner `toml:"learners"`
	Percentages []float64         `toml:"percentages"`
	Measures    []string          `toml:"measures"`
	Stratify    bool              `toml:"stratify"`
	Benchmark   backend           `toml:"benchmark"`
	Output      files             `toml:"output"`
	Plot        plot              `toml:"plot"`
}

type resampling struct {
	Method     string  `toml:"method"`
	Iterations int     `toml:"iterations"`
	Split      float64 `toml:"split"`
	Folds      int     `toml:"folds"`
}

type backend struct {
	Address    string `toml:"address"`
	Properties string `toml:"properties"`
	Replay     string `toml:"replay"`
	Cache      string `toml:"cache"`
}

type files struct {
	JSON string `toml:"json"`
	CSV  string `toml:"csv"`
}

type plot struct {
	Address string `toml:"address"`
	Facet   string `toml:"facet"`
	Pretty  bool   `toml:"pretty"`
}

func main() {
	var args args
	arg.MustParse(&args)

	bar := pb.New(len(args.Experiments))
	bar.Start()
	for _, file := range args.Experiments {
		err := run(file, args.NoPlot)
		if err != nil {
			log.Fatalln(errors.Wrap(err, 0).ErrorStack())
		}
		bar.Increment()
	}
	bar.Finish()
}

func run(file string, noPlot bool) error {
	log.Printf("loading experiment %s...", file)
	f, err := os.OpenFile(file, os.O_RDONLY, 0664)
	if err != nil {
		return err
	}

	var e experiment
	_, err = toml.DecodeReader(f, &e)
	if err != nil {
		return err
	}

	measures, err := resolveMeasures(e.Measures)
	if err != nil {
		return err
	}

	strategy, err := newStrategy(e.Resampling)
	if err != nil {
		return err
	}

	runner, err := newRunner(e.Benchmark)
	if err != nil {
		return err
	}

	log.Println("generating learning curve...")
	result, err := incline.Curve{
		Learners:    e.Learners,
		Task:        e.Task,
		Resampling:  strategy,
		Percentages: e.Percentages,
		Measures:    measures,
		Stratify:    e.Stratify,
	}.Generate(runner)
	if err != nil {
		return err
	}

	fmt.Println(result)

	if len(e.Output.JSON) > 0 {
		v, err := output.JSONCurveFormatter(result)
		if err != nil {
			return err
		}
		err = write(e.Output.JSON, v)
		if err != nil {
			return err
		}
	}

	if len(e.Output.CSV) > 0 {
		v, err := output.CSVCurveFormatter(result)
		if err != nil {
			return err
		}
		err = write(e.Output.CSV, v)
		if err != nil {
			return err
		}
	}

	if len(e.Plot.Address) > 0 && !noPlot {
		return send(result, e.Plot)
	}

	return nil
}

// resolveMeasures maps the measure names of an experiment file to built-in
// measures. A name is either an identifier ("acc") or an identifier followed
// by an aggregation suffix ("acc.test.sd").
func resolveMeasures(names []string) ([]measure.Measure, error) {
	catalog := measure.Builtin()
	measures := make([]measure.Measure, len(names))
	for i, n := range names {
		id, suffix := n, ""
		if j := strings.Index(n, "."); j > 0 {
			id, suffix = n[:j], n[j+1:]
		}
		m, ok := catalog[id]
		if !ok {
			return nil, errors.New(fmt.Sprintf("%s is not a built-in measure", n))
		}
		if len(suffix) > 0 {
			a, ok := measure.LookupAggregation(suffix)
			if !ok {
				return nil, errors.New(fmt.Sprintf("%s is not a known aggregation", suffix))
			}
			m.Aggr = a
		}
		measures[i] = m
	}
	return measures, nil
}

func newStrategy(r resampling) (resample.Strategy, error) {
	switch r.Method {
	case "":
		// Generate falls back to the default holdout split.
		return nil, nil
	case "Holdout":
		return resample.Holdout{Split: r.Split}, nil
	case "Subsample":
		return resample.Subsample{Iterations: r.Iterations, Split: r.Split}, nil
	case "CV":
		return resample.CV{Folds: r.Folds}, nil
	}
	return nil, errors.New(fmt.Sprintf("unrecognised resampling method %s", r.Method))
}

func newRunner(b backend) (benchmark.Runner, error) {
	var runner benchmark.Runner
	switch {
	case len(b.Replay) > 0:
		runner = benchmark.NewReplayRunner(b.Replay)
	case len(b.Properties) > 0:
		h, err := benchmark.NewHTTPRunnerFromProperties(b.Properties)
		if err != nil {
			return nil, err
		}
		runner = h
	case len(b.Address) > 0:
		runner = benchmark.NewHTTPRunner(benchmark.HTTPAddress(b.Address))
	default:
		runner = benchmark.NewHTTPRunner()
	}

	if len(b.Cache) > 0 {
		runner = benchmark.NewDiskCache(runner, diskv.New(diskv.Options{
			BasePath:     b.Cache,
			Transform:    benchmark.BlockTransform(8),
			CacheSizeMax: 4096 * 1024,
			Compression:  diskv.NewGzipCompression(),
		}))
	}
	return runner, nil
}

func send(result *incline.Result, p plot) error {
	facet := viz.MeasureAxis
	if len(p.Facet) > 0 {
		facet = viz.Axis(p.Facet)
	}

	data, err := viz.CurvePlot(result, facet, p.Pretty)
	if err != nil {
		return err
	}

	resp, err := viz.NewService(viz.ServiceAddress(p.Address)).Send(data)
	if err != nil {
		return err
	}

	log.Printf("rendered plot %s at %s", resp.PlotID, resp.PlotURL)
	return nil
}

func write(path string, contents string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0664)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(contents)
	return err
}
