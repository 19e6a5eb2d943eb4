package benchmark_test

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/incline-ml/incline/benchmark"
)

// evaluateHandler responds to a batch the way a benchmarking service would:
// one row per variant, one value per measure column.
func evaluateHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("got method %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/evaluate" {
			t.Errorf("got path %s, want /api/evaluate", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("got content type %s, want application/json", ct)
		}

		var req benchmark.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Error(err)
			return
		}

		table := benchmark.Table{Columns: req.Columns()}
		for i, v := range req.Variants {
			values := make([]float64, len(req.Measures))
			for j := range values {
				values[j] = 0.5 + float64(i)/10
			}
			table.Rows = append(table.Rows, benchmark.TableRow{Variant: v.ID, Values: values})
		}
		if err := json.NewEncoder(w).Encode(table); err != nil {
			t.Error(err)
		}
	}
}

func TestHTTPRunnerEvaluate(t *testing.T) {
	srv := httptest.NewServer(evaluateHandler(t))
	defer srv.Close()

	runner := benchmark.NewHTTPRunner(
		benchmark.HTTPAddress(srv.URL),
		benchmark.HTTPTimeout(10*time.Second),
		benchmark.HTTPUserAgent("incline-test"))

	table, err := runner.Evaluate(sonarRequest())
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	row, ok := table.Row("classif.rpart.2")
	if !ok {
		t.Fatal("expected a row for classif.rpart.2")
	}
	if row.Values[0] != 0.6 {
		t.Fatalf("got %v, want 0.6", row.Values[0])
	}
}

func TestHTTPRunnerErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no backend registered for task sonar", http.StatusNotFound)
	}))
	defer srv.Close()

	runner := benchmark.NewHTTPRunner(benchmark.HTTPAddress(srv.URL))
	_, err := runner.Evaluate(sonarRequest())
	if err == nil {
		t.Fatal("expected an error from a 404 response")
	}
	if !benchmark.IsEvaluation(err) {
		t.Fatalf("expected an evaluation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "no backend registered") {
		t.Fatalf("expected the response body in the error, got %v", err)
	}
}

func TestHTTPRunnerUnreachable(t *testing.T) {
	srv := httptest.NewServer(evaluateHandler(t))
	address := srv.URL
	srv.Close()

	runner := benchmark.NewHTTPRunner(benchmark.HTTPAddress(address), benchmark.HTTPTimeout(time.Second))
	_, err := runner.Evaluate(sonarRequest())
	if err == nil {
		t.Fatal("expected an error when the service is down")
	}
	if !benchmark.IsEvaluation(err) {
		t.Fatalf("expected an evaluation error, got %v", err)
	}
}

func TestNewHTTPRunnerFromProperties(t *testing.T) {
	srv := httptest.NewServer(evaluateHandler(t))
	defer srv.Close()

	dir, err := ioutil.TempDir("", "incline-properties")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	p := path.Join(dir, "benchmark.properties")
	config := "benchmark.address=" + srv.URL + "\nbenchmark.timeout=30s\nbenchmark.useragent=incline-test\n"
	if err := ioutil.WriteFile(p, []byte(config), 0644); err != nil {
		t.Fatal(err)
	}

	runner, err := benchmark.NewHTTPRunnerFromProperties(p)
	if err != nil {
		t.Fatal(err)
	}
	table, err := runner.Evaluate(sonarRequest())
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
}

func TestNewHTTPRunnerFromPropertiesMissingAddress(t *testing.T) {
	dir, err := ioutil.TempDir("", "incline-properties")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	p := path.Join(dir, "benchmark.properties")
	if err := ioutil.WriteFile(p, []byte("benchmark.timeout=30s\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := benchmark.NewHTTPRunnerFromProperties(p); err == nil {
		t.Fatal("expected an error when benchmark.address is missing")
	}
}
