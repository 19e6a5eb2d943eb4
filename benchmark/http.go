package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/magiconair/properties"
	"github.com/pkg/errors"
)

// DefaultHTTPTimeout bounds one batched evaluation. Backends resample and
// train every variant before responding, so the bound is generous.
const DefaultHTTPTimeout = 30 * time.Minute

// HTTPRunner submits batches to a benchmarking service over HTTP. The
// request is POSTed as JSON to /api/evaluate and the service responds with
// the aggregated table once every variant has been evaluated.
type HTTPRunner struct {
	address   string
	userAgent string
	timeout   time.Duration
	client    *http.Client
}

// HTTPAddress sets the base address of the benchmarking service.
func HTTPAddress(address string) func(*HTTPRunner) {
	return func(h *HTTPRunner) {
		h.address = strings.TrimSuffix(address, "/")
	}
}

// HTTPTimeout sets how long one batched evaluation may take.
func HTTPTimeout(timeout time.Duration) func(*HTTPRunner) {
	return func(h *HTTPRunner) {
		h.timeout = timeout
	}
}

// HTTPUserAgent sets the user agent submitted with evaluation requests.
func HTTPUserAgent(agent string) func(*HTTPRunner) {
	return func(h *HTTPRunner) {
		h.userAgent = agent
	}
}

// HTTPClient sets the underlying client, overriding any configured timeout.
func HTTPClient(client *http.Client) func(*HTTPRunner) {
	return func(h *HTTPRunner) {
		h.client = client
	}
}

// NewHTTPRunner creates an HTTP runner for the benchmarking service.
func NewHTTPRunner(options ...func(*HTTPRunner)) *HTTPRunner {
	h := &HTTPRunner{
		address:   "http://localhost:8231",
		userAgent: "incline",
		timeout:   DefaultHTTPTimeout,
	}
	for _, option := range options {
		option(h)
	}
	if h.client == nil {
		h.client = &http.Client{Timeout: h.timeout}
	}
	return h
}

// NewHTTPRunnerFromProperties creates an HTTP runner from a .properties
// file. benchmark.address must be present; benchmark.timeout and
// benchmark.useragent override the defaults.
func NewHTTPRunnerFromProperties(path string) (*HTTPRunner, error) {
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return nil, errors.Wrap(err, "loading benchmark properties")
	}
	address, ok := p.Get("benchmark.address")
	if !ok {
		return nil, errors.Errorf("benchmark.address must be specified in %s", path)
	}
	options := []func(*HTTPRunner){HTTPAddress(address)}
	if _, ok := p.Get("benchmark.timeout"); ok {
		options = append(options, HTTPTimeout(p.GetParsedDuration("benchmark.timeout", DefaultHTTPTimeout)))
	}
	if agent, ok := p.Get("benchmark.useragent"); ok {
		options = append(options, HTTPUserAgent(agent))
	}
	return NewHTTPRunner(options...), nil
}

// Evaluate submits the batch and blocks until the service has evaluated
// every variant. Transport failures and non-OK responses are evaluation
// errors carrying the run identifier.
func (h *HTTPRunner) Evaluate(r Request) (*Table, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "encoding evaluation request")
	}

	req, err := http.NewRequest("POST", h.address+"/api/evaluate", bytes.NewBuffer(b))
	if err != nil {
		return nil, errors.Wrap(err, "creating evaluation request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &EvaluationError{RunID: r.RunID, Reason: "benchmarking service unreachable", Err: err}
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, &EvaluationError{RunID: r.RunID, Reason: "reading evaluation response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		reason := fmt.Sprintf("benchmarking service responded %s", resp.Status)
		if msg := strings.TrimSpace(string(body)); len(msg) > 0 {
			reason += ": " + msg
		}
		return nil, &EvaluationError{RunID: r.RunID, Reason: reason}
	}

	var table Table
	if err := json.Unmarshal(body, &table); err != nil {
		return nil, &EvaluationError{RunID: r.RunID, Reason: "decoding evaluation response", Err: err}
	}
	return &table, nil
}
