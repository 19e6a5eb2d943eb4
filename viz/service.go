package viz

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultServiceTimeout bounds one payload submission to the sidecar.
const DefaultServiceTimeout = 30 * time.Second

// Service is a client for the rendering sidecar that turns plot payloads
// into charts. The sidecar owns all drawing; this client only ships
// payloads to it.
type Service struct {
	address   string
	userAgent string
	timeout   time.Duration
	client    *http.Client
}

// Response is the sidecar's acknowledgement of a submitted payload.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	PlotID  string `json:"plot_id,omitempty"`
	PlotURL string `json:"plot_url,omitempty"`
}

// ServiceAddress sets the base address of the rendering sidecar.
func ServiceAddress(address string) func(*Service) {
	return func(s *Service) {
		s.address = strings.TrimSuffix(address, "/")
	}
}

// ServiceTimeout sets how long one submission may take.
func ServiceTimeout(timeout time.Duration) func(*Service) {
	return func(s *Service) {
		s.timeout = timeout
	}
}

// NewService creates a rendering sidecar client.
func NewService(options ...func(*Service)) *Service {
	s := &Service{
		address:   "http://localhost:8080",
		userAgent: "incline",
		timeout:   DefaultServiceTimeout,
	}
	for _, option := range options {
		option(s)
	}
	s.client = &http.Client{Timeout: s.timeout}
	return s
}

// Send submits a payload for rendering and returns the sidecar's
// acknowledgement. The acknowledgement is returned alongside the error when
// the sidecar rejected the payload, so callers can read its message.
func (s *Service) Send(data PlotData) (*Response, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "encoding plot payload")
	}

	req, err := http.NewRequest("POST", s.address+"/api/plot", bytes.NewBuffer(b))
	if err != nil {
		return nil, errors.Wrap(err, "creating plot request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "sending plot payload")
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading plot response")
	}

	var r Response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, errors.Wrap(err, "decoding plot response")
	}
	if resp.StatusCode != http.StatusOK {
		return &r, errors.Errorf("rendering service responded %s: %s", resp.Status, r.Message)
	}
	return &r, nil
}

// Health reports whether the rendering sidecar is reachable.
func (s *Service) Health() error {
	resp, err := s.client.Get(s.address + "/health")
	if err != nil {
		return errors.Wrap(err, "rendering service unreachable")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("rendering service health check responded %s", resp.Status)
	}
	return nil
}
