package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrNoEndpoint is returned when no submission endpoint is configured.
var ErrNoEndpoint = errors.New("contact endpoint not configured")

// SubmitError is returned when the endpoint answers with a non-2xx status.
type SubmitError struct {
	StatusCode int
	Body       string
}

func (e *SubmitError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("contact endpoint returned status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("contact endpoint returned status %d", e.StatusCode)
}

// Receipt identifies an accepted submission.
type Receipt struct {
	ID string `json:"id"`
}

type payload struct {
	ID string `json:"id"`
	Form
	SubmittedAt time.Time `json:"submitted_at"`
}

// Submitter forwards valid forms to an HTTP endpoint as JSON.
type Submitter struct {
	endpoint   string
	httpClient *http.Client
	logger     logrus.FieldLogger
	newID      func() string
	now        func() time.Time
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Submitter) {
		s.httpClient = c
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Submitter) {
		s.logger = l
	}
}

// NewSubmitter creates a submitter posting to endpoint.
func NewSubmitter(endpoint string, opts ...Option) *Submitter {
	s := &Submitter{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logrus.StandardLogger(),
		newID:      func() string { return uuid.New().String() },
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates f and, if valid, posts it. Invalid forms return
// ValidationErrors without contacting the endpoint.
func (s *Submitter) Submit(ctx context.Context, f Form) (*Receipt, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if s.endpoint == "" {
		return nil, ErrNoEndpoint
	}

	p := payload{ID: s.newID(), Form: f.Normalize(), SubmittedAt: s.now().UTC()}
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending submission: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &SubmitError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(msg))}
	}

	s.logger.WithFields(logrus.Fields{"id": p.ID, "status": resp.StatusCode}).Info("contact form submitted")
	return &Receipt{ID: p.ID}, nil
}

// IsValidation reports whether err came from form validation.
func IsValidation(err error) bool {
	var v ValidationErrors
	return errors.As(err, &v)
}

// StatusCode returns the endpoint status of a SubmitError, or 0.
func StatusCode(err error) int {
	var se *SubmitError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
