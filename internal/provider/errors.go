package provider

import (
	"errors"
	"fmt"
)

// Common errors returned by providers.
var (
	// ErrNetwork indicates the request could not complete (DNS, connection, timeout).
	ErrNetwork = errors.New("network error")

	// ErrDecode indicates a response body that is not valid JSON or lacks the expected list field.
	ErrDecode = errors.New("invalid response body")
)

// HTTPStatusError reports a non-2xx response.
type HTTPStatusError struct {
	StatusCode int
	URL        string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d from %s", e.StatusCode, e.URL)
}

// ProviderError records which provider failed and why.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// wrap tags err with the provider name. A nil err stays nil.
func wrap(provider string, err error) error {
	if err == nil {
		return nil
	}
	return &ProviderError{Provider: provider, Err: err}
}

// IsNetwork returns true if the request never produced a response.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsDecode returns true if the response body could not be used.
func IsDecode(err error) bool {
	return errors.Is(err, ErrDecode)
}

// IsHTTPStatus returns true if the provider answered with a non-2xx status.
func IsHTTPStatus(err error) bool {
	var statusErr *HTTPStatusError
	return errors.As(err, &statusErr)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
