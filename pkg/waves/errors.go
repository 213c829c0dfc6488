package waves

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError is returned for every non-2xx response of the Waves API.
type APIError struct {
	StatusCode int
	Status     string

	Body string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("waves API error: %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// NetworkError wraps transport failures (dial, TLS, timeouts, ...).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "waves network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	status := http.StatusText(resp.StatusCode)

	if _, reason, ok := strings.Cut(resp.Status, " "); ok && reason != "" {
		status = reason
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Status:     status,

		Body: strings.TrimSpace(string(data)),
	}
}
