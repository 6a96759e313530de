package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrModelRequired is returned when a request is issued without a model.
var ErrModelRequired = errors.New("model required")

// StatusError reports a non-2xx response from a completion endpoint.
type StatusError struct {
	StatusCode int
	Err        error
}

func (e *StatusError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("completion request failed: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("completion request failed: %d %s: %v", e.StatusCode, http.StatusText(e.StatusCode), e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}
