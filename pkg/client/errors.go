package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/moogar0880/problems"
)

// ErrInvalidResponse is returned when a 2xx body does not have the expected shape.
var ErrInvalidResponse = errors.New("invalid response body")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	// Problem is the decoded RFC 7807 body, nil when the body was not a problem document.
	Problem *problems.Problem
}

func (e *StatusError) Error() string {
	if e.Problem != nil && e.Problem.Detail != "" {
		return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Problem.Detail)
	}

	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	var statusErr *StatusError

	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

func newStatusError(code int, body []byte) *StatusError {
	statusErr := &StatusError{StatusCode: code}

	var problem problems.Problem
	if err := json.Unmarshal(body, &problem); err == nil && problem.Status != 0 {
		statusErr.Problem = &problem
	}

	return statusErr
}
