package placeholder

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotCollection reports a 2xx body that is not a JSON array of objects.
var ErrNotCollection = errors.New("response is not a collection")

// HTTPError is returned for any response status outside [200,299].
type HTTPError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("GET %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s returned status %d: %s", e.URL, e.StatusCode, e.Body)
}

func newHTTPError(url string, status int, body []byte) *HTTPError {
	return &HTTPError{StatusCode: status, URL: url, Body: bodySnippet(body)}
}

func bodySnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
