package transport

import (
	"net/http"
	"strconv"
)

// StatusCodeError is returned when a server responds with an unexpected status code.
type StatusCodeError struct {
	StatusCode int
}

func (e *StatusCodeError) Error() string {
	return "HTTP status code " + strconv.Itoa(e.StatusCode)
}

// StatusCodeChecker rejects responses with status codes not listed in Codes.
// The response body is closed before the error is returned.
type StatusCodeChecker struct {
	http.RoundTripper
	Codes []int
}

func (t *StatusCodeChecker) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.RoundTripper.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	for _, code := range t.Codes {
		if code == resp.StatusCode {
			return resp, nil
		}
	}

	_ = resp.Body.Close()
	return nil, &StatusCodeError{StatusCode: resp.StatusCode}
}
