package transport

import "net/http"

// Headers sets default header values on requests which do not have them.
type Headers struct {
	http.RoundTripper
	Values map[string]string
}

func (t *Headers) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.Values) > 0 {
		req = req.Clone(req.Context())
		for key, value := range t.Values {
			if req.Header.Get(key) == "" {
				req.Header.Set(key, value)
			}
		}
	}

	return t.RoundTripper.RoundTrip(req)
}
