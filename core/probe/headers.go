package probe

import (
	"context"
	"net/http"

	"imgprobe/common/httpx"
)

// fetchHeaders reads declared metadata with a HEAD request.
func (c *Client) fetchHeaders(ctx context.Context, url string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http().Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &httpx.StatusCodeError{StatusCode: resp.StatusCode}
	}

	metadata := new(Metadata)
	metadata.Handle(resp)
	return metadata.Result(), nil
}
