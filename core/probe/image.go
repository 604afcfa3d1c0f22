package probe

import (
	"bytes"
	"context"
	"io"
	"math"
	"net/http"

	"github.com/pkg/errors"

	"imgprobe/common/httpx"
	"imgprobe/core/probe/imagesize"
)

type state int

const (
	accumulating state = iota
	resolved
	failed
)

// imageFetch accumulates the body of a single image response
// and reaches exactly one terminal state.
type imageFetch struct {
	metadata  Metadata
	threshold int64
	escalate  bool
	buffer    bytes.Buffer
	state     state
	result    *Result
	err       error
}

func newImageFetch(metadata Metadata, options Options) *imageFetch {
	return &imageFetch{
		metadata:  metadata,
		threshold: options.threshold(),
		escalate:  options.Escalate,
	}
}

func (f *imageFetch) done() bool {
	return f.state != accumulating
}

// finish performs the terminal transition. Calls after the first one are ignored.
func (f *imageFetch) finish(result *Result, err error) {
	if f.done() {
		return
	}

	if err != nil {
		f.state, f.err = failed, err
	} else {
		f.state, f.result = resolved, result
	}
}

// write appends a body chunk and parses the header once the threshold is reached.
// It returns true when no more data is needed.
func (f *imageFetch) write(chunk []byte) bool {
	if f.done() {
		return true
	}

	f.buffer.Write(chunk)
	if int64(f.buffer.Len()) < f.threshold {
		return false
	}

	info, err := imagesize.Parse(f.buffer.Bytes())
	switch {
	case err == nil:
		f.finish(f.metadata.WithHeader(info), nil)
	case f.escalate && errors.Is(err, imagesize.ErrTruncated):
		f.threshold = double(f.threshold)
		return false
	default:
		f.finish(nil, err)
	}

	return true
}

// end handles the end of the body. The whole resource has been received,
// so its length replaces the declared size.
func (f *imageFetch) end() {
	if f.done() {
		return
	}

	info, err := imagesize.Parse(f.buffer.Bytes())
	if err != nil {
		f.finish(nil, err)
		return
	}

	result := f.metadata.WithHeader(info)
	result.FileSize = int64(f.buffer.Len())
	f.finish(result, nil)
}

// consume reads body until the fetch is done or the body is exhausted.
func (f *imageFetch) consume(body io.Reader) {
	chunk := make([]byte, ChunkSize)
	for !f.done() {
		n, err := body.Read(chunk)
		if n > 0 && f.write(chunk[:n]) {
			return
		}

		switch {
		case err == io.EOF:
			f.end()
		case err != nil:
			f.finish(nil, err)
		}
	}
}

func double(threshold int64) int64 {
	if threshold > math.MaxInt64/2 {
		return math.MaxInt64
	}

	return threshold * 2
}

// fetchImage streams the resource body until the image header is parsed.
// It returns the number of body bytes received along with the outcome.
func (c *Client) fetchImage(ctx context.Context, url string, options Options) (*Result, int64, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}

	resp, err := c.http().Do(req)
	if err != nil {
		return nil, 0, err
	}

	// Closing an unread body tears down the connection.
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, 0, &httpx.StatusCodeError{StatusCode: resp.StatusCode}
	}

	metadata := new(Metadata)
	metadata.Handle(resp)
	fetch := newImageFetch(*metadata, options)
	fetch.consume(resp.Body)
	return fetch.result, int64(fetch.buffer.Len()), fetch.err
}
