package probe

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"imgprobe/core/probe/imagesize"
)

const (
	// DefaultThreshold is the number of body bytes read before parsing the image header.
	DefaultThreshold int64 = 32 << 10

	// Unbounded makes the prober read the whole body before parsing.
	Unbounded int64 = -1

	// ChunkSize is the maximum number of bytes read from the body at once.
	ChunkSize = 16 << 10
)

// Options configure a single probe.
type Options struct {

	// Threshold is the number of body bytes accumulated before the image header is parsed.
	// Zero means DefaultThreshold. Any negative value is treated as Unbounded,
	// not only -1.
	Threshold int64 `yaml:"threshold,omitempty" doc:"Bytes to download before parsing the image header. Negative values download the whole resource."`

	// ForceImage probes the URL as an image regardless of its extension.
	ForceImage bool `yaml:"force_image,omitempty" doc:"Treat every URL as an image."`

	// Escalate keeps reading when the header is cut off at the threshold,
	// doubling the threshold each time, instead of failing.
	Escalate bool `yaml:"escalate,omitempty" doc:"Read more data when the image header is truncated at the threshold."`
}

func (o Options) threshold() int64 {
	switch {
	case o.Threshold == 0:
		return DefaultThreshold
	case o.Threshold < 0:
		return math.MaxInt64
	default:
		return o.Threshold
	}
}

// Result describes a remote resource.
// Image fields are empty for resources probed in HeadersMode.
type Result struct {
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
	Format string `yaml:"format,omitempty"`

	// FileSize is -1 when the size is unknown.
	FileSize  int64  `yaml:"file_size"`
	MediaType string `yaml:"media_type,omitempty"`
}

// IsImage reports whether the result carries image header information.
func (r *Result) IsImage() bool {
	return r.Format != ""
}

// Metadata is the resource metadata declared in response headers.
type Metadata struct {

	// Size is -1 when Content-Length is missing or malformed.
	Size      int64
	MediaType string
}

// Handle reads Content-Length and Content-Type from the response headers.
func (m *Metadata) Handle(resp *http.Response) {
	m.MediaType = resp.Header.Get("Content-Type")
	m.Size = -1
	if contentLength := strings.TrimSpace(resp.Header.Get("Content-Length")); contentLength != "" {
		if size, err := strconv.ParseInt(contentLength, 10, 64); err == nil && size >= 0 {
			m.Size = size
		}
	}
}

// Result converts the declared metadata to a Result without image information.
func (m Metadata) Result() *Result {
	return &Result{
		FileSize:  m.Size,
		MediaType: m.MediaType,
	}
}

// WithHeader combines the declared metadata with parsed image header information.
func (m Metadata) WithHeader(info *imagesize.Info) *Result {
	result := m.Result()
	result.Width = info.Width
	result.Height = info.Height
	result.Format = info.Format
	return result
}
