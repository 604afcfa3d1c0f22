package probe

import (
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"imgprobe/core/probe/imagesize"
)

func TestMetadata_Handle(t *testing.T) {
	for _, tc := range []struct {
		name     string
		header   http.Header
		expected Metadata
	}{
		{
			name:     "declared",
			header:   http.Header{"Content-Length": {"7666"}, "Content-Type": {"image/png"}},
			expected: Metadata{Size: 7666, MediaType: "image/png"},
		},
		{
			name:     "no content length",
			header:   http.Header{"Content-Type": {"image/jpeg"}},
			expected: Metadata{Size: -1, MediaType: "image/jpeg"},
		},
		{
			name:     "malformed content length",
			header:   http.Header{"Content-Length": {"lots"}},
			expected: Metadata{Size: -1},
		},
		{
			name:     "negative content length",
			header:   http.Header{"Content-Length": {"-5"}},
			expected: Metadata{Size: -1},
		},
		{
			name:     "media type parameters are kept",
			header:   http.Header{"Content-Length": {"0"}, "Content-Type": {"text/html; charset=utf-8"}},
			expected: Metadata{Size: 0, MediaType: "text/html; charset=utf-8"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			metadata := new(Metadata)
			metadata.Handle(&http.Response{Header: tc.header})
			assert.Equal(t, tc.expected, *metadata)
		})
	}
}

func TestMetadata_Result(t *testing.T) {
	metadata := Metadata{Size: 110706004, MediaType: "application/x-xz"}
	result := metadata.Result()
	assert.Equal(t, &Result{FileSize: 110706004, MediaType: "application/x-xz"}, result)
	assert.False(t, result.IsImage())

	result = metadata.WithHeader(&imagesize.Info{Width: 10, Height: 20, Format: "gif"})
	assert.Equal(t, &Result{Width: 10, Height: 20, Format: "gif", FileSize: 110706004, MediaType: "application/x-xz"}, result)
	assert.True(t, result.IsImage())
}

func TestOptions_Threshold(t *testing.T) {
	assert.Equal(t, DefaultThreshold, Options{}.threshold())
	assert.Equal(t, int64(8), Options{Threshold: 8}.threshold())
	assert.Equal(t, int64(math.MaxInt64), Options{Threshold: Unbounded}.threshold())
	assert.Equal(t, int64(math.MaxInt64), Options{Threshold: -100}.threshold())
}
