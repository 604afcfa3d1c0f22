// Package imagesize reads pixel dimensions and format from the leading bytes
// of an encoded image.
package imagesize

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrTruncated is returned when the data ends before the header does.
	ErrTruncated = errors.New("image header is truncated")

	// ErrUnsupported is returned when the data does not start with a known image signature.
	ErrUnsupported = errors.New("unsupported image format")
)

// Info is the header information of an image.
type Info struct {
	Width  int
	Height int

	// Format is the name the format is registered with in image package,
	// e.g. "png", "jpeg", "gif".
	Format string
}

// Parse decodes the image header contained in data.
func Parse(data []byte) (*Info, error) {
	reader := &eofReader{Reader: bytes.NewReader(data)}
	config, format, err := image.DecodeConfig(reader)
	switch {
	case err == nil:
		return &Info{
			Width:  config.Width,
			Height: config.Height,
			Format: format,
		}, nil
	case reader.eof:
		return nil, errors.Wrapf(ErrTruncated, "read %d bytes", len(data))
	case errors.Is(err, image.ErrFormat):
		return nil, ErrUnsupported
	default:
		return nil, errors.Wrap(err, "decode header")
	}
}

// eofReader remembers whether the decoder has drained the input.
// Decoders do not wrap io.EOF consistently (gif formats it with %v).
type eofReader struct {
	io.Reader
	eof bool
}

func (r *eofReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	if err == io.EOF {
		r.eof = true
	}

	return n, err
}
