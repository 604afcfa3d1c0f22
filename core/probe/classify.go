package probe

import "strings"

// Mode selects how a resource is probed.
type Mode int

const (
	// HeadersMode issues a HEAD request and reports declared metadata only.
	HeadersMode Mode = iota

	// ImageMode streams the body until the image header can be parsed.
	ImageMode
)

func (m Mode) String() string {
	switch m {
	case ImageMode:
		return "image"
	default:
		return "headers"
	}
}

var imageExtensions = []string{".jpg", ".jpeg", ".gif", ".png"}

// IsImageURL reports whether url ends with a known image extension.
// The check is case-insensitive and applies to the whole string,
// so "a.png?size=2" is not an image URL.
func IsImageURL(url string) bool {
	url = strings.ToLower(url)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(url, ext) {
			return true
		}
	}

	return false
}

// Classify picks the probe mode for url.
func Classify(url string, forceImage bool) Mode {
	if forceImage || IsImageURL(url) {
		return ImageMode
	}

	return HeadersMode
}
