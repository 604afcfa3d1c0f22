package httpx

import "imgprobe/common/httpx/transport"

// StatusCodeError is returned for unexpected HTTP status codes.
type StatusCodeError = transport.StatusCodeError
