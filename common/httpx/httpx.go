// Package httpx builds net/http clients from configuration.
package httpx

import (
	"net"
	"net/http"
	"time"

	"imgprobe/common/httpx/transport"
	"imgprobe/common/logx"
)

// Configure creates a http.Client from the Config.
// A nil Config yields a client with default transport settings.
func Configure(config *Config) *http.Client {
	client := new(http.Client)
	if config == nil {
		client.Transport = ConfigureTransport(nil)
		return client
	}

	var roundTripper = ConfigureTransport(config.Transport)
	if len(config.Headers) > 0 {
		roundTripper = &transport.Headers{RoundTripper: roundTripper, Values: config.Headers}
	}

	client.Transport = roundTripper
	if config.Timeout != nil {
		client.Timeout = config.Timeout.Duration()
	}

	return client
}

// ConfigureTransport creates a http.RoundTripper from the TransportConfig.
func ConfigureTransport(config *TransportConfig) http.RoundTripper {
	var (
		dialer = &net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}

		base = &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: time.Second,
			ResponseHeaderTimeout: time.Minute,
		}

		roundTripper http.RoundTripper = base
	)

	if config != nil {
		if config.MaxIdleConns != nil {
			base.MaxIdleConns = *config.MaxIdleConns
		}
		if config.DialTimeout != nil {
			dialer.Timeout = config.DialTimeout.Duration()
		}
		if config.IdleConnTimeout != nil {
			base.IdleConnTimeout = config.IdleConnTimeout.Duration()
		}
		if config.TLSHandshakeTimeout != nil {
			base.TLSHandshakeTimeout = config.TLSHandshakeTimeout.Duration()
		}
		if config.ResponseHeaderTimeout != nil {
			base.ResponseHeaderTimeout = config.ResponseHeaderTimeout.Duration()
		}
		if config.Log != "" {
			roundTripper = &transport.Logx{RoundTripper: roundTripper, Log: logx.Get(config.Log)}
		}
		if len(config.StatusCodes) > 0 {
			roundTripper = &transport.StatusCodeChecker{RoundTripper: roundTripper, Codes: config.StatusCodes}
		}
	}

	base.DialContext = dialer.DialContext
	return roundTripper
}
