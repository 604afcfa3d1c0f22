package httpx

import "imgprobe/common/gox/jsonx"

type (
	// TransportConfig allows to configure Transport via YAML.
	TransportConfig struct {

		// MaxIdleConns configures http.Transport. Default is 100.
		MaxIdleConns *int `yaml:"max_idle_conns,omitempty"`

		// DialTimeout configures net.Dialer. Default is 30 seconds.
		DialTimeout *jsonx.Duration `yaml:"dial_timeout,omitempty"`

		// IdleConnTimeout configures http.Transport. Default is 90 seconds.
		IdleConnTimeout *jsonx.Duration `yaml:"idle_conn_timeout,omitempty"`

		// TLSHandshakeTimeout configures http.Transport. Default is 10 seconds.
		TLSHandshakeTimeout *jsonx.Duration `yaml:"tls_handshake_timeout,omitempty"`

		// ResponseHeaderTimeout configures http.Transport. Default is 1 minute.
		ResponseHeaderTimeout *jsonx.Duration `yaml:"response_header_timeout,omitempty"`

		// Log is the transport logger name. If Log is not set, requests and responses will not be logged.
		Log string `yaml:"log,omitempty"`

		// StatusCodes are valid status codes for the client. If empty, any status code is accepted.
		StatusCodes []int `yaml:"status_codes,omitempty"`
	}

	// Config encapsulates TransportConfig and client-wide settings.
	Config struct {

		// Transport is TransportConfig.
		Transport *TransportConfig `yaml:"transport,omitempty"`

		// Timeout limits the whole exchange including reading the body. Zero means no limit.
		Timeout *jsonx.Duration `yaml:"timeout,omitempty"`

		// Headers are the default headers which will be set to each request.
		Headers map[string]string `yaml:"headers,omitempty"`
	}
)

// WithStatusCodes copies the Config and sets StatusCodes to the corresponding value.
func (c *Config) WithStatusCodes(statusCodes ...int) *Config {
	config := new(Config)
	transport := new(TransportConfig)
	if c != nil {
		*config = *c
		if c.Transport != nil {
			*transport = *c.Transport
		}
	}

	transport.StatusCodes = statusCodes
	config.Transport = transport
	return config
}
