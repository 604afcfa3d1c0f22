package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgprobe/common/gox/jsonx"
	"imgprobe/common/httpx/transport"
)

func TestConfigure_Headers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Header.Get("User-Agent") + "|" + r.Header.Get("Accept")))
	}))

	defer server.Close()

	client := Configure(&Config{Headers: map[string]string{"User-Agent": "imgprobe", "Accept": "image/*"}})
	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "image/png")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := make([]byte, 64)
	n, _ := resp.Body.Read(buf)
	assert.Equal(t, "imgprobe|image/png", string(buf[:n]))
	assert.Equal(t, "image/png", req.Header.Get("Accept"))
	assert.Empty(t, req.Header.Get("User-Agent"))
}

func TestConfigure_Timeout(t *testing.T) {
	timeout := jsonx.Duration(time.Second)
	client := Configure(&Config{Timeout: &timeout})
	assert.Equal(t, time.Second, client.Timeout)
	assert.IsType(t, new(http.Transport), client.Transport)
}

func TestConfigure_StatusCodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ok" {
			w.WriteHeader(http.StatusForbidden)
		}
	}))

	defer server.Close()

	client := Configure(new(Config).WithStatusCodes(http.StatusOK))
	resp, err := client.Get(server.URL + "/ok")
	require.NoError(t, err)
	resp.Body.Close()

	_, err = client.Get(server.URL + "/forbidden")
	require.Error(t, err)
	statusErr := new(StatusCodeError)
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "HTTP status code 403")
}

func TestWithStatusCodes_Copies(t *testing.T) {
	original := &Config{Transport: &TransportConfig{Log: "http", StatusCodes: []int{200}}}
	copied := original.WithStatusCodes(200, 206)
	assert.Equal(t, []int{200}, original.Transport.StatusCodes)
	assert.Equal(t, []int{200, 206}, copied.Transport.StatusCodes)
	assert.Equal(t, "http", copied.Transport.Log)
}

func TestLogx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png"))
	}))

	defer server.Close()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	client := &http.Client{Transport: &transport.Logx{RoundTripper: http.DefaultTransport, Log: logger}}

	resp, err := client.Get(server.URL + "/tux.png")
	require.NoError(t, err)
	resp.Body.Close()

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "request", entries[0].Message)
	assert.Equal(t, server.URL+"/tux.png", entries[0].Data["url"])
	assert.Equal(t, "response", entries[1].Message)
	assert.Equal(t, http.StatusOK, entries[1].Data["status"])
	assert.Equal(t, "image/png", entries[1].Data["content_type"])
	assert.Equal(t, entries[0].Data["id"], entries[1].Data["id"])
}
