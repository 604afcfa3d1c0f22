package logx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternal(t *testing.T) {
	tempdir := t.TempDir()
	obj := &internal{
		config:  DefaultConfig,
		loggers: make(map[string]Ptr),
		files:   make(map[string]*os.File),
	}

	defer obj.close()

	custom := obj.get("nondefault")
	// this is the same object
	assert.Same(t, custom, obj.get("nondefault"))

	err := obj.configure(Config{
		Default: LoggerConfig{Level: "debug", Output: []string{filepath.Join(tempdir, "default.log")}},
		Custom: map[string]LoggerConfig{
			"nondefault": {Level: "warn", Output: []string{filepath.Join(tempdir, "nondefault.log")}},
		},
	})
	require.NoError(t, err)

	custom.Debug("debug")
	custom.Info("info")
	custom.Warn("warn")
	custom.WithField("url", "http://example.com/a b.png").Error("error")

	d3fault := obj.get("d3fault")
	d3fault.Debug("debug")
	d3fault.WithFields(V{"bytes": 42, "mode": "image"}).Info("info")

	data, err := os.ReadFile(filepath.Join(tempdir, "nondefault.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "WARN  [nondefault] warn")
	assert.Contains(t, lines[1], `ERROR [nondefault] error url="http://example.com/a b.png"`)

	data, err = os.ReadFile(filepath.Join(tempdir, "default.log"))
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "DEBUG [d3fault] debug")
	assert.Contains(t, lines[1], "INFO  [d3fault] info bytes=42 mode=image")
}

func TestConfigure_InvalidLevel(t *testing.T) {
	obj := &internal{
		config:  DefaultConfig,
		loggers: make(map[string]Ptr),
		files:   make(map[string]*os.File),
	}

	obj.get("probe")
	err := obj.configure(Config{Custom: map[string]LoggerConfig{"probe": {Level: "loud"}}})
	assert.Error(t, err)
}

func TestFormat_Color(t *testing.T) {
	f := &format{name: "probe", color: true}
	data, err := f.Format(&logrus.Entry{Level: logrus.WarnLevel, Message: "slow\n", Data: logrus.Fields{}})
	require.NoError(t, err)
	assert.Contains(t, string(data), "\x1b[33mWARN \x1b[0m [probe] slow\n")
}
