package app

import (
	"bytes"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"imgprobe/common/httpx"
	"imgprobe/common/logx"
	"imgprobe/core/probe"
)

// EnvironPrefix marks environment variables which override configuration values.
// IMGPROBE_PROBE__THRESHOLD=65536 sets probe.threshold.
const EnvironPrefix = "IMGPROBE_"

type Config struct {
	Probe struct {
		probe.Options `yaml:",inline"`
		Concurrency   int `yaml:"concurrency,omitempty" doc:"Maximum number of URLs probed in parallel." default:"4"`
	} `yaml:"probe,omitempty" doc:"Probe settings."`

	HTTP httpx.Config `yaml:"http,omitempty" doc:"HTTP client settings."`

	Log logx.Config `yaml:"log,omitempty" doc:"Logging settings."`

	Metrics struct {
		Address string `yaml:"address,omitempty" doc:"Address to serve Prometheus metrics on. Metrics are not served if empty."`
	} `yaml:"metrics,omitempty" doc:"Prometheus settings."`
}

// DefaultConfig returns the configuration used when no files and variables are given.
func DefaultConfig() *Config {
	config := new(Config)
	config.Probe.Threshold = probe.DefaultThreshold
	config.Probe.Concurrency = probe.DefaultConcurrency
	config.Log = logx.DefaultConfig
	return config
}

// LoadConfig collects configuration from files and environment into DefaultConfig.
func LoadConfig(environPrefix string, paths ...string) (*Config, error) {
	data, err := CollectConfig(environPrefix, paths...)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	return config, nil
}

// CollectConfig reads YAML files with environment variables expanded,
// merges them in order and applies environment overrides on top.
func CollectConfig(environPrefix string, paths ...string) ([]byte, error) {
	global := make(map[string]interface{})
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}

		config := make(map[string]interface{})
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &config); err != nil {
			return nil, errors.Wrapf(err, "read expanded config %s", path)
		}

		if global, err = merge(global, config); err != nil {
			return nil, errors.Wrapf(err, "merge config %s", path)
		}
	}

	global, err := merge(global, environ(environPrefix, os.Environ()))
	if err != nil {
		return nil, errors.Wrap(err, "merge environment")
	}

	buf := new(bytes.Buffer)
	if err := yaml.NewEncoder(buf).Encode(global); err != nil {
		return nil, errors.Wrap(err, "encode global config")
	}

	return buf.Bytes(), nil
}

func environ(prefix string, lines []string) map[string]interface{} {
	m := make(map[string]interface{})
	if prefix == "" {
		return m
	}

	for _, line := range lines {
		if !strings.HasPrefix(line, prefix) {
			continue
		}

		line = line[len(prefix):]
		equals := strings.Index(line, "=")
		if equals < 0 {
			continue
		}

		key, value := line[:equals], line[equals+1:]
		path := strings.Split(strings.ToLower(key), "__")
		for i := range path {
			path[i] = strings.Trim(path[i], "_")
		}

		set(m, key, path, parse(value))
	}

	return m
}

// set stores value under path. Sections are separated by a double underscore,
// so IMGPROBE_PROBE__FORCE_IMAGE=true sets probe.force_image.
func set(m map[string]interface{}, key string, path []string, value interface{}) {
	entry := m
	last := len(path) - 1
	for i, token := range path {
		if token == "" {
			return
		}

		if i == last {
			if ev, ok := entry[token]; ok {
				if _, ok := ev.(map[string]interface{}); ok {
					logrus.Warnf("discarding env var %s due to type incompatibility", key)
					return
				}
			}

			entry[token] = value
			return
		}

		next, ok := entry[token].(map[string]interface{})
		if !ok {
			if _, exists := entry[token]; exists {
				logrus.Warnf("overriding parent as object for env var %s", key)
			}

			next = make(map[string]interface{})
			entry[token] = next
		}

		entry = next
	}
}

func parse(value string) interface{} {
	if v, err := strconv.ParseInt(value, 10, 64); err == nil {
		return v
	} else if v, err := strconv.ParseFloat(value, 64); err == nil {
		return v
	} else if v, err := strconv.ParseBool(value); err == nil {
		return v
	}

	return value
}

func merge(a, b map[string]interface{}) (map[string]interface{}, error) {
	for k, v := range b {
		av, ok := a[k]
		if !ok {
			a[k] = v
			continue
		}

		mav, aIsMap := av.(map[string]interface{})
		mv, bIsMap := v.(map[string]interface{})
		switch {
		case aIsMap && bIsMap:
			merged, err := merge(mav, mv)
			if err != nil {
				return nil, err
			}

			a[k] = merged
		case !aIsMap && !bIsMap:
			a[k] = v
		default:
			return nil, errors.Errorf("configuration keys %s must have the same type", k)
		}
	}

	return a, nil
}
