// Package jsonx contains value types for JSON and YAML configuration files.
package jsonx

import (
	"encoding/json"
	"regexp"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var durationRegexp = regexp.MustCompile(`^([0-9]+)\s*([a-z]+)$`)

// Duration is a time.Duration which can be read from strings like "10s", "1m30s" or "5 min".
type Duration time.Duration

// ParseDuration accepts both time.ParseDuration syntax and "<number> <unit>" form.
func ParseDuration(str string) (Duration, error) {
	if value, err := time.ParseDuration(str); err == nil {
		return Duration(value), nil
	}

	groups := durationRegexp.FindStringSubmatch(str)
	if len(groups) != 3 {
		return 0, errors.Errorf("invalid duration format: %s", str)
	}

	value, err := strconv.ParseInt(groups[1], 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse duration value %s", groups[1])
	}

	var unit time.Duration
	switch groups[2] {
	case "ms", "milli", "millis", "millisecond", "milliseconds":
		unit = time.Millisecond
	case "s", "sec", "second", "seconds":
		unit = time.Second
	case "min", "minute", "minutes":
		unit = time.Minute
	case "hr", "hrs", "hour", "hours":
		unit = time.Hour
	case "d", "day", "days":
		unit = 24 * time.Hour
	default:
		return 0, errors.Errorf("invalid duration unit: %s", groups[2])
	}

	return Duration(time.Duration(value) * unit), nil
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	value, err := ParseDuration(str)
	if err != nil {
		return err
	}

	*d = value
	return nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return err
	}

	value, err := ParseDuration(str)
	if err != nil {
		return err
	}

	*d = value
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration().String(), nil
}

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
