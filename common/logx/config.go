package logx

type (
	// LoggerConfig is a single logger config. Defines the minimal level and outputs.
	LoggerConfig struct {

		// Level is the lowest log level to be printed.
		Level string `yaml:"level,omitempty"`

		// Output is the list of output log files.
		// Two special values exist:
		// stdout - standard output
		// stderr - standard error output
		Output []string `yaml:"output,omitempty"`

		// Color enables ANSI-colored level names.
		Color bool `yaml:"color,omitempty"`
	}

	// Config is the logger factory config.
	Config struct {

		// Default configuration is used when a logger name is not recognized.
		Default LoggerConfig `yaml:"default,omitempty"`

		// Custom contains logger-specific configurations resolved by name.
		Custom map[string]LoggerConfig `yaml:"custom,omitempty"`
	}
)

var DefaultConfig = Config{
	Default: LoggerConfig{
		Level:  "info",
		Output: []string{"stderr"},
	},
}

func (c Config) get(name string) LoggerConfig {
	config := c.Default
	if custom, ok := c.Custom[name]; ok {
		if custom.Level != "" {
			config.Level = custom.Level
		}
		if len(custom.Output) > 0 {
			config.Output = custom.Output
		}
		config.Color = config.Color || custom.Color
	}

	return config
}
