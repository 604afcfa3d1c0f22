package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"imgprobe/app"
	"imgprobe/core/probe"
)

var GitCommit = "dev"

type output struct {
	URL    string        `yaml:"url"`
	Result *probe.Result `yaml:"result,omitempty"`
	Error  string        `yaml:"error,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("imgprobe", pflag.ContinueOnError)
	var (
		configs     = flags.StringArrayP("config", "c", nil, "configuration file (may be repeated, later files override earlier ones)")
		threshold   = flags.Int64P("threshold", "t", 0, "bytes to download before parsing the image header, -1 downloads the whole resource")
		forceImage  = flags.BoolP("force-image", "i", false, "treat every URL as an image")
		escalate    = flags.Bool("escalate", false, "keep downloading when the image header is truncated at the threshold")
		concurrency = flags.Int("concurrency", 0, "maximum number of URLs probed in parallel")
		version     = flags.Bool("version", false, "print version and exit")
	)

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: imgprobe [flags] URL...\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *version {
		fmt.Println(GitCommit)
		return 0
	}

	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}

	config, err := app.LoadConfig(app.EnvironPrefix, *configs...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %s\n", err)
		return 1
	}

	if flags.Changed("threshold") {
		config.Probe.Threshold = *threshold
	}
	if flags.Changed("force-image") {
		config.Probe.ForceImage = *forceImage
	}
	if flags.Changed("escalate") {
		config.Probe.Escalate = *escalate
	}
	if flags.Changed("concurrency") {
		config.Probe.Concurrency = *concurrency
	}

	instance, err := app.Create(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create app: %s\n", err)
		return 1
	}

	defer instance.Close()
	if err := instance.ServeMetrics(); err != nil {
		fmt.Fprintf(os.Stderr, "serve metrics: %s\n", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	code := 0
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	for _, outcome := range instance.Probe(ctx, flags.Args()...) {
		out := output{URL: outcome.URL, Result: outcome.Result}
		if outcome.Err != nil {
			out.Error = outcome.Err.Error()
			code = 1
		}

		if err := encoder.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "write output: %s\n", err)
			return 1
		}
	}

	return code
}
