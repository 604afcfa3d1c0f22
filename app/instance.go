package app

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"imgprobe/common/httpx"
	"imgprobe/common/logx"
	"imgprobe/core/probe"
	"imgprobe/metrics"
)

// Instance holds the components built from a Config.
type Instance struct {
	Config  *Config
	Client  *probe.Client
	Metrics *metrics.Prometheus

	log    logrus.FieldLogger
	server *http.Server
}

// Create configures logging, metrics and the probe client.
func Create(config *Config) (*Instance, error) {
	if err := logx.Configure(config.Log); err != nil {
		return nil, errors.Wrap(err, "configure logging")
	}

	app := &Instance{
		Config:  config,
		Metrics: metrics.NewPrometheus("imgprobe"),
		log:     logx.Get("app"),
	}

	app.Client = &probe.Client{
		HTTP:        httpx.Configure(&config.HTTP),
		Log:         logx.Get("probe"),
		Metrics:     app.Metrics.WithPrefix("probe"),
		Concurrency: config.Probe.Concurrency,
	}

	return app, nil
}

// ServeMetrics starts the metrics endpoint if an address is configured.
func (app *Instance) ServeMetrics() error {
	address := app.Config.Metrics.Address
	if address == "" {
		return nil
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", address)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", app.Metrics.Handler())
	app.server = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := app.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			app.log.Errorf("metrics server: %s", err)
		}
	}()

	app.log.Infof("serving metrics on %s", listener.Addr())
	return nil
}

// Probe fetches info for all urls with configured options.
func (app *Instance) Probe(ctx context.Context, urls ...string) []probe.Outcome {
	return app.Client.FetchAll(ctx, urls, app.Config.Probe.Options)
}

func (app *Instance) Close() error {
	if app.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.server.Shutdown(ctx); err != nil {
			app.log.Warnf("shutdown metrics server: %s", err)
		}
	}

	return logx.Close()
}
