// Command formguard serves an HTML form template with server-side and live
// validation.
//
// Configuration comes from the environment (and an optional ENV_FILE):
//
//	FORM_TEMPLATE          path to the form template (required)
//	FORM_PATH              mount path, default /form
//	FORM_NAME              form name used in logs and metrics
//	FORM_RULESET_FILE      optional YAML rule set
//	FORM_SUCCESS_URL       redirect target after a valid submission
//	FORM_ERROR_CLASS, FORM_VALID_CLASS, FORM_INVALID_CLASS, FORM_CONCURRENCY
//	HTTP_ADDR, HTTP_*_TIMEOUT
//	APP_ENV                development, staging or production
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/formguard/pkg/config"
	"github.com/dmitrymomot/formguard/pkg/form"
	"github.com/dmitrymomot/formguard/pkg/formhttp"
	"github.com/dmitrymomot/formguard/pkg/formmetrics"
	"github.com/dmitrymomot/formguard/pkg/httpserver"
	"github.com/dmitrymomot/formguard/pkg/logger"
)

type appConfig struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	Template    string `env:"FORM_TEMPLATE,required"`
	Path        string `env:"FORM_PATH" envDefault:"/form"`
	Name        string `env:"FORM_NAME" envDefault:"form"`
	MetricsPath string `env:"METRICS_PATH" envDefault:"/metrics"`
	HTTP        httpserver.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []config.Option
	if file := os.Getenv("ENV_FILE"); file != "" {
		opts = append(opts, config.WithEnvFiles(file))
	}
	if err := run(ctx, opts...); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts ...config.Option) error {
	var app appConfig
	if err := config.Load(&app, opts...); err != nil {
		return err
	}
	log := logger.New(
		logger.WithEnvironment(app.Env, "formguard"),
		logger.WithContextExtractors(requestID),
	)

	router, err := newRouter(app, log, prometheus.NewRegistry(), opts...)
	if err != nil {
		return err
	}
	return httpserver.New(app.HTTP, router, log).Run(ctx)
}

func newRouter(app appConfig, log *slog.Logger, reg *prometheus.Registry, opts ...config.Option) (http.Handler, error) {
	formCfg, err := form.LoadConfig(opts...)
	if err != nil {
		return nil, err
	}
	httpCfg, err := formhttp.LoadConfig(opts...)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(app.Template)
	if err != nil {
		return nil, fmt.Errorf("read form template: %w", err)
	}

	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := formmetrics.New(formmetrics.DefaultNamespace, reg)
	if err != nil {
		return nil, err
	}

	h, err := formhttp.New(string(src),
		formhttp.WithConfig(httpCfg),
		formhttp.WithLogger(log),
		formhttp.WithFormOptions(
			form.WithName(app.Name),
			form.WithConfig(formCfg),
			form.WithObserver(metrics),
		),
	)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	h.Mount(r, app.Path)
	r.Handle(app.MetricsPath, metrics.Handler())
	r.Get("/health", httpserver.HealthHandler(log))
	return r, nil
}

func requestID(ctx context.Context) (slog.Attr, bool) {
	if id := middleware.GetReqID(ctx); id != "" {
		return logger.RequestID(id), true
	}
	return slog.Attr{}, false
}
