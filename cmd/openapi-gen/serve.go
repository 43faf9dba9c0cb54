package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	fiberzerolog "github.com/gofiber/contrib/v3/zerolog"
	"github.com/gofiber/fiber/v3"
	fiberrecover "github.com/gofiber/fiber/v3/middleware/recover"
	fiberrequestid "github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/gregwebs/go-recovery"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var port int

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests processed by the server",
		},
		[]string{"method", "path", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	registerHTTPMetricsOnce sync.Once
	registerHTTPMetricsErr  error
)

func registerHTTPMetrics() error {
	registerHTTPMetricsOnce.Do(func() {
		for _, collector := range []prometheus.Collector{httpRequestsTotal, httpRequestDuration} {
			if err := prometheus.Register(collector); err != nil {
				if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
					continue
				}
				registerHTTPMetricsErr = err
				return
			}
		}
	})

	return registerHTTPMetricsErr
}

func httpMetricsMiddleware(c fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	statusCode := c.Response().StatusCode()
	if err != nil {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			statusCode = fiberErr.Code
			if statusCode == 0 {
				statusCode = fiber.StatusInternalServerError
			}
		} else if statusCode < 400 {
			statusCode = fiber.StatusInternalServerError
		}
	}

	status := strconv.Itoa(statusCode)
	path := c.FullPath()
	if path == "" {
		path = "_unmatched"
	}
	httpRequestsTotal.WithLabelValues(c.Method(), path, status).Inc()
	httpRequestDuration.WithLabelValues(c.Method(), path, status).Observe(time.Since(start).Seconds())

	return err
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Generate the OpenAPI document and host it over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
		text, err := translate(ctx, source, cfg)
		cancel()
		if err != nil {
			return err
		}
		yamlBytes := []byte(text)

		// Re-encode as JSON for clients that prefer it.
		var tree any
		if err := yaml.Unmarshal(yamlBytes, &tree); err != nil {
			return fmt.Errorf("generated document is not valid YAML: %w", err)
		}
		jsonBytes, err := json.Marshal(tree)
		if err != nil {
			return fmt.Errorf("failed to encode OpenAPI JSON: %w", err)
		}

		app := fiber.New(fiber.Config{
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		})

		recovery.ErrorHandler = func(err error) {
			logger.Error().Err(err).Msg("Unhandled panic recovered")
		}
		app.Use(fiberrecover.New())

		// The metrics endpoint is registered before the logging and metrics
		// middleware so scrapes stay out of both.
		app.Get("/metrics", func(c fiber.Ctx) error {
			metricFamilies, err := prometheus.DefaultGatherer.Gather()
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("failed to gather metrics\n")
			}

			var buf bytes.Buffer
			encoder := expfmt.NewEncoder(&buf, expfmt.FmtText)
			for _, mf := range metricFamilies {
				if err := encoder.Encode(mf); err != nil {
					return c.Status(fiber.StatusInternalServerError).SendString("failed to encode metrics\n")
				}
			}

			c.Set(fiber.HeaderContentType, string(expfmt.FmtText))
			return c.Send(buf.Bytes())
		})

		if err := registerHTTPMetrics(); err != nil {
			return fmt.Errorf("failed to register HTTP metrics: %w", err)
		}
		app.Use(httpMetricsMiddleware)
		app.Use(fiberrequestid.New(fiberrequestid.Config{
			Header: "X-Request-Id",
		}))
		app.Use(fiberzerolog.New(fiberzerolog.Config{
			Logger: &logger,
			Next: func(c fiber.Ctx) bool {
				return c.Path() == "/metrics"
			},
			Fields: []string{
				fiberzerolog.FieldLatency,
				fiberzerolog.FieldStatus,
				fiberzerolog.FieldMethod,
				fiberzerolog.FieldURL,
				fiberzerolog.FieldRequestID,
				fiberzerolog.FieldError,
			},
		}))

		app.Get("/openapi.yaml", func(c fiber.Ctx) error {
			c.Set(fiber.HeaderContentType, "application/yaml")
			return c.Status(fiber.StatusOK).Send(yamlBytes)
		})
		app.Get("/openapi.json", func(c fiber.Ctx) error {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Status(fiber.StatusOK).Send(jsonBytes)
		})
		app.Get("/healthz", func(c fiber.Ctx) error {
			return c.SendString("ok\n")
		})

		serverErr := make(chan error, 1)
		go recovery.GoHandler(func(err error) {
			serverErr <- err
		}, func() error {
			logger.Info().Int("port", port).Msg("Starting server")
			logger.Info().Msgf("OpenAPI YAML: http://localhost:%d/openapi.yaml", port)
			return app.Listen(fmt.Sprintf(":%d", port), fiber.ListenConfig{DisableStartupMessage: true})
		})

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErr:
			return fmt.Errorf("server error: %w", err)
		case sig := <-sigChan:
			logger.Info().Str("signal", sig.String()).Msg("Received signal, initiating graceful shutdown")

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer shutdownCancel()

			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}

			logger.Info().Msg("Server gracefully stopped")
			return nil
		}
	},
}

func init() {
	addConfigFlags(serveCmd)
	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to serve the generated document on")

	rootCmd.AddCommand(serveCmd)
}
