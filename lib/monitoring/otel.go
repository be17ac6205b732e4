/**
 * Copyright 2025 Adobe. All rights reserved.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License. You may obtain a copy
 * of the License at http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under
 * the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR REPRESENTATIONS
 * OF ANY KIND, either express or implied. See the License for the specific language
 * governing permissions and limitations under the License.
 */

// Package monitoring exports the traces, metrics and logs of the console session
package monitoring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/grafana/pyroscope-go"
	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	otellog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/adobe/miq-pages/lib/log"
	"github.com/adobe/miq-pages/lib/util"
)

// Config defines monitoring configuration
type Config struct {
	Enabled         bool          `json:"enabled"`
	OTLPEndpoint    string        `json:"otlp_endpoint"` // Collector receiving traces, metrics and logs
	PyroscopeURL    string        `json:"pyroscope_url"`
	ServiceName     string        `json:"service_name"`
	ServiceVersion  string        `json:"service_version"`
	SampleRate      float64       `json:"sample_rate"` // Trace sampling rate (0.0 to 1.0)
	MetricsInterval util.Duration `json:"metrics_interval"`
	MetricsFile     string        `json:"metrics_file"` // Prometheus textfile written on shutdown, skipped if empty
	EnableProfiling bool          `json:"enable_profiling"`
	EnableTracing   bool          `json:"enable_tracing"`
	EnableMetrics   bool          `json:"enable_metrics"`
	EnableLogs      bool          `json:"enable_logs"`

	// Filled by the session to mark the telemetry
	Appliance        string `json:"-"`
	ApplianceVersion string `json:"-"`
}

// DefaultConfig returns default monitoring configuration
func DefaultConfig() *Config {
	return &Config{
		Enabled:         false,
		OTLPEndpoint:    "localhost:4317",
		PyroscopeURL:    "http://localhost:4040",
		ServiceName:     log.ServiceName,
		ServiceVersion:  "dev",
		SampleRate:      1.0,
		MetricsInterval: util.Duration(15 * time.Second),
		EnableTracing:   true,
		EnableMetrics:   true,
		EnableLogs:      true,
	}
}

// Validate checks the values are usable
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("Monitoring: sample rate %v is out of 0.0..1.0", c.SampleRate)
	}
	if c.OTLPEndpoint == "" && (c.EnableTracing || c.EnableLogs) {
		return fmt.Errorf("Monitoring: otlp endpoint is required for tracing and logs")
	}
	if c.EnableProfiling && c.PyroscopeURL == "" {
		return fmt.Errorf("Monitoring: pyroscope url is required for profiling")
	}
	return nil
}

// Monitor holds the providers and tears them down on Shutdown
type Monitor struct {
	config        *Config
	metricsFile   string
	shutdownFuncs []func(context.Context) error

	// Exporters connection, closed after all the shutdownFuncs flushed
	conn *grpc.ClientConn
}

// Initialize sets up the exporters and makes them global, disabled config returns no-op Monitor
func Initialize(ctx context.Context, config *Config) (*Monitor, error) {
	logger := log.WithFunc("monitoring", "Initialize")
	if !config.Enabled {
		logger.Debug("Disabled")
		return &Monitor{config: config}, nil
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	m, err := initialize(ctx, config)
	if err != nil {
		m.Shutdown(ctx)
		return nil, err
	}
	return m, nil
}

// initialize returns the partly initialized Monitor on error to be shut down
func initialize(ctx context.Context, config *Config) (*Monitor, error) {
	logger := log.WithFunc("monitoring", "initialize")
	m := &Monitor{config: config}
	res, err := m.createResource()
	if err != nil {
		return m, fmt.Errorf("Monitoring: failed to create resource: %w", err)
	}

	if config.EnableTracing || config.EnableMetrics || config.EnableLogs {
		m.conn, err = grpc.NewClient(config.OTLPEndpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return m, fmt.Errorf("Monitoring: failed to create gRPC connection: %w", err)
		}
	}

	if config.EnableTracing {
		if err := m.initTracing(ctx, m.conn, res); err != nil {
			return m, fmt.Errorf("Monitoring: failed to initialize tracing: %w", err)
		}
		logger.Info("Tracing initialized", "endpoint", config.OTLPEndpoint)
	}
	if config.EnableMetrics {
		if err := m.initMetrics(ctx, m.conn, res); err != nil {
			return m, fmt.Errorf("Monitoring: failed to initialize metrics: %w", err)
		}
		logger.Info("Metrics initialized", "interval", config.MetricsInterval)
	}
	if config.EnableLogs {
		if err := m.initLogging(ctx, m.conn, res); err != nil {
			return m, fmt.Errorf("Monitoring: failed to initialize logging: %w", err)
		}
		logger.Info("Logs export initialized")
	}
	if config.EnableProfiling {
		if err := m.initProfiling(); err != nil {
			return m, fmt.Errorf("Monitoring: failed to initialize profiling: %w", err)
		}
		logger.Info("Profiling initialized", "url", config.PyroscopeURL)
	}
	return m, nil
}

func (m *Monitor) createResource() (*resource.Resource, error) {
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(m.config.ServiceName),
		semconv.ServiceVersion(m.config.ServiceVersion),
		attribute.String("miq.appliance", m.config.Appliance),
		attribute.String("miq.appliance.version", m.config.ApplianceVersion),
	)
	return resource.Merge(resource.Default(), res)
}

func (m *Monitor) initTracing(ctx context.Context, conn *grpc.ClientConn, res *resource.Resource) error {
	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}
	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(m.config.SampleRate)),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	m.shutdownFuncs = append(m.shutdownFuncs, provider.Shutdown)
	return nil
}

func (m *Monitor) initMetrics(ctx context.Context, conn *grpc.ClientConn, res *resource.Resource) error {
	exporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		return fmt.Errorf("failed to create metrics exporter: %w", err)
	}
	opts := []metric.Option{
		metric.WithResource(res),
		metric.WithReader(metric.NewPeriodicReader(exporter,
			metric.WithInterval(time.Duration(m.config.MetricsInterval)))),
	}
	if m.config.MetricsFile != "" {
		// Registers the collector in the default prometheus registry, dumped on shutdown
		promExporter, err := prometheus.New()
		if err != nil {
			return fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		opts = append(opts, metric.WithReader(promExporter))
		m.metricsFile = m.config.MetricsFile
	}
	provider := metric.NewMeterProvider(opts...)
	otel.SetMeterProvider(provider)
	m.shutdownFuncs = append(m.shutdownFuncs, func(ctx context.Context) error {
		err := m.writeMetricsFile()
		return errors.Join(err, provider.Shutdown(ctx))
	})
	return nil
}

func (m *Monitor) writeMetricsFile() error {
	if m.metricsFile == "" {
		return nil
	}
	if err := promclient.WriteToTextfile(m.metricsFile, promclient.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics file %s: %w", m.metricsFile, err)
	}
	log.WithFunc("monitoring", "writeMetricsFile").Debug("Metrics written", "path", m.metricsFile)
	return nil
}

func (m *Monitor) initLogging(ctx context.Context, conn *grpc.ClientConn, res *resource.Resource) error {
	exporter, err := otlploggrpc.New(ctx, otlploggrpc.WithGRPCConn(conn))
	if err != nil {
		return fmt.Errorf("failed to create log exporter: %w", err)
	}
	provider := otellog.NewLoggerProvider(
		otellog.WithProcessor(otellog.NewBatchProcessor(exporter)),
		otellog.WithResource(res),
	)
	// Picked up by the otelslog bridge of the log package
	global.SetLoggerProvider(provider)
	m.shutdownFuncs = append(m.shutdownFuncs, provider.Shutdown)
	return nil
}

func (m *Monitor) initProfiling() error {
	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: m.config.ServiceName,
		ServerAddress:   m.config.PyroscopeURL,
		Tags: map[string]string{
			"appliance":         m.config.Appliance,
			"appliance_version": m.config.ApplianceVersion,
			"version":           m.config.ServiceVersion,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start pyroscope: %w", err)
	}
	m.shutdownFuncs = append(m.shutdownFuncs, func(context.Context) error {
		return profiler.Stop()
	})
	return nil
}

// IsEnabled returns whether monitoring is enabled
func (m *Monitor) IsEnabled() bool {
	return m.config != nil && m.config.Enabled
}

// Shutdown flushes and stops the exporters in the order they were started
func (m *Monitor) Shutdown(ctx context.Context) error {
	if m == nil || (len(m.shutdownFuncs) == 0 && m.conn == nil) {
		return nil
	}
	logger := log.WithFunc("monitoring", "Shutdown")
	logger.Debug("Shutting down...")

	var errs []error
	for _, shutdown := range m.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	m.shutdownFuncs = nil
	if m.conn != nil {
		if err := m.conn.Close(); err != nil {
			errs = append(errs, err)
		}
		m.conn = nil
	}
	if len(errs) > 0 {
		return fmt.Errorf("Monitoring: shutdown errors: %w", errors.Join(errs...))
	}
	logger.Debug("Shutdown complete")
	return nil
}
