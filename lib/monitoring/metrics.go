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

package monitoring

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/adobe/miq-pages/lib/log"
)

const instrumentationName = "miq-pages"

// Metrics holds the instruments of the console session
type Metrics struct {
	navigationSteps    metric.Int64Counter
	navigationDuration metric.Float64Histogram
	operations         metric.Int64Counter
	operationErrors    metric.Int64Counter
	operationDuration  metric.Float64Histogram
	flashMessages      metric.Int64Counter
}

// NewMetrics creates the instruments on the meter
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.navigationSteps, err = meter.Int64Counter("miq.navigation.steps",
		metric.WithDescription("Navigation steps executed"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NavigationSteps metric: %w", err)
	}
	m.navigationDuration, err = meter.Float64Histogram("miq.navigation.step.duration",
		metric.WithDescription("Duration of the navigation steps"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NavigationDuration metric: %w", err)
	}
	m.operations, err = meter.Int64Counter("miq.operations",
		metric.WithDescription("Entity operations performed through the console"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Operations metric: %w", err)
	}
	m.operationErrors, err = meter.Int64Counter("miq.operation.errors",
		metric.WithDescription("Entity operations failed"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OperationErrors metric: %w", err)
	}
	m.operationDuration, err = meter.Float64Histogram("miq.operation.duration",
		metric.WithDescription("Duration of the entity operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OperationDuration metric: %w", err)
	}
	m.flashMessages, err = meter.Int64Counter("miq.flash.messages",
		metric.WithDescription("Flash messages seen after the operations"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create FlashMessages metric: %w", err)
	}
	return m, nil
}

// RecordNavigation records the executed navigation step
func (m *Metrics) RecordNavigation(ctx context.Context, kind, dest, result string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("navigation.kind", kind),
		attribute.String("navigation.dest", dest),
		attribute.String("navigation.result", result),
	)
	m.navigationSteps.Add(ctx, 1, attrs)
	m.navigationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordOperation records the entity operation, failed if err is not nil
func (m *Metrics) RecordOperation(ctx context.Context, kind, op string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("entity.kind", kind),
		attribute.String("entity.operation", op),
	}
	m.operations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	if err != nil {
		m.operationErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordFlash records the flash message type shown on the page
func (m *Metrics) RecordFlash(ctx context.Context, kind, msgType string) {
	m.flashMessages.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity.kind", kind),
		attribute.String("flash.type", msgType),
	))
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// Default returns the metrics on the global meter provider. Instruments created
// before Initialize are switched to the configured provider by otel.
func Default() *Metrics {
	defaultMetricsOnce.Do(func() {
		m, err := NewMetrics(otel.Meter(instrumentationName))
		if err != nil {
			log.WithFunc("monitoring", "Default").Warn("Unable to create metrics", "err", err)
			m, _ = NewMetrics(noop.NewMeterProvider().Meter(instrumentationName))
		}
		defaultMetrics = m
	})
	return defaultMetrics
}

// StartOperation opens span for the entity operation and returns the function to
// finish it with the operation result
func StartOperation(ctx context.Context, kind, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	started := time.Now()
	attrs = append(attrs,
		attribute.String("entity.kind", kind),
		attribute.String("entity.operation", op),
	)
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, kind+"."+op, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		Default().RecordOperation(ctx, kind, op, time.Since(started), err)
	}
}
