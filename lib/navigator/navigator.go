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

// Package navigator is the registry of navigation steps between the console screens.
//
// Every step is registered for the kind of the entity and the destination name. To
// reach the destination the navigator first checks whether the step view is already
// displayed, otherwise it resolves the step prerequisite (which is another step of
// the same or a related entity) and runs the step action on top of it.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/adobe/miq-pages/lib/log"
	"github.com/adobe/miq-pages/lib/monitoring"
	"github.com/adobe/miq-pages/lib/util"
)

var (
	// ErrNoDestination is returned when the step is not registered for the entity kind
	ErrNoDestination = errors.New("no such destination")

	// ErrNavigationLoop is returned when prerequisites are nested deeper than allowed
	ErrNavigationLoop = errors.New("navigation loop")

	// ErrViewNotDisplayed is returned when the step was done but its view didn't show up
	ErrViewNotDisplayed = errors.New("view is not displayed")

	// ErrAlreadyRegistered is returned on attempt to register the same step twice
	ErrAlreadyRegistered = errors.New("step is already registered")
)

var navTracer = otel.Tracer("miq-pages/navigator")

// Navigable is an entity or collection the steps could be registered for
type Navigable interface {
	NavigationKind() string
}

// View is the page object the step leads to
type View interface {
	IsDisplayed() bool
}

// Prerequisite is where the step starts from
type Prerequisite struct {
	Kind string // Kind of the target, empty when it's the same entity
	Dest string
	Via  string // How the target is obtained, shown on the graph

	get func(obj Navigable) Navigable
}

// ToSibling starts the step from another destination of the same entity
func ToSibling(dest string) *Prerequisite {
	return &Prerequisite{Dest: dest}
}

// ToAttribute starts the step from the destination of the related entity, like the
// parent collection or the appliance server
func ToAttribute[T Navigable](kind, dest string, get func(obj T) Navigable) *Prerequisite {
	return &Prerequisite{
		Kind: kind,
		Dest: dest,
		Via:  "attribute",
		get: func(obj Navigable) Navigable {
			if o, ok := obj.(T); ok {
				return get(o)
			}
			return nil
		},
	}
}

// ToObject starts the step from the destination of the fixed entity
func ToObject(target Navigable, dest string) *Prerequisite {
	return &Prerequisite{
		Kind: target.NavigationKind(),
		Dest: dest,
		Via:  "object",
		get:  func(Navigable) Navigable { return target },
	}
}

func (p *Prerequisite) target(obj Navigable) (Navigable, error) {
	if p.get == nil {
		return obj, nil
	}
	t := p.get(obj)
	if t == nil {
		return nil, fmt.Errorf("Navigator: unable to get prerequisite %s/%s for %s", p.Kind, p.Dest, obj.NavigationKind())
	}
	return t, nil
}

// Step describes how to get to the destination for the entity of type T
type Step[T Navigable] struct {
	// View builds the page object of the destination, could be nil if the step has no
	// view to check
	View func(obj T) View

	// Prerequisite is where the step starts, nil means it can be done from anywhere
	Prerequisite *Prerequisite

	// Do performs the action on top of the prerequisite view
	Do func(ctx context.Context, obj T, prereq View) error

	// Resetter brings the view to the default state after the navigation, optional
	Resetter func(ctx context.Context, obj T, view View) error
}

// step is the type-erased Step
type step struct {
	kind         string
	name         string
	view         func(obj Navigable) View
	prerequisite *Prerequisite
	do           func(ctx context.Context, obj Navigable, prereq View) error
	resetter     func(ctx context.Context, obj Navigable, view View) error
}

type stepKey struct {
	kind string
	name string
}

// Config of the navigator
type Config struct {
	Retries     int           // How many times to retry the failed step
	WaitForView bool          // Wait for the view to be displayed after the step
	ViewTimeout time.Duration // How long to wait for the view
	MaxDepth    int           // Max nesting of prerequisites
	RetryDelay  time.Duration // Pause before the retry
}

// DefaultConfig returns the default navigator configuration
func DefaultConfig() Config {
	return Config{
		Retries:     2,
		WaitForView: true,
		ViewTimeout: 10 * time.Second,
		MaxDepth:    16,
		RetryDelay:  time.Second,
	}
}

// Navigator is the registry of the steps
type Navigator struct {
	cfg Config

	mu    sync.RWMutex
	steps map[stepKey]*step
	fatal []error

	metrics *monitoring.Metrics
}

// New creates the empty navigator
func New(cfg Config) *Navigator {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultConfig().MaxDepth
	}
	n := &Navigator{
		cfg:   cfg,
		steps: make(map[stepKey]*step),
		fatal: []error{ErrNoDestination, ErrNavigationLoop, context.Canceled, context.DeadlineExceeded},
	}
	n.metrics = monitoring.Default()
	return n
}

// Register adds the step for the entity kind
func Register[T Navigable](n *Navigator, kind, name string, s Step[T]) error {
	if s.Do == nil {
		return fmt.Errorf("Navigator: step %s/%s has no action", kind, name)
	}
	key := stepKey{kind, name}

	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.steps[key]; ok {
		return fmt.Errorf("Navigator: %s/%s: %w", kind, name, ErrAlreadyRegistered)
	}

	st := &step{kind: kind, name: name, prerequisite: s.Prerequisite}
	cast := func(obj Navigable) (T, error) {
		o, ok := obj.(T)
		if !ok {
			return o, fmt.Errorf("Navigator: step %s/%s can't be used for %T", kind, name, obj)
		}
		return o, nil
	}
	if s.View != nil {
		st.view = func(obj Navigable) View {
			o, err := cast(obj)
			if err != nil {
				return nil
			}
			return s.View(o)
		}
	}
	st.do = func(ctx context.Context, obj Navigable, prereq View) error {
		o, err := cast(obj)
		if err != nil {
			return err
		}
		return s.Do(ctx, o, prereq)
	}
	if s.Resetter != nil {
		st.resetter = func(ctx context.Context, obj Navigable, view View) error {
			o, err := cast(obj)
			if err != nil {
				return err
			}
			return s.Resetter(ctx, o, view)
		}
	}
	n.steps[key] = st
	return nil
}

// MustRegister is Register which panics on error, used during the console setup
func MustRegister[T Navigable](n *Navigator, kind, name string, s Step[T]) {
	if err := Register(n, kind, name, s); err != nil {
		panic(err)
	}
}

// AddFatal marks errors which should not be retried, usually domain not-found errors
func (n *Navigator) AddFatal(errs ...error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.fatal = append(n.fatal, errs...)
}

func (n *Navigator) isFatal(err error) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, f := range n.fatal {
		if errors.Is(err, f) {
			return true
		}
	}
	return false
}

func (n *Navigator) lookup(kind, name string) (*step, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	st, ok := n.steps[stepKey{kind, name}]
	return st, ok
}

type options struct {
	force bool
	wait  *bool
}

// Option changes the single navigation
type Option func(*options)

// Force runs the step even if its view is already displayed
func Force() Option {
	return func(o *options) { o.force = true }
}

// WaitForView overrides the navigator setting of waiting for the destination view
func WaitForView(wait bool) Option {
	return func(o *options) { o.wait = &wait }
}

// NavigateTo brings the browser to the destination of the entity and returns its view
func (n *Navigator) NavigateTo(ctx context.Context, obj Navigable, dest string, opts ...Option) (View, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return n.navigate(ctx, obj, dest, 0, o)
}

func (n *Navigator) navigate(ctx context.Context, obj Navigable, dest string, depth int, o options) (View, error) {
	logger := log.WithFunc("navigator", "navigate").With("kind", obj.NavigationKind(), "dest", dest, "depth", depth)

	ctx, span := navTracer.Start(ctx, "navigator.NavigateTo",
		trace.WithAttributes(
			attribute.String("navigation.kind", obj.NavigationKind()),
			attribute.String("navigation.dest", dest),
			attribute.Int("navigation.depth", depth),
		))
	defer span.End()
	started := time.Now()

	fail := func(err error) (View, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		n.metrics.RecordNavigation(ctx, obj.NavigationKind(), dest, "error", time.Since(started))
		return nil, err
	}

	if depth > n.cfg.MaxDepth {
		return fail(fmt.Errorf("Navigator: %s/%s at depth %d: %w", obj.NavigationKind(), dest, depth, ErrNavigationLoop))
	}
	st, ok := n.lookup(obj.NavigationKind(), dest)
	if !ok {
		return fail(fmt.Errorf("Navigator: %s/%s: %w", obj.NavigationKind(), dest, ErrNoDestination))
	}

	var view View
	if st.view != nil {
		view = st.view(obj)
	}

	if !o.force && view != nil && view.IsDisplayed() {
		logger.Debug("Already here")
		span.SetAttributes(attribute.Bool("navigation.skipped", true))
	} else {
		if err := n.runStep(ctx, st, obj, depth, logger); err != nil {
			return fail(err)
		}
	}

	if st.resetter != nil {
		if err := st.resetter(ctx, obj, view); err != nil {
			return fail(fmt.Errorf("Navigator: reset of %s/%s: %w", st.kind, st.name, err))
		}
	}

	wait := n.cfg.WaitForView
	if o.wait != nil {
		wait = *o.wait
	}
	if wait && view != nil {
		err := util.WaitFor(ctx, util.Wait{Timeout: n.cfg.ViewTimeout, Delay: 200 * time.Millisecond, Message: "view of " + st.kind + "/" + st.name},
			func() (bool, error) { return view.IsDisplayed(), nil })
		if err != nil {
			return fail(fmt.Errorf("Navigator: %s/%s: %w: %v", st.kind, st.name, ErrViewNotDisplayed, err))
		}
	}

	n.metrics.RecordNavigation(ctx, obj.NavigationKind(), dest, "ok", time.Since(started))
	return view, nil
}

func (n *Navigator) runStep(ctx context.Context, st *step, obj Navigable, depth int, logger *slog.Logger) error {
	var err error
	for attempt := 0; attempt <= n.cfg.Retries; attempt++ {
		if attempt > 0 {
			logger.Warn("Retrying the step", "attempt", attempt, "err", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(n.cfg.RetryDelay):
			}
		}

		var prereq View
		if st.prerequisite != nil {
			var target Navigable
			if target, err = st.prerequisite.target(obj); err != nil {
				return err
			}
			if prereq, err = n.navigate(ctx, target, st.prerequisite.Dest, depth+1, options{}); err != nil {
				if n.isFatal(err) {
					return err
				}
				continue
			}
		}

		logger.Debug("Running the step")
		if err = st.do(ctx, obj, prereq); err == nil {
			return nil
		}
		if n.isFatal(err) {
			return err
		}
	}
	return err
}

// Destinations returns sorted names of the steps registered for the kind
func (n *Navigator) Destinations(kind string) []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	var out []string
	for k := range n.steps {
		if k.kind == kind {
			out = append(out, k.name)
		}
	}
	sort.Strings(out)
	return out
}

// Kinds returns sorted kinds having registered steps
func (n *Navigator) Kinds() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for k := range n.steps {
		if !seen[k.kind] {
			seen[k.kind] = true
			out = append(out, k.kind)
		}
	}
	sort.Strings(out)
	return out
}

// Graph returns the registered steps in Graphviz DOT format, edges go from the
// prerequisite to the step
func (n *Navigator) Graph() string {
	n.mu.RLock()
	keys := make([]stepKey, 0, len(n.steps))
	for k := range n.steps {
		keys = append(keys, k)
	}
	n.mu.RUnlock()
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].kind != keys[j].kind {
			return keys[i].kind < keys[j].kind
		}
		return keys[i].name < keys[j].name
	})

	var sb strings.Builder
	sb.WriteString("digraph navigation {\n")
	for _, k := range keys {
		st, _ := n.lookup(k.kind, k.name)
		node := fmt.Sprintf("%q", k.kind+"/"+k.name)
		if st.prerequisite == nil {
			fmt.Fprintf(&sb, "\t%s;\n", node)
			continue
		}
		kind := st.prerequisite.Kind
		if kind == "" {
			kind = k.kind
		}
		from := fmt.Sprintf("%q", kind+"/"+st.prerequisite.Dest)
		if st.prerequisite.Via != "" {
			fmt.Fprintf(&sb, "\t%s -> %s [label=%q];\n", from, node, st.prerequisite.Via)
		} else {
			fmt.Fprintf(&sb, "\t%s -> %s;\n", from, node)
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}
