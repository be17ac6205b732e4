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

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorGray   = "\033[90m"
	ColorRed    = "\033[91m"
	ColorYellow = "\033[93m"
	ColorBlue   = "\033[94m"
	ColorCyan   = "\033[96m"
	ColorDim    = "\033[2m"
)

// ConsoleHandler prints records as a single human-readable line:
//
//	[yymmdd/hhmmss-tz] LVL message pack.func key=value ...
type ConsoleHandler struct {
	opts *slog.HandlerOptions

	// Shared between the derived handlers to not mix lines
	mu     *sync.Mutex
	writer io.Writer

	useColor     bool
	useTimestamp bool

	// Pre-formatted attributes from WithAttrs
	pack, fun string
	prefix    string
	groups    []string
}

// NewConsoleHandler creates a new ConsoleHandler, colors are enabled for terminals
func NewConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *ConsoleHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &ConsoleHandler{
		opts:         opts,
		mu:           &sync.Mutex{},
		writer:       w,
		useColor:     isTerminal(w),
		useTimestamp: true,
	}
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SetUseColor enables or disables color output
func (h *ConsoleHandler) SetUseColor(useColor bool) {
	h.useColor = useColor
}

// SetUseTimestamp enables or disables the timestamp prefix
func (h *ConsoleHandler) SetUseTimestamp(useTimestamp bool) {
	h.useTimestamp = useTimestamp
}

// Enabled reports whether the handler handles records at the given level
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle writes the record
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var buf strings.Builder

	if h.useTimestamp {
		layout := "060102/150405-07"
		if h.Enabled(context.Background(), slog.LevelDebug) {
			layout = "060102/150405.000-07"
		}
		buf.WriteString(h.colorize(ColorGray, "["+r.Time.Format(layout)+"]"))
		buf.WriteByte(' ')
	}

	levelColor := levelColor(r.Level)
	buf.WriteString(h.colorize(levelColor, formatLevel(r.Level)))
	buf.WriteByte(' ')
	buf.WriteString(h.colorize(levelColor, r.Message))

	pack, fun := h.pack, h.fun
	var attrs strings.Builder
	attrs.WriteString(h.prefix)
	r.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "pack":
			pack = a.Value.String()
		case "func":
			fun = a.Value.String()
		default:
			h.writeAttr(&attrs, h.groups, a)
		}
		return true
	})
	if pack != "" && fun != "" {
		buf.WriteByte(' ')
		buf.WriteString(h.colorize(ColorDim, pack+"."+fun))
	}
	buf.WriteString(attrs.String())
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, buf.String())
	return err
}

func (h *ConsoleHandler) writeAttr(buf *strings.Builder, groups []string, a slog.Attr) {
	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(groups, a)
	}
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		sub := groups
		if a.Key != "" {
			sub = append(append([]string{}, groups...), a.Key)
		}
		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, sub, ga)
		}
		return
	}

	buf.WriteByte(' ')
	for _, g := range groups {
		buf.WriteString(g)
		buf.WriteByte('.')
	}
	buf.WriteString(a.Key)
	buf.WriteByte('=')
	buf.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			return strconv.Quote(s)
		}
		return s
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return strconv.Quote(err.Error())
		}
		return fmt.Sprintf("%+v", v.Any())
	default:
		return v.String()
	}
}

func formatLevel(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "DBG"
	case level < slog.LevelWarn:
		return "INF"
	case level < slog.LevelError:
		return "WRN"
	default:
		return "ERR"
	}
}

func levelColor(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return ColorCyan
	case level < slog.LevelWarn:
		return ColorBlue
	case level < slog.LevelError:
		return ColorYellow
	default:
		return ColorRed
	}
}

func (h *ConsoleHandler) colorize(color, text string) string {
	if !h.useColor {
		return text
	}
	return color + text + ColorReset
}

func (h *ConsoleHandler) clone() *ConsoleHandler {
	c := *h
	c.groups = append([]string(nil), h.groups...)
	return &c
}

// WithAttrs returns a new ConsoleHandler with the attributes pre-formatted
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	var buf strings.Builder
	buf.WriteString(h.prefix)
	for _, a := range attrs {
		switch {
		case a.Key == "pack" && len(h.groups) == 0:
			c.pack = a.Value.String()
		case a.Key == "func" && len(h.groups) == 0:
			c.fun = a.Value.String()
		default:
			h.writeAttr(&buf, h.groups, a)
		}
	}
	c.prefix = buf.String()
	return c
}

// WithGroup returns a new ConsoleHandler prefixing the next attributes with the group
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	c.groups = append(c.groups, name)
	return c
}
