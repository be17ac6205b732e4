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

// Package widget contains the console UI building blocks page objects are made of.
//
// Widgets are cheap values holding a driver and a locator, nothing is looked up until
// a method is called, so views can be constructed before the page is loaded.
package widget

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/adobe/miq-pages/lib/browser"
)

var (
	// ErrItemNotFound is returned when the requested item of a list, table or menu
	// is not present
	ErrItemNotFound = errors.New("item not found")

	// ErrColumnNotFound is returned when the table has no column with the header
	ErrColumnNotFound = errors.New("column not found")

	// ErrCandidateNotFound is returned when the tree path can't be followed
	ErrCandidateNotFound = errors.New("candidate not found")

	// ErrItemDisabled is returned on attempt to use disabled button or menu item
	ErrItemDisabled = errors.New("item is disabled")

	// ErrNotFillable is returned when widget can't accept the value
	ErrNotFillable = errors.New("value can't be filled")
)

// Widget is the common part of the widgets: driver and the root locator
type Widget struct {
	Browser browser.Driver
	Locator string
}

// IsDisplayed checks the widget is visible on the page
func (w Widget) IsDisplayed() bool {
	return w.Browser.IsVisible(w.Locator)
}

// Exists checks the widget is present in the page
func (w Widget) Exists() bool {
	return browser.Exists(w.Browser, w.Locator)
}

func (w Widget) child(loc string) string {
	return browser.Join(w.Locator, loc)
}

func (w Widget) hasClass(loc, class string) bool {
	classes, _, err := w.Browser.Attribute(loc, "class")
	if err != nil {
		return false
	}
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

// Fillable is a widget accepting values
type Fillable interface {
	// Fill sets the value and reports whether anything was changed
	Fill(value any) (bool, error)
	// Read returns the current value
	Read() (any, error)
}

// Field is a named fillable widget of the form
type Field struct {
	Name   string
	Widget Fillable
}

// Form is an ordered set of fields, filled in the declaration order
type Form []Field

// Fill sets the values by field names. Nil values are skipped, unknown names are
// reported as error before anything is filled.
func (f Form) Fill(values map[string]any) (bool, error) {
	known := make(map[string]bool, len(f))
	for _, field := range f {
		known[field.Name] = true
	}
	for name := range values {
		if !known[name] {
			return false, fmt.Errorf("Form: unknown field %q", name)
		}
	}

	changed := false
	for _, field := range f {
		value, ok := values[field.Name]
		if !ok || value == nil {
			continue
		}
		ch, err := field.Widget.Fill(value)
		if err != nil {
			return changed, fmt.Errorf("Form: unable to fill %q: %w", field.Name, err)
		}
		changed = changed || ch
	}
	return changed, nil
}

// Read returns values of all the fields
func (f Form) Read() (map[string]any, error) {
	out := make(map[string]any, len(f))
	for _, field := range f {
		v, err := field.Widget.Read()
		if err != nil {
			return out, fmt.Errorf("Form: unable to read %q: %w", field.Name, err)
		}
		out[field.Name] = v
	}
	return out, nil
}

func toString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(v), nil
	}
	return "", fmt.Errorf("%w: unsupported type %T", ErrNotFillable, value)
}
