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

// Package browser defines the primitives page objects use to talk to the console UI
// and the drivers implementing them
package browser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoSuchElement is returned when a locator does not match anything on the page
	ErrNoSuchElement = errors.New("no such element")

	// ErrUnexpectedDialog is returned when a confirmation dialog appeared and nobody
	// asked to handle it
	ErrUnexpectedDialog = errors.New("unexpected dialog")
)

// Driver is the set of browser operations page objects rely on.
//
// Every locator is an XPath expression. Operations that act on a single element use
// the first match.
type Driver interface {
	Goto(url string) error
	URL() string
	Refresh() error

	Count(loc string) (int, error)
	Text(loc string) (string, error)
	Texts(loc string) ([]string, error)
	IsVisible(loc string) bool
	Attribute(loc, name string) (string, bool, error)
	Value(loc string) (string, error)
	IsChecked(loc string) (bool, error)

	Click(loc string) error
	Hover(loc string) error
	Fill(loc, value string) error
	SelectOption(loc, label string) error
	SetChecked(loc string, checked bool) error

	// HandleNextDialog arms the driver to accept or dismiss the next confirmation
	// dialog triggered by an action. The returned func disarms it if no dialog was
	// handled yet.
	HandleNextDialog(accept bool) (disarm func())
}

// Join anchors a relative locator (starting with "./" or ".//") under root.
// Absolute locators are returned unchanged.
func Join(root, loc string) string {
	if root == "" {
		return loc
	}
	if strings.HasPrefix(loc, "./") {
		return root + loc[1:]
	}
	if loc == "." {
		return root
	}
	return loc
}

// Nth returns the locator of the i-th (1-based) element matched by loc
func Nth(loc string, i int) string {
	return fmt.Sprintf("(%s)[%d]", loc, i)
}

// Quote returns s as an XPath string literal
func Quote(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if p != "" {
			quoted = append(quoted, "'"+p+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

// HasClass returns XPath predicate checking the element has the css class
func HasClass(class string) string {
	return fmt.Sprintf("contains(concat(' ', normalize-space(@class), ' '), ' %s ')", class)
}

// Exists returns true when the locator matches at least one element
func Exists(d Driver, loc string) bool {
	n, err := d.Count(loc)
	return err == nil && n > 0
}
