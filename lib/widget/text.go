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

package widget

import (
	"fmt"
	"strings"

	"github.com/adobe/miq-pages/lib/browser"
)

// Text is any element we only read the text of
type Text struct {
	Widget
}

// NewText creates Text widget by XPath locator
func NewText(b browser.Driver, loc string) Text {
	return Text{Widget{b, loc}}
}

// Text returns trimmed text of the element
func (t Text) Text() (string, error) {
	text, err := t.Browser.Text(t.Locator)
	return strings.TrimSpace(text), err
}

// TextOrEmpty returns text of the element or empty string if it's not here
func (t Text) TextOrEmpty() string {
	text, _ := t.Text()
	return text
}

// Button is a patternfly button, link or submit input
type Button struct {
	Widget
}

const buttonKinds = "(self::a or self::button or (self::input and (@type='button' or @type='submit')))"

// NewButton locates the button by its text, title or value
func NewButton(b browser.Driver, text string) Button {
	q := browser.Quote(text)
	return Button{Widget{b, fmt.Sprintf(
		"//*[%s and %s and (normalize-space(.)=%s or @title=%s or @value=%s)]",
		buttonKinds, browser.HasClass("btn"), q, q, q)}}
}

// NewButtonByTitle locates the button by title only, for icon buttons
func NewButtonByTitle(b browser.Driver, title string) Button {
	return Button{Widget{b, fmt.Sprintf("//*[%s and @title=%s]", buttonKinds, browser.Quote(title))}}
}

// IsDisabled checks the button is disabled by attribute or class
func (bt Button) IsDisabled() bool {
	if _, ok, _ := bt.Browser.Attribute(bt.Locator, "disabled"); ok {
		return true
	}
	return bt.hasClass(bt.Locator, "disabled")
}

// Click clicks the button if it's enabled
func (bt Button) Click() error {
	if !bt.Exists() {
		return fmt.Errorf("Button: %s: %w", bt.Locator, browser.ErrNoSuchElement)
	}
	if bt.IsDisabled() {
		return fmt.Errorf("Button: %s: %w", bt.Locator, ErrItemDisabled)
	}
	return bt.Browser.Click(bt.Locator)
}
