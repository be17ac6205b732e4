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
	"strconv"

	"github.com/adobe/miq-pages/lib/browser"
)

// Input is a text input or textarea
type Input struct {
	Widget
}

// NewTextInput locates the input by name
func NewTextInput(b browser.Driver, name string) Input {
	return Input{Widget{b, fmt.Sprintf("//input[@name=%s]", browser.Quote(name))}}
}

// NewInput locates the input or textarea by id or name
func NewInput(b browser.Driver, idOrName string) Input {
	q := browser.Quote(idOrName)
	return Input{Widget{b, fmt.Sprintf("//*[(self::input or self::textarea) and (@id=%s or @name=%s)]", q, q)}}
}

// Fill puts the string representation of the value, does nothing if it's already set
func (i Input) Fill(value any) (bool, error) {
	s, err := toString(value)
	if err != nil {
		return false, err
	}
	current, err := i.Browser.Value(i.Locator)
	if err != nil {
		return false, err
	}
	if current == s {
		return false, nil
	}
	return true, i.Browser.Fill(i.Locator, s)
}

// Read returns the current value
func (i Input) Read() (any, error) {
	return i.Browser.Value(i.Locator)
}

// Select is a plain html select
type Select struct {
	Widget
	control string
}

// NewSelect locates the select by name
func NewSelect(b browser.Driver, name string) Select {
	loc := fmt.Sprintf("//select[@name=%s]", browser.Quote(name))
	return Select{Widget{b, loc}, loc}
}

// NewBootstrapSelect locates the bootstrap-select by id of the underlying select.
// The widget is displayed as the button, while the value goes through the hidden select.
func NewBootstrapSelect(b browser.Driver, id string) Select {
	q := browser.Quote(id)
	return Select{
		Widget{b, fmt.Sprintf("//div[%s and .//select[@id=%s]]", browser.HasClass("bootstrap-select"), q)},
		fmt.Sprintf("//select[@id=%s]", q),
	}
}

// NewDialogDropDown is the drop down list of the service dialog (5.9+), root is the
// field container
func NewDialogDropDown(b browser.Driver, root string) Select {
	return Select{Widget{b, root}, browser.Join(root, ".//select")}
}

// Fill selects the option by visible text
func (s Select) Fill(value any) (bool, error) {
	text, err := toString(value)
	if err != nil {
		return false, err
	}
	current, err := s.Browser.Value(s.control)
	if err != nil {
		return false, err
	}
	if current == text {
		return false, nil
	}
	return true, s.Browser.SelectOption(s.control, text)
}

// Read returns text of the selected option
func (s Select) Read() (any, error) {
	return s.Browser.Value(s.control)
}

// Options returns texts of all the options
func (s Select) Options() ([]string, error) {
	return s.Browser.Texts(browser.Join(s.control, "./option"))
}

// Switch is a bootstrap switch over the checkbox
type Switch struct {
	Widget
	input string
}

// NewBootstrapSwitch locates the switch by checkbox name
func NewBootstrapSwitch(b browser.Driver, name string) Switch {
	input := fmt.Sprintf("//input[@type='checkbox' and @name=%s]", browser.Quote(name))
	return Switch{
		Widget{b, fmt.Sprintf("%s | %s/ancestor::div[%s][1]", input, input, browser.HasClass("bootstrap-switch"))},
		input,
	}
}

// Fill sets the switch state, accepts bool or its string form
func (s Switch) Fill(value any) (bool, error) {
	var want bool
	switch v := value.(type) {
	case bool:
		want = v
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("%w: %q is not a bool", ErrNotFillable, v)
		}
		want = b
	default:
		return false, fmt.Errorf("%w: unsupported type %T", ErrNotFillable, value)
	}
	current, err := s.Browser.IsChecked(s.input)
	if err != nil {
		return false, err
	}
	if current == want {
		return false, nil
	}
	return true, s.Browser.SetChecked(s.input, want)
}

// Read returns the switch state
func (s Switch) Read() (any, error) {
	return s.Browser.IsChecked(s.input)
}
