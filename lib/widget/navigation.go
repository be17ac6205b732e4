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
	"errors"
	"fmt"
	"strings"

	"github.com/adobe/miq-pages/lib/browser"
)

// Navigation is the vertical main menu of the console
type Navigation struct {
	Widget
}

// NewNavigation locates the main menu
func NewNavigation(b browser.Driver) Navigation {
	return Navigation{Widget{b, fmt.Sprintf("//nav[@id='main-menu']/ul[%s]", browser.HasClass("list-group"))}}
}

const navItemText = "./a/span[contains(@class, 'list-group-item-value')]"

func navItem(list, name string) string {
	return browser.Join(list, fmt.Sprintf("./li[normalize-space(%s)=%s]", navItemText, browser.Quote(name)))
}

// Select goes through the menu levels and clicks the last one
func (n Navigation) Select(levels ...string) error {
	if len(levels) == 0 {
		return errors.New("Navigation: no levels to select")
	}
	list := n.Locator
	for i, level := range levels {
		item := navItem(list, level)
		if !browser.Exists(n.Browser, item) {
			return fmt.Errorf("Navigation: %q: %w", strings.Join(levels[:i+1], " / "), ErrItemNotFound)
		}
		if i == len(levels)-1 {
			return n.Browser.Click(item + "/a")
		}
		// Submenus show up only on hover
		if err := n.Browser.Hover(item + "/a"); err != nil {
			return fmt.Errorf("Navigation: %q: %w", level, err)
		}
		list = item + "/div/ul"
	}
	return nil
}

// CurrentlySelected returns the path of active menu items
func (n Navigation) CurrentlySelected() ([]string, error) {
	var path []string
	list := n.Locator
	for {
		item := browser.Join(list, fmt.Sprintf("./li[%s]", browser.HasClass("active")))
		if !browser.Exists(n.Browser, item) {
			return path, nil
		}
		text, err := n.Browser.Text(browser.Join(item, navItemText))
		if err != nil {
			return nil, err
		}
		path = append(path, strings.TrimSpace(text))
		list = item + "/div/ul"
	}
}

// IsSelected checks the active menu path equals the given one
func (n Navigation) IsSelected(levels ...string) bool {
	current, err := n.CurrentlySelected()
	if err != nil || len(current) != len(levels) {
		return false
	}
	for i := range levels {
		if current[i] != levels[i] {
			return false
		}
	}
	return true
}
