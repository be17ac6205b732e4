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

	"github.com/adobe/miq-pages/lib/browser"
)

// Dropdown is a toolbar button with the menu of items
type Dropdown struct {
	Widget
	Text string
}

// NewDropdown locates the dropdown by its button text or title
func NewDropdown(b browser.Driver, text string) Dropdown {
	q := browser.Quote(text)
	return Dropdown{
		Widget{b, fmt.Sprintf("//div[%s and ./button[normalize-space(.)=%s or @title=%s]]", browser.HasClass("dropdown"), q, q)},
		text,
	}
}

func (d Dropdown) itemLocator(item string) string {
	return d.child(fmt.Sprintf(".//ul/li[./a[normalize-space(.)=%s]]", browser.Quote(item)))
}

// Items returns texts of the menu items
func (d Dropdown) Items() ([]string, error) {
	return d.Browser.Texts(d.child(".//ul/li/a"))
}

// HasItem checks the item is in the menu
func (d Dropdown) HasItem(item string) bool {
	return browser.Exists(d.Browser, d.itemLocator(item))
}

// ItemEnabled checks the item is present and not disabled
func (d Dropdown) ItemEnabled(item string) bool {
	loc := d.itemLocator(item)
	if !browser.Exists(d.Browser, loc) {
		return false
	}
	return !d.hasClass(loc, "disabled") && !d.hasClass(loc+"/a", "disabled")
}

// IsEnabled checks the dropdown button is enabled
func (d Dropdown) IsEnabled() bool {
	btn := d.child("./button")
	if _, ok, _ := d.Browser.Attribute(btn, "disabled"); ok {
		return false
	}
	return !d.hasClass(btn, "disabled")
}

func (d Dropdown) open() error {
	if !d.Exists() {
		return fmt.Errorf("Dropdown %q: %w", d.Text, browser.ErrNoSuchElement)
	}
	if !d.IsEnabled() {
		return fmt.Errorf("Dropdown %q: %w", d.Text, ErrItemDisabled)
	}
	return d.Browser.Click(d.child("./button"))
}

// ItemSelect opens the dropdown and clicks the item
func (d Dropdown) ItemSelect(item string) error {
	return d.itemSelect(item, nil)
}

// ItemSelectWithAlert clicks the item and accepts or dismisses the dialog it raises
func (d Dropdown) ItemSelectWithAlert(item string, accept bool) error {
	return d.itemSelect(item, &accept)
}

func (d Dropdown) itemSelect(item string, accept *bool) error {
	if err := d.open(); err != nil {
		return err
	}
	if !d.HasItem(item) {
		return fmt.Errorf("Dropdown %q: item %q: %w", d.Text, item, ErrItemNotFound)
	}
	if !d.ItemEnabled(item) {
		return fmt.Errorf("Dropdown %q: item %q: %w", d.Text, item, ErrItemDisabled)
	}
	if accept != nil {
		// Click could fail or raise no dialog, the armed handler must not outlive it
		defer d.Browser.HandleNextDialog(*accept)()
	}
	return d.Browser.Click(d.itemLocator(item) + "/a")
}

// BreadCrumb is the location path above the page title
type BreadCrumb struct {
	Widget
}

// NewBreadCrumb locates the breadcrumb of the page
func NewBreadCrumb(b browser.Driver) BreadCrumb {
	return BreadCrumb{Widget{b, fmt.Sprintf("//ol[%s]", browser.HasClass("breadcrumb"))}}
}

// Locations returns all the crumbs
func (bc BreadCrumb) Locations() ([]string, error) {
	return bc.Browser.Texts(bc.child("./li"))
}

// ActiveLocation returns the active crumb, or the last one if none is marked active
func (bc BreadCrumb) ActiveLocation() (string, error) {
	active := bc.child(fmt.Sprintf("./li[%s]", browser.HasClass("active")))
	if browser.Exists(bc.Browser, active) {
		return bc.Browser.Text(active)
	}
	locations, err := bc.Locations()
	if err != nil {
		return "", err
	}
	if len(locations) == 0 {
		return "", fmt.Errorf("BreadCrumb: %w", ErrItemNotFound)
	}
	return locations[len(locations)-1], nil
}
