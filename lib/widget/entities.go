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

	"github.com/adobe/miq-pages/lib/browser"
)

// TitleLocator is the page title of the non-explorer screens
const TitleLocator = "//div[@id='main-content']//h1"

// ExplorerTitleLocator is the page title of the explorer screens
const ExplorerTitleLocator = "//h1[@id='explorer_title_text']"

// Paginator is the pagination pane under the list of entities
type Paginator struct {
	Widget
}

// NewPaginator locates the pagination pane of the page
func NewPaginator(b browser.Driver) Paginator {
	return Paginator{Widget{b, "//div[@id='paging_div']"}}
}

func (p Paginator) control(class string) string {
	return p.child(fmt.Sprintf(".//ul[%s]/li[%s]", browser.HasClass("pagination"), browser.HasClass(class)))
}

func (p Paginator) usable(class string) bool {
	loc := p.control(class)
	return browser.Exists(p.Browser, loc) && !p.hasClass(loc, "disabled")
}

// IsLastPage checks there is no next page, a missing pane means single page
func (p Paginator) IsLastPage() bool {
	return !p.usable("next")
}

// NextPage moves to the next page
func (p Paginator) NextPage() error {
	if !p.usable("next") {
		return fmt.Errorf("Paginator: next page: %w", ErrItemDisabled)
	}
	return p.Browser.Click(p.control("next") + "/*[1]")
}

// FirstPage moves to the first page, does nothing if it's already here
func (p Paginator) FirstPage() error {
	if !p.usable("first") {
		return nil
	}
	return p.Browser.Click(p.control("first") + "/*[1]")
}

// Search is the search box of the list screens
type Search struct {
	Widget
}

// NewSearch locates the search box of the page
func NewSearch(b browser.Driver) Search {
	return Search{Widget{b, "//div[@id='searchbox']"}}
}

// Simple puts the text into the search input and submits it
func (s Search) Simple(text string) error {
	if err := s.Browser.Fill(s.child(".//input[@id='search_text']"), text); err != nil {
		return fmt.Errorf("Search: unable to fill: %w", err)
	}
	return s.Browser.Click(s.child(".//*[@id='searchbtn']"))
}

// ViewSelector switches between Grid, Tile and List view of the entities
type ViewSelector struct {
	Widget
}

// NewViewSelector locates the view selector of the toolbar
func NewViewSelector(b browser.Driver) ViewSelector {
	return ViewSelector{Widget{b, fmt.Sprintf("//div[%s]", browser.HasClass("toolbar-pf-view-selector"))}}
}

// Selected returns title of the active view
func (v ViewSelector) Selected() (string, error) {
	title, ok, err := v.Browser.Attribute(v.child(fmt.Sprintf(".//li[%s]/button", browser.HasClass("active"))), "title")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("ViewSelector: active view: %w", ErrItemNotFound)
	}
	return title, nil
}

// Select activates the view by its title
func (v ViewSelector) Select(title string) error {
	if current, err := v.Selected(); err == nil && current == title {
		return nil
	}
	loc := v.child(fmt.Sprintf(".//button[@title=%s]", browser.Quote(title)))
	if !browser.Exists(v.Browser, loc) {
		return fmt.Errorf("ViewSelector: %q: %w", title, ErrItemNotFound)
	}
	return v.Browser.Click(loc)
}

// Entities is the list of entities with title, table and pagination
type Entities struct {
	Widget
	Title     Text
	Table     Table
	Paginator Paginator
}

// NewEntities creates the entities of the list screen
func NewEntities(b browser.Driver) Entities {
	return Entities{
		Widget:    Widget{b, "//div[@id='main-content']"},
		Title:     NewText(b, TitleLocator),
		Table:     NewTable(b, "//div[@id='gtl_div']//table"),
		Paginator: NewPaginator(b),
	}
}

// GetEntity returns the row of the entity by name, going through all the pages when
// surfPages is set
func (e Entities) GetEntity(name string, surfPages bool) (TableRow, error) {
	if surfPages {
		if err := e.Paginator.FirstPage(); err != nil {
			return TableRow{}, err
		}
	}
	for {
		row, err := e.Table.Row(map[string]string{"Name": name})
		if err == nil {
			return row, nil
		}
		// No table at all is the empty list
		if !errors.Is(err, ErrItemNotFound) && browser.Exists(e.Browser, e.Table.Locator) {
			return TableRow{}, fmt.Errorf("Entities: entity %q: %w", name, err)
		}
		if !surfPages || e.Paginator.IsLastPage() {
			return TableRow{}, fmt.Errorf("Entities: entity %q: %w", name, ErrItemNotFound)
		}
		if err := e.Paginator.NextPage(); err != nil {
			return TableRow{}, err
		}
	}
}

// EntityNames returns names of the entities, from all the pages when surfPages is set
func (e Entities) EntityNames(surfPages bool) ([]string, error) {
	if surfPages {
		if err := e.Paginator.FirstPage(); err != nil {
			return nil, err
		}
	}
	var names []string
	for {
		rows, err := e.Table.Rows()
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			name, err := r.Cell("Name")
			if err != nil {
				return nil, err
			}
			names = append(names, name)
		}
		if !surfPages || e.Paginator.IsLastPage() {
			return names, nil
		}
		if err := e.Paginator.NextPage(); err != nil {
			return nil, err
		}
	}
}
