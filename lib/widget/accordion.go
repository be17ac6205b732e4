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

// Accordion is a collapsible panel of the explorer sidebar
type Accordion struct {
	Widget
	Name string
}

// NewAccordion locates the accordion panel by its header
func NewAccordion(b browser.Driver, name string) Accordion {
	return Accordion{
		Widget{b, fmt.Sprintf("//div[%s]/div[%s and ./div/h4/a[normalize-space(.)=%s]]",
			browser.HasClass("panel-group"), browser.HasClass("panel"), browser.Quote(name))},
		name,
	}
}

// IsOpened checks the panel content is expanded
func (a Accordion) IsOpened() bool {
	return browser.Exists(a.Browser, a.child(fmt.Sprintf("./div[%s and %s]",
		browser.HasClass("panel-collapse"), browser.HasClass("in"))))
}

// IsDimmed checks the accordion is greyed out while the page is busy
func (a Accordion) IsDimmed() bool {
	return a.hasClass(a.Locator, "panel-dimmed") || a.hasClass(a.child("./div/h4/a"), "disabled")
}

// Open expands the accordion if it's collapsed
func (a Accordion) Open() error {
	if a.IsOpened() {
		return nil
	}
	if !a.Exists() {
		return fmt.Errorf("Accordion %q: %w", a.Name, browser.ErrNoSuchElement)
	}
	return a.Browser.Click(a.child("./div/h4/a"))
}

// Tree returns the tree inside the accordion
func (a Accordion) Tree() Tree {
	return NewTree(a.Browser, a.child(fmt.Sprintf(".//ul[%s]", browser.HasClass("list-group"))))
}

// Tree is a patternfly treeview: flat list of nodes with indentation spans
type Tree struct {
	Widget
}

// NewTree creates the tree by locator of the node list
func NewTree(b browser.Driver, loc string) Tree {
	return Tree{Widget{b, loc}}
}

type treeNode struct {
	text      string
	level     int
	selected  bool
	collapsed bool
}

func (t Tree) nodesLocator() string {
	return t.child(fmt.Sprintf("./li[%s]", browser.HasClass("list-group-item")))
}

func (t Tree) nodes() ([]treeNode, error) {
	loc := t.nodesLocator()
	texts, err := t.Browser.Texts(loc)
	if err != nil {
		return nil, err
	}
	nodes := make([]treeNode, len(texts))
	for i, text := range texts {
		node := browser.Nth(loc, i+1)
		level, err := t.Browser.Count(node + fmt.Sprintf("/span[%s]", browser.HasClass("indent")))
		if err != nil {
			return nil, err
		}
		nodes[i] = treeNode{
			text:     strings.TrimSpace(text),
			level:    level,
			selected: t.hasClass(node, "node-selected"),
			collapsed: browser.Exists(t.Browser, node+fmt.Sprintf("/span[%s and (%s or %s)]",
				browser.HasClass("expand-icon"), browser.HasClass("fa-angle-right"), browser.HasClass("glyphicon-plus"))),
		}
	}
	return nodes, nil
}

// CurrentlySelected returns path to the selected node
func (t Tree) CurrentlySelected() ([]string, error) {
	nodes, err := t.nodes()
	if err != nil {
		return nil, err
	}
	sel := -1
	for i, n := range nodes {
		if n.selected {
			sel = i
			break
		}
	}
	if sel < 0 {
		return nil, nil
	}
	path := []string{nodes[sel].text}
	level := nodes[sel].level
	for i := sel - 1; i >= 0 && level > 0; i-- {
		if nodes[i].level < level {
			path = append([]string{nodes[i].text}, path...)
			level = nodes[i].level
		}
	}
	return path, nil
}

// ClickPath expands the tree along the path and clicks the last node
func (t Tree) ClickPath(path ...string) error {
	if len(path) == 0 {
		return fmt.Errorf("Tree: empty path: %w", ErrCandidateNotFound)
	}
	parent := -1
	for step, name := range path {
		nodes, err := t.nodes()
		if err != nil {
			return err
		}
		found := -1
		parentLevel := -1
		if parent >= 0 {
			parentLevel = nodes[parent].level
		}
		for i := parent + 1; i < len(nodes); i++ {
			if parent >= 0 && nodes[i].level <= parentLevel {
				break
			}
			if nodes[i].text == name && (parent < 0 || nodes[i].level == parentLevel+1) {
				found = i
				break
			}
		}
		if found < 0 {
			return fmt.Errorf("Tree: %q in path %q: %w", name, strings.Join(path[:step+1], " / "), ErrCandidateNotFound)
		}

		node := browser.Nth(t.nodesLocator(), found+1)
		if step == len(path)-1 {
			return t.Browser.Click(node)
		}
		if nodes[found].collapsed {
			if err := t.Browser.Click(node + fmt.Sprintf("/span[%s]", browser.HasClass("expand-icon"))); err != nil {
				return err
			}
		}
		parent = found
	}
	return nil
}
