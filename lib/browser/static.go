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

package browser

import (
	"fmt"
	"strings"
	"sync"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Static is an in-memory Driver over a fixed set of HTML pages.
//
// Clicking an element follows the closest "href" or "data-href" attribute, an element
// carrying "data-confirm" raises a confirmation dialog first. Form state (values,
// selections, checkboxes) lives in the current document only and is dropped on
// navigation or refresh.
type Static struct {
	mu sync.Mutex

	base string
	site map[string]string

	path string
	doc  *html.Node

	dialog  *bool
	dialogs []string
	history []string
}

// NewStatic creates static driver serving site pages (path -> html) under base url
func NewStatic(base string, site map[string]string) *Static {
	return &Static{
		base: strings.TrimSuffix(base, "/"),
		site: site,
	}
}

// Goto loads the page by full url or by site path
func (s *Static) Goto(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(url)
}

func (s *Static) load(url string) error {
	path := strings.TrimPrefix(url, s.base)
	if path == "" {
		path = "/"
	}
	data, ok := s.site[path]
	if !ok {
		// Query string could be there just to mark the state, so fallback to bare path
		if i := strings.IndexByte(path, '?'); i >= 0 {
			data, ok = s.site[path[:i]]
		}
	}
	if !ok {
		return fmt.Errorf("Static: page %q is not found", path)
	}
	doc, err := htmlquery.Parse(strings.NewReader(data))
	if err != nil {
		return fmt.Errorf("Static: unable to parse page %q: %v", path, err)
	}
	s.path = path
	s.doc = doc
	return nil
}

// URL returns the current page url
func (s *Static) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.base + s.path
}

// Refresh reloads the current page dropping any form state
func (s *Static) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("Static: no page loaded")
	}
	return s.load(s.path)
}

// History returns the locators clicked so far
func (s *Static) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

// Dialogs returns messages of the confirmation dialogs shown so far
func (s *Static) Dialogs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.dialogs...)
}

func (s *Static) all(loc string) ([]*html.Node, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("Static: no page loaded")
	}
	nodes, err := htmlquery.QueryAll(s.doc, loc)
	if err != nil {
		return nil, fmt.Errorf("Static: invalid locator %q: %v", loc, err)
	}
	return nodes, nil
}

func (s *Static) first(loc string) (*html.Node, error) {
	nodes, err := s.all(loc)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("Static: %s: %w", loc, ErrNoSuchElement)
	}
	return nodes[0], nil
}

// Count returns amount of elements matching the locator
func (s *Static) Count(loc string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nodes, err := s.all(loc)
	return len(nodes), err
}

// Text returns whitespace-normalized text of the element
func (s *Static) Text(loc string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.first(loc)
	if err != nil {
		return "", err
	}
	return nodeText(n), nil
}

// Texts returns text of every element matching the locator
func (s *Static) Texts(loc string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nodes, err := s.all(loc)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, nodeText(n))
	}
	return out, nil
}

// IsVisible checks the element exists and neither it nor its parents are hidden
func (s *Static) IsVisible(loc string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.first(loc)
	if err != nil {
		return false
	}
	return isVisible(n)
}

// Attribute returns element attribute value and whether it's set
func (s *Static) Attribute(loc, name string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.first(loc)
	if err != nil {
		return "", false, err
	}
	if !htmlquery.ExistsAttr(n, name) {
		return "", false, nil
	}
	return htmlquery.SelectAttr(n, name), true, nil
}

// Value returns the current value of the form element
func (s *Static) Value(loc string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.first(loc)
	if err != nil {
		return "", err
	}
	switch n.Data {
	case "textarea":
		return htmlquery.InnerText(n), nil
	case "select":
		options, _ := htmlquery.QueryAll(n, ".//option")
		for _, o := range options {
			if htmlquery.ExistsAttr(o, "selected") {
				return nodeText(o), nil
			}
		}
		if len(options) > 0 {
			return nodeText(options[0]), nil
		}
		return "", nil
	}
	return htmlquery.SelectAttr(n, "value"), nil
}

// IsChecked returns state of the checkbox
func (s *Static) IsChecked(loc string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.first(loc)
	if err != nil {
		return false, err
	}
	return htmlquery.ExistsAttr(n, "checked"), nil
}

// Click clicks the element, following the link and handling the confirmation
func (s *Static) Click(loc string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.first(loc)
	if err != nil {
		return err
	}
	if !isVisible(n) {
		return fmt.Errorf("Static: element %s is not visible", loc)
	}
	s.history = append(s.history, loc)

	if n.Data == "input" && htmlquery.SelectAttr(n, "type") == "checkbox" {
		setChecked(n, !htmlquery.ExistsAttr(n, "checked"))
	}

	if c := closestAttr(n, "data-confirm"); c != nil {
		msg := htmlquery.SelectAttr(c, "data-confirm")
		if s.dialog == nil {
			return fmt.Errorf("Static: dialog %q: %w", msg, ErrUnexpectedDialog)
		}
		accept := *s.dialog
		s.dialog = nil
		s.dialogs = append(s.dialogs, msg)
		if !accept {
			return nil
		}
	}

	for _, attr := range []string{"href", "data-href"} {
		if a := closestAttr(n, attr); a != nil {
			href := htmlquery.SelectAttr(a, attr)
			if href == "" || href == "#" || strings.HasPrefix(href, "javascript:") {
				continue
			}
			return s.load(href)
		}
	}
	return nil
}

// Hover only checks the element is here
func (s *Static) Hover(loc string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.first(loc)
	return err
}

// Fill sets value of the input or textarea
func (s *Static) Fill(loc, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.first(loc)
	if err != nil {
		return err
	}
	if htmlquery.ExistsAttr(n, "disabled") || htmlquery.ExistsAttr(n, "readonly") {
		return fmt.Errorf("Static: element %s is not editable", loc)
	}
	switch n.Data {
	case "input":
		setAttr(n, "value", value)
	case "textarea":
		for c := n.FirstChild; c != nil; c = n.FirstChild {
			n.RemoveChild(c)
		}
		n.AppendChild(&html.Node{Type: html.TextNode, Data: value})
	default:
		return fmt.Errorf("Static: element %s is <%s> and can't be filled", loc, n.Data)
	}
	return nil
}

// SelectOption selects option of the select element by its text or value
func (s *Static) SelectOption(loc, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.first(loc)
	if err != nil {
		return err
	}
	if n.Data != "select" {
		return fmt.Errorf("Static: element %s is <%s> and not a select", loc, n.Data)
	}
	options, _ := htmlquery.QueryAll(n, ".//option")
	var found *html.Node
	for _, o := range options {
		if nodeText(o) == label || htmlquery.SelectAttr(o, "value") == label {
			found = o
			break
		}
	}
	if found == nil {
		return fmt.Errorf("Static: option %q in %s: %w", label, loc, ErrNoSuchElement)
	}
	for _, o := range options {
		removeAttr(o, "selected")
	}
	setAttr(found, "selected", "selected")
	return nil
}

// SetChecked sets checkbox state
func (s *Static) SetChecked(loc string, checked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.first(loc)
	if err != nil {
		return err
	}
	setChecked(n, checked)
	return nil
}

// HandleNextDialog arms handling of the next confirmation dialog
func (s *Static) HandleNextDialog(accept bool) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	armed := &accept
	s.dialog = armed
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.dialog == armed {
			s.dialog = nil
		}
	}
}

func nodeText(n *html.Node) string {
	return strings.Join(strings.Fields(htmlquery.InnerText(n)), " ")
}

func isVisible(n *html.Node) bool {
	if n.Data == "input" && htmlquery.SelectAttr(n, "type") == "hidden" {
		return false
	}
	for ; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if htmlquery.ExistsAttr(n, "hidden") {
			return false
		}
		style := strings.ReplaceAll(htmlquery.SelectAttr(n, "style"), " ", "")
		if strings.Contains(style, "display:none") {
			return false
		}
		for _, class := range strings.Fields(htmlquery.SelectAttr(n, "class")) {
			if class == "hidden" || class == "hide" {
				return false
			}
		}
	}
	return true
}

func closestAttr(n *html.Node, name string) *html.Node {
	for ; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && htmlquery.ExistsAttr(n, name) {
			return n
		}
	}
	return nil
}

func setChecked(n *html.Node, checked bool) {
	if checked {
		setAttr(n, "checked", "checked")
	} else {
		removeAttr(n, "checked")
	}
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			attrs = append(attrs, a)
		}
	}
	n.Attr = attrs
}
