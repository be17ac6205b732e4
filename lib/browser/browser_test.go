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
	"errors"
	"reflect"
	"testing"
)

const testPage = `<html><body>
<div id="main-content">
  <h1>  Flavors
  </h1>
  <a id="next" href="/flavors?page=2">Next</a>
  <a id="noop" href="#">Nothing</a>
  <span id="hidden" style="display: none">Invisible</span>
  <div class="hide"><span id="in-hidden">Also invisible</span></div>
  <input type="hidden" id="token" value="secret"/>
  <input type="text" id="name" name="name" value="m1.tiny"/>
  <input type="text" id="ro" readonly value="fixed"/>
  <textarea id="desc">old text</textarea>
  <select id="size"><option value="1">Small</option><option value="2">Large</option></select>
  <input type="checkbox" id="public" name="is_public" checked/>
  <ul><li>one</li><li>two</li><li>three</li></ul>
  <button id="remove" data-confirm="Remove this Flavor?" data-href="/flavors">Remove</button>
  <div data-href="/details"><span id="cell">m1.small</span></div>
</div>
</body></html>`

func newTestStatic(t *testing.T) *Static {
	t.Helper()
	s := NewStatic("https://miq.example.com/", map[string]string{
		"/":        testPage,
		"/flavors": `<html><body><h1>Flavors page 2</h1></body></html>`,
		"/details": `<html><body><h1>m1.small (Summary)</h1></body></html>`,
	})
	if err := s.Goto("https://miq.example.com/"); err != nil {
		t.Fatalf("Goto() error = %v", err)
	}
	return s
}

func Test_quote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Flavors", `'Flavors'`},
		{"Service \"svc\"", `'Service "svc"'`},
		{"it's", `"it's"`},
		{`it's "quoted"`, `concat('it', "'", 's "quoted"')`},
		{`'both"`, `concat("'", 'both"')`},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := Quote(tc.in); got != tc.want {
				t.Fatalf("Quote(%q) = %s; want: %s", tc.in, got, tc.want)
			}
		})
	}
}

func Test_join(t *testing.T) {
	tests := []struct {
		root, loc, want string
	}{
		{"//div[@id='a']", "./span", "//div[@id='a']/span"},
		{"//div[@id='a']", ".//span", "//div[@id='a']//span"},
		{"//div[@id='a']", ".", "//div[@id='a']"},
		{"//div[@id='a']", "//span", "//span"},
		{"", "./span", "./span"},
	}
	for _, tc := range tests {
		if got := Join(tc.root, tc.loc); got != tc.want {
			t.Errorf("Join(%q, %q) = %q; want: %q", tc.root, tc.loc, got, tc.want)
		}
	}
	if got := Nth("//li", 2); got != "(//li)[2]" {
		t.Errorf("Nth() = %q", got)
	}
}

func Test_static_read(t *testing.T) {
	s := newTestStatic(t)

	if text, err := s.Text("//h1"); err != nil || text != "Flavors" {
		t.Fatalf("Text() = %q, %v; want: Flavors", text, err)
	}
	if texts, err := s.Texts("//ul/li"); err != nil || !reflect.DeepEqual(texts, []string{"one", "two", "three"}) {
		t.Fatalf("Texts() = %v, %v", texts, err)
	}
	if text, err := s.Text(Nth("//ul/li", 2)); err != nil || text != "two" {
		t.Fatalf("Text(Nth) = %q, %v; want: two", text, err)
	}
	if n, err := s.Count("//li"); err != nil || n != 3 {
		t.Fatalf("Count() = %d, %v; want: 3", n, err)
	}
	if !Exists(s, "//h1") || Exists(s, "//h2") {
		t.Fatalf("Exists() gives wrong results")
	}
	if _, err := s.Text("//h2"); !errors.Is(err, ErrNoSuchElement) {
		t.Fatalf("Text() of missing element = %v; want: ErrNoSuchElement", err)
	}
	if _, err := s.Count("//h1["); err == nil {
		t.Fatalf("Count() with invalid locator should fail")
	}
}

func Test_static_visibility(t *testing.T) {
	s := newTestStatic(t)
	for loc, want := range map[string]bool{
		"//h1":                 true,
		"//*[@id='hidden']":    false,
		"//*[@id='in-hidden']": false,
		"//*[@id='token']":     false,
		"//*[@id='absent']":    false,
	} {
		if got := s.IsVisible(loc); got != want {
			t.Errorf("IsVisible(%s) = %v; want: %v", loc, got, want)
		}
	}
}

func Test_static_form(t *testing.T) {
	s := newTestStatic(t)

	if v, err := s.Value("//input[@name='name']"); err != nil || v != "m1.tiny" {
		t.Fatalf("Value() = %q, %v", v, err)
	}
	if err := s.Fill("//input[@name='name']", "m1.large"); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if v, _ := s.Value("//input[@name='name']"); v != "m1.large" {
		t.Fatalf("Value() after fill = %q", v)
	}
	if err := s.Fill("//input[@id='ro']", "x"); err == nil {
		t.Fatalf("Fill() of readonly input should fail")
	}
	if err := s.Fill("//textarea", "new text"); err != nil {
		t.Fatalf("Fill(textarea) error = %v", err)
	}
	if v, _ := s.Value("//textarea"); v != "new text" {
		t.Fatalf("Value(textarea) = %q", v)
	}

	if v, _ := s.Value("//select"); v != "Small" {
		t.Fatalf("Value(select) = %q; want: first option", v)
	}
	if err := s.SelectOption("//select", "Large"); err != nil {
		t.Fatalf("SelectOption() error = %v", err)
	}
	if v, _ := s.Value("//select"); v != "Large" {
		t.Fatalf("Value(select) = %q; want: Large", v)
	}
	if err := s.SelectOption("//select", "Huge"); !errors.Is(err, ErrNoSuchElement) {
		t.Fatalf("SelectOption() of missing option = %v", err)
	}

	if c, _ := s.IsChecked("//input[@name='is_public']"); !c {
		t.Fatalf("IsChecked() = false; want: true")
	}
	if err := s.SetChecked("//input[@name='is_public']", false); err != nil {
		t.Fatalf("SetChecked() error = %v", err)
	}
	if c, _ := s.IsChecked("//input[@name='is_public']"); c {
		t.Fatalf("IsChecked() = true after uncheck")
	}

	// Form state is dropped on refresh
	if err := s.Refresh(); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if v, _ := s.Value("//input[@name='name']"); v != "m1.tiny" {
		t.Fatalf("Value() after refresh = %q", v)
	}
}

func Test_static_click(t *testing.T) {
	s := newTestStatic(t)

	if err := s.Click("//a[@id='noop']"); err != nil {
		t.Fatalf("Click(#) error = %v", err)
	}
	if s.URL() != "https://miq.example.com/" {
		t.Fatalf("URL() = %q after click on # link", s.URL())
	}
	if err := s.Click("//span[@id='hidden']"); err == nil {
		t.Fatalf("Click() on invisible element should fail")
	}
	if err := s.Click("//span[@id='cell']"); err != nil {
		t.Fatalf("Click(data-href) error = %v", err)
	}
	if text, _ := s.Text("//h1"); text != "m1.small (Summary)" {
		t.Fatalf("Text() after click = %q", text)
	}

	if err := s.Goto("/"); err != nil {
		t.Fatalf("Goto() error = %v", err)
	}
	if err := s.Click("//a[@id='next']"); err != nil {
		t.Fatalf("Click(href with query) error = %v", err)
	}
	if s.URL() != "https://miq.example.com/flavors?page=2" {
		t.Fatalf("URL() = %q", s.URL())
	}
	if len(s.History()) != 3 {
		t.Fatalf("History() = %v; want: 3 clicks", s.History())
	}
	if err := s.Goto("/missing"); err == nil {
		t.Fatalf("Goto() of missing page should fail")
	}
}

func Test_static_dialog(t *testing.T) {
	s := newTestStatic(t)

	if err := s.Click("//button[@id='remove']"); !errors.Is(err, ErrUnexpectedDialog) {
		t.Fatalf("Click() without dialog handler = %v; want: ErrUnexpectedDialog", err)
	}

	s.HandleNextDialog(false)
	if err := s.Click("//button[@id='remove']"); err != nil {
		t.Fatalf("Click() with dismiss error = %v", err)
	}
	if text, _ := s.Text("//h1"); text != "Flavors" {
		t.Fatalf("Dismissed dialog should keep the page, got %q", text)
	}

	s.HandleNextDialog(true)
	if err := s.Click("//button[@id='remove']"); err != nil {
		t.Fatalf("Click() with accept error = %v", err)
	}
	if text, _ := s.Text("//h1"); text != "Flavors page 2" {
		t.Fatalf("Accepted dialog should follow the link, got %q", text)
	}
	if d := s.Dialogs(); !reflect.DeepEqual(d, []string{"Remove this Flavor?", "Remove this Flavor?"}) {
		t.Fatalf("Dialogs() = %v", d)
	}
}

func Test_static_dialog_disarm(t *testing.T) {
	s := newTestStatic(t)

	disarm := s.HandleNextDialog(true)
	disarm()
	if err := s.Click("//button[@id='remove']"); !errors.Is(err, ErrUnexpectedDialog) {
		t.Fatalf("Click() after disarm = %v; want: ErrUnexpectedDialog", err)
	}

	// Disarm after the handled dialog does not touch the next arming
	disarm = s.HandleNextDialog(false)
	if err := s.Click("//button[@id='remove']"); err != nil {
		t.Fatalf("Click() with dismiss error = %v", err)
	}
	next := s.HandleNextDialog(false)
	disarm()
	if err := s.Click("//button[@id='remove']"); err != nil {
		t.Fatalf("Click() with second dismiss error = %v", err)
	}
	next()
}
