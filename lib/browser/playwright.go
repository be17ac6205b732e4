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
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	pw "github.com/playwright-community/playwright-go"

	"github.com/adobe/miq-pages/lib/log"
)

// PlaywrightOptions describes how to launch the browser
type PlaywrightOptions struct {
	Browser    string        // chromium, firefox or webkit
	Headless   bool          // Run without UI
	Timeout    time.Duration // Default timeout for the actions
	CaptureDir string        // Where to put videos, empty to disable recording
}

// Playwright is a Driver operating a real browser page
type Playwright struct {
	pw      *pw.Playwright
	browser pw.Browser
	context pw.BrowserContext
	page    pw.Page

	dialogMu sync.Mutex
	dialog   *bool
}

// NewPlaywright starts playwright, launches the browser and opens a page
func NewPlaywright(opts PlaywrightOptions) (*Playwright, error) {
	logger := log.WithFunc("browser", "NewPlaywright")

	p := &Playwright{}
	var err error
	if p.pw, err = pw.Run(); err != nil {
		return nil, fmt.Errorf("Browser: Could not start Playwright: %v", err)
	}

	var browserType pw.BrowserType
	switch opts.Browser {
	case "firefox":
		browserType = p.pw.Firefox
	case "webkit":
		browserType = p.pw.WebKit
	default:
		browserType = p.pw.Chromium
	}

	if p.browser, err = browserType.Launch(pw.BrowserTypeLaunchOptions{
		Headless: pw.Bool(opts.Headless),
	}); err != nil {
		p.pw.Stop()
		return nil, fmt.Errorf("Browser: Could not launch %s: %v", opts.Browser, err)
	}

	// Appliances usually come with self-signed certificates
	ctxOpts := pw.BrowserNewContextOptions{
		IgnoreHttpsErrors: pw.Bool(true),
	}
	if opts.CaptureDir != "" {
		videoDir := filepath.Join(opts.CaptureDir, "video")
		if err = os.MkdirAll(videoDir, 0o755); err != nil {
			p.Close()
			return nil, fmt.Errorf("Browser: Unable to create capture dir %s: %v", videoDir, err)
		}
		ctxOpts.RecordVideo = &pw.RecordVideo{Dir: videoDir}
	}
	if p.context, err = p.browser.NewContext(ctxOpts); err != nil {
		p.Close()
		return nil, fmt.Errorf("Browser: Could not create new context: %v", err)
	}
	if opts.Timeout > 0 {
		p.context.SetDefaultTimeout(float64(opts.Timeout.Milliseconds()))
		p.context.SetDefaultNavigationTimeout(float64(opts.Timeout.Milliseconds()))
	}

	if p.page, err = p.context.NewPage(); err != nil {
		p.Close()
		return nil, fmt.Errorf("Browser: Could not create page: %v", err)
	}
	p.page.OnDialog(p.onDialog)

	logger.Debug("Browser started", "browser", opts.Browser, "headless", opts.Headless)

	return p, nil
}

// Page returns the underlying playwright page
func (p *Playwright) Page() pw.Page {
	return p.page
}

// Close shuts down the browser and playwright
func (p *Playwright) Close() error {
	var errs []string
	if p.context != nil {
		if err := p.context.Close(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if p.browser != nil {
		if err := p.browser.Close(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if err := p.pw.Stop(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("Browser: Unable to close: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Screenshot stores the page picture to the path
func (p *Playwright) Screenshot(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	_, err := p.page.Screenshot(pw.PageScreenshotOptions{Path: pw.String(path)})
	return err
}

func (p *Playwright) onDialog(dialog pw.Dialog) {
	logger := log.WithFunc("browser", "onDialog")

	p.dialogMu.Lock()
	accept := p.dialog
	p.dialog = nil
	p.dialogMu.Unlock()

	var err error
	if accept != nil && *accept {
		err = dialog.Accept()
	} else {
		if accept == nil {
			logger.Warn("Dismissing unexpected dialog", "message", dialog.Message())
		}
		err = dialog.Dismiss()
	}
	if err != nil {
		logger.Error("Unable to handle dialog", "message", dialog.Message(), "err", err)
	}
}

// HandleNextDialog arms handling of the next dialog
func (p *Playwright) HandleNextDialog(accept bool) func() {
	p.dialogMu.Lock()
	defer p.dialogMu.Unlock()
	armed := &accept
	p.dialog = armed
	return func() {
		p.dialogMu.Lock()
		defer p.dialogMu.Unlock()
		if p.dialog == armed {
			p.dialog = nil
		}
	}
}

func (p *Playwright) locator(loc string) pw.Locator {
	return p.page.Locator("xpath=" + loc).First()
}

func (*Playwright) wrap(loc string, err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "Timeout") {
		return fmt.Errorf("Browser: %s: %w: %v", loc, ErrNoSuchElement, err)
	}
	return fmt.Errorf("Browser: %s: %v", loc, err)
}

// Goto opens the url
func (p *Playwright) Goto(url string) error {
	_, err := p.page.Goto(url)
	return p.wrap(url, err)
}

// URL returns current url
func (p *Playwright) URL() string {
	return p.page.URL()
}

// Refresh reloads the page
func (p *Playwright) Refresh() error {
	_, err := p.page.Reload()
	return p.wrap("reload", err)
}

// Count returns amount of matching elements
func (p *Playwright) Count(loc string) (int, error) {
	n, err := p.page.Locator("xpath=" + loc).Count()
	return n, p.wrap(loc, err)
}

// Text returns inner text of the element
func (p *Playwright) Text(loc string) (string, error) {
	if n, err := p.Count(loc); err != nil {
		return "", err
	} else if n == 0 {
		return "", fmt.Errorf("Browser: %s: %w", loc, ErrNoSuchElement)
	}
	text, err := p.locator(loc).InnerText()
	return strings.TrimSpace(text), p.wrap(loc, err)
}

// Texts returns inner text of all the matching elements
func (p *Playwright) Texts(loc string) ([]string, error) {
	texts, err := p.page.Locator("xpath=" + loc).AllInnerTexts()
	for i := range texts {
		texts[i] = strings.TrimSpace(texts[i])
	}
	return texts, p.wrap(loc, err)
}

// IsVisible checks the element is visible right now without waiting
func (p *Playwright) IsVisible(loc string) bool {
	visible, err := p.locator(loc).IsVisible()
	return err == nil && visible
}

// Attribute returns value of the element attribute
func (p *Playwright) Attribute(loc, name string) (string, bool, error) {
	if n, err := p.Count(loc); err != nil {
		return "", false, err
	} else if n == 0 {
		return "", false, fmt.Errorf("Browser: %s: %w", loc, ErrNoSuchElement)
	}
	val, err := p.locator(loc).GetAttribute(name)
	if err != nil {
		return "", false, p.wrap(loc, err)
	}
	has, err := p.locator(loc).Evaluate("(el, name) => el.hasAttribute(name)", name)
	if err != nil {
		return val, val != "", nil
	}
	b, _ := has.(bool)
	return val, b, nil
}

// Value returns current value of the input, textarea or select
func (p *Playwright) Value(loc string) (string, error) {
	tag, err := p.locator(loc).Evaluate("el => el.tagName.toLowerCase()", nil)
	if err != nil {
		return "", p.wrap(loc, err)
	}
	if tag == "select" {
		text, err := p.locator(loc).Evaluate("el => el.selectedIndex < 0 ? '' : el.options[el.selectedIndex].text", nil)
		if err != nil {
			return "", p.wrap(loc, err)
		}
		s, _ := text.(string)
		return strings.TrimSpace(s), nil
	}
	val, err := p.locator(loc).InputValue()
	return val, p.wrap(loc, err)
}

// IsChecked returns state of the checkbox
func (p *Playwright) IsChecked(loc string) (bool, error) {
	checked, err := p.locator(loc).IsChecked()
	return checked, p.wrap(loc, err)
}

// Click clicks the element
func (p *Playwright) Click(loc string) error {
	return p.wrap(loc, p.locator(loc).Click())
}

// Hover moves mouse over the element
func (p *Playwright) Hover(loc string) error {
	return p.wrap(loc, p.locator(loc).Hover())
}

// Fill puts the value into the input
func (p *Playwright) Fill(loc, value string) error {
	return p.wrap(loc, p.locator(loc).Fill(value))
}

// SelectOption selects the option by label. The select could be hidden behind the
// bootstrap widget, so it's forced.
func (p *Playwright) SelectOption(loc, label string) error {
	_, err := p.locator(loc).SelectOption(pw.SelectOptionValues{
		Labels: pw.StringSlice(label),
	}, pw.LocatorSelectOptionOptions{Force: pw.Bool(true)})
	return p.wrap(loc, err)
}

// SetChecked sets the checkbox state, bootstrap switches hide the input so it's forced
func (p *Playwright) SetChecked(loc string, checked bool) error {
	return p.wrap(loc, p.locator(loc).SetChecked(checked, pw.LocatorSetCheckedOptions{
		Force: pw.Bool(true),
	}))
}
