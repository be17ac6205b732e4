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

// Package helper allows to run the page objects against the fixture console or a
// live appliance through playwright
package helper

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"
	"testing"

	"github.com/adobe/miq-pages/lib/browser"
	"github.com/adobe/miq-pages/lib/config"
)

// LivePlaywright saves state of the running browser for particular test
type LivePlaywright struct {
	driver *browser.Playwright

	captureDir  string
	browserName string

	// Automatic tests screenshoting
	stepMu sync.Mutex
	step   int
}

// NewPlaywright launches the browser configured in cfg, the captures go to the
// workspace and are removed if the test passed
func NewPlaywright(tb testing.TB, workspace string, cfg *config.Config) *LivePlaywright {
	tb.Helper()
	lp := &LivePlaywright{
		captureDir:  filepath.Join(workspace, "playwright"),
		browserName: cfg.Browser.Name,
	}

	var err error
	lp.driver, err = browser.NewPlaywright(browser.PlaywrightOptions{
		Browser:    cfg.Browser.Name,
		Headless:   cfg.Browser.Headless,
		Timeout:    cfg.Browser.Timeout.Duration(),
		CaptureDir: lp.captureDir,
	})
	if err != nil {
		tb.Fatalf("ERROR: Could not start browser: %v", err)
	}

	tb.Cleanup(func() {
		if err := lp.driver.Close(); err != nil {
			tb.Errorf("ERROR: Could not close browser: %v", err)
		}
		lp.Cleanup(tb)
	})

	return lp
}

// Driver returns the browser driver for the console
func (lp *LivePlaywright) Driver() browser.Driver {
	return lp.driver
}

// Run executes the subtest with screenshots at the start and the end
func (lp *LivePlaywright) Run(t *testing.T, name string, fn func(t *testing.T)) {
	t.Helper()

	t.Run(name, func(t *testing.T) {
		lp.Screenshot(t, "start")
		defer lp.Screenshot(t, "end")

		fn(t)
	})
}

// Screenshot takes a screenshot with automatic naming
func (lp *LivePlaywright) Screenshot(t *testing.T, phase string) {
	lp.stepMu.Lock()
	defer lp.stepMu.Unlock()

	lp.step++
	filename := fmt.Sprintf("%02d-%s-%s.png", lp.step, path.Base(t.Name()), phase)
	if err := lp.driver.Screenshot(lp.CaptureDir("screenshots", filename)); err != nil {
		t.Logf("WARNING: Could not take screenshot %s: %v", filename, err)
	}
}

// CaptureDir returns dir where to store all the test data
func (lp *LivePlaywright) CaptureDir(path ...string) string {
	return filepath.Join(append([]string{lp.captureDir}, path...)...)
}

// Cleanup removes the captures of the passed test
func (lp *LivePlaywright) Cleanup(tb testing.TB) {
	tb.Helper()
	tb.Log("INFO: Cleaning up playwright:", lp.browserName)

	if tb.Failed() {
		tb.Log("INFO: Keeping captures for checking:", lp.captureDir)
		return
	}
	os.RemoveAll(lp.captureDir)
}
