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

package base_test

import (
	"context"
	"errors"
	"testing"

	"github.com/adobe/miq-pages/lib/appliance"
	"github.com/adobe/miq-pages/lib/base"
	"github.com/adobe/miq-pages/lib/browser"
	"github.com/adobe/miq-pages/lib/navigator"
	"github.com/adobe/miq-pages/webtests/helper"
)

func newAppliance(t *testing.T, b browser.Driver, fullName string) *appliance.Appliance {
	t.Helper()
	cfg := helper.ConsoleConfig("5.9")
	if fullName != "" {
		cfg.Appliance.FullName = fullName
	}
	a, err := appliance.New(cfg, b, nil)
	if err != nil {
		t.Fatalf("appliance.New() error = %v", err)
	}
	if err := base.RegisterSteps(a.Nav); err != nil {
		t.Fatalf("RegisterSteps() error = %v", err)
	}
	return a
}

func Test_logged_in(t *testing.T) {
	b := helper.NewConsoleBrowser(t, "5.9")
	a := newAppliance(t, b, "")

	view, err := a.NavigateTo(context.Background(), a.Server(), "LoggedIn")
	if err != nil {
		t.Fatalf("NavigateTo() error = %v", err)
	}
	if b.URL() != helper.ApplianceURL+"/dashboard/show" {
		t.Fatalf("URL() = %q; want the dashboard", b.URL())
	}
	page := view.(base.LoggedInPage)
	if !page.LoggedIn() || !page.LoggedInAsCurrentUser() {
		t.Fatalf("Page doesn't show the logged in user")
	}
	if page.InExplorer() {
		t.Fatalf("Dashboard is not an explorer screen")
	}
	if title := page.Title.TextOrEmpty(); title != "Dashboard" {
		t.Fatalf("Title = %q; want: Dashboard", title)
	}

	clicks := len(b.History())
	if _, err := a.NavigateTo(context.Background(), a.Server(), "LoggedIn"); err != nil {
		t.Fatalf("NavigateTo() second time error = %v", err)
	}
	if len(b.History()) != clicks {
		t.Fatalf("Already logged in, but the step was done again: %v", b.History())
	}
}

func Test_logout(t *testing.T) {
	b := helper.NewConsoleBrowser(t, "5.9")
	a := newAppliance(t, b, "")

	if _, err := a.NavigateTo(context.Background(), a.Server(), "LoggedIn"); err != nil {
		t.Fatalf("NavigateTo() error = %v", err)
	}
	page := base.NewLoggedInPage(a)
	if err := page.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if !base.NewLoginView(b).IsDisplayed() {
		t.Fatalf("Login form is not displayed after logout")
	}
	if page.LoggedIn() {
		t.Fatalf("LoggedIn() = true after logout")
	}
}

func Test_logged_in_as_other_user(t *testing.T) {
	b := helper.NewConsoleBrowser(t, "5.9")
	a := newAppliance(t, b, "Somebody Else")

	_, err := a.NavigateTo(context.Background(), a.Server(), "LoggedIn")
	if !errors.Is(err, navigator.ErrViewNotDisplayed) {
		t.Fatalf("NavigateTo() error = %v; want: %v", err, navigator.ErrViewNotDisplayed)
	}
}

func Test_login_form_missing(t *testing.T) {
	b := browser.NewStatic(helper.ApplianceURL, map[string]string{
		"/": "<html><body><h1>Maintenance</h1></body></html>",
	})
	a := newAppliance(t, b, "")

	_, err := a.NavigateTo(context.Background(), a.Server(), "LoggedIn")
	if !errors.Is(err, browser.ErrNoSuchElement) {
		t.Fatalf("NavigateTo() error = %v; want: %v", err, browser.ErrNoSuchElement)
	}
}

func Test_register_twice(t *testing.T) {
	b := helper.NewConsoleBrowser(t, "5.9")
	a := newAppliance(t, b, "")
	if err := base.RegisterSteps(a.Nav); !errors.Is(err, navigator.ErrAlreadyRegistered) {
		t.Fatalf("RegisterSteps() twice error = %v; want: %v", err, navigator.ErrAlreadyRegistered)
	}
}
