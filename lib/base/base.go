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

// Package base contains the login page and the frame shared by every page of the
// logged in console
package base

import (
	"context"
	"fmt"

	"github.com/adobe/miq-pages/lib/appliance"
	"github.com/adobe/miq-pages/lib/browser"
	"github.com/adobe/miq-pages/lib/log"
	"github.com/adobe/miq-pages/lib/navigator"
	"github.com/adobe/miq-pages/lib/widget"
)

const (
	userLocator     = "//nav[contains(@class, 'navbar')]//li[contains(@class, 'dropdown') and .//span[contains(@class, 'pficon-user')]]"
	explorerLocator = "//div[@id='left_div']//div[contains(@class, 'panel-group')]"
)

// LoginView is the login form
type LoginView struct {
	Username widget.Input
	Password widget.Input
	Login    widget.Button
	Flash    widget.Flash
}

// NewLoginView creates the view of the login form
func NewLoginView(b browser.Driver) LoginView {
	return LoginView{
		Username: widget.NewInput(b, "user_name"),
		Password: widget.NewInput(b, "user_password"),
		Login:    widget.NewButton(b, "Log In"),
		Flash:    widget.NewFlash(b),
	}
}

// IsDisplayed checks the login form is shown
func (v LoginView) IsDisplayed() bool {
	return v.Username.IsDisplayed() && v.Password.IsDisplayed()
}

// LogIn fills the credentials and submits the form
func (v LoginView) LogIn(username, password string) error {
	if _, err := v.Username.Fill(username); err != nil {
		return fmt.Errorf("Login: unable to fill username: %w", err)
	}
	if _, err := v.Password.Fill(password); err != nil {
		return fmt.Errorf("Login: unable to fill password: %w", err)
	}
	return v.Login.Click()
}

// LoggedInPage is the frame of any page after login: main menu, flash messages, user
// menu and the toolbar
type LoggedInPage struct {
	App *appliance.Appliance

	Navigation    widget.Navigation
	Flash         widget.Flash
	User          widget.Text
	UserMenu      widget.Widget
	Configuration widget.Dropdown
	Title         widget.Text
	BreadCrumb    widget.BreadCrumb
}

// NewLoggedInPage creates the frame view
func NewLoggedInPage(a *appliance.Appliance) LoggedInPage {
	b := a.Browser
	return LoggedInPage{
		App:           a,
		Navigation:    widget.NewNavigation(b),
		Flash:         widget.NewFlash(b),
		User:          widget.NewText(b, userLocator+"/a"),
		UserMenu:      widget.Widget{Browser: b, Locator: userLocator + "/ul"},
		Configuration: widget.NewDropdown(b, "Configuration"),
		Title:         widget.NewText(b, widget.TitleLocator),
		BreadCrumb:    widget.NewBreadCrumb(b),
	}
}

// Browser returns the driver of the page
func (p LoggedInPage) Browser() browser.Driver {
	return p.App.Browser
}

// LoggedInAsCurrentUser checks the user menu shows the configured user
func (p LoggedInPage) LoggedInAsCurrentUser() bool {
	name, err := p.User.Text()
	return err == nil && name != "" && name == p.App.LoggedInUser()
}

// LoggedIn checks anybody is logged in
func (p LoggedInPage) LoggedIn() bool {
	return p.User.IsDisplayed()
}

// InExplorer checks the page has the accordion sidebar of the explorer screens
func (p LoggedInPage) InExplorer() bool {
	return p.LoggedInAsCurrentUser() && p.App.Browser.IsVisible(explorerLocator)
}

// IsDisplayed implements navigator.View
func (p LoggedInPage) IsDisplayed() bool {
	return p.LoggedInAsCurrentUser()
}

// Logout uses the user menu to log out
func (p LoggedInPage) Logout() error {
	if err := p.User.Browser.Click(p.User.Locator); err != nil {
		return fmt.Errorf("Base: unable to open user menu: %w", err)
	}
	return p.User.Browser.Click(browser.Join(p.UserMenu.Locator, "./li/a[normalize-space(.)='Logout']"))
}

// RegisterSteps adds the server steps to the navigator
func RegisterSteps(n *navigator.Navigator) error {
	return navigator.Register(n, appliance.KindServer, "LoggedIn", navigator.Step[*appliance.Server]{
		View: func(s *appliance.Server) navigator.View { return NewLoggedInPage(s.Appliance()) },
		Do:   loggedIn,
	})
}

func loggedIn(_ context.Context, s *appliance.Server, _ navigator.View) error {
	a := s.Appliance()
	logger := log.WithFunc("base", "loggedIn")

	if err := a.Browser.Goto(a.URL("/")); err != nil {
		return fmt.Errorf("Base: unable to open console: %w", err)
	}
	page := NewLoggedInPage(a)
	if page.LoggedInAsCurrentUser() {
		return nil
	}
	if page.LoggedIn() {
		logger.Debug("Logged in as another user, logging out")
		if err := page.Logout(); err != nil {
			return err
		}
	}

	login := NewLoginView(a.Browser)
	if !login.IsDisplayed() {
		return fmt.Errorf("Base: login form is not displayed: %w", browser.ErrNoSuchElement)
	}
	logger.Debug("Logging in", "user", a.Config.Appliance.Username)
	if err := login.LogIn(a.Config.Appliance.Username, a.Config.Appliance.Password); err != nil {
		return err
	}
	if login.IsDisplayed() {
		if err := login.Flash.AssertNoError(); err != nil {
			return fmt.Errorf("Base: login failed: %w", err)
		}
	}
	return nil
}
