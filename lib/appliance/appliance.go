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

// Package appliance holds the state of the console session every page object refers to:
// config, browser, appliance version, navigator and journal
package appliance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adobe/miq-pages/lib/browser"
	"github.com/adobe/miq-pages/lib/config"
	"github.com/adobe/miq-pages/lib/journal"
	"github.com/adobe/miq-pages/lib/log"
	"github.com/adobe/miq-pages/lib/navigator"
	"github.com/adobe/miq-pages/lib/version"
)

// KindServer is the navigation kind of the appliance server
const KindServer = "server"

// Appliance is the console the page objects are working with
type Appliance struct {
	Config  *config.Config
	Browser browser.Driver
	Version version.Version
	Nav     *navigator.Navigator
	Journal *journal.Journal

	server *Server
}

// New creates the appliance, journal could be nil
func New(cfg *config.Config, b browser.Driver, j *journal.Journal) (*Appliance, error) {
	if b == nil {
		return nil, fmt.Errorf("Appliance: browser is required")
	}
	v, err := version.Parse(cfg.Appliance.Version)
	if err != nil {
		return nil, fmt.Errorf("Appliance: %w", err)
	}

	navCfg := navigator.DefaultConfig()
	navCfg.Retries = cfg.Navigation.Retries
	navCfg.WaitForView = cfg.Navigation.WaitForView
	if cfg.Navigation.ViewTimeout > 0 {
		navCfg.ViewTimeout = cfg.Navigation.ViewTimeout.Duration()
	}
	navCfg.RetryDelay = cfg.Navigation.RetryDelay.Duration()

	a := &Appliance{
		Config:  cfg,
		Browser: b,
		Version: v,
		Nav:     navigator.New(navCfg),
		Journal: j,
	}
	a.server = &Server{appliance: a}
	return a, nil
}

// Server returns the server entity, the root of the navigation
func (a *Appliance) Server() *Server {
	return a.server
}

// URL returns the absolute url of the console path
func (a *Appliance) URL(path string) string {
	base := strings.TrimSuffix(a.Config.Appliance.URL, "/")
	if path == "" {
		return base + "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// LoggedInUser returns the full name the console shows for the logged in user
func (a *Appliance) LoggedInUser() string {
	return a.Config.Appliance.FullName
}

// NavigateTo brings the browser to the destination of the entity
func (a *Appliance) NavigateTo(ctx context.Context, obj navigator.Navigable, dest string, opts ...navigator.Option) (navigator.View, error) {
	return a.Nav.NavigateTo(ctx, obj, dest, opts...)
}

// Record puts the created entity into the journal. Failures are only logged since the
// entity is already created on the appliance.
func (a *Appliance) Record(kind, name, parent string) {
	_, err := a.Journal.Record(journal.Entry{
		Kind:      kind,
		Name:      name,
		Parent:    parent,
		Appliance: a.Config.Appliance.URL,
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.WithFunc("appliance", "Record").Warn("Unable to record entity", "kind", kind, "name", name, "err", err)
	}
}

// Forget removes the deleted entity from the journal
func (a *Appliance) Forget(kind, name string) {
	if err := a.Journal.Forget(kind, name); err != nil {
		log.WithFunc("appliance", "Forget").Debug("Entity was not in the journal", "kind", kind, "name", name, "err", err)
	}
}

// Server is the appliance web server, the starting point of every navigation
type Server struct {
	appliance *Appliance
}

// NavigationKind implements navigator.Navigable
func (*Server) NavigationKind() string { return KindServer }

// Appliance returns the appliance of the server
func (s *Server) Appliance() *Appliance {
	return s.appliance
}
