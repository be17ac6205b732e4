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

// Package provider is the cloud providers screens: list, details and the flavors of
// the provider
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/adobe/miq-pages/lib/appliance"
	"github.com/adobe/miq-pages/lib/base"
	"github.com/adobe/miq-pages/lib/monitoring"
	"github.com/adobe/miq-pages/lib/navigator"
	"github.com/adobe/miq-pages/lib/widget"
)

// Navigation kinds
const (
	KindProvider   = "cloud_provider"
	KindCollection = "cloud_provider_collection"
)

// ErrProviderNotFound is returned when the provider is not in the list
var ErrProviderNotFound = errors.New("provider not found")

// Refresh relationships item of the Configuration menu
const itemRefresh = "Refresh Relationships and Power States"

// Collection is the cloud providers of the appliance
type Collection struct {
	app *appliance.Appliance
}

// NewCollection creates the providers collection
func NewCollection(a *appliance.Appliance) *Collection {
	return &Collection{app: a}
}

// NavigationKind implements navigator.Navigable
func (*Collection) NavigationKind() string { return KindCollection }

// Appliance returns the appliance of the collection
func (c *Collection) Appliance() *appliance.Appliance { return c.app }

// Instantiate returns the provider entity without touching the browser
func (c *Collection) Instantiate(name string) *Provider {
	return &Provider{Name: name, collection: c}
}

// All returns names of the providers
func (c *Collection) All(ctx context.Context) ([]string, error) {
	if _, err := c.app.NavigateTo(ctx, c, "All"); err != nil {
		return nil, err
	}
	return widget.NewEntities(c.app.Browser).EntityNames(true)
}

// Provider is the cloud provider
type Provider struct {
	Name string

	collection *Collection
}

// NavigationKind implements navigator.Navigable
func (*Provider) NavigationKind() string { return KindProvider }

// Appliance returns the appliance of the provider
func (p *Provider) Appliance() *appliance.Appliance { return p.collection.app }

// Collection returns the parent collection
func (p *Provider) Collection() *Collection { return p.collection }

// RefreshRelationships asks the provider to refresh its inventory
func (p *Provider) RefreshRelationships(ctx context.Context) (err error) {
	ctx, done := monitoring.StartOperation(ctx, KindProvider, "refresh")
	defer func() { done(err) }()

	view, err := p.Appliance().NavigateTo(ctx, p, "Details")
	if err != nil {
		return err
	}
	details := view.(DetailsView)
	if err := details.Configuration.ItemSelectWithAlert(itemRefresh, true); err != nil {
		return fmt.Errorf("Provider %q: unable to refresh: %w", p.Name, err)
	}
	return details.Flash.AssertNoError()
}

// ProviderView is the frame of the providers screens
type ProviderView struct {
	base.LoggedInPage
}

// InCloudProviders checks the providers menu is active
func (v ProviderView) InCloudProviders() bool {
	return v.LoggedInAsCurrentUser() && v.Navigation.IsSelected("Compute", "Clouds", "Providers")
}

// AllView is the list of the providers
type AllView struct {
	ProviderView
	Entities widget.Entities
}

// IsDisplayed implements navigator.View
func (v AllView) IsDisplayed() bool {
	return v.InCloudProviders() && v.Entities.Title.TextOrEmpty() == "Cloud Providers"
}

// DetailsView is the summary of the provider
type DetailsView struct {
	ProviderView
	Properties    widget.SummaryTable
	Relationships widget.SummaryTable

	name string
}

// IsDisplayed implements navigator.View
func (v DetailsView) IsDisplayed() bool {
	return v.InCloudProviders() && v.Title.TextOrEmpty() == v.name+" (Summary)"
}

// FlavorsView is the list of the flavors of the provider
type FlavorsView struct {
	ProviderView
	Policy       widget.Dropdown
	Download     widget.Dropdown
	ViewSelector widget.ViewSelector
	Entities     widget.Entities

	name string
}

// IsDisplayed implements navigator.View
func (v FlavorsView) IsDisplayed() bool {
	return v.InCloudProviders() && v.Entities.Title.TextOrEmpty() == v.name+" (All Flavors)"
}

// NewFlavorsView creates the provider flavors view
func NewFlavorsView(p *Provider) FlavorsView {
	a := p.Appliance()
	return FlavorsView{
		ProviderView: ProviderView{base.NewLoggedInPage(a)},
		Policy:       widget.NewDropdown(a.Browser, "Policy"),
		Download:     widget.NewDropdown(a.Browser, "Download"),
		ViewSelector: widget.NewViewSelector(a.Browser),
		Entities:     widget.NewEntities(a.Browser),
		name:         p.Name,
	}
}

// RegisterSteps adds the provider steps to the navigator
func RegisterSteps(n *navigator.Navigator) error {
	n.AddFatal(ErrProviderNotFound)
	return errors.Join(
		navigator.Register(n, KindCollection, "All", navigator.Step[*Collection]{
			View: func(c *Collection) navigator.View {
				return AllView{ProviderView{base.NewLoggedInPage(c.app)}, widget.NewEntities(c.app.Browser)}
			},
			Prerequisite: navigator.ToAttribute(appliance.KindServer, "LoggedIn", func(c *Collection) navigator.Navigable {
				return c.app.Server()
			}),
			Do: func(_ context.Context, _ *Collection, prereq navigator.View) error {
				return prereq.(base.LoggedInPage).Navigation.Select("Compute", "Clouds", "Providers")
			},
		}),
		navigator.Register(n, KindProvider, "Details", navigator.Step[*Provider]{
			View: func(p *Provider) navigator.View {
				a := p.Appliance()
				return DetailsView{
					ProviderView:  ProviderView{base.NewLoggedInPage(a)},
					Properties:    widget.NewSummaryTable(a.Browser, "Properties"),
					Relationships: widget.NewSummaryTable(a.Browser, "Relationships"),
					name:          p.Name,
				}
			},
			Prerequisite: navigator.ToAttribute(KindCollection, "All", func(p *Provider) navigator.Navigable {
				return p.collection
			}),
			Do: func(_ context.Context, p *Provider, prereq navigator.View) error {
				row, err := prereq.(AllView).Entities.GetEntity(p.Name, true)
				if errors.Is(err, widget.ErrItemNotFound) {
					return fmt.Errorf("Could not locate provider %q: %w", p.Name, ErrProviderNotFound)
				}
				if err != nil {
					return err
				}
				return row.Click()
			},
		}),
		navigator.Register(n, KindProvider, "Flavors", navigator.Step[*Provider]{
			View:         func(p *Provider) navigator.View { return NewFlavorsView(p) },
			Prerequisite: navigator.ToSibling("Details"),
			Do: func(_ context.Context, _ *Provider, prereq navigator.View) error {
				return prereq.(DetailsView).Relationships.ClickAt("Flavors")
			},
		}),
	)
}
