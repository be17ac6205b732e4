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

// Package myservice is the My Services explorer: provisioned services and the
// generic objects attached to them
package myservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/adobe/miq-pages/lib/appliance"
	"github.com/adobe/miq-pages/lib/base"
	"github.com/adobe/miq-pages/lib/navigator"
	"github.com/adobe/miq-pages/lib/widget"
)

// KindMyService is the navigation kind of the service
const KindMyService = "my_service"

// ErrServiceNotFound is returned when the service is not in the list
var ErrServiceNotFound = errors.New("service not found")

// MyService is the provisioned service
type MyService struct {
	Name string

	app *appliance.Appliance
}

// New creates the service entity
func New(a *appliance.Appliance, name string) *MyService {
	return &MyService{Name: name, app: a}
}

// NavigationKind implements navigator.Navigable
func (*MyService) NavigationKind() string { return KindMyService }

// Appliance returns the appliance of the service
func (s *MyService) Appliance() *appliance.Appliance { return s.app }

// MyServicesView is the frame of the My Services explorer
type MyServicesView struct {
	base.LoggedInPage
	Title    widget.Text
	Entities widget.Entities
}

func newMyServicesView(a *appliance.Appliance) MyServicesView {
	return MyServicesView{
		LoggedInPage: base.NewLoggedInPage(a),
		Title:        widget.NewText(a.Browser, widget.ExplorerTitleLocator),
		Entities:     widget.NewEntities(a.Browser),
	}
}

// InMyServices checks the My Services explorer is shown
func (v MyServicesView) InMyServices() bool {
	return v.InExplorer() && v.Navigation.IsSelected("Services", "My Services")
}

// AllView is the list of the active services
type AllView struct {
	MyServicesView
	Services widget.Accordion
}

// IsDisplayed implements navigator.View
func (v AllView) IsDisplayed() bool {
	return v.InMyServices() && v.Title.TextOrEmpty() == "Active Services"
}

// DetailsView is the summary of the service
type DetailsView struct {
	MyServicesView
	name string
}

// Summary returns the summary table by its title
func (v DetailsView) Summary(title string) widget.SummaryTable {
	return widget.NewSummaryTable(v.Browser(), title)
}

// IsDisplayed implements navigator.View
func (v DetailsView) IsDisplayed() bool {
	return v.InMyServices() && v.Title.TextOrEmpty() == `Service "`+v.name+`"`
}

// GenericObjectsView is the list of the generic object instances of the service
type GenericObjectsView struct {
	MyServicesView
	name string
}

// IsDisplayed implements navigator.View
func (v GenericObjectsView) IsDisplayed() bool {
	return v.InMyServices() && v.Title.TextOrEmpty() == v.name+" (All Generic Objects)"
}

// RegisterSteps adds the service steps to the navigator
func RegisterSteps(n *navigator.Navigator) error {
	n.AddFatal(ErrServiceNotFound)
	return errors.Join(
		navigator.Register(n, KindMyService, "All", navigator.Step[*MyService]{
			View: func(s *MyService) navigator.View {
				return AllView{newMyServicesView(s.app), widget.NewAccordion(s.app.Browser, "Services")}
			},
			Prerequisite: navigator.ToAttribute(appliance.KindServer, "LoggedIn", func(s *MyService) navigator.Navigable {
				return s.app.Server()
			}),
			Do: func(_ context.Context, _ *MyService, prereq navigator.View) error {
				return prereq.(base.LoggedInPage).Navigation.Select("Services", "My Services")
			},
		}),
		navigator.Register(n, KindMyService, "Details", navigator.Step[*MyService]{
			View:         func(s *MyService) navigator.View { return DetailsView{newMyServicesView(s.app), s.Name} },
			Prerequisite: navigator.ToSibling("All"),
			Do: func(_ context.Context, s *MyService, prereq navigator.View) error {
				row, err := prereq.(AllView).Entities.GetEntity(s.Name, true)
				if errors.Is(err, widget.ErrItemNotFound) {
					return fmt.Errorf("Could not locate service %q: %w", s.Name, ErrServiceNotFound)
				}
				if err != nil {
					return err
				}
				return row.Click()
			},
		}),
		navigator.Register(n, KindMyService, "GenericObjectInstance", navigator.Step[*MyService]{
			View:         func(s *MyService) navigator.View { return GenericObjectsView{newMyServicesView(s.app), s.Name} },
			Prerequisite: navigator.ToSibling("Details"),
			Do: func(_ context.Context, _ *MyService, prereq navigator.View) error {
				return prereq.(DetailsView).Summary("Generic Objects").ClickAt("Instances")
			},
		}),
	)
}
