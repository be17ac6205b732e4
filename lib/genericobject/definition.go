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

// Package genericobject is the generic object classes and their instances
package genericobject

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/adobe/miq-pages/lib/appliance"
	"github.com/adobe/miq-pages/lib/base"
	"github.com/adobe/miq-pages/lib/navigator"
	"github.com/adobe/miq-pages/lib/widget"
)

// Navigation kinds
const (
	KindDefinition           = "generic_object_definition"
	KindDefinitionCollection = "generic_object_definition_collection"
	KindInstance             = "generic_object_instance"
	KindInstanceCollection   = "generic_object_instance_collection"
)

var (
	// ErrDefinitionNotFound is returned when the generic object class is not in the list
	ErrDefinitionNotFound = errors.New("generic object definition not found")

	// ErrInstanceNotFound is returned when the instance is not in the list
	ErrInstanceNotFound = errors.New("generic object instance not found")
)

// DefinitionCollection is the generic object classes of the appliance
type DefinitionCollection struct {
	app *appliance.Appliance
}

// NewDefinitionCollection creates the classes collection
func NewDefinitionCollection(a *appliance.Appliance) *DefinitionCollection {
	return &DefinitionCollection{app: a}
}

// NavigationKind implements navigator.Navigable
func (*DefinitionCollection) NavigationKind() string { return KindDefinitionCollection }

// Instantiate returns the class entity without touching the browser
func (c *DefinitionCollection) Instantiate(name string) *Definition {
	return &Definition{Name: name, collection: c}
}

// All returns names of the classes
func (c *DefinitionCollection) All(ctx context.Context) ([]string, error) {
	view, err := c.app.NavigateTo(ctx, c, "All")
	if err != nil {
		return nil, err
	}
	return view.(DefinitionAllView).Entities.EntityNames(true)
}

// Definition is the generic object class
type Definition struct {
	Name string

	collection *DefinitionCollection
}

// NavigationKind implements navigator.Navigable
func (*Definition) NavigationKind() string { return KindDefinition }

// Appliance returns the appliance of the class
func (d *Definition) Appliance() *appliance.Appliance { return d.collection.app }

// Instances returns the instances collection of the class
func (d *Definition) Instances() *InstanceCollection {
	return &InstanceCollection{definition: d}
}

// InstanceCount returns amount of the instances of the class
func (d *Definition) InstanceCount(ctx context.Context) (int, error) {
	view, err := d.Appliance().NavigateTo(ctx, d, "Details")
	if err != nil {
		return 0, err
	}
	text, err := view.(DefinitionDetailsView).Summary("Relationships").GetTextOf("Instances")
	if err != nil {
		return 0, err
	}
	count, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("Definition %q: instances %q is not a number: %w", d.Name, text, err)
	}
	return count, nil
}

// DefinitionAllView is the list of the classes
type DefinitionAllView struct {
	base.LoggedInPage
	Entities widget.Entities
}

// IsDisplayed implements navigator.View
func (v DefinitionAllView) IsDisplayed() bool {
	return v.LoggedInAsCurrentUser() &&
		v.Navigation.IsSelected("Automation", "Automate", "Generic Objects") &&
		v.Entities.Title.TextOrEmpty() == "Generic Object Classes"
}

// DefinitionDetailsView is the summary of the class
type DefinitionDetailsView struct {
	base.LoggedInPage
	name string
}

// Summary returns the summary table by its title
func (v DefinitionDetailsView) Summary(title string) widget.SummaryTable {
	return widget.NewSummaryTable(v.Browser(), title)
}

// IsDisplayed implements navigator.View
func (v DefinitionDetailsView) IsDisplayed() bool {
	return v.LoggedInAsCurrentUser() && v.Title.TextOrEmpty() == v.name+" (Summary)"
}

func registerDefinitionSteps(n *navigator.Navigator) error {
	return errors.Join(
		navigator.Register(n, KindDefinitionCollection, "All", navigator.Step[*DefinitionCollection]{
			View: func(c *DefinitionCollection) navigator.View {
				return DefinitionAllView{base.NewLoggedInPage(c.app), widget.NewEntities(c.app.Browser)}
			},
			Prerequisite: navigator.ToAttribute(appliance.KindServer, "LoggedIn", func(c *DefinitionCollection) navigator.Navigable {
				return c.app.Server()
			}),
			Do: func(_ context.Context, _ *DefinitionCollection, prereq navigator.View) error {
				return prereq.(base.LoggedInPage).Navigation.Select("Automation", "Automate", "Generic Objects")
			},
		}),
		navigator.Register(n, KindDefinition, "Details", navigator.Step[*Definition]{
			View: func(d *Definition) navigator.View {
				return DefinitionDetailsView{base.NewLoggedInPage(d.Appliance()), d.Name}
			},
			Prerequisite: navigator.ToAttribute(KindDefinitionCollection, "All", func(d *Definition) navigator.Navigable {
				return d.collection
			}),
			Do: func(_ context.Context, d *Definition, prereq navigator.View) error {
				row, err := prereq.(DefinitionAllView).Entities.GetEntity(d.Name, true)
				if errors.Is(err, widget.ErrItemNotFound) {
					return fmt.Errorf("Could not locate generic object class %q: %w: %w", d.Name, ErrDefinitionNotFound, err)
				}
				if err != nil {
					return err
				}
				return row.Click()
			},
		}),
		navigator.Register(n, KindDefinition, "Instances", navigator.Step[*Definition]{
			View:         func(d *Definition) navigator.View { return NewInstanceAllView(d.Appliance()) },
			Prerequisite: navigator.ToSibling("Details"),
			Do: func(_ context.Context, _ *Definition, prereq navigator.View) error {
				return prereq.(DefinitionDetailsView).Summary("Relationships").ClickAt("Instances")
			},
		}),
	)
}
