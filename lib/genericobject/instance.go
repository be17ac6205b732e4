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

package genericobject

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/adobe/miq-pages/lib/appliance"
	"github.com/adobe/miq-pages/lib/base"
	"github.com/adobe/miq-pages/lib/browser"
	"github.com/adobe/miq-pages/lib/common"
	"github.com/adobe/miq-pages/lib/monitoring"
	"github.com/adobe/miq-pages/lib/navigator"
	"github.com/adobe/miq-pages/lib/services/myservice"
	"github.com/adobe/miq-pages/lib/widget"
)

// InstanceCollection is the instances of the generic object class
type InstanceCollection struct {
	definition *Definition
}

// NavigationKind implements navigator.Navigable
func (*InstanceCollection) NavigationKind() string { return KindInstanceCollection }

// Definition returns the class of the instances
func (c *InstanceCollection) Definition() *Definition { return c.definition }

// Instantiate returns the instance entity without touching the browser, the service
// is optional and needed only for the service screens
func (c *InstanceCollection) Instantiate(name string, service *myservice.MyService) *Instance {
	return &Instance{Name: name, Definition: c.definition, MyService: service}
}

// All returns names of the instances
func (c *InstanceCollection) All(ctx context.Context) ([]string, error) {
	view, err := c.definition.Appliance().NavigateTo(ctx, c, "All")
	if err != nil {
		return nil, err
	}
	return view.(InstanceAllView).Entities.EntityNames(true)
}

// Instance is the generic object
type Instance struct {
	Name       string
	Definition *Definition
	MyService  *myservice.MyService
}

// NavigationKind implements navigator.Navigable
func (*Instance) NavigationKind() string { return KindInstance }

// Appliance returns the appliance of the instance
func (i *Instance) Appliance() *appliance.Appliance { return i.Definition.Appliance() }

// Exists checks the class has instances and this one could be opened
func (i *Instance) Exists(ctx context.Context) (bool, error) {
	count, err := i.Definition.InstanceCount(ctx)
	if err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}
	_, err = i.Appliance().NavigateTo(ctx, i, "Details")
	if errors.Is(err, widget.ErrCandidateNotFound) || errors.Is(err, widget.ErrItemNotFound) {
		return false, nil
	}
	return err == nil, err
}

// AddTag assigns the tag to the instance
func (i *Instance) AddTag(ctx context.Context, tag common.Tag, cancel, reset bool) error {
	return common.AddTag(ctx, i, tag, cancel, reset)
}

// RemoveTag removes the tag from the instance
func (i *Instance) RemoveTag(ctx context.Context, tag common.Tag, cancel, reset bool) error {
	return common.RemoveTag(ctx, i, tag, cancel, reset)
}

// GetTags returns the tags of the tenant, empty means the company tags
func (i *Instance) GetTags(ctx context.Context, tenant string) ([]common.Tag, error) {
	return common.GetTags(ctx, i, tenant)
}

// ExecuteCustomButton clicks the custom button on the service screen of the instance.
// Empty group means the button is on the toolbar, otherwise it's an item of the group
// dropdown.
func (i *Instance) ExecuteCustomButton(ctx context.Context, group, button string) (err error) {
	ctx, done := monitoring.StartOperation(ctx, KindInstance, "custom_button",
		attribute.String("button.group", group), attribute.String("button.name", button))
	defer func() { done(err) }()

	view, err := i.Appliance().NavigateTo(ctx, i, "MyServiceDetails")
	if err != nil {
		return err
	}
	v := view.(MyServiceInstanceView)
	if group != "" {
		err = v.Group(group).ItemSelect(button)
	} else {
		err = v.Button(button).Click()
	}
	if err != nil {
		return fmt.Errorf("Instance %q: custom button %q: %w", i.Name, button, err)
	}
	return v.Flash.AssertNoError()
}

// InstanceToolbar of the instances list
type InstanceToolbar struct {
	Policy       widget.Dropdown
	Download     widget.Dropdown
	ViewSelector widget.ViewSelector
}

// InstanceAllView is the list of the instances of the class
type InstanceAllView struct {
	base.LoggedInPage
	Toolbar  InstanceToolbar
	Entities widget.Entities
}

// NewInstanceAllView creates the instances list view
func NewInstanceAllView(a *appliance.Appliance) InstanceAllView {
	b := a.Browser
	return InstanceAllView{
		LoggedInPage: base.NewLoggedInPage(a),
		Toolbar: InstanceToolbar{
			Policy:       widget.NewDropdown(b, "Policy"),
			Download:     widget.NewDropdown(b, "Download"),
			ViewSelector: widget.NewViewSelector(b),
		},
		Entities: widget.NewEntities(b),
	}
}

// IsDisplayed implements navigator.View
func (v InstanceAllView) IsDisplayed() bool {
	return v.Toolbar.Policy.IsDisplayed() &&
		strings.Contains(v.Entities.Title.TextOrEmpty(), "(All Generic Objects)")
}

// InstanceDetailsView is the summary of the instance
type InstanceDetailsView struct {
	base.LoggedInPage
	Policy       widget.Dropdown
	ViewSelector widget.ViewSelector

	name string
}

// Summary returns the summary table by its title
func (v InstanceDetailsView) Summary(title string) widget.SummaryTable {
	return widget.NewSummaryTable(v.Browser(), title)
}

// IsDisplayed implements navigator.View
func (v InstanceDetailsView) IsDisplayed() bool {
	return v.Title.TextOrEmpty() == v.name+" (Summary)"
}

// MyServiceInstanceView is the instance screen of the service explorer
type MyServiceInstanceView struct {
	base.LoggedInPage
	Reload widget.Button

	name string
}

// Group returns the custom button group dropdown
func (v MyServiceInstanceView) Group(name string) widget.Dropdown {
	return widget.NewDropdown(v.Browser(), name)
}

// Button returns the custom button of the toolbar
func (v MyServiceInstanceView) Button(name string) widget.Button {
	return widget.Button{Widget: widget.Widget{
		Browser: v.Browser(),
		Locator: fmt.Sprintf(`//button[contains(@id, "custom__custom") and normalize-space()=%s]`, browser.Quote(name)),
	}}
}

// Summary returns the summary table by its title
func (v MyServiceInstanceView) Summary(title string) widget.SummaryTable {
	return widget.NewSummaryTable(v.Browser(), title)
}

// IsDisplayed implements navigator.View
func (v MyServiceInstanceView) IsDisplayed() bool {
	return v.Title.TextOrEmpty() == v.name
}

func clickInstance(i *Instance, entities widget.Entities) (widget.TableRow, error) {
	row, err := entities.GetEntity(i.Name, true)
	if errors.Is(err, widget.ErrItemNotFound) {
		return row, fmt.Errorf("Could not locate generic object %q of %s: %w: %w", i.Name, i.Definition.Name, ErrInstanceNotFound, err)
	}
	return row, err
}

func registerInstanceSteps(n *navigator.Navigator) error {
	toInstances := navigator.ToAttribute(KindDefinition, "Instances", func(i *Instance) navigator.Navigable {
		return i.Definition
	})
	return errors.Join(
		navigator.Register(n, KindInstanceCollection, "All", navigator.Step[*InstanceCollection]{
			View: func(c *InstanceCollection) navigator.View { return NewInstanceAllView(c.definition.Appliance()) },
			Prerequisite: navigator.ToAttribute(KindDefinition, "Details", func(c *InstanceCollection) navigator.Navigable {
				return c.definition
			}),
			Do: func(_ context.Context, _ *InstanceCollection, prereq navigator.View) error {
				return prereq.(DefinitionDetailsView).Summary("Relationships").ClickAt("Instances")
			},
		}),
		navigator.Register(n, KindInstance, "Details", navigator.Step[*Instance]{
			View: func(i *Instance) navigator.View {
				a := i.Appliance()
				return InstanceDetailsView{
					LoggedInPage: base.NewLoggedInPage(a),
					Policy:       widget.NewDropdown(a.Browser, "Policy"),
					ViewSelector: widget.NewViewSelector(a.Browser),
					name:         i.Name,
				}
			},
			Prerequisite: toInstances,
			Do: func(_ context.Context, i *Instance, prereq navigator.View) error {
				row, err := clickInstance(i, prereq.(InstanceAllView).Entities)
				if err != nil {
					return err
				}
				return row.Click()
			},
		}),
		navigator.Register(n, KindInstance, "EditTags", navigator.Step[*Instance]{
			View:         func(i *Instance) navigator.View { return common.NewTagPageView(i.Appliance()) },
			Prerequisite: toInstances,
			Do: func(_ context.Context, i *Instance, prereq navigator.View) error {
				all := prereq.(InstanceAllView)
				row, err := clickInstance(i, all.Entities)
				if err != nil {
					return err
				}
				if err := row.Check(); err != nil {
					return err
				}
				return all.Toolbar.Policy.ItemSelect("Edit Tags")
			},
		}),
		navigator.Register(n, KindInstance, "MyServiceDetails", navigator.Step[*Instance]{
			View: func(i *Instance) navigator.View {
				a := i.Appliance()
				return MyServiceInstanceView{
					LoggedInPage: base.NewLoggedInPage(a),
					Reload:       widget.NewButtonByTitle(a.Browser, "Refresh this page"),
					name:         i.Name,
				}
			},
			Prerequisite: navigator.ToAttribute(myservice.KindMyService, "GenericObjectInstance", func(i *Instance) navigator.Navigable {
				if i.MyService == nil {
					return nil
				}
				return i.MyService
			}),
			Do: func(_ context.Context, i *Instance, prereq navigator.View) error {
				row, err := clickInstance(i, prereq.(myservice.GenericObjectsView).Entities)
				if err != nil {
					return err
				}
				return row.Click()
			},
		}),
	)
}

// RegisterSteps adds the generic object steps to the navigator
func RegisterSteps(n *navigator.Navigator) error {
	n.AddFatal(ErrDefinitionNotFound, ErrInstanceNotFound)
	return errors.Join(registerDefinitionSteps(n), registerInstanceSteps(n))
}
