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

// Package flavor is the cloud flavors: creation, removal and the flavor summary
package flavor

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/adobe/miq-pages/lib/appliance"
	"github.com/adobe/miq-pages/lib/base"
	"github.com/adobe/miq-pages/lib/cloud/provider"
	"github.com/adobe/miq-pages/lib/common"
	"github.com/adobe/miq-pages/lib/log"
	"github.com/adobe/miq-pages/lib/monitoring"
	"github.com/adobe/miq-pages/lib/navigator"
	"github.com/adobe/miq-pages/lib/widget"
)

// Navigation kinds, the flavor kind is also used for the journal entries
const (
	KindFlavor     = "flavor"
	KindCollection = "flavor_collection"
)

// ErrFlavorNotFound is returned when the flavor is not in the list
var ErrFlavorNotFound = errors.New("flavor not found")

// Collection is the flavors of the appliance
type Collection struct {
	app *appliance.Appliance
}

// NewCollection creates the flavors collection
func NewCollection(a *appliance.Appliance) *Collection {
	return &Collection{app: a}
}

// NavigationKind implements navigator.Navigable
func (*Collection) NavigationKind() string { return KindCollection }

// Appliance returns the appliance of the collection
func (c *Collection) Appliance() *appliance.Appliance { return c.app }

// Instantiate returns the flavor entity without touching the browser
func (c *Collection) Instantiate(name string, p *provider.Provider) *Flavor {
	return &Flavor{Name: name, Provider: p, IsPublic: true, collection: c}
}

// Flavor is the cloud flavor, zero sizes are not set
type Flavor struct {
	Name     string
	Provider *provider.Provider
	RAM      int
	VCPUs    int
	Disk     int
	Swap     int
	RxTx     float64
	IsPublic bool

	collection *Collection
}

// NavigationKind implements navigator.Navigable
func (*Flavor) NavigationKind() string { return KindFlavor }

// Appliance returns the appliance of the flavor
func (f *Flavor) Appliance() *appliance.Appliance { return f.collection.app }

func optional[T int | float64](v T) any {
	if v == 0 {
		return nil
	}
	return v
}

// Create fills the new flavor form and submits or cancels it. The created flavor is
// recorded to the journal.
func (c *Collection) Create(ctx context.Context, in Flavor, cancel bool) (_ *Flavor, err error) {
	if in.Provider == nil {
		return nil, fmt.Errorf("Flavor %q: provider is required", in.Name)
	}
	ctx, done := monitoring.StartOperation(ctx, KindFlavor, "create",
		attribute.String("flavor.name", in.Name), attribute.String("flavor.provider", in.Provider.Name))
	defer func() { done(err) }()

	view, err := c.app.NavigateTo(ctx, c, "Add")
	if err != nil {
		return nil, err
	}
	add := view.(AddView)
	if _, err := add.Form.Fields().Fill(map[string]any{
		"provider":    in.Provider.Name,
		"flavor_name": in.Name,
		"ram_size":    optional(in.RAM),
		"vcpus":       optional(in.VCPUs),
		"disk_size":   optional(in.Disk),
		"swap_size":   optional(in.Swap),
		"rxtx_factor": optional(in.RxTx),
		"public":      in.IsPublic,
	}); err != nil {
		return nil, fmt.Errorf("Flavor %q: %w", in.Name, err)
	}

	if cancel {
		err = add.Form.Cancel.Click()
	} else {
		err = add.Form.Add.Click()
	}
	if err != nil {
		return nil, fmt.Errorf("Flavor %q: unable to submit: %w", in.Name, err)
	}

	if err := NewAllView(c.app).Flash.AssertNoError(); err != nil {
		return nil, err
	}
	f := in
	f.collection = c
	if !cancel {
		log.WithFunc("flavor", "Create").Info("Flavor created", "name", f.Name, "provider", f.Provider.Name)
		c.app.Record(KindFlavor, f.Name, f.Provider.Name)
	}
	return &f, nil
}

// All returns names of the flavors from all the pages
func (c *Collection) All(ctx context.Context) ([]string, error) {
	view, err := c.app.NavigateTo(ctx, c, "All")
	if err != nil {
		return nil, err
	}
	return view.(AllView).Entities.EntityNames(true)
}

// Delete removes the flavor, cancel dismisses the confirmation
func (f *Flavor) Delete(ctx context.Context, cancel bool) (err error) {
	ctx, done := monitoring.StartOperation(ctx, KindFlavor, "delete", attribute.String("flavor.name", f.Name))
	defer func() { done(err) }()

	view, err := f.Appliance().NavigateTo(ctx, f, "Details")
	if err != nil {
		return err
	}
	details := view.(DetailsView)
	if err := details.Toolbar.Configuration.ItemSelectWithAlert("Remove Flavor", !cancel); err != nil {
		return fmt.Errorf("Flavor %q: unable to remove: %w", f.Name, err)
	}
	if err := details.Flash.AssertNoError(); err != nil {
		return err
	}
	if !cancel {
		f.Appliance().Forget(KindFlavor, f.Name)
	}
	return nil
}

// Refresh refreshes the provider relationships and reloads the page
func (f *Flavor) Refresh(ctx context.Context) error {
	if err := f.Provider.RefreshRelationships(ctx); err != nil {
		return err
	}
	return f.Appliance().Browser.Refresh()
}

// Exists checks the flavor could be found in the list
func (f *Flavor) Exists(ctx context.Context) (bool, error) {
	_, err := f.Appliance().NavigateTo(ctx, f, "Details")
	if errors.Is(err, ErrFlavorNotFound) {
		return false, nil
	}
	return err == nil, err
}

// InstanceCount returns amount of the instances using the flavor
func (f *Flavor) InstanceCount(ctx context.Context) (int, error) {
	view, err := f.Appliance().NavigateTo(ctx, f, "Details")
	if err != nil {
		return 0, err
	}
	text, err := view.(DetailsView).Relationships.GetTextOf("Instances")
	if err != nil {
		return 0, err
	}
	count, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("Flavor %q: instances %q is not a number: %w", f.Name, text, err)
	}
	return count, nil
}

// AddTag assigns the tag to the flavor
func (f *Flavor) AddTag(ctx context.Context, tag common.Tag, cancel, reset bool) error {
	return common.AddTag(ctx, f, tag, cancel, reset)
}

// RemoveTag removes the tag from the flavor
func (f *Flavor) RemoveTag(ctx context.Context, tag common.Tag, cancel, reset bool) error {
	return common.RemoveTag(ctx, f, tag, cancel, reset)
}

// GetTags returns the tags of the tenant, empty means the company tags
func (f *Flavor) GetTags(ctx context.Context, tenant string) ([]common.Tag, error) {
	return common.GetTags(ctx, f, tenant)
}

// RegisterSteps adds the flavor steps to the navigator
func RegisterSteps(n *navigator.Navigator) error {
	n.AddFatal(ErrFlavorNotFound)
	return errors.Join(
		navigator.Register(n, KindCollection, "All", navigator.Step[*Collection]{
			View: func(c *Collection) navigator.View { return NewAllView(c.app) },
			Prerequisite: navigator.ToAttribute(appliance.KindServer, "LoggedIn", func(c *Collection) navigator.Navigable {
				return c.app.Server()
			}),
			Do: func(_ context.Context, _ *Collection, prereq navigator.View) error {
				return prereq.(base.LoggedInPage).Navigation.Select("Compute", "Clouds", "Flavors")
			},
		}),
		navigator.Register(n, KindFlavor, "Details", navigator.Step[*Flavor]{
			View: func(f *Flavor) navigator.View { return NewDetailsView(f) },
			Prerequisite: navigator.ToAttribute(KindCollection, "All", func(f *Flavor) navigator.Navigable {
				return f.collection
			}),
			Do: func(_ context.Context, f *Flavor, prereq navigator.View) error {
				all := prereq.(AllView)
				if err := all.Toolbar.ViewSelector.Select("List View"); err != nil {
					return err
				}
				row, err := all.Entities.GetEntity(f.Name, true)
				if errors.Is(err, widget.ErrItemNotFound) {
					return fmt.Errorf("Could not locate flavor %q on provider %s: %w", f.Name, f.Provider.Name, ErrFlavorNotFound)
				}
				if err != nil {
					return err
				}
				return row.Click()
			},
		}),
		navigator.Register(n, KindFlavor, "EditTags", navigator.Step[*Flavor]{
			View:         func(f *Flavor) navigator.View { return common.NewTagPageView(f.Appliance()) },
			Prerequisite: navigator.ToSibling("Details"),
			Do: func(_ context.Context, _ *Flavor, prereq navigator.View) error {
				return prereq.(DetailsView).Toolbar.Policy.ItemSelect("Edit Tags")
			},
		}),
		navigator.Register(n, KindCollection, "Add", navigator.Step[*Collection]{
			View:         func(c *Collection) navigator.View { return NewAddView(c.app) },
			Prerequisite: navigator.ToSibling("All"),
			Do: func(_ context.Context, _ *Collection, prereq navigator.View) error {
				return prereq.(AllView).Toolbar.Configuration.ItemSelect("Add a new Flavor")
			},
		}),
	)
}
