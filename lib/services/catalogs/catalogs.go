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

// Package catalogs is the service catalogs explorer: ordering of the catalog items
// through their service dialogs
package catalogs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/adobe/miq-pages/lib/appliance"
	"github.com/adobe/miq-pages/lib/base"
	"github.com/adobe/miq-pages/lib/browser"
	"github.com/adobe/miq-pages/lib/log"
	"github.com/adobe/miq-pages/lib/monitoring"
	"github.com/adobe/miq-pages/lib/navigator"
	"github.com/adobe/miq-pages/lib/services/requests"
	"github.com/adobe/miq-pages/lib/util"
	"github.com/adobe/miq-pages/lib/version"
	"github.com/adobe/miq-pages/lib/widget"
)

const (
	// KindServiceCatalogs is the navigation kind of the catalog item
	KindServiceCatalogs = "service_catalogs"
	// KindServiceOrder is the journal kind of the placed orders
	KindServiceOrder = "service_order"

	rootNode = "All Services"
)

// DialogTimeout is how long the order waits for the service dialog to render
var DialogTimeout = 10 * time.Second

// Catalog groups the catalog items
type Catalog struct {
	Name string
}

// Item is the orderable catalog item. The values are keyed by the dialog field
// names, dotted keys address nested values.
type Item struct {
	Name    string
	Catalog Catalog

	StackData           map[string]any
	DialogValues        map[string]any
	AnsibleDialogValues map[string]any

	app *appliance.Appliance
}

// NewItem creates the catalog item entity
func NewItem(a *appliance.Appliance, catalog, name string) *Item {
	return &Item{Name: name, Catalog: Catalog{Name: catalog}, app: a}
}

// NavigationKind implements navigator.Navigable
func (*Item) NavigationKind() string { return KindServiceCatalogs }

// Appliance returns the appliance of the item
func (i *Item) Appliance() *appliance.Appliance { return i.app }

type filler interface {
	Fill(data map[string]any) (bool, error)
}

// Order fills the service dialog of the item with the values and submits it
func (i *Item) Order(ctx context.Context) (err error) {
	ctx, done := monitoring.StartOperation(ctx, KindServiceCatalogs, "order",
		attribute.String("catalog.name", i.Catalog.Name), attribute.String("catalog.item", i.Name))
	defer func() { done(err) }()

	view, err := i.app.NavigateTo(ctx, i, "Order")
	if err != nil {
		return err
	}
	order := view.(OrderServiceCatalogView)
	if err := util.WaitFor(ctx, util.Wait{Timeout: DialogTimeout, Delay: 200 * time.Millisecond, Message: "service dialog of " + i.Name},
		func() (bool, error) { return order.DialogTitle.IsDisplayed(), nil }); err != nil {
		return err
	}

	var form filler = order.OrderForm
	submit := order.Submit
	if len(i.StackData) > 0 {
		if _, ok := i.StackData["user_image"]; ok && i.app.Version.LessThan("5.9") {
			azure := NewAzureOrderForm(i.app)
			form, submit = azure, azure.Submit
		}
		if _, err := form.Fill(i.StackData); err != nil {
			return fmt.Errorf("Order %q: stack: %w", i.Name, err)
		}
	}
	for _, values := range []map[string]any{i.DialogValues, i.AnsibleDialogValues} {
		if len(values) == 0 {
			continue
		}
		if _, err := form.Fill(values); err != nil {
			return fmt.Errorf("Order %q: dialog: %w", i.Name, err)
		}
	}

	if err := submit.Click(); err != nil {
		return fmt.Errorf("Order %q: unable to submit: %w", i.Name, err)
	}

	rv := requests.NewRequestsView(i.app)
	if err := rv.Flash.AssertNoError(); err != nil {
		return err
	}
	msgType := version.MustPick(i.app.Version, map[string]string{
		version.Lowest: widget.FlashSuccess,
		"5.9":          widget.FlashInfo,
	})
	if err := rv.Flash.AssertMessage(requests.MsgOrderSubmitted, msgType); err != nil {
		return err
	}
	monitoring.Default().RecordFlash(ctx, KindServiceCatalogs, msgType)

	log.WithFunc("catalogs", "Order").Info("Service ordered", "catalog", i.Catalog.Name, "item", i.Name)
	i.app.Record(KindServiceOrder, i.Name, i.Catalog.Name)
	return nil
}

// RegisterSteps adds the catalogs steps to the navigator
func RegisterSteps(n *navigator.Navigator) error {
	return errors.Join(
		navigator.Register(n, appliance.KindServer, "ServiceCatalogsDefault", navigator.Step[*appliance.Server]{
			View: func(s *appliance.Server) navigator.View {
				return ServiceCatalogsDefaultView{newServicesCatalogView(s.Appliance())}
			},
			Prerequisite: navigator.ToSibling("LoggedIn"),
			Do: func(_ context.Context, _ *appliance.Server, prereq navigator.View) error {
				return prereq.(base.LoggedInPage).Navigation.Select("Services", "Catalogs")
			},
		}),
		navigator.Register(n, KindServiceCatalogs, "All", navigator.Step[*Item]{
			View: func(i *Item) navigator.View { return ServiceCatalogsView{newServicesCatalogView(i.app)} },
			Prerequisite: navigator.ToAttribute(appliance.KindServer, "LoggedIn", func(i *Item) navigator.Navigable {
				return i.app.Server()
			}),
			Do: func(_ context.Context, i *Item, prereq navigator.View) error {
				if err := prereq.(base.LoggedInPage).Navigation.Select("Services", "Catalogs"); err != nil {
					return err
				}
				return newServicesCatalogView(i.app).ServiceCatalogs.Tree().ClickPath(rootNode)
			},
		}),
		navigator.Register(n, KindServiceCatalogs, "Details", navigator.Step[*Item]{
			View: func(i *Item) navigator.View {
				return DetailsServiceCatalogView{
					ServicesCatalogView: newServicesCatalogView(i.app),
					Order:               widget.NewButton(i.app.Browser, "Order"),
					name:                i.Name,
				}
			},
			Prerequisite: navigator.ToSibling("All"),
			Do: func(_ context.Context, i *Item, prereq navigator.View) error {
				err := prereq.(ServiceCatalogsView).ServiceCatalogs.Tree().ClickPath(rootNode, i.Catalog.Name, i.Name)
				if err != nil {
					return fmt.Errorf("Catalog item %q in %q: %v: %w", i.Name, i.Catalog.Name, err, browser.ErrNoSuchElement)
				}
				return nil
			},
		}),
		navigator.Register(n, KindServiceCatalogs, "Order", navigator.Step[*Item]{
			View: func(i *Item) navigator.View {
				return OrderServiceCatalogView{
					OrderForm: newOrderForm(i.app),
					Submit:    widget.NewButton(i.app.Browser, "Submit"),
					name:      i.Name,
				}
			},
			Prerequisite: navigator.ToSibling("Details"),
			Do: func(_ context.Context, _ *Item, prereq navigator.View) error {
				return prereq.(DetailsServiceCatalogView).Order.Click()
			},
		}),
	)
}
