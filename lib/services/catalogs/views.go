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

package catalogs

import (
	"errors"
	"fmt"
	"sort"

	"github.com/adobe/miq-pages/lib/appliance"
	"github.com/adobe/miq-pages/lib/base"
	"github.com/adobe/miq-pages/lib/browser"
	"github.com/adobe/miq-pages/lib/log"
	"github.com/adobe/miq-pages/lib/util"
	"github.com/adobe/miq-pages/lib/version"
	"github.com/adobe/miq-pages/lib/widget"
)

// ServicesCatalogView is the frame of the service catalogs explorer
type ServicesCatalogView struct {
	base.LoggedInPage
	Title           widget.Text
	ServiceCatalogs widget.Accordion
}

func newServicesCatalogView(a *appliance.Appliance) ServicesCatalogView {
	return ServicesCatalogView{
		LoggedInPage:    base.NewLoggedInPage(a),
		Title:           widget.NewText(a.Browser, widget.ExplorerTitleLocator),
		ServiceCatalogs: widget.NewAccordion(a.Browser, "Service Catalogs"),
	}
}

// InServiceCatalogs checks the catalogs menu is active
func (v ServicesCatalogView) InServiceCatalogs() bool {
	return v.LoggedInAsCurrentUser() && v.Navigation.IsSelected("Services", "Catalogs")
}

// IsDisplayed implements navigator.View
func (v ServicesCatalogView) IsDisplayed() bool {
	return v.InServiceCatalogs() && v.Configuration.IsDisplayed() && !v.ServiceCatalogs.IsDimmed()
}

// ServiceCatalogsView is the catalogs explorer with "All Services" selected
type ServiceCatalogsView struct {
	ServicesCatalogView
}

// IsDisplayed implements navigator.View
func (v ServiceCatalogsView) IsDisplayed() bool {
	if !v.InExplorer() || v.Title.TextOrEmpty() != "All Services" || !v.ServiceCatalogs.IsOpened() {
		return false
	}
	selected, err := v.ServiceCatalogs.Tree().CurrentlySelected()
	return err == nil && len(selected) == 1 && selected[0] == "All Services"
}

// ServiceCatalogsDefaultView is the catalogs explorer as it opens
type ServiceCatalogsDefaultView struct {
	ServicesCatalogView
}

// IsDisplayed implements navigator.View
func (v ServiceCatalogsDefaultView) IsDisplayed() bool {
	return v.InExplorer() && v.Title.TextOrEmpty() == "All Services" && v.ServiceCatalogs.IsOpened()
}

// DetailsServiceCatalogView is the catalog item screen
type DetailsServiceCatalogView struct {
	ServicesCatalogView
	Order widget.Button

	name string
}

// IsDisplayed implements navigator.View
func (v DetailsServiceCatalogView) IsDisplayed() bool {
	return v.InExplorer() && v.ServiceCatalogs.IsOpened() &&
		v.Title.TextOrEmpty() == `Service "`+v.name+`"`
}

// OrderField is the dialog field by its key, the widget kind is found on the page
type OrderField struct {
	Input        widget.Input
	AnsibleInput widget.Input
	Dropdown     widget.Select

	key string
}

// VisibleWidget returns the first displayed of input, dropdown and ansible input
func (f OrderField) VisibleWidget() (widget.Fillable, error) {
	switch {
	case f.Input.IsDisplayed():
		return f.Input, nil
	case f.Dropdown.IsDisplayed():
		return f.Dropdown, nil
	case f.AnsibleInput.IsDisplayed():
		return f.AnsibleInput, nil
	}
	return nil, fmt.Errorf("Order: field %q: %w", f.key, browser.ErrNoSuchElement)
}

// Fill fills the visible widget of the field
func (f OrderField) Fill(value any) (bool, error) {
	w, err := f.VisibleWidget()
	if err != nil {
		return false, err
	}
	return w.Fill(value)
}

// Read returns the value of the visible widget
func (f OrderField) Read() (any, error) {
	w, err := f.VisibleWidget()
	if err != nil {
		return nil, err
	}
	return w.Read()
}

// OrderForm is the service dialog of the catalog item
type OrderForm struct {
	ServicesCatalogView
	DialogTitle widget.Text

	version version.Version
}

func newOrderForm(a *appliance.Appliance) OrderForm {
	return OrderForm{
		ServicesCatalogView: newServicesCatalogView(a),
		DialogTitle: widget.NewText(a.Browser, version.MustPick(a.Version, map[string]string{
			version.Lowest: "//div[@id='main_div']//h3",
			"5.9":          "//div[@id='main_div']//h2",
		})),
		version: a.Version,
	}
}

// Field returns the dialog field by key
func (f OrderForm) Field(key string) OrderField {
	b := f.Browser()
	q := browser.Quote(key)
	return OrderField{
		Input:        widget.NewInput(b, key),
		AnsibleInput: widget.NewInput(b, "param_"+key),
		Dropdown: version.MustPick(f.version, map[string]widget.Select{
			version.Lowest: widget.NewBootstrapSelect(b, key),
			"5.9":          widget.NewDialogDropDown(b, fmt.Sprintf("//div[@input-id=%s]", q)),
		}),
		key: key,
	}
}

// Fill fills the dialog fields by keys. Dotted keys are nested, nested and nil
// values are skipped, as well as the values the field can't accept.
func (f OrderForm) Fill(data map[string]any) (bool, error) {
	logger := log.WithFunc("catalogs", "OrderForm.Fill")
	values := util.Deflatten(data)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	changed := false
	for _, key := range keys {
		value := values[key]
		if value == nil {
			logger.Debug("Skipping fill of nil value", "key", key)
			continue
		}
		if _, nested := value.(map[string]any); nested {
			logger.Debug("Skipping fill of nested value", "key", key)
			continue
		}
		ch, err := f.Field(key).Fill(value)
		if errors.Is(err, widget.ErrNotFillable) {
			logger.Debug("Skipping not fillable value", "key", key, "err", err)
			continue
		}
		if err != nil {
			return changed, err
		}
		changed = changed || ch
	}
	return changed, nil
}

// OrderServiceCatalogView is the order screen of the catalog item
type OrderServiceCatalogView struct {
	OrderForm
	Submit widget.Button

	name string
}

// IsDisplayed implements navigator.View
func (v OrderServiceCatalogView) IsDisplayed() bool {
	return v.InExplorer() && v.ServiceCatalogs.IsOpened() &&
		v.Title.TextOrEmpty() == `Order Service "`+v.name+`"`
}

// AzureOrderForm is the Azure orchestration dialog of the appliances before 5.9
type AzureOrderForm struct {
	ServicesCatalogView
	DialogTitle widget.Text
	Form        widget.Form
	Submit      widget.Button
}

// NewAzureOrderForm creates the Azure order form
func NewAzureOrderForm(a *appliance.Appliance) AzureOrderForm {
	b := a.Browser
	return AzureOrderForm{
		ServicesCatalogView: newServicesCatalogView(a),
		DialogTitle:         widget.NewText(b, "//div[@id='main_div']//h3"),
		Form: widget.Form{
			{Name: "stack_name", Widget: widget.NewTextInput(b, "stack_name")},
			{Name: "resource_group", Widget: widget.NewBootstrapSelect(b, "resource_group")},
			{Name: "mode", Widget: widget.NewBootstrapSelect(b, "deploy_mode")},
			{Name: "vm_name", Widget: widget.NewTextInput(b, "param_virtualMachineName")},
			{Name: "vm_user", Widget: widget.NewTextInput(b, "param_adminUserName")},
			{Name: "vm_password", Widget: widget.NewTextInput(b, "param_adminPassword__protected")},
			{Name: "user_image", Widget: widget.NewBootstrapSelect(b, "param_userImageName")},
			{Name: "os_type", Widget: widget.NewBootstrapSelect(b, "param_operatingSystemType")},
			{Name: "vm_size", Widget: widget.NewBootstrapSelect(b, "param_virtualMachineSize")},
		},
		Submit: widget.NewButton(b, "Submit"),
	}
}

// Fill fills the known fields, the rest is reported to the log and ignored
func (f AzureOrderForm) Fill(data map[string]any) (bool, error) {
	known := make(map[string]bool, len(f.Form))
	for _, field := range f.Form {
		known[field.Name] = true
	}
	values := make(map[string]any, len(data))
	for k, v := range data {
		if !known[k] {
			log.WithFunc("catalogs", "AzureOrderForm.Fill").Warn("No field for the value", "key", k)
			continue
		}
		values[k] = v
	}
	return f.Form.Fill(values)
}
