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

package flavor

import (
	"github.com/adobe/miq-pages/lib/appliance"
	"github.com/adobe/miq-pages/lib/base"
	"github.com/adobe/miq-pages/lib/widget"
)

// FlavorView is the frame of the flavors screens
type FlavorView struct {
	base.LoggedInPage
}

// InAvailabilityZones checks the flavors menu is active
func (v FlavorView) InAvailabilityZones() bool {
	return v.LoggedInAsCurrentUser() && v.Navigation.IsSelected("Compute", "Clouds", "Flavors")
}

// Toolbar of the flavors list
type Toolbar struct {
	Policy        widget.Dropdown
	Download      widget.Dropdown
	Configuration widget.Dropdown
	ViewSelector  widget.ViewSelector
}

// AllView is the list of all the flavors
type AllView struct {
	FlavorView
	Toolbar   Toolbar
	Search    widget.Search
	Paginator widget.Paginator
	Entities  widget.Entities
}

// NewAllView creates the flavors list view
func NewAllView(a *appliance.Appliance) AllView {
	b := a.Browser
	return AllView{
		FlavorView: FlavorView{base.NewLoggedInPage(a)},
		Toolbar: Toolbar{
			Policy:        widget.NewDropdown(b, "Policy"),
			Download:      widget.NewDropdown(b, "Download"),
			Configuration: widget.NewDropdown(b, "Configuration"),
			ViewSelector:  widget.NewViewSelector(b),
		},
		Search:    widget.NewSearch(b),
		Paginator: widget.NewPaginator(b),
		Entities:  widget.NewEntities(b),
	}
}

// IsDisplayed implements navigator.View
func (v AllView) IsDisplayed() bool {
	return v.InAvailabilityZones() && v.Entities.Title.TextOrEmpty() == "Flavors"
}

// DetailsToolbar of the flavor summary
type DetailsToolbar struct {
	Policy        widget.Dropdown
	Download      widget.Button
	Configuration widget.Dropdown
}

// Sidebar of the flavor summary
type Sidebar struct {
	Properties    widget.Accordion
	Relationships widget.Accordion
}

// DetailsView is the summary of the flavor
type DetailsView struct {
	FlavorView
	Toolbar         DetailsToolbar
	Sidebar         Sidebar
	Properties      widget.SummaryTable
	Relationships   widget.SummaryTable
	SmartManagement widget.SummaryTable

	flavor *Flavor
}

// NewDetailsView creates the summary view of the flavor
func NewDetailsView(f *Flavor) DetailsView {
	a := f.Appliance()
	b := a.Browser
	return DetailsView{
		FlavorView: FlavorView{base.NewLoggedInPage(a)},
		Toolbar: DetailsToolbar{
			Policy:        widget.NewDropdown(b, "Policy"),
			Download:      widget.NewButtonByTitle(b, "Download summary in PDF format"),
			Configuration: widget.NewDropdown(b, "Configuration"),
		},
		Sidebar: Sidebar{
			Properties:    widget.NewAccordion(b, "Properties"),
			Relationships: widget.NewAccordion(b, "Relationships"),
		},
		Properties:      widget.NewSummaryTable(b, "Properties"),
		Relationships:   widget.NewSummaryTable(b, "Relationships"),
		SmartManagement: widget.NewSummaryTable(b, "Smart Management"),
		flavor:          f,
	}
}

// IsDisplayed implements navigator.View
func (v DetailsView) IsDisplayed() bool {
	expected := v.flavor.Name + " (Summary)"
	if !v.InAvailabilityZones() || v.Title.TextOrEmpty() != expected {
		return false
	}
	if active, err := v.BreadCrumb.ActiveLocation(); err != nil || active != expected {
		return false
	}
	provider, err := v.Relationships.GetTextOf("Cloud Provider")
	return err == nil && provider == v.flavor.Provider.Name
}

// AddForm is the new flavor form
type AddForm struct {
	Provider   widget.Select
	Name       widget.Input
	RAM        widget.Input
	VCPUs      widget.Input
	Disk       widget.Input
	Swap       widget.Input
	RxTxFactor widget.Input
	Public     widget.Switch
	Add        widget.Button
	Cancel     widget.Button
}

// Fields returns the fillable part of the form
func (f AddForm) Fields() widget.Form {
	return widget.Form{
		{Name: "provider", Widget: f.Provider},
		{Name: "flavor_name", Widget: f.Name},
		{Name: "ram_size", Widget: f.RAM},
		{Name: "vcpus", Widget: f.VCPUs},
		{Name: "disk_size", Widget: f.Disk},
		{Name: "swap_size", Widget: f.Swap},
		{Name: "rxtx_factor", Widget: f.RxTxFactor},
		{Name: "public", Widget: f.Public},
	}
}

// AddView is the screen of the new flavor
type AddView struct {
	FlavorView
	Form AddForm
}

// NewAddView creates the new flavor view
func NewAddView(a *appliance.Appliance) AddView {
	b := a.Browser
	return AddView{
		FlavorView: FlavorView{base.NewLoggedInPage(a)},
		Form: AddForm{
			Provider:   widget.NewSelect(b, "ems_id"),
			Name:       widget.NewTextInput(b, "name"),
			RAM:        widget.NewTextInput(b, "ram"),
			VCPUs:      widget.NewTextInput(b, "vcpus"),
			Disk:       widget.NewTextInput(b, "disk"),
			Swap:       widget.NewTextInput(b, "swap"),
			RxTxFactor: widget.NewTextInput(b, "rxtx_factor"),
			Public:     widget.NewBootstrapSwitch(b, "is_public"),
			Add:        widget.NewButton(b, "Add"),
			Cancel:     widget.NewButton(b, "Cancel"),
		},
	}
}

// IsDisplayed implements navigator.View
func (v AddView) IsDisplayed() bool {
	const expected = "Add a new Flavor"
	if !v.InAvailabilityZones() || v.Title.TextOrEmpty() != expected {
		return false
	}
	active, err := v.BreadCrumb.ActiveLocation()
	return err == nil && active == expected
}
