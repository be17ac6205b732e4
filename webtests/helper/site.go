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

package helper

import (
	"fmt"
	"html"
	"strings"
	"testing"
	"time"

	"github.com/adobe/miq-pages/lib/browser"
	"github.com/adobe/miq-pages/lib/config"
	"github.com/adobe/miq-pages/lib/util"
	"github.com/adobe/miq-pages/lib/version"
)

// Fixture console identity
const (
	ApplianceURL = "https://miq.example.com"
	Username     = "admin"
	Password     = "smartvm"
	FullName     = "Administrator"
)

// ConsoleConfig returns config pointing to the fixture console of the version, with
// short navigation timeouts
func ConsoleConfig(ver string) *config.Config {
	cfg := config.Default()
	cfg.Appliance.URL = ApplianceURL
	cfg.Appliance.Version = ver
	cfg.Appliance.Username = Username
	cfg.Appliance.Password = Password
	cfg.Appliance.FullName = FullName
	cfg.Navigation.Retries = 1
	cfg.Navigation.ViewTimeout = util.Duration(50 * time.Millisecond)
	cfg.Navigation.RetryDelay = util.Duration(time.Millisecond)
	return cfg
}

// NewConsoleBrowser returns the static driver serving the fixture console
func NewConsoleBrowser(tb testing.TB, ver string) *browser.Static {
	tb.Helper()
	if _, err := version.Parse(ver); err != nil {
		tb.Fatalf("ERROR: Bad fixture version %q: %v", ver, err)
	}
	return browser.NewStatic(ApplianceURL, ConsoleSite(ver))
}

type menuItem struct {
	name string
	href string
	sub  []menuItem
}

var consoleMenu = []menuItem{
	{name: "Cloud Intel", href: "/dashboard/show"},
	{name: "Services", href: "#", sub: []menuItem{
		{name: "My Services", href: "/service/explorer"},
		{name: "Catalogs", href: "/catalog/explorer"},
		{name: "Requests", href: "/miq_request/show_list"},
	}},
	{name: "Compute", href: "#", sub: []menuItem{
		{name: "Clouds", href: "#", sub: []menuItem{
			{name: "Providers", href: "/ems_cloud/show_list"},
			{name: "Flavors", href: "/flavor/show_list"},
		}},
	}},
	{name: "Automation", href: "#", sub: []menuItem{
		{name: "Automate", href: "#", sub: []menuItem{
			{name: "Generic Objects", href: "/generic_object_definition/show_list"},
		}},
	}},
}

func renderMenu(b *strings.Builder, items []menuItem, active []string) {
	b.WriteString(`<ul class="list-group">`)
	for _, it := range items {
		isActive := len(active) > 0 && active[0] == it.name
		class := "list-group-item"
		if isActive {
			class += " active"
		}
		fmt.Fprintf(b, `<li class="%s"><a href="%s"><span class="list-group-item-value">%s</span></a>`, class, it.href, it.name)
		if len(it.sub) > 0 {
			var rest []string
			if isActive {
				rest = active[1:]
			}
			b.WriteString(`<div class="nav-pf-secondary-nav">`)
			renderMenu(b, it.sub, rest)
			b.WriteString(`</div>`)
		}
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul>`)
}

type flash struct {
	class string
	text  string
}

type item struct {
	text     string
	href     string
	confirm  string
	disabled bool
}

func dropdown(name string, items ...item) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="btn-group dropdown"><button type="button" class="btn btn-default dropdown-toggle" title="%s">%s <span class="caret"></span></button><ul class="dropdown-menu">`, name, name)
	for _, it := range items {
		class := ""
		if it.disabled {
			class = ` class="disabled"`
		}
		confirm := ""
		if it.confirm != "" {
			confirm = fmt.Sprintf(` data-confirm="%s"`, html.EscapeString(it.confirm))
		}
		fmt.Fprintf(&b, `<li%s><a href="%s"%s>%s</a></li>`, class, it.href, confirm, html.EscapeString(it.text))
	}
	b.WriteString(`</ul></div>`)
	return b.String()
}

func viewSelector() string {
	return `<div class="toolbar-pf-view-selector"><ul class="list-inline">` +
		`<li><button class="btn btn-link" title="Grid View"><i class="fa fa-th"></i></button></li>` +
		`<li><button class="btn btn-link" title="Tile View"><i class="fa fa-th-large"></i></button></li>` +
		`<li class="active"><button class="btn btn-link" title="List View"><i class="fa fa-th-list"></i></button></li>` +
		`</ul></div>`
}

type row struct {
	href  string
	cells []string
}

func gtl(headers []string, rows ...row) string {
	var b strings.Builder
	b.WriteString(`<div id="gtl_div"><table class="table table-striped"><thead><tr><th></th>`)
	for _, h := range headers {
		fmt.Fprintf(&b, `<th>%s</th>`, h)
	}
	b.WriteString(`</tr></thead><tbody>`)
	for i, r := range rows {
		fmt.Fprintf(&b, `<tr data-href="%s"><td><input type="checkbox" name="check_%d"/></td>`, r.href, i+1)
		for _, c := range r.cells {
			fmt.Fprintf(&b, `<td>%s</td>`, html.EscapeString(c))
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table></div>`)
	return b.String()
}

func paginator(first, next string) string {
	control := func(class, label, href string) string {
		if href == "" {
			return fmt.Sprintf(`<li class="%s disabled"><span>%s</span></li>`, class, label)
		}
		return fmt.Sprintf(`<li class="%s"><a href="%s">%s</a></li>`, class, href, label)
	}
	return `<div id="paging_div"><ul class="pagination">` + control("first", "First", first) + control("next", "Next", next) + `</ul></div>`
}

type field struct {
	name  string
	value string // raw html
	href  string
}

func summary(title string, fields ...field) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<table class="table table-bordered table-summary-screen"><thead><tr><th colspan="2">%s</th></tr></thead><tbody>`, title)
	for _, f := range fields {
		if f.href != "" {
			fmt.Fprintf(&b, `<tr data-href="%s"><td class="label">%s</td><td>%s</td></tr>`, f.href, f.name, f.value)
		} else {
			fmt.Fprintf(&b, `<tr><td class="label">%s</td><td>%s</td></tr>`, f.name, f.value)
		}
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

type treeNode struct {
	text     string
	level    int
	expand   string // down, right or empty for leaves
	selected bool
	href     string
}

func accordion(name string, opened, dimmed bool, nodes ...treeNode) string {
	var b strings.Builder
	panelClass := "panel panel-default"
	if dimmed {
		panelClass += " panel-dimmed"
	}
	collapse := "panel-collapse collapse"
	if opened {
		collapse += " in"
	}
	fmt.Fprintf(&b, `<div class="%s"><div class="panel-heading"><h4 class="panel-title"><a href="#">%s</a></h4></div><div class="%s"><div class="panel-body"><div class="treeview"><ul class="list-group">`,
		panelClass, name, collapse)
	for _, n := range nodes {
		class := "list-group-item"
		if n.selected {
			class += " node-selected"
		}
		href := ""
		if n.href != "" {
			href = fmt.Sprintf(` data-href="%s"`, n.href)
		}
		fmt.Fprintf(&b, `<li class="%s"%s>`, class, href)
		b.WriteString(strings.Repeat(`<span class="indent"></span>`, n.level))
		if n.expand != "" {
			fmt.Fprintf(&b, `<span class="icon expand-icon fa fa-angle-%s"></span>`, n.expand)
		}
		fmt.Fprintf(&b, `%s</li>`, html.EscapeString(n.text))
	}
	b.WriteString(`</ul></div></div></div></div>`)
	return b.String()
}

type page struct {
	menu     []string
	crumbs   []string
	title    string
	flash    []flash
	toolbar  string
	body     string
	explorer string // Accordions of the sidebar, explorer screens only
}

func (p page) render() string {
	var b strings.Builder
	b.WriteString(`<html><head><title>ManageIQ</title></head><body>`)
	fmt.Fprintf(&b, `<nav class="navbar navbar-pf-vertical"><ul class="nav navbar-nav navbar-right navbar-iconic">`+
		`<li class="dropdown"><a class="dropdown-toggle nav-item-iconic" href="#"><span class="pficon pficon-user"></span>%s</a>`+
		`<ul class="dropdown-menu"><li><a href="/">Logout</a></li></ul></li></ul></nav>`, FullName)
	b.WriteString(`<nav id="main-menu" class="nav-pf-vertical">`)
	renderMenu(&b, consoleMenu, p.menu)
	b.WriteString(`</nav>`)
	if p.explorer != "" {
		fmt.Fprintf(&b, `<div id="left_div"><div id="accordion" class="panel-group">%s</div></div>`, p.explorer)
	}
	b.WriteString(`<div id="flash_msg_div">`)
	for _, f := range p.flash {
		fmt.Fprintf(&b, `<div class="alert %s"><span class="pficon"></span><strong>%s</strong></div>`, f.class, html.EscapeString(f.text))
	}
	b.WriteString(`</div><div id="main-content">`)
	if len(p.crumbs) > 0 {
		b.WriteString(`<ol class="breadcrumb">`)
		for i, c := range p.crumbs {
			if i == len(p.crumbs)-1 {
				fmt.Fprintf(&b, `<li class="active">%s</li>`, html.EscapeString(c))
			} else {
				fmt.Fprintf(&b, `<li>%s</li>`, html.EscapeString(c))
			}
		}
		b.WriteString(`</ol>`)
	}
	if p.explorer != "" {
		fmt.Fprintf(&b, `<h1 id="explorer_title_text">%s</h1>`, html.EscapeString(p.title))
	} else {
		fmt.Fprintf(&b, `<h1>%s</h1>`, html.EscapeString(p.title))
	}
	fmt.Fprintf(&b, `<div class="toolbar-pf-actions">%s</div>%s</div></body></html>`, p.toolbar, p.body)
	return b.String()
}

const loginPage = `<html><head><title>ManageIQ: Login</title></head><body><div id="login_div"><form>
<div id="flash_msg_div"></div>
<input type="text" id="user_name" name="user_name" value=""/>
<input type="password" id="user_password" name="user_password" value=""/>
<button type="submit" id="login" class="btn btn-primary" data-href="/dashboard/show">Log In</button>
</form></div></body></html>`

func input(id, typ string) string {
	return fmt.Sprintf(`<div class="form-group"><input type="%s" id="%s" name="%s" value=""/></div>`, typ, id, id)
}

func bootstrapSelect(id string, options ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="btn-group bootstrap-select"><button class="btn dropdown-toggle" title="%s"></button><select id="%s" name="%s" style="display: none">`, html.EscapeString(options[0]), id, id)
	for _, o := range options {
		fmt.Fprintf(&b, `<option>%s</option>`, html.EscapeString(o))
	}
	b.WriteString(`</select></div>`)
	return b.String()
}

func dialogDropDown(key string, options ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div input-id="%s"><div class="form-group"><select>`, key)
	for _, o := range options {
		fmt.Fprintf(&b, `<option>%s</option>`, html.EscapeString(o))
	}
	b.WriteString(`</select></div></div>`)
	return b.String()
}

// ConsoleSite returns the fixture pages (path -> html) of the console of the version.
// The flows are fixed: every form submit leads to the same result page.
func ConsoleSite(ver string) map[string]string {
	v := version.MustParse(ver)
	legacy := v.LessThan("5.9")

	site := map[string]string{"/": loginPage}
	add := func(path string, p page) { site[path] = p.render() }

	add("/dashboard/show", page{menu: []string{"Cloud Intel"}, title: "Dashboard"})

	// Cloud providers
	providers := []struct{ id, name, kind string }{{"1", "ost", "OpenStack"}, {"2", "ec2", "Amazon"}}
	add("/ems_cloud/show_list", page{
		menu:    []string{"Compute", "Clouds", "Providers"},
		title:   "Cloud Providers",
		toolbar: dropdown("Configuration", item{text: "Add a New Cloud Provider", href: "#"}) + viewSelector(),
		body: gtl([]string{"Name", "Type"},
			row{"/ems_cloud/1", []string{"ost", "OpenStack"}},
			row{"/ems_cloud/2", []string{"ec2", "Amazon"}}) + paginator("", ""),
	})
	for _, p := range providers {
		details := func(fl []flash) page {
			return page{
				menu:   []string{"Compute", "Clouds", "Providers"},
				crumbs: []string{"Cloud Providers", p.name + " (Summary)"},
				title:  p.name + " (Summary)",
				flash:  fl,
				toolbar: dropdown("Configuration",
					item{text: "Refresh Relationships and Power States", href: "/ems_cloud/" + p.id + "?refreshed",
						confirm: "Refresh relationships and power states for all items related to this Cloud Provider?"},
					item{text: "Remove this Cloud Provider", href: "#", disabled: true}),
				body: summary("Properties", field{name: "Type", value: p.kind}) +
					summary("Relationships",
						field{name: "Flavors", value: "2", href: "/ems_cloud/" + p.id + "/flavors"},
						field{name: "Instances", value: "5"}),
			}
		}
		add("/ems_cloud/"+p.id, details(nil))
		add("/ems_cloud/"+p.id+"?refreshed", details([]flash{{"alert-success",
			fmt.Sprintf("Refresh Provider initiated for 1 Cloud Provider (%s) from the CFME Database", p.name)}}))
	}
	add("/ems_cloud/1/flavors", page{
		menu:    []string{"Compute", "Clouds", "Providers"},
		title:   "ost (All Flavors)",
		toolbar: dropdown("Policy", item{text: "Edit Tags", href: "#"}) + dropdown("Download", item{text: "Download as CSV", href: "#"}) + viewSelector(),
		body: gtl([]string{"Name", "Cloud Provider"},
			row{"/flavor/1", []string{"m1.tiny", "ost"}},
			row{"/flavor/2", []string{"m1.small", "ost"}}) + paginator("", ""),
	})

	// Flavors
	flavorToolbar := dropdown("Policy", item{text: "Edit Tags", href: "#"}) +
		dropdown("Download", item{text: "Download as CSV", href: "#"}) +
		dropdown("Configuration", item{text: "Add a new Flavor", href: "/flavor/new"},
			item{text: "Remove selected Flavors", href: "#", disabled: true}) +
		viewSelector()
	flavorHeaders := []string{"Name", "Cloud Provider", "CPUs", "Memory"}
	flavorList := func(fl []flash) page {
		return page{
			menu:    []string{"Compute", "Clouds", "Flavors"},
			title:   "Flavors",
			flash:   fl,
			toolbar: flavorToolbar,
			body: `<div id="searchbox"><input id="search_text" type="text" value=""/><button id="searchbtn" class="btn">Search</button></div>` +
				gtl(flavorHeaders,
					row{"/flavor/1", []string{"m1.tiny", "ost", "1", "512 MB"}},
					row{"/flavor/2", []string{"m1.small", "ost", "1", "2 GB"}}) +
				paginator("", "/flavor/show_list?page=2"),
		}
	}
	add("/flavor/show_list", flavorList(nil))
	add("/flavor/show_list?added", flavorList([]flash{{"alert-success", `Add of Flavor "m1.custom" was successfully initialized.`}}))
	add("/flavor/show_list?cancelled", flavorList([]flash{{"alert-success", "Add of new Flavor was cancelled by the user"}}))
	add("/flavor/show_list?deleted", flavorList([]flash{{"alert-success", `Delete of Flavor was successfully initiated.`}}))
	add("/flavor/show_list?delete_failed", flavorList([]flash{{"alert-danger", `Flavor "m1.large": Delete failed: flavor is in use`}}))
	add("/flavor/show_list?page=2", page{
		menu:    []string{"Compute", "Clouds", "Flavors"},
		title:   "Flavors",
		toolbar: flavorToolbar,
		body: gtl(flavorHeaders, row{"/flavor/3", []string{"m1.large", "ec2", "2", "8 GB"}}) +
			paginator("/flavor/show_list", ""),
	})
	add("/flavor/new", page{
		menu:   []string{"Compute", "Clouds", "Flavors"},
		crumbs: []string{"Compute", "Clouds", "Flavors", "Add a new Flavor"},
		title:  "Add a new Flavor",
		body: `<form id="flavor_form">` +
			`<select name="ems_id"><option>&lt;Choose&gt;</option><option>ost</option><option>ec2</option></select>` +
			`<input type="text" name="name" value=""/><input type="text" name="ram" value=""/>` +
			`<input type="text" name="vcpus" value=""/><input type="text" name="disk" value=""/>` +
			`<input type="text" name="swap" value=""/><input type="text" name="rxtx_factor" value=""/>` +
			`<div class="bootstrap-switch"><div class="bootstrap-switch-container"><input type="checkbox" name="is_public" checked="checked"/></div></div>` +
			`<button type="submit" class="btn btn-primary" data-href="/flavor/show_list?added">Add</button>` +
			`<button class="btn btn-default" data-href="/flavor/show_list?cancelled">Cancel</button></form>`,
	})
	flavors := []struct{ id, name, provider, instances, removed string }{
		{"1", "m1.tiny", "ost", "3", "deleted"},
		{"2", "m1.small", "ost", "0", "deleted"},
		{"3", "m1.large", "ec2", "1", "delete_failed"},
	}
	flavorTags := map[string]string{
		"1": `<ul class="tags"><li><i class="fa fa-tag"></i> Environment: Production</li></ul>`,
	}
	for _, f := range flavors {
		title := f.name + " (Summary)"
		self := "/flavor/" + f.id
		tags := flavorTags[f.id]
		if tags == "" {
			tags = "No My Company Tags have been assigned"
		}
		details := func(fl []flash) page {
			return page{
				menu:   []string{"Compute", "Clouds", "Flavors"},
				crumbs: []string{"Compute", "Clouds", "Flavors", title},
				title:  title,
				flash:  fl,
				toolbar: dropdown("Policy", item{text: "Edit Tags", href: self + "/tags"}) +
					`<button class="btn btn-default" title="Download summary in PDF format"><i class="fa fa-file-pdf-o"></i></button>` +
					dropdown("Configuration", item{text: "Remove Flavor", href: "/flavor/show_list?" + f.removed,
						confirm: "Warning: The selected Flavor will be permanently removed!"}),
				explorer: accordion("Properties", true, false, treeNode{text: "Summary", selected: true}) +
					accordion("Relationships", false, false),
				body: summary("Properties", field{name: "Name", value: f.name}, field{name: "Memory", value: "512 MB"}) +
					summary("Relationships", field{name: "Cloud Provider", value: f.provider},
						field{name: "Instances", value: f.instances}) +
					summary("Smart Management", field{name: "My Company Tags", value: tags}),
			}
		}
		add(self, details(nil))
		add(self+"?tags_saved", details([]flash{{"alert-success", "Tag edits were successfully saved"}}))
		add(self+"?tags_cancelled", details([]flash{{"alert-success", "Tag Edit was cancelled by the user"}}))
		flavorMenu := []string{"Compute", "Clouds", "Flavors"}
		add(self+"/tags", tagPage(flavorMenu, self, self+"/tags", nil))
		add(self+"/tags?reset", tagPage(flavorMenu, self, self+"/tags", []flash{{"alert-warning", "All changes have been reset"}}))
	}

	// Generic objects
	add("/generic_object_definition/show_list", page{
		menu:    []string{"Automation", "Automate", "Generic Objects"},
		title:   "Generic Object Classes",
		toolbar: dropdown("Configuration", item{text: "Add a new Generic Object Class", href: "#"}) + viewSelector(),
		body: gtl([]string{"Name", "Description", "Instances"},
			row{"/generic_object_definition/1", []string{"LoadBalancer", "Load balancers", "2"}},
			row{"/generic_object_definition/2", []string{"Database", "Databases", "0"}}) + paginator("", ""),
	})
	definitions := []struct{ id, name, instances, href string }{
		{"1", "LoadBalancer", "2", "/generic_object_definition/1/instances"},
		{"2", "Database", "0", ""},
	}
	for _, d := range definitions {
		add("/generic_object_definition/"+d.id, page{
			menu:    []string{"Automation", "Automate", "Generic Objects"},
			crumbs:  []string{"Generic Object Classes", d.name + " (Summary)"},
			title:   d.name + " (Summary)",
			toolbar: dropdown("Configuration", item{text: "Edit this Generic Object Class", href: "#"}),
			body: summary("Properties", field{name: "Name", value: d.name}) +
				summary("Relationships", field{name: "Instances", value: d.instances, href: d.href}),
		})
	}
	instancesToolbar := dropdown("Policy", item{text: "Edit Tags", href: "/generic_object/tags"}) +
		dropdown("Download", item{text: "Download as CSV", href: "#"}) + viewSelector()
	instances := func(fl []flash) page {
		return page{
			menu:    []string{"Automation", "Automate", "Generic Objects"},
			title:   "LoadBalancer (All Generic Objects)",
			flash:   fl,
			toolbar: instancesToolbar,
			body: gtl([]string{"Name", "Created"},
				row{"/generic_object/1", []string{"lb-east", "2018-01-12"}},
				row{"/generic_object/2", []string{"lb-west", "2018-01-13"}}) + paginator("", ""),
		}
	}
	add("/generic_object_definition/1/instances", instances(nil))
	add("/generic_object_definition/1/instances?tags_saved", instances([]flash{{"alert-success", "Tag edits were successfully saved"}}))
	add("/generic_object_definition/1/instances?tags_cancelled", instances([]flash{{"alert-success", "Tag Edit was cancelled by the user"}}))
	goTags := map[string]string{
		"1": `<ul class="tags"><li><i class="fa fa-tag"></i> Department: Engineering</li><li><i class="fa fa-tag"></i> Environment: Production</li></ul>`,
		"2": "No My Company Tags have been assigned",
	}
	for id, name := range map[string]string{"1": "lb-east", "2": "lb-west"} {
		add("/generic_object/"+id, page{
			menu:    []string{"Automation", "Automate", "Generic Objects"},
			title:   name + " (Summary)",
			toolbar: dropdown("Policy", item{text: "Edit Tags", href: "/generic_object/tags"}) + viewSelector(),
			body: summary("Properties", field{name: "Name", value: name}) +
				summary("Smart Management", field{name: "My Company Tags", value: goTags[id]}),
		})
	}
	goMenu := []string{"Automation", "Automate", "Generic Objects"}
	add("/generic_object/tags", tagPage(goMenu, "/generic_object_definition/1/instances", "/generic_object/tags", nil))
	add("/generic_object/tags?reset", tagPage(goMenu, "/generic_object_definition/1/instances", "/generic_object/tags",
		[]flash{{"alert-warning", "All changes have been reset"}}))

	// My services
	servicesAccordion := accordion("Services", true, false,
		treeNode{text: "Active Services", expand: "down", selected: true},
		treeNode{text: "svc-lb", level: 1, href: "/service/1"},
		treeNode{text: `web "prod"`, level: 1, href: "/service/2"})
	add("/service/explorer", page{
		menu:     []string{"Services", "My Services"},
		title:    "Active Services",
		toolbar:  dropdown("Configuration", item{text: "Edit selected Service", href: "#"}) + viewSelector(),
		explorer: servicesAccordion,
		body: gtl([]string{"Name", "Retirement Date"},
			row{"/service/1", []string{"svc-lb", "Never"}},
			row{"/service/2", []string{`web "prod"`, "Never"}}) + paginator("", ""),
	})
	add("/service/1", page{
		menu:     []string{"Services", "My Services"},
		title:    `Service "svc-lb"`,
		toolbar:  dropdown("Configuration", item{text: "Edit this Service", href: "#"}),
		explorer: servicesAccordion,
		body: summary("Properties", field{name: "Name", value: "svc-lb"}) +
			summary("Generic Objects", field{name: "Instances", value: "2", href: "/service/1/generic_objects"}),
	})
	add("/service/2", page{
		menu:     []string{"Services", "My Services"},
		title:    `Service "web "prod""`,
		toolbar:  dropdown("Configuration", item{text: "Edit this Service", href: "#"}),
		explorer: servicesAccordion,
		body: summary("Properties", field{name: "Name", value: `web "prod"`}) +
			summary("Generic Objects", field{name: "Instances", value: "0"}),
	})
	add("/service/1/generic_objects", page{
		menu:     []string{"Services", "My Services"},
		title:    "svc-lb (All Generic Objects)",
		explorer: servicesAccordion,
		body: gtl([]string{"Name", "Created"},
			row{"/service/1/generic_object/1", []string{"lb-east", "2018-01-12"}},
			row{"/service/1/generic_object/2", []string{"lb-west", "2018-01-13"}}) + paginator("", ""),
	})
	for id, name := range map[string]string{"1": "lb-east", "2": "lb-west"} {
		base := "/service/1/generic_object/" + id
		detail := func(fl []flash) page {
			return page{
				menu:  []string{"Services", "My Services"},
				title: name,
				flash: fl,
				toolbar: `<button class="btn btn-default" title="Refresh this page"><i class="fa fa-refresh"></i></button>` +
					dropdown("Operations", item{text: "Scale Out", href: base + "?custom"}) +
					fmt.Sprintf(`<button id="custom__custom_%s" class="btn btn-default" data-href="%s?custom">Restart</button>`, id, base),
				explorer: servicesAccordion,
				body:     summary("Properties", field{name: "Name", value: name}),
			}
		}
		add(base, detail(nil))
		add(base+"?custom", detail([]flash{{"alert-success", "Custom button was executed"}}))
	}

	// Service catalogs
	catalogTree := func(selected string) []treeNode {
		return []treeNode{
			{text: "All Services", expand: "down", selected: selected == ""},
			{text: "Cloud", level: 1, expand: "right"},
			{text: "Azure", level: 1, expand: "down"},
			{text: "azure-vm", level: 2, href: "/catalog/item/1", selected: selected == "azure-vm"},
			{text: "ansible-db", level: 2, href: "/catalog/item/2", selected: selected == "ansible-db"},
		}
	}
	catalogPage := func(title, selected, body string) page {
		return page{
			menu:  []string{"Services", "Catalogs"},
			title: title,
			toolbar: dropdown("Configuration", item{text: "Add a New Catalog", href: "#"},
				item{text: "Remove Catalogs", href: "#", disabled: true}),
			explorer: accordion("Service Catalogs", true, false, catalogTree(selected)...) +
				accordion("Catalog Items", false, false) +
				accordion("Orchestration Templates", false, false),
			body: body,
		}
	}
	add("/catalog/explorer", catalogPage("All Services", "", gtl([]string{"Name", "Catalog"},
		row{"/catalog/item/1", []string{"azure-vm", "Azure"}},
		row{"/catalog/item/2", []string{"ansible-db", "Azure"}})))
	dialogTitle := "h2"
	if legacy {
		dialogTitle = "h3"
	}
	items := []struct{ id, name, fields string }{
		{"1", "azure-vm", azureDialog(legacy)},
		{"2", "ansible-db", ansibleDialog(legacy)},
	}
	for _, it := range items {
		add("/catalog/item/"+it.id, catalogPage(fmt.Sprintf("Service %q", it.name), it.name,
			fmt.Sprintf(`<button class="btn btn-primary" data-href="/catalog/item/%s/order">Order</button>`, it.id)))
		add("/catalog/item/"+it.id+"/order", catalogPage(fmt.Sprintf("Order Service %q", it.name), it.name,
			fmt.Sprintf(`<div id="main_div"><%s>%s dialog</%s><form>%s`+
				`<button class="btn btn-primary" data-href="/miq_request/show_list?ordered">Submit</button>`+
				`<button class="btn btn-default" data-href="/catalog/item/%s">Cancel</button></form></div>`,
				dialogTitle, it.name, dialogTitle, it.fields, it.id)))
	}

	// Requests
	orderedClass := "alert-info"
	if legacy {
		orderedClass = "alert-success"
	}
	requests := func(fl []flash) page {
		return page{
			menu:  []string{"Services", "Requests"},
			title: "Requests",
			flash: fl,
			body:  gtl([]string{"Status", "Request ID", "Description"}, row{"#", []string{"Ok", "1", "Provisioning Service [azure-vm]"}}),
		}
	}
	add("/miq_request/show_list", requests(nil))
	add("/miq_request/show_list?ordered", requests([]flash{{orderedClass, "Order Request was Submitted"}}))

	return site
}

// tagPage is the tag assignment screen, save and cancel return to back, reset reloads self
func tagPage(menu []string, back, self string, fl []flash) page {
	return page{
		menu:  menu,
		title: "Tag Assignment",
		flash: fl,
		body: `<form id="tagging">` +
			bootstrapSelect("tag_cat", "<Choose>", "Department", "Environment") +
			bootstrapSelect("tag_add", "<Choose>", "Engineering", "Finance", "Production") +
			`<div id="assignments_div"><table class="table"><thead><tr><th></th><th>Category</th><th>Assigned Value</th></tr></thead><tbody>` +
			`<tr><td><i class="fa fa-trash" title="Click to remove this assignment"></i></td><td>Department</td><td>Engineering</td></tr>` +
			`<tr><td><i class="fa fa-trash" title="Click to remove this assignment"></i></td><td>Environment</td><td>Production</td></tr>` +
			`</tbody></table></div>` +
			`<button class="btn btn-primary" data-href="` + back + `?tags_saved">Save</button>` +
			`<button class="btn btn-default" data-href="` + self + `?reset">Reset</button>` +
			`<button class="btn btn-default" data-href="` + back + `?tags_cancelled">Cancel</button></form>`,
	}
}

func azureDialog(legacy bool) string {
	if legacy {
		// Azure orchestration form of 5.8 is addressed by names
		return input("stack_name", "text") +
			bootstrapSelect("resource_group", "<New resource group>", "miq-rg", "qe-rg") +
			bootstrapSelect("deploy_mode", "Complete", "Incremental") +
			input("param_virtualMachineName", "text") +
			input("param_adminUserName", "text") +
			input("param_adminPassword__protected", "password") +
			bootstrapSelect("param_userImageName", "<Choose>", "rhel7.vhd", "win2012.vhd") +
			bootstrapSelect("param_operatingSystemType", "Linux", "Windows") +
			bootstrapSelect("param_virtualMachineSize", "Basic_A0", "Standard_A1")
	}
	return input("stack_name", "text") +
		dialogDropDown("resource_group", "<New resource group>", "miq-rg", "qe-rg") +
		dialogDropDown("deploy_mode", "Complete", "Incremental") +
		input("vm_name", "text") +
		dialogDropDown("vm_size", "Basic_A0", "Standard_A1")
}

func ansibleDialog(legacy bool) string {
	out := input("service_name", "text") + input("param_db_name", "text") + input("param_db_user", "text")
	if legacy {
		return out + bootstrapSelect("credential", "<Default>", "machine-cred")
	}
	return out + dialogDropDown("credential", "<Default>", "machine-cred")
}
