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

package catalogs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/adobe/miq-pages/lib/appliance"
	"github.com/adobe/miq-pages/lib/base"
	"github.com/adobe/miq-pages/lib/browser"
	"github.com/adobe/miq-pages/lib/services/catalogs"
	"github.com/adobe/miq-pages/lib/services/requests"
	"github.com/adobe/miq-pages/lib/widget"
	"github.com/adobe/miq-pages/webtests/helper"
)

func newConsole(t *testing.T, ver string) (*appliance.Appliance, *browser.Static) {
	t.Helper()
	b := helper.NewConsoleBrowser(t, ver)
	a, err := appliance.New(helper.ConsoleConfig(ver), b, nil)
	if err != nil {
		t.Fatalf("appliance.New() error = %v", err)
	}
	if err := errors.Join(base.RegisterSteps(a.Nav), requests.RegisterSteps(a.Nav), catalogs.RegisterSteps(a.Nav)); err != nil {
		t.Fatalf("RegisterSteps() error = %v", err)
	}
	return a, b
}

func value(t *testing.T, b *browser.Static, loc string) string {
	t.Helper()
	v, err := b.Value(loc)
	if err != nil {
		t.Fatalf("Value(%s) error = %v", loc, err)
	}
	return v
}

func Test_default_view(t *testing.T) {
	a, _ := newConsole(t, "5.9")
	view, err := a.NavigateTo(context.Background(), a.Server(), "ServiceCatalogsDefault")
	if err != nil {
		t.Fatalf("NavigateTo(ServiceCatalogsDefault) error = %v", err)
	}
	if !view.(catalogs.ServiceCatalogsDefaultView).ServiceCatalogs.IsOpened() {
		t.Fatalf("Service Catalogs accordion is not opened")
	}
}

func Test_order_dialog_dropdown(t *testing.T) {
	a, b := newConsole(t, "5.9")
	item := catalogs.NewItem(a, "Azure", "azure-vm")
	item.StackData = map[string]any{"stack_name": "stack-1", "resource_group": "miq-rg"}
	item.DialogValues = map[string]any{"vm_name": "vm-1", "vm_size": "Standard_A1", "ignored.nested": "x", "absent": nil}

	if err := item.Order(context.Background()); err != nil {
		t.Fatalf("Order() error = %v", err)
	}
	if !requests.NewRequestsView(a).IsDisplayed() {
		t.Fatalf("Requests are not displayed after the order")
	}

	if u := b.URL(); u != helper.ApplianceURL+"/miq_request/show_list?ordered" {
		t.Fatalf("URL() after order = %q", u)
	}
}

func Test_order_fills_fields(t *testing.T) {
	a, b := newConsole(t, "5.9")
	item := catalogs.NewItem(a, "Azure", "azure-vm")
	view, err := a.NavigateTo(context.Background(), item, "Order")
	if err != nil {
		t.Fatalf("NavigateTo(Order) error = %v", err)
	}
	form := view.(catalogs.OrderServiceCatalogView)
	if title := form.DialogTitle.TextOrEmpty(); title != "azure-vm dialog" {
		t.Fatalf("DialogTitle = %q", title)
	}

	changed, err := form.Fill(map[string]any{"stack_name": "stack-1", "resource_group": "qe-rg", "vm_size": "Basic_A0"})
	if err != nil || !changed {
		t.Fatalf("Fill() = %v, %v", changed, err)
	}
	if v := value(t, b, "//input[@id='stack_name']"); v != "stack-1" {
		t.Fatalf("stack_name = %q", v)
	}
	if v, err := form.Field("resource_group").Read(); err != nil || v != "qe-rg" {
		t.Fatalf("resource_group = %v, %v", v, err)
	}

	if _, err := form.Fill(map[string]any{"unknown": "x"}); !errors.Is(err, browser.ErrNoSuchElement) {
		t.Fatalf("Fill() of unknown field error = %v", err)
	}
}

func Test_order_azure_legacy(t *testing.T) {
	a, _ := newConsole(t, "5.8")
	item := catalogs.NewItem(a, "Azure", "azure-vm")
	item.StackData = map[string]any{
		"stack_name":     "stack-1",
		"resource_group": "miq-rg",
		"mode":           "Incremental",
		"vm_name":        "vm-1",
		"vm_user":        "admin",
		"vm_password":    "secret",
		"user_image":     "rhel7.vhd",
		"os_type":        "Linux",
		"vm_size":        "Standard_A1",
		"extra_param":    "dropped",
	}
	if err := item.Order(context.Background()); err != nil {
		t.Fatalf("Order() error = %v", err)
	}
	if msgs, err := requests.NewRequestsView(a).Flash.Messages(); err != nil || len(msgs) != 1 || msgs[0].Type != widget.FlashSuccess {
		t.Fatalf("Flash.Messages() = %v, %v", msgs, err)
	}
}

func Test_order_azure_legacy_form(t *testing.T) {
	a, b := newConsole(t, "5.8")
	item := catalogs.NewItem(a, "Azure", "azure-vm")
	if _, err := a.NavigateTo(context.Background(), item, "Order"); err != nil {
		t.Fatalf("NavigateTo(Order) error = %v", err)
	}
	form := catalogs.NewAzureOrderForm(a)
	if _, err := form.Fill(map[string]any{"vm_user": "admin", "user_image": "win2012.vhd", "bogus": 1}); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if v := value(t, b, "//input[@name='param_adminUserName']"); v != "admin" {
		t.Fatalf("param_adminUserName = %q", v)
	}
	if v := value(t, b, "//select[@id='param_userImageName']"); v != "win2012.vhd" {
		t.Fatalf("param_userImageName = %q", v)
	}
}

func Test_order_ansible(t *testing.T) {
	for _, ver := range []string{"5.8", "5.9"} {
		t.Run(ver, func(t *testing.T) {
			a, b := newConsole(t, ver)
			item := catalogs.NewItem(a, "Azure", "ansible-db")
			item.DialogValues = map[string]any{"service_name": "db-1"}
			item.AnsibleDialogValues = map[string]any{"db_name": "orders", "db_user": "app", "credential": "machine-cred"}

			// Keep the form to check the values before the submit
			view, err := a.NavigateTo(context.Background(), item, "Order")
			if err != nil {
				t.Fatalf("NavigateTo(Order) error = %v", err)
			}
			form := view.(catalogs.OrderServiceCatalogView)
			if _, err := form.Fill(item.AnsibleDialogValues); err != nil {
				t.Fatalf("Fill() error = %v", err)
			}
			if v := value(t, b, "//input[@id='param_db_name']"); v != "orders" {
				t.Fatalf("param_db_name = %q", v)
			}
			if v, err := form.Field("credential").Read(); err != nil || v != "machine-cred" {
				t.Fatalf("credential = %v, %v", v, err)
			}

			if err := item.Order(context.Background()); err != nil {
				t.Fatalf("Order() error = %v", err)
			}
			want := widget.FlashInfo
			if ver == "5.8" {
				want = widget.FlashSuccess
			}
			msgs, err := requests.NewRequestsView(a).Flash.Messages()
			if err != nil || len(msgs) != 1 || msgs[0].Type != want || msgs[0].Text != requests.MsgOrderSubmitted {
				t.Fatalf("Flash.Messages() = %v, %v", msgs, err)
			}
		})
	}
}

func Test_item_not_found(t *testing.T) {
	a, _ := newConsole(t, "5.9")
	_, err := a.NavigateTo(context.Background(), catalogs.NewItem(a, "Cloud", "aws-vm"), "Details")
	if !errors.Is(err, browser.ErrNoSuchElement) {
		t.Fatalf("NavigateTo(Details) error = %v", err)
	}
}
