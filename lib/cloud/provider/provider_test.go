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

package provider_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/adobe/miq-pages/lib/appliance"
	"github.com/adobe/miq-pages/lib/base"
	"github.com/adobe/miq-pages/lib/browser"
	"github.com/adobe/miq-pages/lib/cloud/provider"
	"github.com/adobe/miq-pages/webtests/helper"
)

func newCollection(t *testing.T) (*provider.Collection, *browser.Static) {
	t.Helper()
	b := helper.NewConsoleBrowser(t, "5.9")
	a, err := appliance.New(helper.ConsoleConfig("5.9"), b, nil)
	if err != nil {
		t.Fatalf("appliance.New() error = %v", err)
	}
	if err := errors.Join(base.RegisterSteps(a.Nav), provider.RegisterSteps(a.Nav)); err != nil {
		t.Fatalf("RegisterSteps() error = %v", err)
	}
	return provider.NewCollection(a), b
}

func Test_all(t *testing.T) {
	c, _ := newCollection(t)
	names, err := c.All(context.Background())
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if !reflect.DeepEqual(names, []string{"ost", "ec2"}) {
		t.Fatalf("All() = %v", names)
	}
}

func Test_flavors(t *testing.T) {
	c, b := newCollection(t)
	p := c.Instantiate("ost")
	view, err := p.Appliance().NavigateTo(context.Background(), p, "Flavors")
	if err != nil {
		t.Fatalf("NavigateTo(Flavors) error = %v", err)
	}
	if b.URL() != helper.ApplianceURL+"/ems_cloud/1/flavors" {
		t.Fatalf("URL() = %q", b.URL())
	}
	names, err := view.(provider.FlavorsView).Entities.EntityNames(false)
	if err != nil || !reflect.DeepEqual(names, []string{"m1.tiny", "m1.small"}) {
		t.Fatalf("EntityNames() = %v, %v", names, err)
	}
}

func Test_refresh_relationships(t *testing.T) {
	c, b := newCollection(t)
	if err := c.Instantiate("ec2").RefreshRelationships(context.Background()); err != nil {
		t.Fatalf("RefreshRelationships() error = %v", err)
	}
	if b.URL() != helper.ApplianceURL+"/ems_cloud/2?refreshed" {
		t.Fatalf("URL() = %q", b.URL())
	}
	if d := b.Dialogs(); len(d) != 1 {
		t.Fatalf("Dialogs() = %v; want the refresh confirmation", d)
	}
}

func Test_provider_not_found(t *testing.T) {
	c, b := newCollection(t)
	p := c.Instantiate("vsphere")
	_, err := p.Appliance().NavigateTo(context.Background(), p, "Details")
	if !errors.Is(err, provider.ErrProviderNotFound) {
		t.Fatalf("NavigateTo(Details) error = %v; want: %v", err, provider.ErrProviderNotFound)
	}
	// Not found is fatal, so the login is done once
	logins := 0
	for _, loc := range b.History() {
		if loc == base.NewLoginView(b).Login.Locator {
			logins++
		}
	}
	if logins != 1 {
		t.Fatalf("Logged in %d times; want: 1", logins)
	}
}
