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

package myservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/adobe/miq-pages/lib/appliance"
	"github.com/adobe/miq-pages/lib/base"
	"github.com/adobe/miq-pages/lib/services/myservice"
	"github.com/adobe/miq-pages/webtests/helper"
)

func Test_my_service(t *testing.T) {
	b := helper.NewConsoleBrowser(t, "5.8")
	a, err := appliance.New(helper.ConsoleConfig("5.8"), b, nil)
	if err != nil {
		t.Fatalf("appliance.New() error = %v", err)
	}
	if err := errors.Join(base.RegisterSteps(a.Nav), myservice.RegisterSteps(a.Nav)); err != nil {
		t.Fatalf("RegisterSteps() error = %v", err)
	}

	svc := myservice.New(a, "svc-lb")
	view, err := a.NavigateTo(context.Background(), svc, "Details")
	if err != nil {
		t.Fatalf("NavigateTo(Details) error = %v", err)
	}
	if v, err := view.(myservice.DetailsView).Summary("Generic Objects").GetTextOf("Instances"); err != nil || v != "2" {
		t.Fatalf("Generic Objects instances = %q, %v", v, err)
	}

	view, err = a.NavigateTo(context.Background(), svc, "GenericObjectInstance")
	if err != nil {
		t.Fatalf("NavigateTo(GenericObjectInstance) error = %v", err)
	}
	names, err := view.(myservice.GenericObjectsView).Entities.EntityNames(true)
	if err != nil || len(names) != 2 || names[0] != "lb-east" {
		t.Fatalf("EntityNames() = %v, %v", names, err)
	}

	// Quotes in the name are shown as is in the title
	quoted := myservice.New(a, `web "prod"`)
	view, err = a.NavigateTo(context.Background(), quoted, "Details")
	if err != nil {
		t.Fatalf("NavigateTo(Details) of quoted name error = %v", err)
	}
	if !view.(myservice.DetailsView).IsDisplayed() {
		t.Fatalf(`Details of service 'web "prod"' are not displayed`)
	}

	_, err = a.NavigateTo(context.Background(), myservice.New(a, "svc-db"), "Details")
	if !errors.Is(err, myservice.ErrServiceNotFound) {
		t.Fatalf("NavigateTo(Details) of unknown service error = %v", err)
	}
}
