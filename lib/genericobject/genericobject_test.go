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

package genericobject_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/adobe/miq-pages/lib/appliance"
	"github.com/adobe/miq-pages/lib/base"
	"github.com/adobe/miq-pages/lib/browser"
	"github.com/adobe/miq-pages/lib/common"
	"github.com/adobe/miq-pages/lib/genericobject"
	"github.com/adobe/miq-pages/lib/services/myservice"
	"github.com/adobe/miq-pages/lib/widget"
	"github.com/adobe/miq-pages/webtests/helper"
)

func newDefinitions(t *testing.T) (*genericobject.DefinitionCollection, *appliance.Appliance, *browser.Static) {
	t.Helper()
	b := helper.NewConsoleBrowser(t, "5.9")
	a, err := appliance.New(helper.ConsoleConfig("5.9"), b, nil)
	if err != nil {
		t.Fatalf("appliance.New() error = %v", err)
	}
	if err := errors.Join(base.RegisterSteps(a.Nav), myservice.RegisterSteps(a.Nav), genericobject.RegisterSteps(a.Nav)); err != nil {
		t.Fatalf("RegisterSteps() error = %v", err)
	}
	return genericobject.NewDefinitionCollection(a), a, b
}

func Test_definitions(t *testing.T) {
	defs, _, _ := newDefinitions(t)
	names, err := defs.All(context.Background())
	if err != nil || !reflect.DeepEqual(names, []string{"LoadBalancer", "Database"}) {
		t.Fatalf("All() = %v, %v", names, err)
	}

	for name, want := range map[string]int{"LoadBalancer": 2, "Database": 0} {
		count, err := defs.Instantiate(name).InstanceCount(context.Background())
		if err != nil || count != want {
			t.Errorf("InstanceCount(%s) = %d, %v; want: %d", name, count, err, want)
		}
	}

	_, err = defs.Instantiate("Router").InstanceCount(context.Background())
	if !errors.Is(err, genericobject.ErrDefinitionNotFound) || !errors.Is(err, widget.ErrItemNotFound) {
		t.Fatalf("InstanceCount() of unknown class error = %v", err)
	}
}

func Test_instances(t *testing.T) {
	defs, _, b := newDefinitions(t)
	instances := defs.Instantiate("LoadBalancer").Instances()
	names, err := instances.All(context.Background())
	if err != nil || !reflect.DeepEqual(names, []string{"lb-east", "lb-west"}) {
		t.Fatalf("All() = %v, %v", names, err)
	}
	if b.URL() != helper.ApplianceURL+"/generic_object_definition/1/instances" {
		t.Fatalf("URL() = %q", b.URL())
	}
}

func Test_instance_exists(t *testing.T) {
	defs, _, _ := newDefinitions(t)
	for _, tc := range []struct {
		definition, name string
		want             bool
	}{
		{"LoadBalancer", "lb-east", true},
		{"LoadBalancer", "lb-north", false},
		{"Database", "db-1", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			i := defs.Instantiate(tc.definition).Instances().Instantiate(tc.name, nil)
			ok, err := i.Exists(context.Background())
			if err != nil || ok != tc.want {
				t.Fatalf("Exists() = %v, %v; want: %v", ok, err, tc.want)
			}
		})
	}
}

func Test_instance_tags(t *testing.T) {
	defs, _, b := newDefinitions(t)
	i := defs.Instantiate("LoadBalancer").Instances().Instantiate("lb-east", nil)

	tags, err := i.GetTags(context.Background(), "")
	if err != nil || len(tags) != 2 || tags[0] != (common.Tag{Category: "Department", Value: "Engineering"}) {
		t.Fatalf("GetTags() = %v, %v", tags, err)
	}

	if err := i.AddTag(context.Background(), common.Tag{Category: "Department", Value: "Finance"}, false, false); err != nil {
		t.Fatalf("AddTag() error = %v", err)
	}
	if b.URL() != helper.ApplianceURL+"/generic_object_definition/1/instances?tags_saved" {
		t.Fatalf("URL() after AddTag = %q", b.URL())
	}
	if err := i.RemoveTag(context.Background(), common.Tag{Category: "Environment", Value: "Production"}, true, false); err != nil {
		t.Fatalf("RemoveTag(cancel) error = %v", err)
	}
	if err := widget.NewFlash(b).AssertMessage(common.MsgTagsCancelled, widget.FlashSuccess); err != nil {
		t.Fatalf("AssertMessage() error = %v", err)
	}
}

func Test_custom_button(t *testing.T) {
	defs, a, b := newDefinitions(t)
	orphan := defs.Instantiate("LoadBalancer").Instances().Instantiate("lb-east", nil)
	if err := orphan.ExecuteCustomButton(context.Background(), "", "Restart"); err == nil {
		t.Fatalf("ExecuteCustomButton() without service should fail")
	}

	svc := myservice.New(a, "svc-lb")
	i := defs.Instantiate("LoadBalancer").Instances().Instantiate("lb-east", svc)

	if err := i.ExecuteCustomButton(context.Background(), "", "Restart"); err != nil {
		t.Fatalf("ExecuteCustomButton() error = %v", err)
	}
	if b.URL() != helper.ApplianceURL+"/service/1/generic_object/1?custom" {
		t.Fatalf("URL() = %q", b.URL())
	}
	if err := i.ExecuteCustomButton(context.Background(), "Operations", "Scale Out"); err != nil {
		t.Fatalf("ExecuteCustomButton() in group error = %v", err)
	}
	if err := i.ExecuteCustomButton(context.Background(), "", "Stop"); !errors.Is(err, browser.ErrNoSuchElement) {
		t.Fatalf("ExecuteCustomButton() of missing button error = %v", err)
	}
}
