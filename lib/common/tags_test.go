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

package common_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/adobe/miq-pages/lib/appliance"
	"github.com/adobe/miq-pages/lib/base"
	"github.com/adobe/miq-pages/lib/browser"
	"github.com/adobe/miq-pages/lib/common"
	"github.com/adobe/miq-pages/lib/navigator"
	"github.com/adobe/miq-pages/lib/widget"
	"github.com/adobe/miq-pages/webtests/helper"
)

// gadget is the taggable entity reaching the fixture generic object pages directly
type gadget struct {
	app  *appliance.Appliance
	path string
}

func (*gadget) NavigationKind() string             { return "gadget" }
func (g *gadget) Appliance() *appliance.Appliance { return g.app }

type pageView struct {
	b     browser.Driver
	title string
}

func (v pageView) IsDisplayed() bool {
	return widget.NewText(v.b, widget.TitleLocator).TextOrEmpty() == v.title
}

func newGadget(t *testing.T, path, title string) (*gadget, *browser.Static) {
	t.Helper()
	b := helper.NewConsoleBrowser(t, "5.9")
	a, err := appliance.New(helper.ConsoleConfig("5.9"), b, nil)
	if err != nil {
		t.Fatalf("appliance.New() error = %v", err)
	}
	if err := base.RegisterSteps(a.Nav); err != nil {
		t.Fatalf("RegisterSteps() error = %v", err)
	}
	loggedIn := navigator.ToAttribute(appliance.KindServer, "LoggedIn", func(g *gadget) navigator.Navigable { return g.app.Server() })
	navigator.MustRegister(a.Nav, "gadget", "Details", navigator.Step[*gadget]{
		View:         func(g *gadget) navigator.View { return pageView{g.app.Browser, title} },
		Prerequisite: loggedIn,
		Do: func(_ context.Context, g *gadget, _ navigator.View) error {
			return g.app.Browser.Goto(g.app.URL(g.path))
		},
	})
	navigator.MustRegister(a.Nav, "gadget", "EditTags", navigator.Step[*gadget]{
		View:         func(g *gadget) navigator.View { return common.NewTagPageView(g.app) },
		Prerequisite: loggedIn,
		Do: func(_ context.Context, g *gadget, _ navigator.View) error {
			return g.app.Browser.Goto(g.app.URL("/generic_object/tags"))
		},
	})
	return &gadget{app: a, path: path}, b
}

func Test_parse_tag(t *testing.T) {
	tag, err := common.ParseTag(" Department : Engineering ")
	if err != nil || tag != (common.Tag{Category: "Department", Value: "Engineering"}) {
		t.Fatalf("ParseTag() = %v, %v", tag, err)
	}
	if tag.String() != "Department: Engineering" {
		t.Fatalf("String() = %q", tag.String())
	}
	if _, err := common.ParseTag("Engineering"); err == nil {
		t.Fatalf("ParseTag() without category should fail")
	}
}

func Test_get_tags(t *testing.T) {
	g, _ := newGadget(t, "/generic_object/1", "lb-east (Summary)")
	tags, err := common.GetTags(context.Background(), g, "")
	if err != nil {
		t.Fatalf("GetTags() error = %v", err)
	}
	want := []common.Tag{{Category: "Department", Value: "Engineering"}, {Category: "Environment", Value: "Production"}}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("GetTags() = %v; want: %v", tags, want)
	}

	g, _ = newGadget(t, "/generic_object/2", "lb-west (Summary)")
	tags, err = common.GetTags(context.Background(), g, common.DefaultTenant)
	if err != nil || len(tags) != 0 {
		t.Fatalf("GetTags() of untagged = %v, %v; want: none", tags, err)
	}

	if _, err := common.GetTags(context.Background(), g, "Other Tags"); !errors.Is(err, widget.ErrItemNotFound) {
		t.Fatalf("GetTags() of unknown tenant error = %v", err)
	}
}

func Test_add_tag(t *testing.T) {
	tag := common.Tag{Category: "Environment", Value: "Production"}
	for _, tc := range []struct {
		name          string
		cancel, reset bool
		path          string
		flash         string
	}{
		{"save", false, false, "/generic_object_definition/1/instances?tags_saved", common.MsgTagsSaved},
		{"cancel", true, false, "/generic_object_definition/1/instances?tags_cancelled", common.MsgTagsCancelled},
		{"reset", false, true, "/generic_object/tags?reset", common.MsgTagsReset},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g, b := newGadget(t, "/generic_object/1", "lb-east (Summary)")
			if err := common.AddTag(context.Background(), g, tag, tc.cancel, tc.reset); err != nil {
				t.Fatalf("AddTag() error = %v", err)
			}
			if b.URL() != helper.ApplianceURL+tc.path {
				t.Fatalf("URL() = %q; want: %q", b.URL(), tc.path)
			}
			if err := widget.NewFlash(b).AssertMessage(tc.flash, ""); err != nil {
				t.Fatalf("AssertMessage() error = %v", err)
			}
		})
	}
}

func Test_add_tag_unknown_value(t *testing.T) {
	g, _ := newGadget(t, "/generic_object/1", "lb-east (Summary)")
	err := common.AddTag(context.Background(), g, common.Tag{Category: "Department", Value: "Marketing"}, false, false)
	if !errors.Is(err, browser.ErrNoSuchElement) {
		t.Fatalf("AddTag() error = %v; want: %v", err, browser.ErrNoSuchElement)
	}
}

func Test_remove_tag(t *testing.T) {
	g, b := newGadget(t, "/generic_object/1", "lb-east (Summary)")
	tag := common.Tag{Category: "Department", Value: "Engineering"}
	if err := common.RemoveTag(context.Background(), g, tag, false, false); err != nil {
		t.Fatalf("RemoveTag() error = %v", err)
	}
	hist := b.History()
	if len(hist) < 2 || !strings.Contains(hist[len(hist)-2], "assignments_div") {
		t.Fatalf("Assignment remove icon was not clicked: %v", hist)
	}

	err := common.RemoveTag(context.Background(), g, common.Tag{Category: "Department", Value: "Finance"}, false, false)
	if !errors.Is(err, widget.ErrItemNotFound) {
		t.Fatalf("RemoveTag() of not assigned error = %v; want: %v", err, widget.ErrItemNotFound)
	}
}
