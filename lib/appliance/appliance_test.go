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

package appliance

import (
	"testing"

	"github.com/adobe/miq-pages/lib/browser"
	"github.com/adobe/miq-pages/lib/config"
	"github.com/adobe/miq-pages/lib/journal"
)

func Test_new_appliance(t *testing.T) {
	cfg := config.Default()
	cfg.Appliance.URL = "https://miq.example.com/"
	cfg.Appliance.Version = "5.8.2"

	if _, err := New(cfg, nil, nil); err == nil {
		t.Fatalf("New() without browser should fail")
	}

	a, err := New(cfg, browser.NewStatic(cfg.Appliance.URL, nil), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !a.Version.LessThan("5.9") {
		t.Fatalf("Version = %s; want < 5.9", a.Version)
	}
	if a.Server().NavigationKind() != KindServer || a.Server().Appliance() != a {
		t.Fatalf("Server() is not bound to the appliance")
	}
	if a.LoggedInUser() != "Administrator" {
		t.Fatalf("LoggedInUser() = %q", a.LoggedInUser())
	}

	for _, tc := range [][2]string{
		{"", "https://miq.example.com/"},
		{"/", "https://miq.example.com/"},
		{"dashboard/show", "https://miq.example.com/dashboard/show"},
		{"/flavor/show_list", "https://miq.example.com/flavor/show_list"},
	} {
		if got := a.URL(tc[0]); got != tc[1] {
			t.Errorf("URL(%q) = %q; want: %q", tc[0], got, tc[1])
		}
	}

	cfg.Appliance.Version = "five-nine"
	if _, err := New(cfg, browser.NewStatic(cfg.Appliance.URL, nil), nil); err == nil {
		t.Fatalf("New() with broken version should fail")
	}
}

func Test_record_and_forget(t *testing.T) {
	j, err := journal.Open(t.TempDir())
	if err != nil {
		t.Fatalf("journal.Open() error = %v", err)
	}
	defer j.Close()

	cfg := config.Default()
	a, err := New(cfg, browser.NewStatic(cfg.Appliance.URL, nil), j)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	a.Record("flavor", "m1.custom", "ost")
	found, err := j.Find("flavor", "m1.custom")
	if err != nil || len(found) != 1 {
		t.Fatalf("Find() = %v, %v; want: 1 entry", found, err)
	}
	if found[0].Appliance != cfg.Appliance.URL || found[0].Parent != "ost" {
		t.Fatalf("Recorded entry = %+v", found[0])
	}

	a.Forget("flavor", "m1.custom")
	a.Forget("flavor", "m1.custom")
	if found, _ := j.Find("flavor", "m1.custom"); len(found) != 0 {
		t.Fatalf("Forget() left %v", found)
	}

	// No journal - nothing recorded and nothing fails
	a.Journal = nil
	a.Record("flavor", "m1.other", "ost")
	a.Forget("flavor", "m1.other")
}
