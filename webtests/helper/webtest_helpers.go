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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adobe/miq-pages/lib/config"
	"github.com/adobe/miq-pages/lib/journal"
	"github.com/adobe/miq-pages/lib/util"
)

// Environment of the live tests
const (
	EnvApplianceURL = "MIQ_APPLIANCE_URL"
	EnvVersion      = "MIQ_APPLIANCE_VERSION"
	EnvUsername     = "MIQ_USERNAME"
	EnvFullName     = "MIQ_FULLNAME"
	EnvConfig       = "MIQ_CONFIG"
	EnvProvider     = "MIQ_PROVIDER"
)

// LiveConfig builds the config of the live appliance from the environment, the test
// is skipped when no appliance is set
func LiveConfig(tb testing.TB) *config.Config {
	tb.Helper()
	url := os.Getenv(EnvApplianceURL)
	if url == "" {
		tb.Skipf("Live appliance is not set, use %s to run", EnvApplianceURL)
	}

	cfg := config.Default()
	if err := cfg.ReadConfigFile(os.Getenv(EnvConfig)); err != nil {
		tb.Fatalf("ERROR: Unable to read config: %v", err)
	}
	cfg.Appliance.URL = strings.TrimSuffix(url, "/")
	if v := os.Getenv(EnvVersion); v != "" {
		cfg.Appliance.Version = v
	}
	if v := os.Getenv(EnvUsername); v != "" {
		cfg.Appliance.Username = v
	}
	if v := os.Getenv(EnvFullName); v != "" {
		cfg.Appliance.FullName = v
	}
	if v, ok := os.LookupEnv("BROWSER"); ok {
		cfg.Browser.Name = v
	}
	// By default tests are running headless, but there could be a need to run them with UI
	if os.Getenv("HEADFUL") != "" {
		cfg.Browser.Headless = false
	}
	if err := cfg.Validate(); err != nil {
		tb.Fatalf("ERROR: Bad live config: %v", err)
	}
	return cfg
}

// LiveProvider returns the cloud provider name to use in the live tests
func LiveProvider(tb testing.TB) string {
	tb.Helper()
	name := os.Getenv(EnvProvider)
	if name == "" {
		tb.Skipf("Cloud provider is not set, use %s to run", EnvProvider)
	}
	return name
}

// NewJournal opens the journal in the workspace, the entries left after the test
// are reported since they were not cleaned up
func NewJournal(tb testing.TB, workspace string) *journal.Journal {
	tb.Helper()
	j, err := journal.Open(filepath.Join(workspace, "journal"))
	if err != nil {
		tb.Fatalf("ERROR: Unable to open journal: %v", err)
	}
	tb.Cleanup(func() {
		left, err := j.List()
		if err != nil {
			tb.Errorf("ERROR: Unable to list journal: %v", err)
		}
		for _, e := range left {
			tb.Logf("WARNING: Leftover %s %q (%s) created at %s", e.Kind, e.Name, e.Parent, e.CreatedAt)
		}
		if err := j.Close(); err != nil {
			tb.Errorf("ERROR: Unable to close journal: %v", err)
		}
	})
	return j
}

// UniqueName returns the name for the entity created by the test
func UniqueName(prefix string) string {
	return util.RandomName(prefix)
}
