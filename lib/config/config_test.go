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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testConfig = `---
appliance:
  url: https://miq.example.com
  version: 5.8.2.3
  username: admin
  password: smartvm
browser:
  name: firefox
  headless: false
  timeout: 30s
navigation:
  retries: 5
  view_timeout: 1m30s
journal:
  path: /tmp/miq-journal
log:
  level: debug
`

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("Unable to write config: %v", err)
	}
	return path
}

func Test_default_is_valid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() of default = %v", err)
	}
	if cfg.Navigation.Retries != 2 || !cfg.Navigation.WaitForView {
		t.Fatalf("Unexpected navigation defaults: %+v", cfg.Navigation)
	}
}

func Test_read_config_file(t *testing.T) {
	t.Setenv(EnvPassword, "")
	cfg := Default()
	if err := cfg.ReadConfigFile(writeConfig(t, testConfig)); err != nil {
		t.Fatalf("ReadConfigFile() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Appliance.URL != "https://miq.example.com" || cfg.Appliance.Version != "5.8.2.3" {
		t.Fatalf("Appliance = %+v", cfg.Appliance)
	}
	if cfg.Appliance.Password != "smartvm" {
		t.Fatalf("Password = %q", cfg.Appliance.Password)
	}
	if cfg.Browser.Name != "firefox" || cfg.Browser.Headless {
		t.Fatalf("Browser = %+v", cfg.Browser)
	}
	if cfg.Browser.Timeout.Duration() != 30*time.Second {
		t.Fatalf("Browser.Timeout = %s", cfg.Browser.Timeout)
	}
	if cfg.Navigation.ViewTimeout.Duration() != 90*time.Second || cfg.Navigation.Retries != 5 {
		t.Fatalf("Navigation = %+v", cfg.Navigation)
	}
	// Not mentioned in the file, stays default
	if cfg.Navigation.RetryDelay.Duration() != time.Second || cfg.Appliance.FullName != "Administrator" {
		t.Fatalf("Defaults were overridden: %+v %+v", cfg.Navigation, cfg.Appliance)
	}
	if cfg.Journal.Path != "/tmp/miq-journal" || cfg.Log.Level != "debug" {
		t.Fatalf("Journal = %+v, Log = %+v", cfg.Journal, cfg.Log)
	}
}

func Test_env_password(t *testing.T) {
	t.Setenv(EnvPassword, "from-env")
	cfg := Default()
	if err := cfg.ReadConfigFile(writeConfig(t, testConfig)); err != nil {
		t.Fatalf("ReadConfigFile() error = %v", err)
	}
	if cfg.Appliance.Password != "from-env" {
		t.Fatalf("Password = %q; want: from-env", cfg.Appliance.Password)
	}

	// Empty path still applies the environment
	cfg = Default()
	if err := cfg.ReadConfigFile(""); err != nil || cfg.Appliance.Password != "from-env" {
		t.Fatalf("ReadConfigFile(\"\") = %v, password %q", err, cfg.Appliance.Password)
	}
}

func Test_read_config_errors(t *testing.T) {
	cfg := Default()
	if err := cfg.ReadConfigFile(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatalf("ReadConfigFile() of missing file should fail")
	}
	if err := cfg.ReadConfigFile(writeConfig(t, "appliance: [broken")); err == nil {
		t.Fatalf("ReadConfigFile() of broken yaml should fail")
	}
}

func Test_validate(t *testing.T) {
	for name, mod := range map[string]func(*Config){
		"url":       func(c *Config) { c.Appliance.URL = "miq.example.com" },
		"version":   func(c *Config) { c.Appliance.Version = "latest-ish" },
		"browser":   func(c *Config) { c.Browser.Name = "lynx" },
		"retries":   func(c *Config) { c.Navigation.Retries = -1 },
		"log_level": func(c *Config) { c.Log.Level = "loud" },
		"monitoring": func(c *Config) {
			c.Monitoring.Enabled = true
			c.Monitoring.SampleRate = 2
		},
	} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mod(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("Validate() should fail")
			}
		})
	}
}

func Test_dump_hides_password(t *testing.T) {
	cfg := Default()
	cfg.Appliance.Password = "smartvm"
	data, err := cfg.Dump()
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if strings.Contains(string(data), "smartvm") || !strings.Contains(string(data), "********") {
		t.Fatalf("Dump() should mask the password:\n%s", data)
	}
	if cfg.Appliance.Password != "smartvm" {
		t.Fatalf("Dump() changed the config")
	}
}
