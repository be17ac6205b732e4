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

// Package config is the configuration of the console session: which appliance, which
// browser and how patient the navigation is
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ghodss/yaml"

	"github.com/adobe/miq-pages/lib/log"
	"github.com/adobe/miq-pages/lib/monitoring"
	"github.com/adobe/miq-pages/lib/util"
	"github.com/adobe/miq-pages/lib/version"
)

// EnvPassword overrides the appliance password from the config file
const EnvPassword = "MIQ_APPLIANCE_PASSWORD"

// Config of the console session
type Config struct {
	Appliance  Appliance         `json:"appliance"`
	Browser    Browser           `json:"browser"`
	Navigation Navigation        `json:"navigation"`
	Journal    Journal           `json:"journal"`
	Log        log.Config        `json:"log"`
	Monitoring monitoring.Config `json:"monitoring"`
}

// Appliance is where the console is and who logs in
type Appliance struct {
	URL      string `json:"url"`
	Version  string `json:"version"` // Appliance version like "5.9.0.22", picks the page layouts
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullname"` // Shown in the user dropdown after login
}

// Browser is the playwright browser setup
type Browser struct {
	Name       string        `json:"name"` // chromium, firefox or webkit
	Headless   bool          `json:"headless"`
	Timeout    util.Duration `json:"timeout"`     // Default timeout of the element operations
	CaptureDir string        `json:"capture_dir"` // Where to put screenshots and videos, disabled if empty
}

// Navigation is the behavior of the navigator
type Navigation struct {
	Retries     int           `json:"retries"`
	WaitForView bool          `json:"wait_for_view"`
	ViewTimeout util.Duration `json:"view_timeout"`
	RetryDelay  util.Duration `json:"retry_delay"`
}

// Journal is the storage of created entities
type Journal struct {
	Path string `json:"path"` // Directory of the journal, disabled if empty
}

// Default returns the configuration with sane defaults
func Default() *Config {
	return &Config{
		Appliance: Appliance{
			URL:      "https://localhost",
			Version:  "5.9",
			Username: "admin",
			FullName: "Administrator",
		},
		Browser: Browser{
			Name:     "chromium",
			Headless: true,
			Timeout:  util.Duration(10 * time.Second),
		},
		Navigation: Navigation{
			Retries:     2,
			WaitForView: true,
			ViewTimeout: util.Duration(10 * time.Second),
			RetryDelay:  util.Duration(time.Second),
		},
		Log:        *log.DefaultConfig(),
		Monitoring: *monitoring.DefaultConfig(),
	}
}

// ReadConfigFile merges the yaml file into the config, empty path does nothing
func (c *Config) ReadConfigFile(cfgPath string) error {
	if cfgPath != "" {
		data, err := os.ReadFile(cfgPath)
		if err != nil {
			return fmt.Errorf("Config: Unable to read %s: %w", cfgPath, err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("Config: Unable to parse %s: %w", cfgPath, err)
		}
	}
	if pass := os.Getenv(EnvPassword); pass != "" {
		c.Appliance.Password = pass
	}
	return nil
}

// Validate checks the values are usable
func (c *Config) Validate() error {
	u, err := url.Parse(c.Appliance.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("Config: appliance url %q is not valid", c.Appliance.URL)
	}
	if _, err := version.Parse(c.Appliance.Version); err != nil {
		return fmt.Errorf("Config: appliance version: %w", err)
	}
	switch c.Browser.Name {
	case "chromium", "firefox", "webkit":
	default:
		return fmt.Errorf("Config: unknown browser %q", c.Browser.Name)
	}
	if c.Navigation.Retries < 0 {
		return fmt.Errorf("Config: navigation retries can't be negative")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("Config: %w", err)
	}
	return c.Monitoring.Validate()
}

// Dump returns the config as yaml with the password hidden
func (c *Config) Dump() ([]byte, error) {
	cp := *c
	if cp.Appliance.Password != "" {
		cp.Appliance.Password = "********"
	}
	return yaml.Marshal(&cp)
}
