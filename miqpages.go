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

// Starting point for miq-pages cmd
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/adobe/miq-pages/lib/browser"
	"github.com/adobe/miq-pages/lib/config"
	"github.com/adobe/miq-pages/lib/console"
	"github.com/adobe/miq-pages/lib/genericobject"
	"github.com/adobe/miq-pages/lib/journal"
	"github.com/adobe/miq-pages/lib/log"
	"github.com/adobe/miq-pages/lib/monitoring"
	"github.com/adobe/miq-pages/lib/services/myservice"
)

// Set by the build with -ldflags "-X main.version=..."
var (
	version   = "dev"
	buildTime = "unknown"
)

// session is the console opened by a command and everything to close after
type session struct {
	*console.Console

	driver  *browser.Playwright
	journal *journal.Journal
	monitor *monitoring.Monitor
}

func (s *session) Close() error {
	logger := log.WithFunc("main", "Close")
	var errs []error
	if s.driver != nil {
		errs = append(errs, s.driver.Close())
	}
	if s.journal != nil {
		errs = append(errs, s.journal.Close())
	}
	if s.monitor != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.monitor.Shutdown(ctx); err != nil {
			logger.Error("Error shutting down monitoring", "err", err)
		}
	}
	return errors.Join(errs...)
}

type app struct {
	cfgPath      string
	url          string
	logVerbosity string
	logTimestamp bool
	headful      bool

	cfg *config.Config

	// openSession replaces open when set
	openSession func(ctx context.Context) (*session, error)
}

// loadConfig reads the config file and applies the flags over it
func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg := config.Default()
	if err := cfg.ReadConfigFile(a.cfgPath); err != nil {
		return err
	}
	if a.url != "" {
		cfg.Appliance.URL = a.url
	}
	if a.headful {
		cfg.Browser.Headless = false
	}
	flags := cmd.Flags()
	if flags.Changed("verbosity") || a.cfgPath == "" {
		cfg.Log.Level = a.logVerbosity
	}
	if flags.Changed("timestamp") || a.cfgPath == "" {
		cfg.Log.UseTimestamp = a.logTimestamp
	}
	if cfg.Monitoring.Enabled && cfg.Monitoring.EnableLogs {
		cfg.Log.OtelEnabled = true
	}
	if err := log.Initialize(&cfg.Log); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// open starts monitoring, the journal and the browser and logs into nothing yet:
// the first navigation does the login
func (a *app) open(ctx context.Context) (_ *session, err error) {
	logger := log.WithFunc("main", "open")
	s := &session{}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	monCfg := &a.cfg.Monitoring
	if monCfg.ServiceVersion == "" || monCfg.ServiceVersion == "dev" {
		monCfg.ServiceVersion = version
	}
	monCfg.Appliance = a.cfg.Appliance.URL
	monCfg.ApplianceVersion = a.cfg.Appliance.Version
	if s.monitor, err = monitoring.Initialize(ctx, monCfg); err != nil {
		return nil, fmt.Errorf("Unable to initialize monitoring: %w", err)
	}

	if a.cfg.Journal.Path != "" {
		if s.journal, err = journal.Open(a.cfg.Journal.Path); err != nil {
			return nil, err
		}
	}

	logger.Debug("Starting browser", "browser", a.cfg.Browser.Name, "headless", a.cfg.Browser.Headless)
	if s.driver, err = browser.NewPlaywright(browser.PlaywrightOptions{
		Browser:    a.cfg.Browser.Name,
		Headless:   a.cfg.Browser.Headless,
		Timeout:    a.cfg.Browser.Timeout.Duration(),
		CaptureDir: a.cfg.Browser.CaptureDir,
	}); err != nil {
		return nil, err
	}

	if s.Console, err = console.New(a.cfg, s.driver, s.journal); err != nil {
		return nil, err
	}
	return s, nil
}

// runArgs opens the session for the command body and closes it after, the body
// prints to the command output
func (a *app) runArgs(fn func(ctx context.Context, out io.Writer, s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		open := a.open
		if a.openSession != nil {
			open = a.openSession
		}
		s, err := open(ctx)
		if err != nil {
			return err
		}
		err = fn(ctx, cmd.OutOrStdout(), s, args)
		if cerr := s.Close(); cerr != nil {
			log.WithFunc("main", "runArgs").Warn("Unable to close session", "err", cerr)
		}
		return err
	}
}

// genericObject returns the instance of the definition, service is optional
func (s *session) genericObject(definition, name, service string) *genericobject.Instance {
	var svc *myservice.MyService
	if service != "" {
		svc = s.MyService(service)
	}
	return s.GenericObjectDefinitions().Instantiate(definition).Instances().Instantiate(name, svc)
}

func main() {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "miq-pages",
		Short: "ManageIQ console page objects",
		Long:  `Drives the ManageIQ web console: flavors, service catalogs, generic objects`,
		PersistentPreRunE: func(cmd *cobra.Command, _ /*args*/ []string) error {
			return a.loadConfig(cmd)
		},
		SilenceUsage: true,
	}
	cmd.SetVersionTemplate(fmt.Sprintf("miq-pages %s (%s)\n", version, buildTime))
	cmd.Version = version

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.cfgPath, "cfg", "c", "", "yaml configuration file")
	flags.StringVar(&a.url, "url", "", "appliance URL, overrides the config")
	flags.BoolVar(&a.headful, "headful", false, "show the browser window")
	flags.StringVarP(&a.logVerbosity, "verbosity", "v", "info", "log level (debug, info, warn, error)")
	flags.BoolVar(&a.logTimestamp, "timestamp", true, "prepend timestamps for each log line")
	flags.Lookup("timestamp").NoOptDefVal = "false"

	cmd.AddCommand(
		a.configCmd(),
		a.graphCmd(),
		a.flavorCmd(),
		a.catalogCmd(),
		a.genericObjectCmd(),
		a.cleanupCmd(),
	)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
