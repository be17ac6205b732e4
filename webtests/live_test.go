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

package webtests

import (
	"testing"

	"github.com/adobe/miq-pages/lib/console"
	"github.com/adobe/miq-pages/lib/log"
	"github.com/adobe/miq-pages/webtests/helper"
)

// newLiveConsole connects to the appliance from the environment
// WARNING: Creates real entities on the appliance, the journal reports the leftovers
func newLiveConsole(t *testing.T) (*console.Console, *helper.LivePlaywright) {
	t.Helper()
	cfg := helper.LiveConfig(t)
	if err := log.Initialize(&cfg.Log); err != nil {
		t.Fatalf("ERROR: Unable to initialize log: %v", err)
	}

	workspace := t.TempDir()
	lp := helper.NewPlaywright(t, workspace, cfg)
	c, err := console.New(cfg, lp.Driver(), helper.NewJournal(t, workspace))
	if err != nil {
		t.Fatalf("ERROR: Unable to create console: %v", err)
	}
	return c, lp
}
