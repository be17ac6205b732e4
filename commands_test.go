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

package main

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/adobe/miq-pages/lib/cloud/flavor"
	"github.com/adobe/miq-pages/lib/console"
	"github.com/adobe/miq-pages/lib/journal"
	"github.com/adobe/miq-pages/lib/services/catalogs"
	"github.com/adobe/miq-pages/webtests/helper"
)

func newConsole(t *testing.T, ver string, j *journal.Journal) *console.Console {
	t.Helper()
	c, err := console.New(helper.ConsoleConfig(ver), helper.NewConsoleBrowser(t, ver), j)
	if err != nil {
		t.Fatalf("console.New() error = %v", err)
	}
	return c
}

func Test_parse_pairs(t *testing.T) {
	got, err := parsePairs([]string{
		"name=vm-1", "count=3", "public=true", "code=01234", "ver=1.10", "empty=", "unset=null", "note=a=b",
	})
	if err != nil {
		t.Fatalf("parsePairs() error = %v", err)
	}
	want := map[string]any{
		"name":   "vm-1",
		"count":  "3",
		"public": "true",
		"code":   "01234",
		"ver":    "1.10",
		"empty":  nil,
		"unset":  nil,
		"note":   "a=b",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parsePairs() = %#v; want: %#v", got, want)
	}

	for _, bad := range []string{"novalue", "=x"} {
		if _, err := parsePairs([]string{bad}); err == nil {
			t.Errorf("parsePairs(%q) no error", bad)
		}
	}
}

func Test_merge(t *testing.T) {
	got := merge(map[string]any{"a": 1, "b": 2}, map[string]any{"b": 3})
	if got["a"] != 1 || got["b"] != 3 {
		t.Fatalf("merge() = %v", got)
	}
	if got := merge(nil, map[string]any{"c": 1}); got["c"] != 1 {
		t.Fatalf("merge(nil) = %v", got)
	}
}

func Test_graph_cmd(t *testing.T) {
	a := &app{logVerbosity: "error"}
	cmd := a.graphCmd()
	if err := a.loadConfig(cmd); err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("graph error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "digraph navigation {") || !strings.Contains(out.String(), `"flavor/Details"`) {
		t.Fatalf("graph output:\n%s", out.String())
	}
}

func Test_order_values_from_pairs(t *testing.T) {
	c := newConsole(t, "5.9", nil)
	view, err := c.NavigateTo(context.Background(), c.CatalogItem("Azure", "azure-vm"), "Order")
	if err != nil {
		t.Fatalf("NavigateTo(Order) error = %v", err)
	}
	form := view.(catalogs.OrderServiceCatalogView)

	values, err := parsePairs([]string{"stack_name=01234", "vm_name=true", "vm_size=Standard_A1", "resource_group="})
	if err != nil {
		t.Fatalf("parsePairs() error = %v", err)
	}
	if changed, err := form.Fill(values); err != nil || !changed {
		t.Fatalf("Fill() = %v, %v", changed, err)
	}
	for key, want := range map[string]string{"stack_name": "01234", "vm_name": "true", "vm_size": "Standard_A1"} {
		if got, err := form.Field(key).Read(); err != nil || got != want {
			t.Errorf("%s = %v, %v; want: %q", key, got, err, want)
		}
	}
}

func Test_cleanup_journal(t *testing.T) {
	j, err := journal.Open(t.TempDir())
	if err != nil {
		t.Fatalf("journal.Open() error = %v", err)
	}
	t.Cleanup(func() { j.Close() })
	b := helper.NewConsoleBrowser(t, "5.9")
	c, err := console.New(helper.ConsoleConfig("5.9"), b, j)
	if err != nil {
		t.Fatalf("console.New() error = %v", err)
	}

	for _, e := range []journal.Entry{
		{Kind: flavor.KindFlavor, Name: "m1.small", Parent: "ost"},
		{Kind: flavor.KindFlavor, Name: "m1.gone", Parent: "ost"},
		{Kind: catalogs.KindServiceOrder, Name: "azure-vm", Parent: "Azure"},
	} {
		if _, err := j.Record(e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	if err := cleanupJournal(context.Background(), c, j); err != nil {
		t.Fatalf("cleanupJournal() error = %v", err)
	}
	if d := b.Dialogs(); len(d) != 1 {
		t.Fatalf("Dialogs() = %v; want the removal of the present flavor confirmed", d)
	}
	left, err := j.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(left) != 1 || left[0].Kind != catalogs.KindServiceOrder || left[0].Name != "azure-vm" {
		t.Fatalf("List() after cleanup = %v; want only the order", left)
	}

	if err := cleanupJournal(context.Background(), c, nil); err == nil {
		t.Fatalf("cleanupJournal() without journal should fail")
	}
}

func Test_cleanup_journal_failed_delete(t *testing.T) {
	j, err := journal.Open(t.TempDir())
	if err != nil {
		t.Fatalf("journal.Open() error = %v", err)
	}
	t.Cleanup(func() { j.Close() })
	c := newConsole(t, "5.9", j)

	if _, err := j.Record(journal.Entry{Kind: flavor.KindFlavor, Name: "m1.large", Parent: "ec2"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := cleanupJournal(context.Background(), c, j); err == nil {
		t.Fatalf("cleanupJournal() of flavor in use should fail")
	}
	if found, _ := j.Find(flavor.KindFlavor, "m1.large"); len(found) != 1 {
		t.Fatalf("Failed delete removed the journal entry: %v", found)
	}
}

// runCmd executes the command over the fixture console and returns its output
func runCmd(t *testing.T, cmd func(a *app) *cobra.Command, args ...string) string {
	t.Helper()
	a := &app{openSession: func(context.Context) (*session, error) {
		return &session{Console: newConsole(t, "5.9", nil)}, nil
	}}
	c := cmd(a)
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetArgs(args)
	if err := c.Execute(); err != nil {
		t.Fatalf("%s %v error = %v", c.Name(), args, err)
	}
	return out.String()
}

func Test_commands_output(t *testing.T) {
	for _, tc := range []struct {
		name string
		cmd  func(a *app) *cobra.Command
		args []string
		want string
	}{
		{"flavor exists", (*app).flavorCmd, []string{"exists", "m1.tiny", "-p", "ost"}, "true\n"},
		{"flavor missing", (*app).flavorCmd, []string{"exists", "m1.huge", "-p", "ost"}, "false\n"},
		{"flavor instances", (*app).flavorCmd, []string{"instances", "m1.tiny", "-p", "ost"}, "3\n"},
		{"generic object exists", (*app).genericObjectCmd, []string{"exists", "LoadBalancer", "lb-west"}, "true\n"},
		{"generic object tags", (*app).genericObjectCmd, []string{"tags", "LoadBalancer", "lb-east"},
			"Department: Engineering\nEnvironment: Production\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := runCmd(t, tc.cmd, tc.args...); got != tc.want {
				t.Fatalf("output = %q; want: %q", got, tc.want)
			}
		})
	}
}
