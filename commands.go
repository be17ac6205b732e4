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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/adobe/miq-pages/lib/browser"
	"github.com/adobe/miq-pages/lib/cloud/flavor"
	"github.com/adobe/miq-pages/lib/common"
	"github.com/adobe/miq-pages/lib/console"
	"github.com/adobe/miq-pages/lib/journal"
	"github.com/adobe/miq-pages/lib/log"
)

func (a *app) graphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Print the navigation graph in DOT format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// No page is loaded, only the steps are registered
			c, err := console.New(a.cfg, browser.NewStatic(a.cfg.Appliance.URL, nil), nil)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), c.Nav.Graph())
			return err
		},
	}
}

func (a *app) flavorCmd() *cobra.Command {
	var providerName string
	var in flavor.Flavor
	var private, cancel bool

	instantiate := func(s *session, name string) *flavor.Flavor {
		return s.Flavors().Instantiate(name, s.Providers().Instantiate(providerName))
	}

	cmd := &cobra.Command{
		Use:   "flavor",
		Short: "Manage the cloud flavors",
	}
	cmd.PersistentFlags().StringVarP(&providerName, "provider", "p", "", "cloud provider of the flavor")
	cmd.MarkPersistentFlagRequired("provider")

	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create the flavor",
		Args:  cobra.ExactArgs(1),
		RunE: a.runArgs(func(ctx context.Context, _ io.Writer, s *session, args []string) error {
			f := instantiate(s, args[0])
			f.RAM, f.VCPUs, f.Disk, f.Swap, f.RxTx = in.RAM, in.VCPUs, in.Disk, in.Swap, in.RxTx
			f.IsPublic = !private
			_, err := s.Flavors().Create(ctx, *f, cancel)
			return err
		}),
	}
	cf := create.Flags()
	cf.IntVar(&in.RAM, "ram", 0, "memory size in MB")
	cf.IntVar(&in.VCPUs, "vcpus", 0, "number of virtual CPUs")
	cf.IntVar(&in.Disk, "disk", 0, "root disk size in GB")
	cf.IntVar(&in.Swap, "swap", 0, "swap size in MB")
	cf.Float64Var(&in.RxTx, "rxtx", 0, "RX/TX factor")
	cf.BoolVar(&private, "private", false, "make the flavor private")
	cf.BoolVar(&cancel, "cancel", false, "fill the form and cancel it")

	del := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete the flavor",
		Args:  cobra.ExactArgs(1),
		RunE: a.runArgs(func(ctx context.Context, _ io.Writer, s *session, args []string) error {
			return instantiate(s, args[0]).Delete(ctx, cancel)
		}),
	}
	del.Flags().BoolVar(&cancel, "cancel", false, "dismiss the confirmation")

	exists := &cobra.Command{
		Use:   "exists NAME",
		Short: "Check the flavor is present",
		Args:  cobra.ExactArgs(1),
		RunE: a.runArgs(func(ctx context.Context, out io.Writer, s *session, args []string) error {
			ok, err := instantiate(s, args[0]).Exists(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, ok)
			return err
		}),
	}

	instances := &cobra.Command{
		Use:   "instances NAME",
		Short: "Print the number of instances using the flavor",
		Args:  cobra.ExactArgs(1),
		RunE: a.runArgs(func(ctx context.Context, out io.Writer, s *session, args []string) error {
			n, err := instantiate(s, args[0]).InstanceCount(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, n)
			return err
		}),
	}

	cmd.AddCommand(create, del, exists, instances)
	return cmd
}

// orderValues is the yaml file with the values of the order
type orderValues struct {
	Stack   map[string]any `yaml:"stack"`
	Dialog  map[string]any `yaml:"dialog"`
	Ansible map[string]any `yaml:"ansible"`
}

// parsePairs turns key=value list into map. The form fields are text so the value is kept
// as given, only empty value or null unsets the field.
func parsePairs(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("Bad value %q, key=value expected", p)
		}
		if v == "" || v == "null" {
			out[k] = nil
			continue
		}
		out[k] = v
	}
	return out, nil
}

func merge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (a *app) catalogCmd() *cobra.Command {
	var valuesPath string
	var stack, dialog, ansible []string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Work with the service catalogs",
	}
	order := &cobra.Command{
		Use:   "order CATALOG ITEM",
		Short: "Order the catalog item",
		Args:  cobra.ExactArgs(2),
		RunE: a.runArgs(func(ctx context.Context, _ io.Writer, s *session, args []string) error {
			var values orderValues
			if valuesPath != "" {
				data, err := os.ReadFile(valuesPath)
				if err != nil {
					return fmt.Errorf("Unable to read values %s: %w", valuesPath, err)
				}
				if err := yaml.Unmarshal(data, &values); err != nil {
					return fmt.Errorf("Unable to parse values %s: %w", valuesPath, err)
				}
			}
			for _, kv := range []struct {
				dst   *map[string]any
				pairs []string
			}{{&values.Stack, stack}, {&values.Dialog, dialog}, {&values.Ansible, ansible}} {
				m, err := parsePairs(kv.pairs)
				if err != nil {
					return err
				}
				if len(m) > 0 {
					*kv.dst = merge(*kv.dst, m)
				}
			}

			item := s.CatalogItem(args[0], args[1])
			item.StackData, item.DialogValues, item.AnsibleDialogValues = values.Stack, values.Dialog, values.Ansible
			return item.Order(ctx)
		}),
	}
	f := order.Flags()
	f.StringVar(&valuesPath, "values", "", "yaml file with stack, dialog and ansible maps")
	f.StringArrayVar(&stack, "stack", nil, "stack value key=value, could be repeated")
	f.StringArrayVar(&dialog, "dialog", nil, "dialog value key=value, could be repeated")
	f.StringArrayVar(&ansible, "ansible", nil, "ansible dialog value key=value, could be repeated")

	cmd.AddCommand(order)
	return cmd
}

func (a *app) genericObjectCmd() *cobra.Command {
	var service, tenant string
	var add, remove []string

	cmd := &cobra.Command{
		Use:     "generic-object",
		Aliases: []string{"go"},
		Short:   "Work with the generic object instances",
	}
	cmd.PersistentFlags().StringVarP(&service, "service", "s", "", "service the instance is attached to")

	exists := &cobra.Command{
		Use:   "exists DEFINITION NAME",
		Short: "Check the instance is present",
		Args:  cobra.ExactArgs(2),
		RunE: a.runArgs(func(ctx context.Context, out io.Writer, s *session, args []string) error {
			ok, err := s.genericObject(args[0], args[1], service).Exists(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, ok)
			return err
		}),
	}

	tags := &cobra.Command{
		Use:   "tags DEFINITION NAME",
		Short: "Add or remove the tags and print the assigned ones",
		Args:  cobra.ExactArgs(2),
		RunE: a.runArgs(func(ctx context.Context, out io.Writer, s *session, args []string) error {
			inst := s.genericObject(args[0], args[1], service)
			for _, t := range add {
				tag, err := common.ParseTag(t)
				if err != nil {
					return err
				}
				if err := inst.AddTag(ctx, tag, false, false); err != nil {
					return err
				}
			}
			for _, t := range remove {
				tag, err := common.ParseTag(t)
				if err != nil {
					return err
				}
				if err := inst.RemoveTag(ctx, tag, false, false); err != nil {
					return err
				}
			}
			assigned, err := inst.GetTags(ctx, tenant)
			if err != nil {
				return err
			}
			for _, tag := range assigned {
				if _, err := fmt.Fprintln(out, tag); err != nil {
					return err
				}
			}
			return nil
		}),
	}
	tf := tags.Flags()
	tf.StringArrayVar(&add, "add", nil, `tag to assign as "Category: Value", could be repeated`)
	tf.StringArrayVar(&remove, "remove", nil, `tag to unassign as "Category: Value", could be repeated`)
	tf.StringVar(&tenant, "tenant", common.DefaultTenant, "tags tenant shown in the summary")

	cmd.AddCommand(exists, tags)
	return cmd
}

// cleanupJournal removes the recorded flavors still present and forgets the ones
// already gone, entries of other kinds are kept
func cleanupJournal(ctx context.Context, c *console.Console, j *journal.Journal) error {
	logger := log.WithFunc("main", "cleanupJournal")
	if j == nil {
		return fmt.Errorf("Journal is not configured, set journal.path")
	}
	entries, err := j.List()
	if err != nil {
		return err
	}
	var errs []error
	for _, e := range entries {
		switch e.Kind {
		case flavor.KindFlavor:
			f := c.Flavors().Instantiate(e.Name, c.Providers().Instantiate(e.Parent))
			ok, err := f.Exists(ctx)
			if err == nil && ok {
				err = f.Delete(ctx, false)
			} else if err == nil {
				logger.Info("Flavor is already gone", "name", e.Name, "provider", e.Parent)
				err = j.Forget(e.Kind, e.Name)
			}
			if err != nil {
				logger.Error("Unable to remove flavor", "name", e.Name, "err", err)
				errs = append(errs, err)
			}
		default:
			logger.Warn("No cleanup for the kind, skipping", "kind", e.Kind, "name", e.Name, "parent", e.Parent)
		}
	}
	return errors.Join(errs...)
}

func (a *app) cleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove the entities recorded in the journal",
		Args:  cobra.NoArgs,
		RunE: a.runArgs(func(ctx context.Context, _ io.Writer, s *session, _ []string) error {
			return cleanupJournal(ctx, s.Console, s.journal)
		}),
	}
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := a.cfg.Dump()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
