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

// Package common contains the page objects shared by several entity kinds
package common

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/adobe/miq-pages/lib/appliance"
	"github.com/adobe/miq-pages/lib/base"
	"github.com/adobe/miq-pages/lib/browser"
	"github.com/adobe/miq-pages/lib/log"
	"github.com/adobe/miq-pages/lib/monitoring"
	"github.com/adobe/miq-pages/lib/navigator"
	"github.com/adobe/miq-pages/lib/widget"
)

// DefaultTenant is the tag tenant shown in the Smart Management summary
const DefaultTenant = "My Company Tags"

// Tag flash messages
const (
	MsgTagsSaved     = "Tag edits were successfully saved"
	MsgTagsCancelled = "Tag Edit was cancelled by the user"
	MsgTagsReset     = "All changes have been reset"
)

// Tag is the category and the value assigned to the entity
type Tag struct {
	Category string
	Value    string
}

func (t Tag) String() string {
	return t.Category + ": " + t.Value
}

// ParseTag parses the "Category: Value" form of the summary
func ParseTag(s string) (Tag, error) {
	category, value, ok := strings.Cut(s, ":")
	if !ok {
		return Tag{}, fmt.Errorf("Tags: %q is not a tag", s)
	}
	return Tag{Category: strings.TrimSpace(category), Value: strings.TrimSpace(value)}, nil
}

// Taggable is the entity having "EditTags" and "Details" destinations, the details
// page shows the tags in the Smart Management summary
type Taggable interface {
	navigator.Navigable
	Appliance() *appliance.Appliance
}

// TagPageView is the tag assignment screen
type TagPageView struct {
	base.LoggedInPage

	Category    widget.Select
	Value       widget.Select
	Assignments widget.Table
	Save        widget.Button
	Reset       widget.Button
	Cancel      widget.Button
}

// NewTagPageView creates the tag assignment view
func NewTagPageView(a *appliance.Appliance) TagPageView {
	b := a.Browser
	return TagPageView{
		LoggedInPage: base.NewLoggedInPage(a),
		Category:     widget.NewBootstrapSelect(b, "tag_cat"),
		Value:        widget.NewBootstrapSelect(b, "tag_add"),
		Assignments:  widget.NewTable(b, "//div[@id='assignments_div']//table"),
		Save:         widget.NewButton(b, "Save"),
		Reset:        widget.NewButton(b, "Reset"),
		Cancel:       widget.NewButton(b, "Cancel"),
	}
}

// IsDisplayed implements navigator.View
func (v TagPageView) IsDisplayed() bool {
	return v.LoggedInAsCurrentUser() &&
		strings.Contains(v.Title.TextOrEmpty(), "Tag Assignment") &&
		v.Category.IsDisplayed()
}

func editTags(ctx context.Context, obj Taggable) (TagPageView, error) {
	view, err := obj.Appliance().NavigateTo(ctx, obj, "EditTags")
	if err != nil {
		return TagPageView{}, err
	}
	tv, ok := view.(TagPageView)
	if !ok {
		return TagPageView{}, fmt.Errorf("Tags: EditTags of %s leads to %T", obj.NavigationKind(), view)
	}
	return tv, nil
}

// AddTag assigns the tag to the entity. The edit is cancelled when the form is not
// changed by the tag.
func AddTag(ctx context.Context, obj Taggable, tag Tag, cancel, reset bool) (err error) {
	ctx, done := monitoring.StartOperation(ctx, obj.NavigationKind(), "add_tag",
		attribute.String("tag", tag.String()))
	defer func() { done(err) }()

	view, err := editTags(ctx, obj)
	if err != nil {
		return err
	}

	// Single value categories are marked with the star
	changed, err := view.Category.Fill(tag.Category + " *")
	if errors.Is(err, browser.ErrNoSuchElement) {
		changed, err = view.Category.Fill(tag.Category)
	}
	if err != nil {
		return fmt.Errorf("Tags: unable to select category %q: %w", tag.Category, err)
	}
	valueChanged, err := view.Value.Fill(tag.Value)
	if err != nil {
		return fmt.Errorf("Tags: unable to select value %q: %w", tag.Value, err)
	}
	if !changed && !valueChanged {
		log.WithFunc("common", "AddTag").Debug("Tag form is not changed, cancelling", "tag", tag)
		cancel = true
	}
	return tagsAction(ctx, obj, view, cancel, reset)
}

// RemoveTag removes the assigned tag from the entity
func RemoveTag(ctx context.Context, obj Taggable, tag Tag, cancel, reset bool) (err error) {
	ctx, done := monitoring.StartOperation(ctx, obj.NavigationKind(), "remove_tag",
		attribute.String("tag", tag.String()))
	defer func() { done(err) }()

	view, err := editTags(ctx, obj)
	if err != nil {
		return err
	}
	row, err := view.Assignments.Row(map[string]string{"Category": tag.Category + " *", "Assigned Value": tag.Value})
	if errors.Is(err, widget.ErrItemNotFound) {
		row, err = view.Assignments.Row(map[string]string{"Category": tag.Category, "Assigned Value": tag.Value})
	}
	if err != nil {
		return fmt.Errorf("Tags: assignment %q: %w", tag, err)
	}
	if err := view.Browser().Click(browser.Join(row.Locator, "./td[1]/*[1]")); err != nil {
		return fmt.Errorf("Tags: unable to remove %q: %w", tag, err)
	}
	return tagsAction(ctx, obj, view, cancel, reset)
}

func tagsAction(ctx context.Context, obj Taggable, view TagPageView, cancel, reset bool) error {
	metrics := monitoring.Default()
	if reset {
		if err := view.Reset.Click(); err != nil {
			return fmt.Errorf("Tags: unable to reset: %w", err)
		}
		if err := view.Flash.AssertMessage(MsgTagsReset, ""); err != nil {
			return err
		}
		metrics.RecordFlash(ctx, obj.NavigationKind(), widget.FlashWarning)
	}
	if cancel {
		if err := view.Cancel.Click(); err != nil {
			return fmt.Errorf("Tags: unable to cancel: %w", err)
		}
		if err := view.Flash.AssertMessage(MsgTagsCancelled, widget.FlashSuccess); err != nil {
			return err
		}
		metrics.RecordFlash(ctx, obj.NavigationKind(), widget.FlashSuccess)
	}
	if !reset && !cancel {
		if err := view.Save.Click(); err != nil {
			return fmt.Errorf("Tags: unable to save: %w", err)
		}
		if err := view.Flash.AssertMessage(MsgTagsSaved, widget.FlashSuccess); err != nil {
			return err
		}
		metrics.RecordFlash(ctx, obj.NavigationKind(), widget.FlashSuccess)
	}
	return nil
}

// GetTags returns the tags of the tenant shown on the details page, empty tenant
// means DefaultTenant
func GetTags(ctx context.Context, obj Taggable, tenant string) ([]Tag, error) {
	if tenant == "" {
		tenant = DefaultTenant
	}
	if _, err := obj.Appliance().NavigateTo(ctx, obj, "Details", navigator.Force()); err != nil {
		return nil, err
	}
	values, err := widget.NewSummaryTable(obj.Appliance().Browser, "Smart Management").GetValuesOf(tenant)
	if err != nil {
		return nil, fmt.Errorf("Tags: %w", err)
	}
	var tags []Tag
	for _, v := range values {
		if v == fmt.Sprintf("No %s have been assigned", tenant) {
			continue
		}
		tag, err := ParseTag(v)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
