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

package widget

import (
	"fmt"
	"strings"

	"github.com/adobe/miq-pages/lib/browser"
)

// Table is a html table with the header row
type Table struct {
	Widget
}

// NewTable creates the table by XPath locator of the table element
func NewTable(b browser.Driver, loc string) Table {
	return Table{Widget{b, loc}}
}

// Headers returns the column names, empty for the checkbox or icon columns
func (t Table) Headers() ([]string, error) {
	return t.Browser.Texts(t.child("./thead/tr/th"))
}

// RowCount returns amount of the body rows
func (t Table) RowCount() (int, error) {
	return t.Browser.Count(t.child("./tbody/tr"))
}

// Rows returns all the body rows
func (t Table) Rows() ([]TableRow, error) {
	count, err := t.RowCount()
	if err != nil {
		return nil, err
	}
	rows := make([]TableRow, count)
	for i := range rows {
		rows[i] = t.row(i + 1)
	}
	return rows, nil
}

func (t Table) row(index int) TableRow {
	return TableRow{Widget{t.Browser, t.child(fmt.Sprintf("./tbody/tr[%d]", index))}, t, index}
}

func (t Table) columnIndex(headers []string, column string) (int, error) {
	for i, h := range headers {
		if h == column {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("Table: column %q: %w", column, ErrColumnNotFound)
}

// Row returns the first row where every filtered column has the exact text
func (t Table) Row(filters map[string]string) (TableRow, error) {
	headers, err := t.Headers()
	if err != nil {
		return TableRow{}, err
	}
	for column := range filters {
		if _, err := t.columnIndex(headers, column); err != nil {
			return TableRow{}, err
		}
	}
	rows, err := t.Rows()
	if err != nil {
		return TableRow{}, err
	}
	for _, r := range rows {
		if r.matches(headers, filters) {
			return r, nil
		}
	}
	return TableRow{}, fmt.Errorf("Table: row %v: %w", filters, ErrItemNotFound)
}

// TableRow is a body row of the table
type TableRow struct {
	Widget
	table Table
	Index int
}

func (r TableRow) matches(headers []string, filters map[string]string) bool {
	for column, value := range filters {
		idx, err := r.table.columnIndex(headers, column)
		if err != nil {
			return false
		}
		text, err := r.Browser.Text(r.child(fmt.Sprintf("./td[%d]", idx)))
		if err != nil || strings.TrimSpace(text) != value {
			return false
		}
	}
	return true
}

// Cell returns text of the row cell in the column
func (r TableRow) Cell(column string) (string, error) {
	headers, err := r.table.Headers()
	if err != nil {
		return "", err
	}
	idx, err := r.table.columnIndex(headers, column)
	if err != nil {
		return "", err
	}
	text, err := r.Browser.Text(r.child(fmt.Sprintf("./td[%d]", idx)))
	return strings.TrimSpace(text), err
}

// Click clicks the first cell without the checkbox, which opens the entity
func (r TableRow) Click() error {
	return r.Browser.Click(r.child("./td[not(.//input)][1]"))
}

// Check selects the row checkbox
func (r TableRow) Check() error {
	return r.Browser.SetChecked(r.child("./td//input[@type='checkbox']"), true)
}

// Uncheck clears the row checkbox
func (r TableRow) Uncheck() error {
	return r.Browser.SetChecked(r.child("./td//input[@type='checkbox']"), false)
}

// SummaryTable is the two-column key-value table of the details page
type SummaryTable struct {
	Widget
	Title string
}

// NewSummaryTable locates the summary table by its header title
func NewSummaryTable(b browser.Driver, title string) SummaryTable {
	return SummaryTable{
		Widget{b, fmt.Sprintf("//table[%s and ./thead/tr/th[normalize-space(.)=%s]]",
			browser.HasClass("table"), browser.Quote(title))},
		title,
	}
}

func (s SummaryTable) fieldRow(field string) string {
	return s.child(fmt.Sprintf("./tbody/tr[./td[1][normalize-space(.)=%s]]", browser.Quote(field)))
}

// Fields returns the keys of the table
func (s SummaryTable) Fields() ([]string, error) {
	return s.Browser.Texts(s.child("./tbody/tr/td[1]"))
}

// GetTextOf returns the value of the field
func (s SummaryTable) GetTextOf(field string) (string, error) {
	row := s.fieldRow(field)
	if !browser.Exists(s.Browser, row) {
		return "", fmt.Errorf("SummaryTable %q: field %q: %w", s.Title, field, ErrItemNotFound)
	}
	text, err := s.Browser.Text(row + "/td[2]")
	return strings.TrimSpace(text), err
}

// ClickAt clicks the row of the field, it usually leads to the related entities
func (s SummaryTable) ClickAt(field string) error {
	row := s.fieldRow(field)
	if !browser.Exists(s.Browser, row) {
		return fmt.Errorf("SummaryTable %q: field %q: %w", s.Title, field, ErrItemNotFound)
	}
	return s.Browser.Click(row + "/td[2]")
}

// GetValuesOf returns the list items of the field value, or the value itself when
// it's a plain text. Empty value gives no items.
func (s SummaryTable) GetValuesOf(field string) ([]string, error) {
	row := s.fieldRow(field)
	if !browser.Exists(s.Browser, row) {
		return nil, fmt.Errorf("SummaryTable %q: field %q: %w", s.Title, field, ErrItemNotFound)
	}
	items, err := s.Browser.Texts(row + "/td[2]//li")
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		for i := range items {
			items[i] = strings.TrimSpace(items[i])
		}
		return items, nil
	}
	text, err := s.Browser.Text(row + "/td[2]")
	if err != nil || strings.TrimSpace(text) == "" {
		return nil, err
	}
	return []string{strings.TrimSpace(text)}, nil
}
