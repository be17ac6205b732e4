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
	"errors"
	"fmt"
	"strings"

	"github.com/adobe/miq-pages/lib/browser"
)

var (
	// ErrFlashError is returned when the page shows an error flash message
	ErrFlashError = errors.New("flash error message")

	// ErrFlashMessageNotFound is returned when the expected flash message is not shown
	ErrFlashMessageNotFound = errors.New("flash message not found")
)

// Flash message types
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashError   = "error"
)

var flashClasses = map[string]string{
	"alert-success": FlashSuccess,
	"alert-info":    FlashInfo,
	"alert-warning": FlashWarning,
	"alert-danger":  FlashError,
}

// FlashMessage is a single message of the flash area
type FlashMessage struct {
	Text string
	Type string
}

func (m FlashMessage) String() string {
	return fmt.Sprintf("[%s] %s", m.Type, m.Text)
}

// Flash is the area of notification messages of the page
type Flash struct {
	Widget
}

// NewFlash locates the flash area
func NewFlash(b browser.Driver) Flash {
	return Flash{Widget{b, "//div[@id='flash_msg_div']"}}
}

// Messages returns all the shown messages
func (f Flash) Messages() ([]FlashMessage, error) {
	loc := f.child(fmt.Sprintf(".//div[%s]", browser.HasClass("alert")))
	texts, err := f.Browser.Texts(loc)
	if err != nil {
		return nil, err
	}
	out := make([]FlashMessage, 0, len(texts))
	for i, text := range texts {
		msg := FlashMessage{Text: strings.TrimSpace(text), Type: FlashInfo}
		classes, _, err := f.Browser.Attribute(browser.Nth(loc, i+1), "class")
		if err != nil {
			return nil, err
		}
		for _, c := range strings.Fields(classes) {
			if t, ok := flashClasses[c]; ok {
				msg.Type = t
				break
			}
		}
		out = append(out, msg)
	}
	return out, nil
}

// AssertNoError returns error when any of the messages is an error
func (f Flash) AssertNoError() error {
	msgs, err := f.Messages()
	if err != nil {
		return err
	}
	var errs []string
	for _, m := range msgs {
		if m.Type == FlashError {
			errs = append(errs, m.Text)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("Flash: %w: %s", ErrFlashError, strings.Join(errs, "; "))
	}
	return nil
}

// AssertMessage checks the message with exact text and type is shown, empty type
// matches any
func (f Flash) AssertMessage(text, msgType string) error {
	msgs, err := f.Messages()
	if err != nil {
		return err
	}
	for _, m := range msgs {
		if m.Text == text && (msgType == "" || m.Type == msgType) {
			return nil
		}
	}
	return fmt.Errorf("Flash: [%s] %q in %v: %w", msgType, text, msgs, ErrFlashMessageNotFound)
}
