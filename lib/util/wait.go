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

package util

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimedOut is returned by WaitFor when the condition was not met in time
var ErrTimedOut = errors.New("timed out")

// Wait describes the polling
type Wait struct {
	Timeout time.Duration // Overall time to wait, one check is done if zero
	Delay   time.Duration // Pause between the checks, 500ms if zero
	Message string        // What we wait for, used in the error
}

// WaitFor checks the condition until it returns true, timeout or context is done.
//
// Errors returned by the condition are not fatal: the last one is attached to the
// timeout error.
func WaitFor(ctx context.Context, w Wait, cond func() (bool, error)) error {
	if w.Delay <= 0 {
		w.Delay = 500 * time.Millisecond
	}
	stop := time.Now().Add(w.Timeout)

	var lastErr error
	for {
		ok, err := cond()
		if err == nil && ok {
			return nil
		}
		lastErr = err

		if !time.Now().Add(w.Delay).Before(stop) {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.Delay):
		}
	}

	msg := w.Message
	if msg == "" {
		msg = "condition"
	}
	if lastErr != nil {
		return fmt.Errorf("%s %w after %s: %v", msg, ErrTimedOut, w.Timeout, lastErr)
	}
	return fmt.Errorf("%s %w after %s", msg, ErrTimedOut, w.Timeout)
}
