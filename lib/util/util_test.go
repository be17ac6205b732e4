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
	"reflect"
	"strings"
	"testing"
	"time"
)

func Test_wait_for_success(t *testing.T) {
	calls := 0
	err := WaitFor(context.Background(), Wait{Timeout: time.Second, Delay: time.Millisecond}, func() (bool, error) {
		calls++
		if calls < 3 {
			return false, errors.New("not yet")
		}
		return true, nil
	})
	if err != nil || calls != 3 {
		t.Fatalf("WaitFor() = %v after %d calls; want: nil after 3", err, calls)
	}
}

func Test_wait_for_timeout(t *testing.T) {
	err := WaitFor(context.Background(), Wait{Timeout: 20 * time.Millisecond, Delay: 5 * time.Millisecond, Message: "dialog title"}, func() (bool, error) {
		return false, errors.New("element is hidden")
	})
	if !errors.Is(err, ErrTimedOut) {
		t.Fatalf("WaitFor() = %v; want: ErrTimedOut", err)
	}
	if !strings.Contains(err.Error(), "dialog title") || !strings.Contains(err.Error(), "element is hidden") {
		t.Fatalf("WaitFor() error %q should contain message and last error", err)
	}
}

func Test_wait_for_single_check(t *testing.T) {
	calls := 0
	err := WaitFor(context.Background(), Wait{}, func() (bool, error) {
		calls++
		return false, nil
	})
	if !errors.Is(err, ErrTimedOut) || calls != 1 {
		t.Fatalf("WaitFor() = %v after %d calls; want: ErrTimedOut after 1", err, calls)
	}
}

func Test_wait_for_context(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := WaitFor(ctx, Wait{Timeout: time.Minute, Delay: 10 * time.Millisecond}, func() (bool, error) {
		return false, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("WaitFor() = %v; want: context.Canceled", err)
	}
}

func Test_deflatten(t *testing.T) {
	in := map[string]any{
		"service_name":     "svc",
		"vm.name":          "vm-1",
		"vm.size":          "Standard_A0",
		"vm":               map[string]any{"user": "admin"},
		"param.deep.value": 1,
	}
	want := map[string]any{
		"service_name": "svc",
		"vm":           map[string]any{"name": "vm-1", "size": "Standard_A0", "user": "admin"},
		"param":        map[string]any{"deep": map[string]any{"value": 1}},
	}
	if out := Deflatten(in); !reflect.DeepEqual(out, want) {
		t.Fatalf("Deflatten() = %v; want: %v", out, want)
	}
}

func Test_deflatten_conflict(t *testing.T) {
	want := map[string]any{"a": map[string]any{"b": 2, "c": 3}, "d": 4}
	// Map order is random, the result must not depend on it
	for i := 0; i < 50; i++ {
		in := map[string]any{"a": 1, "a.b": 2, "a.c": 3, "d": 4}
		if out := Deflatten(in); !reflect.DeepEqual(out, want) {
			t.Fatalf("Deflatten() = %v; want: %v", out, want)
		}
	}
}

func Test_dot_serialize_roundtrip(t *testing.T) {
	flat := DotSerialize("", map[string]any{
		"vm":   map[string]any{"name": "vm-1", "cpu": 2},
		"mode": "Complete",
	})
	want := map[string]string{"vm.name": "vm-1", "vm.cpu": "2", "mode": "Complete"}
	if !reflect.DeepEqual(flat, want) {
		t.Fatalf("DotSerialize() = %v; want: %v", flat, want)
	}

	in := make(map[string]any, len(flat))
	for k, v := range flat {
		in[k] = v
	}
	nested := Deflatten(in)
	if vm, ok := nested["vm"].(map[string]any); !ok || vm["name"] != "vm-1" {
		t.Fatalf("Deflatten(DotSerialize()) = %v; want nested vm", nested)
	}
}

func Test_random_name(t *testing.T) {
	a, b := RandomName("flavor"), RandomName("flavor")
	if a == b {
		t.Fatalf("RandomName() returned the same value twice: %s", a)
	}
	if !strings.HasPrefix(a, "flavor-") || len(a) != len("flavor-")+8 {
		t.Fatalf("RandomName() = %s; want: flavor-xxxxxxxx", a)
	}
}
