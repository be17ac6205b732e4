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

// Package version compares appliance versions and picks version-specific values
package version

import (
	"fmt"
	"sort"

	goversion "github.com/hashicorp/go-version"
)

// Lowest is a Pick key matching any version
const Lowest = "lowest"

// Version of the appliance, like 5.8.3.2 or 5.9
type Version struct {
	v *goversion.Version
}

// Parse parses the version string
func Parse(s string) (Version, error) {
	v, err := goversion.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("Version: Unable to parse %q: %v", s, err)
	}
	return Version{v: v}, nil
}

// MustParse parses the version or panics, useful for constants
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero returns true if version is not set
func (v Version) IsZero() bool {
	return v.v == nil
}

func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.Original()
}

// Compare returns -1, 0 or 1. Not set version is lower than anything.
func (v Version) Compare(o Version) int {
	switch {
	case v.v == nil && o.v == nil:
		return 0
	case v.v == nil:
		return -1
	case o.v == nil:
		return 1
	}
	return v.v.Compare(o.v)
}

// LessThan compares with the version string, unparseable string is considered lowest
func (v Version) LessThan(s string) bool {
	o, err := Parse(s)
	if err != nil {
		return false
	}
	return v.Compare(o) < 0
}

// AtLeast returns true when the version is equal or above s
func (v Version) AtLeast(s string) bool {
	o, err := Parse(s)
	if err != nil {
		return true
	}
	return v.Compare(o) >= 0
}

// Pick returns the value for the highest key not above v. Lowest key matches any
// version. The second return value is false when no key fits.
func Pick[T any](v Version, values map[string]T) (T, bool) {
	type entry struct {
		ver Version
		val T
	}
	var entries []entry
	var lowest *T
	for k, val := range values {
		if k == Lowest {
			val := val
			lowest = &val
			continue
		}
		kv, err := Parse(k)
		if err != nil {
			continue
		}
		entries = append(entries, entry{kv, val})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ver.Compare(entries[j].ver) > 0
	})
	for _, e := range entries {
		if v.Compare(e.ver) >= 0 {
			return e.val, true
		}
	}
	if lowest != nil {
		return *lowest, true
	}
	var zero T
	return zero, false
}

// MustPick is Pick that expects the values to have Lowest key
func MustPick[T any](v Version, values map[string]T) T {
	val, ok := Pick(v, values)
	if !ok {
		panic(fmt.Sprintf("Version: No value to pick for %q", v))
	}
	return val
}
