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
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// DotSerialize flattens nested maps into "a.b.c" keys with the values as strings
func DotSerialize(prefix string, in any) map[string]string {
	out := make(map[string]string)

	v := reflect.ValueOf(in)
	if v.Kind() != reflect.Map {
		out[prefix] = fmt.Sprintf("%v", in)
		return out
	}
	for _, k := range v.MapKeys() {
		key := fmt.Sprintf("%v", k.Interface())
		if prefix != "" {
			key = prefix + "." + key
		}
		for dk, dv := range DotSerialize(key, v.MapIndex(k).Interface()) {
			out[dk] = dv
		}
	}
	return out
}

// Deflatten turns dotted keys into nested maps: {"a.b": 1, "c": 2} becomes
// {"a": {"b": 1}, "c": 2}. Values are kept as-is, existing nested maps are merged.
// Keys are processed in sorted order, so on conflict like {"a": 1, "a.b": 2} the
// dotted key always wins.
func Deflatten(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for _, key := range slices.Sorted(maps.Keys(in)) {
		val := in[key]
		if sub, ok := val.(map[string]any); ok {
			val = Deflatten(sub)
		}
		parts := strings.Split(key, ".")
		cur := out
		for _, part := range parts[:len(parts)-1] {
			next, ok := cur[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				cur[part] = next
			}
			cur = next
		}
		last := parts[len(parts)-1]
		if sub, ok := val.(map[string]any); ok {
			if existing, ok := cur[last].(map[string]any); ok {
				for k, v := range sub {
					existing[k] = v
				}
				continue
			}
		}
		cur[last] = val
	}
	return out
}
