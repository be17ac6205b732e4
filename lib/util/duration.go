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
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration readable from config files as "10s", "1.5m" or "2d"
type Duration time.Duration

// Additional units in hours
var unitMap = map[string]Duration{
	"d": 24,
	"D": 24,
	"w": 7 * 24,
	"W": 7 * 24,
}

var durationPartRe = regexp.MustCompile(`(\d*\.\d+|\d+)[^\d.]*`)

// ParseDuration parses Go duration string extended with d(D) and w(W) units
func ParseDuration(s string) (Duration, error) {
	var d Duration
	err := d.StoreStringDuration(s)
	return d, err
}

// Duration returns the value as time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// StoreStringDuration parses a duration string into the duration
// Example: "10d", "-1.5w" or "1w2d3h"
func (d *Duration) StoreStringDuration(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("empty duration")
	}
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	parts := durationPartRe.FindAllString(s, -1)
	if len(parts) == 0 || strings.Join(parts, "") != s {
		return fmt.Errorf("invalid duration %q", s)
	}
	var sum Duration
	for _, part := range parts {
		var hours Duration = 1
		for unit, h := range unitMap {
			if strings.HasSuffix(part, unit) {
				part = strings.TrimSuffix(part, unit) + "h"
				hours = h
				break
			}
		}
		dur, err := time.ParseDuration(part)
		if err != nil {
			return err
		}
		sum += Duration(dur) * hours
	}
	if neg {
		sum = -sum
	}
	*d = sum
	return nil
}

// MarshalJSON represents Duration as JSON string
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON parses JSON string or nanoseconds number as Duration
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.StoreStringDuration(value)
	}
	return fmt.Errorf("incorrect duration type %T", v)
}

// MarshalYAML represents Duration as YAML string
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML parses YAML scalar as Duration, plain integers are seconds
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration should be a scalar", value.Line)
	}
	var secs int64
	if err := value.Decode(&secs); err == nil {
		*d = Duration(time.Duration(secs) * time.Second)
		return nil
	}
	if err := d.StoreStringDuration(value.Value); err != nil {
		return fmt.Errorf("line %d: %v", value.Line, err)
	}
	return nil
}
