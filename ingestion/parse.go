// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ingestion

import (
	"math"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// UnknownCategory labels items whose source path is empty.
const UnknownCategory = "unknown"

// DateLayout is the day-first date format used by review exports.
const DateLayout = "02/01/2006"

const sourcePrefix = "cdiscount_"

// euroPrice matches "1250,00€" once whitespace has been removed.
var euroPrice = regexp.MustCompile(`([0-9]+),([0-9]+)\s*€`)

// ParsePrice parses a European formatted price such as "1 250,00 €".
// Spaces (including non-breaking ones) are ignored. Anything that cannot be
// read as a finite, non-negative number yields 0.
func ParsePrice(raw string) float64 {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) { // includes U+00A0
			return -1
		}
		return r
	}, raw)
	if compact == "" {
		return 0
	}

	if m := euroPrice.FindStringSubmatch(compact); m != nil {
		if v, err := strconv.ParseFloat(m[1]+"."+m[2], 64); err == nil {
			return v
		}
	}

	fallback := strings.ReplaceAll(compact, "€", "")
	fallback = strings.ReplaceAll(fallback, ",", ".")
	v, err := strconv.ParseFloat(strings.TrimSpace(fallback), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseRating parses a rating written with either decimal separator and
// clamps it to [0, 5]. Unparseable input yields 0.
func ParseRating(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(raw, ",", ".")), 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(5, v))
}

// ParseDate parses a dd/MM/yyyy date. The boolean is false when raw is empty
// or not a valid date.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CategoryFromPath derives a category from a source file name:
// "data/cdiscount_smartphones.csv" becomes "smartphones".
func CategoryFromPath(name string) string {
	if name == "" {
		return UnknownCategory
	}
	// Exports produced on Windows keep backslash separators.
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	base = strings.ReplaceAll(base, ".csv", "")
	return strings.TrimPrefix(base, sourcePrefix)
}

// CleanText drops control characters, collapses whitespace runs into single
// spaces and trims the result.
func CleanText(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
