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

// Package fuzzy provides approximate keyword matching based on edit distance.
package fuzzy

import (
	"strings"
	"unicode/utf8"
)

// Levenshtein returns the edit distance between a and b, where insertion,
// deletion and substitution of a single rune each cost 1.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Two rows of the DP table are enough.
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// MaxEdits returns the typo tolerance for a keyword: one edit for keywords of
// up to six runes, two for longer ones.
func MaxEdits(keyword string) int {
	if utf8.RuneCountInString(keyword) <= 6 {
		return 1
	}
	return 2
}

// Contains reports whether text contains keyword verbatim, or holds a
// whitespace-delimited word within maxEdits edits of it.
func Contains(text, keyword string, maxEdits int) bool {
	if strings.Contains(text, keyword) {
		return true
	}

	kwLen := utf8.RuneCountInString(keyword)
	for _, word := range strings.Fields(text) {
		diff := utf8.RuneCountInString(word) - kwLen
		if diff < 0 {
			diff = -diff
		}
		if diff > maxEdits {
			continue
		}
		if Levenshtein(word, keyword) <= maxEdits {
			return true
		}
	}
	return false
}

// Match is Contains with the tolerance chosen by MaxEdits.
func Match(text, keyword string) bool {
	return Contains(text, keyword, MaxEdits(keyword))
}
