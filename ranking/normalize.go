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

package ranking

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minKeywordLength is the exclusive lower bound, in runes, on query words
// that take part in fuzzy matching.
const minKeywordLength = 2

// normalize lowercases text, removes everything but letters, digits and
// whitespace, and trims the result.
func normalize(text string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return r
		}
		return -1
	}, text))
}

// keywords returns the words of a normalized query long enough to be
// matched fuzzily.
func keywords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) > minKeywordLength {
			out = append(out, w)
		}
	}
	return out
}
