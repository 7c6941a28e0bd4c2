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

package tfidf

import (
	"strings"
	"unicode/utf8"
)

// MinTokenLength is the exclusive lower bound on token length, in runes.
const MinTokenLength = 2

// accented letters kept by the tokenizer in addition to [a-z0-9]
const accented = "àâäçéèêëïîôùûüÿœæ"

// French and English function words ignored by the vectorizer.
// Entries of MinTokenLength runes or fewer are filtered by length anyway and
// are listed for completeness.
var stopWords = map[string]bool{
	// French
	"le": true, "la": true, "les": true, "un": true, "une": true, "des": true,
	"du": true, "de": true, "ce": true, "cet": true, "cette": true, "et": true,
	"ou": true, "mais": true, "donc": true, "car": true, "ni": true, "or": true,
	"a": true, "à": true, "en": true, "pour": true, "sur": true, "avec": true,
	"sans": true, "est": true, "sont": true, "il": true, "elle": true, "ils": true,
	"elles": true, "que": true, "qui": true, "quoi": true, "dont": true, "où": true,
	"plus": true, "moins": true, "très": true, "bien": true, "bon": true,
	"aux": true, "par": true, "pas": true, "nous": true, "vous": true, "leur": true,
	"leurs": true, "son": true, "ses": true, "sa": true, "mon": true, "mes": true,
	// English
	"the": true, "and": true, "for": true, "with": true, "this": true, "that": true,
	"from": true, "are": true, "was": true, "were": true, "you": true, "your": true,
	"not": true, "but": true, "have": true, "has": true, "its": true, "into": true,
	"our": true, "than": true, "then": true, "these": true, "those": true,
}

// IsStopWord reports whether a lowercase token is ignored by the vectorizer.
func IsStopWord(token string) bool {
	return stopWords[token]
}

func isTokenRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune(accented, r)
}

// Tokenize lowercases text, turns every character outside [a-z0-9] and the
// supported accented letters into a separator, and returns the remaining
// words longer than MinTokenLength runes that are not stop words.
// Empty or unparseable text yields an empty slice.
func Tokenize(text string) []string {
	if text == "" {
		return []string{}
	}

	cleaned := strings.Map(func(r rune) rune {
		if isTokenRune(r) {
			return r
		}
		return ' '
	}, strings.ToLower(text))

	words := strings.Fields(cleaned)
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if utf8.RuneCountInString(word) <= MinTokenLength || stopWords[word] {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}
