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

// Package tfidf converts free text into fixed-length TF-IDF vectors.
//
// Fitting is split in two phases. A Builder accumulates document
// frequencies one document at a time; Build freezes that state into a
// Vectorizer whose vocabulary and IDF weights can no longer change:
//
//	b := tfidf.NewBuilder()
//	for _, doc := range corpus {
//	    b.Add(doc)
//	}
//	v := b.Build()
//	vec, err := v.Transform("wireless headphones")
//
// Vocabulary indices are assigned in first-seen order across the corpus,
// so a given ordered corpus always yields the same vectors. IDF is
// ln(N / (1 + df)) without further smoothing; terms present in nearly every
// document get a weight at or below zero.
//
// A Vectorizer is safe for concurrent use once built.
package tfidf
