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
	"math"
	"slices"
)

// Builder accumulates vocabulary and document frequencies.
// It is not safe for concurrent use.
type Builder struct {
	index map[string]int
	terms []string
	df    []int
	docs  int
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		index: make(map[string]int),
	}
}

// Add scans one document. Each distinct token increments its document
// frequency once; unseen tokens are appended to the vocabulary.
func (b *Builder) Add(doc string) {
	b.docs++

	seen := make(map[string]bool)
	for _, token := range Tokenize(doc) {
		if seen[token] {
			continue
		}
		seen[token] = true

		idx, ok := b.index[token]
		if !ok {
			idx = len(b.terms)
			b.index[token] = idx
			b.terms = append(b.terms, token)
			b.df = append(b.df, 0)
		}
		b.df[idx]++
	}
}

// Documents returns the number of documents added so far.
func (b *Builder) Documents() int {
	return b.docs
}

// Build computes IDF weights and returns a frozen Vectorizer.
// The builder may keep accepting documents afterwards; vectorizers already
// built are unaffected.
func (b *Builder) Build() *Vectorizer {
	v := &Vectorizer{
		index:   make(map[string]int, len(b.terms)),
		terms:   slices.Clone(b.terms),
		idf:     make([]float64, len(b.terms)),
		docs:    b.docs,
		trained: true,
	}
	n := float64(b.docs)
	for i, term := range b.terms {
		v.index[term] = i
		v.idf[i] = math.Log(n / float64(1+b.df[i]))
	}
	return v
}

// Fit builds a Vectorizer from an ordered corpus in one call.
func Fit(corpus []string) *Vectorizer {
	b := NewBuilder()
	for _, doc := range corpus {
		b.Add(doc)
	}
	return b.Build()
}

// Vectorizer maps text onto the vocabulary learned at fit time.
// It has no mutators; the zero value is an untrained vectorizer.
type Vectorizer struct {
	index   map[string]int
	terms   []string
	idf     []float64
	docs    int
	trained bool
}

// Trained reports whether the vectorizer came out of a fit.
func (v *Vectorizer) Trained() bool {
	return v != nil && v.trained
}

// Size returns the vocabulary size, which is also the length of every vector.
func (v *Vectorizer) Size() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

// Documents returns the number of documents the vectorizer was fitted on.
func (v *Vectorizer) Documents() int {
	if v == nil {
		return 0
	}
	return v.docs
}

// Terms returns the vocabulary in index order.
func (v *Vectorizer) Terms() []string {
	if v == nil {
		return nil
	}
	return slices.Clone(v.terms)
}

// Index returns the vector position of a term.
func (v *Vectorizer) Index(term string) (int, bool) {
	if v == nil {
		return 0, false
	}
	idx, ok := v.index[term]
	return idx, ok
}

// IDF returns the inverse document frequency of a term.
func (v *Vectorizer) IDF(term string) (float64, bool) {
	idx, ok := v.Index(term)
	if !ok {
		return 0, false
	}
	return v.idf[idx], true
}

// Transform returns the TF-IDF vector of text. Term frequency is the count
// of a token divided by the total number of tokens in text, including tokens
// outside the vocabulary, which are otherwise ignored.
// Empty text yields an all-zero vector.
func (v *Vectorizer) Transform(text string) ([]float64, error) {
	if !v.Trained() {
		return nil, ErrModelNotTrained
	}

	vector := make([]float64, len(v.terms))
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return vector, nil
	}

	counts := make(map[int]int)
	for _, token := range tokens {
		if idx, ok := v.index[token]; ok {
			counts[idx]++
		}
	}

	total := float64(len(tokens))
	for idx, count := range counts {
		vector[idx] = float64(count) / total * v.idf[idx]
	}
	return vector, nil
}
