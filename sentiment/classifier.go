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

package sentiment

import (
	"math"
	"strings"
	"sync"
	"unicode"

	"github.com/poiesic/catalogrank/core"
)

// classStats holds the counts accumulated for one class.
type classStats struct {
	words map[string]int
	total int
	docs  int
}

func newClassStats() classStats {
	return classStats{words: make(map[string]int)}
}

// logLikelihood returns ln P(token | class) with add-one smoothing.
func (s *classStats) logLikelihood(token string, vocabSize int) float64 {
	return math.Log(float64(s.words[token]+1) / float64(s.total+vocabSize))
}

// Classifier is a two-class multinomial Naive Bayes model.
// It is safe for concurrent use.
type Classifier struct {
	mu         sync.RWMutex
	positive   classStats
	negative   classStats
	vocabulary map[string]struct{}
}

// NewClassifier returns a classifier trained on the built-in seed corpus.
func NewClassifier() *Classifier {
	c := NewUntrainedClassifier()
	for _, text := range seedPositive {
		c.Train(text, true)
	}
	for _, text := range seedNegative {
		c.Train(text, false)
	}
	return c
}

// NewUntrainedClassifier returns a classifier with no training data.
// Predict returns 0 until at least one example has been trained.
func NewUntrainedClassifier() *Classifier {
	return &Classifier{
		positive:   newClassStats(),
		negative:   newClassStats(),
		vocabulary: make(map[string]struct{}),
	}
}

// Train adds one labeled example. Empty text is ignored.
func (c *Classifier) Train(text string, positive bool) {
	if text == "" {
		return
	}
	tokens := tokenize(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	stats := &c.negative
	if positive {
		stats = &c.positive
	}
	stats.docs++
	for _, token := range tokens {
		stats.words[token]++
		stats.total++
		c.vocabulary[token] = struct{}{}
	}
}

// Predict returns a sentiment score in (-1, 1): positive values lean
// positive, negative values lean negative. Empty text scores 0.
func (c *Classifier) Predict(text string) float64 {
	if text == "" {
		return 0
	}
	tokens := tokenize(text)

	c.mu.RLock()
	defer c.mu.RUnlock()

	totalDocs := c.positive.docs + c.negative.docs
	if totalDocs == 0 || c.positive.docs == 0 || c.negative.docs == 0 {
		return 0
	}
	vocabSize := len(c.vocabulary)

	logPos := math.Log(float64(c.positive.docs) / float64(totalDocs))
	logNeg := math.Log(float64(c.negative.docs) / float64(totalDocs))
	for _, token := range tokens {
		if _, known := c.vocabulary[token]; !known {
			continue
		}
		logPos += c.positive.logLikelihood(token, vocabSize)
		logNeg += c.negative.logLikelihood(token, vocabSize)
	}

	return squash(logPos - logNeg)
}

// Score returns the mean predicted sentiment over the bodies of reviews.
// Reviews without a body are skipped; with none left the score is 0.
func (c *Classifier) Score(reviews []core.Review) float64 {
	var sum float64
	var n int
	for _, r := range reviews {
		if strings.TrimSpace(r.Body) == "" {
			continue
		}
		sum += c.Predict(r.Body)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// VocabularySize returns the number of distinct tokens seen in training.
func (c *Classifier) VocabularySize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vocabulary)
}

// Documents returns the number of positive and negative training examples.
func (c *Classifier) Documents() (positive, negative int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.positive.docs, c.negative.docs
}

// squash maps a log-odds difference onto (-1, 1).
func squash(x float64) float64 {
	return 2/(1+math.Exp(-x)) - 1
}

// tokenize drops every rune that is neither a letter nor whitespace,
// lowercases the rest and splits on whitespace.
func tokenize(text string) []string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, text)
	return strings.Fields(clean)
}
