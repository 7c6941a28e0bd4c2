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

// Package similarity scores how close two vectors are.
package similarity

import "math"

// Cosine returns dot(a, b) / (|a| * |b|).
// Vectors of different lengths are incompatible and score 0, as does any
// pair where either vector has zero norm.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	normA, normB := Norm(a), Norm(b)
	if normA == 0 || normB == 0 {
		return 0
	}

	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot / (normA * normB)
}

// Norm returns the Euclidean length of v.
func Norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
