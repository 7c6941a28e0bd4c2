package similarity

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"scaled", []float64{1, 2, 3}, []float64{2, 4, 6}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 1}, []float64{-1, -1}, -1},
		{"zero left", []float64{0, 0, 0}, []float64{1, 2, 3}, 0},
		{"zero right", []float64{1, 2, 3}, []float64{0, 0, 0}, 0},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}, 0},
		{"both empty", []float64{}, []float64{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-12)
		})
	}
}

func TestCosine_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))

	randomVector := func(n int) []float64 {
		v := make([]float64, n)
		for i := range v {
			if rng.IntN(3) > 0 {
				v[i] = rng.Float64() * 4
			}
		}
		return v
	}

	for i := 0; i < 200; i++ {
		n := 1 + rng.IntN(20)
		a := randomVector(n)
		b := randomVector(n)

		if Norm(a) > 0 {
			assert.InDelta(t, 1.0, Cosine(a, a), 1e-9, "cosine(v, v) must be 1")
		}
		assert.InDelta(t, Cosine(a, b), Cosine(b, a), 1e-12, "cosine must be symmetric")

		c := Cosine(a, b)
		assert.GreaterOrEqual(t, c, 0.0, "non-negative weights give non-negative similarity")
		assert.LessOrEqual(t, c, 1.0+1e-12)
	}
}

func TestNorm(t *testing.T) {
	assert.InDelta(t, 5.0, Norm([]float64{3, 4}), 1e-12)
	assert.Zero(t, Norm(nil))
}
