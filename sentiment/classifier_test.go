package sentiment

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/catalogrank/core"
)

func TestNewClassifier_Seeded(t *testing.T) {
	c := NewClassifier()

	pos, neg := c.Documents()
	assert.Equal(t, 15, pos)
	assert.Equal(t, 15, neg)
	assert.Positive(t, c.VocabularySize())
}

func TestPredict(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name string
		text string
		sign int
	}{
		{"positive battery", "amazing battery life", 1},
		{"positive quality", "Excellent quality, I love it!", 1},
		{"negative shipping", "slow shipping arrived damaged", -1},
		{"negative battery", "terrible battery drains", -1},
		{"negative garbage", "Waste of money, garbage.", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Predict(tt.text)
			assert.Greater(t, got, -1.0)
			assert.Less(t, got, 1.0)
			if tt.sign > 0 {
				assert.Positive(t, got)
			} else {
				assert.Negative(t, got)
			}
		})
	}
}

func TestPredict_EmptyText(t *testing.T) {
	c := NewClassifier()
	assert.Equal(t, 0.0, c.Predict(""))
}

func TestPredict_UnknownWordsKeepPrior(t *testing.T) {
	c := NewClassifier()
	// Equal priors and no known tokens give a zero log-odds difference.
	assert.InDelta(t, 0.0, c.Predict("zzzz qqqq"), 1e-12)
}

func TestPredict_Untrained(t *testing.T) {
	c := NewUntrainedClassifier()
	assert.Equal(t, 0.0, c.Predict("amazing"))

	c.Train("amazing", true)
	assert.Equal(t, 0.0, c.Predict("amazing"), "a single class has no odds to compare")
}

func TestTrain_ShiftsPrediction(t *testing.T) {
	c := NewClassifier()
	before := c.Predict("sturdy hinge")

	for i := 0; i < 5; i++ {
		c.Train("sturdy hinge holds well", true)
	}
	after := c.Predict("sturdy hinge")

	assert.Greater(t, after, before)
	assert.Positive(t, after)
}

func TestTrain_IgnoresEmptyText(t *testing.T) {
	c := NewUntrainedClassifier()
	c.Train("", true)

	pos, neg := c.Documents()
	assert.Zero(t, pos)
	assert.Zero(t, neg)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"its", "great", "a"}, tokenize("It's GREAT, 10/10 a+"))
	assert.Empty(t, tokenize("  123 !!! "))
	assert.Equal(t, []string{"très", "bien"}, tokenize("Très bien"))
}

func TestScore(t *testing.T) {
	c := NewClassifier()

	reviews := []core.Review{
		{Author: "a", Rating: 5, Body: "amazing battery life"},
		{Author: "b", Rating: 5, Body: "   "},
		{Author: "c", Rating: 4, Body: "excellent quality product"},
	}
	got := c.Score(reviews)
	want := (c.Predict("amazing battery life") + c.Predict("excellent quality product")) / 2
	assert.InDelta(t, want, got, 1e-12)
	assert.Positive(t, got)

	assert.Equal(t, 0.0, c.Score(nil))
}

func TestClassifier_ConcurrentUse(t *testing.T) {
	c := NewClassifier()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Train("solid build quality", true)
		}()
		go func() {
			defer wg.Done()
			_ = c.Predict("terrible battery")
		}()
	}
	wg.Wait()

	pos, _ := c.Documents()
	require.Equal(t, 23, pos)
}
