package tfidf

import (
	"math/rand/v2"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{}},
		{"only punctuation", "!!! ... ???", []string{}},
		{"lowercases", "Samsung GALAXY", []string{"samsung", "galaxy"}},
		{"drops short tokens", "an s23 is ok", []string{"s23"}},
		{"drops french stop words", "le téléphone est très bien pour les jeux", []string{"téléphone", "jeux"}},
		{"drops english stop words", "the phone with the best screen", []string{"phone", "best", "screen"}},
		{"splits on punctuation", "écran-oled,128go", []string{"écran", "oled", "128go"}},
		{"keeps accented letters", "Clavier FRANÇAIS rétroéclairé", []string{"clavier", "français", "rétroéclairé"}},
		{"drops foreign letters", "naïve straße", []string{"naïve", "stra"}},
		{"repeated tokens kept", "phone phone phone", []string{"phone", "phone", "phone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestTokenize_NeverYieldsShortOrStopTokens(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	alphabet := []rune("abcdeéèàz019 -.,'LEla")
	words := []string{"le", "la", "les", "des", "très", "the", "and", "phone", "écran", "ok", "x"}

	for i := 0; i < 500; i++ {
		var sb strings.Builder
		for j := 0; j < 40; j++ {
			if rng.IntN(3) == 0 {
				sb.WriteString(words[rng.IntN(len(words))])
				sb.WriteRune(' ')
				continue
			}
			sb.WriteRune(alphabet[rng.IntN(len(alphabet))])
		}
		for _, token := range Tokenize(sb.String()) {
			assert.Greater(t, utf8.RuneCountInString(token), MinTokenLength, "token %q", token)
			assert.False(t, IsStopWord(token), "token %q", token)
		}
	}
}

func TestIsStopWord(t *testing.T) {
	assert.True(t, IsStopWord("les"))
	assert.True(t, IsStopWord("très"))
	assert.True(t, IsStopWord("the"))
	assert.False(t, IsStopWord("phone"))
}
