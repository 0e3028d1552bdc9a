package sentifold

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mpqaSample = `type=weaksubj len=1 word1=abandoned pos1=adj stemmed1=n priorpolarity=negative
type=strongsubj len=1 word1=Superb pos1=adj stemmed1=n priorpolarity=positive

type=weaksubj len=1 word1=abide pos1=verb stemmed1=y priorpolarity=neutral
`

func TestLoadSubjectivityLexicon(t *testing.T) {
	lex, err := LoadSubjectivityLexicon(strings.NewReader(mpqaSample))
	require.NoError(t, err)
	assert.Equal(t, 3, lex.Len())

	entry, ok := lex.Lookup("abandoned")
	require.True(t, ok)
	assert.Equal(t, LexiconEntry{Word: "abandoned", Strength: WeakSubjective, POS: "adj", Polarity: NegativePolarity}, entry)

	entry, ok = lex.Lookup("SUPERB")
	require.True(t, ok, "lookup ignores case")
	assert.Equal(t, StrongSubjective, entry.Strength)
	assert.Equal(t, 2, entry.weight())

	entry, ok = lex.Lookup("abide")
	require.True(t, ok)
	assert.True(t, entry.Stemmed)

	_, ok = lex.Lookup("table")
	assert.False(t, ok)
}

func TestLoadSubjectivityLexiconMalformed(t *testing.T) {
	input := "type=weaksubj len=1 word1=abandoned priorpolarity=negative\ntype=weaksubj len=1 pos1=adj\n"
	_, err := LoadSubjectivityLexicon(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

const liwcSample = `%
125	affect
126	posemo
127	negemo
%
happ*	125	126
hurt*	125	127
nice	126
sad	127
like	(02 134)126
`

func TestLoadPsychLexicon(t *testing.T) {
	lex, err := LoadPsychLexicon(strings.NewReader(liwcSample))
	require.NoError(t, err)
	assert.Equal(t, 4, lex.Len())

	tests := []struct {
		word     string
		positive bool
		negative bool
	}{
		{"happy", true, false},
		{"Happiness", true, false},
		{"happ", true, false},
		{"hap", false, false},
		{"nice", true, false},
		{"nicer", false, false},
		{"hurting", false, true},
		{"sad", false, true},
		{"sadly", false, false},
		{"like", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.positive, lex.IsPositive(tt.word))
			assert.Equal(t, tt.negative, lex.IsNegative(tt.word))
		})
	}
}

func TestLoadPsychLexiconErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"entry before header", "happ*\t126\n"},
		{"no emotion categories", "%\n125\taffect\n%\nhapp*\t125\n"},
		{"malformed category", "%\n126\n%\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPsychLexicon(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestNewPsychLexiconSharedPrefix(t *testing.T) {
	lex := NewPsychLexicon([]string{"sweet*"}, []string{"sweat*", "bitter"})
	assert.True(t, lex.IsPositive("sweetness"))
	assert.False(t, lex.IsNegative("sweetness"))
	assert.True(t, lex.IsNegative("sweaty"))
	assert.False(t, lex.IsNegative("bitterness"))
	assert.Equal(t, 3, lex.Len())
}
