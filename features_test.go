package sentifold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedTagger tags tokens from a lookup table, defaulting to NN.
type fixedTagger map[string]string

func (ft fixedTagger) Tag(tokens []string) []TaggedToken {
	out := make([]TaggedToken, len(tokens))
	for i, tok := range tokens {
		tag, ok := ft[tok]
		if !ok {
			tag = "NN"
		}
		out[i] = TaggedToken{Text: tok, Tag: tag}
	}
	return out
}

func testResources() Resources {
	return Resources{
		Vocabulary: NewVocabulary([]string{"good", "food", "bad", "not"}),
		Polarity: NewSubjectivityLexicon([]LexiconEntry{
			{Word: "good", Strength: WeakSubjective, Polarity: PositivePolarity},
			{Word: "great", Strength: StrongSubjective, Polarity: PositivePolarity},
			{Word: "awful", Strength: StrongSubjective, Polarity: NegativePolarity},
			{Word: "meh", Strength: WeakSubjective, Polarity: NeutralPolarity},
			{Word: "happy", Strength: WeakSubjective, Polarity: NegativePolarity},
		}),
		Psych:        NewPsychLexicon([]string{"happ*", "joy"}, []string{"sad", "hurt*"}),
		Tagger:       fixedTagger{"eat": "VB", "ate": "VBD", "tasty": "JJ", "very": "RB"},
		Collocations: []Bigram{{"very", "good"}, {"good", "food"}},
	}
}

func extract(t *testing.T, kind FeatureKind, tokens ...string) Features {
	t.Helper()
	ex, err := NewExtractor(kind, testResources())
	require.NoError(t, err)
	assert.Equal(t, kind, ex.Kind())
	return ex.Extract(Document{Tokens: tokens})
}

func TestNegationScope(t *testing.T) {
	f := extract(t, Negation, "not", "good", "food")

	assert.True(t, f["V_NOTgood"].True())
	assert.False(t, f["V_good"].True())
	assert.True(t, f["V_food"].True())
	assert.False(t, f["V_NOTfood"].True())
	assert.False(t, f["V_not"].True(), "a negator that scopes a token is not itself marked")
}

func TestNegationEdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		set    []string
	}{
		{"trailing negator is a plain token", []string{"good", "not"}, []string{"V_good", "V_not"}},
		{"contraction negates", []string{"isn't", "bad"}, []string{"V_NOTbad"}},
		{"negated term outside vocabulary", []string{"never", "tasty", "food"}, []string{"V_food"}},
		{"double negator", []string{"not", "not", "good"}, []string{"V_NOTnot", "V_good"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := extract(t, Negation, tt.tokens...)
			var set []string
			for _, name := range f.Names() {
				if f[name].True() {
					set = append(set, name)
				}
			}
			assert.ElementsMatch(t, tt.set, set)
			assert.Len(t, f, 8, "one plain and one negated feature per vocabulary term")
		})
	}
}

func TestBagOfWords(t *testing.T) {
	f := extract(t, BagOfWords, "good", "food", "good")
	assert.Equal(t, Features{
		"contains(good)": Bool(true),
		"contains(food)": Bool(true),
		"contains(bad)":  Bool(false),
		"contains(not)":  Bool(false),
	}, f)
}

func TestBigramFeatures(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		veryGood bool
		goodFood bool
	}{
		{"adjacent", []string{"very", "good", "food"}, true, true},
		{"one token between", []string{"very", "nice", "good"}, true, false},
		{"too far apart", []string{"good", "a", "b", "food"}, false, false},
		{"order matters", []string{"food", "good"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := extract(t, BigramCollocation, tt.tokens...)
			assert.Equal(t, tt.veryGood, f["bigram(very good)"].True())
			assert.Equal(t, tt.goodFood, f["bigram(good food)"].True())
			assert.Contains(t, f, "contains(good)")
		})
	}
}

func TestPartOfSpeechCounts(t *testing.T) {
	f := extract(t, PartOfSpeech, "we", "ate", "very", "tasty", "food")
	assert.Equal(t, Count(2), f["nouns"]) // we, food default to NN
	assert.Equal(t, Count(1), f["verbs"])
	assert.Equal(t, Count(1), f["adjectives"])
	assert.Equal(t, Count(1), f["adverbs"])
	assert.True(t, f["contains(food)"].True())
}

func TestSubjectivityCounts(t *testing.T) {
	f := extract(t, Subjectivity, "good", "great", "awful", "meh", "good", "unknown")
	assert.Equal(t, Count(3), f[PositiveCountFeature], "weak counts 1, strong counts 2, repeats count once")
	assert.Equal(t, Count(2), f[NegativeCountFeature])
}

func TestPsychCounts(t *testing.T) {
	f := extract(t, Psych, "happy", "joyful", "joy", "sad", "hurting")
	assert.Equal(t, Count(2), f[PositiveCountFeature])
	assert.Equal(t, Count(2), f[NegativeCountFeature])
}

func TestHybridPrefersPolarityLexicon(t *testing.T) {
	// "happy" is a weak negative in the polarity lexicon, so the psych
	// lexicon's positive prefix is never consulted for it.
	f := extract(t, Hybrid, "happy", "joy", "sad")
	assert.Equal(t, Count(4), f[PositiveCountFeature])
	assert.Equal(t, Count(5), f[NegativeCountFeature])
}

func TestFeatureCompleteness(t *testing.T) {
	res := testResources()
	for _, kind := range FeatureKinds() {
		t.Run(kind.String(), func(t *testing.T) {
			ex, err := NewExtractor(kind, res)
			require.NoError(t, err)
			f := ex.Extract(Document{})

			for _, term := range res.Vocabulary.Terms() {
				if kind == Negation {
					assert.Contains(t, f, "V_"+term)
					assert.Contains(t, f, "V_NOT"+term)
					continue
				}
				assert.Contains(t, f, ContainsFeature(term))
			}
			switch kind {
			case Subjectivity, Psych, Hybrid:
				assert.Equal(t, Count(0), f[PositiveCountFeature])
				assert.Equal(t, Count(0), f[NegativeCountFeature])
			}
		})
	}
}

func TestExtractionIsDeterministic(t *testing.T) {
	res := testResources()
	doc := Document{Tokens: []string{"not", "very", "good", "food", "happy", "sad"}}
	for _, kind := range FeatureKinds() {
		ex, err := NewExtractor(kind, res)
		require.NoError(t, err)
		assert.Equal(t, ex.Extract(doc), ex.Extract(doc), kind.String())
	}
}

func TestNewExtractorMissingResource(t *testing.T) {
	vocab := Resources{Vocabulary: NewVocabulary([]string{"good"})}
	for _, kind := range []FeatureKind{PartOfSpeech, Subjectivity, Psych, Hybrid} {
		_, err := NewExtractor(kind, vocab)
		assert.ErrorIs(t, err, ErrMissingResource, kind.String())
	}

	_, err := NewExtractor(FeatureKind(99), vocab)
	assert.ErrorIs(t, err, ErrUnknownFeatureKind)
}

func TestParseFeatureKind(t *testing.T) {
	for _, kind := range FeatureKinds() {
		got, err := ParseFeatureKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, got)
	}
	got, err := ParseFeatureKind(" Hybrid ")
	require.NoError(t, err)
	assert.Equal(t, Hybrid, got)

	_, err = ParseFeatureKind("trigram")
	assert.ErrorIs(t, err, ErrUnknownFeatureKind)
}

func TestBuildFeatureSet(t *testing.T) {
	ex, err := NewExtractor(BagOfWords, testResources())
	require.NoError(t, err)

	docs := []Document{
		{Tokens: []string{"good"}, Label: Positive},
		{Tokens: []string{"bad"}, Label: Negative},
	}
	set := BuildFeatureSet(docs, ex)
	require.Len(t, set, 2)
	assert.Equal(t, Positive, set[0].Label)
	assert.True(t, set[0].Features["contains(good)"].True())
	assert.Equal(t, Negative, set[1].Label)
	assert.True(t, set[1].Features["contains(bad)"].True())
	assert.Equal(t, []Label{Positive, Negative}, set.Labels())
}
