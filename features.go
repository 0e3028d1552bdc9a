package sentifold

import (
	"fmt"
	"strings"
)

// FeatureKind selects one of the feature extraction strategies.
type FeatureKind int

const (
	BagOfWords FeatureKind = iota
	Negation
	BigramCollocation
	PartOfSpeech
	Subjectivity
	Psych
	Hybrid
)

var featureKindNames = []string{"bow", "negation", "bigram", "pos", "subjectivity", "psych", "hybrid"}

// FeatureKinds lists every kind in presentation order.
func FeatureKinds() []FeatureKind {
	return []FeatureKind{BagOfWords, Negation, BigramCollocation, PartOfSpeech, Subjectivity, Psych, Hybrid}
}

func (k FeatureKind) String() string {
	if k < 0 || int(k) >= len(featureKindNames) {
		return fmt.Sprintf("FeatureKind(%d)", int(k))
	}
	return featureKindNames[k]
}

// ParseFeatureKind maps a name such as "bigram" to its kind.
func ParseFeatureKind(name string) (FeatureKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range featureKindNames {
		if n == name {
			return FeatureKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFeatureKind, name)
}

// Feature names shared by the count extractors.
const (
	PositiveCountFeature = "positivecount"
	NegativeCountFeature = "negativecount"
)

// negationWords includes approximate negators such as "hardly" and "rarely".
var negationWords = map[string]bool{
	"no": true, "not": true, "never": true, "none": true, "nowhere": true,
	"nothing": true, "noone": true, "rather": true, "hardly": true,
	"scarcely": true, "rarely": true, "seldom": true, "neither": true, "nor": true,
}

// IsNegator reports whether tok is a negation word or a contraction ending
// in "n't".
func IsNegator(tok string) bool {
	return negationWords[tok] || strings.HasSuffix(tok, "n't")
}

// Resources holds the read-only data extractors draw on. Only the
// vocabulary is required by every kind.
type Resources struct {
	Vocabulary   *Vocabulary
	Polarity     PolarityLookup // Subjectivity and Hybrid
	Psych        PrefixMatcher  // Psych and Hybrid
	Tagger       Tagger         // PartOfSpeech
	Collocations []Bigram       // BigramCollocation
	BigramWindow int            // BigramCollocation; DefaultBigramWindow when zero
}

// An Extractor turns a document into a feature mapping. Implementations are
// pure: the same document always yields the same mapping.
type Extractor interface {
	Kind() FeatureKind
	Extract(doc Document) Features
}

// NewExtractor returns the extractor for kind, checking that res carries
// what it needs.
func NewExtractor(kind FeatureKind, res Resources) (Extractor, error) {
	need := func(ok bool, what string) error {
		if !ok {
			return fmt.Errorf("%s extractor: %w: %s", kind, ErrMissingResource, what)
		}
		return nil
	}

	switch kind {
	case BagOfWords:
		return bowExtractor{vocab: res.Vocabulary}, nil
	case Negation:
		return negationExtractor{vocab: res.Vocabulary}, nil
	case BigramCollocation:
		window := res.BigramWindow
		if window == 0 {
			window = DefaultBigramWindow
		}
		return bigramExtractor{vocab: res.Vocabulary, bigrams: res.Collocations, window: window}, nil
	case PartOfSpeech:
		if err := need(res.Tagger != nil, "tagger"); err != nil {
			return nil, err
		}
		return posExtractor{vocab: res.Vocabulary, tagger: res.Tagger}, nil
	case Subjectivity:
		if err := need(res.Polarity != nil, "polarity lexicon"); err != nil {
			return nil, err
		}
		return subjectivityExtractor{vocab: res.Vocabulary, lexicon: res.Polarity}, nil
	case Psych:
		if err := need(res.Psych != nil, "psych lexicon"); err != nil {
			return nil, err
		}
		return psychExtractor{vocab: res.Vocabulary, lexicon: res.Psych}, nil
	case Hybrid:
		if err := need(res.Polarity != nil, "polarity lexicon"); err != nil {
			return nil, err
		}
		if err := need(res.Psych != nil, "psych lexicon"); err != nil {
			return nil, err
		}
		return hybridExtractor{vocab: res.Vocabulary, polarity: res.Polarity, psych: res.Psych}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownFeatureKind, int(kind))
}

// BuildFeatureSet extracts features from every document, keeping order.
func BuildFeatureSet(docs []Document, ex Extractor) FeatureSet {
	set := make(FeatureSet, len(docs))
	for i, doc := range docs {
		set[i] = Example{Features: ex.Extract(doc), Label: doc.Label}
	}
	return set
}

// ContainsFeature returns the bag-of-words feature name for term.
func ContainsFeature(term string) string {
	return "contains(" + term + ")"
}

// BigramFeature returns the collocation feature name for bg.
func BigramFeature(bg Bigram) string {
	return "bigram(" + bg.First + " " + bg.Second + ")"
}

func wordSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// containsFeatures adds one contains(term) feature per vocabulary term.
func containsFeatures(features Features, vocab *Vocabulary, words map[string]struct{}) {
	for _, term := range vocab.list() {
		_, ok := words[term]
		features[ContainsFeature(term)] = Bool(ok)
	}
}

type bowExtractor struct {
	vocab *Vocabulary
}

func (bowExtractor) Kind() FeatureKind { return BagOfWords }

func (e bowExtractor) Extract(doc Document) Features {
	features := make(Features, e.vocab.Len())
	containsFeatures(features, e.vocab, wordSet(doc.Tokens))
	return features
}

type negationExtractor struct {
	vocab *Vocabulary
}

func (negationExtractor) Kind() FeatureKind { return Negation }

// Extract marks vocabulary terms as V_<term>, or V_NOT<term> when the term
// directly follows a negator. A negated token is consumed and not also
// marked plain.
func (e negationExtractor) Extract(doc Document) Features {
	features := make(Features, 2*e.vocab.Len())
	for _, term := range e.vocab.list() {
		features["V_"+term] = Bool(false)
		features["V_NOT"+term] = Bool(false)
	}

	tokens := doc.Tokens
	for i := 0; i < len(tokens); i++ {
		word := tokens[i]
		if i+1 < len(tokens) && IsNegator(word) {
			i++
			if next := tokens[i]; e.vocab.Contains(next) {
				features["V_NOT"+next] = Bool(true)
			}
			continue
		}
		if e.vocab.Contains(word) {
			features["V_"+word] = Bool(true)
		}
	}
	return features
}

type bigramExtractor struct {
	vocab   *Vocabulary
	bigrams []Bigram
	window  int
}

func (bigramExtractor) Kind() FeatureKind { return BigramCollocation }

func (e bigramExtractor) Extract(doc Document) Features {
	features := make(Features, e.vocab.Len()+len(e.bigrams))
	containsFeatures(features, e.vocab, wordSet(doc.Tokens))

	pairs := nearPairs(doc.Tokens, e.window)
	for _, bg := range e.bigrams {
		_, ok := pairs[bg]
		features[BigramFeature(bg)] = Bool(ok)
	}
	return features
}

type posExtractor struct {
	vocab  *Vocabulary
	tagger Tagger
}

func (posExtractor) Kind() FeatureKind { return PartOfSpeech }

func (e posExtractor) Extract(doc Document) Features {
	features := make(Features, e.vocab.Len()+4)
	containsFeatures(features, e.vocab, wordSet(doc.Tokens))

	var nouns, verbs, adjectives, adverbs int
	for _, tt := range e.tagger.Tag(doc.Tokens) {
		switch {
		case strings.HasPrefix(tt.Tag, "N"):
			nouns++
		case strings.HasPrefix(tt.Tag, "V"):
			verbs++
		case strings.HasPrefix(tt.Tag, "J"):
			adjectives++
		case strings.HasPrefix(tt.Tag, "R"):
			adverbs++
		}
	}
	features["nouns"] = Count(nouns)
	features["verbs"] = Count(verbs)
	features["adjectives"] = Count(adjectives)
	features["adverbs"] = Count(adverbs)
	return features
}

// polarityCounts accumulates strength-weighted polarity lexicon matches.
type polarityCounts struct {
	pos, neg int
}

func (c *polarityCounts) add(entry LexiconEntry) {
	switch entry.Polarity {
	case PositivePolarity:
		c.pos += entry.weight()
	case NegativePolarity:
		c.neg += entry.weight()
	}
}

type subjectivityExtractor struct {
	vocab   *Vocabulary
	lexicon PolarityLookup
}

func (subjectivityExtractor) Kind() FeatureKind { return Subjectivity }

func (e subjectivityExtractor) Extract(doc Document) Features {
	words := wordSet(doc.Tokens)
	features := make(Features, e.vocab.Len()+2)
	containsFeatures(features, e.vocab, words)

	var counts polarityCounts
	for word := range words {
		if entry, ok := e.lexicon.Lookup(word); ok {
			counts.add(entry)
		}
	}
	features[PositiveCountFeature] = Count(counts.pos)
	features[NegativeCountFeature] = Count(counts.neg)
	return features
}

type psychExtractor struct {
	vocab   *Vocabulary
	lexicon PrefixMatcher
}

func (psychExtractor) Kind() FeatureKind { return Psych }

func (e psychExtractor) Extract(doc Document) Features {
	words := wordSet(doc.Tokens)
	features := make(Features, e.vocab.Len()+2)
	containsFeatures(features, e.vocab, words)

	var pos, neg int
	for word := range words {
		if e.lexicon.IsPositive(word) {
			pos++
		}
		if e.lexicon.IsNegative(word) {
			neg++
		}
	}
	features[PositiveCountFeature] = Count(pos)
	features[NegativeCountFeature] = Count(neg)
	return features
}

// Hybrid weights applied to psych lexicon matches.
const (
	hybridPsychIncrement  = 2
	hybridPsychMultiplier = 2
)

type hybridExtractor struct {
	vocab    *Vocabulary
	polarity PolarityLookup
	psych    PrefixMatcher
}

func (hybridExtractor) Kind() FeatureKind { return Hybrid }

// Extract consults the psych lexicon only for words the polarity lexicon
// does not know, so no word is counted twice.
func (e hybridExtractor) Extract(doc Document) Features {
	words := wordSet(doc.Tokens)
	features := make(Features, e.vocab.Len()+2)
	containsFeatures(features, e.vocab, words)

	var counts polarityCounts
	var psychPos, psychNeg int
	for word := range words {
		if entry, ok := e.polarity.Lookup(word); ok {
			counts.add(entry)
		} else if e.psych.IsPositive(word) {
			psychPos += hybridPsychIncrement
		} else if e.psych.IsNegative(word) {
			psychNeg += hybridPsychIncrement
		}
	}
	features[PositiveCountFeature] = Count(counts.pos + hybridPsychMultiplier*psychPos)
	features[NegativeCountFeature] = Count(counts.neg + hybridPsychMultiplier*psychNeg)
	return features
}
