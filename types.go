package sentifold

import (
	"errors"
	"sort"
	"strconv"
)

// A Label is one of the closed set of category symbols attached to a
// Document, e.g. "positive".
type Label string

// Default labels produced by FivePointScheme.
const (
	Negative Label = "negative"
	Neutral  Label = "neutral"
	Positive Label = "positive"
)

// A Document is an ordered sequence of normalized word tokens together with
// its gold label.
type Document struct {
	Tokens []string // The document's tokens, in order.
	Label  Label    // The document's gold label.
}

// ValueKind distinguishes boolean from integer feature values.
type ValueKind uint8

const (
	BoolValue ValueKind = iota
	CountValue
)

// A Value is a single feature value: either a boolean or an integer count.
type Value struct {
	Kind ValueKind
	N    int // 0 or 1 for BoolValue
}

// Bool returns a boolean feature value.
func Bool(b bool) Value {
	if b {
		return Value{Kind: BoolValue, N: 1}
	}
	return Value{Kind: BoolValue}
}

// Count returns an integer feature value.
func Count(n int) Value {
	return Value{Kind: CountValue, N: n}
}

// True reports whether v is a boolean value set to true.
func (v Value) True() bool {
	return v.Kind == BoolValue && v.N != 0
}

// String renders the value as the discrete key classifiers train on.
func (v Value) String() string {
	if v.Kind == BoolValue {
		if v.N != 0 {
			return "True"
		}
		return "False"
	}
	return strconv.Itoa(v.N)
}

// Features maps feature names to values. One mapping is produced per
// Document per extractor.
type Features map[string]Value

// An Example pairs a feature mapping with its gold label.
type Example struct {
	Features Features
	Label    Label
}

// A FeatureSet is an ordered sequence of labeled feature mappings. Fold
// splitting is positional, so order matters.
type FeatureSet []Example

// Labels returns the distinct labels of fs in order of first appearance.
func (fs FeatureSet) Labels() []Label {
	seen := make(map[Label]bool)
	var labels []Label
	for _, ex := range fs {
		if !seen[ex.Label] {
			seen[ex.Label] = true
			labels = append(labels, ex.Label)
		}
	}
	return labels
}

// LabelCounts returns the number of examples carrying each label.
func (fs FeatureSet) LabelCounts() map[Label]int {
	counts := make(map[Label]int)
	for _, ex := range fs {
		counts[ex.Label]++
	}
	return counts
}

var (
	// ErrInsufficientData is returned when a set is too small for the
	// requested split or fold count.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrEmptyTrainingSet is returned by trainers given no examples.
	ErrEmptyTrainingSet = errors.New("training set is empty")

	// ErrMissingResource is returned when an extractor needs a lexicon,
	// tagger or collocation list that was not supplied.
	ErrMissingResource = errors.New("missing extractor resource")

	// ErrUnknownLabel is returned when an example carries a label outside
	// the label set under evaluation.
	ErrUnknownLabel = errors.New("unknown label")

	// ErrUnknownFeatureKind is returned for an unrecognised FeatureKind.
	ErrUnknownFeatureKind = errors.New("unknown feature kind")
)

// Names returns the feature names of f in sorted order.
func (f Features) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
