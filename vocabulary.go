package sentifold

import (
	"sort"
	"unicode/utf8"
)

// DefaultVocabularySize is the number of most frequent tokens kept as
// boolean feature keys.
const DefaultVocabularySize = 200

// A Vocabulary is an ordered list of the most frequent distinct tokens of a
// reference corpus. It is immutable once built.
type Vocabulary struct {
	terms []string
	index map[string]struct{}
}

// NewVocabulary wraps an explicit term list. Duplicate terms are dropped,
// keeping the first occurrence.
func NewVocabulary(terms []string) *Vocabulary {
	v := &Vocabulary{index: make(map[string]struct{}, len(terms))}
	for _, t := range terms {
		if _, dup := v.index[t]; dup {
			continue
		}
		v.index[t] = struct{}{}
		v.terms = append(v.terms, t)
	}
	return v
}

// BuildVocabulary returns the n most frequent tokens, most frequent first.
// Tokens with equal counts keep the order in which they first appear in
// tokens. An empty input yields an empty vocabulary.
func BuildVocabulary(tokens []string, n int) *Vocabulary {
	if n <= 0 {
		n = DefaultVocabularySize
	}

	counts := make(map[string]int)
	var order []string
	for _, tok := range tokens {
		if _, seen := counts[tok]; !seen {
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return NewVocabulary(order)
}

// CorpusTokens flattens the tokens of docs. When minLen > 0 only tokens of
// at least minLen characters are kept.
func CorpusTokens(docs []Document, minLen int) []string {
	var all []string
	for _, doc := range docs {
		for _, tok := range doc.Tokens {
			if minLen > 0 && utf8.RuneCountInString(tok) < minLen {
				continue
			}
			all = append(all, tok)
		}
	}
	return all
}

// Terms returns a copy of the vocabulary terms in rank order.
func (v *Vocabulary) Terms() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

func (v *Vocabulary) list() []string {
	if v == nil {
		return nil
	}
	return v.terms
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

// Contains reports whether term is in the vocabulary.
func (v *Vocabulary) Contains(term string) bool {
	if v == nil {
		return false
	}
	_, ok := v.index[term]
	return ok
}
