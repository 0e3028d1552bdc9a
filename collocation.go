package sentifold

import "sort"

// Collocation defaults.
const (
	DefaultBigramWindow = 3
	DefaultBigramNBest  = 1000
	DefaultBigramKeep   = 500
)

// A Bigram is an ordered word pair.
type Bigram struct {
	First, Second string
}

// A ScoredBigram is a bigram with its association score.
type ScoredBigram struct {
	Bigram
	Score float64
}

// FindCollocations scores every word pair of tokens that co-occurs within a
// window of the given size (window 3 allows one intervening token) by the
// chi-squared association measure, and returns the nbest highest scoring
// pairs truncated to keep. Ties are ordered by the pair's words.
func FindCollocations(tokens []string, window, nbest, keep int) []Bigram {
	scored := ScoreBigrams(tokens, window)
	if nbest > 0 && len(scored) > nbest {
		scored = scored[:nbest]
	}
	if keep > 0 && len(scored) > keep {
		scored = scored[:keep]
	}

	out := make([]Bigram, len(scored))
	for i, s := range scored {
		out[i] = s.Bigram
	}
	return out
}

// ScoreBigrams returns all windowed bigrams of tokens with their
// chi-squared scores, best first.
func ScoreBigrams(tokens []string, window int) []ScoredBigram {
	if window < 2 {
		window = 2
	}

	wordFreq := make(map[string]int)
	pairFreq := make(map[Bigram]int)
	for i, w := range tokens {
		wordFreq[w]++
		for j := i + 1; j < i+window && j < len(tokens); j++ {
			pairFreq[Bigram{w, tokens[j]}]++
		}
	}

	total := float64(len(tokens))
	scored := make([]ScoredBigram, 0, len(pairFreq))
	for bg, n := range pairFreq {
		nii := float64(n) / float64(window-1)
		score := chiSquared(nii, float64(wordFreq[bg.First]), float64(wordFreq[bg.Second]), total)
		scored = append(scored, ScoredBigram{Bigram: bg, Score: score})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].First != scored[j].First {
			return scored[i].First < scored[j].First
		}
		return scored[i].Second < scored[j].Second
	})
	return scored
}

// chiSquared computes the chi-squared statistic of the 2x2 contingency
// table built from the joint count nii, the marginals nix and nxi and the
// total nxx. A degenerate table scores 0.
func chiSquared(nii, nix, nxi, nxx float64) float64 {
	nio := nix - nii
	noi := nxi - nii
	noo := nxx - nii - nio - noi

	denom := (nii + nio) * (nii + noi) * (nio + noo) * (noi + noo)
	if denom == 0 {
		return 0
	}
	diff := nii*noo - nio*noi
	return nxx * diff * diff / denom
}

// nearPairs returns the set of ordered pairs in tokens whose second word
// follows the first within window.
func nearPairs(tokens []string, window int) map[Bigram]struct{} {
	if window < 2 {
		window = 2
	}
	pairs := make(map[Bigram]struct{})
	for i, w := range tokens {
		for j := i + 1; j < i+window && j < len(tokens); j++ {
			pairs[Bigram{w, tokens[j]}] = struct{}{}
		}
	}
	return pairs
}
