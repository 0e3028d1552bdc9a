package sentifold

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// absentValue stands in for a feature missing from an example's mapping.
const absentValue = "\x00absent"

// eleGamma is the additive smoothing constant of the expected likelihood
// estimate.
const eleGamma = 0.5

// NaiveBayesTrainer trains a NaiveBayes classifier.
type NaiveBayesTrainer struct {
	Logger logrus.FieldLogger
}

// valueDist is the distribution of one feature's values under one label.
type valueDist struct {
	counts map[string]int
	total  int
}

// NaiveBayes is a naive Bayes classifier over discrete feature values with
// expected likelihood (add one half) smoothing.
type NaiveBayes struct {
	labels      []Label
	labelCounts []int
	total       int

	// dists[fname][i] is the value distribution of fname under labels[i].
	dists  map[string][]valueDist
	values map[string]map[string]struct{}
}

// Train counts label and feature value frequencies in set.
func (t NaiveBayesTrainer) Train(set FeatureSet) (Classifier, error) {
	if len(set) == 0 {
		return nil, fmt.Errorf("naive bayes: %w", ErrEmptyTrainingSet)
	}
	log := loggerOr(t.Logger)

	nb := &NaiveBayes{
		labels: set.Labels(),
		dists:  make(map[string][]valueDist),
		values: make(map[string]map[string]struct{}),
		total:  len(set),
	}
	index := make(map[Label]int, len(nb.labels))
	for i, l := range nb.labels {
		index[l] = i
	}
	nb.labelCounts = make([]int, len(nb.labels))

	for _, ex := range set {
		li := index[ex.Label]
		nb.labelCounts[li]++
		for fname, fval := range ex.Features {
			nb.observe(fname, fval.String(), li, 1)
		}
	}

	// Examples lacking a feature count toward its absent value.
	for fname, perLabel := range nb.dists {
		for li := range perLabel {
			if missing := nb.labelCounts[li] - perLabel[li].total; missing > 0 {
				nb.observe(fname, absentValue, li, missing)
			}
		}
	}

	log.WithFields(logrus.Fields{
		"examples": len(set),
		"labels":   len(nb.labels),
		"features": len(nb.dists),
	}).Debug("trained naive bayes")
	return nb, nil
}

func (nb *NaiveBayes) observe(fname, fval string, li, n int) {
	perLabel, ok := nb.dists[fname]
	if !ok {
		perLabel = make([]valueDist, len(nb.labels))
		nb.dists[fname] = perLabel
		nb.values[fname] = make(map[string]struct{})
	}
	d := &perLabel[li]
	if d.counts == nil {
		d.counts = make(map[string]int)
	}
	d.counts[fval] += n
	d.total += n
	nb.values[fname][fval] = struct{}{}
}

// Labels implements Classifier.
func (nb *NaiveBayes) Labels() []Label {
	out := make([]Label, len(nb.labels))
	copy(out, nb.labels)
	return out
}

func (nb *NaiveBayes) labelLogProb(li int) float64 {
	p := (float64(nb.labelCounts[li]) + eleGamma) / (float64(nb.total) + eleGamma*float64(len(nb.labels)))
	return math.Log(p)
}

func (nb *NaiveBayes) valueProb(fname, fval string, li int) float64 {
	d := nb.dists[fname][li]
	bins := float64(len(nb.values[fname]))
	return (float64(d.counts[fval]) + eleGamma) / (float64(d.total) + eleGamma*bins)
}

// logScores returns the unnormalised log probability of each label.
// Features never seen in training are ignored.
func (nb *NaiveBayes) logScores(features Features) []float64 {
	scores := make([]float64, len(nb.labels))
	for li := range nb.labels {
		scores[li] = nb.labelLogProb(li)
	}
	for _, fname := range features.Names() {
		if _, known := nb.dists[fname]; !known {
			continue
		}
		v := features[fname].String()
		for li := range nb.labels {
			scores[li] += math.Log(nb.valueProb(fname, v, li))
		}
	}
	return scores
}

// Classify implements Classifier. Ties go to the label seen first in
// training.
func (nb *NaiveBayes) Classify(features Features) Label {
	scores := nb.logScores(features)
	best := 0
	for li := 1; li < len(scores); li++ {
		if scores[li] > scores[best] {
			best = li
		}
	}
	return nb.labels[best]
}

// Probabilities returns the posterior probability of every label.
func (nb *NaiveBayes) Probabilities(features Features) map[Label]float64 {
	scores := nb.logScores(features)
	norm := floats.LogSumExp(scores)
	out := make(map[Label]float64, len(scores))
	for li, s := range scores {
		out[nb.labels[li]] = math.Exp(s - norm)
	}
	return out
}

// MostInformativeFeatures ranks feature/value pairs by the ratio of their
// highest to lowest likelihood across labels.
func (nb *NaiveBayes) MostInformativeFeatures(n int) []InformativeFeature {
	if n <= 0 || len(nb.labels) < 2 {
		return nil
	}

	var ranked []InformativeFeature
	for fname, values := range nb.values {
		for fval := range values {
			if fval == absentValue {
				continue
			}
			hi, lo := 0, 0
			phi, plo := nb.valueProb(fname, fval, 0), nb.valueProb(fname, fval, 0)
			for li := 1; li < len(nb.labels); li++ {
				p := nb.valueProb(fname, fval, li)
				if p > phi {
					hi, phi = li, p
				}
				if p < plo {
					lo, plo = li, p
				}
			}
			ranked = append(ranked, InformativeFeature{
				Name:       fname,
				Value:      fval,
				Favored:    nb.labels[hi],
				Disfavored: nb.labels[lo],
				Ratio:      phi / plo,
			})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Ratio != b.Ratio {
			return a.Ratio > b.Ratio
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Value < b.Value
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
