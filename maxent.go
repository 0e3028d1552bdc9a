package sentifold

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Maxent training defaults.
const (
	DefaultMaxentIterations = 100
	maxentTolerance         = 0.0005
	biasFeature             = "__BIAS__"
)

// MaxentTrainer trains a Maxent classifier with generalized iterative
// scaling.
type MaxentTrainer struct {
	Iterations int // DefaultMaxentIterations when zero
	Logger     logrus.FieldLogger
}

// maxentKey identifies one joint (feature, value, label) indicator.
type maxentKey struct {
	name, value string
	label       int
}

// Maxent is a conditional maximum entropy classifier over joint
// feature/value/label indicators.
type Maxent struct {
	labels  []Label
	mapping map[maxentKey]int
	weights []float64
}

// encodedExample lists, per label, the indicator ids an example fires.
type encodedExample struct {
	label int
	ids   [][]int
}

// Train implements Trainer.
func (t MaxentTrainer) Train(set FeatureSet) (Classifier, error) {
	if len(set) == 0 {
		return nil, fmt.Errorf("maxent: %w", ErrEmptyTrainingSet)
	}
	log := loggerOr(t.Logger)
	iterations := t.Iterations
	if iterations <= 0 {
		iterations = DefaultMaxentIterations
	}

	me := &Maxent{labels: set.Labels(), mapping: make(map[maxentKey]int)}
	index := make(map[Label]int, len(me.labels))
	for i, l := range me.labels {
		index[l] = i
	}

	// Every attested (feature, value, label) triple gets an id, plus one
	// bias indicator per label.
	cardinality := 0
	for _, ex := range set {
		li := index[ex.Label]
		for _, fname := range ex.Features.Names() {
			me.id(maxentKey{fname, ex.Features[fname].String(), li})
		}
		if n := len(ex.Features) + 1; n > cardinality {
			cardinality = n
		}
	}
	for li := range me.labels {
		me.id(maxentKey{biasFeature, "1", li})
	}
	rows := len(me.mapping)

	corpus := make([]encodedExample, len(set))
	for i, ex := range set {
		corpus[i] = encodedExample{label: index[ex.Label], ids: me.encode(ex.Features)}
	}

	empirical := mat.NewVecDense(rows, nil)
	for _, ex := range corpus {
		for _, id := range ex.ids[ex.label] {
			empirical.SetVec(id, empirical.AtVec(id)+1)
		}
	}

	unattested := make(map[int]bool)
	for id := 0; id < rows; id++ {
		if c := empirical.AtVec(id); c > 0 {
			empirical.SetVec(id, math.Log(c))
		} else {
			unattested[id] = true
		}
	}

	me.weights = make([]float64, rows)
	for id := range unattested {
		me.weights[id] = math.Inf(-1)
	}

	cInv := 1.0 / float64(cardinality)
	delta := mat.NewVecDense(rows, nil)
	for iter := 0; iter < iterations; iter++ {
		estimated := me.expectedCounts(corpus, rows)
		for id := range unattested {
			estimated.SetVec(id, estimated.AtVec(id)+1)
		}
		for id := 0; id < rows; id++ {
			if c := estimated.AtVec(id); c > 0 {
				estimated.SetVec(id, math.Log(c))
			}
		}

		// w += (1/C) * (log empirical - log expected)
		delta.SubVec(empirical, estimated)
		delta.ScaleVec(cInv, delta)

		change := 0.0
		for id := range me.weights {
			if unattested[id] {
				continue
			}
			d := delta.AtVec(id)
			me.weights[id] += d
			change += math.Abs(d)
		}

		avg := change / float64(rows)
		log.WithFields(logrus.Fields{"iteration": iter + 1, "delta": avg}).Trace("gis step")
		if iter > 30 && avg < maxentTolerance {
			log.WithField("iteration", iter+1).Debug("maxent converged")
			break
		}
	}

	log.WithFields(logrus.Fields{
		"examples":   len(set),
		"labels":     len(me.labels),
		"indicators": rows,
	}).Debug("trained maxent")
	return me, nil
}

func (me *Maxent) id(k maxentKey) int {
	id, ok := me.mapping[k]
	if !ok {
		id = len(me.mapping)
		me.mapping[k] = id
	}
	return id
}

// encode returns the ids each label's indicators take for features.
func (me *Maxent) encode(features Features) [][]int {
	names := features.Names()
	ids := make([][]int, len(me.labels))
	for li := range me.labels {
		for _, fname := range names {
			if id, ok := me.mapping[maxentKey{fname, features[fname].String(), li}]; ok {
				ids[li] = append(ids[li], id)
			}
		}
		ids[li] = append(ids[li], me.mapping[maxentKey{biasFeature, "1", li}])
	}
	return ids
}

// logScores returns the log-normalised label distribution of an encoded
// example.
func (me *Maxent) logScores(ids [][]int) []float64 {
	scores := make([]float64, len(me.labels))
	for li, lids := range ids {
		for _, id := range lids {
			if w := me.weights[id]; !math.IsInf(w, -1) {
				scores[li] += w
			}
		}
	}
	norm := floats.LogSumExp(scores)
	floats.AddConst(-norm, scores)
	return scores
}

func (me *Maxent) expectedCounts(corpus []encodedExample, rows int) *mat.VecDense {
	count := mat.NewVecDense(rows, nil)
	for _, ex := range corpus {
		scores := me.logScores(ex.ids)
		for li, lids := range ex.ids {
			p := math.Exp(scores[li])
			for _, id := range lids {
				count.SetVec(id, count.AtVec(id)+p)
			}
		}
	}
	return count
}

// Labels implements Classifier.
func (me *Maxent) Labels() []Label {
	out := make([]Label, len(me.labels))
	copy(out, me.labels)
	return out
}

// Classify implements Classifier. Ties go to the label seen first in
// training.
func (me *Maxent) Classify(features Features) Label {
	scores := me.logScores(me.encode(features))
	return me.labels[floats.MaxIdx(scores)]
}

// MostInformativeFeatures ranks indicators by absolute weight.
func (me *Maxent) MostInformativeFeatures(n int) []InformativeFeature {
	if n <= 0 {
		return nil
	}
	var ranked []InformativeFeature
	for k, id := range me.mapping {
		w := me.weights[id]
		if k.name == biasFeature || math.IsInf(w, 0) {
			continue
		}
		ranked = append(ranked, InformativeFeature{
			Name:    k.name,
			Value:   k.value,
			Favored: me.labels[k.label],
			Ratio:   w,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if math.Abs(a.Ratio) != math.Abs(b.Ratio) {
			return math.Abs(a.Ratio) > math.Abs(b.Ratio)
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Value != b.Value {
			return a.Value < b.Value
		}
		return a.Favored < b.Favored
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
