package sentifold

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/evaluation"
	"github.com/sjwhitworth/golearn/filters"
	"github.com/sjwhitworth/golearn/naive"
)

// BernoulliTrainer trains a golearn Bernoulli naive Bayes classifier. Every
// feature becomes a categorical attribute whose values are binarized, one
// indicator per observed value.
type BernoulliTrainer struct {
	Logger logrus.FieldLogger
}

// Bernoulli wraps a fitted golearn model together with the attribute layout
// it was trained on.
type Bernoulli struct {
	labels []Label
	names  []string

	attrs  []*base.CategoricalAttribute
	known  []map[string]bool
	class  *base.CategoricalAttribute
	filter *filters.BinaryConvertFilter
	model  *naive.BernoulliNBClassifier
}

// Train implements Trainer.
func (t BernoulliTrainer) Train(set FeatureSet) (_ Classifier, err error) {
	if len(set) == 0 {
		return nil, fmt.Errorf("bernoulli: %w", ErrEmptyTrainingSet)
	}
	log := loggerOr(t.Logger)

	// golearn panics on malformed grids rather than returning errors.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("bernoulli: %v", r)
		}
	}()

	b := &Bernoulli{labels: set.Labels()}
	b.layout(set)

	inst := b.instances(len(set))
	for row, ex := range set {
		b.setRow(inst, row, ex.Features, ex.Label)
	}

	b.filter = filters.NewBinaryConvertFilter()
	for _, a := range b.attrs {
		b.filter.AddAttribute(a)
	}
	b.filter.Train()

	b.model = naive.NewBernoulliNBClassifier()
	b.model.Fit(base.NewLazilyFilteredInstances(inst, b.filter))

	entry := log.WithFields(logrus.Fields{
		"examples":   len(set),
		"labels":     len(b.labels),
		"attributes": len(b.attrs),
	})
	if pred, err := b.model.Predict(base.NewLazilyFilteredInstances(inst, b.filter)); err == nil {
		if cm, err := evaluation.GetConfusionMatrix(inst, pred); err == nil {
			entry = entry.WithField("train_accuracy", evaluation.GetAccuracy(cm))
		}
	}
	entry.Debug("trained bernoulli naive bayes")
	return b, nil
}

// layout creates one categorical attribute per feature name, in sorted
// order, seeded with absentValue so missing and unseen values share a
// category.
func (b *Bernoulli) layout(set FeatureSet) {
	values := make(map[string]map[string]bool)
	for _, ex := range set {
		for name, v := range ex.Features {
			if values[name] == nil {
				values[name] = make(map[string]bool)
			}
			values[name][v.String()] = true
		}
	}
	if len(values) == 0 {
		values[biasFeature] = map[string]bool{"True": true}
	}

	for name := range values {
		b.names = append(b.names, name)
	}
	sort.Strings(b.names)

	for _, name := range b.names {
		attr := base.NewCategoricalAttribute()
		attr.SetName(name)
		attr.GetSysValFromString(absentValue)
		known := map[string]bool{absentValue: true}
		observed := make([]string, 0, len(values[name]))
		for v := range values[name] {
			observed = append(observed, v)
		}
		sort.Strings(observed)
		for _, v := range observed {
			attr.GetSysValFromString(v)
			known[v] = true
		}
		b.attrs = append(b.attrs, attr)
		b.known = append(b.known, known)
	}

	b.class = base.NewCategoricalAttribute()
	b.class.SetName("label")
	for _, l := range b.labels {
		b.class.GetSysValFromString(string(l))
	}
}

// instances allocates an empty grid of rows over the trained layout.
func (b *Bernoulli) instances(rows int) *base.DenseInstances {
	inst := base.NewDenseInstances()
	for _, a := range b.attrs {
		inst.AddAttribute(a)
	}
	inst.AddAttribute(b.class)
	inst.AddClassAttribute(b.class)
	inst.Extend(rows)
	return inst
}

// setRow writes features into row. Values never seen in training fall into
// the absent category, leaving the shared attributes untouched.
func (b *Bernoulli) setRow(inst *base.DenseInstances, row int, features Features, label Label) {
	for i, a := range b.attrs {
		v := absentValue
		if fv, ok := features[b.names[i]]; ok {
			v = fv.String()
		} else if b.names[i] == biasFeature {
			v = "True"
		}
		if !b.known[i][v] {
			v = absentValue
		}
		spec, err := inst.GetAttribute(a)
		if err != nil {
			panic(err)
		}
		inst.Set(spec, row, a.GetSysValFromString(v))
	}
	spec, err := inst.GetAttribute(b.class)
	if err != nil {
		panic(err)
	}
	inst.Set(spec, row, b.class.GetSysValFromString(string(label)))
}

// Classify implements Classifier. A prediction error yields the first
// training label.
func (b *Bernoulli) Classify(features Features) (label Label) {
	label = b.labels[0]
	defer func() {
		if r := recover(); r != nil {
			label = b.labels[0]
		}
	}()

	inst := b.instances(1)
	b.setRow(inst, 0, features, b.labels[0])
	pred, err := b.model.Predict(base.NewLazilyFilteredInstances(inst, b.filter))
	if err != nil {
		return label
	}
	return Label(base.GetClass(pred, 0))
}

// Labels implements Classifier.
func (b *Bernoulli) Labels() []Label { return b.labels }

// MostInformativeFeatures returns nil: the golearn model keeps its
// per-feature likelihoods private.
func (b *Bernoulli) MostInformativeFeatures(int) []InformativeFeature { return nil }
