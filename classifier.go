package sentifold

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// A Trainer builds a fresh Classifier from labeled examples. Train must not
// retain or modify set.
type Trainer interface {
	Train(set FeatureSet) (Classifier, error)
}

// A Classifier predicts a label from a feature mapping.
type Classifier interface {
	// Classify returns the most likely label for features.
	Classify(features Features) Label

	// Labels returns the labels the classifier was trained on, in the order
	// used to break scoring ties.
	Labels() []Label

	// MostInformativeFeatures returns up to n feature/value pairs ranked by
	// how strongly they separate labels.
	MostInformativeFeatures(n int) []InformativeFeature
}

// An InformativeFeature is one ranked feature/value pair. For naive Bayes
// Ratio is P(value|Favored) / P(value|Disfavored); for maxent it is the
// feature's weight for Favored.
type InformativeFeature struct {
	Name       string
	Value      string
	Favored    Label
	Disfavored Label
	Ratio      float64
}

func (f InformativeFeature) String() string {
	if f.Disfavored == "" {
		return fmt.Sprintf("%s = %s (%s %.3f)", f.Name, f.Value, f.Favored, f.Ratio)
	}
	return fmt.Sprintf("%s = %s (%s : %s = %.1f : 1.0)", f.Name, f.Value, f.Favored, f.Disfavored, f.Ratio)
}

// Classifier names accepted by NewTrainer.
const (
	NaiveBayesName = "naivebayes"
	MaxentName     = "maxent"
	BernoulliName  = "bernoulli"
)

// NewTrainer returns the trainer registered under name.
func NewTrainer(name string, logger logrus.FieldLogger) (Trainer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NaiveBayesName, "nb":
		return NaiveBayesTrainer{Logger: logger}, nil
	case MaxentName:
		return MaxentTrainer{Logger: logger}, nil
	case BernoulliName:
		return BernoulliTrainer{Logger: logger}, nil
	}
	return nil, fmt.Errorf("unknown classifier %q", name)
}

// Accuracy returns the fraction of set that c labels correctly. An empty
// set scores 0.
func Accuracy(c Classifier, set FeatureSet) float64 {
	if len(set) == 0 {
		return 0
	}
	correct := 0
	for _, ex := range set {
		if c.Classify(ex.Features) == ex.Label {
			correct++
		}
	}
	return float64(correct) / float64(len(set))
}
