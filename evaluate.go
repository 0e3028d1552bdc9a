package sentifold

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// Evaluation defaults.
const (
	DefaultTestRatio         = 0.6
	DefaultInformativeCount  = 5
	DefaultConfusionTruncate = 9
)

// EvalOptions configures Evaluate.
type EvalOptions struct {
	// TestRatio is the share of the set, taken from the front, held out
	// for testing. DefaultTestRatio when zero.
	TestRatio float64

	// Informative is how many informative features to report.
	// DefaultInformativeCount when zero; negative disables.
	Informative int

	Logger logrus.FieldLogger
}

// DefaultEvalOptions returns the standard held-out evaluation options.
func DefaultEvalOptions() EvalOptions {
	return EvalOptions{
		TestRatio:   DefaultTestRatio,
		Informative: DefaultInformativeCount,
	}
}

// An Evaluation is the result of a single held-out train/test run.
type Evaluation struct {
	TrainSize   int
	TestSize    int
	Accuracy    float64
	Informative []InformativeFeature
	Confusion   *ConfusionMatrix
	Classifier  Classifier
}

// Evaluate splits set positionally, trains on the tail and tests on the
// head. With the default ratio the first ⌊0.6·M⌋ examples are the test
// slice and the remainder the training slice; order is preserved.
func Evaluate(set FeatureSet, trainer Trainer, opts EvalOptions) (*Evaluation, error) {
	ratio := opts.TestRatio
	if ratio == 0 {
		ratio = DefaultTestRatio
	}
	if ratio < 0 || ratio >= 1 {
		return nil, fmt.Errorf("evaluate: test ratio %v out of range", ratio)
	}
	informative := opts.Informative
	if informative == 0 {
		informative = DefaultInformativeCount
	}
	log := loggerOr(opts.Logger)

	cut := int(ratio * float64(len(set)))
	test, train := set[:cut], set[cut:]
	if len(test) == 0 || len(train) == 0 {
		return nil, fmt.Errorf("evaluate: %d examples at test ratio %v: %w", len(set), ratio, ErrInsufficientData)
	}

	log.WithFields(logrus.Fields{"train": len(train), "test": len(test)}).Debug("training held-out classifier")
	classifier, err := trainer.Train(train)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}

	gold := make([]Label, len(test))
	predicted := make([]Label, len(test))
	correct := 0
	for i, ex := range test {
		gold[i] = ex.Label
		predicted[i] = classifier.Classify(ex.Features)
		if gold[i] == predicted[i] {
			correct++
		}
	}

	ev := &Evaluation{
		TrainSize:  len(train),
		TestSize:   len(test),
		Accuracy:   float64(correct) / float64(len(test)),
		Confusion:  NewConfusionMatrix(gold, predicted),
		Classifier: classifier,
	}
	if informative > 0 {
		ev.Informative = classifier.MostInformativeFeatures(informative)
	}

	log.WithField("accuracy", ev.Accuracy).Info("held-out evaluation done")
	return ev, nil
}

// A ConfusionMatrix counts gold/predicted label pairs. Rows are gold
// labels and columns predicted labels, both ordered by descending gold
// frequency with ties broken alphabetically.
type ConfusionMatrix struct {
	labels []Label
	index  map[Label]int
	counts *mat.Dense
}

// NewConfusionMatrix tallies parallel gold and predicted label lists.
func NewConfusionMatrix(gold, predicted []Label) *ConfusionMatrix {
	freq := make(map[Label]int)
	for _, l := range gold {
		freq[l]++
	}
	for _, l := range predicted {
		if _, ok := freq[l]; !ok {
			freq[l] = 0
		}
	}

	cm := &ConfusionMatrix{index: make(map[Label]int, len(freq))}
	for l := range freq {
		cm.labels = append(cm.labels, l)
	}
	sort.Slice(cm.labels, func(i, j int) bool {
		a, b := cm.labels[i], cm.labels[j]
		if freq[a] != freq[b] {
			return freq[a] > freq[b]
		}
		return a < b
	})
	for i, l := range cm.labels {
		cm.index[l] = i
	}

	n := len(cm.labels)
	if n == 0 {
		return cm
	}
	cm.counts = mat.NewDense(n, n, nil)
	for i, g := range gold {
		r, c := cm.index[g], cm.index[predicted[i]]
		cm.counts.Set(r, c, cm.counts.At(r, c)+1)
	}
	return cm
}

// Labels returns the row and column order.
func (cm *ConfusionMatrix) Labels() []Label {
	out := make([]Label, len(cm.labels))
	copy(out, cm.labels)
	return out
}

// At returns how often gold was predicted as predicted.
func (cm *ConfusionMatrix) At(gold, predicted Label) int {
	r, ok1 := cm.index[gold]
	c, ok2 := cm.index[predicted]
	if !ok1 || !ok2 {
		return 0
	}
	return int(cm.counts.At(r, c))
}

// Total returns the number of pairs counted.
func (cm *ConfusionMatrix) Total() int {
	if cm.counts == nil {
		return 0
	}
	return int(mat.Sum(cm.counts))
}

// Correct returns the number of pairs on the diagonal.
func (cm *ConfusionMatrix) Correct() int {
	if cm.counts == nil {
		return 0
	}
	return int(mat.Trace(cm.counts))
}
