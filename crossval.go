package sentifold

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultFolds is the standard fold count.
const DefaultFolds = 5

// CVState is the lifecycle stage of a cross-validation run.
type CVState int

const (
	NotStarted CVState = iota
	RunningFold
	Aggregating
	Done
)

func (s CVState) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case RunningFold:
		return "running-fold"
	case Aggregating:
		return "aggregating"
	case Done:
		return "done"
	}
	return fmt.Sprintf("CVState(%d)", int(s))
}

// CrossValidator runs k-fold cross-validation over a feature set.
type CrossValidator struct {
	Folds   int // DefaultFolds when zero
	Trainer Trainer

	// Parallelism bounds how many folds train at once. Values below 2
	// run folds sequentially.
	Parallelism int

	Logger logrus.FieldLogger

	// OnFold, if set, is called after each fold completes. With
	// Parallelism above 1 it may be called concurrently.
	OnFold func(FoldResult)
}

// A FoldResult holds one fold's per-label tallies and scores.
type FoldResult struct {
	Index     int
	TrainSize int
	TestSize  int
	Tallies   map[Label]ConfusionTally
	Scores    map[Label]Scores
}

// CrossValidation is the outcome of a completed run.
type CrossValidation struct {
	State       CVState
	Labels      []Label
	Folds       []FoldResult
	PerLabel    map[Label]Scores // mean over folds
	Macro       Scores
	Micro       Scores
	LabelCounts map[Label]int // over the whole input set
	Dropped     int           // trailing examples no fold tested
}

// Run splits set into k contiguous folds of ⌊M/k⌋ examples. Fold i tests
// on its own slice and trains a fresh classifier on every other example.
// Examples past k·⌊M/k⌋ are never tested. When labels is nil the labels of
// set are used in order of first appearance.
//
// Results are merged only once every fold has finished; on error or
// cancellation no partial result is returned.
func (cv CrossValidator) Run(ctx context.Context, set FeatureSet, labels []Label) (*CrossValidation, error) {
	k := cv.Folds
	if k == 0 {
		k = DefaultFolds
	}
	if k < 2 || len(set) < k {
		return nil, fmt.Errorf("cross-validation: %d examples into %d folds: %w", len(set), k, ErrInsufficientData)
	}
	if cv.Trainer == nil {
		return nil, fmt.Errorf("cross-validation: no trainer")
	}
	if labels == nil {
		labels = set.Labels()
	}
	known := make(map[Label]bool, len(labels))
	for _, l := range labels {
		known[l] = true
	}
	for i, ex := range set {
		if !known[ex.Label] {
			return nil, fmt.Errorf("cross-validation: example %d label %q: %w", i, ex.Label, ErrUnknownLabel)
		}
	}

	log := loggerOr(cv.Logger)
	foldSize := len(set) / k
	dropped := len(set) - foldSize*k
	log.WithFields(logrus.Fields{
		"state":   RunningFold,
		"folds":   k,
		"size":    foldSize,
		"dropped": dropped,
	}).Info("starting cross-validation")

	folds := make([]FoldResult, k)
	g, gctx := errgroup.WithContext(ctx)
	if cv.Parallelism > 1 {
		g.SetLimit(cv.Parallelism)
	} else {
		g.SetLimit(1)
	}
	for i := 0; i < k; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := cv.runFold(set, labels, i, foldSize, log)
			if err != nil {
				return err
			}
			folds[i] = res
			if cv.OnFold != nil {
				cv.OnFold(res)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("cross-validation: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("cross-validation: %w", err)
	}

	log.WithField("state", Aggregating).Debug("aggregating folds")
	result := aggregate(set, labels, folds)
	result.Dropped = dropped
	result.State = Done

	log.WithFields(logrus.Fields{
		"state":    Done,
		"macro_f1": result.Macro.F1,
		"micro_f1": result.Micro.F1,
	}).Info("cross-validation done")
	return result, nil
}

func (cv CrossValidator) runFold(set FeatureSet, labels []Label, i, foldSize int, log logrus.FieldLogger) (FoldResult, error) {
	start, end := i*foldSize, (i+1)*foldSize
	test := set[start:end]
	train := make(FeatureSet, 0, len(set)-foldSize)
	train = append(train, set[:start]...)
	train = append(train, set[end:]...)

	flog := log.WithFields(logrus.Fields{"fold": i, "train": len(train), "test": len(test)})
	flog.Debug("training fold")

	classifier, err := cv.Trainer.Train(train)
	if err != nil {
		return FoldResult{}, fmt.Errorf("fold %d: %w", i, err)
	}

	gold := make([]Label, len(test))
	predicted := make([]Label, len(test))
	for j, ex := range test {
		gold[j] = ex.Label
		predicted[j] = classifier.Classify(ex.Features)
	}

	res := FoldResult{
		Index:     i,
		TrainSize: len(train),
		TestSize:  len(test),
		Tallies:   make(map[Label]ConfusionTally, len(labels)),
		Scores:    make(map[Label]Scores, len(labels)),
	}
	for _, l := range labels {
		t := Tally(l, gold, predicted)
		res.Tallies[l] = t
		res.Scores[l] = t.Score()
	}
	flog.Debug("fold done")
	return res, nil
}

// aggregate averages per-label scores over folds, then across labels.
// Micro weights are each label's share of the whole set.
func aggregate(set FeatureSet, labels []Label, folds []FoldResult) *CrossValidation {
	result := &CrossValidation{
		Labels:      labels,
		Folds:       folds,
		PerLabel:    make(map[Label]Scores, len(labels)),
		LabelCounts: set.LabelCounts(),
	}

	n := len(labels)
	precision := make([]float64, n)
	recall := make([]float64, n)
	f1 := make([]float64, n)
	weights := make([]float64, n)

	p := make([]float64, len(folds))
	r := make([]float64, len(folds))
	f := make([]float64, len(folds))
	for li, l := range labels {
		for fi, fold := range folds {
			s := fold.Scores[l]
			p[fi], r[fi], f[fi] = s.Precision, s.Recall, s.F1
		}
		precision[li] = stat.Mean(p, nil)
		recall[li] = stat.Mean(r, nil)
		f1[li] = stat.Mean(f, nil)
		result.PerLabel[l] = Scores{Precision: precision[li], Recall: recall[li], F1: f1[li]}
		weights[li] = float64(result.LabelCounts[l]) / float64(len(set))
	}

	if n == 0 {
		return result
	}
	result.Macro = Scores{
		Precision: stat.Mean(precision, nil),
		Recall:    stat.Mean(recall, nil),
		F1:        stat.Mean(f1, nil),
	}
	result.Micro = Scores{
		Precision: floats.Dot(precision, weights),
		Recall:    floats.Dot(recall, weights),
		F1:        floats.Dot(f1, weights),
	}
	return result
}
