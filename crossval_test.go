package sentifold

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alternating(i int) Label {
	if i%2 == 0 {
		return Positive
	}
	return Negative
}

func TestCrossValidationFolds(t *testing.T) {
	set := indexedSet(12, alternating)
	trainer := &recordingTrainer{labels: []Label{Positive, Negative}}

	var calls atomic.Int32
	cv := CrossValidator{Folds: 5, Trainer: trainer, OnFold: func(FoldResult) { calls.Add(1) }}
	res, err := cv.Run(context.Background(), set, nil)
	require.NoError(t, err)

	assert.Equal(t, Done, res.State)
	assert.Equal(t, 2, res.Dropped)
	assert.Equal(t, int32(5), calls.Load())
	require.Len(t, res.Folds, 5)
	require.Len(t, trainer.sets, 5)

	for i, fold := range res.Folds {
		assert.Equal(t, i, fold.Index)
		assert.Equal(t, 2, fold.TestSize)
		assert.Equal(t, 10, fold.TrainSize)

		// Sequential folds train in order; each excludes only its own slice.
		train := ids(trainer.sets[i])
		assert.NotContains(t, train, 2*i)
		assert.NotContains(t, train, 2*i+1)
		assert.Contains(t, train, 10, "dropped examples still train")
		assert.Contains(t, train, 11)

		for _, l := range res.Labels {
			assert.Equal(t, fold.TestSize, fold.Tallies[l].Total())
		}
	}
}

func TestCrossValidationTenDocuments(t *testing.T) {
	set := make(FeatureSet, 10)
	for i := range set {
		label := alternating(i)
		set[i] = Example{Features: Features{"contains(good)": Bool(label == Positive)}, Label: label}
	}

	res, err := CrossValidator{Folds: 5, Trainer: NaiveBayesTrainer{}}.Run(context.Background(), set, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Dropped)
	assert.Equal(t, map[Label]int{Positive: 5, Negative: 5}, res.LabelCounts)
	for _, fold := range res.Folds {
		for _, l := range []Label{Positive, Negative} {
			tally := fold.Tallies[l]
			assert.Equal(t, 2, tally.Total())
			// A perfect fold has no errors, so the zero guard applies.
			assert.Equal(t, 1, tally.TP)
			assert.Equal(t, Scores{}, fold.Scores[l])
		}
	}
	assert.Equal(t, Scores{}, res.Macro)
}

func TestCrossValidationAverages(t *testing.T) {
	// pred indexes into [positive, negative].
	rows := []struct {
		gold Label
		pred int
	}{
		// fold 0
		{Positive, 0}, {Positive, 0}, {Positive, 1}, {Negative, 0},
		// fold 1
		{Positive, 0}, {Positive, 1}, {Negative, 1}, {Negative, 0},
	}
	set := make(FeatureSet, len(rows))
	for i, r := range rows {
		set[i] = Example{Features: Features{"pred": Count(r.pred)}, Label: r.gold}
	}
	labels := []Label{Positive, Negative}
	trainer := &recordingTrainer{labels: labels}

	res, err := CrossValidator{Folds: 2, Trainer: trainer}.Run(context.Background(), set, labels)
	require.NoError(t, err)

	assert.Equal(t, ConfusionTally{TP: 2, FN: 1, FP: 1}, res.Folds[0].Tallies[Positive])
	assert.InDelta(t, 2.0/3, res.Folds[0].Scores[Positive].Precision, 1e-9)
	assert.Equal(t, ConfusionTally{FN: 1, FP: 1, TN: 2}, res.Folds[0].Tallies[Negative])
	assert.Equal(t, Scores{}, res.Folds[0].Scores[Negative])
	assert.InDelta(t, 0.5, res.Folds[1].Scores[Negative].F1, 1e-9)

	assert.InDelta(t, 7.0/12, res.PerLabel[Positive].Precision, 1e-9)
	assert.InDelta(t, 0.25, res.PerLabel[Negative].Precision, 1e-9)
	assert.InDelta(t, 10.0/24, res.Macro.Precision, 1e-9)
	assert.Equal(t, map[Label]int{Positive: 5, Negative: 3}, res.LabelCounts)
	assert.InDelta(t, 44.0/96, res.Micro.Precision, 1e-9)
	assert.InDelta(t, res.Macro.F1, (res.PerLabel[Positive].F1+res.PerLabel[Negative].F1)/2, 1e-9)
}

func TestCrossValidationParallelMatchesSequential(t *testing.T) {
	set := make(FeatureSet, 40)
	for i := range set {
		label := []Label{Positive, Negative, Neutral}[i%3]
		set[i] = Example{
			Features: Features{
				"contains(good)": Bool(label == Positive || i%7 == 0),
				"contains(bad)":  Bool(label == Negative),
				"n":              Count(i % 4),
			},
			Label: label,
		}
	}

	seq, err := CrossValidator{Folds: 5, Trainer: NaiveBayesTrainer{}}.Run(context.Background(), set, nil)
	require.NoError(t, err)
	par, err := CrossValidator{Folds: 5, Trainer: NaiveBayesTrainer{}, Parallelism: 3}.Run(context.Background(), set, nil)
	require.NoError(t, err)

	assert.Equal(t, seq.Folds, par.Folds)
	assert.Equal(t, seq.PerLabel, par.PerLabel)
	assert.Equal(t, seq.Macro, par.Macro)
	assert.Equal(t, seq.Micro, par.Micro)
}

func TestCrossValidationErrors(t *testing.T) {
	trainer := &recordingTrainer{labels: []Label{Positive, Negative}}
	set := indexedSet(10, alternating)

	tests := []struct {
		name   string
		cv     CrossValidator
		set    FeatureSet
		labels []Label
		is     error
	}{
		{"one fold", CrossValidator{Folds: 1, Trainer: trainer}, set, nil, ErrInsufficientData},
		{"fewer examples than folds", CrossValidator{Folds: 5, Trainer: trainer}, set[:4], nil, ErrInsufficientData},
		{"label outside set", CrossValidator{Folds: 5, Trainer: trainer}, set, []Label{Positive}, ErrUnknownLabel},
		{"no trainer", CrossValidator{Folds: 5}, set, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.cv.Run(context.Background(), tt.set, tt.labels)
			assert.Nil(t, res)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestCrossValidationTrainerError(t *testing.T) {
	boom := errors.New("boom")
	res, err := CrossValidator{Folds: 2, Trainer: &recordingTrainer{err: boom}}.Run(context.Background(), indexedSet(4, alternating), nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
}

func TestCrossValidationCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trainer := &recordingTrainer{labels: []Label{Positive, Negative}}
	res, err := CrossValidator{Folds: 2, Trainer: trainer, Parallelism: 2}.Run(ctx, indexedSet(4, alternating), nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, trainer.sets)
}

func TestCVStateString(t *testing.T) {
	assert.Equal(t, "not-started", NotStarted.String())
	assert.Equal(t, "running-fold", RunningFold.String())
	assert.Equal(t, "aggregating", Aggregating.String())
	assert.Equal(t, "done", Done.String())
	assert.Equal(t, "CVState(9)", CVState(9).String())
}
