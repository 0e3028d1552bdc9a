package sentifold

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBernoulliClassify(t *testing.T) {
	c, err := BernoulliTrainer{}.Train(separableSet())
	require.NoError(t, err)
	assert.Equal(t, []Label{Positive, Negative}, c.Labels())

	assert.Equal(t, Positive, c.Classify(Features{"contains(good)": Bool(true), "x": Bool(true)}))
	assert.Equal(t, Negative, c.Classify(Features{"contains(good)": Bool(false), "x": Bool(true)}))
	assert.Equal(t, Positive, c.Classify(Features{"contains(good)": Bool(true), "x": Bool(true), "unseen": Count(3)}),
		"features never seen in training are ignored")
	assert.Equal(t, 1.0, Accuracy(c, separableSet()))
	assert.Nil(t, c.MostInformativeFeatures(5))
}

func TestBernoulliEmptySet(t *testing.T) {
	_, err := BernoulliTrainer{}.Train(FeatureSet{})
	assert.ErrorIs(t, err, ErrEmptyTrainingSet)
}

func TestBernoulliCrossValidation(t *testing.T) {
	set := make(FeatureSet, 10)
	for i := range set {
		label := alternating(i)
		set[i] = Example{Features: Features{"contains(good)": Bool(label == Positive)}, Label: label}
	}

	trainer, err := NewTrainer(BernoulliName, nil)
	require.NoError(t, err)
	res, err := CrossValidator{Folds: 5, Trainer: trainer, Parallelism: 2}.Run(context.Background(), set, nil)
	require.NoError(t, err)

	assert.Equal(t, Done, res.State)
	require.Len(t, res.Folds, 5)
	for _, fold := range res.Folds {
		for _, l := range []Label{Positive, Negative} {
			assert.Equal(t, 1, fold.Tallies[l].TP)
			assert.Equal(t, 0, fold.Tallies[l].FP)
		}
	}
	assert.Equal(t, Scores{}, res.Macro)
}
