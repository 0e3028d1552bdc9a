package sentifold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxentClassify(t *testing.T) {
	c, err := MaxentTrainer{Iterations: 50}.Train(separableSet())
	require.NoError(t, err)
	assert.Equal(t, []Label{Positive, Negative}, c.Labels())

	assert.Equal(t, Positive, c.Classify(Features{"contains(good)": Bool(true), "x": Bool(true)}))
	assert.Equal(t, Negative, c.Classify(Features{"contains(good)": Bool(false), "x": Bool(true)}))
	assert.Equal(t, 1.0, Accuracy(c, separableSet()))
}

func TestMaxentMostInformativeFeatures(t *testing.T) {
	c, err := MaxentTrainer{Iterations: 50}.Train(separableSet())
	require.NoError(t, err)

	top := c.MostInformativeFeatures(2)
	require.Len(t, top, 2)
	for _, f := range top {
		assert.Equal(t, "contains(good)", f.Name)
		assert.Greater(t, f.Ratio, 0.0)
		assert.Empty(t, f.Disfavored)
	}
	assert.Nil(t, c.MostInformativeFeatures(0))
}

func TestMaxentIsDeterministic(t *testing.T) {
	a, err := MaxentTrainer{Iterations: 20}.Train(separableSet())
	require.NoError(t, err)
	b, err := MaxentTrainer{Iterations: 20}.Train(separableSet())
	require.NoError(t, err)
	assert.Equal(t, a.MostInformativeFeatures(4), b.MostInformativeFeatures(4))
}

func TestMaxentEmptySet(t *testing.T) {
	_, err := MaxentTrainer{}.Train(FeatureSet{})
	assert.ErrorIs(t, err, ErrEmptyTrainingSet)
}
