package sentifold

import "fmt"

// Config contains the settings of an experiment.
type Config struct {
	Language       string  // ISO 639-1 code for stop words
	VocabularySize int     // most frequent terms kept as features
	MinTokenLength int     // minimum token length counted for the preprocessed vocabulary
	Folds          int     // cross-validation folds
	TestRatio      float64 // held-out share, taken from the front
	Informative    int     // informative features reported per evaluation
	BigramWindow   int
	BigramNBest    int
	BigramKeep     int
	Limit          int   // phrases sampled; 0 keeps all
	Seed           int64 // sampling seed
	Parallelism    int   // folds trained at once
	Classifier     string
	Kinds          []FeatureKind
	Baseline       bool // also evaluate bag-of-words on unprocessed tokens
}

// DefaultConfig returns a default experiment configuration.
func DefaultConfig() Config {
	return Config{
		Language:       "en",
		VocabularySize: DefaultVocabularySize,
		MinTokenLength: 3,
		Folds:          DefaultFolds,
		TestRatio:      DefaultTestRatio,
		Informative:    DefaultInformativeCount,
		BigramWindow:   DefaultBigramWindow,
		BigramNBest:    DefaultBigramNBest,
		BigramKeep:     DefaultBigramKeep,
		Seed:           DefaultSeed,
		Parallelism:    1,
		Classifier:     NaiveBayesName,
		Kinds:          FeatureKinds(),
		Baseline:       true,
	}
}

// Validate reports the first setting out of range.
func (c Config) Validate() error {
	switch {
	case c.VocabularySize < 0:
		return fmt.Errorf("config: negative vocabulary size %d", c.VocabularySize)
	case c.Folds < 2:
		return fmt.Errorf("config: need at least 2 folds, got %d", c.Folds)
	case c.TestRatio <= 0 || c.TestRatio >= 1:
		return fmt.Errorf("config: test ratio %v not in (0, 1)", c.TestRatio)
	case c.BigramWindow < 2:
		return fmt.Errorf("config: bigram window %d below 2", c.BigramWindow)
	case c.Limit < 0:
		return fmt.Errorf("config: negative limit %d", c.Limit)
	}
	return nil
}
