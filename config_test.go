package sentifold

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative vocabulary", func(c *Config) { c.VocabularySize = -1 }},
		{"one fold", func(c *Config) { c.Folds = 1 }},
		{"no test share", func(c *Config) { c.TestRatio = 0 }},
		{"all test", func(c *Config) { c.TestRatio = 1 }},
		{"narrow window", func(c *Config) { c.BigramWindow = 1 }},
		{"negative limit", func(c *Config) { c.Limit = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 200, cfg.VocabularySize)
	assert.Equal(t, 5, cfg.Folds)
	assert.Equal(t, 0.6, cfg.TestRatio)
	assert.Equal(t, int64(420), cfg.Seed)
	assert.Equal(t, FeatureKinds(), cfg.Kinds)
	assert.True(t, cfg.Baseline)
}
