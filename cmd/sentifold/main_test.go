package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/tsawler/sentifold"
)

func writeCorpus(t *testing.T, dir string) (train, test string) {
	t.Helper()

	var b strings.Builder
	b.WriteString("PhraseId\tSentenceId\tPhrase\tSentiment\n")
	rows := []struct {
		text  string
		score int
	}{
		{"a wonderful charming film", 4},
		{"a dreadful boring mess", 0},
		{"the film runs ninety minutes", 2},
	}
	id := 1
	for i := 0; i < 10; i++ {
		for _, r := range rows {
			fmt.Fprintf(&b, "%d\t%d\t%s number %d\t%d\n", id, i+1, r.text, i, r.score)
			id++
		}
	}
	train = filepath.Join(dir, "train.tsv")
	require.NoError(t, os.WriteFile(train, []byte(b.String()), 0o644))

	test = filepath.Join(dir, "test.tsv")
	require.NoError(t, os.WriteFile(test, []byte("PhraseId\tSentenceId\tPhrase\n500\t90\ta charming film\n501\t90\tboring\n"), 0o644))

	liwc := filepath.Join(dir, "liwc.dic")
	require.NoError(t, os.WriteFile(liwc, []byte("%\n126\tposemo\n127\tnegemo\n%\ncharm*\t126\nbor*\t127\n"), 0o644))
	mpqa := filepath.Join(dir, "mpqa.tff")
	require.NoError(t, os.WriteFile(mpqa, []byte("type=strongsubj len=1 word1=wonderful pos1=adj stemmed1=n priorpolarity=positive\n"), 0o644))
	return train, test
}

func TestEvaluateCommand(t *testing.T) {
	dir := t.TempDir()
	train, _ := writeCorpus(t, dir)

	err := newApp().Run([]string{"sentifold", "--log-level", "error",
		"evaluate", "--train", train, "--folds", "3", "--kinds", "bow", "--kinds", "negation", "--no-baseline"})
	assert.NoError(t, err)
}

func TestEvaluateCommandRejectsKind(t *testing.T) {
	dir := t.TempDir()
	train, _ := writeCorpus(t, dir)

	err := newApp().Run([]string{"sentifold", "--log-level", "error", "evaluate", "--train", train, "--kinds", "trigram"})
	assert.Error(t, err)
}

func TestSubmitCommand(t *testing.T) {
	dir := t.TempDir()
	train, test := writeCorpus(t, dir)
	out := filepath.Join(dir, "submission.csv")

	err := newApp().Run([]string{"sentifold", "--log-level", "error",
		"submit", "--train", train, "--test", test, "--out", out,
		"--subjectivity", filepath.Join(dir, "mpqa.tff"), "--liwc", filepath.Join(dir, "liwc.dic")})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "PhraseId,Sentiment", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "500,"))
	assert.True(t, strings.HasPrefix(lines[2], "501,"))
}

func TestSetupLoggingRejectsFormat(t *testing.T) {
	err := newApp().Run([]string{"sentifold", "--log-format", "xml", "evaluate"})
	assert.Error(t, err)
}

func TestConfigFromFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		env   string
		check func(*testing.T, sentifold.Config)
	}{
		{"defaults", nil, "", func(t *testing.T, cfg sentifold.Config) {
			assert.Equal(t, sentifold.DefaultBigramNBest, cfg.BigramNBest)
		}},
		{"bigram nbest flag", []string{"--bigram-nbest", "50"}, "", func(t *testing.T, cfg sentifold.Config) {
			assert.Equal(t, 50, cfg.BigramNBest)
		}},
		{"bigram nbest from environment", nil, "75", func(t *testing.T, cfg sentifold.Config) {
			assert.Equal(t, 75, cfg.BigramNBest)
		}},
		{"window and keep", []string{"--bigram-window", "4", "--bigram-keep", "20"}, "", func(t *testing.T, cfg sentifold.Config) {
			assert.Equal(t, 4, cfg.BigramWindow)
			assert.Equal(t, 20, cfg.BigramKeep)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("SENTIFOLD_BIGRAM_NBEST", tt.env)
			}
			var cfg sentifold.Config
			app := &cli.App{
				Flags: corpusFlags(),
				Action: func(c *cli.Context) error {
					var err error
					cfg, err = configFromFlags(c)
					return err
				},
			}
			require.NoError(t, app.Run(append([]string{"sentifold"}, tt.args...)))
			tt.check(t, cfg)
		})
	}
}
