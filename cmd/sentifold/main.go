// Command sentifold evaluates sentiment feature families on a phrase corpus.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/tsawler/sentifold"
)

func main() {
	// Flags read their SENTIFOLD_* defaults from the environment, so a
	// .env file has to be loaded before parsing.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "sentifold: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "sentifold",
		Usage: "feature extraction and cross-validated evaluation for sentiment phrases",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "trace, debug, info, warn or error", EnvVars: []string{"SENTIFOLD_LOG_LEVEL"}},
			&cli.StringFlag{Name: "log-format", Value: "text", Usage: "text or json", EnvVars: []string{"SENTIFOLD_LOG_FORMAT"}},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			evaluateCommand(),
			submitCommand(),
		},
	}
}

func setupLogging(c *cli.Context) error {
	level, err := log.ParseLevel(c.String("log-level"))
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	switch strings.ToLower(c.String("log-format")) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", c.String("log-format"))
	}
	return nil
}

// corpusFlags are shared by every command that trains.
func corpusFlags() []cli.Flag {
	def := sentifold.DefaultConfig()
	return []cli.Flag{
		&cli.StringFlag{Name: "train", Value: "train.tsv", Usage: "labeled phrase corpus", EnvVars: []string{"SENTIFOLD_TRAIN"}},
		&cli.StringFlag{Name: "subjectivity", Usage: "MPQA subjectivity lexicon", EnvVars: []string{"SENTIFOLD_SUBJECTIVITY"}},
		&cli.StringFlag{Name: "liwc", Usage: "LIWC dictionary with posemo and negemo categories", EnvVars: []string{"SENTIFOLD_LIWC"}},
		&cli.IntFlag{Name: "limit", Value: def.Limit, Usage: "phrases to sample, 0 for all", EnvVars: []string{"SENTIFOLD_LIMIT"}},
		&cli.Int64Flag{Name: "seed", Value: def.Seed, Usage: "sampling seed", EnvVars: []string{"SENTIFOLD_SEED"}},
		&cli.IntFlag{Name: "vocab-size", Value: def.VocabularySize, EnvVars: []string{"SENTIFOLD_VOCAB_SIZE"}},
		&cli.IntFlag{Name: "min-length", Value: def.MinTokenLength, Usage: "minimum token length for the vocabulary", EnvVars: []string{"SENTIFOLD_MIN_LENGTH"}},
		&cli.StringFlag{Name: "language", Value: def.Language, Usage: "stop word language", EnvVars: []string{"SENTIFOLD_LANGUAGE"}},
		&cli.StringFlag{Name: "classifier", Value: def.Classifier, Usage: "naivebayes, maxent or bernoulli", EnvVars: []string{"SENTIFOLD_CLASSIFIER"}},
		&cli.IntFlag{Name: "bigram-window", Value: def.BigramWindow, EnvVars: []string{"SENTIFOLD_BIGRAM_WINDOW"}},
		&cli.IntFlag{Name: "bigram-nbest", Value: def.BigramNBest, Usage: "candidate bigrams scored before keeping the top ones", EnvVars: []string{"SENTIFOLD_BIGRAM_NBEST"}},
		&cli.IntFlag{Name: "bigram-keep", Value: def.BigramKeep, EnvVars: []string{"SENTIFOLD_BIGRAM_KEEP"}},
	}
}

func configFromFlags(c *cli.Context) (sentifold.Config, error) {
	cfg := sentifold.DefaultConfig()
	cfg.Limit = c.Int("limit")
	cfg.Seed = c.Int64("seed")
	cfg.VocabularySize = c.Int("vocab-size")
	cfg.MinTokenLength = c.Int("min-length")
	cfg.Language = c.String("language")
	cfg.Classifier = c.String("classifier")
	cfg.BigramWindow = c.Int("bigram-window")
	cfg.BigramNBest = c.Int("bigram-nbest")
	cfg.BigramKeep = c.Int("bigram-keep")

	if c.IsSet("folds") {
		cfg.Folds = c.Int("folds")
	}
	if c.IsSet("test-ratio") {
		cfg.TestRatio = c.Float64("test-ratio")
	}
	if c.IsSet("parallel") {
		cfg.Parallelism = c.Int("parallel")
	}
	if c.IsSet("informative") {
		cfg.Informative = c.Int("informative")
	}
	if c.IsSet("no-baseline") {
		cfg.Baseline = !c.Bool("no-baseline")
	}
	if names := c.StringSlice("kinds"); len(names) > 0 {
		cfg.Kinds = cfg.Kinds[:0]
		for _, name := range names {
			kind, err := sentifold.ParseFeatureKind(name)
			if err != nil {
				return cfg, err
			}
			cfg.Kinds = append(cfg.Kinds, kind)
		}
	}
	return cfg, cfg.Validate()
}

// newExperiment loads the corpus and lexicons named by the flags and
// prepares the experiment.
func newExperiment(c *cli.Context) (*sentifold.Experiment, *sentifold.Corpus, error) {
	cfg, err := configFromFlags(c)
	if err != nil {
		return nil, nil, err
	}

	exp := &sentifold.Experiment{Config: cfg, Logger: log.StandardLogger()}
	if path := c.String("subjectivity"); path != "" {
		lex, err := sentifold.LoadSubjectivityLexiconFile(path)
		if err != nil {
			return nil, nil, err
		}
		log.WithFields(log.Fields{"path": path, "entries": lex.Len()}).Info("loaded subjectivity lexicon")
		exp.Polarity = lex
	}
	if path := c.String("liwc"); path != "" {
		lex, err := sentifold.LoadPsychLexiconFile(path)
		if err != nil {
			return nil, nil, err
		}
		log.WithFields(log.Fields{"path": path, "entries": lex.Len()}).Info("loaded psych lexicon")
		exp.Psych = lex
	}

	phrases, err := sentifold.ReadPhrasesFile(c.String("train"))
	if err != nil {
		return nil, nil, err
	}
	corpus, err := exp.Prepare(phrases)
	if err != nil {
		return nil, nil, err
	}
	return exp, corpus, nil
}
