package main

import (
	"os"
	"sync"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/tsawler/sentifold"
)

func evaluateCommand() *cli.Command {
	def := sentifold.DefaultConfig()
	flags := append(corpusFlags(),
		&cli.IntFlag{Name: "folds", Value: def.Folds, EnvVars: []string{"SENTIFOLD_FOLDS"}},
		&cli.Float64Flag{Name: "test-ratio", Value: def.TestRatio, Usage: "held-out share taken from the front", EnvVars: []string{"SENTIFOLD_TEST_RATIO"}},
		&cli.IntFlag{Name: "informative", Value: def.Informative, EnvVars: []string{"SENTIFOLD_INFORMATIVE"}},
		&cli.IntFlag{Name: "parallel", Value: def.Parallelism, Usage: "folds trained at once", EnvVars: []string{"SENTIFOLD_PARALLEL"}},
		&cli.StringSliceFlag{Name: "kinds", Usage: "feature families to run (bow, negation, bigram, pos, subjectivity, psych, hybrid)", EnvVars: []string{"SENTIFOLD_KINDS"}},
		&cli.BoolFlag{Name: "no-baseline", Usage: "skip bag-of-words on unprocessed tokens", EnvVars: []string{"SENTIFOLD_NO_BASELINE"}},
		&cli.BoolFlag{Name: "progress", Usage: "show a progress bar per feature family"},
	)

	return &cli.Command{
		Name:   "evaluate",
		Usage:  "run held-out and cross-validated evaluation for each feature family",
		Flags:  flags,
		Action: runEvaluate,
	}
}

func runEvaluate(c *cli.Context) error {
	exp, corpus, err := newExperiment(c)
	if err != nil {
		return err
	}

	progress := c.Bool("progress")
	if progress {
		bars := newFoldBars(exp.Config.Folds)
		exp.OnFold = bars.done
		uiprogress.Start()
	}

	runs, err := exp.Run(c.Context, corpus)
	if progress {
		uiprogress.Stop()
	}
	if err != nil {
		return err
	}

	for _, run := range runs {
		if err := sentifold.WriteEvaluation(os.Stdout, run.Name+" held-out", run.Evaluation); err != nil {
			return err
		}
		if err := sentifold.WriteCrossValidation(os.Stdout, run.Name+" cross-validation", run.CrossValidation); err != nil {
			return err
		}
	}
	return nil
}

// foldBars keeps one progress bar per run.
type foldBars struct {
	folds int

	mu   sync.Mutex
	bars map[string]*uiprogress.Bar
}

func newFoldBars(folds int) *foldBars {
	return &foldBars{folds: folds, bars: make(map[string]*uiprogress.Bar)}
}

func (fb *foldBars) done(run string, _ sentifold.FoldResult) {
	fb.mu.Lock()
	bar, ok := fb.bars[run]
	if !ok {
		bar = uiprogress.AddBar(fb.folds).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(*uiprogress.Bar) string { return run })
		fb.bars[run] = bar
	}
	fb.mu.Unlock()
	bar.Incr()
}
