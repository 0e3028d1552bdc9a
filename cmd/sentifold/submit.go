package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/tsawler/sentifold"
)

func submitCommand() *cli.Command {
	flags := append(corpusFlags(),
		&cli.StringFlag{Name: "test", Value: "test.tsv", Usage: "unlabeled phrases to predict", EnvVars: []string{"SENTIFOLD_TEST"}},
		&cli.StringFlag{Name: "out", Value: "submission.csv", Usage: "output CSV", EnvVars: []string{"SENTIFOLD_OUT"}},
		&cli.StringFlag{Name: "kind", Value: sentifold.Hybrid.String(), Usage: "feature family to train", EnvVars: []string{"SENTIFOLD_KIND"}},
	)

	return &cli.Command{
		Name:   "submit",
		Usage:  "train on the labeled corpus and write predictions for the test phrases",
		Flags:  flags,
		Action: runSubmit,
	}
}

func runSubmit(c *cli.Context) error {
	kind, err := sentifold.ParseFeatureKind(c.String("kind"))
	if err != nil {
		return err
	}
	exp, corpus, err := newExperiment(c)
	if err != nil {
		return err
	}
	test, err := sentifold.ReadTestPhrasesFile(c.String("test"))
	if err != nil {
		return err
	}

	labels, err := exp.Predict(corpus, kind, test)
	if err != nil {
		return err
	}

	out, err := os.Create(c.String("out"))
	if err != nil {
		return err
	}
	if err := sentifold.WriteSubmission(out, test, labels); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", c.String("out"), err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	log.WithFields(log.Fields{"path": c.String("out"), "rows": len(test)}).Info("wrote submission")
	return nil
}
