package sentifold

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight|tabwriter.Debug)
}

// WriteEvaluation renders a held-out evaluation: accuracy, the most
// informative features and the confusion matrix.
func WriteEvaluation(w io.Writer, title string, ev *Evaluation) error {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "%s\n", title)
	}
	fmt.Fprintf(&b, "train=%d test=%d accuracy=%.3f\n", ev.TrainSize, ev.TestSize, ev.Accuracy)
	if len(ev.Informative) > 0 {
		b.WriteString("Most informative features\n")
		for _, f := range ev.Informative {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if ev.Confusion != nil {
		return WriteConfusionMatrix(w, ev.Confusion, DefaultConfusionTruncate)
	}
	return nil
}

// WriteConfusionMatrix renders cm with gold labels as rows and predicted
// labels as columns, showing at most truncate labels.
func WriteConfusionMatrix(w io.Writer, cm *ConfusionMatrix, truncate int) error {
	labels := cm.Labels()
	if truncate > 0 && len(labels) > truncate {
		labels = labels[:truncate]
	}

	tw := newTable(w)
	fmt.Fprint(tw, "gold \\ predicted\t")
	for _, l := range labels {
		fmt.Fprintf(tw, "%s\t", l)
	}
	fmt.Fprintln(tw)
	for _, g := range labels {
		fmt.Fprintf(tw, "%s\t", g)
		for _, p := range labels {
			n := cm.At(g, p)
			if g == p {
				fmt.Fprintf(tw, "<%d>\t", n)
			} else {
				fmt.Fprintf(tw, "%d\t", n)
			}
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// WriteCrossValidation renders per-fold scores, per-label averages and the
// macro and micro averages of cv.
func WriteCrossValidation(w io.Writer, title string, cv *CrossValidation) error {
	if title != "" {
		if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
			return err
		}
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "fold\tlabel\ttrain\ttest\tTP\tFP\tFN\tTN\tprecision\trecall\tF1\t")
	for _, fold := range cv.Folds {
		for _, l := range cv.Labels {
			t, s := fold.Tallies[l], fold.Scores[l]
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%.3f\t%.3f\t%.3f\t\n",
				fold.Index, l, fold.TrainSize, fold.TestSize, t.TP, t.FP, t.FN, t.TN,
				s.Precision, s.Recall, s.F1)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	tw = newTable(w)
	fmt.Fprintln(tw, "label\tcount\tprecision\trecall\tF1\t")
	for _, l := range cv.Labels {
		s := cv.PerLabel[l]
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.3f\t%.3f\t\n", l, cv.LabelCounts[l], s.Precision, s.Recall, s.F1)
	}
	fmt.Fprintf(tw, "macro\t\t%.3f\t%.3f\t%.3f\t\n", cv.Macro.Precision, cv.Macro.Recall, cv.Macro.F1)
	fmt.Fprintf(tw, "micro\t\t%.3f\t%.3f\t%.3f\t\n", cv.Micro.Precision, cv.Micro.Recall, cv.Micro.F1)
	if err := tw.Flush(); err != nil {
		return err
	}

	if cv.Dropped > 0 {
		_, err := fmt.Fprintf(w, "%d trailing examples not tested\n", cv.Dropped)
		return err
	}
	return nil
}
