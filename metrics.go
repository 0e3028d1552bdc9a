package sentifold

import "fmt"

// A ConfusionTally holds one label's outcome counts over a gold/predicted
// pair list, treating the label as the positive class.
type ConfusionTally struct {
	TP, FP, FN, TN int
}

// Total returns the number of pairs tallied.
func (t ConfusionTally) Total() int {
	return t.TP + t.FP + t.FN + t.TN
}

// Tally counts outcomes for label over parallel gold and predicted lists.
//
//	gold == label && predicted == label  -> TP
//	gold == label && predicted != label  -> FN
//	gold != label && predicted == label  -> FP
//	otherwise                            -> TN
func Tally(label Label, gold, predicted []Label) ConfusionTally {
	var t ConfusionTally
	for i, g := range gold {
		p := predicted[i]
		switch {
		case g == label && p == label:
			t.TP++
		case g == label:
			t.FN++
		case p == label:
			t.FP++
		default:
			t.TN++
		}
	}
	return t
}

// Scores is a precision/recall/F1 triple.
type Scores struct {
	Precision float64
	Recall    float64
	F1        float64
}

func (s Scores) String() string {
	return fmt.Sprintf("P=%.3f R=%.3f F1=%.3f", s.Precision, s.Recall, s.F1)
}

// Score converts a tally into precision, recall and F1.
//
// Precision is TP/(TP+FN) and recall is TP/(TP+FP); the names are swapped
// relative to the usual definitions and existing reports depend on it.
// When any of TP, FP or FN is zero all three scores are zero.
func (t ConfusionTally) Score() Scores {
	if t.TP == 0 || t.FP == 0 || t.FN == 0 {
		return Scores{}
	}
	tp := float64(t.TP)
	recall := tp / (tp + float64(t.FP))
	precision := tp / (tp + float64(t.FN))
	return Scores{
		Precision: precision,
		Recall:    recall,
		F1:        2 * recall * precision / (recall + precision),
	}
}
