package sentifold

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

// DefaultSeed seeds phrase sampling.
const DefaultSeed = 420

// A Phrase is one labeled row of a phrase corpus.
type Phrase struct {
	ID         int
	SentenceID int
	Text       string
	Score      int // ordinal sentiment, 0 (most negative) to 4
}

// A TestPhrase is one unlabeled row to predict.
type TestPhrase struct {
	ID   int
	Text string
}

// ReadPhrases reads a tab-separated phrase corpus with the columns
// PhraseId, SentenceId, Phrase and Sentiment. Lines starting with "Phrase"
// are headers and skipped.
func ReadPhrases(r io.Reader) ([]Phrase, error) {
	var phrases []Phrase
	err := scanRows(r, func(n int, fields []string) error {
		if len(fields) < 4 {
			return fmt.Errorf("line %d: want 4 fields, got %d", n, len(fields))
		}
		var p Phrase
		var err error
		if p.ID, err = strconv.Atoi(fields[0]); err != nil {
			return fmt.Errorf("line %d: phrase id: %w", n, err)
		}
		if p.SentenceID, err = strconv.Atoi(fields[1]); err != nil {
			return fmt.Errorf("line %d: sentence id: %w", n, err)
		}
		p.Text = fields[2]
		if p.Score, err = strconv.Atoi(strings.TrimSpace(fields[3])); err != nil {
			return fmt.Errorf("line %d: sentiment: %w", n, err)
		}
		phrases = append(phrases, p)
		return nil
	})
	return phrases, err
}

// ReadPhrasesFile reads a phrase corpus from path.
func ReadPhrasesFile(path string) ([]Phrase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	phrases, err := ReadPhrases(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return phrases, nil
}

// ReadTestPhrases reads the unlabeled corpus with the columns PhraseId,
// SentenceId and Phrase. A missing phrase column reads as empty text.
func ReadTestPhrases(r io.Reader) ([]TestPhrase, error) {
	var phrases []TestPhrase
	err := scanRows(r, func(n int, fields []string) error {
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("line %d: phrase id: %w", n, err)
		}
		p := TestPhrase{ID: id}
		if len(fields) >= 3 {
			p.Text = fields[2]
		}
		phrases = append(phrases, p)
		return nil
	})
	return phrases, err
}

// ReadTestPhrasesFile reads an unlabeled corpus from path.
func ReadTestPhrasesFile(path string) ([]TestPhrase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	phrases, err := ReadTestPhrases(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return phrases, nil
}

func scanRows(r io.Reader, row func(n int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "Phrase") {
			continue
		}
		if err := row(n, strings.Split(line, "\t")); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// SamplePhrases returns a seeded shuffle of phrases truncated to limit.
// A limit of zero or less keeps every phrase. The input is not modified.
func SamplePhrases(phrases []Phrase, limit int, seed int64) []Phrase {
	out := make([]Phrase, len(phrases))
	copy(out, phrases)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// A LabelScheme maps ordinal sentiment scores to labels.
type LabelScheme map[int]Label

// FivePointScheme collapses the 0-4 scale: 0 and 1 are negative, 2 is
// neutral, 3 and 4 are positive.
func FivePointScheme() LabelScheme {
	return LabelScheme{0: Negative, 1: Negative, 2: Neutral, 3: Positive, 4: Positive}
}

// Label returns the label for score.
func (s LabelScheme) Label(score int) (Label, error) {
	l, ok := s[score]
	if !ok {
		return "", fmt.Errorf("score %d: %w", score, ErrUnknownLabel)
	}
	return l, nil
}

// Documents tokenizes phrases and labels them with scheme.
func Documents(phrases []Phrase, scheme LabelScheme, opts ...DocOpt) ([]Document, error) {
	docs := make([]Document, len(phrases))
	for i, p := range phrases {
		label, err := scheme.Label(p.Score)
		if err != nil {
			return nil, fmt.Errorf("phrase %d: %w", p.ID, err)
		}
		docs[i] = NewDocument(p.Text, label, opts...)
	}
	return docs, nil
}

// WriteSubmission writes PhraseId,Sentiment CSV rows for parallel phrase
// and label lists.
func WriteSubmission(w io.Writer, phrases []TestPhrase, labels []Label) error {
	if len(phrases) != len(labels) {
		return fmt.Errorf("submission: %d phrases but %d labels", len(phrases), len(labels))
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"PhraseId", "Sentiment"}); err != nil {
		return err
	}
	for i, p := range phrases {
		if err := cw.Write([]string{strconv.Itoa(p.ID), string(labels[i])}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
