package sentifold

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/derekparker/trie/v3"
)

// Strength is the subjectivity strength of a polarity lexicon entry.
type Strength string

const (
	WeakSubjective   Strength = "weaksubj"
	StrongSubjective Strength = "strongsubj"
)

// Polarity is the prior polarity of a polarity lexicon entry.
type Polarity string

const (
	PositivePolarity Polarity = "positive"
	NegativePolarity Polarity = "negative"
	NeutralPolarity  Polarity = "neutral"
	BothPolarity     Polarity = "both"
)

// LexiconEntry represents a word's subjectivity information
type LexiconEntry struct {
	Word     string
	Strength Strength
	POS      string // The lexicon's part-of-speech tag, e.g. "adj" or "anypos".
	Stemmed  bool
	Polarity Polarity
}

// weight returns the count contribution of the entry: 1 for weak and 2 for
// strong subjectivity.
func (e LexiconEntry) weight() int {
	if e.Strength == StrongSubjective {
		return 2
	}
	if e.Strength == WeakSubjective {
		return 1
	}
	return 0
}

// PolarityLookup is the query side of a polarity lexicon.
type PolarityLookup interface {
	Lookup(word string) (LexiconEntry, bool)
}

// PrefixMatcher is the query side of a psychological lexicon.
type PrefixMatcher interface {
	IsPositive(word string) bool
	IsNegative(word string) bool
}

// SubjectivityLexicon is a read-only polarity lexicon keyed by word.
type SubjectivityLexicon struct {
	words map[string]LexiconEntry
}

// NewSubjectivityLexicon builds a lexicon from entries. Later entries for
// the same word replace earlier ones.
func NewSubjectivityLexicon(entries []LexiconEntry) *SubjectivityLexicon {
	sl := &SubjectivityLexicon{words: make(map[string]LexiconEntry, len(entries))}
	for _, e := range entries {
		sl.words[strings.ToLower(e.Word)] = e
	}
	return sl
}

// LoadSubjectivityLexicon parses the MPQA subjectivity clue format, one clue
// per line:
//
//	type=weaksubj len=1 word1=abandoned pos1=adj stemmed1=n priorpolarity=negative
func LoadSubjectivityLexicon(r io.Reader) (*SubjectivityLexicon, error) {
	var entries []LexiconEntry

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := make(map[string]string)
		for _, field := range strings.Fields(text) {
			key, value, ok := strings.Cut(field, "=")
			if !ok {
				continue
			}
			fields[key] = value
		}

		word, strength, polarity := fields["word1"], fields["type"], fields["priorpolarity"]
		if word == "" || strength == "" || polarity == "" {
			return nil, fmt.Errorf("subjectivity lexicon line %d: missing word1, type or priorpolarity", line)
		}

		entries = append(entries, LexiconEntry{
			Word:     word,
			Strength: Strength(strength),
			POS:      fields["pos1"],
			Stemmed:  fields["stemmed1"] == "y",
			Polarity: Polarity(polarity),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading subjectivity lexicon: %w", err)
	}

	return NewSubjectivityLexicon(entries), nil
}

// LoadSubjectivityLexiconFile opens path and parses it with
// LoadSubjectivityLexicon.
func LoadSubjectivityLexiconFile(path string) (*SubjectivityLexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening subjectivity lexicon: %w", err)
	}
	defer f.Close()
	return LoadSubjectivityLexicon(f)
}

// Lookup returns the entry for word, if any.
func (sl *SubjectivityLexicon) Lookup(word string) (LexiconEntry, bool) {
	entry, ok := sl.words[strings.ToLower(word)]
	return entry, ok
}

// Len returns the number of entries.
func (sl *SubjectivityLexicon) Len() int {
	return len(sl.words)
}

// psychMark records how a trie key participates in the psychological lexicon.
type psychMark uint8

const (
	posExact psychMark = 1 << iota
	posPrefix
	negExact
	negPrefix
)

// PsychLexicon is a read-only prefix-matched word list split into positive
// and negative categories. An entry ending in '*' matches every word sharing
// its prefix; other entries match exactly.
type PsychLexicon struct {
	entries *trie.Trie[psychMark]
	size    int
}

// NewPsychLexicon builds a lexicon from positive and negative entries.
func NewPsychLexicon(positive, negative []string) *PsychLexicon {
	marks := make(map[string]psychMark)
	add := func(entry string, exact, prefix psychMark) {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if stem, ok := strings.CutSuffix(entry, "*"); ok {
			if stem != "" {
				marks[stem] |= prefix
			}
			return
		}
		if entry != "" {
			marks[entry] |= exact
		}
	}
	for _, p := range positive {
		add(p, posExact, posPrefix)
	}
	for _, n := range negative {
		add(n, negExact, negPrefix)
	}

	t := trie.New[psychMark]()
	for key, mark := range marks {
		t.Add(key, mark)
	}
	return &PsychLexicon{entries: t, size: len(marks)}
}

// LoadPsychLexicon parses a LIWC dictionary: a header of "id<TAB>category"
// lines enclosed by '%' lines, followed by "word<TAB>id..." lines. Words in
// the posemo and negemo categories form the positive and negative sets.
func LoadPsychLexicon(r io.Reader) (*PsychLexicon, error) {
	var positive, negative []string
	var posID, negID string

	scanner := bufio.NewScanner(r)
	line, inHeader, headerSeen := 0, false, false
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "%" {
			inHeader = !inHeader
			headerSeen = true
			continue
		}

		fields := strings.Fields(text)
		if inHeader {
			if len(fields) < 2 {
				return nil, fmt.Errorf("psych lexicon line %d: malformed category", line)
			}
			switch fields[1] {
			case "posemo":
				posID = fields[0]
			case "negemo":
				negID = fields[0]
			}
			continue
		}
		if !headerSeen {
			return nil, fmt.Errorf("psych lexicon line %d: entry before category header", line)
		}

		word := fields[0]
		for _, cat := range fields[1:] {
			if _, err := strconv.Atoi(cat); err != nil {
				// Some entries carry conditional category expressions.
				continue
			}
			if cat == posID {
				positive = append(positive, word)
			}
			if cat == negID {
				negative = append(negative, word)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading psych lexicon: %w", err)
	}
	if posID == "" || negID == "" {
		return nil, fmt.Errorf("psych lexicon: posemo or negemo category not declared")
	}

	return NewPsychLexicon(positive, negative), nil
}

// LoadPsychLexiconFile opens path and parses it with LoadPsychLexicon.
func LoadPsychLexiconFile(path string) (*PsychLexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening psych lexicon: %w", err)
	}
	defer f.Close()
	return LoadPsychLexicon(f)
}

// IsPositive reports whether word matches a positive entry.
func (pl *PsychLexicon) IsPositive(word string) bool {
	return pl.match(word, posExact, posPrefix)
}

// IsNegative reports whether word matches a negative entry.
func (pl *PsychLexicon) IsNegative(word string) bool {
	return pl.match(word, negExact, negPrefix)
}

// Len returns the number of distinct entries.
func (pl *PsychLexicon) Len() int {
	return pl.size
}

func (pl *PsychLexicon) match(word string, exact, prefix psychMark) bool {
	word = strings.ToLower(word)
	if word == "" {
		return false
	}
	if node, ok := pl.entries.Find(word); ok && node.Val()&(exact|prefix) != 0 {
		return true
	}
	for i := len(word) - 1; i > 0; i-- {
		if node, ok := pl.entries.Find(word[:i]); ok && node.Val()&prefix != 0 {
			return true
		}
	}
	return false
}
