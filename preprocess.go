package sentifold

import (
	"regexp"
	"strings"
	"sync"

	"github.com/bbalet/stopwords"
)

// keptStopWords are stop words that survive preprocessing because they are
// the halves of a split "can't" or "don't". Negators are kept separately.
var keptStopWords = map[string]bool{
	"can": true, "don": true, "t": true,
}

var punctuationRE = regexp.MustCompile(`[-.?!/\\%@,":;()|0-9]`)

// Preprocessor normalizes phrase text before tokenization: lowercases,
// strips punctuation and digits, and removes stop words other than
// negators.
type Preprocessor struct {
	language  string
	tokenizer Tokenizer

	mutex sync.RWMutex
	stop  map[string]bool
}

// NewPreprocessor creates a preprocessor for an ISO 639-1 language code
// (e.g. "en") that tokenizes its output with a word/punctuation tokenizer.
func NewPreprocessor(language string) *Preprocessor {
	if language == "" {
		language = "en"
	}
	return &Preprocessor{
		language:  language,
		tokenizer: NewWordPunctTokenizer(),
		stop:      make(map[string]bool),
	}
}

// Normalize returns the cleaned phrase text.
func (p *Preprocessor) Normalize(text string) string {
	words := strings.Fields(strings.ToLower(text))
	kept := words[:0]
	for _, w := range words {
		w = punctuationRE.ReplaceAllString(w, "")
		if w == "" || p.isStopWord(w) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// Tokenize normalizes text and splits it into tokens. It lets a
// Preprocessor stand in wherever a Tokenizer is expected.
func (p *Preprocessor) Tokenize(text string) []string {
	return p.tokenizer.Tokenize(p.Normalize(text))
}

// isStopWord asks the stopwords library whether word would be removed,
// caching the answer. Negators are never stop words, so the negation
// feature still sees them.
func (p *Preprocessor) isStopWord(word string) bool {
	if IsNegator(word) || keptStopWords[word] {
		return false
	}

	p.mutex.RLock()
	stop, found := p.stop[word]
	p.mutex.RUnlock()
	if found {
		return stop
	}

	cleaned := strings.TrimSpace(stopwords.CleanString(word, p.language, false))
	stop = cleaned == ""

	p.mutex.Lock()
	p.stop[word] = stop
	p.mutex.Unlock()
	return stop
}
