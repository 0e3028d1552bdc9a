package sentifold

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// A Tokenizer turns raw phrase text into an ordered token sequence.
type Tokenizer interface {
	Tokenize(text string) []string
}

type TokenTester func(string) bool

// wordTokenizer splits text into sentences and each sentence into words,
// separating punctuation and contractions ("don't" -> "do", "n't").
type wordTokenizer struct {
	segmenter      *sentences.DefaultSentenceTokenizer
	specialRE      *regexp.Regexp
	sanitizer      *strings.Replacer
	contractions   []string
	splitCases     []string
	suffixes       []string
	prefixes       []string
	isUnsplittable TokenTester
}

type TokenizerOptFunc func(*wordTokenizer)

// UsingIsUnsplittable gives a function that tests whether a token is splittable or not.
func UsingIsUnsplittable(x TokenTester) TokenizerOptFunc {
	return func(tokenizer *wordTokenizer) {
		tokenizer.isUnsplittable = x
	}
}

// Use the provided contractions.
func UsingContractions(x []string) TokenizerOptFunc {
	return func(tokenizer *wordTokenizer) {
		tokenizer.contractions = x
	}
}

// WithoutSegmentation disables sentence segmentation; the whole text is
// tokenized as one span.
func WithoutSegmentation() TokenizerOptFunc {
	return func(tokenizer *wordTokenizer) {
		tokenizer.segmenter = nil
	}
}

// NewWordTokenizer returns the contraction-aware tokenizer used for the raw
// (unpreprocessed) document variant.
func NewWordTokenizer(opts ...TokenizerOptFunc) Tokenizer {
	tok := new(wordTokenizer)

	tok.contractions = contractions
	tok.isUnsplittable = func(_ string) bool { return false }
	tok.prefixes = prefixes
	tok.sanitizer = sanitizer
	tok.specialRE = internalRE
	tok.suffixes = suffixes
	if seg, err := english.NewSentenceTokenizer(nil); err == nil {
		tok.segmenter = seg
	}

	for _, applyOpt := range opts {
		applyOpt(tok)
	}

	tok.splitCases = append(tok.splitCases, tok.contractions...)

	return tok
}

// Tokenize splits text into word and punctuation tokens.
func (t *wordTokenizer) Tokenize(text string) []string {
	clean := t.sanitizer.Replace(text)

	spans := []string{clean}
	if t.segmenter != nil {
		spans = spans[:0]
		for _, s := range t.segmenter.Tokenize(clean) {
			spans = append(spans, s.Text)
		}
	}

	var tokens []string
	cache := map[string][]string{}
	for _, span := range spans {
		for _, field := range strings.FieldsFunc(span, unicode.IsSpace) {
			toks, found := cache[field]
			if !found {
				toks = t.doSplit(field)
				cache[field] = toks
			}
			tokens = append(tokens, toks...)
		}
	}
	return tokens
}

func (t *wordTokenizer) isSpecial(token string) bool {
	return t.specialRE.MatchString(token) || t.isUnsplittable(token)
}

func (t *wordTokenizer) doSplit(token string) []string {
	var tokens, suffs []string

	last := 0
	for token != "" && utf8.RuneCountInString(token) != last {
		if t.isSpecial(token) {
			tokens = append(tokens, token)
			break
		}
		last = utf8.RuneCountInString(token)
		lower := strings.ToLower(token)
		if hasAnyPrefix(token, t.prefixes) {
			// $100 -> [$, 100]
			tokens = append(tokens, string(token[0]))
			token = token[1:]
		} else if idx := hasAnyIndex(lower, t.splitCases); idx > -1 {
			// they'll -> [they, 'll]; don't -> [do, n't]
			if idx > 0 {
				tokens = append(tokens, token[:idx])
			}
			token = token[idx:]
			if m := matchedCase(strings.ToLower(token), t.splitCases); m != "" && len(m) < len(token) {
				tokens = append(tokens, token[:len(m)])
				token = token[len(m):]
				last = 0
			}
		} else if hasAnySuffix(token, t.suffixes) {
			// Well) -> [Well, )]
			suffs = append([]string{string(token[len(token)-1])}, suffs...)
			token = token[:len(token)-1]
		} else {
			tokens = append(tokens, token)
			break
		}
	}

	return append(tokens, suffs...)
}

// matchedCase returns the split case s starts with, if any.
func matchedCase(s string, cases []string) string {
	for _, c := range cases {
		if strings.HasPrefix(s, c) {
			return c
		}
	}
	return ""
}

func hasAnyPrefix(s string, prefixes []string) bool {
	n := len(s)
	for _, prefix := range prefixes {
		if n > len(prefix) && strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	n := len(s)
	for _, suffix := range suffixes {
		if n > len(suffix) && strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func hasAnyIndex(s string, suffixes []string) int {
	n := len(s)
	for _, suffix := range suffixes {
		idx := strings.Index(s, suffix)
		if idx >= 0 && n > len(suffix) {
			return idx
		}
	}
	return -1
}

// wordPunctTokenizer splits text into runs of word characters and runs of
// punctuation.
type wordPunctTokenizer struct {
	re *regexp.Regexp
}

// NewWordPunctTokenizer returns the tokenizer used after preprocessing.
func NewWordPunctTokenizer() Tokenizer {
	return wordPunctTokenizer{re: wordPunctRE}
}

// Tokenize splits text on word/punctuation boundaries.
func (t wordPunctTokenizer) Tokenize(text string) []string {
	return t.re.FindAllString(text, -1)
}

var wordPunctRE = regexp.MustCompile(`\w+|[^\w\s]+`)
var internalRE = regexp.MustCompile(`^(?:[A-Za-z]\.){2,}$|^[A-Z][a-z]{1,2}\.$`)
var sanitizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"&rsquo;", "'")
var contractions = []string{"'ll", "'s", "'re", "'m", "'ve", "'d", "n't"}
var suffixes = []string{",", ")", `"`, "]", "!", ";", ".", "?", ":", "'"}
var prefixes = []string{"$", "(", `"`, "["}
