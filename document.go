package sentifold

import (
	"strings"
	"unicode/utf8"
)

// A DocOpt represents a setting that changes the document creation process.
//
// For example, it might swap in the preprocessing pipeline:
//
//	doc := sentifold.NewDocument("...", sentifold.Positive, sentifold.UsingTokenizer(pre))
type DocOpt func(opts *DocOpts)

// DocOpts controls the Document creation process.
type DocOpts struct {
	Tokenizer Tokenizer // Tokenizer to use
	Lowercase bool      // If true, fold tokens to lower case
	MinLength int       // If positive, drop shorter tokens
}

// UsingTokenizer specifies the Tokenizer to use.
func UsingTokenizer(include Tokenizer) DocOpt {
	return func(opts *DocOpts) {
		opts.Tokenizer = include
	}
}

// WithLowercase can enable or disable (the default) case folding.
func WithLowercase(include bool) DocOpt {
	return func(opts *DocOpts) {
		opts.Lowercase = include
	}
}

// WithMinLength drops tokens shorter than n characters.
func WithMinLength(n int) DocOpt {
	return func(opts *DocOpts) {
		opts.MinLength = n
	}
}

// NewDocument tokenizes text into a labeled Document. The default
// tokenizer is NewWordTokenizer.
func NewDocument(text string, label Label, opts ...DocOpt) Document {
	base := DocOpts{}
	for _, applyOpt := range opts {
		applyOpt(&base)
	}
	if base.Tokenizer == nil {
		base.Tokenizer = defaultTokenizer
	}

	raw := base.Tokenizer.Tokenize(text)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if base.Lowercase {
			tok = strings.ToLower(tok)
		}
		if base.MinLength > 0 && utf8.RuneCountInString(tok) < base.MinLength {
			continue
		}
		tokens = append(tokens, tok)
	}
	return Document{Tokens: tokens, Label: label}
}

var defaultTokenizer = NewWordTokenizer()
