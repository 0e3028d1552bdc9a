package sentifold

import (
	"strings"
	"sync"

	"github.com/jdkato/prose/v2"
	"github.com/sirupsen/logrus"
)

// ProseTagger tags tokens with prose's averaged perceptron model. Results
// are cached per token sequence; sequences whose prose tokenization cannot
// be aligned back to the input fall back to a RuleTagger.
type ProseTagger struct {
	Logger logrus.FieldLogger

	fallback *RuleTagger

	mutex sync.RWMutex
	cache map[string][]TaggedToken
}

// NewProseTagger returns an empty ProseTagger.
func NewProseTagger() *ProseTagger {
	return &ProseTagger{
		fallback: NewRuleTagger(),
		cache:    make(map[string][]TaggedToken),
	}
}

// Tag implements Tagger.
func (pt *ProseTagger) Tag(tokens []string) []TaggedToken {
	if len(tokens) == 0 {
		return []TaggedToken{}
	}
	key := strings.Join(tokens, "\x1f")

	pt.mutex.RLock()
	tagged, found := pt.cache[key]
	pt.mutex.RUnlock()
	if found {
		return tagged
	}

	if proseTokens, err := proseTag(tokens); err == nil {
		tagged, _ = alignTags(tokens, proseTokens)
	} else {
		loggerOr(pt.Logger).WithError(err).Debug("prose tagging failed")
	}
	if tagged == nil {
		tagged = pt.fallback.Tag(tokens)
	}

	pt.mutex.Lock()
	pt.cache[key] = tagged
	pt.mutex.Unlock()
	return tagged
}

// Prime tags every uncached document in a single prose document and caches
// the results, so a corpus loads the tagging model once rather than once per
// phrase. If the combined tokenization does not align nothing is cached.
func (pt *ProseTagger) Prime(docs []Document) {
	pt.mutex.RLock()
	var pending []Document
	for _, d := range docs {
		if len(d.Tokens) == 0 {
			continue
		}
		if _, found := pt.cache[strings.Join(d.Tokens, "\x1f")]; !found {
			pending = append(pending, d)
		}
	}
	pt.mutex.RUnlock()
	docs = pending

	var all []string
	for _, d := range docs {
		all = append(all, d.Tokens...)
	}
	if len(all) == 0 {
		return
	}
	log := loggerOr(pt.Logger)

	proseTokens, err := proseTag(all)
	if err != nil {
		log.WithError(err).Debug("prose tagging failed")
		return
	}
	tagged, ok := alignTags(all, proseTokens)
	if !ok {
		log.WithField("tokens", len(all)).Debug("prose tokens did not align; tagging per phrase")
		return
	}

	pt.mutex.Lock()
	defer pt.mutex.Unlock()
	offset := 0
	for _, d := range docs {
		pt.cache[strings.Join(d.Tokens, "\x1f")] = tagged[offset : offset+len(d.Tokens) : offset+len(d.Tokens)]
		offset += len(d.Tokens)
	}
	log.WithFields(logrus.Fields{"phrases": len(docs), "tokens": len(all)}).Debug("primed prose tagger")
}

func proseTag(tokens []string) ([]prose.Token, error) {
	doc, err := prose.NewDocument(strings.Join(tokens, " "),
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, err
	}
	return doc.Tokens(), nil
}

// alignTags maps prose tokens back onto tokens. prose may split an input
// token (e.g. "can't" into "ca" and "n't"); the input token takes the tag of
// its first piece. It reports false when the pieces do not rebuild the
// input exactly.
func alignTags(tokens []string, pieces []prose.Token) ([]TaggedToken, bool) {
	tagged := make([]TaggedToken, len(tokens))
	next := 0
	for i, tok := range tokens {
		built := ""
		tag := ""
		for built != tok {
			if next >= len(pieces) {
				return nil, false
			}
			piece := pieces[next]
			next++
			if !strings.HasPrefix(tok, built+piece.Text) {
				return nil, false
			}
			built += piece.Text
			if tag == "" && piece.Text != "" {
				tag = piece.Tag
			}
		}
		tagged[i] = TaggedToken{Text: tok, Tag: tag}
	}
	if next != len(pieces) {
		return nil, false
	}
	return tagged, true
}
