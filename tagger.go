package sentifold

import (
	"strings"
	"unicode"
)

// A TaggedToken is a token with its part-of-speech tag.
type TaggedToken struct {
	Text string
	Tag  string // Penn Treebank style tag, e.g. "NN" or "VBD".
}

// A Tagger assigns part-of-speech tags to a token sequence. The returned
// slice is parallel to tokens.
type Tagger interface {
	Tag(tokens []string) []TaggedToken
}

// RuleTagger is a lightweight Penn-style tagger: a closed-class lexicon,
// suffix rules and a few contextual repairs. It is deterministic and needs
// no model data.
type RuleTagger struct {
	lexicon map[string]string
}

// NewRuleTagger returns a RuleTagger with the built-in English lexicon.
func NewRuleTagger() *RuleTagger {
	return &RuleTagger{lexicon: closedClass}
}

// Tag tags each token.
func (rt *RuleTagger) Tag(tokens []string) []TaggedToken {
	tagged := make([]TaggedToken, len(tokens))
	for i, tok := range tokens {
		tagged[i] = TaggedToken{Text: tok, Tag: rt.guess(tok)}
	}

	// Contextual repairs.
	for i := 1; i < len(tagged); i++ {
		prev := tagged[i-1].Tag
		switch {
		case prev == "TO" && (tagged[i].Tag == "NN" || tagged[i].Tag == "VBP"):
			tagged[i].Tag = "VB"
		case (prev == "DT" || prev == "PRP$" || strings.HasPrefix(prev, "JJ")) && strings.HasPrefix(tagged[i].Tag, "VB") && tagged[i].Tag != "VBG":
			if _, closed := rt.lexicon[strings.ToLower(tagged[i].Text)]; !closed {
				tagged[i].Tag = "NN"
			}
		case prev == "MD" && tagged[i].Tag == "NN":
			tagged[i].Tag = "VB"
		}
	}
	return tagged
}

func (rt *RuleTagger) guess(tok string) string {
	lower := strings.ToLower(tok)
	if tag, ok := rt.lexicon[lower]; ok {
		return tag
	}
	if lower == "n't" {
		return "RB"
	}

	if isPunctuation(tok) {
		switch tok {
		case ".", "!", "?":
			return "."
		case ",", ":", ";":
			return tok
		case "(", "[", "{":
			return "("
		case ")", "]", "}":
			return ")"
		}
		return "SYM"
	}
	if isNumeric(tok) {
		return "CD"
	}

	switch {
	case strings.HasSuffix(lower, "ly") && len(lower) > 4:
		return "RB"
	case strings.HasSuffix(lower, "ing") && len(lower) > 4:
		return "VBG"
	case strings.HasSuffix(lower, "ed") && len(lower) > 3:
		return "VBD"
	case strings.HasSuffix(lower, "est") && len(lower) > 5:
		return "JJS"
	case hasAnySuffix(lower, nounSuffixes):
		return "NN"
	case hasAnySuffix(lower, adjectiveSuffixes):
		return "JJ"
	case hasAnySuffix(lower, agentSuffixes):
		return "NN"
	case strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") && len(lower) > 3:
		return "NNS"
	}
	if tok != lower && unicode.IsUpper([]rune(tok)[0]) {
		return "NNP"
	}
	return "NN"
}

func isPunctuation(text string) bool {
	for _, r := range text {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return text != ""
}

func isNumeric(text string) bool {
	digits := 0
	for _, r := range text {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',' || r == '-':
		default:
			return false
		}
	}
	return digits > 0
}

var adjectiveSuffixes = []string{"ous", "ful", "ive", "able", "ible", "less", "ish", "ic", "ical", "al", "ary", "y"}
var nounSuffixes = []string{"tion", "sion", "ment", "ness", "ity", "ism", "ship", "hood"}
var agentSuffixes = []string{"ist", "ance", "ence", "er", "or"}

var closedClass = map[string]string{
	// determiners
	"a": "DT", "an": "DT", "the": "DT", "this": "DT", "that": "DT", "these": "DT",
	"those": "DT", "some": "DT", "any": "DT", "every": "DT", "each": "DT",
	"no": "DT", "all": "DT", "both": "DT", "another": "DT", "neither": "DT",
	// pronouns
	"i": "PRP", "you": "PRP", "he": "PRP", "she": "PRP", "it": "PRP", "we": "PRP",
	"they": "PRP", "me": "PRP", "him": "PRP", "her": "PRP", "us": "PRP", "them": "PRP",
	"itself": "PRP", "himself": "PRP", "herself": "PRP", "themselves": "PRP",
	"my": "PRP$", "your": "PRP$", "his": "PRP$", "its": "PRP$", "our": "PRP$", "their": "PRP$",
	"who": "WP", "what": "WP", "whom": "WP", "which": "WDT", "whose": "WP$",
	"when": "WRB", "where": "WRB", "why": "WRB", "how": "WRB",
	// prepositions and subordinators
	"of": "IN", "in": "IN", "on": "IN", "at": "IN", "by": "IN", "for": "IN",
	"with": "IN", "about": "IN", "from": "IN", "into": "IN", "than": "IN",
	"over": "IN", "after": "IN", "before": "IN", "because": "IN", "if": "IN",
	"while": "IN", "though": "IN", "although": "IN", "like": "IN", "as": "IN",
	"through": "IN", "without": "IN", "under": "IN", "between": "IN", "during": "IN",
	"to": "TO",
	// conjunctions
	"and": "CC", "but": "CC", "or": "CC", "nor": "CC", "yet": "CC",
	// modals
	"can": "MD", "could": "MD", "will": "MD", "would": "MD", "shall": "MD",
	"should": "MD", "may": "MD", "might": "MD", "must": "MD", "wo": "MD", "ca": "MD",
	// auxiliaries and frequent verbs
	"is": "VBZ", "are": "VBP", "am": "VBP", "was": "VBD", "were": "VBD",
	"be": "VB", "been": "VBN", "being": "VBG", "'s": "VBZ", "'re": "VBP", "'m": "VBP",
	"have": "VBP", "has": "VBZ", "had": "VBD", "'ve": "VBP",
	"do": "VBP", "does": "VBZ", "did": "VBD", "done": "VBN",
	"get": "VB", "gets": "VBZ", "got": "VBD", "make": "VB", "makes": "VBZ", "made": "VBD",
	"go": "VB", "goes": "VBZ", "went": "VBD", "gone": "VBN", "see": "VB", "saw": "VBD",
	"seen": "VBN", "know": "VBP", "knew": "VBD", "think": "VBP", "feel": "VBP", "feels": "VBZ",
	"take": "VB", "takes": "VBZ", "took": "VBD", "give": "VB", "gives": "VBZ", "gave": "VBD",
	"seems": "VBZ", "seem": "VBP", "love": "VBP", "loves": "VBZ", "hate": "VBP", "hates": "VBZ",
	"want": "VBP", "wants": "VBZ", "say": "VBP", "says": "VBZ", "said": "VBD",
	// adverbs and particles
	"not": "RB", "never": "RB", "very": "RB", "too": "RB", "so": "RB", "also": "RB",
	"just": "RB", "really": "RB", "even": "RB", "still": "RB", "only": "RB",
	"well": "RB", "almost": "RB", "often": "RB", "here": "RB", "there": "EX",
	"rather": "RB", "hardly": "RB", "seldom": "RB", "rarely": "RB", "ever": "RB",
	"again": "RB", "quite": "RB", "enough": "RB", "up": "RP", "out": "RP", "off": "RP",
	// frequent adjectives
	"good": "JJ", "bad": "JJ", "great": "JJ", "best": "JJS", "worst": "JJS",
	"better": "JJR", "worse": "JJR", "new": "JJ", "old": "JJ", "big": "JJ", "small": "JJ",
	"long": "JJ", "little": "JJ", "own": "JJ", "other": "JJ", "same": "JJ", "few": "JJ",
	"much": "JJ", "many": "JJ", "more": "JJR", "most": "JJS", "less": "JJR", "least": "JJS",
	"funny": "JJ", "dull": "JJ", "fine": "JJ", "nice": "JJ", "real": "JJ", "full": "JJ",
	"true": "JJ", "whole": "JJ", "smart": "JJ", "sweet": "JJ", "sad": "JJ", "awful": "JJ",
	// frequent nouns that look like other classes
	"film": "NN", "movie": "NN", "story": "NN", "time": "NN", "way": "NN",
	"people": "NNS", "characters": "NNS", "lot": "NN", "thing": "NN", "nothing": "NN",
	"something": "NN", "everything": "NN", "anything": "NN", "none": "NN",
}
