package sentifold

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// BaselineRun names the bag-of-words run over unprocessed tokens.
const BaselineRun = "baseline"

// An Experiment evaluates every configured feature family on a phrase
// corpus with both a held-out split and cross-validation.
type Experiment struct {
	Config   Config
	Polarity PolarityLookup
	Psych    PrefixMatcher
	Tagger   Tagger // a shared ProseTagger when nil
	Logger   logrus.FieldLogger

	// OnFold, if set, is called after each cross-validation fold.
	OnFold func(run string, fold FoldResult)

	taggerOnce sync.Once
	tagger     Tagger
}

// A Corpus holds both tokenizations of a phrase sample and the statistics
// derived from them.
type Corpus struct {
	Raw          []Document // contraction-aware tokens, case kept
	Preprocessed []Document // normalized, stop words removed

	RawVocabulary *Vocabulary
	Vocabulary    *Vocabulary
	Collocations  []Bigram
	Labels        []Label
}

// A Run is the outcome of one feature family.
type Run struct {
	Name            string
	Kind            FeatureKind
	Evaluation      *Evaluation
	CrossValidation *CrossValidation
}

// Prepare samples phrases, tokenizes them both ways and builds the
// vocabularies and collocations.
func (e *Experiment) Prepare(phrases []Phrase) (*Corpus, error) {
	cfg := e.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := loggerOr(e.Logger)

	sample := SamplePhrases(phrases, cfg.Limit, cfg.Seed)
	log.WithFields(logrus.Fields{"read": len(phrases), "using": len(sample)}).Info("sampled phrases")

	scheme := FivePointScheme()
	raw, err := Documents(sample, scheme)
	if err != nil {
		return nil, err
	}
	pre, err := Documents(sample, scheme, UsingTokenizer(NewPreprocessor(cfg.Language)))
	if err != nil {
		return nil, err
	}

	tokens := CorpusTokens(pre, cfg.MinTokenLength)
	c := &Corpus{
		Raw:           raw,
		Preprocessed:  pre,
		RawVocabulary: BuildVocabulary(CorpusTokens(raw, 0), cfg.VocabularySize),
		Vocabulary:    BuildVocabulary(tokens, cfg.VocabularySize),
		Collocations:  FindCollocations(tokens, cfg.BigramWindow, cfg.BigramNBest, cfg.BigramKeep),
	}

	seen := make(map[Label]bool)
	for _, d := range pre {
		if !seen[d.Label] {
			seen[d.Label] = true
			c.Labels = append(c.Labels, d.Label)
		}
	}
	sort.Slice(c.Labels, func(i, j int) bool { return c.Labels[i] < c.Labels[j] })

	log.WithFields(logrus.Fields{
		"vocabulary":   c.Vocabulary.Len(),
		"collocations": len(c.Collocations),
		"labels":       len(c.Labels),
	}).Debug("corpus prepared")
	return c, nil
}

// posTagger returns Tagger, or a ProseTagger created on first use and kept
// so its cache spans runs.
func (e *Experiment) posTagger() Tagger {
	e.taggerOnce.Do(func() {
		e.tagger = e.Tagger
		if e.tagger == nil {
			pt := NewProseTagger()
			pt.Logger = e.Logger
			e.tagger = pt
		}
	})
	return e.tagger
}

// primeTagger batch-tags docs when kind needs part-of-speech tags and the
// tagger supports it.
func (e *Experiment) primeTagger(kind FeatureKind, docs []Document) {
	if kind != PartOfSpeech {
		return
	}
	if pt, ok := e.posTagger().(*ProseTagger); ok {
		pt.Prime(docs)
	}
}

func (e *Experiment) resources(vocab *Vocabulary, c *Corpus) Resources {
	return Resources{
		Vocabulary:   vocab,
		Polarity:     e.Polarity,
		Psych:        e.Psych,
		Tagger:       e.posTagger(),
		Collocations: c.Collocations,
		BigramWindow: e.Config.BigramWindow,
	}
}

// Run evaluates the baseline and each configured feature family. Families
// whose lexicon or tagger is unavailable are skipped with a warning.
func (e *Experiment) Run(ctx context.Context, c *Corpus) ([]Run, error) {
	cfg := e.Config
	log := loggerOr(e.Logger)
	trainer, err := NewTrainer(cfg.Classifier, e.Logger)
	if err != nil {
		return nil, err
	}

	var runs []Run
	if cfg.Baseline {
		ex, err := NewExtractor(BagOfWords, e.resources(c.RawVocabulary, c))
		if err != nil {
			return nil, err
		}
		run, err := e.evaluate(ctx, BaselineRun, ex, c.Raw, c.Labels, trainer)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	for _, kind := range cfg.Kinds {
		ex, err := NewExtractor(kind, e.resources(c.Vocabulary, c))
		if errors.Is(err, ErrMissingResource) {
			log.WithField("kind", kind).WithError(err).Warn("skipping feature family")
			continue
		}
		if err != nil {
			return nil, err
		}
		e.primeTagger(kind, c.Preprocessed)
		run, err := e.evaluate(ctx, kind.String(), ex, c.Preprocessed, c.Labels, trainer)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (e *Experiment) evaluate(ctx context.Context, name string, ex Extractor, docs []Document, labels []Label, trainer Trainer) (Run, error) {
	cfg := e.Config
	log := loggerOr(e.Logger).WithField("kind", name)

	set := BuildFeatureSet(docs, ex)
	ev, err := Evaluate(set, trainer, EvalOptions{
		TestRatio:   cfg.TestRatio,
		Informative: cfg.Informative,
		Logger:      log,
	})
	if err != nil {
		return Run{}, fmt.Errorf("%s: %w", name, err)
	}

	cv := CrossValidator{
		Folds:       cfg.Folds,
		Trainer:     trainer,
		Parallelism: cfg.Parallelism,
		Logger:      log,
	}
	if e.OnFold != nil {
		cv.OnFold = func(f FoldResult) { e.OnFold(name, f) }
	}
	result, err := cv.Run(ctx, set, labels)
	if err != nil {
		return Run{}, fmt.Errorf("%s: %w", name, err)
	}
	return Run{Name: name, Kind: ex.Kind(), Evaluation: ev, CrossValidation: result}, nil
}

// Predict trains kind on the preprocessed corpus and labels test phrases.
// Test features are keyed by a vocabulary built from the test phrases
// themselves; terms the training vocabulary lacks are ignored by the
// classifier.
func (e *Experiment) Predict(c *Corpus, kind FeatureKind, test []TestPhrase) ([]Label, error) {
	cfg := e.Config
	trainer, err := NewTrainer(cfg.Classifier, e.Logger)
	if err != nil {
		return nil, err
	}

	trainEx, err := NewExtractor(kind, e.resources(c.Vocabulary, c))
	if err != nil {
		return nil, err
	}
	e.primeTagger(kind, c.Preprocessed)
	classifier, err := trainer.Train(BuildFeatureSet(c.Preprocessed, trainEx))
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	pre := NewPreprocessor(cfg.Language)
	docs := make([]Document, len(test))
	for i, p := range test {
		docs[i] = NewDocument(p.Text, "", UsingTokenizer(pre))
	}
	e.primeTagger(kind, docs)
	testVocab := BuildVocabulary(CorpusTokens(docs, 0), cfg.VocabularySize)
	testEx, err := NewExtractor(kind, e.resources(testVocab, c))
	if err != nil {
		return nil, err
	}

	labels := make([]Label, len(docs))
	for i, d := range docs {
		labels[i] = classifier.Classify(testEx.Extract(d))
	}
	loggerOr(e.Logger).WithFields(logrus.Fields{"kind": kind, "phrases": len(test)}).Info("predicted test phrases")
	return labels, nil
}
