package guesslang

import (
	"log/slog"
	"strings"
	"sync"
	"time"
)

var discardLogger = slog.New(slog.DiscardHandler)

// Detector is the language identification engine.
type Detector struct {
	blocks         *BlockTable
	tree           *DecisionTree
	source         ModelSource
	models         *ModelCache
	classifier     *Classifier
	classifierOpts []ClassifierOption
	cache          ResultCache
	revision       string
	processors     map[string]ContentProcessor
	logger         *slog.Logger
	metrics        *Metrics
	workers        int
}

// DetectorOption is a functional option for configuring the Detector.
type DetectorOption func(*Detector)

// WithModelSource sets where language models are loaded from.
func WithModelSource(source ModelSource) DetectorOption {
	return func(d *Detector) {
		d.source = source
	}
}

// WithDecisionTree replaces the default script rules.
func WithDecisionTree(tree *DecisionTree) DetectorOption {
	return func(d *Detector) {
		d.tree = tree
	}
}

// WithBlockTable replaces the bundled Unicode block table.
func WithBlockTable(blocks *BlockTable) DetectorOption {
	return func(d *Detector) {
		d.blocks = blocks
	}
}

// WithClassifierOptions passes options to the trigram classifier.
func WithClassifierOptions(opts ...ClassifierOption) DetectorOption {
	return func(d *Detector) {
		d.classifierOpts = append(d.classifierOpts, opts...)
	}
}

// WithResultCache caches detected codes by text hash.
func WithResultCache(cache ResultCache) DetectorOption {
	return func(d *Detector) {
		d.cache = cache
	}
}

// WithCacheRevision sets the suffix of result cache keys. Change it when
// the models change.
func WithCacheRevision(rev string) DetectorOption {
	return func(d *Detector) {
		d.revision = rev
	}
}

// WithProcessor registers a content processor.
func WithProcessor(processor ContentProcessor) DetectorOption {
	return func(d *Detector) {
		d.processors[processor.ContentType()] = processor
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) DetectorOption {
	return func(d *Detector) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMetrics records detections in m.
func WithMetrics(m *Metrics) DetectorOption {
	return func(d *Detector) {
		d.metrics = m
	}
}

// WithWorkers sets the number of goroutines used by DetectBatch.
func WithWorkers(n int) DetectorOption {
	return func(d *Detector) {
		d.workers = n
	}
}

// NewDetector creates a Detector over the bundled tables and corpora.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{
		blocks:     DefaultBlocks(),
		tree:       DefaultDecisionTree(),
		source:     NewCorpusSource(),
		revision:   Version,
		processors: make(map[string]ContentProcessor),
		logger:     discardLogger,
		workers:    defaultWorkers,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.models = NewModelCache(d.source, WithCacheLogger(d.logger), WithCacheMetrics(d.metrics))
	d.classifier = NewClassifier(d.models, d.classifierOpts...)
	return d
}

// Models returns the detector's model cache.
func (d *Detector) Models() *ModelCache {
	return d.models
}

// Classifier returns the detector's trigram classifier.
func (d *Detector) Classifier() *Classifier {
	return d.classifier
}

// Detect returns the language code of text, or Unknown.
func (d *Detector) Detect(text string) string {
	return d.Explain(text).Code
}

// Identify returns the code, legacy id and display name of the language of text.
func (d *Detector) Identify(text string) Info {
	return d.Explain(text).Info
}

// Explain runs the full pipeline and reports every intermediate step.
func (d *Detector) Explain(text string) Result {
	start := time.Now()

	var key string
	if d.cache != nil {
		key = CacheKey(HashText(text), d.revision)
		if code, ok := d.cache.Get(key); ok {
			d.metrics.resultCache("hit")
			return Result{
				Info:     InfoFor(code),
				Decision: Decision{Kind: KindUnknown, Rule: "cache"},
				Cached:   true,
			}
		}
		d.metrics.resultCache("miss")
	}

	sample := Preprocess(text)
	profile := d.blocks.Profile(sample)
	decision := d.tree.Decide(profile)
	res := Result{Decision: decision, Profile: profile}

	code := Unknown
	switch decision.Kind {
	case KindDefinite:
		code = decision.Code
	case KindScore:
		res.Scores = d.classifier.Scores(sample, decision.Group.Codes)
		if len(res.Scores) > 0 {
			code = res.Scores[0].Code
		}
		if refine, ok := decision.Refinements[code]; ok {
			res.Refined = d.classifier.Scores(sample, refine.Codes)
			if len(res.Refined) > 0 {
				code = res.Refined[0].Code
			}
		}
	}
	res.Info = InfoFor(code)

	if d.cache != nil {
		if err := d.cache.Set(key, code); err != nil {
			d.metrics.resultCache("error")
			d.logger.Warn("result cache write failed", "error", &CacheError{Message: "set", Cause: err})
		}
	}

	d.metrics.observeDetection(decision, code, runeCount(sample), time.Since(start))
	d.logger.Debug("detected",
		"code", code,
		"rule", decision.Rule,
		"length", runeCount(sample),
		"candidates", len(res.Scores),
	)
	return res
}

// Process extracts text from content with the processor registered for
// contentType and identifies its language.
func (d *Detector) Process(content string, contentType string) (Result, error) {
	processor, ok := d.processors[contentType]
	if !ok {
		return Result{}, &ProcessorError{
			Message:     "no processor registered for content type",
			ContentType: contentType,
		}
	}

	segments, err := processor.Extract(content)
	if err != nil {
		return Result{}, err
	}

	texts := make([]string, 0, len(segments))
	for _, s := range segments {
		texts = append(texts, s.Text)
	}
	return d.Explain(strings.Join(texts, "\n")), nil
}

// SourceFor returns the source-language parameter for a translation
// request: the configured code if set, otherwise the detected language of
// text. See SourceParam.
func (d *Detector) SourceFor(configured, text string) string {
	if configured != "" && configured != "?" {
		return configured
	}
	if !HasText(text) {
		return SourceParam(Unknown)
	}
	return SourceParam(d.Detect(text))
}

// Preprocess prepares text for profiling: printable ASCII punctuation and
// digits (U+0021..U+0040) are removed and the result is cut to MaxLength
// characters.
func Preprocess(text string) string {
	return truncateRunes(StripPunctuation(text), MaxLength)
}

// StripPunctuation removes every character in U+0021..U+0040.
func StripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if r >= 0x21 && r <= 0x40 {
			return -1
		}
		return r
	}, text)
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

var defaultDetector = sync.OnceValue(func() *Detector {
	return NewDetector()
})

// Detect returns the language code of text using the default detector.
func Detect(text string) string {
	return defaultDetector().Detect(text)
}

// IdentifyInfo returns the language Info of text using the default detector.
// Unidentified text yields UnknownInfo.
func IdentifyInfo(text string) Info {
	return defaultDetector().Identify(text)
}

// Explain runs the default detector and reports every step.
func Explain(text string) Result {
	return defaultDetector().Explain(text)
}
