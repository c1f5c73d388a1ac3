package guesslang

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/ZaguanLabs/guesslang/data"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Model is a parsed language model: trigrams ranked by descending frequency.
// A Model never changes after ParseModel returns it.
type Model struct {
	code     string
	trigrams []string
	ranks    map[string]int
}

// ParseModel parses a flat string of concatenated 3-rune trigrams.
// Rank is the position of a trigram in the string; a repeated trigram keeps
// its first rank.
func ParseModel(code, flat string) (*Model, error) {
	if flat == "" {
		return nil, &ModelError{Code: code, Message: "empty model"}
	}
	runes := []rune(flat)
	if len(runes)%3 != 0 {
		return nil, &ModelError{
			Code:    code,
			Message: fmt.Sprintf("model length %d is not a multiple of 3", len(runes)),
		}
	}

	m := &Model{
		code:     code,
		trigrams: make([]string, 0, len(runes)/3),
		ranks:    make(map[string]int, len(runes)/3),
	}
	for i := 0; i < len(runes); i += 3 {
		t := string(runes[i : i+3])
		if _, dup := m.ranks[t]; !dup {
			m.ranks[t] = len(m.trigrams)
		}
		m.trigrams = append(m.trigrams, t)
	}
	return m, nil
}

// Code returns the language code the model belongs to.
func (m *Model) Code() string {
	return m.code
}

// Rank returns the position of trigram t in the model.
func (m *Model) Rank(t string) (int, bool) {
	r, ok := m.ranks[t]
	return r, ok
}

// Trigrams returns the trigrams in rank order.
func (m *Model) Trigrams() []string {
	out := make([]string, len(m.trigrams))
	copy(out, m.trigrams)
	return out
}

// Len returns the number of trigrams in the model.
func (m *Model) Len() int {
	return len(m.trigrams)
}

// String returns the flat form of the model.
func (m *Model) String() string {
	return strings.Join(m.trigrams, "")
}

// TrigramCount is one entry of a sample model.
type TrigramCount struct {
	Trigram string
	Count   int
}

// BuildSampleModel counts every overlapping 3-rune window of text and
// orders the trigrams by descending count. Equal counts keep the order in
// which the trigrams first appeared.
func BuildSampleModel(text string) []TrigramCount {
	runes := []rune(text)
	if len(runes) < 3 {
		return nil
	}

	index := make(map[string]int)
	var out []TrigramCount
	for i := 0; i+3 <= len(runes); i++ {
		t := string(runes[i : i+3])
		if j, ok := index[t]; ok {
			out[j].Count++
			continue
		}
		index[t] = len(out)
		out = append(out, TrigramCount{Trigram: t, Count: 1})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// lowerSample lower-cases text. Every other character, whitespace included,
// takes part in the trigram windows.
func lowerSample(text string) string {
	// cases.Caser is stateful, so one per call.
	return cases.Lower(language.Und).String(text)
}

// normalizeCorpus lower-cases a corpus and collapses its whitespace runs,
// line breaks included, to a single space.
func normalizeCorpus(text string) string {
	lower := lowerSample(text)

	var b strings.Builder
	b.Grow(len(lower))
	space := false
	for _, r := range lower {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// BuildModelString derives a flat model from a corpus: punctuation is
// stripped, the text normalized by normalizeCorpus, and the maxGrams most
// frequent trigrams
// concatenated in rank order.
func BuildModelString(corpus string, maxGrams int) string {
	sample := BuildSampleModel(normalizeCorpus(StripPunctuation(corpus)))
	if maxGrams > 0 && len(sample) > maxGrams {
		sample = sample[:maxGrams]
	}
	var b strings.Builder
	for _, tc := range sample {
		b.WriteString(tc.Trigram)
	}
	return b.String()
}

// ModelSource provides flat model strings by language code.
type ModelSource interface {
	Lookup(code string) (string, bool)
}

// CorpusSource derives models from sample texts.
type CorpusSource struct {
	corpus   func(code string) (string, bool)
	maxGrams int
}

// NewCorpusSource returns a source over the bundled corpora.
func NewCorpusSource() *CorpusSource {
	return NewCorpusSourceFrom(data.Corpus, MaxGrams)
}

// NewCorpusSourceFrom returns a source over an arbitrary corpus lookup.
func NewCorpusSourceFrom(corpus func(code string) (string, bool), maxGrams int) *CorpusSource {
	return &CorpusSource{corpus: corpus, maxGrams: maxGrams}
}

// Lookup implements ModelSource.
func (s *CorpusSource) Lookup(code string) (string, bool) {
	text, ok := s.corpus(code)
	if !ok {
		return "", false
	}
	flat := BuildModelString(text, s.maxGrams)
	return flat, flat != ""
}

// MapSource serves flat models held in memory.
type MapSource map[string]string

// Lookup implements ModelSource.
func (m MapSource) Lookup(code string) (string, bool) {
	flat, ok := m[code]
	return flat, ok
}

type modelsFile struct {
	Models map[string]string `yaml:"models"`
}

// LoadMapSource reads a YAML document of the form
//
//	models:
//	  en: " thhe anthe..."
func LoadMapSource(r io.Reader) (MapSource, error) {
	var f modelsFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return MapSource{}, nil
		}
		return nil, fmt.Errorf("decode models: %w", err)
	}
	if f.Models == nil {
		return MapSource{}, nil
	}
	return MapSource(f.Models), nil
}

// WriteMapSource writes models in the format read by LoadMapSource.
func WriteMapSource(w io.Writer, models MapSource) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(modelsFile{Models: models}); err != nil {
		return fmt.Errorf("encode models: %w", err)
	}
	return enc.Close()
}

// ChainSource asks each source in turn; the first hit wins.
type ChainSource []ModelSource

// Lookup implements ModelSource.
func (c ChainSource) Lookup(code string) (string, bool) {
	for _, s := range c {
		if s == nil {
			continue
		}
		if flat, ok := s.Lookup(code); ok {
			return flat, true
		}
	}
	return "", false
}

// ModelCache is a read-through cache of parsed models. Each code is stored
// at most once; concurrent loads of the same code may parse twice and the
// first stored model wins.
type ModelCache struct {
	source  ModelSource
	logger  *slog.Logger
	metrics *Metrics

	mu     sync.RWMutex
	models map[string]*Model
}

// ModelCacheOption configures a ModelCache.
type ModelCacheOption func(*ModelCache)

// WithCacheLogger sets the logger for model load diagnostics.
func WithCacheLogger(logger *slog.Logger) ModelCacheOption {
	return func(c *ModelCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCacheMetrics records model cache hits and loads.
func WithCacheMetrics(m *Metrics) ModelCacheOption {
	return func(c *ModelCache) {
		c.metrics = m
	}
}

// NewModelCache creates an empty cache backed by source.
func NewModelCache(source ModelSource, opts ...ModelCacheOption) *ModelCache {
	c := &ModelCache{
		source: source,
		logger: discardLogger,
		models: make(map[string]*Model),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the model for code, loading it on first use. Missing or
// malformed models are reported as absent.
func (c *ModelCache) Get(code string) (*Model, bool) {
	c.mu.RLock()
	m, ok := c.models[code]
	c.mu.RUnlock()
	if ok {
		c.metrics.modelLookup("hit")
		return m, true
	}

	if c.source == nil {
		c.metrics.modelLookup("absent")
		return nil, false
	}
	flat, ok := c.source.Lookup(code)
	if !ok {
		c.logger.Debug("no model data", "code", code)
		c.metrics.modelLookup("absent")
		return nil, false
	}
	parsed, err := ParseModel(code, flat)
	if err != nil {
		c.logger.Debug("skipping malformed model", "code", code, "error", err)
		c.metrics.modelLookup("invalid")
		return nil, false
	}

	c.mu.Lock()
	if existing, ok := c.models[code]; ok {
		parsed = existing
	} else {
		c.models[code] = parsed
	}
	c.mu.Unlock()

	c.metrics.modelLookup("load")
	return parsed, true
}

// Preload loads the models for codes and returns how many are available.
func (c *ModelCache) Preload(codes ...string) int {
	n := 0
	for _, code := range codes {
		if _, ok := c.Get(code); ok {
			n++
		}
	}
	return n
}

// Len returns the number of cached models.
func (c *ModelCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.models)
}

// Codes returns the codes of the cached models, sorted.
func (c *ModelCache) Codes() []string {
	c.mu.RLock()
	codes := make([]string, 0, len(c.models))
	for code := range c.models {
		codes = append(codes, code)
	}
	c.mu.RUnlock()
	sort.Strings(codes)
	return codes
}

// Export returns the flat form of every cached model.
func (c *ModelCache) Export() MapSource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(MapSource, len(c.models))
	for code, m := range c.models {
		out[code] = m.String()
	}
	return out
}

func runeCount(s string) int {
	return utf8.RuneCountInString(s)
}
