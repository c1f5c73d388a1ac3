package guesslang

import "sort"

// Classifier picks the candidate whose language model is closest to a sample
// by rank distance over trigrams.
type Classifier struct {
	cache     *ModelCache
	minLength int
	penalty   int
}

// ClassifierOption is a functional option for configuring the Classifier.
type ClassifierOption func(*Classifier)

// WithMinLength sets the shortest sample, in characters, that is scored.
func WithMinLength(n int) ClassifierOption {
	return func(c *Classifier) {
		c.minLength = n
	}
}

// WithPenalty sets the distance added for a trigram missing from a model.
func WithPenalty(n int) ClassifierOption {
	return func(c *Classifier) {
		c.penalty = n
	}
}

// NewClassifier creates a classifier reading models through cache.
func NewClassifier(cache *ModelCache, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		cache:     cache,
		minLength: MinLength,
		penalty:   Penalty,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Classify returns the candidate closest to sample, or Unknown when the
// sample is too short or no candidate has a model. Equal distances resolve
// to the earlier candidate.
func (c *Classifier) Classify(sample string, candidates []string) string {
	scores := c.Scores(sample, candidates)
	if len(scores) == 0 {
		return Unknown
	}
	return scores[0].Code
}

// Scores returns the distance of sample to every candidate that has a model,
// closest first. Candidate order is kept among equal distances. A sample
// with no trigram scores nothing.
func (c *Classifier) Scores(sample string, candidates []string) []Score {
	if runeCount(sample) < c.minLength || len(candidates) == 0 {
		return nil
	}

	model := BuildSampleModel(lowerSample(sample))
	if len(model) == 0 {
		return nil
	}
	scores := make([]Score, 0, len(candidates))
	for _, code := range candidates {
		known, ok := c.cache.Get(code)
		if !ok {
			continue
		}
		scores = append(scores, Score{Code: code, Distance: c.distance(model, known)})
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Distance < scores[j].Distance })
	return scores
}

// distance sums, over every sample trigram, the rank displacement against
// the model or the penalty when the model lacks it.
func (c *Classifier) distance(sample []TrigramCount, known *Model) int {
	d := 0
	for i, tc := range sample {
		if rank, ok := known.Rank(tc.Trigram); ok {
			d += abs(i - rank)
		} else {
			d += c.penalty
		}
	}
	return d
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
