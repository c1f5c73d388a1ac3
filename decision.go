package guesslang

import (
	"fmt"
	"strings"
	"sync"
)

// Kind tags the variant of a Decision.
type Kind int

const (
	// KindUnknown means no rule matched.
	KindUnknown Kind = iota
	// KindDefinite means the script alone identifies the language.
	KindDefinite
	// KindScore means a candidate group must be scored by the classifier.
	KindScore
)

func (k Kind) String() string {
	switch k {
	case KindDefinite:
		return "definite"
	case KindScore:
		return "score"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Decision is the outcome of the decision tree.
//
// For KindDefinite only Code is set. For KindScore, Group holds the
// candidates in priority order and Refinements maps a winning code to a
// narrower group that is scored in a second pass.
type Decision struct {
	Kind        Kind             `json:"kind"`
	Rule        string           `json:"rule"`
	Code        string           `json:"code,omitempty"`
	Group       Group            `json:"group,omitzero"`
	Refinements map[string]Group `json:"refinements,omitempty"`
}

func (d Decision) String() string {
	switch d.Kind {
	case KindDefinite:
		return fmt.Sprintf("%s -> %s", d.Rule, d.Code)
	case KindScore:
		return fmt.Sprintf("%s -> score %s (%s)", d.Rule, d.Group.Name, strings.Join(d.Group.Codes, ","))
	default:
		return fmt.Sprintf("%s -> %s", d.Rule, Unknown)
	}
}

// Definite returns a decision that identifies code directly.
func Definite(code string) Decision {
	return Decision{Kind: KindDefinite, Code: code}
}

// ScoreGroup returns a decision that scores g, optionally refining winners.
func ScoreGroup(g Group, refinements map[string]Group) Decision {
	return Decision{Kind: KindScore, Group: g, Refinements: refinements}
}

// Predicate reports whether a profile matches a rule.
type Predicate func(Profile) bool

// AtLeast matches when the summed fraction of blocks reaches threshold.
func AtLeast(threshold float64, blocks ...string) Predicate {
	return func(p Profile) bool {
		return p.Sum(blocks...) >= threshold
	}
}

// Rule pairs a predicate with the decision it produces.
type Rule struct {
	Name     string
	Match    Predicate
	Decision Decision
}

// DecisionTree evaluates rules in order; the first match wins.
type DecisionTree struct {
	rules []Rule
}

// NewDecisionTree creates a tree over a copy of rules.
func NewDecisionTree(rules []Rule) *DecisionTree {
	r := make([]Rule, len(rules))
	copy(r, rules)
	return &DecisionTree{rules: r}
}

// Rules returns the rules in evaluation order.
func (t *DecisionTree) Rules() []Rule {
	r := make([]Rule, len(t.rules))
	copy(r, t.rules)
	return r
}

// Decide returns the decision of the first matching rule, or KindUnknown.
func (t *DecisionTree) Decide(p Profile) Decision {
	for _, r := range t.rules {
		if r.Match(p) {
			d := r.Decision
			d.Rule = r.Name
			return d
		}
	}
	return Decision{Kind: KindUnknown, Rule: "fallback"}
}

// Script thresholds.
const (
	scriptThreshold = 0.4
	kanaThreshold   = 0.2
	latinThreshold  = 0.15
)

// DefaultRules returns the bundled rule list.
func DefaultRules() []Rule {
	rules := []Rule{
		{
			Name:     "hangul",
			Match:    AtLeast(scriptThreshold, "Hangul Syllables", "Hangul Jamo", "Hangul Compatibility Jamo"),
			Decision: Definite("ko"),
		},
		{
			Name:     "greek",
			Match:    AtLeast(scriptThreshold, "Greek and Coptic"),
			Decision: Definite("el"),
		},
		{
			Name:     "kana",
			Match:    AtLeast(kanaThreshold, "Hiragana", "Katakana", "Katakana Phonetic Extensions"),
			Decision: Definite("ja"),
		},
		{
			Name:     "han",
			Match:    AtLeast(scriptThreshold, "CJK Unified Ideographs", "Bopomofo", "Bopomofo Extended", "Kangxi Radicals"),
			Decision: Definite("zh"),
		},
		{
			Name:     "cyrillic",
			Match:    AtLeast(scriptThreshold, "Cyrillic"),
			Decision: ScoreGroup(mustGroup("cyrillic"), nil),
		},
		{
			Name:     "arabic",
			Match:    AtLeast(scriptThreshold, "Arabic", "Arabic Presentation Forms-A", "Arabic Presentation Forms-B"),
			Decision: ScoreGroup(mustGroup("arabic"), nil),
		},
		{
			Name:     "devanagari",
			Match:    AtLeast(scriptThreshold, "Devanagari"),
			Decision: ScoreGroup(mustGroup("devanagari"), nil),
		},
	}

	for _, s := range Singletons() {
		rules = append(rules, Rule{
			Name:     "script:" + s.Block,
			Match:    AtLeast(scriptThreshold, s.Block),
			Decision: Definite(s.Code),
		})
	}

	rules = append(rules,
		Rule{
			Name:  "extended_latin",
			Match: AtLeast(scriptThreshold, "Latin-1 Supplement", "Latin Extended-A", "IPA Extensions"),
			Decision: ScoreGroup(mustGroup("extended_latin"), map[string]Group{
				"pt": mustGroup("portuguese"),
			}),
		},
		Rule{
			Name:     "basic_latin",
			Match:    AtLeast(latinThreshold, "Basic Latin"),
			Decision: ScoreGroup(mustGroup("all_latin"), nil),
		},
	)

	return rules
}

var defaultTree = sync.OnceValue(func() *DecisionTree {
	return NewDecisionTree(DefaultRules())
})

// DefaultDecisionTree returns a shared tree over DefaultRules.
func DefaultDecisionTree() *DecisionTree {
	return defaultTree()
}

func mustGroup(name string) Group {
	g, ok := LookupGroup(name)
	if !ok {
		panic(&DataError{Table: "groups.yaml", Cause: fmt.Errorf("missing group %q", name)})
	}
	return g
}
