package guesslang

// Unknown is the code returned when no language could be identified.
const Unknown = "unknown"

// Detection parameters.
const (
	// MaxLength is the number of characters of input considered.
	MaxLength = 4096
	// MinLength is the shortest sample the trigram classifier accepts.
	MinLength = 20
	// MaxGrams is the number of trigrams kept in a corpus-derived model.
	MaxGrams = 300
	// Penalty is the distance added for a sample trigram missing from a model.
	Penalty = 300
)

// Info describes an identified language.
type Info struct {
	Code string `json:"code"`
	ID   int    `json:"id"`   // Legacy numeric identifier, 0 if none
	Name string `json:"name"` // Display name
}

// UnknownInfo is the Info reported when identification fails.
var UnknownInfo = Info{Code: Unknown, ID: 0, Name: "Unknown"}

// Score is the rank distance of a sample to one language model.
type Score struct {
	Code     string `json:"code"`
	Distance int    `json:"distance"`
}

// Result is a fully explained detection.
type Result struct {
	Info
	Decision Decision `json:"decision"`
	Profile  Profile  `json:"-"`
	Scores   []Score  `json:"scores,omitempty"`
	Refined  []Score  `json:"refined,omitempty"` // Scores of the refinement pass, if any
	Cached   bool     `json:"cached"`
}

// Segment is a unit of text extracted from structured content.
type Segment struct {
	ID       string            // Position-based identifier
	Text     string            // Extracted text (trimmed)
	Kind     string            // Content kind: "html_text", "plain_text", etc.
	Metadata map[string]string // Additional info (parent tag, line number, etc.)
}

// ContentProcessor extracts the text worth identifying from a content type.
type ContentProcessor interface {
	Extract(content string) ([]Segment, error)
	ContentType() string
}

// ResultCache stores detected language codes keyed by text hash.
type ResultCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
