package processor

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/ZaguanLabs/guesslang"
)

// signatureDelimiter starts the signature block of a plain-text mail.
const signatureDelimiter = "-- "

// PlainProcessor extracts the author's own paragraphs from a plain-text
// mail body: quoted lines and the signature are dropped.
type PlainProcessor struct {
	keepQuotes bool
}

// PlainOption configures a PlainProcessor.
type PlainOption func(*PlainProcessor)

// WithQuotes keeps "> " quoted lines.
func WithQuotes(keep bool) PlainOption {
	return func(p *PlainProcessor) {
		p.keepQuotes = keep
	}
}

// NewPlainProcessor creates a plain-text processor.
func NewPlainProcessor(opts ...PlainOption) *PlainProcessor {
	p := &PlainProcessor{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Extract splits content into paragraphs separated by blank lines.
func (p *PlainProcessor) Extract(content string) ([]Segment, error) {
	var (
		segments []Segment
		para     []string
		start    int
	)

	flush := func() {
		if len(para) == 0 {
			return
		}
		segments = append(segments, Segment{
			ID:       fmt.Sprintf("para-%d", len(segments)),
			Text:     normalize(strings.Join(para, " ")),
			Kind:     "plain_text",
			Metadata: map[string]string{"line": fmt.Sprint(start)},
		})
		para = nil
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimRight(scanner.Text(), "\r")
		if raw == signatureDelimiter {
			break
		}
		if !p.keepQuotes && strings.HasPrefix(strings.TrimLeft(raw, " \t"), ">") {
			flush()
			continue
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			flush()
			continue
		}
		if len(para) == 0 {
			start = lineNo
		}
		para = append(para, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, &guesslang.ProcessorError{
			Message:     "failed to read text",
			Cause:       err,
			ContentType: p.ContentType(),
		}
	}
	flush()

	return segments, nil
}

// ContentType returns "plain".
func (p *PlainProcessor) ContentType() string {
	return "plain"
}

var _ ContentProcessor = (*PlainProcessor)(nil)
