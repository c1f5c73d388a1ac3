package processor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/guesslang"
	"golang.org/x/net/html"
)

// IgnoredTags contains HTML tags whose content is not prose.
var IgnoredTags = map[string]bool{
	"head":       true,
	"script":     true,
	"style":      true,
	"code":       true,
	"pre":        true,
	"textarea":   true,
	"noscript":   true,
	"blockquote": true, // quoted replies
}

// QuoteSelectors match reply headers and quoted parts of common mail clients.
var QuoteSelectors = []string{
	".moz-cite-prefix",
	".gmail_quote",
	".gmail_attr",
	"div.yahoo_quoted",
	"#divRplyFwdMsg",
}

// skipAttr marks an element whose subtree is excluded from detection.
const skipAttr = "data-no-detect"

// HTMLProcessor extracts visible prose from HTML mail bodies.
type HTMLProcessor struct {
	ignoredTags map[string]bool
	selectors   []string
}

// NewHTMLProcessor creates a new HTML processor with default ignored tags
// and quote selectors.
func NewHTMLProcessor() *HTMLProcessor {
	return &HTMLProcessor{
		ignoredTags: IgnoredTags,
		selectors:   QuoteSelectors,
	}
}

// NewHTMLProcessorWithIgnoredTags creates a new HTML processor with custom
// ignored tags and no quote selectors.
func NewHTMLProcessorWithIgnoredTags(tags []string) *HTMLProcessor {
	ignored := make(map[string]bool)
	for _, tag := range tags {
		ignored[strings.ToLower(tag)] = true
	}
	return &HTMLProcessor{
		ignoredTags: ignored,
	}
}

// Extract parses HTML and returns its visible text nodes in document order.
// Repeated texts are returned once.
func (p *HTMLProcessor) Extract(content string) ([]Segment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, &guesslang.ProcessorError{
			Message:     "failed to parse HTML",
			Cause:       err,
			ContentType: p.ContentType(),
		}
	}

	for _, sel := range p.selectors {
		doc.Find(sel).Remove()
	}

	var segments []Segment
	seen := make(map[string]bool)

	// Walk the DOM tree
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if p.ignoredTags[strings.ToLower(n.Data)] {
				return
			}
			for _, attr := range n.Attr {
				if attr.Key == skipAttr {
					return
				}
			}
		}

		if n.Type == html.TextNode {
			text := normalize(strings.TrimSpace(n.Data))
			if text != "" && !seen[text] {
				seen[text] = true

				seg := Segment{
					ID:       fmt.Sprintf("node-%d", len(segments)),
					Text:     text,
					Kind:     "html_text",
					Metadata: map[string]string{},
				}
				if n.Parent != nil && n.Parent.Type == html.ElementNode {
					seg.Metadata["parent_tag"] = n.Parent.Data
				}
				segments = append(segments, seg)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range doc.Nodes {
		walk(n)
	}

	return segments, nil
}

// ContentType returns "html".
func (p *HTMLProcessor) ContentType() string {
	return "html"
}

// Verify HTMLProcessor implements ContentProcessor
var _ ContentProcessor = (*HTMLProcessor)(nil)
