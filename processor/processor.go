// Package processor provides content processing implementations that pull
// the text worth identifying out of mail bodies.
package processor

import (
	"github.com/ZaguanLabs/guesslang"
	"golang.org/x/text/unicode/norm"
)

// ContentProcessor is an alias to the main package interface.
type ContentProcessor = guesslang.ContentProcessor

// Segment is an alias to the main package type.
type Segment = guesslang.Segment

// normalize composes text to NFC.
func normalize(s string) string {
	return norm.NFC.String(s)
}
