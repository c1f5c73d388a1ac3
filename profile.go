package guesslang

// Profile maps a Unicode block name to the fraction of characters of a text
// that fall inside that block. Every block of the table is present.
type Profile map[string]float64

// Get returns the fraction for a block, 0 when the block is unknown.
func (p Profile) Get(name string) float64 {
	return p[name]
}

// Sum adds up the fractions of several blocks.
func (p Profile) Sum(names ...string) float64 {
	var total float64
	for _, n := range names {
		total += p[n]
	}
	return total
}

// Dominant returns the block with the highest non-zero fraction.
// Equal fractions resolve to the lexically smaller name.
func (p Profile) Dominant() (string, float64) {
	var (
		best     string
		bestFrac float64
	)
	for name, frac := range p {
		if frac > bestFrac || (frac == bestFrac && frac > 0 && name < best) {
			best, bestFrac = name, frac
		}
	}
	return best, bestFrac
}

// Profile computes the block composition of text. Characters are counted per
// code point; characters outside every block count toward the total only.
// An empty text yields 0 for every block.
func (t *BlockTable) Profile(text string) Profile {
	counts := make([]int, len(t.blocks))
	total := 0
	for _, r := range text {
		total++
		if i := t.index(r); i >= 0 {
			counts[i]++
		}
	}

	p := make(Profile, len(t.blocks))
	for i, b := range t.blocks {
		if total == 0 {
			p[b.Name] = 0
			continue
		}
		p[b.Name] = float64(counts[i]) / float64(total)
	}
	return p
}

// ProfileScripts computes the block composition of text against the bundled
// block table.
func ProfileScripts(text string) Profile {
	return DefaultBlocks().Profile(text)
}
