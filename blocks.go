package guesslang

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/ZaguanLabs/guesslang/data"
	"gopkg.in/yaml.v3"
)

// Block is a named, inclusive Unicode code point range.
type Block struct {
	Name  string
	Start rune
	End   rune
}

// Contains reports whether r falls inside the block.
func (b Block) Contains(r rune) bool {
	return r >= b.Start && r <= b.End
}

// BlockTable is an immutable set of non-overlapping blocks sorted by start.
type BlockTable struct {
	blocks []Block
}

// NewBlockTable validates and sorts blocks. Block names must be unique and
// ranges must not overlap.
func NewBlockTable(blocks []Block) (*BlockTable, error) {
	sorted := make([]Block, len(blocks))
	copy(sorted, blocks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	seen := make(map[string]bool, len(sorted))
	for i, b := range sorted {
		if b.Name == "" {
			return nil, fmt.Errorf("block %d has no name", i)
		}
		if seen[b.Name] {
			return nil, fmt.Errorf("duplicate block %q", b.Name)
		}
		seen[b.Name] = true
		if b.End < b.Start {
			return nil, fmt.Errorf("block %q ends before it starts", b.Name)
		}
		if i > 0 && sorted[i-1].End >= b.Start {
			return nil, fmt.Errorf("block %q overlaps %q", b.Name, sorted[i-1].Name)
		}
	}

	return &BlockTable{blocks: sorted}, nil
}

// Blocks returns a copy of the blocks in code point order.
func (t *BlockTable) Blocks() []Block {
	out := make([]Block, len(t.blocks))
	copy(out, t.blocks)
	return out
}

// Len returns the number of blocks in the table.
func (t *BlockTable) Len() int {
	return len(t.blocks)
}

// Lookup returns the block containing r.
func (t *BlockTable) Lookup(r rune) (Block, bool) {
	if i := t.index(r); i >= 0 {
		return t.blocks[i], true
	}
	return Block{}, false
}

func (t *BlockTable) index(r rune) int {
	i := sort.Search(len(t.blocks), func(i int) bool { return t.blocks[i].End >= r })
	if i < len(t.blocks) && t.blocks[i].Contains(r) {
		return i
	}
	return -1
}

type blockFile struct {
	Blocks []struct {
		Name  string `yaml:"name"`
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"blocks"`
}

// ParseBlocks decodes a YAML block table with hexadecimal start/end values.
func ParseBlocks(b []byte) (*BlockTable, error) {
	var f blockFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}

	blocks := make([]Block, 0, len(f.Blocks))
	for _, raw := range f.Blocks {
		start, err := strconv.ParseUint(raw.Start, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("block %q start: %w", raw.Name, err)
		}
		end, err := strconv.ParseUint(raw.End, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("block %q end: %w", raw.Name, err)
		}
		blocks = append(blocks, Block{Name: raw.Name, Start: rune(start), End: rune(end)})
	}

	return NewBlockTable(blocks)
}

var defaultBlocks = sync.OnceValue(func() *BlockTable {
	t, err := ParseBlocks(data.Blocks)
	if err != nil {
		panic(&DataError{Table: "blocks.yaml", Cause: err})
	}
	return t
})

// DefaultBlocks returns the bundled Unicode block table.
func DefaultBlocks() *BlockTable {
	return defaultBlocks()
}
