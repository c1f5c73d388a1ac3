// Package data embeds the static tables and language corpora used by the
// identifier: Unicode block ranges, language metadata, candidate groups and
// one sample text per modeled language.
package data

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed blocks.yaml
var Blocks []byte

//go:embed languages.yaml
var Languages []byte

//go:embed groups.yaml
var Groups []byte

//go:embed corpus/*.txt
var corpus embed.FS

const corpusDir = "corpus"

// Corpus returns the bundled sample text for a language code.
func Corpus(code string) (string, bool) {
	if code == "" || strings.ContainsAny(code, "/\\.") {
		return "", false
	}
	b, err := corpus.ReadFile(path.Join(corpusDir, code+".txt"))
	if err != nil {
		return "", false
	}
	return string(b), true
}

// CorpusCodes lists the language codes that have a bundled corpus, sorted.
func CorpusCodes() []string {
	entries, err := fs.ReadDir(corpus, corpusDir)
	if err != nil {
		return nil
	}
	codes := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".txt") {
			continue
		}
		codes = append(codes, strings.TrimSuffix(name, ".txt"))
	}
	sort.Strings(codes)
	return codes
}
