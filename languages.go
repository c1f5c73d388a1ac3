package guesslang

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/ZaguanLabs/guesslang/data"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

// Language is the metadata of one identifiable language.
type Language struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
	ID   int    `yaml:"id" json:"id"` // Legacy numeric identifier, 0 if none
}

// Group is an ordered list of candidate codes. Order is priority on ties.
type Group struct {
	Name  string   `json:"name"`
	Codes []string `json:"codes"`
}

// Contains reports whether code is a member of the group.
func (g Group) Contains(code string) bool {
	for _, c := range g.Codes {
		if c == code {
			return true
		}
	}
	return false
}

// Singleton maps a script used by a single language to that language.
type Singleton struct {
	Block string `yaml:"block"`
	Code  string `yaml:"code"`
}

// rtlLanguages contains language codes that use right-to-left text direction.
var rtlLanguages = map[string]bool{
	"ar": true, // Arabic
	"he": true, // Hebrew
	"fa": true, // Persian/Farsi
	"ur": true, // Urdu
	"ps": true, // Pashto
	"sd": true, // Sindhi
	"ug": true, // Uyghur
}

type languageTable struct {
	Languages []Language `yaml:"languages"`
	byCode    map[string]Language
}

type groupTable struct {
	Groups     map[string][]string `yaml:"groups"`
	Composites map[string][]string `yaml:"composites"`
	Singletons []Singleton         `yaml:"singletons"`
	resolved   map[string]Group
}

func parseLanguages(b []byte) (*languageTable, error) {
	var t languageTable
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, err
	}
	t.byCode = make(map[string]Language, len(t.Languages))
	for _, l := range t.Languages {
		if l.Code == "" {
			return nil, fmt.Errorf("language %q has no code", l.Name)
		}
		if _, dup := t.byCode[l.Code]; dup {
			return nil, fmt.Errorf("duplicate language %q", l.Code)
		}
		t.byCode[l.Code] = l
	}
	return &t, nil
}

func parseGroups(b []byte) (*groupTable, error) {
	var t groupTable
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, err
	}
	t.resolved = make(map[string]Group, len(t.Groups)+len(t.Composites))
	for name, codes := range t.Groups {
		t.resolved[name] = Group{Name: name, Codes: codes}
	}
	for name, parts := range t.Composites {
		if _, dup := t.resolved[name]; dup {
			return nil, fmt.Errorf("composite %q shadows a group", name)
		}
		var codes []string
		for _, p := range parts {
			member, ok := t.Groups[p]
			if !ok {
				return nil, fmt.Errorf("composite %q references unknown group %q", name, p)
			}
			codes = append(codes, member...)
		}
		t.resolved[name] = Group{Name: name, Codes: codes}
	}
	return &t, nil
}

var languages = sync.OnceValue(func() *languageTable {
	t, err := parseLanguages(data.Languages)
	if err != nil {
		panic(&DataError{Table: "languages.yaml", Cause: err})
	}
	return t
})

var groups = sync.OnceValue(func() *groupTable {
	t, err := parseGroups(data.Groups)
	if err != nil {
		panic(&DataError{Table: "groups.yaml", Cause: err})
	}
	return t
})

// Languages returns the metadata of every known language, ordered by code.
func Languages() []Language {
	out := make([]Language, len(languages().Languages))
	copy(out, languages().Languages)
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// LookupLanguage returns the metadata for a code.
func LookupLanguage(code string) (Language, bool) {
	l, ok := languages().byCode[code]
	return l, ok
}

// LanguageName returns the human-readable name for a language code.
// Codes missing from the bundled table fall back to the CLDR English
// display name, then to the code itself.
func LanguageName(code string) string {
	if code == Unknown {
		return UnknownInfo.Name
	}
	if l, ok := LookupLanguage(code); ok {
		return l.Name
	}
	if tag, err := language.Parse(strings.ReplaceAll(code, "_", "-")); err == nil {
		if name := display.Languages(language.English).Name(tag); name != "" {
			return name
		}
	}
	return code
}

// LegacyID returns the legacy numeric identifier of a code, 0 if none.
func LegacyID(code string) int {
	return languages().byCode[code].ID
}

// InfoFor returns the Info triple for a code.
func InfoFor(code string) Info {
	if code == "" || code == Unknown {
		return UnknownInfo
	}
	return Info{Code: code, ID: LegacyID(code), Name: LanguageName(code)}
}

// LookupGroup returns a candidate group, composites included.
func LookupGroup(name string) (Group, bool) {
	g, ok := groups().resolved[name]
	if !ok {
		return Group{}, false
	}
	codes := make([]string, len(g.Codes))
	copy(codes, g.Codes)
	return Group{Name: g.Name, Codes: codes}, true
}

// Groups returns the names of all candidate groups, sorted.
func Groups() []string {
	names := make([]string, 0, len(groups().resolved))
	for name := range groups().resolved {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GroupOf returns the names of the groups containing code, sorted.
func GroupOf(code string) []string {
	var names []string
	for _, name := range Groups() {
		if groups().resolved[name].Contains(code) {
			names = append(names, name)
		}
	}
	return names
}

// Singletons returns the single-language scripts in evaluation order.
func Singletons() []Singleton {
	out := make([]Singleton, len(groups().Singletons))
	copy(out, groups().Singletons)
	return out
}

// GetDirection returns "rtl" for right-to-left languages, "ltr" otherwise.
func GetDirection(code string) string {
	// Extract base language code (e.g., "ar" from "ar_SA")
	base := strings.Split(code, "_")[0]
	base = strings.ToLower(base)

	if rtlLanguages[base] {
		return "rtl"
	}
	return "ltr"
}

// IsRTL returns true if the language uses right-to-left text direction.
func IsRTL(code string) bool {
	return GetDirection(code) == "rtl"
}

// NormalizeCode converts a BCP 47 style tag into the code form used here:
// lower-case base language, underscore, upper-case region
// (e.g., "pt-br" → "pt_BR"). Unparseable input is returned with dashes
// replaced.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" || code == Unknown {
		return code
	}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return strings.ReplaceAll(code, "-", "_")
	}
	base, _ := tag.Base()
	if region, conf := tag.Region(); conf == language.Exact {
		return base.String() + "_" + region.String()
	}
	return base.String()
}

// ToHTMLLang converts a code to HTML lang attribute format (e.g., "pt_BR" → "pt-BR").
func ToHTMLLang(code string) string {
	return strings.ReplaceAll(code, "_", "-")
}

// HasText reports whether text contains anything other than whitespace.
func HasText(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool { return !unicode.IsSpace(r) }) >= 0
}

// SourceParam maps a detected or configured code to the source-language
// parameter of the translation site. An empty, "?" or unknown source
// becomes the site's auto-detect token "null".
func SourceParam(code string) string {
	switch code {
	case "", "?", Unknown:
		return "null"
	default:
		return code
	}
}
