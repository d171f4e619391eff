package translate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// Domain is the gettext domain of game content.
const Domain = "content"

// Lookup maps an original string to its localized form. An empty result
// means no localized entry exists.
type Lookup interface {
	Get(text string) string
}

// Identity is the fallback Lookup used when a language has no catalog.
type Identity struct{}

// Get returns text unchanged.
func (Identity) Get(text string) string { return text }

// MapLookup is a Lookup backed by a plain map.
type MapLookup map[string]string

// Get returns the mapped text, or "" when absent.
func (m MapLookup) Get(text string) string { return m[text] }

// poLookup resolves strings through a parsed PO file.
type poLookup struct {
	po *gotext.Po
}

func (p *poLookup) Get(text string) string {
	return p.po.Get(text)
}

// ParsePO builds a Lookup from the contents of a PO file.
func ParsePO(data []byte) Lookup {
	po := gotext.NewPo()
	po.Parse(data)
	return &poLookup{po: po}
}

// poCandidates lists where the catalog of lang may live under dir.
func poCandidates(dir, lang string) []string {
	return []string{
		filepath.Join(dir, lang, "LC_MESSAGES", Domain+".po"),
		filepath.Join(dir, lang+".po"),
	}
}

// LoadLookup loads the PO catalog of lang from dir. A language without a
// catalog gets the Identity lookup.
func LoadLookup(dir, lang string) (Lookup, error) {
	for _, path := range poCandidates(dir, lang) {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading catalog %s: %w", path, err)
		}
		return ParsePO(data), nil
	}
	return Identity{}, nil
}

// LoadLookups loads a lookup table for every language.
func LoadLookups(dir string, languages []string) (map[string]Lookup, error) {
	lookups := make(map[string]Lookup, len(languages))
	for _, lang := range languages {
		l, err := LoadLookup(dir, lang)
		if err != nil {
			return nil, err
		}
		lookups[lang] = l
	}
	return lookups, nil
}

// ParseLocales splits a "+"-joined locale list such as "en+fr".
func ParseLocales(locale string) []string {
	var out []string
	for _, part := range strings.Split(strings.ToLower(locale), "+") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		out = []string{"en"}
	}
	return out
}
