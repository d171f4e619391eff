// Package translate registers the translatable strings of a game run,
// resolves them per language and produces the gettext template catalog.
package translate

import (
	"regexp"
	"strings"
)

// CommentMarker starts an inline comment in proof-script code.
const CommentMarker = "--"

var hideDirective = regexp.MustCompile(`(?i)--\s*hide\s*$`)

// Entry is one catalog occurrence of an original string.
type Entry struct {
	MsgID      string `json:"msgid"`
	Occurrence string `json:"occurrence"`
}

// Indexer hands out placeholder ids for every registered string. One Indexer
// lives for a whole run: ids and catalog entries keep growing across
// documents and are written out once at the end.
type Indexer struct {
	languages  []string
	lookups    []Lookup
	occurrence string

	entries   []Entry
	originals []string
	texts     [][]string
}

// NewIndexer creates an Indexer for the given languages. Languages without a
// lookup table resolve every string to itself.
func NewIndexer(languages []string, lookups map[string]Lookup) *Indexer {
	ix := &Indexer{
		languages: append([]string(nil), languages...),
		lookups:   make([]Lookup, len(languages)),
		texts:     make([][]string, len(languages)),
	}
	for i, lang := range languages {
		if l, ok := lookups[lang]; ok && l != nil {
			ix.lookups[i] = l
		} else {
			ix.lookups[i] = Identity{}
		}
	}
	return ix
}

// SetOccurrence sets the tag recorded with subsequent catalog entries.
func (ix *Indexer) SetOccurrence(tag string) {
	ix.occurrence = tag
}

// Occurrence returns the current occurrence tag.
func (ix *Indexer) Occurrence() string {
	return ix.occurrence
}

// Register records text under the current occurrence and returns its
// placeholder id.
//
// Untranslatable text resolves to itself in every language. With code set,
// only lines carrying an inline comment are translated, each on its own; a
// line ending in a hide directive is left alone.
func (ix *Indexer) Register(text string, translatable, code bool) int {
	return ix.RegisterAt(text, ix.occurrence, translatable, code)
}

// RegisterAt is Register with an explicit occurrence tag.
func (ix *Indexer) RegisterAt(text, occurrence string, translatable, code bool) int {
	ix.originals = append(ix.originals, text)
	id := len(ix.originals) - 1

	switch {
	case translatable && code:
		ix.registerCode(text, occurrence)
	case translatable:
		ix.entries = append(ix.entries, Entry{MsgID: text, Occurrence: occurrence})
		for l := range ix.languages {
			ix.texts[l] = append(ix.texts[l], ix.resolve(l, text))
		}
	default:
		for l := range ix.languages {
			ix.texts[l] = append(ix.texts[l], text)
		}
	}
	return id
}

func (ix *Indexer) registerCode(text, occurrence string) {
	lines := strings.Split(text, "\n")
	translated := make([][]string, len(ix.languages))
	for l := range ix.languages {
		translated[l] = append([]string(nil), lines...)
	}

	for i, line := range lines {
		if !strings.Contains(line, CommentMarker) || hideDirective.MatchString(line) {
			continue
		}
		ix.entries = append(ix.entries, Entry{MsgID: line, Occurrence: occurrence})
		for l := range ix.languages {
			translated[l][i] = ix.resolve(l, line)
		}
	}

	for l := range ix.languages {
		ix.texts[l] = append(ix.texts[l], strings.Join(translated[l], "\n"))
	}
}

// resolve looks text up for language l, falling back to the original.
func (ix *Indexer) resolve(l int, text string) string {
	if text == "" {
		return ""
	}
	if out := ix.lookups[l].Get(text); out != "" {
		return out
	}
	return text
}

// Languages returns the configured languages in order.
func (ix *Indexer) Languages() []string {
	return append([]string(nil), ix.languages...)
}

// Len returns the number of placeholder ids handed out so far.
func (ix *Indexer) Len() int {
	return len(ix.originals)
}

// Original returns the text registered under id.
func (ix *Indexer) Original(id int) (string, bool) {
	if id < 0 || id >= len(ix.originals) {
		return "", false
	}
	return ix.originals[id], true
}

// Text returns the resolved text of id in lang.
func (ix *Indexer) Text(lang string, id int) (string, bool) {
	for l, name := range ix.languages {
		if name == lang {
			if id < 0 || id >= len(ix.texts[l]) {
				return "", false
			}
			return ix.texts[l][id], true
		}
	}
	return "", false
}

// Texts returns, per language in configured order, the resolved text of
// every placeholder id.
func (ix *Indexer) Texts() [][]string {
	out := make([][]string, len(ix.texts))
	for l, texts := range ix.texts {
		out[l] = append([]string(nil), texts...)
	}
	return out
}

// Catalog returns the catalog entries in registration order. The same msgid
// may appear more than once; WritePOT merges them.
func (ix *Indexer) Catalog() []Entry {
	return append([]Entry(nil), ix.entries...)
}
