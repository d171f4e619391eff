package lesson

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPlaceholder is the editor text of the active exercise.
const DefaultPlaceholder = "sorry"

// MarkerSet describes the structural markers of a lesson as regular
// expressions. Patterns for titled blocks, problem blocks and directives
// must have one capture group. BlockEnd may capture the text written before
// the close marker on the same line; that text stays part of the block.
type MarkerSet struct {
	HiddenBegin string `yaml:"hidden_begin" json:"hidden_begin"`
	HiddenEnd   string `yaml:"hidden_end" json:"hidden_end"`
	TextBegin   string `yaml:"text_begin" json:"text_begin"`
	BlockEnd    string `yaml:"block_end" json:"block_end"`

	HintBegin   string `yaml:"hint_begin" json:"hint_begin"`
	TacticBegin string `yaml:"tactic_begin" json:"tactic_begin"`
	AxiomBegin  string `yaml:"axiom_begin" json:"axiom_begin"`

	LemmaBegin      string `yaml:"lemma_begin" json:"lemma_begin"`
	TheoremBegin    string `yaml:"theorem_begin" json:"theorem_begin"`
	ExampleBegin    string `yaml:"example_begin" json:"example_begin"`
	DefinitionBegin string `yaml:"definition_begin" json:"definition_begin"`

	ProofBegin string `yaml:"proof_begin" json:"proof_begin"`
	ProofEnd   string `yaml:"proof_end" json:"proof_end"`

	LevelName string `yaml:"level_name" json:"level_name"`
	WorldName string `yaml:"world_name" json:"world_name"`
	HideLine  string `yaml:"hide_line" json:"hide_line"`

	// NoSideBar is the problem modifier that hides the side bar.
	NoSideBar string `yaml:"no_side_bar" json:"no_side_bar"`

	// Placeholder replaces the proof of the active exercise.
	Placeholder string `yaml:"placeholder" json:"placeholder"`
}

// DefaultMarkers returns the marker set of Lean 3 game sources.
func DefaultMarkers() *MarkerSet {
	return &MarkerSet{
		HiddenBegin: `(?i)^\s*--\s*begin\s+hide\s*$`,
		HiddenEnd:   `(?i)^\s*--\s*end\s+hide\s*$`,
		TextBegin:   `^\s*/-\s*$`,
		BlockEnd:    `^(.*?)/?-/\s*$`,

		HintBegin:   `(?i)^\s*/-\s*hint\s*:?\s*(.*)$`,
		TacticBegin: `(?i)^\s*/-\s*tactic\s*:\s*(.*)$`,
		AxiomBegin:  `(?i)^\s*/-\s*axiom\s*:\s*(.*)$`,

		LemmaBegin:      `(?i)^\s*/-\s*lemma\s*:?(.*)$`,
		TheoremBegin:    `(?i)^\s*/-\s*theorem\s*:?(.*)$`,
		ExampleBegin:    `(?i)^\s*/-\s*example\s*:?(.*)$`,
		DefinitionBegin: `(?i)^\s*/-\s*definition\s*:?(.*)$`,

		ProofBegin: `^begin\b`,
		ProofEnd:   `^end\s*$`,

		LevelName: `(?i)^\s*--\s*level\s+name\s*:\s*(.*)$`,
		WorldName: `(?i)^\s*--\s*world\s+name\s*:\s*(.*)$`,
		HideLine:  `(?i)--\s*hide\s*$`,

		NoSideBar:   "no-side-bar",
		Placeholder: DefaultPlaceholder,
	}
}

// LoadMarkers reads a YAML marker file. Keys missing from the file keep
// their default pattern.
func LoadMarkers(path string) (*MarkerSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading marker file: %w", err)
	}

	markers := DefaultMarkers()
	if err := yaml.Unmarshal(data, markers); err != nil {
		return nil, fmt.Errorf("parsing marker file %s: %w", path, err)
	}
	return markers, nil
}

// Grammar is a compiled MarkerSet.
type Grammar struct {
	hiddenBegin *regexp.Regexp
	hiddenEnd   *regexp.Regexp
	textBegin   *regexp.Regexp
	blockEnd    *regexp.Regexp
	hintBegin   *regexp.Regexp
	tacticBegin *regexp.Regexp
	axiomBegin  *regexp.Regexp
	problems    map[ProblemKind]*regexp.Regexp
	proofBegin  *regexp.Regexp
	proofEnd    *regexp.Regexp

	levelName *regexp.Regexp
	worldName *regexp.Regexp
	hideLine  *regexp.Regexp

	noSideBar   string
	placeholder string
}

type markerEntry struct {
	name     string
	pattern  string
	captures bool
	target   **regexp.Regexp
}

// Compile validates the marker set and compiles its patterns.
func (m *MarkerSet) Compile() (*Grammar, error) {
	g := &Grammar{
		problems:    make(map[ProblemKind]*regexp.Regexp, len(ProblemKinds)),
		noSideBar:   strings.TrimSpace(m.NoSideBar),
		placeholder: m.Placeholder,
	}
	var lemma, theorem, example, definition *regexp.Regexp

	entries := []markerEntry{
		{"hidden_begin", m.HiddenBegin, false, &g.hiddenBegin},
		{"hidden_end", m.HiddenEnd, false, &g.hiddenEnd},
		{"text_begin", m.TextBegin, false, &g.textBegin},
		{"block_end", m.BlockEnd, false, &g.blockEnd},
		{"hint_begin", m.HintBegin, true, &g.hintBegin},
		{"tactic_begin", m.TacticBegin, true, &g.tacticBegin},
		{"axiom_begin", m.AxiomBegin, true, &g.axiomBegin},
		{"lemma_begin", m.LemmaBegin, true, &lemma},
		{"theorem_begin", m.TheoremBegin, true, &theorem},
		{"example_begin", m.ExampleBegin, true, &example},
		{"definition_begin", m.DefinitionBegin, true, &definition},
		{"proof_begin", m.ProofBegin, false, &g.proofBegin},
		{"proof_end", m.ProofEnd, false, &g.proofEnd},
		{"level_name", m.LevelName, true, &g.levelName},
		{"world_name", m.WorldName, true, &g.worldName},
		{"hide_line", m.HideLine, false, &g.hideLine},
	}

	for _, entry := range entries {
		if strings.TrimSpace(entry.pattern) == "" {
			return nil, fmt.Errorf("marker %s: pattern is empty", entry.name)
		}
		re, err := regexp.Compile(entry.pattern)
		if err != nil {
			return nil, fmt.Errorf("marker %s: %w", entry.name, err)
		}
		if entry.captures && re.NumSubexp() < 1 {
			return nil, fmt.Errorf("marker %s: pattern %q needs a capture group", entry.name, entry.pattern)
		}
		*entry.target = re
	}

	g.problems[KindLemma] = lemma
	g.problems[KindTheorem] = theorem
	g.problems[KindExample] = example
	g.problems[KindDefinition] = definition

	if g.placeholder == "" {
		g.placeholder = DefaultPlaceholder
	}
	return g, nil
}

// MustCompile is like Compile but panics on error.
func (m *MarkerSet) MustCompile() *Grammar {
	g, err := m.Compile()
	if err != nil {
		panic(err)
	}
	return g
}

// DefaultGrammar returns the compiled default marker set.
func DefaultGrammar() *Grammar {
	return DefaultMarkers().MustCompile()
}

// Placeholder returns the editor text used for the active exercise.
func (g *Grammar) Placeholder() string {
	return g.placeholder
}

// sideBar interprets the modifier captured from a problem open line.
func (g *Grammar) sideBar(modifier string) bool {
	modifier = strings.TrimSpace(modifier)
	modifier = strings.TrimSpace(strings.TrimSuffix(modifier, "-/"))
	return !strings.EqualFold(modifier, g.noSideBar)
}
