// Package lesson parses annotated Lean game sources into a linear sequence of
// content objects: narrative, scaffolding code, side-panel notes and problem
// blocks carrying both a statement and a checkable proof.
package lesson

import (
	"regexp"
	"strings"
)

var blankLinePattern = regexp.MustCompile(`^\s*$`)

// Level is the scanned and finalized content of one lesson.
type Level struct {
	Name      string   `json:"name"`
	WorldName string   `json:"world_name,omitempty"`
	Objects   []Object `json:"objects"`

	// ProblemIndex is the index of the active exercise in Objects, or -1.
	ProblemIndex int `json:"problemIndex"`
}

// Scanner drives the line-by-line state machine over a lesson.
type Scanner struct {
	grammar *Grammar
	table   *Table
}

// NewScanner creates a Scanner for the given grammar. A nil grammar selects
// the default Lean 3 markers.
func NewScanner(g *Grammar) *Scanner {
	if g == nil {
		g = DefaultGrammar()
	}
	return &Scanner{grammar: g, table: NewTable(g)}
}

// Grammar returns the compiled markers the scanner uses.
func (s *Scanner) Grammar() *Grammar {
	return s.grammar
}

// Scan runs a single pass over doc and returns its content objects in
// document order. Problem regions are not yet sliced; see Finalize.
func (s *Scanner) Scan(doc *Document) (*Level, error) {
	if doc == nil {
		return nil, &ParseError{Kind: ErrNotFound, Message: "no document to scan"}
	}

	st := &scanState{
		grammar: s.grammar,
		doc:     doc.Name(),
		level:   &Level{ProblemIndex: -1},
	}

	for i, line := range doc.lines {
		lineNo := i + 1

		if m, ok := s.table.Match(st.state, line); ok {
			if err := st.apply(m, lineNo); err != nil {
				return nil, err
			}
			continue
		}

		if blankLinePattern.MatchString(line) {
			st.blankLine(line)
		} else {
			st.normalLine(line)
		}
	}

	if st.state.inProblem() {
		return nil, newError(ErrMalformed, doc.Name(), st.problem.OpenLine,
			"%s block never reaches the end of its proof (state %s at end of document)", st.problem.Kind, st.state)
	}
	if len(st.level.Objects) == 0 {
		return nil, newError(ErrEmptyDocument, doc.Name(), 0, "no content found")
	}

	return st.level, nil
}

// Parse scans doc and finalizes its problem blocks. With exercise set, the
// first lemma, theorem or definition becomes the active exercise.
func (s *Scanner) Parse(doc *Document, exercise bool) (*Level, error) {
	level, err := s.Scan(doc)
	if err != nil {
		return nil, err
	}

	slicer := &Slicer{Document: doc.Name(), Placeholder: s.grammar.Placeholder(), Exercise: exercise}
	objects, err := slicer.Finalize(doc.Raw(), level.Objects)
	if err != nil {
		return nil, err
	}

	level.Objects = objects
	level.ProblemIndex = ExerciseIndex(objects)
	return level, nil
}

// scanState is the mutable state of one pass. It is discarded when the pass
// ends, so the returned Level shares nothing with a later scan.
type scanState struct {
	grammar *Grammar
	doc     string
	level   *Level

	state   State
	current Object   // object open in the current block
	problem *Problem // most recently opened problem
	codeRun bool     // last object is mergeable visible code
}

func (st *scanState) push(obj Object) {
	st.level.Objects = append(st.level.Objects, obj)
	st.current = obj
}

func (st *scanState) reset() {
	st.state = StateIdle
	st.current = nil
}

// apply performs the transition of a matched rule.
func (st *scanState) apply(m Match, lineNo int) error {
	st.codeRun = false

	switch m.Rule.Action {
	case ActionHiddenBegin:
		st.push(&PlainCode{Hidden: true})
		st.state = StateHidden

	case ActionTextBegin:
		st.push(&Narrative{})
		st.state = StateText

	case ActionHintBegin:
		st.push(&Hint{Title: captureTitle(m.Capture)})
		st.state = StateHint

	case ActionTacticBegin:
		st.push(&TacticNote{Name: captureTitle(m.Capture)})
		st.state = StateTactic

	case ActionAxiomBegin:
		st.push(&AxiomNote{Name: captureTitle(m.Capture)})
		st.state = StateAxiom

	case ActionProblemBegin:
		p := &Problem{
			Kind:     m.Rule.Kind,
			SideBar:  st.grammar.sideBar(m.Capture),
			OpenLine: lineNo,
		}
		st.push(p)
		st.problem = p
		st.state = textState(p.Kind)

	case ActionBlockEnd:
		if text := strings.TrimRight(m.Capture, " \t\r"); strings.TrimSpace(text) != "" {
			st.current.appendLine(text + "\n")
		}
		if st.state.IsProblemText() {
			st.state = bodyState(st.problem.Kind)
			return nil
		}
		st.reset()

	case ActionHiddenEnd:
		st.reset()

	case ActionProofBegin:
		st.problem.ProofStartLine = lineNo + 1
		st.state = StateProof

	case ActionProofEnd:
		st.problem.ProofEndLine = lineNo - 1
		if st.problem.ProofEndLine < st.problem.ProofStartLine {
			return newError(ErrMalformed, st.doc, lineNo, "empty proof in %s block opened at line %d",
				st.problem.Kind, st.problem.OpenLine)
		}
		st.reset()
	}
	return nil
}

// normalLine handles a non-blank line no rule matched.
func (st *scanState) normalLine(line string) {
	switch {
	case st.state == StateIdle:
		st.idleLine(line)
	case st.state == StateProof:
		// Proof lines are recovered from the raw text by the slicer.
	case st.state.IsProblemBody():
		st.problem.appendCode(line + "\n")
	default:
		st.current.appendLine(line + "\n")
	}
}

// blankLine handles a blank line no rule matched.
func (st *scanState) blankLine(line string) {
	switch st.state {
	case StateIdle:
		st.codeRun = false
	// Problem narratives keep their blank lines too, so paragraphs survive
	// in the problem text.
	case StateText, StateHint, StateTactic, StateAxiom,
		StateLemmaText, StateTheoremText, StateExampleText, StateDefinitionText:
		st.current.appendLine(line + "\n")
	}
}

// idleLine handles a line outside of every block: a metadata directive or
// scaffolding code.
func (st *scanState) idleLine(line string) {
	if m := st.grammar.levelName.FindStringSubmatch(line); m != nil {
		st.level.Name = strings.TrimSpace(m[1])
		st.codeRun = false
		return
	}
	if m := st.grammar.worldName.FindStringSubmatch(line); m != nil {
		st.level.WorldName = strings.TrimSpace(m[1])
		st.codeRun = false
		return
	}

	hidden := st.grammar.hideLine.MatchString(line)
	if !hidden && st.codeRun {
		st.current.appendLine(line + "\n")
		return
	}

	st.push(&PlainCode{Text: line + "\n", Hidden: hidden})
	st.codeRun = !hidden
}
