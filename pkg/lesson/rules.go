package lesson

import (
	"regexp"
	"strings"
)

// Action is the transition a matched rule asks the scanner to perform.
type Action int

const (
	ActionHiddenBegin Action = iota
	ActionHiddenEnd
	ActionTextBegin
	ActionHintBegin
	ActionTacticBegin
	ActionAxiomBegin
	ActionProblemBegin
	ActionBlockEnd
	ActionProofBegin
	ActionProofEnd
)

// Rule pairs an anchored pattern with the states in which it may fire.
type Rule struct {
	Name    string
	Action  Action
	Kind    ProblemKind // ActionProblemBegin only
	pattern *regexp.Regexp
	allowed func(State) bool
}

// Allows reports whether the rule's state precondition holds in s.
func (r *Rule) Allows(s State) bool {
	return r.allowed(s)
}

// Match is a rule that fired on a line, with its first capture group.
type Match struct {
	Rule    *Rule
	Capture string
}

// Table is the ordered Line Matcher Table.
type Table struct {
	rules []*Rule
}

func idleOnly(s State) bool { return s == StateIdle }

func closesBlock(s State) bool {
	switch s {
	case StateText, StateHint, StateTactic, StateAxiom:
		return true
	}
	return s.IsProblemText()
}

// NewTable builds the matcher table from a compiled grammar in priority order.
func NewTable(g *Grammar) *Table {
	rules := []*Rule{
		{Name: "hidden_begin", Action: ActionHiddenBegin, pattern: g.hiddenBegin, allowed: idleOnly},
		{Name: "hidden_end", Action: ActionHiddenEnd, pattern: g.hiddenEnd, allowed: func(s State) bool { return s == StateHidden }},
		{Name: "text_begin", Action: ActionTextBegin, pattern: g.textBegin, allowed: idleOnly},
		{Name: "hint_begin", Action: ActionHintBegin, pattern: g.hintBegin, allowed: idleOnly},
		{Name: "tactic_begin", Action: ActionTacticBegin, pattern: g.tacticBegin, allowed: idleOnly},
		{Name: "axiom_begin", Action: ActionAxiomBegin, pattern: g.axiomBegin, allowed: idleOnly},
	}
	for _, kind := range ProblemKinds {
		rules = append(rules, &Rule{
			Name:    string(kind) + "_begin",
			Action:  ActionProblemBegin,
			Kind:    kind,
			pattern: g.problems[kind],
			allowed: idleOnly,
		})
	}
	rules = append(rules,
		&Rule{Name: "block_end", Action: ActionBlockEnd, pattern: g.blockEnd, allowed: closesBlock},
		&Rule{Name: "proof_begin", Action: ActionProofBegin, pattern: g.proofBegin, allowed: State.IsProblemBody},
		&Rule{Name: "proof_end", Action: ActionProofEnd, pattern: g.proofEnd, allowed: func(s State) bool { return s == StateProof }},
	)
	return &Table{rules: rules}
}

// Rules returns the rules in priority order.
func (t *Table) Rules() []*Rule {
	return t.rules
}

// Match returns the first rule whose pattern matches line and whose state
// precondition holds in state.
func (t *Table) Match(state State, line string) (Match, bool) {
	for _, rule := range t.rules {
		if !rule.allowed(state) {
			continue
		}
		m := rule.pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		var capture string
		if len(m) > 1 {
			capture = m[1]
		}
		return Match{Rule: rule, Capture: capture}, true
	}
	return Match{}, false
}

// captureTitle cleans a captured title or name, dropping a closing marker
// written on the same line.
func captureTitle(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "-/"))
}
