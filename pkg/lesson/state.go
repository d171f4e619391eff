package lesson

// State is the block the scanner is currently inside. Blocks never nest, so
// exactly one State is active at a time.
type State int

const (
	StateIdle State = iota
	StateHidden
	StateText
	StateHint
	StateTactic
	StateAxiom
	StateLemmaText
	StateLemmaBody
	StateTheoremText
	StateTheoremBody
	StateExampleText
	StateExampleBody
	StateDefinitionText
	StateDefinitionBody
	StateProof
)

var stateNames = map[State]string{
	StateIdle:           "idle",
	StateHidden:         "hidden",
	StateText:           "text",
	StateHint:           "hint",
	StateTactic:         "tactic",
	StateAxiom:          "axiom",
	StateLemmaText:      "lemma_text",
	StateLemmaBody:      "lemma_lean",
	StateTheoremText:    "theorem_text",
	StateTheoremBody:    "theorem_lean",
	StateExampleText:    "example_text",
	StateExampleBody:    "example_lean",
	StateDefinitionText: "definition_text",
	StateDefinitionBody: "definition_lean",
	StateProof:          "proof",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// textState returns the narrative state of a problem kind.
func textState(k ProblemKind) State {
	switch k {
	case KindTheorem:
		return StateTheoremText
	case KindExample:
		return StateExampleText
	case KindDefinition:
		return StateDefinitionText
	default:
		return StateLemmaText
	}
}

// bodyState returns the header-code state of a problem kind.
func bodyState(k ProblemKind) State {
	return textState(k) + 1
}

// IsProblemText reports whether s is the narrative part of a problem block.
func (s State) IsProblemText() bool {
	switch s {
	case StateLemmaText, StateTheoremText, StateExampleText, StateDefinitionText:
		return true
	}
	return false
}

// IsProblemBody reports whether s is the header-code part of a problem block.
func (s State) IsProblemBody() bool {
	switch s {
	case StateLemmaBody, StateTheoremBody, StateExampleBody, StateDefinitionBody:
		return true
	}
	return false
}

// inProblem reports whether s belongs to an open problem block.
func (s State) inProblem() bool {
	return s.IsProblemText() || s.IsProblemBody() || s == StateProof
}
