package lesson

import "encoding/json"

// ObjectType is the tag a content object carries in serialized form.
type ObjectType string

const (
	TypeText   ObjectType = "text"
	TypeCode   ObjectType = "lean"
	TypeHint   ObjectType = "hint"
	TypeTactic ObjectType = "tactic"
	TypeAxiom  ObjectType = "axiom"
)

// ProblemKind is the declaration kind of a problem block.
type ProblemKind string

const (
	KindLemma      ProblemKind = "lemma"
	KindTheorem    ProblemKind = "theorem"
	KindExample    ProblemKind = "example"
	KindDefinition ProblemKind = "definition"
)

// ProblemKinds lists the problem kinds in matcher priority order.
var ProblemKinds = []ProblemKind{KindLemma, KindTheorem, KindExample, KindDefinition}

// Exercisable reports whether a problem of this kind may become the active
// exercise. Examples are always fully worked.
func (k ProblemKind) Exercisable() bool {
	return k == KindLemma || k == KindTheorem || k == KindDefinition
}

// Object is one content block of a lesson. The set of implementations is
// closed: PlainCode, Narrative, Hint, TacticNote, AxiomNote and Problem.
type Object interface {
	Type() ObjectType
	appendLine(line string)
}

// PlainCode is scaffolding code outside of any problem.
type PlainCode struct {
	Text   string `json:"content"`
	Hidden bool   `json:"hidden"`
}

// Narrative is free prose.
type Narrative struct {
	Text string `json:"content"`
}

// Hint is a side-panel note with a title.
type Hint struct {
	Title string `json:"title"`
	Text  string `json:"content"`
}

// TacticNote documents a tactic in the side panel.
type TacticNote struct {
	Name string `json:"name"`
	Text string `json:"content"`
}

// AxiomNote documents an axiom in the side panel.
type AxiomNote struct {
	Name string `json:"name"`
	Text string `json:"content"`
}

// Problem is a lemma, theorem, example or definition block: narrative
// followed by a declaration header and its proof.
type Problem struct {
	Kind      ProblemKind `json:"-"`
	Narrative string      `json:"text"`
	Code      string      `json:"lean"`
	SideBar   bool        `json:"sideBar"`

	// OpenLine is the line of the opening marker.
	OpenLine int `json:"-"`

	// ProofStartLine and ProofEndLine are 1-based and exclude the proof
	// keyword lines. Zero means not recorded.
	ProofStartLine int `json:"firstProofLineNumber,omitempty"`
	ProofEndLine   int `json:"lastProofLineNumber,omitempty"`

	// Set by Finalize.
	Name      string       `json:"name,omitempty"`
	Statement string       `json:"statement,omitempty"`
	Exercise  bool         `json:"exercise,omitempty"`
	Region    *ProofRegion `json:"-"`
}

// ProofRegion is the display metadata the slicer derives from raw text.
type ProofRegion struct {
	TextBefore      string `json:"textBefore"`
	ProofBody       string `json:"proof"`
	TextAfter       string `json:"textAfter"`
	Height          int    `json:"height"`
	LineOffset      int    `json:"lineOffset"`
	EditorStartText string `json:"editorText"`
}

func (*PlainCode) Type() ObjectType  { return TypeCode }
func (*Narrative) Type() ObjectType  { return TypeText }
func (*Hint) Type() ObjectType       { return TypeHint }
func (*TacticNote) Type() ObjectType { return TypeTactic }
func (*AxiomNote) Type() ObjectType  { return TypeAxiom }
func (p *Problem) Type() ObjectType  { return ObjectType(p.Kind) }

func (o *PlainCode) appendLine(line string)  { o.Text += line }
func (o *Narrative) appendLine(line string)  { o.Text += line }
func (o *Hint) appendLine(line string)       { o.Text += line }
func (o *TacticNote) appendLine(line string) { o.Text += line }
func (o *AxiomNote) appendLine(line string)  { o.Text += line }

// appendLine adds to the narrative; header code goes through appendCode.
func (p *Problem) appendLine(line string) { p.Narrative += line }

func (p *Problem) appendCode(line string) { p.Code += line }

// HasProof reports whether both proof boundaries were recorded.
func (p *Problem) HasProof() bool {
	return p.ProofStartLine > 0 && p.ProofEndLine > 0
}

// MarshalJSON tags the object with its type.
func (o *PlainCode) MarshalJSON() ([]byte, error) {
	type alias PlainCode
	return json.Marshal(struct {
		Type ObjectType `json:"type"`
		*alias
	}{o.Type(), (*alias)(o)})
}

// MarshalJSON tags the object with its type.
func (o *Narrative) MarshalJSON() ([]byte, error) {
	type alias Narrative
	return json.Marshal(struct {
		Type ObjectType `json:"type"`
		*alias
	}{o.Type(), (*alias)(o)})
}

// MarshalJSON tags the object with its type.
func (o *Hint) MarshalJSON() ([]byte, error) {
	type alias Hint
	return json.Marshal(struct {
		Type ObjectType `json:"type"`
		*alias
	}{o.Type(), (*alias)(o)})
}

// MarshalJSON tags the object with its type.
func (o *TacticNote) MarshalJSON() ([]byte, error) {
	type alias TacticNote
	return json.Marshal(struct {
		Type ObjectType `json:"type"`
		*alias
	}{o.Type(), (*alias)(o)})
}

// MarshalJSON tags the object with its type.
func (o *AxiomNote) MarshalJSON() ([]byte, error) {
	type alias AxiomNote
	return json.Marshal(struct {
		Type ObjectType `json:"type"`
		*alias
	}{o.Type(), (*alias)(o)})
}

// MarshalJSON tags the problem with its kind and flattens the proof region.
func (p *Problem) MarshalJSON() ([]byte, error) {
	type alias Problem
	return json.Marshal(struct {
		Type ObjectType `json:"type"`
		*alias
		*ProofRegion
	}{p.Type(), (*alias)(p), p.Region})
}
