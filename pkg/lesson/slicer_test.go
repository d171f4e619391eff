package lesson

import (
	"errors"
	"strings"
	"testing"
)

func parseLevel(t *testing.T) *Level {
	t.Helper()

	level, err := NewScanner(nil).Parse(loadLevel(t), true)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return level
}

func TestParse_ExerciseSelection(t *testing.T) {
	level := parseLevel(t)

	if level.ProblemIndex != 9 {
		t.Fatalf("ProblemIndex: got %d, want 9", level.ProblemIndex)
	}

	example := level.Objects[8].(*Problem)
	lemma := level.Objects[9].(*Problem)
	theorem := level.Objects[10].(*Problem)

	if example.Exercise || !lemma.Exercise || theorem.Exercise {
		t.Errorf("exercise flags: example=%v lemma=%v theorem=%v", example.Exercise, lemma.Exercise, theorem.Exercise)
	}
	if lemma.Region.EditorStartText != DefaultPlaceholder {
		t.Errorf("exercise editor text: got %q, want %q", lemma.Region.EditorStartText, DefaultPlaceholder)
	}
	if example.Region.EditorStartText != example.Region.ProofBody {
		t.Errorf("worked example editor text: got %q, want its proof", example.Region.EditorStartText)
	}
	if theorem.Region.EditorStartText != "  -- simplify the goal\n  simp," {
		t.Errorf("theorem editor text: got %q", theorem.Region.EditorStartText)
	}
}

func TestParse_Statements(t *testing.T) {
	level := parseLevel(t)

	tests := []struct {
		index     int
		name      string
		statement string
	}{
		{8, "", "2 = 2"},
		{9, "foo", "1 = 1"},
		{10, "bar", "(a : ℕ) : a + 0 = a"},
	}
	for _, tt := range tests {
		p := level.Objects[tt.index].(*Problem)
		if p.Name != tt.name || p.Statement != tt.statement {
			t.Errorf("object %d: got (%q, %q), want (%q, %q)", tt.index, p.Name, p.Statement, tt.name, tt.statement)
		}
	}
}

func TestParse_RegionPartitionsRawText(t *testing.T) {
	doc := loadLevel(t)
	level, err := NewScanner(nil).Parse(doc, true)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	for i, obj := range level.Objects {
		p, ok := obj.(*Problem)
		if !ok {
			continue
		}
		r := p.Region
		if r == nil {
			t.Fatalf("object %d has no region", i)
		}
		if got := r.TextBefore + r.ProofBody + r.TextAfter; got != doc.Raw() {
			t.Errorf("object %d: parts do not concatenate back to the document", i)
		}
		if r.Height != p.ProofEndLine-p.ProofStartLine+1 {
			t.Errorf("object %d: height %d for lines %d-%d", i, r.Height, p.ProofStartLine, p.ProofEndLine)
		}
		if r.LineOffset != p.ProofStartLine-1 {
			t.Errorf("object %d: line offset %d, want %d", i, r.LineOffset, p.ProofStartLine-1)
		}
		if n := strings.Count(r.TextBefore, "\n"); n != r.LineOffset {
			t.Errorf("object %d: text before spans %d lines, want %d", i, n, r.LineOffset)
		}
	}

	theorem := level.Objects[10].(*Problem).Region
	if theorem.Height != 2 || theorem.ProofBody != "  -- simplify the goal\n  simp," {
		t.Errorf("theorem region: got height %d body %q", theorem.Height, theorem.ProofBody)
	}
}

func TestParse_SmallLevel(t *testing.T) {
	text := "-- Level name: Add zero\n/- Lemma -/\nSquares are nice\n/-/\nlemma foo : 1 = 1 :=\nbegin\n  refl,\nend\n"
	level, err := NewScanner(nil).Parse(NewDocument("small.lean", text), true)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if level.Name != "Add zero" || len(level.Objects) != 1 || level.ProblemIndex != 0 {
		t.Fatalf("got name %q, %d objects, problem %d", level.Name, len(level.Objects), level.ProblemIndex)
	}
	p := level.Objects[0].(*Problem)
	if p.Name != "foo" || p.Statement != "1 = 1" {
		t.Errorf("statement: got (%q, %q)", p.Name, p.Statement)
	}
	if p.Region.ProofBody != "  refl," || p.Region.Height != 1 || p.Region.LineOffset != 6 {
		t.Errorf("region: got %+v", p.Region)
	}
	if p.Narrative != "Squares are nice\n" {
		t.Errorf("narrative: got %q", p.Narrative)
	}
	if p.Region.TextBefore != "-- Level name: Add zero\n/- Lemma -/\nSquares are nice\n/-/\nlemma foo : 1 = 1 :=\nbegin\n" {
		t.Errorf("text before: got %q", p.Region.TextBefore)
	}
	if p.Region.TextAfter != "\nend\n" {
		t.Errorf("text after: got %q", p.Region.TextAfter)
	}
}

func TestFinalize_WithoutExercise(t *testing.T) {
	doc := loadLevel(t)
	level, err := NewScanner(nil).Scan(doc)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	slicer := &Slicer{Document: doc.Name()}
	objects, err := slicer.Finalize(doc.Raw(), level.Objects)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if idx := ExerciseIndex(objects); idx != -1 {
		t.Errorf("ExerciseIndex: got %d, want -1", idx)
	}
	lemma := objects[9].(*Problem)
	if lemma.Region.EditorStartText != lemma.Region.ProofBody {
		t.Errorf("editor text: got %q", lemma.Region.EditorStartText)
	}
}

func TestFinalize_LeavesInputUntouched(t *testing.T) {
	doc := loadLevel(t)
	level, err := NewScanner(nil).Scan(doc)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	slicer := &Slicer{Exercise: true}
	if _, err := slicer.Finalize(doc.Raw(), level.Objects); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	lemma := level.Objects[9].(*Problem)
	if lemma.Region != nil || lemma.Exercise || lemma.Name != "" {
		t.Errorf("input problem was modified: %+v", lemma)
	}
}

func TestFinalize_CustomPlaceholder(t *testing.T) {
	doc := NewDocument("p.lean", "/- Definition\n-/\ndef two : ℕ :=\nbegin\n  exact 2,\nend\n")
	level, err := NewScanner(nil).Scan(doc)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	slicer := &Slicer{Placeholder: "_", Exercise: true}
	objects, err := slicer.Finalize(doc.Raw(), level.Objects)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	p := objects[0].(*Problem)
	if !p.Exercise || p.Region.EditorStartText != "_" {
		t.Errorf("got exercise=%v editor %q", p.Exercise, p.Region.EditorStartText)
	}
	if p.Name != "two" || p.Statement != "ℕ" {
		t.Errorf("statement: got (%q, %q)", p.Name, p.Statement)
	}
}

func TestFinalize_UnparsableStatement(t *testing.T) {
	doc := NewDocument("u.lean", "/- Lemma\n-/\nlemma foo : 1 = 1\nbegin\n  refl,\nend\n")
	_, err := NewScanner(nil).Parse(doc, true)
	if !errors.Is(err, ErrUnparsableStatement) {
		t.Fatalf("got %v, want ErrUnparsableStatement", err)
	}
	var pe *ParseError
	if errors.As(err, &pe) && pe.Line != 1 {
		t.Errorf("line: got %d, want 1", pe.Line)
	}
}

func TestFinalize_ProofOutOfRange(t *testing.T) {
	objects := []Object{&Problem{
		Kind:           KindLemma,
		Code:           "lemma x : true :=\n",
		ProofStartLine: 3,
		ProofEndLine:   9,
	}}
	_, err := (&Slicer{}).Finalize("a\nb\nc\n", objects)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("got %v, want ErrMalformed", err)
	}
}

func TestParse_WithoutExercise(t *testing.T) {
	level, err := NewScanner(nil).Parse(loadLevel(t), false)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if level.ProblemIndex != -1 {
		t.Errorf("ProblemIndex: got %d, want -1", level.ProblemIndex)
	}
	lemma := level.Objects[9].(*Problem)
	if lemma.Exercise || lemma.Region.EditorStartText != "  refl," {
		t.Errorf("lemma: exercise=%v editor %q", lemma.Exercise, lemma.Region.EditorStartText)
	}
}
