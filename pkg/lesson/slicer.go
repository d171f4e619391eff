package lesson

import "strings"

// Slicer derives the display metadata of problem blocks from the raw text
// of their document once scanning has finished.
type Slicer struct {
	// Document identifies the source in errors.
	Document string

	// Placeholder is the editor text of the active exercise.
	Placeholder string

	// Exercise selects the first lemma, theorem or definition as the active
	// exercise. When false every problem shows its real proof.
	Exercise bool
}

// Finalize returns a copy of objects in which every problem carries its
// name, statement and, when both proof boundaries were recorded, its proof
// region. The input slice and its problems are left untouched.
func (s *Slicer) Finalize(raw string, objects []Object) ([]Object, error) {
	lines := strings.Split(raw, "\n")
	placeholder := s.Placeholder
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}

	out := make([]Object, len(objects))
	exerciseChosen := !s.Exercise

	for i, obj := range objects {
		src, ok := obj.(*Problem)
		if !ok {
			out[i] = obj
			continue
		}
		p := *src

		name, statement, ok := ExtractStatement(p.Kind, p.Code)
		if !ok {
			return nil, newError(ErrUnparsableStatement, s.Document, p.OpenLine,
				"%s header %q does not end with %q", p.Kind, strings.TrimSpace(p.Code), assignAnchor)
		}
		p.Name, p.Statement = name, statement

		if !exerciseChosen && p.Kind.Exercisable() {
			p.Exercise = true
			exerciseChosen = true
		}

		if p.HasProof() {
			region, err := s.slice(lines, &p)
			if err != nil {
				return nil, err
			}
			if p.Exercise {
				region.EditorStartText = placeholder
			}
			p.Region = region
		}

		out[i] = &p
	}
	return out, nil
}

// slice cuts the raw lines around the recorded proof boundaries. The three
// parts concatenate back to the raw text.
func (s *Slicer) slice(lines []string, p *Problem) (*ProofRegion, error) {
	start, end := p.ProofStartLine, p.ProofEndLine
	if start < 2 || end < start || end >= len(lines) {
		return nil, newError(ErrMalformed, s.Document, p.OpenLine,
			"proof lines %d-%d out of range for %d lines", start, end, len(lines))
	}

	body := strings.Join(lines[start-1:end], "\n")
	return &ProofRegion{
		TextBefore:      strings.Join(lines[:start-1], "\n") + "\n",
		ProofBody:       body,
		TextAfter:       "\n" + strings.Join(lines[end:], "\n"),
		Height:          end - start + 1,
		LineOffset:      start - 1,
		EditorStartText: body,
	}, nil
}

// ExerciseIndex returns the index of the active exercise in objects, or -1.
func ExerciseIndex(objects []Object) int {
	for i, obj := range objects {
		if p, ok := obj.(*Problem); ok && p.Exercise {
			return i
		}
	}
	return -1
}
