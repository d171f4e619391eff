package lesson

// Registrar records a string in the translation catalog and returns its
// placeholder id. code marks proof-script text whose comments are translated
// line by line.
type Registrar interface {
	Register(text string, translatable, code bool) int
}

// Record is a serialized content object whose text fields hold placeholder
// ids instead of text.
type Record map[string]interface{}

// Localize registers every text field of obj in document order and returns
// its record.
func Localize(obj Object, r Registrar) Record {
	rec := Record{"type": obj.Type()}

	switch o := obj.(type) {
	case *Narrative:
		rec["content"] = r.Register(o.Text, true, false)

	case *PlainCode:
		if o.Hidden {
			rec["content"] = r.Register(o.Text, false, false)
		} else {
			rec["content"] = r.Register(o.Text, true, true)
		}
		rec["hidden"] = o.Hidden

	case *Hint:
		rec["title"] = r.Register(o.Title, true, false)
		rec["content"] = r.Register(o.Text, true, false)

	case *TacticNote:
		rec["name"] = r.Register(o.Name, false, false)
		rec["content"] = r.Register(o.Text, true, false)
		rec["sideBar"] = true

	case *AxiomNote:
		rec["name"] = r.Register(o.Name, false, false)
		rec["content"] = r.Register(o.Text, true, false)
		rec["sideBar"] = true

	case *Problem:
		localizeProblem(o, r, rec)
	}
	return rec
}

func localizeProblem(p *Problem, r Registrar, rec Record) {
	rec["text"] = r.Register(p.Narrative, true, false)
	rec["lean"] = r.Register(p.Code, true, true)
	rec["sideBar"] = p.SideBar
	if p.Kind != KindExample {
		rec["name"] = r.Register(p.Name, false, false)
	}
	rec["statement"] = r.Register(p.Statement, false, false)

	if p.Region == nil {
		return
	}
	rec["firstProofLineNumber"] = p.ProofStartLine
	rec["lastProofLineNumber"] = p.ProofEndLine
	rec["textBefore"] = r.Register(p.Region.TextBefore, true, true)
	rec["proof"] = r.Register(p.Region.ProofBody, true, true)
	rec["textAfter"] = r.Register(p.Region.TextAfter, true, true)
	rec["height"] = p.Region.Height
	rec["lineOffset"] = p.Region.LineOffset
	if p.Exercise {
		rec["editorText"] = r.Register(p.Region.EditorStartText, false, false)
	} else {
		rec["editorText"] = r.Register(p.Region.EditorStartText, true, true)
	}
}

// LocalizeAll localizes objects in order.
func LocalizeAll(objects []Object, r Registrar) []Record {
	out := make([]Record, 0, len(objects))
	for _, obj := range objects {
		out = append(out, Localize(obj, r))
	}
	return out
}

// LocalizeLevel registers the level name, then every object, and returns
// the name's placeholder id with the object records.
func LocalizeLevel(level *Level, r Registrar) (int, []Record) {
	name := r.Register(level.Name, true, false)
	return name, LocalizeAll(level.Objects, r)
}
