package lesson

import (
	"regexp"
	"strings"
)

const assignAnchor = ":="

// declKeyword matches the declaration keyword opening a problem header,
// with optional attribute and modifiers.
var declKeyword = regexp.MustCompile(`^\s*(?:@\[[^\]]*\]\s*)?(?:(?:private|protected|noncomputable)\s+)*(?:lemma|theorem|example|definition|def|instance)\b`)

// ExtractStatement splits a problem header such as "lemma foo : 1 = 1 :="
// into its name and statement. Examples have no name.
//
// Names containing a space, colon, parenthesis or brace are not supported:
// the first of those characters ends the name.
func ExtractStatement(kind ProblemKind, header string) (name, statement string, ok bool) {
	text := strings.TrimSpace(header)
	if !strings.HasSuffix(text, assignAnchor) {
		return "", "", false
	}
	text = strings.TrimSpace(strings.TrimSuffix(text, assignAnchor))
	if loc := declKeyword.FindStringIndex(text); loc != nil {
		text = strings.TrimSpace(text[loc[1]:])
	}

	if kind == KindExample {
		return "", stripAscription(text), true
	}

	idx := strings.IndexAny(text, " \t\r\n:({")
	if idx < 0 {
		return text, "", true
	}
	return text[:idx], stripAscription(text[idx:]), true
}

func stripAscription(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, ":")
	return strings.TrimSpace(s)
}
