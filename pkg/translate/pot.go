package translate

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Header is the metadata written at the top of a template.
type Header struct {
	ProjectVersion string
	CreationDate   time.Time
}

// MergedEntry is a msgid with all the places it occurs.
type MergedEntry struct {
	MsgID       string
	Occurrences []string
}

// Merge collapses entries with the same msgid, keeping first-seen order and
// every distinct occurrence.
func Merge(entries []Entry) []MergedEntry {
	index := make(map[string]int)
	var merged []MergedEntry
	for _, e := range entries {
		if e.MsgID == "" {
			continue
		}
		i, ok := index[e.MsgID]
		if !ok {
			index[e.MsgID] = len(merged)
			merged = append(merged, MergedEntry{MsgID: e.MsgID})
			i = len(merged) - 1
		}
		if e.Occurrence != "" && !contains(merged[i].Occurrences, e.Occurrence) {
			merged[i].Occurrences = append(merged[i].Occurrences, e.Occurrence)
		}
	}
	return merged
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// WritePOT writes entries as a gettext template, merging duplicate msgids.
func WritePOT(w io.Writer, entries []Entry, h Header) error {
	bw := bufio.NewWriter(w)

	created := h.CreationDate
	if created.IsZero() {
		created = time.Now()
	}
	fmt.Fprintln(bw, `msgid ""`)
	fmt.Fprintln(bw, `msgstr ""`)
	fmt.Fprintf(bw, "\"Project-Id-Version: %s\\n\"\n", escape(h.ProjectVersion))
	fmt.Fprintf(bw, "\"POT-Creation-Date: %s\\n\"\n", created.Format("2006-01-02 15:04-0700"))
	fmt.Fprintln(bw, `"MIME-Version: 1.0\n"`)
	fmt.Fprintln(bw, `"Content-Type: text/plain; charset=utf-8\n"`)

	for _, e := range Merge(entries) {
		fmt.Fprintln(bw)
		if len(e.Occurrences) > 0 {
			fmt.Fprintf(bw, "#: %s\n", strings.Join(e.Occurrences, " "))
		}
		writeString(bw, "msgid", e.MsgID)
		fmt.Fprintln(bw, `msgstr ""`)
	}

	return bw.Flush()
}

// SavePOT writes the template to path, creating its directory.
func SavePOT(path string, entries []Entry, h Header) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create locale directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	if err := WritePOT(f, entries, h); err != nil {
		f.Close()
		return fmt.Errorf("failed to write template: %w", err)
	}
	return f.Close()
}

// writeString writes a keyword and its quoted value, splitting multi-line
// values after each newline.
func writeString(w io.Writer, keyword, s string) {
	if !strings.Contains(s, "\n") || s == "\n" {
		fmt.Fprintf(w, "%s \"%s\"\n", keyword, escape(s))
		return
	}
	fmt.Fprintf(w, "%s \"\"\n", keyword)
	rest := s
	for rest != "" {
		i := strings.Index(rest, "\n")
		if i < 0 {
			fmt.Fprintf(w, "\"%s\"\n", escape(rest))
			break
		}
		fmt.Fprintf(w, "\"%s\"\n", escape(rest[:i+1]))
		rest = rest[i+1:]
	}
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

func escape(s string) string {
	return escaper.Replace(s)
}
