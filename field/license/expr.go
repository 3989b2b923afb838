package license

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/github/go-spdx/v2/spdxexp"
)

// word is a run of characters between whitespace and parentheses.
type word struct {
	text string
	off  int
}

func words(s string) []word {
	var out []word
	start := -1
	for i, r := range s {
		sep := r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '(' || r == ')'
		if sep && start >= 0 {
			out = append(out, word{text: s[start:i], off: start})
			start = -1
		}
		if !sep && start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, word{text: s[start:], off: start})
	}
	return out
}

var operators = map[string]bool{"AND": true, "OR": true, "WITH": true}

// validate checks expr in three passes: operators are upper-case, every
// identifier is known with its exact spelling, and the boolean structure
// parses as an SPDX expression.
func validate(t *Table, expr string) error {
	ws := words(expr)
	if len(ws) == 0 {
		return &StructureError{Offset: 0, Reason: "empty expression"}
	}
	for _, w := range ws {
		if up := strings.ToUpper(w.text); operators[up] && w.text != up {
			return &StructureError{Offset: w.off, Reason: "operator " + quote(w.text) + " must be upper-case"}
		}
	}
	for i, w := range ws {
		if operators[w.text] || w.text == "+" {
			continue
		}
		if i > 0 && ws[i-1].text == "WITH" {
			if !t.Exception(w.text) {
				return &UnknownIDError{ID: w.text, Exception: true}
			}
			continue
		}
		if !t.knownLicense(w.text) {
			return &UnknownIDError{ID: w.text}
		}
	}
	work := strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, expr)
	if _, err := spdxexp.ExtractLicenses(t.substituteCustom(work, ws)); err != nil {
		return &StructureError{Offset: libraryOffset(err), Reason: err.Error()}
	}
	return nil
}

// substituteCustom replaces custom identifiers with a same-width stand-in
// the SPDX parser accepts, so offsets in its errors still match expr.
func (t *Table) substituteCustom(expr string, ws []word) string {
	if len(t.custom) == 0 {
		return expr
	}
	var b strings.Builder
	last := 0
	for _, w := range ws {
		if !t.isCustom(w.text) {
			continue
		}
		id := strings.TrimSuffix(w.text, "+")
		b.WriteString(expr[last:w.off])
		if len(id) >= len("MIT") {
			b.WriteString(strings.Repeat(" ", len(id)-len("MIT")) + "MIT")
		} else {
			b.WriteString("LicenseRef-custom")
		}
		last = w.off + len(id)
	}
	b.WriteString(expr[last:])
	return b.String()
}

var offsetPattern = regexp.MustCompile(`at offset (\d+)`)

// libraryOffset extracts the position from an SPDX parser message, or -1.
func libraryOffset(err error) int {
	m := offsetPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return -1
	}
	n, convErr := strconv.Atoi(m[1])
	if convErr != nil {
		return -1
	}
	return n
}

func quote(s string) string { return "`" + s + "`" }

// knownLicense accepts table entries (optionally suffixed with "+") and
// user-defined LicenseRef/DocumentRef references.
func (t *Table) knownLicense(id string) bool {
	if isLicenseRef(id) {
		return true
	}
	if t.License(id) {
		return true
	}
	if base, ok := strings.CutSuffix(id, "+"); ok && base != "" {
		return t.License(base)
	}
	return false
}

func isLicenseRef(id string) bool {
	if doc, rest, ok := strings.Cut(id, ":"); ok {
		if !strings.HasPrefix(doc, "DocumentRef-") || !validIDString(doc[len("DocumentRef-"):]) {
			return false
		}
		id = rest
	}
	ref, ok := strings.CutPrefix(id, "LicenseRef-")
	return ok && validIDString(ref)
}

func validIDString(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
		default:
			return false
		}
	}
	return true
}
