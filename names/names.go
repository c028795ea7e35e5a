// Package names reconciles ambiguous human name representations into the
// structured Name used by citation records.
package names

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/citekit/citekit/schema/citation"
)

var rolePattern = regexp.MustCompile(`\(([^)(]*)\)`)

// roleAnnotations maps parenthetical annotations to contributor roles. The
// Persian forms appear on bookstore listing pages, the English ones in
// bibliographic records.
var roleAnnotations = map[string]citation.Role{
	"editor":   citation.RoleEditor,
	"ed.":      citation.RoleEditor,
	"ویراستار": citation.RoleEditor,
	"ويراستار": citation.RoleEditor,

	"translator": citation.RoleTranslator,
	"trans.":     citation.RoleTranslator,
	"tr.":        citation.RoleTranslator,
	"مترجم":      citation.RoleTranslator,
}

// Parse turns a raw name string, possibly carrying a parenthetical role
// annotation like "(editor)" or "(مترجم)", into a structured Name. Without
// annotation the role is author. Unknown annotations produce RoleOther and
// keep the annotated string as the display fullname, since the annotation
// ("(foreword)", "(به اهتمام)") is part of how such contributors are cited.
func Parse(raw string) citation.Name {
	raw = strings.TrimSpace(raw)
	role := citation.RoleAuthor
	display := ""
	if m := rolePattern.FindStringSubmatch(raw); m != nil {
		annotation := strings.TrimSpace(strings.ToLower(m[1]))
		if r, ok := roleAnnotations[annotation]; ok {
			role = r
		} else {
			role = citation.RoleOther
			display = collapseSpaces(raw)
		}
		raw = strings.TrimSpace(rolePattern.ReplaceAllString(raw, " "))
	}
	name := Split(raw)
	name.Role = role
	if display != "" {
		name.First, name.Last = "", ""
		name.Full = display
	}
	return name
}

// Split parses a bare name string. A comma means reversed "Last, First"
// order. Otherwise the final whitespace delimited token is the lastname,
// except for non-Latin script input, which is kept whole: segmenting Persian
// or East Asian names by whitespace is unreliable.
func Split(raw string) citation.Name {
	raw = collapseSpaces(raw)
	if raw == "" {
		return citation.Name{}
	}
	if i := strings.Index(raw, ","); i >= 0 {
		last := strings.TrimSpace(raw[:i])
		first := strings.TrimSpace(strings.Trim(raw[i+1:], ", "))
		if first == "" {
			return citation.Name{Full: last}
		}
		return citation.Name{First: first, Last: last}
	}
	if !IsLatin(raw) {
		return citation.Name{Full: raw}
	}
	fields := strings.Fields(raw)
	if len(fields) == 1 {
		return citation.Name{Full: fields[0]}
	}
	return citation.Name{
		First: strings.Join(fields[:len(fields)-1], " "),
		Last:  fields[len(fields)-1],
	}
}

// IsLatin reports whether every letter in s belongs to the Latin script.
// Digits, punctuation and spaces are ignored.
func IsLatin(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.Is(unicode.Latin, r) {
			return false
		}
	}
	return true
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
