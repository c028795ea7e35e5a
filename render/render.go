// Package render serializes a citation record into Wikipedia citation
// markup: a short-form inline reference, a full citation template and a
// self-contained ref tag, for the English or Persian parameter sets. The
// locale changes parameter names, digits and list conjunctions, never the
// field set or order.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/citekit/citekit/dateutil"
	"github.com/citekit/citekit/schema/citation"
)

// ErrInvalidKind flags a record kind outside the closed set. Kinds are
// assigned by resolvers, so this is a programming error, not a user-facing
// outcome.
var ErrInvalidKind = errors.New("invalid record kind")

// Locale selects the target wiki parameter set.
type Locale int

const (
	English Locale = iota
	Persian
)

// ParseLocale maps a config value to a locale; anything but "fa" is English.
func ParseLocale(s string) Locale {
	if s == "fa" {
		return Persian
	}
	return English
}

// Output bundles the artifacts of one rendering pass.
type Output struct {
	// Sfn is the short-form inline reference.
	Sfn string
	// Citation is the full bibliographic template, bulleted.
	Citation string
	// RefTag is the citation wrapped in a ref element, without the bullet
	// and without the ref parameter.
	RefTag string
}

// Render produces all artifacts for a resolved record.
func Render(rec *citation.Record, loc Locale, f dateutil.Format) (Output, error) {
	switch rec.Kind {
	case citation.KindBook, citation.KindJournal, citation.KindWeb:
	default:
		return Output{}, fmt.Errorf("%w: %v", ErrInvalidKind, rec.Kind)
	}
	if loc == Persian {
		return renderPersian(rec, f), nil
	}
	return renderEnglish(rec, f), nil
}

// param is one emitted template parameter. Parameters with empty values are
// skipped; required marks slots that are emitted even when empty (the
// Persian page-number slot).
type param struct {
	key      string
	value    string
	required bool
}

// sfnSurnameCap is the maximum number of name slots of the short-form
// templates on both wikis.
const sfnSurnameCap = 4

// surnames returns up to cap author surnames in encounter order.
func surnames(rec *citation.Record) []string {
	var out []string
	for _, n := range rec.Authors {
		if len(out) == sfnSurnameCap {
			break
		}
		if s := n.Surname(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// joinFullnames renders a single-parameter name list: fullnames separated by
// sep, with conj before the last item.
func joinFullnames(ns []citation.Name, sep, conj string) string {
	var parts []string
	for _, n := range ns {
		if v := n.Fullname(); v != "" {
			parts = append(parts, v)
		}
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], sep) + conj + parts[len(parts)-1]
}
