// Package ris parses RIS bibliographic interchange records, the export
// format of WorldCat and various reference managers.
package ris

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/citekit/citekit/dateutil"
	"github.com/citekit/citekit/names"
	"github.com/citekit/citekit/schema/citation"
)

// Record is a raw RIS record: tag to values, repeated tags preserved in
// order of appearance.
type Record struct {
	Tags  map[string][]string
	Order []string
}

// First returns the first value for tag, or empty.
func (r *Record) First(tag string) string {
	if vs := r.Tags[tag]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Parse reads a single RIS record. Lines have the shape "TY  - BOOK";
// anything not matching is skipped. A record without a TY tag is an error.
func Parse(r io.Reader) (*Record, error) {
	rec := &Record{Tags: make(map[string][]string)}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 5 || line[4] != '-' {
			continue
		}
		tag := strings.TrimSpace(line[:2])
		var value string
		if len(line) > 6 {
			value = strings.TrimSpace(line[6:])
		}
		if tag == "ER" {
			break
		}
		if tag == "" || value == "" {
			continue
		}
		if _, seen := rec.Tags[tag]; !seen {
			rec.Order = append(rec.Order, tag)
		}
		rec.Tags[tag] = append(rec.Tags[tag], value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rec.Tags["TY"]) == 0 {
		return nil, fmt.Errorf("ris: no TY tag")
	}
	return rec, nil
}

// languageNames maps RIS language values to ISO 639-1 codes. Two letter
// values pass through unchanged.
var languageNames = map[string]string{
	"english":    "en",
	"persian":    "fa",
	"farsi":      "fa",
	"arabic":     "ar",
	"portuguese": "pt",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"russian":    "ru",
	"chinese":    "zh",
	"japanese":   "ja",
	"turkish":    "tr",
	"dutch":      "nl",
	"undetermined": "",
}

// LanguageCode normalizes an RIS LA value.
func LanguageCode(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if len(v) == 2 {
		return v
	}
	return languageNames[v]
}

// ToCitation converts a raw RIS record into a citation record. Author values
// in "Last, First" order are split; values without a comma are corporate
// names and kept whole.
func (r *Record) ToCitation() *citation.Record {
	rec := &citation.Record{}
	switch strings.ToUpper(r.First("TY")) {
	case "JOUR", "EJOUR", "MGZN", "NEWS":
		rec.Kind = citation.KindJournal
	case "ELEC":
		rec.Kind = citation.KindWeb
	default:
		rec.Kind = citation.KindBook
	}
	rec.Title = strings.TrimSuffix(firstOf(r, "TI", "T1"), ".")
	for _, v := range r.Tags["AU"] {
		rec.Authors = append(rec.Authors, contributor(v, citation.RoleAuthor))
	}
	for _, v := range r.Tags["A1"] {
		rec.Authors = append(rec.Authors, contributor(v, citation.RoleAuthor))
	}
	for _, v := range append(r.Tags["A2"], r.Tags["ED"]...) {
		rec.Editors = append(rec.Editors, contributor(v, citation.RoleEditor))
	}
	for _, v := range r.Tags["A4"] {
		rec.Translators = append(rec.Translators, contributor(v, citation.RoleTranslator))
	}
	for _, v := range r.Tags["A3"] {
		rec.Others = append(rec.Others, contributor(v, citation.RoleOther))
	}
	rec.Container = firstOf(r, "JO", "JF", "T2")
	rec.Publisher = r.First("PB")
	rec.Address = r.First("CY")
	rec.Volume = r.First("VL")
	rec.Issue = r.First("IS")
	rec.ISBN = r.First("SN")
	rec.DOI = r.First("DO")
	rec.URL = r.First("UR")
	rec.Language = LanguageCode(r.First("LA"))
	if rec.Language != "" {
		rec.LanguageScore = 1
	}
	if sp := r.First("SP"); sp != "" {
		if ep := r.First("EP"); ep != "" {
			rec.Pages = sp + "-" + ep
		} else {
			rec.Pages = sp
		}
	}
	rec.Date = parseRISDate(firstOf(r, "PY", "DA", "Y1"))
	return rec
}

func contributor(v string, role citation.Role) citation.Name {
	var name citation.Name
	if strings.Contains(v, ",") {
		name = names.Split(v)
	} else {
		name = citation.Name{Full: strings.TrimSuffix(strings.TrimSpace(v), ".")}
	}
	name.Role = role
	return name
}

func firstOf(r *Record, tags ...string) string {
	for _, t := range tags {
		if v := r.First(t); v != "" {
			return v
		}
	}
	return ""
}

// parseRISDate handles the slash separated RIS date form "YYYY/MM/DD/other"
// as well as bare years.
func parseRISDate(v string) (p dateutil.Partial) {
	parts := strings.SplitN(v, "/", 4)
	read := func(i int) int {
		if i >= len(parts) {
			return 0
		}
		var n int
		fmt.Sscanf(strings.TrimSpace(parts[i]), "%d", &n)
		return n
	}
	p.Year = read(0)
	p.Month = time.Month(read(1))
	p.Day = read(2)
	return p
}
