package render

import (
	"strconv"
	"strings"

	"github.com/citekit/citekit/dateutil"
	"github.com/citekit/citekit/schema/citation"
)

var englishTemplates = map[citation.Kind]string{
	citation.KindBook:    "cite book",
	citation.KindJournal: "cite journal",
	citation.KindWeb:     "cite web",
}

func renderEnglish(rec *citation.Record, f dateutil.Format) Output {
	params := englishParams(rec, f)
	name := englishTemplates[rec.Kind]
	return Output{
		Sfn:      englishSfn(rec),
		Citation: "* " + wrapEnglish(name, params, true),
		RefTag:   "<ref>" + wrapEnglish(name, params, false) + "</ref>",
	}
}

// wrapEnglish serializes the template with the English spacing convention:
// a space padded pipe before every parameter.
func wrapEnglish(name string, params []param, withRef bool) string {
	var b strings.Builder
	b.WriteString("{{")
	b.WriteString(name)
	for _, p := range params {
		if p.key == "ref" && !withRef {
			continue
		}
		if p.value == "" && !p.required {
			continue
		}
		b.WriteString(" | ")
		b.WriteString(p.key)
		b.WriteString("=")
		b.WriteString(p.value)
	}
	b.WriteString("}}")
	return b.String()
}

func englishSfn(rec *citation.Record) string {
	parts := surnames(rec)
	if len(parts) == 0 {
		org := rec.Organization()
		if org == "" {
			return ""
		}
		if rec.TitledSite {
			org = "''" + org + "''"
		}
		parts = []string{org}
	}
	if y := rec.Date.YearString(); y != "" {
		parts = append(parts, y)
	}
	return "{{sfn | " + strings.Join(parts, " | ") + "}}"
}

// englishParams emits the canonical field order: names, title, container,
// publisher, place, series, volume, issue, date fields, identifiers, pages,
// url, language, ref, access-date.
func englishParams(rec *citation.Record, f dateutil.Format) []param {
	var ps []param
	ps = append(ps, numberedNames(rec.Authors, "first", "last", "author", englishOrdinal)...)
	ps = append(ps, numberedNames(rec.Editors, "editor-first", "editor-last", "editor", englishOrdinal)...)
	if v := joinFullnames(rec.Translators, ", ", " and "); v != "" {
		ps = append(ps, param{key: "translator", value: v})
	}
	if v := joinFullnames(rec.Others, ", ", " and "); v != "" {
		ps = append(ps, param{key: "others", value: v})
	}
	ps = append(ps, param{key: "title", value: rec.Title})
	switch rec.Kind {
	case citation.KindJournal:
		ps = append(ps, param{key: "journal", value: rec.Container})
	case citation.KindWeb:
		ps = append(ps, param{key: "website", value: rec.Container})
	}
	ps = append(ps,
		param{key: "publisher", value: rec.Publisher},
		param{key: "publication-place", value: rec.Address},
		param{key: "series", value: rec.Series},
		param{key: "volume", value: rec.Volume},
		param{key: "issue", value: rec.Issue},
	)
	if rec.Date.Complete() {
		ps = append(ps, param{key: "date", value: rec.Date.Render(f)})
	} else {
		ps = append(ps, param{key: "year", value: rec.Date.YearString()})
		if rec.Date.Month != 0 {
			ps = append(ps, param{key: "month", value: rec.Date.Month.String()})
		}
	}
	ps = append(ps,
		param{key: "isbn", value: rec.ISBN},
		param{key: "issn", value: rec.ISSN},
		param{key: "oclc", value: rec.OCLC},
		param{key: "doi", value: rec.DOI},
		param{key: "pmid", value: rec.PMID},
	)
	if rec.Kind == citation.KindJournal {
		ps = append(ps, param{key: "pages", value: rec.Pages})
	}
	ps = append(ps, param{key: "url", value: rec.URL})
	if rec.Language != "" && rec.Language != "en" {
		ps = append(ps, param{key: "language", value: rec.Language})
	}
	if v := englishRef(rec); v != "" {
		ps = append(ps, param{key: "ref", value: v})
	}
	if rec.URL != "" {
		ps = append(ps, param{key: "access-date", value: dateutil.Today().Render(f)})
	}
	return ps
}

// englishRef picks the ref parameter: harv anchors for authored print
// citations, an explicit sfnref for authorless records. Authored web
// citations need no ref, the template anchors them itself.
func englishRef(rec *citation.Record) string {
	if len(rec.Authors) > 0 {
		if rec.Kind == citation.KindWeb {
			return ""
		}
		return "harv"
	}
	org := rec.Organization()
	if org == "" {
		return ""
	}
	if y := rec.Date.YearString(); y != "" {
		return "{{sfnref | " + org + " | " + y + "}}"
	}
	return "{{sfnref | " + org + "}}"
}

func englishOrdinal(i int) string { return strconv.Itoa(i) }

// numberedNames renders an ordered name list with ordinal parameter
// numbering: last=, first=, last2=, first2=, ... Names without a first/last
// split use the no-firstname parameter (author=, author2=).
func numberedNames(ns []citation.Name, firstKey, lastKey, fullKey string, ordinal func(int) string) []param {
	var ps []param
	for i, n := range ns {
		suffix := ""
		if i > 0 {
			suffix = ordinal(i + 1)
		}
		if n.Last != "" {
			ps = append(ps,
				param{key: lastKey + suffix, value: n.Last},
				param{key: firstKey + suffix, value: n.First},
			)
			continue
		}
		ps = append(ps, param{key: fullKey + suffix, value: n.Full})
	}
	return ps
}
