package render

import (
	"strconv"
	"strings"
	"time"

	"github.com/citekit/citekit/dateutil"
	"github.com/citekit/citekit/schema/citation"
)

var persianTemplates = map[citation.Kind]string{
	citation.KindBook:    "یادکرد کتاب",
	citation.KindJournal: "یادکرد ژورنال",
	citation.KindWeb:     "یادکرد وب",
}

// persianDigits converts ASCII digits to Persian digits, used for ordinal
// parameter names.
var persianDigits = strings.NewReplacer(
	"0", "۰", "1", "۱", "2", "۲", "3", "۳", "4", "۴",
	"5", "۵", "6", "۶", "7", "۷", "8", "۸", "9", "۹",
)

// hijriMonths are the Solar Hijri month names, used for Iranian publication
// dates (years below 1500 are Solar Hijri).
var hijriMonths = [12]string{
	"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر", "دی", "بهمن", "اسفند",
}

// gregorianMonthsFa are the Persian names of the Gregorian months.
var gregorianMonthsFa = [12]string{
	"ژانویه", "فوریه", "مارس", "آوریل", "مه", "ژوئن",
	"ژوئیه", "اوت", "سپتامبر", "اکتبر", "نوامبر", "دسامبر",
}

func persianMonthName(year int, m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	if year > 0 && year < 1500 {
		return hijriMonths[m-1]
	}
	return gregorianMonthsFa[m-1]
}

func renderPersian(rec *citation.Record, f dateutil.Format) Output {
	params := persianParams(rec, f)
	name := persianTemplates[rec.Kind]
	return Output{
		Sfn:      persianSfn(rec),
		Citation: "* " + wrapPersian(name, params),
		RefTag:   "<ref>" + wrapPersian(name, params) + "</ref>",
	}
}

// wrapPersian serializes with the Persian spacing convention: bare pipes, no
// padding.
func wrapPersian(name string, params []param) string {
	var b strings.Builder
	b.WriteString("{{")
	b.WriteString(name)
	for _, p := range params {
		if p.value == "" && !p.required {
			continue
		}
		b.WriteString("|")
		b.WriteString(p.key)
		b.WriteString("=")
		b.WriteString(p.value)
	}
	b.WriteString("}}")
	return b.String()
}

// persianSfn renders the short-form reference as a complete ref element.
// The page-number slot is required by the template and always emitted.
func persianSfn(rec *citation.Record) string {
	var b strings.Builder
	parts := surnames(rec)
	if len(parts) > 0 {
		b.WriteString("<ref>{{پک")
		for _, s := range parts {
			b.WriteString("|")
			b.WriteString(s)
		}
	} else {
		b.WriteString("<ref>{{پک/بن")
		if org := rec.Organization(); org != "" {
			b.WriteString("|")
			if rec.TitledSite {
				b.WriteString("''" + org + "''")
			} else {
				b.WriteString(org)
			}
		}
	}
	if y := rec.Date.YearString(); y != "" {
		b.WriteString("|")
		b.WriteString(y)
	}
	if rec.Title != "" {
		b.WriteString("|ک=")
		b.WriteString(rec.Title)
	}
	if rec.Language != "" && rec.Language != "fa" {
		b.WriteString("|زبان=")
		b.WriteString(rec.Language)
	}
	b.WriteString("|ص=")
	if rec.Kind == citation.KindJournal {
		b.WriteString(rec.Pages)
	}
	b.WriteString("}}</ref>")
	return b.String()
}

func persianParams(rec *citation.Record, f dateutil.Format) []param {
	var ps []param
	ps = append(ps, numberedNames(rec.Authors, "نام", "نام خانوادگی", "نویسنده", persianOrdinal)...)
	ps = append(ps, numberedNames(rec.Editors, "نام ویراستار", "نام خانوادگی ویراستار", "ویراستار", persianOrdinal)...)
	if v := joinFullnames(rec.Translators, "، ", " و "); v != "" {
		ps = append(ps, param{key: "ترجمه", value: v})
	}
	if v := joinFullnames(rec.Others, "، ", " و "); v != "" {
		ps = append(ps, param{key: "دیگران", value: v})
	}
	ps = append(ps, param{key: "عنوان", value: rec.Title})
	switch rec.Kind {
	case citation.KindJournal:
		ps = append(ps, param{key: "ژورنال", value: rec.Container})
	case citation.KindWeb:
		ps = append(ps, param{key: "وب‌گاه", value: rec.Container})
	}
	ps = append(ps,
		param{key: "ناشر", value: rec.Publisher},
		param{key: "مکان", value: rec.Address},
		param{key: "سری", value: rec.Series},
		param{key: "جلد", value: rec.Volume},
		param{key: "شماره", value: rec.Issue},
	)
	if rec.Date.Complete() {
		ps = append(ps, param{key: "تاریخ", value: rec.Date.Render(f)})
	} else {
		ps = append(ps, param{key: "سال", value: rec.Date.YearString()})
		if rec.Date.Month != 0 {
			ps = append(ps, param{key: "ماه", value: persianMonthName(rec.Date.Year, rec.Date.Month)})
		}
	}
	ps = append(ps,
		param{key: "شابک", value: rec.ISBN},
		param{key: "issn", value: rec.ISSN},
		param{key: "oclc", value: rec.OCLC},
		param{key: "doi", value: rec.DOI},
		param{key: "pmid", value: rec.PMID},
	)
	if rec.Kind == citation.KindJournal {
		ps = append(ps, param{key: "صفحه", value: rec.Pages, required: true})
	}
	ps = append(ps, param{key: "پیوند", value: rec.URL})
	if rec.Language != "" && rec.Language != "fa" {
		ps = append(ps, param{key: "زبان", value: rec.Language})
	}
	if rec.URL != "" {
		ps = append(ps, param{key: "تاریخ بازبینی", value: dateutil.Today().Render(f)})
	}
	return ps
}

func persianOrdinal(i int) string { return persianDigits.Replace(strconv.Itoa(i)) }
