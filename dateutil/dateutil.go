// Package dateutil provides partial calendar dates and output formatting for
// citation fields. Dates extracted from web pages and bibliographic records
// are frequently incomplete; Partial keeps year, month and day independently
// optional and degrades formatting gracefully.
package dateutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"github.com/jinzhu/now"
)

// Format selects the output representation of a date.
type Format int

const (
	// ISO renders 2006-01-02.
	ISO Format = iota
	// MDY renders January 2, 2006.
	MDY
	// DMY renders 2 January 2006.
	DMY
)

// ParseFormat maps a request parameter to a Format. Unknown values map to
// ISO, the default of the request boundary.
func ParseFormat(s string) Format {
	switch s {
	case "mdy", "%B %d, %Y":
		return MDY
	case "dmy", "%d %B %Y":
		return DMY
	}
	return ISO
}

// Partial is a possibly incomplete calendar date. A zero field means unknown.
type Partial struct {
	Year  int
	Month time.Month
	Day   int
}

// IsZero reports whether no component is known.
func (p Partial) IsZero() bool { return p.Year == 0 && p.Month == 0 && p.Day == 0 }

// Complete reports whether year, month and day are all known.
func (p Partial) Complete() bool { return p.Year != 0 && p.Month != 0 && p.Day != 0 }

// Time converts a complete partial into a time.Time. Incomplete components
// default to their lowest value.
func (p Partial) Time() time.Time {
	m := p.Month
	if m == 0 {
		m = time.January
	}
	d := p.Day
	if d == 0 {
		d = 1
	}
	return time.Date(p.Year, m, d, 0, 0, 0, 0, time.UTC)
}

// Render formats the date in the requested output format. Rendering is total:
// missing components degrade to year-month or year-only strings, and a zero
// date renders as the empty string.
func (p Partial) Render(f Format) string {
	switch {
	case p.IsZero():
		return ""
	case p.Complete():
		switch f {
		case MDY:
			return p.Time().Format("January 2, 2006")
		case DMY:
			return p.Time().Format("2 January 2006")
		}
		return p.Time().Format("2006-01-02")
	case p.Year != 0 && p.Month != 0:
		switch f {
		case MDY, DMY:
			return p.Time().Format("January 2006")
		}
		return p.Time().Format("2006-01")
	case p.Year != 0:
		return strconv.Itoa(p.Year)
	case p.Month != 0 && p.Day != 0:
		if f == ISO {
			return p.Time().Format("01-02")
		}
		return p.Time().Format("January 2")
	case p.Month != 0:
		return p.Time().Format("January")
	}
	return strconv.Itoa(p.Day)
}

// YearString returns the year as string, or empty when unknown.
func (p Partial) YearString() string {
	if p.Year == 0 {
		return ""
	}
	return strconv.Itoa(p.Year)
}

var (
	yearPattern    = regexp.MustCompile(`\b(1[5-9]\d\d|20\d\d)\b`)
	urlDatePattern = regexp.MustCompile(`/(1[89]\d\d|20\d\d)/(0?[1-9]|1[012])/(0?[1-9]|[12]\d|3[01])(?:/|$)`)
)

// Parse turns a free form date string into a Partial. A bare year is
// recognized directly, anything else goes through dateparse; as a last resort
// a four digit year anywhere in the string is used. Unparseable input yields
// an error and a zero Partial.
func Parse(value string) (Partial, error) {
	if value == "" {
		return Partial{}, fmt.Errorf("empty date")
	}
	if yearPattern.MatchString(value) && len(value) == 4 {
		y, err := strconv.Atoi(value)
		if err == nil {
			return Partial{Year: y}, nil
		}
	}
	if t, err := dateparse.ParseStrict(value); err == nil {
		return Partial{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
	}
	if m := yearPattern.FindString(value); m != "" {
		y, _ := strconv.Atoi(m)
		return Partial{Year: y}, nil
	}
	return Partial{}, fmt.Errorf("could not parse date: %s", value)
}

// ParseURLPath extracts a /YYYY/MM/DD/ style date from a URL path, a common
// convention on news sites.
func ParseURLPath(path string) (Partial, bool) {
	m := urlDatePattern.FindStringSubmatch(path)
	if m == nil {
		return Partial{}, false
	}
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])
	return Partial{Year: y, Month: time.Month(mo), Day: d}, true
}

// Today returns the current date, normalized to the beginning of the day, as
// used for access-date fields.
func Today() Partial {
	t := now.With(time.Now()).BeginningOfDay()
	return Partial{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}
