package dateutil

import (
	"fmt"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		raw    string
		result Partial
		fails  bool
	}{
		{"2017-01-04", Partial{2017, time.January, 4}, false},
		{"January 4, 2017", Partial{2017, time.January, 4}, false},
		{"4 Jan 2017", Partial{2017, time.January, 4}, false},
		{"2017/01/04", Partial{2017, time.January, 4}, false},
		{"2001", Partial{Year: 2001}, false},
		{"c. 2001", Partial{Year: 2001}, false},
		{"published in 1998 by someone", Partial{Year: 1998}, false},
		{"", Partial{}, true},
		{"no date here", Partial{}, true},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("parsing %q", tc.raw), func(t *testing.T) {
			p, err := Parse(tc.raw)
			if tc.fails {
				if err == nil {
					t.Fatalf("want error, got %v", p)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if p != tc.result {
				t.Errorf("want %v, got %v", tc.result, p)
			}
		})
	}
}

func TestRender(t *testing.T) {
	testCases := []struct {
		p      Partial
		f      Format
		result string
	}{
		{Partial{2017, time.January, 4}, ISO, "2017-01-04"},
		{Partial{2017, time.January, 4}, MDY, "January 4, 2017"},
		{Partial{2017, time.January, 4}, DMY, "4 January 2017"},
		{Partial{Year: 2017, Month: time.January}, ISO, "2017-01"},
		{Partial{Year: 2017, Month: time.January}, MDY, "January 2017"},
		{Partial{Year: 2017}, DMY, "2017"},
		{Partial{Month: time.May}, ISO, "May"},
		{Partial{}, ISO, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.result, func(t *testing.T) {
			if got := tc.p.Render(tc.f); got != tc.result {
				t.Errorf("want %q, got %q", tc.result, got)
			}
		})
	}
}

func TestParseURLPath(t *testing.T) {
	testCases := []struct {
		path   string
		result Partial
		ok     bool
	}{
		{"/2017/01/04/us/politics/house-republicans-ethics.html", Partial{2017, time.January, 4}, true},
		{"/news/2020/12/31", Partial{2020, time.December, 31}, true},
		{"/archive/1999/misc", Partial{}, false},
		{"/2017/13/04/article", Partial{}, false},
		{"/about", Partial{}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			p, ok := ParseURLPath(tc.path)
			if ok != tc.ok {
				t.Fatalf("want ok=%v, got %v", tc.ok, ok)
			}
			if ok && p != tc.result {
				t.Errorf("want %v, got %v", tc.result, p)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f := ParseFormat("%B %d, %Y"); f != MDY {
		t.Errorf("want MDY, got %v", f)
	}
	if f := ParseFormat("%d %B %Y"); f != DMY {
		t.Errorf("want DMY, got %v", f)
	}
	if f := ParseFormat(""); f != ISO {
		t.Errorf("want ISO, got %v", f)
	}
	if f := ParseFormat("bogus"); f != ISO {
		t.Errorf("want ISO, got %v", f)
	}
}
