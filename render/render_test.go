package render

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/citekit/citekit/dateutil"
	"github.com/citekit/citekit/schema/citation"
)

func TestRenderEnglishBook(t *testing.T) {
	rec := &citation.Record{
		Kind:  citation.KindBook,
		Title: "Long Walk to Freedom: The Autobiography of Nelson Mandela",
		Authors: []citation.Name{
			{First: "Nelson", Last: "Mandela", Role: citation.RoleAuthor},
		},
		Publisher: "Abacus",
		ISBN:      "9780349119168",
		Date:      dateutil.Partial{Year: 1995},
	}
	out, err := Render(rec, English, dateutil.ISO)
	if err != nil {
		t.Fatal(err)
	}
	wantCitation := "* {{cite book | last=Mandela | first=Nelson | title=Long Walk to Freedom: The Autobiography of Nelson Mandela | publisher=Abacus | year=1995 | isbn=9780349119168 | ref=harv}}"
	if out.Citation != wantCitation {
		t.Errorf("citation:\nwant %s\ngot  %s", wantCitation, out.Citation)
	}
	if want := "{{sfn | Mandela | 1995}}"; out.Sfn != want {
		t.Errorf("sfn: want %s, got %s", want, out.Sfn)
	}
	wantRef := "<ref>{{cite book | last=Mandela | first=Nelson | title=Long Walk to Freedom: The Autobiography of Nelson Mandela | publisher=Abacus | year=1995 | isbn=9780349119168}}</ref>"
	if out.RefTag != wantRef {
		t.Errorf("ref tag:\nwant %s\ngot  %s", wantRef, out.RefTag)
	}
}

func TestRenderEnglishMultipleAuthors(t *testing.T) {
	rec := &citation.Record{
		Kind:  citation.KindBook,
		Title: "The Dictionary",
		Authors: []citation.Name{
			{First: "Anna", Last: "Ash"},
			{First: "Ben", Last: "Birch"},
		},
		Editors: []citation.Name{
			{First: "Carl", Last: "Cedar"},
		},
		Translators: []citation.Name{
			{First: "Dana", Last: "Dorn"},
			{First: "Emil", Last: "Elm"},
		},
		Date: dateutil.Partial{Year: 2003},
	}
	out, err := Render(rec, English, dateutil.ISO)
	if err != nil {
		t.Fatal(err)
	}
	wantCitation := "* {{cite book | last=Ash | first=Anna | last2=Birch | first2=Ben | editor-last=Cedar | editor-first=Carl | translator=Dana Dorn and Emil Elm | title=The Dictionary | year=2003 | ref=harv}}"
	if out.Citation != wantCitation {
		t.Errorf("citation:\nwant %s\ngot  %s", wantCitation, out.Citation)
	}
	if want := "{{sfn | Ash | Birch | 2003}}"; out.Sfn != want {
		t.Errorf("sfn: want %s, got %s", want, out.Sfn)
	}
}

// The short form templates carry at most four name slots.
func TestSfnSurnameCap(t *testing.T) {
	rec := &citation.Record{
		Kind:  citation.KindJournal,
		Title: "A Crowded Paper",
		Date:  dateutil.Partial{Year: 2020},
	}
	for _, last := range []string{"Abel", "Beck", "Cobb", "Dorn", "Ezra"} {
		rec.Authors = append(rec.Authors, citation.Name{First: "X", Last: last})
	}
	out, err := Render(rec, English, dateutil.ISO)
	if err != nil {
		t.Fatal(err)
	}
	if want := "{{sfn | Abel | Beck | Cobb | Dorn | 2020}}"; out.Sfn != want {
		t.Errorf("sfn: want %s, got %s", want, out.Sfn)
	}
}

func TestRenderEnglishWebAuthorless(t *testing.T) {
	rec := &citation.Record{
		Kind:       citation.KindWeb,
		Title:      "House Republicans Vote to Gut Ethics Office",
		Container:  "The New York Times",
		TitledSite: true,
		URL:        "https://www.nytimes.com/2017/01/02/us/politics/house-ethics.html",
		Date:       dateutil.Partial{Year: 2017, Month: time.January, Day: 2},
		Language:   "en",
	}
	out, err := Render(rec, English, dateutil.ISO)
	if err != nil {
		t.Fatal(err)
	}
	if want := "{{sfn | ''The New York Times'' | 2017}}"; out.Sfn != want {
		t.Errorf("sfn: want %s, got %s", want, out.Sfn)
	}
	accessed := dateutil.Today().Render(dateutil.ISO)
	wantCitation := fmt.Sprintf("* {{cite web | title=House Republicans Vote to Gut Ethics Office | website=The New York Times | date=2017-01-02 | url=https://www.nytimes.com/2017/01/02/us/politics/house-ethics.html | ref={{sfnref | The New York Times | 2017}} | access-date=%s}}", accessed)
	if out.Citation != wantCitation {
		t.Errorf("citation:\nwant %s\ngot  %s", wantCitation, out.Citation)
	}
}

// Authored web citations anchor themselves, so no ref parameter appears.
func TestRenderEnglishWebAuthored(t *testing.T) {
	rec := &citation.Record{
		Kind:      citation.KindWeb,
		Title:     "A Column",
		Container: "Example Site",
		Authors: []citation.Name{
			{First: "Eve", Last: "Field"},
		},
		URL:  "https://example.com/column",
		Date: dateutil.Partial{Year: 2019, Month: time.May, Day: 7},
	}
	out, err := Render(rec, English, dateutil.ISO)
	if err != nil {
		t.Fatal(err)
	}
	accessed := dateutil.Today().Render(dateutil.ISO)
	wantCitation := fmt.Sprintf("* {{cite web | last=Field | first=Eve | title=A Column | website=Example Site | date=2019-05-07 | url=https://example.com/column | access-date=%s}}", accessed)
	if out.Citation != wantCitation {
		t.Errorf("citation:\nwant %s\ngot  %s", wantCitation, out.Citation)
	}
}

func TestRenderEnglishJournal(t *testing.T) {
	rec := &citation.Record{
		Kind:  citation.KindJournal,
		Title: "The druggable genome",
		Authors: []citation.Name{
			{First: "Andrew L.", Last: "Hopkins"},
			{First: "Colin R.", Last: "Groom"},
		},
		Container: "Nature Reviews Drug Discovery",
		Volume:    "1",
		Issue:     "9",
		Pages:     "727-730",
		DOI:       "10.1038/nrd892",
		Date:      dateutil.Partial{Year: 2002, Month: time.September},
	}
	out, err := Render(rec, English, dateutil.ISO)
	if err != nil {
		t.Fatal(err)
	}
	wantCitation := "* {{cite journal | last=Hopkins | first=Andrew L. | last2=Groom | first2=Colin R. | title=The druggable genome | journal=Nature Reviews Drug Discovery | volume=1 | issue=9 | year=2002 | month=September | doi=10.1038/nrd892 | pages=727-730 | ref=harv}}"
	if out.Citation != wantCitation {
		t.Errorf("citation:\nwant %s\ngot  %s", wantCitation, out.Citation)
	}
}

func TestRenderPersianBook(t *testing.T) {
	rec := &citation.Record{
		Kind:  citation.KindBook,
		Title: "سووشون",
		Authors: []citation.Name{
			{Full: "سیمین دانشور", Role: citation.RoleAuthor},
		},
		Publisher: "خوارزمی",
		Date:      dateutil.Partial{Year: 1348, Month: time.Month(4)},
		Language:  "fa",
	}
	out, err := Render(rec, Persian, dateutil.ISO)
	if err != nil {
		t.Fatal(err)
	}
	wantCitation := "* {{یادکرد کتاب|نویسنده=سیمین دانشور|عنوان=سووشون|ناشر=خوارزمی|سال=1348|ماه=تیر}}"
	if out.Citation != wantCitation {
		t.Errorf("citation:\nwant %s\ngot  %s", wantCitation, out.Citation)
	}
	if want := "<ref>{{پک|سیمین دانشور|1348|ک=سووشون|ص=}}</ref>"; out.Sfn != want {
		t.Errorf("sfn: want %s, got %s", want, out.Sfn)
	}
}

func TestRenderPersianSfnAuthored(t *testing.T) {
	rec := &citation.Record{
		Kind:  citation.KindBook,
		Title: "Long Walk to Freedom",
		Authors: []citation.Name{
			{First: "Nelson", Last: "Mandela"},
		},
		Date:     dateutil.Partial{Year: 1995},
		Language: "en",
	}
	out, err := Render(rec, Persian, dateutil.ISO)
	if err != nil {
		t.Fatal(err)
	}
	if want := "<ref>{{پک|Mandela|1995|ک=Long Walk to Freedom|زبان=en|ص=}}</ref>"; out.Sfn != want {
		t.Errorf("sfn: want %s, got %s", want, out.Sfn)
	}
	wantCitation := "* {{یادکرد کتاب|نام خانوادگی=Mandela|نام=Nelson|عنوان=Long Walk to Freedom|سال=1995|زبان=en}}"
	if out.Citation != wantCitation {
		t.Errorf("citation:\nwant %s\ngot  %s", wantCitation, out.Citation)
	}
}

// A second Persian author gets Persian digit ordinals on the parameter names.
func TestPersianOrdinals(t *testing.T) {
	rec := &citation.Record{
		Kind:  citation.KindBook,
		Title: "کتاب",
		Authors: []citation.Name{
			{First: "الف", Last: "اول"},
			{First: "ب", Last: "دوم"},
		},
		Language: "fa",
	}
	out, err := Render(rec, Persian, dateutil.ISO)
	if err != nil {
		t.Fatal(err)
	}
	wantCitation := "* {{یادکرد کتاب|نام خانوادگی=اول|نام=الف|نام خانوادگی۲=دوم|نام۲=ب|عنوان=کتاب}}"
	if out.Citation != wantCitation {
		t.Errorf("citation:\nwant %s\ngot  %s", wantCitation, out.Citation)
	}
}

func TestPersianMonthName(t *testing.T) {
	if got := persianMonthName(1390, time.January); got != "فروردین" {
		t.Errorf("hijri month: want فروردین, got %s", got)
	}
	if got := persianMonthName(2005, time.January); got != "ژانویه" {
		t.Errorf("gregorian month: want ژانویه, got %s", got)
	}
	if got := persianMonthName(1390, time.Month(13)); got != "" {
		t.Errorf("out of range month: want empty, got %s", got)
	}
}

func TestRenderInvalidKind(t *testing.T) {
	_, err := Render(&citation.Record{Kind: citation.KindUnknown}, English, dateutil.ISO)
	if !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("want ErrInvalidKind, got %v", err)
	}
}
