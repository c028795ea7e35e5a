// Package extract pulls citation fields out of semi-structured HTML. Every
// field has an ordered list of best-effort strategies; the first strategy
// returning a plausible non-empty candidate wins, and fields are filled
// independently of each other. Strategies tolerate absence: they return
// empty values, never errors.
package extract

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/citekit/citekit/dateutil"
	"github.com/citekit/citekit/lang"
	"github.com/citekit/citekit/schema/citation"
)

// Page is a fetched and parsed HTML document.
type Page struct {
	URL *url.URL
	Doc *goquery.Document
}

// NewPage parses body into a queryable page.
func NewPage(rawurl string, body []byte) (*Page, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return &Page{URL: u, Doc: doc}, nil
}

// Host returns the page host without a www prefix.
func (p *Page) Host() string {
	if p.URL == nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(p.URL.Hostname()), "www.")
}

// Strategy is one extraction rule for a string valued field.
type Strategy func(*Page) string

// NameStrategy is one extraction rule for the author list.
type NameStrategy func(*Page) []citation.Name

// DateStrategy is one extraction rule for the publication date.
type DateStrategy func(*Page) dateutil.Partial

// firstString runs strategies in priority order, first non-empty wins.
func firstString(p *Page, strategies ...Strategy) string {
	for _, s := range strategies {
		if v := s(p); v != "" {
			return v
		}
	}
	return ""
}

func firstNames(p *Page, strategies ...NameStrategy) []citation.Name {
	for _, s := range strategies {
		if ns := s(p); len(ns) > 0 {
			return ns
		}
	}
	return nil
}

func firstDate(p *Page, strategies ...DateStrategy) dateutil.Partial {
	for _, s := range strategies {
		if d := s(p); !d.IsZero() {
			return d
		}
	}
	return dateutil.Partial{}
}

// Record runs all field extractors over the page and assembles a web
// citation record. The URL is always kept on the record, which later
// triggers the access-date field.
func Record(p *Page) *citation.Record {
	rec := &citation.Record{Kind: citation.KindWeb}
	rec.Container = firstString(p, siteNameMeta, siteNameDomain, siteNameTitleSuffix)
	rec.TitledSite = true
	rec.Title = Title(p, rec.Container)
	rec.Authors = firstNames(p, authorMeta, authorCSS, authorByline, authorRel)
	rec.Date = firstDate(p, dateMeta, dateURLPath, dateTimeElement)
	rec.Language, rec.LanguageScore = Language(p)
	rec.URL = canonicalURL(p)
	return rec
}

// Language prefers the html lang attribute and falls back to statistical
// detection over the page title and first paragraphs.
func Language(p *Page) (string, float64) {
	if v, ok := p.Doc.Find("html").Attr("lang"); ok && len(v) >= 2 {
		return strings.ToLower(v[:2]), 1
	}
	var sample strings.Builder
	sample.WriteString(p.Doc.Find("title").Text())
	p.Doc.Find("p").EachWithBreak(func(i int, s *goquery.Selection) bool {
		sample.WriteString(" ")
		sample.WriteString(s.Text())
		return sample.Len() < 1000
	})
	return lang.Detect(sample.String())
}

func canonicalURL(p *Page) string {
	if v, ok := p.Doc.Find(`link[rel="canonical"]`).Attr("href"); ok && strings.HasPrefix(v, "http") {
		return v
	}
	if v := metaContent(p, `meta[property="og:url"]`); strings.HasPrefix(v, "http") {
		return v
	}
	if p.URL != nil {
		return p.URL.String()
	}
	return ""
}

// metaContent returns the content attribute of the first matching meta tag.
func metaContent(p *Page, selectors ...string) string {
	for _, sel := range selectors {
		if v, ok := p.Doc.Find(sel).Attr("content"); ok {
			if v = clean(v); v != "" {
				return v
			}
		}
	}
	return ""
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
