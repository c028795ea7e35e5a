package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kennygrant/sanitize"

	"github.com/citekit/citekit/dateutil"
	"github.com/citekit/citekit/names"
	"github.com/citekit/citekit/schema/citation"
)

// ---- title ----

// Title extracts the article title: structured metadata first, then the
// title element with site boilerplate stripped, then the first heading.
func Title(p *Page, siteName string) string {
	return firstString(p,
		func(p *Page) string {
			return metaContent(p,
				`meta[name="citation_title"]`,
				`meta[property="og:title"]`,
				`meta[name="twitter:title"]`)
		},
		func(p *Page) string { return titleTag(p, siteName) },
		func(p *Page) string { return clean(p.Doc.Find("h1").First().Text()) },
	)
}

// titleSeparators in rough order of prevalence.
var titleSeparators = []string{" | ", " - ", " – ", " — ", " :: ", " » "}

// titleTag returns the contents of the title element, stripping a trailing
// (or leading) segment that repeats the site name. The comparison against
// the site name stands in for fetching the homepage title: both identify the
// boilerplate part shared by every page of the site.
func titleTag(p *Page, siteName string) string {
	t := clean(p.Doc.Find("title").First().Text())
	if t == "" {
		return ""
	}
	host := p.Host()
	for _, sep := range titleSeparators {
		parts := strings.Split(t, sep)
		if len(parts) < 2 {
			continue
		}
		head, tail := parts[0], parts[len(parts)-1]
		if isBoilerplate(tail, siteName, host) {
			return clean(strings.Join(parts[:len(parts)-1], sep))
		}
		if isBoilerplate(head, siteName, host) {
			return clean(strings.Join(parts[1:], sep))
		}
	}
	return t
}

func isBoilerplate(segment, siteName, host string) bool {
	s := strings.ToLower(clean(segment))
	if s == "" {
		return false
	}
	if siteName != "" && strings.Contains(strings.ToLower(siteName), s) {
		return true
	}
	if host != "" && (strings.Contains(s, host) || strings.Contains(host, strings.ReplaceAll(s, " ", ""))) {
		return true
	}
	return false
}

// ---- authors ----

var (
	bylinePattern  = regexp.MustCompile(`(?i)^\s*by[:\s]\s*`)
	bylineInline   = regexp.MustCompile(`(?im)^\s*by[ \t]+([^\n<>]{3,80})$`)
	nameListSplit  = regexp.MustCompile(`\s+(?:and|with|&)\s+|\s*[;،]\s*|,\s*`)
	digitsAnywhere = regexp.MustCompile(`\d`)
)

// bylineDenylist holds known false positive author candidates.
var bylineDenylist = map[string]bool{
	"staff":         true,
	"staff writer":  true,
	"staff writers": true,
	"correspondent": true,
	"admin":         true,
	"editor":        true,
	"news":          true,
	"reuters":       false, // agencies are acceptable authors
}

// plausibleAuthor applies the deny rules shared by all author strategies: no
// newlines (tags spanning unrelated boilerplate produce them), no pipes, no
// digits, sane length.
func plausibleAuthor(s string) bool {
	if s == "" || len(s) > 100 {
		return false
	}
	if strings.ContainsAny(s, "\n|") {
		return false
	}
	if digitsAnywhere.MatchString(s) {
		return false
	}
	if deny, ok := bylineDenylist[strings.ToLower(s)]; ok && deny {
		return false
	}
	return true
}

// splitNameList turns a byline like "Sara Malm and Annette Witheridge" or a
// Persian list joined with '،' into individual names. Single names in
// "Last, First" order must not be split at the comma here; that case is
// handled by the comma rule in names.Split, so a two-part comma list whose
// halves look like name fragments is rejoined.
func splitNameList(v string) []citation.Name {
	v = clean(bylinePattern.ReplaceAllString(v, ""))
	if v == "" {
		return nil
	}
	parts := nameListSplit.Split(v, -1)
	if len(parts) == 2 && strings.Count(v, ",") == 1 && !strings.Contains(v, " and ") &&
		len(strings.Fields(parts[1])) <= 2 {
		// "Adkins, Roy" is one reversed name, not two authors.
		parts = []string{v}
	}
	var out []citation.Name
	for _, part := range parts {
		part = clean(part)
		if !plausibleAuthor(part) {
			continue
		}
		n := names.Parse(part)
		if n.Fullname() == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}

// authorMeta reads structured author metadata. Repeated citation_author tags
// keep their encounter order, which becomes the author ordinal.
func authorMeta(p *Page) []citation.Name {
	var out []citation.Name
	p.Doc.Find(`meta[name="citation_author"], meta[name="author"], meta[property="article:author"], meta[name="sailthru.author"]`).
		Each(func(i int, s *goquery.Selection) {
			v, _ := s.Attr("content")
			if strings.HasPrefix(v, "http") {
				return // article:author is sometimes a profile URL
			}
			out = append(out, splitNameList(v)...)
		})
	return dedupeNames(out)
}

// authorCSS tries common byline and author classes.
func authorCSS(p *Page) []citation.Name {
	for _, sel := range []string{
		`[itemprop="author"] [itemprop="name"]`,
		`[itemprop="author"]`,
		`.byline .author`,
		`.byline-author`,
		`.author-name`,
		`[class*="byline"]`,
		`.author`,
		`[rel="author"]`,
	} {
		node := p.Doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		raw := node.Text()
		if strings.TrimSpace(raw) == "" {
			if v, ok := node.Attr("content"); ok {
				raw = v
			}
		}
		// Deliberately not cleaned before the newline check: a container
		// element spanning unrelated boilerplate is exactly what we reject.
		if strings.Contains(strings.TrimSpace(raw), "\n") {
			continue
		}
		if ns := splitNameList(raw); len(ns) > 0 {
			return ns
		}
	}
	return nil
}

// authorByline scans visible text for a leading "By ..." line.
func authorByline(p *Page) []citation.Name {
	text := sanitize.HTML(firstHTML(p))
	if len(text) > 4000 {
		text = text[:4000]
	}
	if m := bylineInline.FindStringSubmatch(text); m != nil {
		return splitNameList(m[1])
	}
	return nil
}

// authorRel falls back to rel=author anchors. Validated like every other
// candidate; anchor texts carrying unrelated boilerplate are rejected.
func authorRel(p *Page) []citation.Name {
	var out []citation.Name
	p.Doc.Find(`a[rel="author"]`).Each(func(i int, s *goquery.Selection) {
		out = append(out, splitNameList(s.Text())...)
	})
	return dedupeNames(out)
}

func firstHTML(p *Page) string {
	h, err := p.Doc.Find("body").Html()
	if err != nil {
		return ""
	}
	return h
}

func dedupeNames(ns []citation.Name) []citation.Name {
	seen := make(map[string]bool)
	var out []citation.Name
	for _, n := range ns {
		key := strings.ToLower(n.Fullname())
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}

// ---- date ----

func dateMeta(p *Page) dateutil.Partial {
	v := metaContent(p,
		`meta[name="citation_publication_date"]`,
		`meta[name="citation_date"]`,
		`meta[property="article:published_time"]`,
		`meta[name="pubdate"]`,
		`meta[name="date"]`,
		`meta[name="DC.date.issued"]`,
		`meta[name="parsely-pub-date"]`)
	if v == "" {
		return dateutil.Partial{}
	}
	d, err := dateutil.Parse(v)
	if err != nil {
		return dateutil.Partial{}
	}
	return d
}

func dateURLPath(p *Page) dateutil.Partial {
	if p.URL == nil {
		return dateutil.Partial{}
	}
	d, _ := dateutil.ParseURLPath(p.URL.Path)
	return d
}

// dateTimeElement inspects time elements and publication time headings.
func dateTimeElement(p *Page) (out dateutil.Partial) {
	p.Doc.Find(`time, [class*="dateline"], [class*="pub-date"], [class*="timestamp"]`).
		EachWithBreak(func(i int, s *goquery.Selection) bool {
			candidate, ok := s.Attr("datetime")
			if !ok {
				candidate = s.Text()
			}
			d, err := dateutil.Parse(clean(candidate))
			if err == nil {
				out = d
				return false
			}
			return true
		})
	return out
}

// ---- site name ----

// domainNames canonicalizes hosts whose display name is not derivable from
// the domain itself.
var domainNames = map[string]string{
	"bbc.co.uk":                "BBC News",
	"bbc.com":                  "BBC News",
	"nytimes.com":              "The New York Times",
	"washingtonpost.com":       "Washington Post",
	"theguardian.com":          "The Guardian",
	"dailymail.co.uk":          "Daily Mail Online",
	"telegraph.co.uk":          "Telegraph.co.uk",
	"boston.com":               "Boston.com",
	"bostonglobe.com":          "BostonGlobe.com",
	"huffingtonpost.com":       "The Huffington Post",
	"huffingtonpost.ca":        "The Huffington Post",
	"avalon.law.yale.edu":      "Avalon Project",
	"news.mit.edu":             "MIT News",
	"farsnews.com":             "خبرگزاری فارس",
	"web.archive.org":          "Web Archive",
}

func siteNameMeta(p *Page) string {
	return metaContent(p, `meta[property="og:site_name"]`, `meta[name="cre"]`)
}

func siteNameDomain(p *Page) string {
	return domainNames[p.Host()]
}

// siteNameTitleSuffix reads the boilerplate suffix of the title element.
func siteNameTitleSuffix(p *Page) string {
	t := clean(p.Doc.Find("title").First().Text())
	for _, sep := range titleSeparators {
		if i := strings.LastIndex(t, sep); i >= 0 {
			suffix := clean(t[i+len(sep):])
			if suffix != "" && len(suffix) < 40 {
				return suffix
			}
		}
	}
	return p.Host()
}
