package resolver

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/citekit/citekit/extract"
	"github.com/citekit/citekit/fetch"
	"github.com/citekit/citekit/lang"
	"github.com/citekit/citekit/names"
	"github.com/citekit/citekit/schema/citation"
)

// AdinebookResolver is the dedicated adapter for the adinebook.com online
// bookstore. The page title carries the book title and the full contributor
// list; publisher, publication date and ISBN sit in the listing markup.
type AdinebookResolver struct {
	client *fetch.Client
}

func NewAdinebookResolver(client *fetch.Client) *AdinebookResolver {
	return &AdinebookResolver{client: client}
}

// AdinebookDomains lists every domain alias served by the store.
var AdinebookDomains = []string{
	"www.adinehbook.com", "adinehbook.com",
	"www.adinebook.com", "adinebook.com",
}

func (r *AdinebookResolver) Name() string { return "adinebook" }

func (r *AdinebookResolver) Accepts(input string) bool {
	return strings.Contains(input, "adinebook.com") || strings.Contains(input, "adinehbook.com")
}

var (
	adinebookTitle     = regexp.MustCompile(`آدینه\s?بوک:\s*(.*?)\s*~(.*?)\s*$`)
	adinebookPublisher = regexp.MustCompile(`نشر:</b>\s*(.*?)\s*\(`)
	adinebookMonth     = regexp.MustCompile(`نشر:</b>.*\([\d\s]*(.*?)،`)
	adinebookYear      = regexp.MustCompile(`نشر:</b>.*?\(.*?(\d{4})\)</li>`)
	adinebookISBN      = regexp.MustCompile(`شابک:.*?([\d-]+)</span>`)
)

// persianMonths maps Iranian calendar month names to their ordinal.
var persianMonths = map[string]int{
	"فروردین": 1, "اردیبهشت": 2, "خرداد": 3, "تیر": 4,
	"مرداد": 5, "شهریور": 6, "مهر": 7, "آبان": 8,
	"آذر": 9, "دی": 10, "بهمن": 11, "اسفند": 12,
}

func (r *AdinebookResolver) Resolve(ctx context.Context, input string) (*citation.Record, error) {
	body, err := r.client.Get(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%w: adinebook: %v", ErrProviderUnavailable, err)
	}
	content := string(body)
	if strings.Contains(content, "صفحه مورد نظر پبدا نشد") {
		return nil, fmt.Errorf("%w: adinebook: %s", ErrNotFound, input)
	}
	page, err := extract.NewPage(input, body)
	if err != nil {
		return nil, fmt.Errorf("%w: adinebook: %v", ErrParse, err)
	}
	rec := &citation.Record{Kind: citation.KindBook}
	title := page.Doc.Find("title").First().Text()
	m := adinebookTitle.FindStringSubmatch(title)
	if m == nil {
		return nil, fmt.Errorf("%w: adinebook: unexpected title shape", ErrParse)
	}
	rec.Title = strings.TrimSpace(m[1])
	for _, raw := range strings.Split(m[2], "،") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		n := names.Parse(raw)
		switch n.Role {
		case citation.RoleEditor:
			rec.Editors = append(rec.Editors, n)
		case citation.RoleTranslator:
			rec.Translators = append(rec.Translators, n)
		case citation.RoleOther:
			rec.Others = append(rec.Others, n)
		default:
			rec.Authors = append(rec.Authors, n)
		}
	}
	if m := adinebookPublisher.FindStringSubmatch(content); m != nil {
		rec.Publisher = strings.TrimSpace(m[1])
	}
	if m := adinebookYear.FindStringSubmatch(content); m != nil {
		fmt.Sscanf(m[1], "%d", &rec.Date.Year)
	}
	if m := adinebookMonth.FindStringSubmatch(content); m != nil {
		if mo, ok := persianMonths[strings.TrimSpace(m[1])]; ok {
			rec.Date.Month = time.Month(mo)
		}
	}
	if m := adinebookISBN.FindStringSubmatch(content); m != nil {
		rec.ISBN = m[1]
	}
	if !rec.Resolved() {
		return nil, fmt.Errorf("%w: adinebook: %s", ErrNotFound, input)
	}
	// The store lists Persian and English titles; anything else detected is
	// almost surely a misclassification.
	rec.Language, rec.LanguageScore = lang.DetectRestricted(rec.Title, "fa", "en")
	return rec, nil
}
