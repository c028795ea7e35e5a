package resolver

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/segmentio/encoding/json"

	"github.com/citekit/citekit/dateutil"
	"github.com/citekit/citekit/fetch"
	"github.com/citekit/citekit/schema/citation"
	"github.com/citekit/citekit/schema/crossref"
)

var doiShape = regexp.MustCompile(`^10\.\d{4,}/\S+$`)

// CleanDOI normalizes a DOI: lowercased, resolver URL prefixes and doi:
// scheme stripped. Values that do not look like a DOI afterwards come back
// empty.
func CleanDOI(raw string) string {
	if raw == "" {
		return ""
	}
	raw = strings.TrimSpace(strings.ToLower(raw))
	if strings.Count(raw, " ") != 0 {
		return ""
	}
	for _, prefix := range []string{"doi:", "http://", "https://", "dx.doi.org/", "doi.org/"} {
		raw = strings.TrimPrefix(raw, prefix)
	}
	raw = strings.TrimSuffix(raw, ".")
	if !doiShape.MatchString(raw) {
		return ""
	}
	for _, r := range raw {
		if r > 127 {
			return ""
		}
	}
	return raw
}

// crossrefKinds maps crossref work types onto citation kinds. Anything
// article-like becomes a journal citation; unlisted types default to book,
// mirroring how print-era types dominate the remaining type space.
var crossrefKinds = map[string]citation.Kind{
	"journal-article":     citation.KindJournal,
	"proceedings-article": citation.KindJournal,
	"posted-content":      citation.KindJournal,
	"peer-review":         citation.KindJournal,
	"reference-entry":     citation.KindJournal,
	"book":                citation.KindBook,
	"edited-book":         citation.KindBook,
	"monograph":           citation.KindBook,
	"reference-book":      citation.KindBook,
	"book-chapter":        citation.KindBook,
	"report":              citation.KindBook,
	"dissertation":        citation.KindBook,
}

const crossrefWorksURL = "https://api.crossref.org/works/%s"

// DoiResolver resolves DOIs against the crossref works API.
type DoiResolver struct {
	client *fetch.Client
}

func NewDoiResolver(client *fetch.Client) *DoiResolver {
	return &DoiResolver{client: client}
}

func (r *DoiResolver) Name() string { return "doi" }

func (r *DoiResolver) Accepts(input string) bool { return CleanDOI(input) != "" }

func (r *DoiResolver) Resolve(ctx context.Context, input string) (*citation.Record, error) {
	doi := CleanDOI(input)
	if doi == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidIdentifier, input)
	}
	b, err := r.client.Get(ctx, fmt.Sprintf(crossrefWorksURL, doi))
	if err != nil {
		return nil, fmt.Errorf("%w: crossref: %v", ErrProviderUnavailable, err)
	}
	var resp crossref.WorksResponse
	if err := json.Unmarshal(b, &resp); err != nil {
		return nil, fmt.Errorf("%w: crossref: %v", ErrParse, err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("%w: crossref status %s", ErrNotFound, resp.Status)
	}
	rec := crossrefToCitation(&resp.Message)
	if !rec.Resolved() {
		return nil, fmt.Errorf("%w: crossref: empty record for %s", ErrNotFound, doi)
	}
	return rec, nil
}

func crossrefToCitation(work *crossref.Work) *citation.Record {
	rec := &citation.Record{Kind: citation.KindJournal, DOI: work.DOI}
	if k, ok := crossrefKinds[work.Type]; ok {
		rec.Kind = k
	}
	if len(work.Title) > 0 {
		rec.Title = cleanTitle(work.Title[0])
	}
	rec.Authors = crossrefContribs(work.Author, citation.RoleAuthor)
	rec.Editors = crossrefContribs(work.Editor, citation.RoleEditor)
	rec.Translators = crossrefContribs(work.Translator, citation.RoleTranslator)
	if len(work.ContainerTitle) > 0 {
		rec.Container = work.ContainerTitle[0]
	}
	rec.Publisher = work.Publisher
	rec.Address = work.PublisherPlace
	rec.Volume = work.Volume
	rec.Issue = work.Issue
	rec.Pages = work.Page
	rec.Language = work.Language
	if rec.Language != "" {
		rec.LanguageScore = 1
	}
	if len(work.ISSN) > 0 {
		rec.ISSN = work.ISSN[0]
	}
	if len(work.ISBN) > 0 {
		rec.ISBN = work.ISBN[0]
	}
	if parts := work.BestDate(); parts != nil {
		rec.Date = datePartsToPartial(parts[0])
	}
	return rec
}

func crossrefContribs(authors []crossref.Author, role citation.Role) []citation.Name {
	var out []citation.Name
	for _, a := range authors {
		var n citation.Name
		switch {
		case a.Family != "":
			n = citation.Name{First: strings.TrimSpace(a.Given), Last: strings.TrimSpace(a.Family)}
		case a.Name != "":
			n = citation.Name{Full: strings.TrimSpace(a.Name)}
		default:
			continue
		}
		n.Role = role
		out = append(out, n)
	}
	return out
}

func datePartsToPartial(part crossref.DatePart) dateutil.Partial {
	var p dateutil.Partial
	if len(part) > 0 {
		p.Year = int(part[0])
	}
	if len(part) > 1 {
		p.Month = time.Month(part[1])
	}
	if len(part) > 2 {
		p.Day = int(part[2])
	}
	return p
}
