package resolver

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/citekit/citekit/dateutil"
	"github.com/citekit/citekit/fetch"
	"github.com/citekit/citekit/schema/citation"
	"github.com/citekit/citekit/schema/pubmed"
)

const efetchURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi?db=pubmed&retmode=xml&id=%s"

// PubmedResolver resolves PMIDs (and, with the PMC prefix, PMCIDs) via the
// NCBI efetch endpoint.
type PubmedResolver struct {
	client *fetch.Client
	pmc    bool
	// Tool and Email identify the client to NCBI, per their usage policy.
	Tool  string
	Email string
}

func NewPmidResolver(client *fetch.Client) *PubmedResolver {
	return &PubmedResolver{client: client}
}

func NewPmcidResolver(client *fetch.Client) *PubmedResolver {
	return &PubmedResolver{client: client, pmc: true}
}

func (r *PubmedResolver) Name() string {
	if r.pmc {
		return "pmcid"
	}
	return "pmid"
}

func (r *PubmedResolver) Accepts(input string) bool {
	id := strings.TrimSpace(input)
	id = strings.TrimPrefix(strings.ToUpper(id), "PMC")
	if id == "" {
		return false
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (r *PubmedResolver) Resolve(ctx context.Context, input string) (*citation.Record, error) {
	id := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(input)), "PMC")
	if !r.Accepts(id) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidIdentifier, input)
	}
	query := id
	if r.pmc {
		query = "PMC" + id
	}
	link := fmt.Sprintf(efetchURL, query)
	if r.Tool != "" {
		link += "&tool=" + url.QueryEscape(r.Tool)
	}
	if r.Email != "" {
		link += "&email=" + url.QueryEscape(r.Email)
	}
	b, err := r.client.Get(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("%w: efetch: %v", ErrProviderUnavailable, err)
	}
	var set pubmed.ArticleSet
	if err := xml.Unmarshal(b, &set); err != nil {
		return nil, fmt.Errorf("%w: efetch: %v", ErrParse, err)
	}
	if len(set.Articles) == 0 {
		return nil, fmt.Errorf("%w: efetch: %s", ErrNotFound, query)
	}
	rec := pubmedToCitation(&set.Articles[0])
	if !rec.Resolved() {
		return nil, fmt.Errorf("%w: efetch: empty record for %s", ErrNotFound, query)
	}
	return rec, nil
}

// pubmedMonths covers the three letter month names of PubDate elements.
var pubmedMonths = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

func pubmedToCitation(article *pubmed.Article) *citation.Record {
	detail := article.MedlineCitation.Article
	rec := &citation.Record{
		Kind:      citation.KindJournal,
		Title:     cleanTitle(detail.Title),
		Container: detail.Journal.Title,
		Volume:    detail.Journal.Volume,
		Issue:     detail.Journal.Issue,
		ISSN:      detail.Journal.ISSN,
		Pages:     detail.Pages,
		PMID:      article.MedlineCitation.PMID,
	}
	for _, a := range detail.Authors {
		switch {
		case a.CollectiveName != "":
			rec.Authors = append(rec.Authors, citation.Name{Full: a.CollectiveName})
		case a.LastName != "":
			rec.Authors = append(rec.Authors, citation.Name{First: a.ForeName, Last: a.LastName})
		}
	}
	for _, id := range article.PubmedData.ArticleIDs {
		switch id.IDType {
		case "doi":
			rec.DOI = CleanDOI(id.Text)
		case "pmc":
			rec.PMCID = id.Text
		case "pubmed":
			if rec.PMID == "" {
				rec.PMID = id.Text
			}
		}
	}
	pd := detail.Journal.PubDate
	var p dateutil.Partial
	fmt.Sscanf(pd.Year, "%d", &p.Year)
	p.Month = pubmedMonths[strings.ToLower(pd.Month)]
	fmt.Sscanf(pd.Day, "%d", &p.Day)
	rec.Date = p
	if code := medlineLanguages[strings.ToLower(detail.Language)]; code != "" {
		rec.Language = code
		rec.LanguageScore = 1
	}
	return rec
}

// medlineLanguages maps the ISO 639-2 codes of MEDLINE records to 639-1.
var medlineLanguages = map[string]string{
	"eng": "en", "fre": "fr", "ger": "de", "spa": "es", "por": "pt",
	"ita": "it", "rus": "ru", "chi": "zh", "jpn": "ja", "ara": "ar",
	"per": "fa", "tur": "tr", "dut": "nl", "pol": "pl", "kor": "ko",
}
