package resolver

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/segmentio/encoding/json"

	"github.com/citekit/citekit/fetch"
	"github.com/citekit/citekit/lang"
	"github.com/citekit/citekit/ris"
	"github.com/citekit/citekit/schema/citation"
	"github.com/citekit/citekit/schema/googlebooks"
	"github.com/citekit/citekit/schema/openlibrary"
)

// CleanISBN strips separators from an ISBN, keeping digits and a final X.
func CleanISBN(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == 'X' || r == 'x' {
			b.WriteRune(r)
		}
	}
	return strings.ToUpper(b.String())
}

// ValidISBN checks the ISBN-10 or ISBN-13 checksum of a cleaned identifier.
func ValidISBN(s string) bool {
	switch len(s) {
	case 10:
		sum := 0
		for i, r := range s {
			v := int(r - '0')
			if r == 'X' {
				if i != 9 {
					return false
				}
				v = 10
			} else if r < '0' || r > '9' {
				return false
			}
			sum += (10 - i) * v
		}
		return sum%11 == 0
	case 13:
		sum := 0
		for i, r := range s {
			if r < '0' || r > '9' {
				return false
			}
			v := int(r - '0')
			if i%2 == 1 {
				v *= 3
			}
			sum += v
		}
		return sum%10 == 0
	}
	return false
}

// IsbnResolver resolves ISBNs through the cascading bibliographic chain.
type IsbnResolver struct {
	chain *chain
	// Concurrent queries all providers at once instead of walking the
	// chain. Priority order still decides among successful answers.
	Concurrent bool
}

// NewIsbnResolver wires the default provider order: WorldCat, OpenLibrary,
// Google Books.
func NewIsbnResolver(client *fetch.Client) *IsbnResolver {
	return &IsbnResolver{chain: &chain{providers: []provider{
		&worldcatProvider{client: client},
		&openLibraryProvider{client: client},
		&googleBooksProvider{client: client},
	}}}
}

func (r *IsbnResolver) Name() string { return "isbn" }

func (r *IsbnResolver) Accepts(input string) bool {
	return ValidISBN(CleanISBN(input))
}

func (r *IsbnResolver) Resolve(ctx context.Context, input string) (*citation.Record, error) {
	id := CleanISBN(input)
	if !ValidISBN(id) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidIdentifier, input)
	}
	resolve := r.chain.resolve
	if r.Concurrent {
		resolve = r.chain.resolveConcurrent
	}
	rec, err := resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.ISBN == "" {
		rec.ISBN = id
	}
	inferLanguage(rec)
	return rec, nil
}

// OclcResolver resolves OCLC control numbers via WorldCat.
type OclcResolver struct {
	chain *chain
}

func NewOclcResolver(client *fetch.Client) *OclcResolver {
	return &OclcResolver{chain: &chain{providers: []provider{
		&worldcatProvider{client: client, byOCLC: true},
	}}}
}

func (r *OclcResolver) Name() string { return "oclc" }

func (r *OclcResolver) Accepts(input string) bool {
	id := strings.TrimSpace(input)
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

func (r *OclcResolver) Resolve(ctx context.Context, input string) (*citation.Record, error) {
	id := strings.TrimSpace(input)
	if !r.Accepts(id) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidIdentifier, input)
	}
	rec, err := r.chain.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.OCLC == "" {
		rec.OCLC = id
	}
	inferLanguage(rec)
	return rec, nil
}

// inferLanguage fills in a detected language when the provider record
// carried no explicit signal. The confidence is kept on the record so the
// boundary can report low-certainty classifications.
func inferLanguage(rec *citation.Record) {
	if rec.Language != "" || rec.Title == "" {
		return
	}
	rec.Language, rec.LanguageScore = lang.Detect(rec.Title)
}

// ---- WorldCat ----

const (
	worldcatISBNURL = "https://www.worldcat.org/isbn/%s?page=endnotealt&client=citekit"
	worldcatOCLCURL = "https://www.worldcat.org/oclc/%s?page=endnotealt&client=citekit"
)

// worldcatProvider fetches RIS records from the WorldCat citation endpoint.
type worldcatProvider struct {
	client *fetch.Client
	byOCLC bool
}

func (p *worldcatProvider) name() string { return "worldcat" }

func (p *worldcatProvider) resolve(ctx context.Context, id string) (*citation.Record, error) {
	pattern := worldcatISBNURL
	if p.byOCLC {
		pattern = worldcatOCLCURL
	}
	b, err := p.client.Get(ctx, fmt.Sprintf(pattern, id))
	if err != nil {
		return nil, fmt.Errorf("%w: worldcat: %v", ErrProviderUnavailable, err)
	}
	if !bytes.Contains(b, []byte("TY  -")) {
		return nil, fmt.Errorf("%w: worldcat: %s", ErrNotFound, id)
	}
	rec, err := ris.Parse(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: worldcat: %v", ErrParse, err)
	}
	out := rec.ToCitation()
	// The accession number of a WorldCat record is its OCLC control number.
	if out.OCLC == "" {
		out.OCLC = rec.First("AN")
	}
	return out, nil
}

// ---- OpenLibrary ----

const openLibraryURL = "https://openlibrary.org/api/books?bibkeys=ISBN:%s&format=json&jscmd=data"

type openLibraryProvider struct {
	client *fetch.Client
}

func (p *openLibraryProvider) name() string { return "openlibrary" }

func (p *openLibraryProvider) resolve(ctx context.Context, id string) (*citation.Record, error) {
	b, err := p.client.Get(ctx, fmt.Sprintf(openLibraryURL, id))
	if err != nil {
		return nil, fmt.Errorf("%w: openlibrary: %v", ErrProviderUnavailable, err)
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(b, &envelope); err != nil {
		return nil, fmt.Errorf("%w: openlibrary: %v", ErrParse, err)
	}
	raw, ok := envelope["ISBN:"+id]
	if !ok || len(raw) == 0 {
		return nil, fmt.Errorf("%w: openlibrary: %s", ErrNotFound, id)
	}
	var data openlibrary.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: openlibrary: %v", ErrParse, err)
	}
	return openLibraryToCitation(&data), nil
}

func openLibraryToCitation(data *openlibrary.Data) *citation.Record {
	rec := &citation.Record{Kind: citation.KindBook, Title: data.Title}
	if data.Subtitle != "" {
		rec.Title = rec.Title + ": " + data.Subtitle
	}
	for _, a := range data.Authors {
		rec.Authors = append(rec.Authors, splitProviderName(a.Name))
	}
	if len(data.Publishers) > 0 {
		rec.Publisher = data.Publishers[0].Name
	}
	if len(data.PublishPlaces) > 0 {
		rec.Address = data.PublishPlaces[0].Name
	}
	if len(data.Identifiers.ISBN13) > 0 {
		rec.ISBN = data.Identifiers.ISBN13[0]
	} else if len(data.Identifiers.ISBN10) > 0 {
		rec.ISBN = data.Identifiers.ISBN10[0]
	}
	if len(data.Identifiers.OCLC) > 0 {
		rec.OCLC = data.Identifiers.OCLC[0]
	}
	if d, err := dateutilParse(data.PublishDate); err == nil {
		rec.Date = d
	}
	return rec
}

// ---- Google Books (as chain member) ----

const googleBooksISBNURL = "https://www.googleapis.com/books/v1/volumes?q=isbn:%s"

type googleBooksProvider struct {
	client *fetch.Client
}

func (p *googleBooksProvider) name() string { return "googlebooks" }

func (p *googleBooksProvider) resolve(ctx context.Context, id string) (*citation.Record, error) {
	b, err := p.client.Get(ctx, fmt.Sprintf(googleBooksISBNURL, id))
	if err != nil {
		return nil, fmt.Errorf("%w: googlebooks: %v", ErrProviderUnavailable, err)
	}
	var resp googlebooks.VolumesResponse
	if err := json.Unmarshal(b, &resp); err != nil {
		return nil, fmt.Errorf("%w: googlebooks: %v", ErrParse, err)
	}
	if resp.TotalItems == 0 || len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: googlebooks: %s", ErrNotFound, id)
	}
	return googleBooksToCitation(&resp.Items[0]), nil
}

func googleBooksToCitation(v *googlebooks.Volume) *citation.Record {
	info := v.VolumeInfo
	rec := &citation.Record{Kind: citation.KindBook, Title: info.Title}
	if info.Subtitle != "" {
		rec.Title = rec.Title + ": " + info.Subtitle
	}
	for _, a := range info.Authors {
		rec.Authors = append(rec.Authors, splitProviderName(a))
	}
	rec.Publisher = info.Publisher
	rec.ISBN = info.ISBN13()
	rec.Language = strings.ToLower(info.Language)
	if rec.Language != "" {
		rec.LanguageScore = 1
	}
	if d, err := dateutilParse(info.PublishedDate); err == nil {
		rec.Date = d
	}
	return rec
}
