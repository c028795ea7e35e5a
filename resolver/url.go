package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/citekit/citekit/extract"
	"github.com/citekit/citekit/fetch"
	"github.com/citekit/citekit/schema/citation"
)

// UrlResolver is the generic heuristic extractor: it fetches the page and
// runs the per-field strategy lists over the HTML. The final fallback of the
// dispatcher.
type UrlResolver struct {
	client *fetch.Client
}

func NewUrlResolver(client *fetch.Client) *UrlResolver {
	return &UrlResolver{client: client}
}

func (r *UrlResolver) Name() string { return "url" }

func (r *UrlResolver) Accepts(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

func (r *UrlResolver) Resolve(ctx context.Context, input string) (*citation.Record, error) {
	body, err := r.client.Get(ctx, input)
	if err != nil {
		// Not part of a cascading chain: a transport failure here is the
		// final outcome and surfaces as service unavailable.
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	page, err := extract.NewPage(input, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	rec := extract.Record(page)
	if rec.URL == "" {
		rec.URL = input
	}
	if !rec.Resolved() {
		return nil, fmt.Errorf("%w: no usable fields on %s", ErrNotFound, input)
	}
	return rec, nil
}

var (
	_ Resolver = (*UrlResolver)(nil)
	_ Resolver = (*IsbnResolver)(nil)
	_ Resolver = (*OclcResolver)(nil)
	_ Resolver = (*DoiResolver)(nil)
	_ Resolver = (*PubmedResolver)(nil)
	_ Resolver = (*GoogleBooksResolver)(nil)
	_ Resolver = (*AdinebookResolver)(nil)
	_ Resolver = (*WaybackResolver)(nil)
)
