package resolver

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/segmentio/encoding/json"

	"github.com/citekit/citekit/fetch"
	"github.com/citekit/citekit/schema/citation"
	"github.com/citekit/citekit/schema/googlebooks"
)

const googleBooksVolumeURL = "https://www.googleapis.com/books/v1/volumes/%s"

// GoogleBooksResolver is the dedicated adapter for books.google.com URLs,
// resolving the volume id against the volumes API.
type GoogleBooksResolver struct {
	client *fetch.Client
}

func NewGoogleBooksResolver(client *fetch.Client) *GoogleBooksResolver {
	return &GoogleBooksResolver{client: client}
}

func (r *GoogleBooksResolver) Name() string { return "googlebooks" }

func (r *GoogleBooksResolver) Accepts(input string) bool {
	return volumeID(input) != ""
}

// volumeID extracts the volume identifier from the id query parameter or
// from the /books/edition/<title>/<id> path form.
func volumeID(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	if id := u.Query().Get("id"); id != "" {
		return id
	}
	if i := strings.Index(u.Path, "/books/edition/"); i >= 0 {
		rest := strings.Trim(u.Path[i+len("/books/edition/"):], "/")
		parts := strings.Split(rest, "/")
		if len(parts) == 2 {
			return parts[1]
		}
	}
	return ""
}

func (r *GoogleBooksResolver) Resolve(ctx context.Context, input string) (*citation.Record, error) {
	id := volumeID(input)
	if id == "" {
		return nil, fmt.Errorf("%w: no volume id in %s", ErrInvalidIdentifier, input)
	}
	b, err := r.client.Get(ctx, fmt.Sprintf(googleBooksVolumeURL, url.PathEscape(id)))
	if err != nil {
		return nil, fmt.Errorf("%w: googlebooks: %v", ErrProviderUnavailable, err)
	}
	var vol googlebooks.Volume
	if err := json.Unmarshal(b, &vol); err != nil {
		return nil, fmt.Errorf("%w: googlebooks: %v", ErrParse, err)
	}
	rec := googleBooksToCitation(&vol)
	if !rec.Resolved() {
		return nil, fmt.Errorf("%w: googlebooks: volume %s", ErrNotFound, id)
	}
	// A record resolved from a live page keeps its URL, which triggers the
	// access-date field at render time.
	rec.URL = input
	return rec, nil
}
