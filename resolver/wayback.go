package resolver

import (
	"context"
	"fmt"
	"regexp"

	"github.com/citekit/citekit/extract"
	"github.com/citekit/citekit/fetch"
	"github.com/citekit/citekit/schema/citation"
)

// WaybackResolver is the adapter for Wayback Machine snapshot links. The
// snapshot path embeds the original URL after the timestamp; extraction runs
// against the archived page with the original URL as its base, and the
// resulting citation keeps the snapshot link so the reference stays stable.
type WaybackResolver struct {
	client *fetch.Client
}

func NewWaybackResolver(client *fetch.Client) *WaybackResolver {
	return &WaybackResolver{client: client}
}

// WaybackDomains lists the hostnames serving snapshots.
var WaybackDomains = []string{"web.archive.org", "web-beta.archive.org"}

// waybackPath matches /web/<timestamp>/<original-url> snapshot paths.
var waybackPath = regexp.MustCompile(`^https?://web(?:-beta)?\.archive\.org/(?:web/)?\d{4,14}(?:[a-z]{2}_)?/(https?://.+)$`)

func (r *WaybackResolver) Name() string { return "waybackmachine" }

func (r *WaybackResolver) Accepts(input string) bool {
	return waybackPath.MatchString(input)
}

// OriginalURL recovers the archived page address from a snapshot link. The
// second return is false when the link carries no embedded URL, as on
// calendar and search pages.
func OriginalURL(link string) (string, bool) {
	m := waybackPath.FindStringSubmatch(link)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func (r *WaybackResolver) Resolve(ctx context.Context, input string) (*citation.Record, error) {
	original, ok := OriginalURL(input)
	if !ok {
		return nil, fmt.Errorf("%w: waybackmachine: no archived URL in %s", ErrUnrecognized, input)
	}
	body, err := r.client.Get(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%w: waybackmachine: %v", ErrProviderUnavailable, err)
	}
	page, err := extract.NewPage(original, body)
	if err != nil {
		return nil, fmt.Errorf("%w: waybackmachine: %v", ErrParse, err)
	}
	rec := extract.Record(page)
	// The snapshot survives link rot where the original may not; it is the
	// address worth citing. Canonical links on the archived page point at the
	// live site and are discarded.
	rec.URL = input
	if !rec.Resolved() {
		return nil, fmt.Errorf("%w: waybackmachine: no usable fields on %s", ErrNotFound, input)
	}
	return rec, nil
}
