package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/citekit/citekit/fetch"
	"github.com/citekit/citekit/schema/citation"
)

// stubDoer serves canned responses by exact URL. URLs without an entry get a
// connection error, simulating an unreachable provider.
type stubDoer struct {
	responses map[string]string
	status    map[string]int
}

func (d *stubDoer) Do(req *http.Request) (*http.Response, error) {
	u := req.URL.String()
	body, ok := d.responses[u]
	if !ok {
		return nil, fmt.Errorf("dial tcp: connection refused")
	}
	code := http.StatusOK
	if c, ok := d.status[u]; ok {
		code = c
	}
	return &http.Response{
		StatusCode: code,
		Body:       io.NopCloser(strings.NewReader(body)),
	}, nil
}

func stubClient(responses map[string]string) *fetch.Client {
	return &fetch.Client{
		Doer:      &stubDoer{responses: responses},
		UserAgent: "test",
	}
}

// stubProvider is a chain member with a fixed outcome.
type stubProvider struct {
	id  string
	rec *citation.Record
	err error
}

func (p *stubProvider) name() string { return p.id }

func (p *stubProvider) resolve(ctx context.Context, id string) (*citation.Record, error) {
	return p.rec, p.err
}

func TestChainFallback(t *testing.T) {
	valid := &citation.Record{Kind: citation.KindBook, Title: "A Book"}
	c := &chain{providers: []provider{
		&stubProvider{id: "down", err: fmt.Errorf("%w: down", ErrProviderUnavailable)},
		&stubProvider{id: "empty", rec: &citation.Record{Kind: citation.KindBook}},
		&stubProvider{id: "ok", rec: valid},
	}}
	rec, err := c.resolve(context.Background(), "x")
	if err != nil {
		t.Fatal(err)
	}
	if rec != valid {
		t.Errorf("want record from third provider, got %+v", rec)
	}
}

func TestChainExhausted(t *testing.T) {
	c := &chain{providers: []provider{
		&stubProvider{id: "down", err: fmt.Errorf("%w: down", ErrProviderUnavailable)},
		&stubProvider{id: "missing", err: fmt.Errorf("%w: missing", ErrNotFound)},
		&stubProvider{id: "garbled", err: fmt.Errorf("%w: garbled", ErrParse)},
	}}
	_, err := c.resolve(context.Background(), "x")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

// The first valid record wins verbatim: later providers must not contribute
// fields.
func TestChainNoMerging(t *testing.T) {
	first := &citation.Record{Kind: citation.KindBook, Title: "First"}
	second := &citation.Record{Kind: citation.KindBook, Title: "Second", ISBN: "123"}
	c := &chain{providers: []provider{
		&stubProvider{id: "a", rec: first},
		&stubProvider{id: "b", rec: second},
	}}
	rec, err := c.resolve(context.Background(), "x")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Title != "First" || rec.ISBN != "" {
		t.Errorf("fields leaked across providers: %+v", rec)
	}
}

// Concurrent resolution preserves the priority order: among successful
// providers the lowest index wins regardless of arrival order.
func TestChainConcurrentPriority(t *testing.T) {
	recA := &citation.Record{Kind: citation.KindBook, Title: "A"}
	recB := &citation.Record{Kind: citation.KindBook, Title: "B"}
	c := &chain{providers: []provider{
		&stubProvider{id: "down", err: fmt.Errorf("%w: down", ErrProviderUnavailable)},
		&stubProvider{id: "a", rec: recA},
		&stubProvider{id: "b", rec: recB},
	}}
	for i := 0; i < 10; i++ {
		rec, err := c.resolveConcurrent(context.Background(), "x")
		if err != nil {
			t.Fatal(err)
		}
		if rec.Title != "A" {
			t.Fatalf("want record A, got %s", rec.Title)
		}
	}
}

func TestChainConcurrentExhausted(t *testing.T) {
	c := &chain{providers: []provider{
		&stubProvider{id: "down", err: fmt.Errorf("%w: down", ErrProviderUnavailable)},
		&stubProvider{id: "missing", err: fmt.Errorf("%w: missing", ErrNotFound)},
	}}
	_, err := c.resolveConcurrent(context.Background(), "x")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRegistryLookup(t *testing.T) {
	client := stubClient(nil)
	reg := NewRegistry(NewIsbnResolver(client), NewOclcResolver(client))
	if _, ok := reg.Lookup("oclc"); !ok {
		t.Error("oclc resolver not registered")
	}
	if _, ok := reg.Lookup("nope"); ok {
		t.Error("unexpected resolver for unknown name")
	}
}
