package resolver

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/citekit/citekit/schema/citation"
)

func TestCleanDOI(t *testing.T) {
	testCases := []struct {
		raw    string
		result string
	}{
		{"10.1038/nrd842", "10.1038/nrd842"},
		{"10.1038/nrd842 ", "10.1038/nrd842"},
		{"doi:10.1038/nrd842", "10.1038/nrd842"},
		{"DOI:10.1038/NRD842", "10.1038/nrd842"},
		{"http://doi.org/10.1038/nrd842", "10.1038/nrd842"},
		{"https://dx.doi.org/10.1038/nrd842", "10.1038/nrd842"},
		{"10.1038/nrd842.", "10.1038/nrd842"},
		{"10.1038/ nrd842", ""},
		{"10.30466/vrf.2019.98547.2350‎", ""},
		{"nrd842", ""},
		{"", ""},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("cleaning %q", tc.raw), func(t *testing.T) {
			if got := CleanDOI(tc.raw); got != tc.result {
				t.Errorf("want %q, got %q", tc.result, got)
			}
		})
	}
}

const crossrefWork = `{"status": "ok", "message": {
	"type": "journal-article",
	"DOI": "10.1038/nrd842",
	"title": ["The druggable genome"],
	"author": [
		{"given": "Andrew L.", "family": "Hopkins"},
		{"given": "Colin R.", "family": "Groom"}
	],
	"container-title": ["Nature Reviews Drug Discovery"],
	"publisher": "Springer Nature",
	"volume": "1",
	"issue": "9",
	"page": "727-730",
	"language": "en",
	"ISSN": ["1474-1776"],
	"issued": {"date-parts": [[2002, 9]]}
}}`

func TestDoiResolver(t *testing.T) {
	client := stubClient(map[string]string{
		fmt.Sprintf(crossrefWorksURL, "10.1038/nrd842"): crossrefWork,
	})
	r := NewDoiResolver(client)
	rec, err := r.Resolve(context.Background(), "https://doi.org/10.1038/NRD842")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Kind != citation.KindJournal {
		t.Errorf("want journal kind, got %v", rec.Kind)
	}
	if rec.Title != "The druggable genome" {
		t.Errorf("unexpected title: %q", rec.Title)
	}
	if len(rec.Authors) != 2 || rec.Authors[0].Last != "Hopkins" || rec.Authors[1].Last != "Groom" {
		t.Errorf("unexpected authors: %+v", rec.Authors)
	}
	if rec.Container != "Nature Reviews Drug Discovery" || rec.Volume != "1" || rec.Issue != "9" {
		t.Errorf("unexpected container fields: %+v", rec)
	}
	if rec.Date.Year != 2002 || rec.Date.Month != time.September || rec.Date.Day != 0 {
		t.Errorf("unexpected date: %v", rec.Date)
	}
	if rec.Pages != "727-730" || rec.ISSN != "1474-1776" {
		t.Errorf("unexpected pages or issn: %+v", rec)
	}
}

func TestDoiResolverNotFound(t *testing.T) {
	client := stubClient(map[string]string{
		fmt.Sprintf(crossrefWorksURL, "10.1234/nope"): `{"status": "error", "message": {}}`,
	})
	r := NewDoiResolver(client)
	_, err := r.Resolve(context.Background(), "10.1234/nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDoiResolverUnavailable(t *testing.T) {
	r := NewDoiResolver(stubClient(nil))
	_, err := r.Resolve(context.Background(), "10.1038/nrd842")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("want ErrProviderUnavailable, got %v", err)
	}
}

func TestCrossrefBookKind(t *testing.T) {
	work := fmt.Sprintf(crossrefWorksURL, "10.5555/12345678")
	client := stubClient(map[string]string{
		work: `{"status": "ok", "message": {
			"type": "monograph",
			"DOI": "10.5555/12345678",
			"title": ["Toward a Unified Theory of High-Energy Metaphysics"],
			"author": [{"given": "Josiah", "family": "Carberry"}],
			"publisher": "Society of Psychoceramics",
			"issued": {"date-parts": [[2008, 8, 13]]}
		}}`,
	})
	r := NewDoiResolver(client)
	rec, err := r.Resolve(context.Background(), "10.5555/12345678")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Kind != citation.KindBook {
		t.Errorf("want book kind for monograph, got %v", rec.Kind)
	}
	if !rec.Date.Complete() {
		t.Errorf("want complete date, got %v", rec.Date)
	}
}
