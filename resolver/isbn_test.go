package resolver

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/citekit/citekit/dateutil"
	"github.com/citekit/citekit/schema/citation"
)

const mandelaRIS = `TY  - BOOK
AU  - Mandela, Nelson
TI  - Long walk to freedom : the autobiography of Nelson Mandela.
CY  - London
PB  - Abacus
PY  - 1995///
SN  - 9780349119168
AN  - 33605665
LA  - English
ER  -
`

func TestCleanISBN(t *testing.T) {
	testCases := []struct {
		raw    string
		result string
	}{
		{"978-0-349-11916-8", "9780349119168"},
		{"0 349 10653 3", "0349106533"},
		{"097522980x", "097522980X"},
		{"isbn: 9780349119168", "9780349119168"},
	}
	for _, tc := range testCases {
		if got := CleanISBN(tc.raw); got != tc.result {
			t.Errorf("CleanISBN(%q): want %s, got %s", tc.raw, tc.result, got)
		}
	}
}

func TestValidISBN(t *testing.T) {
	testCases := []struct {
		id     string
		result bool
	}{
		{"9780349119168", true},
		{"9780349119169", false},
		{"0349106533", true},
		{"0349106534", false},
		{"097522980X", true},
		{"12345", false},
		{"X349106533", false},
	}
	for _, tc := range testCases {
		if got := ValidISBN(tc.id); got != tc.result {
			t.Errorf("ValidISBN(%s): want %v, got %v", tc.id, tc.result, got)
		}
	}
}

func TestIsbnResolverWorldcat(t *testing.T) {
	client := stubClient(map[string]string{
		fmt.Sprintf(worldcatISBNURL, "9780349119168"): mandelaRIS,
	})
	r := NewIsbnResolver(client)
	rec, err := r.Resolve(context.Background(), "978-0-349-11916-8")
	if err != nil {
		t.Fatal(err)
	}
	want := &citation.Record{
		Kind:  citation.KindBook,
		Title: "Long walk to freedom : the autobiography of Nelson Mandela",
		Authors: []citation.Name{
			{First: "Nelson", Last: "Mandela", Role: citation.RoleAuthor},
		},
		Publisher:     "Abacus",
		Address:       "London",
		ISBN:          "9780349119168",
		OCLC:          "33605665",
		Language:      "en",
		LanguageScore: 1,
		Date:          dateutil.Partial{Year: 1995},
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// When WorldCat answers with an HTML page instead of RIS, the chain advances
// to OpenLibrary.
func TestIsbnResolverCascade(t *testing.T) {
	openLibraryBody := `{"ISBN:9780349119168": {
		"title": "Long Walk to Freedom",
		"publish_date": "1995",
		"authors": [{"name": "Nelson Mandela"}],
		"publishers": [{"name": "Abacus"}],
		"identifiers": {"isbn_13": ["9780349119168"]}
	}}`
	client := stubClient(map[string]string{
		fmt.Sprintf(worldcatISBNURL, "9780349119168"): "<html>record view</html>",
		fmt.Sprintf(openLibraryURL, "9780349119168"):  openLibraryBody,
	})
	r := NewIsbnResolver(client)
	rec, err := r.Resolve(context.Background(), "9780349119168")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Title != "Long Walk to Freedom" {
		t.Errorf("want OpenLibrary record, got title %q", rec.Title)
	}
	if rec.Publisher != "Abacus" || rec.ISBN != "9780349119168" {
		t.Errorf("unexpected record: %+v", rec)
	}
}

// With WorldCat and OpenLibrary both down, Google Books answers.
func TestIsbnResolverLastResort(t *testing.T) {
	googleBody := `{"totalItems": 1, "items": [{"id": "abc", "volumeInfo": {
		"title": "Long Walk to Freedom",
		"authors": ["Nelson Mandela"],
		"publisher": "Abacus",
		"publishedDate": "1995",
		"language": "en",
		"industryIdentifiers": [{"type": "ISBN_13", "identifier": "9780349119168"}]
	}}]}`
	client := stubClient(map[string]string{
		fmt.Sprintf(googleBooksISBNURL, "9780349119168"): googleBody,
	})
	r := NewIsbnResolver(client)
	rec, err := r.Resolve(context.Background(), "9780349119168")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Title != "Long Walk to Freedom" || rec.Language != "en" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if len(rec.Authors) != 1 || rec.Authors[0].Last != "Mandela" {
		t.Errorf("unexpected authors: %+v", rec.Authors)
	}
}

// In concurrent mode the WorldCat record still outranks any other answer.
func TestIsbnResolverConcurrent(t *testing.T) {
	googleBody := `{"totalItems": 1, "items": [{"id": "abc", "volumeInfo": {
		"title": "A Different Edition"}}]}`
	client := stubClient(map[string]string{
		fmt.Sprintf(worldcatISBNURL, "9780349119168"):    mandelaRIS,
		fmt.Sprintf(googleBooksISBNURL, "9780349119168"): googleBody,
	})
	r := NewIsbnResolver(client)
	r.Concurrent = true
	rec, err := r.Resolve(context.Background(), "9780349119168")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Title != "Long walk to freedom : the autobiography of Nelson Mandela" {
		t.Errorf("want WorldCat record to win, got title %q", rec.Title)
	}
}

func TestIsbnResolverInvalid(t *testing.T) {
	r := NewIsbnResolver(stubClient(nil))
	_, err := r.Resolve(context.Background(), "1234567890123")
	if err == nil {
		t.Fatal("want error for bad checksum")
	}
}

func TestOclcResolver(t *testing.T) {
	body := `TY  - BOOK
AU  - Universidade Federal do Rio de Janeiro.
TI  - Universidade do Brasil, 1948-1966.
PY  - 1966///
LA  - Portuguese
ER  -
`
	client := stubClient(map[string]string{
		fmt.Sprintf(worldcatOCLCURL, "24680975"): body,
	})
	r := NewOclcResolver(client)
	rec, err := r.Resolve(context.Background(), "24680975")
	if err != nil {
		t.Fatal(err)
	}
	// No accession number in the record itself; the query id fills the slot.
	if rec.OCLC != "24680975" {
		t.Errorf("want OCLC backfilled, got %q", rec.OCLC)
	}
	if rec.Title != "Universidade do Brasil, 1948-1966" {
		t.Errorf("unexpected title: %q", rec.Title)
	}
	// An organization name has no comma and stays unsplit.
	if len(rec.Authors) != 1 || rec.Authors[0].Full != "Universidade Federal do Rio de Janeiro" {
		t.Errorf("unexpected authors: %+v", rec.Authors)
	}
	if rec.Language != "pt" {
		t.Errorf("unexpected language: %q", rec.Language)
	}
}

func TestOclcResolverRejectsNonNumeric(t *testing.T) {
	r := NewOclcResolver(stubClient(nil))
	if r.Accepts("ocm1234") {
		t.Error("non numeric id accepted")
	}
}
