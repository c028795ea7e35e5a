// Package openlibrary holds the subset of the OpenLibrary books API
// (jscmd=data) used for ISBN lookups.
package openlibrary

// Data is the per-key value of an api/books response.
type Data struct {
	Title         string  `json:"title"`
	Subtitle      string  `json:"subtitle,omitempty"`
	PublishDate   string  `json:"publish_date,omitempty"`
	NumberOfPages int     `json:"number_of_pages,omitempty"`
	Authors       []Named `json:"authors,omitempty"`
	Publishers    []Named `json:"publishers,omitempty"`
	PublishPlaces []Named `json:"publish_places,omitempty"`
	Identifiers   struct {
		ISBN13 []string `json:"isbn_13,omitempty"`
		ISBN10 []string `json:"isbn_10,omitempty"`
		OCLC   []string `json:"oclc,omitempty"`
	} `json:"identifiers,omitempty"`
}

type Named struct {
	Name string `json:"name"`
}
