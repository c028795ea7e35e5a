// Package crossref holds the subset of the crossref works API document used
// for DOI resolution, cf.
// https://www.crossref.org/documentation/retrieve-metadata/rest-api/.
package crossref

type DatePart []int64

// Author is a crossref contributor.
type Author struct {
	Family   string `json:"family,omitempty"`
	Given    string `json:"given,omitempty"`
	Name     string `json:"name,omitempty"` // corporate contributors
	Sequence string `json:"sequence,omitempty"`
	ORCID    string `json:"orcid,omitempty"`
}

// PartialDate wraps the date-parts convention of the API.
type PartialDate struct {
	DateParts []DatePart `json:"date-parts,omitempty"`
}

// Work is the message part of a works document.
type Work struct {
	Author         []Author    `json:"author,omitempty"`
	Editor         []Author    `json:"editor,omitempty"`
	Translator     []Author    `json:"translator,omitempty"`
	ContainerTitle []string    `json:"container-title,omitempty"`
	DOI            string      `json:"DOI,omitempty"`
	ISSN           []string    `json:"ISSN,omitempty"`
	ISBN           []string    `json:"ISBN,omitempty"`
	Issue          string      `json:"issue,omitempty"`
	Issued         PartialDate `json:"issued,omitempty"`
	Published      PartialDate `json:"published,omitempty"`
	PublishedPrint PartialDate `json:"published-print,omitempty"`
	Language       string      `json:"language,omitempty"`
	Page           string      `json:"page,omitempty"`
	Publisher      string      `json:"publisher,omitempty"`
	PublisherPlace string      `json:"publisher-location,omitempty"`
	Title          []string    `json:"title,omitempty"`
	Type           string      `json:"type,omitempty"`
	URL            string      `json:"URL,omitempty"`
	Volume         string      `json:"volume,omitempty"`
}

// WorksResponse is the envelope of a single work lookup.
type WorksResponse struct {
	Status  string `json:"status"`
	Message Work   `json:"message"`
}

// BestDate returns the first available date-parts set, preferring the
// published date over the print date over the issued date.
func (w *Work) BestDate() []DatePart {
	for _, pd := range []PartialDate{w.Published, w.PublishedPrint, w.Issued} {
		if len(pd.DateParts) > 0 && len(pd.DateParts[0]) > 0 {
			return pd.DateParts
		}
	}
	return nil
}
