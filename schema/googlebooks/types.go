// Package googlebooks holds the subset of the Google Books volumes API used
// for ISBN lookups and books.google.com URL resolution.
package googlebooks

// VolumesResponse is the envelope of a volumes query.
type VolumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items,omitempty"`
}

type Volume struct {
	ID         string     `json:"id,omitempty"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type VolumeInfo struct {
	Title               string               `json:"title,omitempty"`
	Subtitle            string               `json:"subtitle,omitempty"`
	Authors             []string             `json:"authors,omitempty"`
	Publisher           string               `json:"publisher,omitempty"`
	PublishedDate       string               `json:"publishedDate,omitempty"`
	Language            string               `json:"language,omitempty"`
	PageCount           int                  `json:"pageCount,omitempty"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers,omitempty"`
	CanonicalVolumeLink string               `json:"canonicalVolumeLink,omitempty"`
}

type IndustryIdentifier struct {
	Type       string `json:"type"` // ISBN_10, ISBN_13, OTHER
	Identifier string `json:"identifier"`
}

// ISBN13 returns the ISBN-13 identifier of the volume, falling back to the
// ISBN-10.
func (vi VolumeInfo) ISBN13() string {
	var isbn10 string
	for _, id := range vi.IndustryIdentifiers {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			isbn10 = id.Identifier
		}
	}
	return isbn10
}
