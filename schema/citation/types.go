// Package citation defines the canonical in-memory representation of a
// bibliographic reference. A Record is assembled by exactly one resolver,
// handed to the renderer once, and then discarded; nothing downstream
// mutates it.
package citation

import (
	"strings"

	"github.com/citekit/citekit/dateutil"
)

// Kind is the closed set of record kinds understood by the renderer.
type Kind int

const (
	KindUnknown Kind = iota
	KindBook
	KindJournal
	KindWeb
)

func (k Kind) String() string {
	switch k {
	case KindBook:
		return "book"
	case KindJournal:
		return "journal"
	case KindWeb:
		return "web"
	}
	return "unknown"
}

// Role tags the function of a contributor.
type Role int

const (
	RoleAuthor Role = iota
	RoleEditor
	RoleTranslator
	RoleOther
)

func (r Role) String() string {
	switch r {
	case RoleEditor:
		return "editor"
	case RoleTranslator:
		return "translator"
	case RoleOther:
		return "other"
	}
	return "author"
}

// Name is one structured human (or corporate) name. Invariant: if First is
// set, Last is set as well; corporate or unsplittable names carry only Full.
type Name struct {
	First string
	Last  string
	Full  string
	Role  Role
}

// Fullname returns the display name, deriving it from First and Last when no
// explicit full form is present.
func (n Name) Fullname() string {
	if n.Full != "" {
		return n.Full
	}
	return strings.TrimSpace(n.First + " " + n.Last)
}

// Surname returns the short form used in sfn templates: the last name when
// the name was split, the full form otherwise.
func (n Name) Surname() string {
	if n.Last != "" {
		return n.Last
	}
	return n.Full
}

// Record is the normalized citation record. Contributor slices preserve
// encounter order, which determines ordinal parameter numbering at render
// time (last2=, last3=, ...).
type Record struct {
	Kind  Kind
	Title string

	Authors     []Name
	Editors     []Name
	Translators []Name
	Others      []Name

	Publisher string
	Address   string
	Series    string
	Volume    string
	Issue     string
	// Container is the journal name for journal records, the website name
	// for web records.
	Container string
	// TitledSite is set when Container came from a signal that names a work
	// title (og:site_name, title suffix) rather than an author-like field;
	// it controls italics in the authorless short form.
	TitledSite bool

	Date dateutil.Partial

	// Language is an ISO 639-1 code. LanguageScore carries the confidence of
	// an inferred language in [0,1]; it is 1 for explicit signals.
	Language      string
	LanguageScore float64

	ISBN  string
	OCLC  string
	DOI   string
	ISSN  string
	PMID  string
	PMCID string
	Pages string

	// URL is set only when the record originated from a live fetch; its
	// presence triggers the access-date field at render time.
	URL string
}

// Resolved reports whether the record is usable as a citation. A record
// without title and without any author is a failed lookup, not a degenerate
// citation.
func (r *Record) Resolved() bool {
	return r != nil && (r.Title != "" || len(r.Authors) > 0)
}

// Organization returns the name standing in for an author in authorless
// citations: the container (site) name if present, else the publisher.
func (r *Record) Organization() string {
	if r.Container != "" {
		return r.Container
	}
	return r.Publisher
}
