package resolver

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/citekit/citekit/fetch"
)

// NewDefaultDispatcher wires the full resolver set against one HTTP client.
// The netloc table routes store and archive domains to their dedicated
// adapters; everything else falls through to the pattern rules.
func NewDefaultDispatcher(client *fetch.Client) *Dispatcher {
	var (
		adinebook = NewAdinebookResolver(client)
		wayback   = NewWaybackResolver(client)
		gbooks    = NewGoogleBooksResolver(client)
		doi       = NewDoiResolver(client)
		isbn      = NewIsbnResolver(client)
		oclc      = NewOclcResolver(client)
		pmid      = NewPmidResolver(client)
		pmcid     = NewPmcidResolver(client)
		generic   = NewUrlResolver(client)
	)
	netloc := make(map[string]Resolver)
	for _, d := range AdinebookDomains {
		netloc[d] = adinebook
	}
	for _, d := range WaybackDomains {
		netloc[d] = wayback
	}
	return &Dispatcher{
		Netloc:      netloc,
		GoogleBooks: gbooks,
		DOI:         doi,
		ISBN:        isbn,
		URL:         generic,
		Registry: NewRegistry(
			doi, isbn, oclc, pmid, pmcid, gbooks, adinebook, wayback, generic,
		),
	}
}

// MergeNetloc adds extra hostname routes over the built-in table. Values name
// registered resolvers; an entry naming an unknown resolver is skipped.
func (d *Dispatcher) MergeNetloc(extra map[string]string) {
	for host, name := range extra {
		r, ok := d.Registry.Lookup(name)
		if !ok {
			logrus.WithFields(logrus.Fields{
				"netloc":   host,
				"resolver": name,
			}).Warn("dispatch: unknown resolver for extra netloc")
			continue
		}
		d.Netloc[strings.ToLower(host)] = r
	}
}

// SetNCBIIdentity stamps the tool and email parameters onto the NCBI backed
// resolvers.
func (d *Dispatcher) SetNCBIIdentity(tool, email string) {
	for _, name := range []string{"pmid", "pmcid"} {
		if r, ok := d.Registry.Lookup(name); ok {
			if p, ok := r.(*PubmedResolver); ok {
				p.Tool = tool
				p.Email = email
			}
		}
	}
}
