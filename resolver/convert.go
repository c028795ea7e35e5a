package resolver

import (
	"strings"

	"github.com/citekit/citekit/dateutil"
	"github.com/citekit/citekit/names"
	"github.com/citekit/citekit/schema/citation"
)

// splitProviderName parses a contributor name from a bibliographic database.
// Comma values are reversed personal names. Forward order values with many
// tokens are usually corporate bodies and are kept whole.
func splitProviderName(full string) citation.Name {
	full = strings.TrimSpace(full)
	if strings.Contains(full, ",") {
		return names.Split(full)
	}
	if len(strings.Fields(full)) > 3 {
		return citation.Name{Full: full}
	}
	return names.Split(full)
}

func dateutilParse(v string) (dateutil.Partial, error) {
	return dateutil.Parse(v)
}

// cleanTitle normalizes whitespace and strips a trailing period, which
// bibliographic records carry as cataloging punctuation.
func cleanTitle(title string) string {
	title = strings.Join(strings.Fields(title), " ")
	return strings.TrimSuffix(title, ".")
}
