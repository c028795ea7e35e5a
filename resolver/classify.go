package resolver

import (
	"context"
	"errors"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/citekit/citekit/schema/citation"
)

// DOIPattern matches a DOI anywhere in free form text.
var DOIPattern = regexp.MustCompile(`\b(10\.\d{4,9}/[^\s"<>]+)`)

// ISBNPattern matches an ISBN-10 or ISBN-13 with optional separators
// anywhere in a string without dots.
var ISBNPattern = regexp.MustCompile(`(?:97[89][\- ]?)?(?:\d[\- ]?){9}[\dXx]`)

// easternDigits maps Eastern Arabic and Persian digits to ASCII.
var easternDigits = strings.NewReplacer(
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
)

// NormalizeInput prepares raw user input for classification: Eastern Arabic
// digits become ASCII, percent escapes and HTML entities are decoded, and
// surrounding whitespace is dropped.
func NormalizeInput(raw string) string {
	s := strings.TrimSpace(raw)
	s = easternDigits.Replace(s)
	if u, err := url.QueryUnescape(s); err == nil {
		s = u
	}
	return html.UnescapeString(s)
}

// withScheme prepends http:// when the input has no scheme. Dotless domains
// are prohibited by ICANN, so the caller has already established that the
// input contains a dot.
func withScheme(s string) string {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	return "http://" + s
}

// Dispatcher classifies input and routes it to resolvers.
type Dispatcher struct {
	// Netloc maps domains to dedicated site adapters.
	Netloc map[string]Resolver
	// GoogleBooks handles books.google.com style URLs.
	GoogleBooks Resolver
	// DOI resolves DOI identifiers.
	DOI Resolver
	// ISBN runs the ISBN/OCLC bibliographic chain.
	ISBN Resolver
	// URL is the generic heuristic extractor, the final fallback for URLs.
	URL Resolver
	// Registry resolves explicit input_type requests (pmid, pmcid, oclc).
	Registry *Registry
}

// Classify picks the resolver for an input and returns it together with the
// input form the resolver expects. Identifier patterns match against the
// normalized input; URL branches keep the raw form, since percent escapes in
// a query string are load bearing and must reach the server unchanged. The
// order of rules is fixed: netloc table, Google Books path, DOI pattern,
// ISBN pattern (dotless input only), generic URL.
func (d *Dispatcher) Classify(input, raw string) (Resolver, string, error) {
	if !strings.Contains(input, ".") {
		if m := ISBNPattern.FindString(input); m != "" && d.ISBN.Accepts(m) {
			return d.ISBN, m, nil
		}
		return nil, "", ErrUnrecognized
	}
	link := withScheme(raw)
	if u, err := url.Parse(link); err == nil {
		netloc := strings.ToLower(u.Hostname())
		if r, ok := d.Netloc[netloc]; ok {
			return r, link, nil
		}
		if strings.Contains(link, ".google.com/books") || strings.Contains(netloc, "books.google") {
			return d.GoogleBooks, link, nil
		}
	}
	if m := DOIPattern.FindStringSubmatch(input); m != nil {
		return d.DOI, m[1], nil
	}
	return d.URL, link, nil
}

// Resolve normalizes, classifies and resolves input. An explicit inputType
// (pmid, pmcid, oclc) bypasses classification via the registry; the empty
// and "url-doi-isbn" types run the default rules.
func (d *Dispatcher) Resolve(ctx context.Context, rawInput, inputType string) (*citation.Record, error) {
	input := NormalizeInput(rawInput)
	if input == "" {
		return nil, ErrUnrecognized
	}
	switch inputType {
	case "", "url-doi-isbn":
	default:
		r, ok := d.Registry.Lookup(inputType)
		if !ok {
			return nil, ErrUnrecognized
		}
		return r.Resolve(ctx, input)
	}
	r, arg, err := d.Classify(input, strings.TrimSpace(rawInput))
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"resolver": r.Name(),
		"input":    arg,
	}).Debug("dispatch: classified")
	rec, err := r.Resolve(ctx, arg)
	if err != nil && r == d.ISBN {
		// A dotless input that looked like an ISBN but produced no usable
		// record falls through to unrecognized, not to a lookup failure.
		if errorsIsAny(err, ErrNotFound, ErrInvalidIdentifier) {
			return nil, ErrUnrecognized
		}
	}
	return rec, err
}

func errorsIsAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
