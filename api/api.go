// Package api defines the request/response boundary of the resolution
// pipeline, consumed by whatever serving layer sits in front of it.
package api

import (
	"github.com/segmentio/encoding/json"
)

// Error codes of the response boundary.
const (
	CodeOK           = 0
	CodeUnrecognized = 100
	CodeUnknown      = 500
	CodeUnavailable  = 503
)

// Request carries one resolution request.
type Request struct {
	// Input is the free form user input: URL, ISBN, OCLC, DOI, PMID.
	Input string `json:"user_input"`
	// InputType optionally bypasses classification (pmid, pmcid, oclc,
	// url-doi-isbn).
	InputType string `json:"input_type,omitempty"`
	// DateFormat selects the output date format (iso, mdy, dmy).
	DateFormat string `json:"dateformat,omitempty"`
}

// Response carries the rendered artifacts or an error sentinel.
type Response struct {
	ShortForm string `json:"short_form"`
	Citation  string `json:"citation"`
	RefTag    string `json:"ref_tag"`
	Error     int    `json:"error"`
}

// Marshal encodes the response for the json output format.
func (r Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
