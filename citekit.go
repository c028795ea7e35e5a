// Package citekit turns heterogeneous bibliographic references (URLs, ISBNs,
// OCLC numbers, DOIs, PubMed identifiers) into normalized citation records
// and renders them as Wikipedia citation markup.
package citekit

// AppName is used for cache directories and the like.
const AppName = "citekit"

// Version of the toolkit.
const Version = "0.3.1"

// UserAgent is sent with all outgoing provider requests.
const UserAgent = "citekit/" + Version + " (https://github.com/citekit/citekit)"
