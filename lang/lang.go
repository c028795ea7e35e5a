// Package lang infers the language of citation text when no explicit signal
// (html lang attribute, MARC language field) is available.
package lang

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Detect returns the ISO 639-1 code for the dominant language of text,
// together with a confidence in [0,1]. Empty or inconclusive input yields an
// empty code and zero confidence.
func Detect(text string) (code string, confidence float64) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", 0
	}
	info := whatlanggo.Detect(text)
	code = whatlanggo.LangToStringShort(info.Lang)
	if code == "" {
		return "", 0
	}
	return code, info.Confidence
}

// DetectRestricted detects the language of text but only reports a code from
// the allowed set; anything else falls back to the first allowed code with
// zero confidence. Used for sources known to publish in a small set of
// languages (e.g. a Persian bookstore that also lists English titles).
func DetectRestricted(text string, allowed ...string) (string, float64) {
	code, confidence := Detect(text)
	for _, a := range allowed {
		if code == a {
			return code, confidence
		}
	}
	if len(allowed) > 0 {
		return allowed[0], 0
	}
	return code, confidence
}
