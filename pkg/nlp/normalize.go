package nlp

import "golang.org/x/text/unicode/norm"

// Normalize brings an utterance into NFC form. Vietnamese keyboards emit a
// mix of precomposed and combining diacritics; every matching table in this
// package is NFC, so inputs must be too.
func Normalize(text string) string {
	if norm.NFC.IsNormalString(text) {
		return text
	}
	return norm.NFC.String(text)
}
