// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug folds free text into lower-case ASCII keys.
//
// Recipe titles are stored with a folded key so "Käsespätzle" is found by
// "kasespatzle" or "KÄSE".
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// From folds s to lower-case ASCII words joined by single hyphens.
//
//	From("Crème Brûlée (easy)") // "creme-brulee-easy"
func From(s string) string {
	folded := Fold(s)

	var builder strings.Builder
	pendingHyphen := false
	for _, r := range folded {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			builder.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}
	return builder.String()
}

// Fold removes diacritics and lower-cases s without touching punctuation.
func Fold(s string) string {
	chain := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(chain, s)
	if err != nil {
		result = s
	}
	return strings.ToLower(result)
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
