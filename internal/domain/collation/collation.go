// Package collation builds the collator used for every name ordering.
// The league's rosters are Korean names, so comparisons follow the
// ko locale (case-insensitive, numeric-aware) rather than byte order.
package collation

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// New returns a collator for the given BCP 47 locale, falling back to
// Korean when the locale does not parse.
func New(locale string) *collate.Collator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Korean
	}
	return collate.New(tag, collate.IgnoreCase, collate.Numeric)
}
