// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package entity defines the persisted records of the review catalogue.

Every family (Pokemon, Category, Owner, Country, Review, Reviewer) is a plain
value type keyed by a store-assigned integer identity. Relationship identity
lists (e.g. [Pokemon.CategoryIDs]) are carried for the boundary layer but are
never stored on the row itself; they live in join records owned by the store.
*/
package entity

import (
	"strings"

	"golang.org/x/text/cases"
)

// Record is the constraint every storable family satisfies.
//
// WithIdentity returns a copy carrying the given identity, which lets generic
// store backends stamp the assigned id without reflection.
type Record[E any] interface {
	Identity() int
	WithIdentity(id int) E
}

// NormalizeName returns the form used for uniqueness comparisons:
// surrounding whitespace trimmed and Unicode case folded.
//
// A Caser keeps state, so each call builds its own.
func NormalizeName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// SameName reports whether two names collide under [NormalizeName].
func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}
