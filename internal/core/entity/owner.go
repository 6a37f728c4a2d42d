// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entity

// Owner keeps one or more Pokemon and belongs to exactly one [Country].
type Owner struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	CountryID int    `json:"country_id"`
}

func (o Owner) Identity() int { return o.ID }

func (o Owner) WithIdentity(id int) Owner {
	o.ID = id
	return o
}

// SameNameAs reports whether both name parts collide with other's, each
// compared on its own.
func (o Owner) SameNameAs(other Owner) bool {
	return SameName(o.FirstName, other.FirstName) && SameName(o.LastName, other.LastName)
}
