// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entity

// Category is a taxonomic grouping such as "Electric".
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (c Category) Identity() int { return c.ID }

func (c Category) WithIdentity(id int) Category {
	c.ID = id
	return c
}

// Country is the home country of an owner.
type Country struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (c Country) Identity() int { return c.ID }

func (c Country) WithIdentity(id int) Country {
	c.ID = id
	return c
}
