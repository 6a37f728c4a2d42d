// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entity

// Rating bounds accepted at write time.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a reviewer's scored opinion about one Pokemon.
type Review struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	Rating     int    `json:"rating"`
	PokemonID  int    `json:"pokemon_id"`
	ReviewerID int    `json:"reviewer_id"`
}

func (r Review) Identity() int { return r.ID }

func (r Review) WithIdentity(id int) Review {
	r.ID = id
	return r
}

// Reviewer authors reviews.
type Reviewer struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r Reviewer) Identity() int { return r.ID }

func (r Reviewer) WithIdentity(id int) Reviewer {
	r.ID = id
	return r
}
