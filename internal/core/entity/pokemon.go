// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entity

import (
	"encoding/json"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Pokemon is a catalogued creature.
type Pokemon struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birth_date"`

	// CategoryIDs and OwnerIDs are resolved from join records on read.
	// A nil slice on update means "leave the relation untouched".
	CategoryIDs []int `json:"category_ids"`
	OwnerIDs    []int `json:"owner_ids"`
}

func (p Pokemon) Identity() int { return p.ID }

func (p Pokemon) WithIdentity(id int) Pokemon {
	p.ID = id
	return p
}

// Row strips the relation lists, leaving only the stored scalar columns.
func (p Pokemon) Row() Pokemon {
	p.CategoryIDs = nil
	p.OwnerIDs = nil
	return p
}

// CalendarDate truncates t to midnight UTC of its calendar day.
func CalendarDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// pokemonJSON is the wire shape: birth_date travels as a bare calendar date.
type pokemonJSON struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	BirthDate   string `json:"birth_date"`
	CategoryIDs []int  `json:"category_ids"`
	OwnerIDs    []int  `json:"owner_ids"`
}

// MarshalJSON renders BirthDate with [DateLayout].
func (p Pokemon) MarshalJSON() ([]byte, error) {
	wire := pokemonJSON{
		ID:          p.ID,
		Name:        p.Name,
		CategoryIDs: p.CategoryIDs,
		OwnerIDs:    p.OwnerIDs,
	}
	if !p.BirthDate.IsZero() {
		wire.BirthDate = p.BirthDate.Format(DateLayout)
	}
	return json.Marshal(wire)
}

// UnmarshalJSON accepts a [DateLayout] date or a full RFC 3339 timestamp.
func (p *Pokemon) UnmarshalJSON(data []byte) error {
	var wire pokemonJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	var birthDate time.Time
	if wire.BirthDate != "" {
		parsed, err := time.Parse(DateLayout, wire.BirthDate)
		if err != nil {
			if parsed, err = time.Parse(time.RFC3339, wire.BirthDate); err != nil {
				return err
			}
		}
		birthDate = CalendarDate(parsed)
	}

	*p = Pokemon{
		ID:          wire.ID,
		Name:        wire.Name,
		BirthDate:   birthDate,
		CategoryIDs: wire.CategoryIDs,
		OwnerIDs:    wire.OwnerIDs,
	}
	return nil
}
