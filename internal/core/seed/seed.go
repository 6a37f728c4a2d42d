// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package seed loads the demo catalogue: ten Electric Pokemon named
// Pikachu1 to Pikachu10, each reviewed 5, 5 and 1 by the same three
// reviewers, and one owner in one country keeping Pikachu1.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taibuivan/pokereview/internal/core/entity"
	"github.com/taibuivan/pokereview/internal/platform/store"
)

// DemoPokemonCount is the number of seeded Pokemon.
const DemoPokemonCount = 10

// ErrNotEmpty is returned when the store already holds Pokemon.
var ErrNotEmpty = errors.New("seed: store is not empty")

// DemoBirthDate is shared by every seeded Pokemon.
var DemoBirthDate = time.Date(1984, 1, 2, 0, 0, 0, 0, time.UTC)

// Fixture reports the identities the demo data received.
type Fixture struct {
	PokemonIDs  []int
	CategoryID  int
	CountryID   int
	OwnerID     int
	ReviewerIDs []int
}

type demoReview struct {
	text   string
	rating int
}

var demoReviews = []demoReview{
	{"Pikachu is the best pokemon, because it is electric", 5},
	{"Pikachu is the best at killing rocks", 5},
	{"Pikachu, pikachu, pikachu", 1},
}

var demoReviewers = []entity.Reviewer{
	{FirstName: "Teddy", LastName: "Smith"},
	{FirstName: "Taylor", LastName: "Jones"},
	{FirstName: "Jessica", LastName: "McGregor"},
}

// Demo writes the demo catalogue in a single unit of work.
func Demo(ctx context.Context, s store.Store) (Fixture, error) {
	var fixture Fixture

	err := s.Atomic(ctx, func(tx store.Tx) error {
		existing, err := tx.Pokemon().List(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return ErrNotEmpty
		}

		if fixture.CategoryID, err = tx.Categories().Insert(ctx, entity.Category{Name: "Electric"}); err != nil {
			return err
		}
		if fixture.CountryID, err = tx.Countries().Insert(ctx, entity.Country{Name: "Kanto"}); err != nil {
			return err
		}
		owner := entity.Owner{FirstName: "Ash", LastName: "Ketchum", CountryID: fixture.CountryID}
		if fixture.OwnerID, err = tx.Owners().Insert(ctx, owner); err != nil {
			return err
		}

		for _, reviewer := range demoReviewers {
			id, err := tx.Reviewers().Insert(ctx, reviewer)
			if err != nil {
				return err
			}
			fixture.ReviewerIDs = append(fixture.ReviewerIDs, id)
		}

		for i := 1; i <= DemoPokemonCount; i++ {
			p := entity.Pokemon{Name: fmt.Sprintf("Pikachu%d", i), BirthDate: DemoBirthDate}
			pokemonID, err := tx.Pokemon().Insert(ctx, p)
			if err != nil {
				return err
			}
			fixture.PokemonIDs = append(fixture.PokemonIDs, pokemonID)

			if err := tx.PokemonCategories().Link(ctx, pokemonID, fixture.CategoryID); err != nil {
				return err
			}

			for j, review := range demoReviews {
				if _, err := tx.Reviews().Insert(ctx, entity.Review{
					Title:      "Pikachu",
					Text:       review.text,
					Rating:     review.rating,
					PokemonID:  pokemonID,
					ReviewerID: fixture.ReviewerIDs[j],
				}); err != nil {
					return err
				}
			}
		}

		return tx.PokemonOwners().Link(ctx, fixture.PokemonIDs[0], fixture.OwnerID)
	})
	if err != nil {
		return Fixture{}, err
	}

	return fixture, nil
}
