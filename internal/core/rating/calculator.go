// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package rating derives the aggregate score of a Pokemon from its reviews.

The mean is computed in exact decimal arithmetic and rounded half away from
zero to [Places] fractional digits, so 5, 5 and 1 average to 3.67 on every
backend. A Pokemon without reviews averages to exactly zero; zero is never a
real mean because stored ratings are at least 1.
*/
package rating

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/pokereview/internal/core/entity"
	"github.com/taibuivan/pokereview/internal/platform/store"
	"github.com/taibuivan/pokereview/pkg/slice"
)

// Places is the number of fractional digits kept in an average.
const Places = 2

// Summary is the aggregate view served by the rating endpoint.
type Summary struct {
	PokemonID int             `json:"pokemon_id"`
	Count     int             `json:"count"`
	Average   decimal.Decimal `json:"average"`
}

// Calculator reads reviews through the caller's transaction.
type Calculator struct{}

// NewCalculator constructs a [Calculator].
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Average returns the mean rating of the Pokemon's reviews, or zero.
//
// The caller is responsible for checking that the Pokemon exists.
func (calculator *Calculator) Average(context context.Context, tx store.Tx, pokemonID int) (decimal.Decimal, error) {
	summary, err := calculator.Summary(context, tx, pokemonID)
	if err != nil {
		return decimal.Zero, err
	}
	return summary.Average, nil
}

// Summary returns the review count together with the average.
func (calculator *Calculator) Summary(context context.Context, tx store.Tx, pokemonID int) (Summary, error) {
	reviews, err := tx.Reviews().Scan(context, func(r entity.Review) bool {
		return r.PokemonID == pokemonID
	})
	if err != nil {
		return Summary{}, err
	}

	ratings := slice.Map(reviews, func(r entity.Review) int { return r.Rating })
	return Summary{
		PokemonID: pokemonID,
		Count:     len(ratings),
		Average:   Mean(ratings),
	}, nil
}

// Mean averages ratings with [Places] digits, half away from zero.
// An empty input yields zero.
func Mean(ratings []int) decimal.Decimal {
	if len(ratings) == 0 {
		return decimal.Zero
	}

	sum := slice.Reduce(ratings, int64(0), func(total int64, r int) int64 {
		return total + int64(r)
	})

	return decimal.NewFromInt(sum).DivRound(decimal.NewFromInt(int64(len(ratings))), Places)
}
