// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package relation maintains the references between entity families.

It builds and tears down the Pokemon-Category and Pokemon-Owner join records,
resolves the mandatory Owner-to-Country and Review-to-Pokemon/Reviewer
references, and hydrates the identity lists returned with a Pokemon.

Every method runs inside the caller's [store.Tx]. A failed resolution returns
a typed error, which aborts the enclosing unit of work so no half-linked
entity is ever committed.
*/
package relation

import (
	"context"
	"fmt"

	"github.com/taibuivan/pokereview/internal/core/entity"
	"github.com/taibuivan/pokereview/internal/platform/apperr"
	"github.com/taibuivan/pokereview/internal/platform/store"
)

// Resolver is stateless and safe for concurrent use.
type Resolver struct{}

// NewResolver constructs a [Resolver].
func NewResolver() *Resolver {
	return &Resolver{}
}

// # Pokemon ↔ Category

// LinkPokemonCategory records that the Pokemon belongs to the Category.
// Linking an existing pair again is a no-op.
func (resolver *Resolver) LinkPokemonCategory(context context.Context, tx store.Tx, pokemonID, categoryID int) error {
	if err := mustExist(context, tx.Pokemon(), pokemonID, "Pokemon"); err != nil {
		return err
	}
	if err := mustExist(context, tx.Categories(), categoryID, "Category"); err != nil {
		return err
	}
	return tx.PokemonCategories().Link(context, pokemonID, categoryID)
}

// UnlinkAllForPokemon removes every category link of the Pokemon.
func (resolver *Resolver) UnlinkAllForPokemon(context context.Context, tx store.Tx, pokemonID int) error {
	return tx.PokemonCategories().UnlinkLeft(context, pokemonID)
}

// ReplacePokemonCategories makes categoryIDs the complete category set.
func (resolver *Resolver) ReplacePokemonCategories(context context.Context, tx store.Tx, pokemonID int, categoryIDs []int) error {
	if err := resolver.UnlinkAllForPokemon(context, tx, pokemonID); err != nil {
		return err
	}
	for _, categoryID := range categoryIDs {
		if err := resolver.LinkPokemonCategory(context, tx, pokemonID, categoryID); err != nil {
			return err
		}
	}
	return nil
}

// UnlinkCategory detaches the Category from every Pokemon.
func (resolver *Resolver) UnlinkCategory(context context.Context, tx store.Tx, categoryID int) error {
	return tx.PokemonCategories().UnlinkRight(context, categoryID)
}

// # Pokemon ↔ Owner

// LinkPokemonOwner records that the Owner keeps the Pokemon.
func (resolver *Resolver) LinkPokemonOwner(context context.Context, tx store.Tx, pokemonID, ownerID int) error {
	if err := mustExist(context, tx.Pokemon(), pokemonID, "Pokemon"); err != nil {
		return err
	}
	if err := mustExist(context, tx.Owners(), ownerID, "Owner"); err != nil {
		return err
	}
	return tx.PokemonOwners().Link(context, pokemonID, ownerID)
}

// UnlinkAllOwnersForPokemon removes every owner link of the Pokemon.
func (resolver *Resolver) UnlinkAllOwnersForPokemon(context context.Context, tx store.Tx, pokemonID int) error {
	return tx.PokemonOwners().UnlinkLeft(context, pokemonID)
}

// ReplacePokemonOwners makes ownerIDs the complete owner set.
func (resolver *Resolver) ReplacePokemonOwners(context context.Context, tx store.Tx, pokemonID int, ownerIDs []int) error {
	if err := resolver.UnlinkAllOwnersForPokemon(context, tx, pokemonID); err != nil {
		return err
	}
	for _, ownerID := range ownerIDs {
		if err := resolver.LinkPokemonOwner(context, tx, pokemonID, ownerID); err != nil {
			return err
		}
	}
	return nil
}

// UnlinkOwner detaches the Owner from every Pokemon.
func (resolver *Resolver) UnlinkOwner(context context.Context, tx store.Tx, ownerID int) error {
	return tx.PokemonOwners().UnlinkRight(context, ownerID)
}

// # Single-valued references

// ResolveOwnerCountry points owner at an existing Country.
//
// A missing country is reported as a validation error because the reference
// is part of the owner's payload rather than the addressed resource.
func (resolver *Resolver) ResolveOwnerCountry(context context.Context, tx store.Tx, owner *entity.Owner, countryID int) error {
	exists, err := tx.Countries().Exists(context, countryID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.ValidationError("Country not found", apperr.FieldError{
			Field:   entity.FieldCountryID,
			Message: fmt.Sprintf("Country %d does not exist", countryID),
		})
	}
	owner.CountryID = countryID
	return nil
}

// ResolveReviewRefs checks that the review's Pokemon and Reviewer exist.
func (resolver *Resolver) ResolveReviewRefs(context context.Context, tx store.Tx, review entity.Review) error {
	if err := mustExist(context, tx.Pokemon(), review.PokemonID, "Pokemon"); err != nil {
		return err
	}
	return mustExist(context, tx.Reviewers(), review.ReviewerID, "Reviewer")
}

// # Reads

// HydratePokemon fills the identity lists of p from the join records.
func (resolver *Resolver) HydratePokemon(context context.Context, tx store.Tx, p *entity.Pokemon) error {
	categoryIDs, err := tx.PokemonCategories().Rights(context, p.ID)
	if err != nil {
		return err
	}
	ownerIDs, err := tx.PokemonOwners().Rights(context, p.ID)
	if err != nil {
		return err
	}
	p.CategoryIDs = categoryIDs
	p.OwnerIDs = ownerIDs
	return nil
}

// mustExist returns NotFound(resource) unless the identity is present.
func mustExist[E entity.Record[E]](context context.Context, table store.Table[E], id int, resource string) error {
	exists, err := table.Exists(context, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound(resource)
	}
	return nil
}
