// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pokemon is the facade over the Pokemon family.

Reads come back hydrated with their category and owner identities. Writes run
in one unit of work: the row, its join records and (on delete) its reviews
are committed together or not at all.
*/
package pokemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/pokereview/internal/core/entity"
	"github.com/taibuivan/pokereview/internal/core/rating"
	"github.com/taibuivan/pokereview/internal/core/relation"
	"github.com/taibuivan/pokereview/internal/platform/apperr"
	"github.com/taibuivan/pokereview/internal/platform/ctxutil"
	"github.com/taibuivan/pokereview/internal/platform/dberr"
	"github.com/taibuivan/pokereview/internal/platform/store"
	"github.com/taibuivan/pokereview/internal/platform/validate"
)

// Resource names the family in error messages.
const Resource = "Pokemon"

// Service implements the Pokemon operations.
type Service struct {
	store      store.Store
	resolver   *relation.Resolver
	calculator *rating.Calculator
	logger     *slog.Logger
}

// NewService wires the facade.
func NewService(s store.Store, resolver *relation.Resolver, calculator *rating.Calculator, logger *slog.Logger) *Service {
	return &Service{
		store:      s,
		resolver:   resolver,
		calculator: calculator,
		logger:     logger,
	}
}

// # Reads

// Exists reports whether a Pokemon with the identity is stored.
func (service *Service) Exists(context context.Context, id int) (bool, error) {
	exists, err := store.Query(context, service.store, func(tx store.Tx) (bool, error) {
		return tx.Pokemon().Exists(context, id)
	})
	return exists, dberr.Wrap(err, Resource)
}

// GetPokemon returns the hydrated Pokemon or NotFound.
func (service *Service) GetPokemon(context context.Context, id int) (*entity.Pokemon, error) {
	p, err := store.Query(context, service.store, func(tx store.Tx) (*entity.Pokemon, error) {
		p, err := tx.Pokemon().Get(context, id)
		if err != nil {
			return nil, err
		}
		return &p, service.resolver.HydratePokemon(context, tx, &p)
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return p, nil
}

// GetPokemonByName returns the Pokemon whose name matches exactly.
func (service *Service) GetPokemonByName(context context.Context, name string) (*entity.Pokemon, error) {
	p, err := service.findOne(context, func(p entity.Pokemon) bool { return p.Name == name })
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound(Resource)
	}
	return p, nil
}

// FindByNormalizedName returns the Pokemon whose name collides with name
// after trimming and case folding, or nil when there is none.
func (service *Service) FindByNormalizedName(context context.Context, name string) (*entity.Pokemon, error) {
	return service.findOne(context, func(p entity.Pokemon) bool { return entity.SameName(p.Name, name) })
}

func (service *Service) findOne(context context.Context, match func(entity.Pokemon) bool) (*entity.Pokemon, error) {
	p, err := store.Query(context, service.store, func(tx store.Tx) (*entity.Pokemon, error) {
		found, err := store.FindFirst(context, tx.Pokemon(), match)
		if err != nil || found == nil {
			return nil, err
		}
		return found, service.resolver.HydratePokemon(context, tx, found)
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return p, nil
}

// ListPokemon returns every Pokemon in insertion order.
func (service *Service) ListPokemon(context context.Context) ([]*entity.Pokemon, error) {
	list, err := store.Query(context, service.store, func(tx store.Tx) ([]*entity.Pokemon, error) {
		rows, err := tx.Pokemon().List(context)
		if err != nil {
			return nil, err
		}
		return Hydrate(context, tx, service.resolver, rows)
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return list, nil
}

// Rating returns the average review rating, zero when unreviewed.
func (service *Service) Rating(context context.Context, id int) (decimal.Decimal, error) {
	summary, err := service.RatingSummary(context, id)
	if err != nil {
		return decimal.Zero, err
	}
	return summary.Average, nil
}

// RatingSummary returns the review count and average of an existing Pokemon.
func (service *Service) RatingSummary(context context.Context, id int) (rating.Summary, error) {
	summary, err := store.Query(context, service.store, func(tx store.Tx) (rating.Summary, error) {
		if _, err := tx.Pokemon().Get(context, id); err != nil {
			return rating.Summary{}, err
		}
		return service.calculator.Summary(context, tx, id)
	})
	if err != nil {
		return rating.Summary{}, dberr.Wrap(err, Resource)
	}
	return summary, nil
}

// # Writes

// CreatePokemon validates p, rejects a colliding name and stores the row
// with its category and owner links. p.ID is set on success.
func (service *Service) CreatePokemon(context context.Context, p *entity.Pokemon) error {
	if err := validatePokemon(p); err != nil {
		return err
	}
	p.BirthDate = entity.CalendarDate(p.BirthDate)

	err := service.store.Atomic(context, func(tx store.Tx) error {
		if err := service.rejectDuplicate(context, tx, p.Name, 0); err != nil {
			return err
		}

		id, err := tx.Pokemon().Insert(context, p.Row())
		if err != nil {
			return err
		}

		for _, categoryID := range p.CategoryIDs {
			if err := service.resolver.LinkPokemonCategory(context, tx, id, categoryID); err != nil {
				return err
			}
		}
		for _, ownerID := range p.OwnerIDs {
			if err := service.resolver.LinkPokemonOwner(context, tx, id, ownerID); err != nil {
				return err
			}
		}

		p.ID = id
		return service.resolver.HydratePokemon(context, tx, p)
	})
	if err != nil {
		p.ID = 0
		return dberr.Wrap(err, Resource)
	}

	service.logger.Info("pokemon_created", slog.String("actor", ctxutil.Subject(context)), slog.Int("pokemon_id", p.ID), slog.String("name", p.Name))
	return nil
}

// UpdatePokemon replaces the scalar fields of an existing Pokemon.
//
// A nil CategoryIDs or OwnerIDs leaves that relation untouched; a non-nil
// slice (even empty) replaces it wholesale.
func (service *Service) UpdatePokemon(context context.Context, p *entity.Pokemon) error {
	err := service.store.Atomic(context, func(tx store.Tx) error {

		// 1. Existence guard comes before any payload check
		if _, err := tx.Pokemon().Get(context, p.ID); err != nil {
			return err
		}
		if err := validatePokemon(p); err != nil {
			return err
		}
		p.BirthDate = entity.CalendarDate(p.BirthDate)

		// 2. Scalars, then relations
		if err := service.rejectDuplicate(context, tx, p.Name, p.ID); err != nil {
			return err
		}

		if err := tx.Pokemon().Replace(context, p.Row()); err != nil {
			return err
		}

		if p.CategoryIDs != nil {
			if err := service.resolver.ReplacePokemonCategories(context, tx, p.ID, p.CategoryIDs); err != nil {
				return err
			}
		}
		if p.OwnerIDs != nil {
			if err := service.resolver.ReplacePokemonOwners(context, tx, p.ID, p.OwnerIDs); err != nil {
				return err
			}
		}

		return service.resolver.HydratePokemon(context, tx, p)
	})
	if err != nil {
		return dberr.Wrap(err, Resource)
	}

	service.logger.Info("pokemon_updated", slog.String("actor", ctxutil.Subject(context)), slog.Int("pokemon_id", p.ID))
	return nil
}

// DeletePokemon removes the Pokemon together with its reviews and links.
func (service *Service) DeletePokemon(context context.Context, id int) error {
	removedReviews := 0

	err := service.store.Atomic(context, func(tx store.Tx) error {
		if _, err := tx.Pokemon().Get(context, id); err != nil {
			return err
		}

		// 1. Reviews reference the Pokemon and go first
		reviews, err := tx.Reviews().Scan(context, func(r entity.Review) bool { return r.PokemonID == id })
		if err != nil {
			return err
		}
		for _, review := range reviews {
			if err := tx.Reviews().Remove(context, review.ID); err != nil {
				return err
			}
		}
		removedReviews = len(reviews)

		// 2. Join records
		if err := service.resolver.UnlinkAllForPokemon(context, tx, id); err != nil {
			return err
		}
		if err := service.resolver.UnlinkAllOwnersForPokemon(context, tx, id); err != nil {
			return err
		}

		// 3. The row itself
		return tx.Pokemon().Remove(context, id)
	})
	if err != nil {
		return dberr.Wrap(err, Resource)
	}

	service.logger.Warn("pokemon_deleted", slog.String("actor", ctxutil.Subject(context)), slog.Int("pokemon_id", id), slog.Int("reviews_removed", removedReviews))
	return nil
}

// # Helpers

// Hydrate converts rows to pointers carrying their relation identities.
// Other facades listing Pokemon share it.
func Hydrate(context context.Context, tx store.Tx, resolver *relation.Resolver, rows []entity.Pokemon) ([]*entity.Pokemon, error) {
	result := make([]*entity.Pokemon, 0, len(rows))
	for i := range rows {
		p := rows[i]
		if err := resolver.HydratePokemon(context, tx, &p); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	return result, nil
}

// rejectDuplicate fails with Unprocessable when another Pokemon already
// carries the normalized name. exceptID skips the Pokemon being updated.
func (service *Service) rejectDuplicate(context context.Context, tx store.Tx, name string, exceptID int) error {
	existing, err := store.FindFirst(context, tx.Pokemon(), func(p entity.Pokemon) bool {
		return p.ID != exceptID && entity.SameName(p.Name, name)
	})
	if err != nil {
		return err
	}
	if existing != nil {
		return apperr.Unprocessable("Pokemon already exists")
	}
	return nil
}

func validatePokemon(p *entity.Pokemon) error {
	validator := &validate.Validator{}

	validator.Required(entity.FieldName, p.Name).MaxLen(entity.FieldName, p.Name, entity.MaxNameLen)
	validator.Date(entity.FieldBirthDate, p.BirthDate)
	validator.Custom(entity.FieldBirthDate, entity.CalendarDate(p.BirthDate).After(entity.CalendarDate(time.Now().UTC())), "Must not be in the future")
	validator.References(entity.FieldCategoryIDs, p.CategoryIDs)
	validator.References(entity.FieldOwnerIDs, p.OwnerIDs)

	return validator.Err()
}
