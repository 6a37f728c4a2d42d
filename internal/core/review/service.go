// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review is the facade over reviews.

A review always points at one Pokemon and one Reviewer. Both references are
checked inside the same unit of work that writes the review.
*/
package review

import (
	"context"
	"log/slog"

	"github.com/taibuivan/pokereview/internal/core/entity"
	"github.com/taibuivan/pokereview/internal/core/pokemon"
	"github.com/taibuivan/pokereview/internal/core/relation"
	"github.com/taibuivan/pokereview/internal/platform/ctxutil"
	"github.com/taibuivan/pokereview/internal/platform/dberr"
	"github.com/taibuivan/pokereview/internal/platform/store"
	"github.com/taibuivan/pokereview/internal/platform/validate"
	"github.com/taibuivan/pokereview/pkg/slice"
)

const Resource = "Review"

type Service struct {
	store    store.Store
	resolver *relation.Resolver
	logger   *slog.Logger
}

func NewService(s store.Store, resolver *relation.Resolver, logger *slog.Logger) *Service {
	return &Service{store: s, resolver: resolver, logger: logger}
}

// # Reads

func (service *Service) Exists(context context.Context, id int) (bool, error) {
	exists, err := store.Query(context, service.store, func(tx store.Tx) (bool, error) {
		return tx.Reviews().Exists(context, id)
	})
	return exists, dberr.Wrap(err, Resource)
}

func (service *Service) GetReview(context context.Context, id int) (*entity.Review, error) {
	review, err := store.Query(context, service.store, func(tx store.Tx) (entity.Review, error) {
		return tx.Reviews().Get(context, id)
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return &review, nil
}

func (service *Service) ListReviews(context context.Context) ([]*entity.Review, error) {
	rows, err := store.Query(context, service.store, func(tx store.Tx) ([]entity.Review, error) {
		return tx.Reviews().List(context)
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return slice.Ref(rows), nil
}

// ListReviewsByPokemon returns the reviews of an existing Pokemon.
func (service *Service) ListReviewsByPokemon(context context.Context, pokemonID int) ([]*entity.Review, error) {
	rows, err := store.Query(context, service.store, func(tx store.Tx) ([]entity.Review, error) {
		if _, err := tx.Pokemon().Get(context, pokemonID); err != nil {
			return nil, dberr.Wrap(err, pokemon.Resource)
		}
		return tx.Reviews().Scan(context, func(r entity.Review) bool { return r.PokemonID == pokemonID })
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return slice.Ref(rows), nil
}

// # Writes

// CreateReview stores a review of PokemonID written by ReviewerID.
func (service *Service) CreateReview(context context.Context, review *entity.Review) error {
	validator := validateReview(review)
	validator.Reference(entity.FieldPokemonID, review.PokemonID)
	validator.Reference(entity.FieldReviewerID, review.ReviewerID)
	if err := validator.Err(); err != nil {
		return err
	}

	err := service.store.Atomic(context, func(tx store.Tx) error {
		if err := service.resolver.ResolveReviewRefs(context, tx, *review); err != nil {
			return err
		}
		id, err := tx.Reviews().Insert(context, *review)
		if err != nil {
			return err
		}
		review.ID = id
		return nil
	})
	if err != nil {
		review.ID = 0
		return dberr.Wrap(err, Resource)
	}

	service.logger.Info("review_created",
		slog.String("actor", ctxutil.Subject(context)),
		slog.Int("review_id", review.ID),
		slog.Int("pokemon_id", review.PokemonID),
		slog.Int("reviewer_id", review.ReviewerID),
		slog.Int("rating", review.Rating),
	)
	return nil
}

// UpdateReview replaces the text and rating. Zero references keep the
// current Pokemon and Reviewer.
func (service *Service) UpdateReview(context context.Context, review *entity.Review) error {
	err := service.store.Atomic(context, func(tx store.Tx) error {
		current, err := tx.Reviews().Get(context, review.ID)
		if err != nil {
			return err
		}
		if err := validateReview(review).Err(); err != nil {
			return err
		}

		if review.PokemonID == 0 {
			review.PokemonID = current.PokemonID
		}
		if review.ReviewerID == 0 {
			review.ReviewerID = current.ReviewerID
		}
		if err := service.resolver.ResolveReviewRefs(context, tx, *review); err != nil {
			return err
		}

		return tx.Reviews().Replace(context, *review)
	})
	if err != nil {
		return dberr.Wrap(err, Resource)
	}

	service.logger.Info("review_updated", slog.String("actor", ctxutil.Subject(context)), slog.Int("review_id", review.ID), slog.Int("rating", review.Rating))
	return nil
}

func (service *Service) DeleteReview(context context.Context, id int) error {
	err := service.store.Atomic(context, func(tx store.Tx) error {
		if _, err := tx.Reviews().Get(context, id); err != nil {
			return err
		}
		return tx.Reviews().Remove(context, id)
	})
	if err != nil {
		return dberr.Wrap(err, Resource)
	}

	service.logger.Warn("review_deleted", slog.String("actor", ctxutil.Subject(context)), slog.Int("review_id", id))
	return nil
}

func validateReview(review *entity.Review) *validate.Validator {
	validator := &validate.Validator{}
	validator.Required(entity.FieldTitle, review.Title).MaxLen(entity.FieldTitle, review.Title, entity.MaxTitleLen)
	validator.MaxLen(entity.FieldText, review.Text, entity.MaxTextLen)
	validator.Range(entity.FieldRating, review.Rating, entity.MinRating, entity.MaxRating)
	return validator
}
