// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package category is the facade over Pokemon categories.
package category

import (
	"context"
	"log/slog"

	"github.com/taibuivan/pokereview/internal/core/entity"
	"github.com/taibuivan/pokereview/internal/core/pokemon"
	"github.com/taibuivan/pokereview/internal/core/relation"
	"github.com/taibuivan/pokereview/internal/platform/apperr"
	"github.com/taibuivan/pokereview/internal/platform/ctxutil"
	"github.com/taibuivan/pokereview/internal/platform/dberr"
	"github.com/taibuivan/pokereview/internal/platform/store"
	"github.com/taibuivan/pokereview/internal/platform/validate"
	"github.com/taibuivan/pokereview/pkg/slice"
)

const Resource = "Category"

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
		return tx.Categories().Exists(context, id)
	})
	return exists, dberr.Wrap(err, Resource)
}

func (service *Service) GetCategory(context context.Context, id int) (*entity.Category, error) {
	category, err := store.Query(context, service.store, func(tx store.Tx) (entity.Category, error) {
		return tx.Categories().Get(context, id)
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return &category, nil
}

func (service *Service) ListCategories(context context.Context) ([]*entity.Category, error) {
	rows, err := store.Query(context, service.store, func(tx store.Tx) ([]entity.Category, error) {
		return tx.Categories().List(context)
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return slice.Ref(rows), nil
}

// ListPokemonByCategory returns the Pokemon linked to an existing category.
func (service *Service) ListPokemonByCategory(context context.Context, categoryID int) ([]*entity.Pokemon, error) {
	list, err := store.Query(context, service.store, func(tx store.Tx) ([]*entity.Pokemon, error) {
		if _, err := tx.Categories().Get(context, categoryID); err != nil {
			return nil, err
		}

		ids, err := tx.PokemonCategories().Lefts(context, categoryID)
		if err != nil {
			return nil, err
		}

		rows := make([]entity.Pokemon, 0, len(ids))
		for _, id := range ids {
			p, err := tx.Pokemon().Get(context, id)
			if err != nil {
				return nil, dberr.Wrap(err, pokemon.Resource)
			}
			rows = append(rows, p)
		}
		return pokemon.Hydrate(context, tx, service.resolver, rows)
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return list, nil
}

// FindByNormalizedName returns the colliding category, or nil.
func (service *Service) FindByNormalizedName(context context.Context, name string) (*entity.Category, error) {
	category, err := store.Query(context, service.store, func(tx store.Tx) (*entity.Category, error) {
		return store.FindFirst(context, tx.Categories(), func(c entity.Category) bool {
			return entity.SameName(c.Name, name)
		})
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return category, nil
}

// # Writes

func (service *Service) CreateCategory(context context.Context, category *entity.Category) error {
	if err := validateCategory(category); err != nil {
		return err
	}

	err := service.store.Atomic(context, func(tx store.Tx) error {
		if err := rejectDuplicate(context, tx, category.Name, 0); err != nil {
			return err
		}
		id, err := tx.Categories().Insert(context, *category)
		if err != nil {
			return err
		}
		category.ID = id
		return nil
	})
	if err != nil {
		return dberr.Wrap(err, Resource)
	}

	service.logger.Info("category_created", slog.String("actor", ctxutil.Subject(context)), slog.Int("category_id", category.ID), slog.String("name", category.Name))
	return nil
}

func (service *Service) UpdateCategory(context context.Context, category *entity.Category) error {
	err := service.store.Atomic(context, func(tx store.Tx) error {
		if _, err := tx.Categories().Get(context, category.ID); err != nil {
			return err
		}
		if err := validateCategory(category); err != nil {
			return err
		}
		if err := rejectDuplicate(context, tx, category.Name, category.ID); err != nil {
			return err
		}
		return tx.Categories().Replace(context, *category)
	})
	if err != nil {
		return dberr.Wrap(err, Resource)
	}

	service.logger.Info("category_updated", slog.String("actor", ctxutil.Subject(context)), slog.Int("category_id", category.ID))
	return nil
}

// DeleteCategory detaches the category from every Pokemon, then removes it.
func (service *Service) DeleteCategory(context context.Context, id int) error {
	err := service.store.Atomic(context, func(tx store.Tx) error {
		if _, err := tx.Categories().Get(context, id); err != nil {
			return err
		}
		if err := service.resolver.UnlinkCategory(context, tx, id); err != nil {
			return err
		}
		return tx.Categories().Remove(context, id)
	})
	if err != nil {
		return dberr.Wrap(err, Resource)
	}

	service.logger.Warn("category_deleted", slog.String("actor", ctxutil.Subject(context)), slog.Int("category_id", id))
	return nil
}

func rejectDuplicate(context context.Context, tx store.Tx, name string, exceptID int) error {
	existing, err := store.FindFirst(context, tx.Categories(), func(c entity.Category) bool {
		return c.ID != exceptID && entity.SameName(c.Name, name)
	})
	if err != nil {
		return err
	}
	if existing != nil {
		return apperr.Unprocessable("Category already exists")
	}
	return nil
}

func validateCategory(category *entity.Category) error {
	validator := &validate.Validator{}
	validator.Required(entity.FieldName, category.Name).MaxLen(entity.FieldName, category.Name, entity.MaxNameLen)
	return validator.Err()
}
