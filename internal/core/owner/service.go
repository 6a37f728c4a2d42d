// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package owner is the facade over Pokemon owners.

Every owner lives in exactly one country. The reference is resolved on create
and on any update that names a country; an unknown country is a validation
failure of the payload, not a missing resource.
*/
package owner

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

const Resource = "Owner"

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
		return tx.Owners().Exists(context, id)
	})
	return exists, dberr.Wrap(err, Resource)
}

func (service *Service) GetOwner(context context.Context, id int) (*entity.Owner, error) {
	owner, err := store.Query(context, service.store, func(tx store.Tx) (entity.Owner, error) {
		return tx.Owners().Get(context, id)
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return &owner, nil
}

func (service *Service) ListOwners(context context.Context) ([]*entity.Owner, error) {
	rows, err := store.Query(context, service.store, func(tx store.Tx) ([]entity.Owner, error) {
		return tx.Owners().List(context)
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return slice.Ref(rows), nil
}

// ListPokemonByOwner returns the Pokemon kept by an existing owner.
func (service *Service) ListPokemonByOwner(context context.Context, ownerID int) ([]*entity.Pokemon, error) {
	list, err := store.Query(context, service.store, func(tx store.Tx) ([]*entity.Pokemon, error) {
		if _, err := tx.Owners().Get(context, ownerID); err != nil {
			return nil, err
		}

		ids, err := tx.PokemonOwners().Lefts(context, ownerID)
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

// ListOwnersOfPokemon returns the owners of an existing Pokemon.
func (service *Service) ListOwnersOfPokemon(context context.Context, pokemonID int) ([]*entity.Owner, error) {
	list, err := store.Query(context, service.store, func(tx store.Tx) ([]*entity.Owner, error) {
		if _, err := tx.Pokemon().Get(context, pokemonID); err != nil {
			return nil, dberr.Wrap(err, pokemon.Resource)
		}

		ids, err := tx.PokemonOwners().Rights(context, pokemonID)
		if err != nil {
			return nil, err
		}

		owners := make([]*entity.Owner, 0, len(ids))
		for _, id := range ids {
			owner, err := tx.Owners().Get(context, id)
			if err != nil {
				return nil, err
			}
			owners = append(owners, &owner)
		}
		return owners, nil
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return list, nil
}

// FindByNormalizedName returns the owner whose first and last names both
// collide with the given ones, or nil.
func (service *Service) FindByNormalizedName(context context.Context, firstName, lastName string) (*entity.Owner, error) {
	probe := entity.Owner{FirstName: firstName, LastName: lastName}
	owner, err := store.Query(context, service.store, func(tx store.Tx) (*entity.Owner, error) {
		return store.FindFirst(context, tx.Owners(), func(o entity.Owner) bool {
			return o.SameNameAs(probe)
		})
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return owner, nil
}

// # Writes

// CreateOwner stores the owner in the country named by CountryID.
func (service *Service) CreateOwner(context context.Context, owner *entity.Owner) error {
	validator := validateOwner(owner)
	validator.Reference(entity.FieldCountryID, owner.CountryID)
	if err := validator.Err(); err != nil {
		return err
	}
	owner.ID = 0

	err := service.store.Atomic(context, func(tx store.Tx) error {
		if err := rejectDuplicate(context, tx, *owner); err != nil {
			return err
		}
		if err := service.resolver.ResolveOwnerCountry(context, tx, owner, owner.CountryID); err != nil {
			return err
		}

		id, err := tx.Owners().Insert(context, *owner)
		if err != nil {
			return err
		}
		owner.ID = id
		return nil
	})
	if err != nil {
		owner.ID = 0
		return dberr.Wrap(err, Resource)
	}

	service.logger.Info("owner_created",
		slog.String("actor", ctxutil.Subject(context)),
		slog.Int("owner_id", owner.ID),
		slog.Int("country_id", owner.CountryID),
	)
	return nil
}

// UpdateOwner replaces the names. A zero CountryID keeps the current country.
func (service *Service) UpdateOwner(context context.Context, owner *entity.Owner) error {
	err := service.store.Atomic(context, func(tx store.Tx) error {
		current, err := tx.Owners().Get(context, owner.ID)
		if err != nil {
			return err
		}
		if err := validateOwner(owner).Err(); err != nil {
			return err
		}
		if err := rejectDuplicate(context, tx, *owner); err != nil {
			return err
		}

		if owner.CountryID == 0 {
			owner.CountryID = current.CountryID
		} else if err := service.resolver.ResolveOwnerCountry(context, tx, owner, owner.CountryID); err != nil {
			return err
		}

		return tx.Owners().Replace(context, *owner)
	})
	if err != nil {
		return dberr.Wrap(err, Resource)
	}

	service.logger.Info("owner_updated", slog.String("actor", ctxutil.Subject(context)), slog.Int("owner_id", owner.ID))
	return nil
}

// DeleteOwner detaches the owner from its Pokemon, then removes it.
func (service *Service) DeleteOwner(context context.Context, id int) error {
	err := service.store.Atomic(context, func(tx store.Tx) error {
		if _, err := tx.Owners().Get(context, id); err != nil {
			return err
		}
		if err := service.resolver.UnlinkOwner(context, tx, id); err != nil {
			return err
		}
		return tx.Owners().Remove(context, id)
	})
	if err != nil {
		return dberr.Wrap(err, Resource)
	}

	service.logger.Warn("owner_deleted", slog.String("actor", ctxutil.Subject(context)), slog.Int("owner_id", id))
	return nil
}

// rejectDuplicate compares both name parts, skipping the owner itself.
func rejectDuplicate(context context.Context, tx store.Tx, owner entity.Owner) error {
	existing, err := store.FindFirst(context, tx.Owners(), func(o entity.Owner) bool {
		return o.ID != owner.ID && o.SameNameAs(owner)
	})
	if err != nil {
		return err
	}
	if existing != nil {
		return apperr.Unprocessable("Owner already exists")
	}
	return nil
}

func validateOwner(owner *entity.Owner) *validate.Validator {
	validator := &validate.Validator{}
	validator.Required(entity.FieldFirstName, owner.FirstName).MaxLen(entity.FieldFirstName, owner.FirstName, entity.MaxNameLen)
	validator.Required(entity.FieldLastName, owner.LastName).MaxLen(entity.FieldLastName, owner.LastName, entity.MaxNameLen)
	return validator
}
