// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package country is the facade over owner countries.
package country

import (
	"context"
	"log/slog"

	"github.com/taibuivan/pokereview/internal/core/entity"
	"github.com/taibuivan/pokereview/internal/platform/apperr"
	"github.com/taibuivan/pokereview/internal/platform/ctxutil"
	"github.com/taibuivan/pokereview/internal/platform/dberr"
	"github.com/taibuivan/pokereview/internal/platform/store"
	"github.com/taibuivan/pokereview/internal/platform/validate"
	"github.com/taibuivan/pokereview/pkg/slice"
)

const Resource = "Country"

type Service struct {
	store  store.Store
	logger *slog.Logger
}

func NewService(s store.Store, logger *slog.Logger) *Service {
	return &Service{store: s, logger: logger}
}

// # Reads

func (service *Service) Exists(context context.Context, id int) (bool, error) {
	exists, err := store.Query(context, service.store, func(tx store.Tx) (bool, error) {
		return tx.Countries().Exists(context, id)
	})
	return exists, dberr.Wrap(err, Resource)
}

func (service *Service) GetCountry(context context.Context, id int) (*entity.Country, error) {
	country, err := store.Query(context, service.store, func(tx store.Tx) (entity.Country, error) {
		return tx.Countries().Get(context, id)
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return &country, nil
}

func (service *Service) ListCountries(context context.Context) ([]*entity.Country, error) {
	rows, err := store.Query(context, service.store, func(tx store.Tx) ([]entity.Country, error) {
		return tx.Countries().List(context)
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return slice.Ref(rows), nil
}

// GetCountryByOwner returns the country an existing owner lives in.
func (service *Service) GetCountryByOwner(context context.Context, ownerID int) (*entity.Country, error) {
	country, err := store.Query(context, service.store, func(tx store.Tx) (entity.Country, error) {
		owner, err := tx.Owners().Get(context, ownerID)
		if err != nil {
			return entity.Country{}, dberr.Wrap(err, "Owner")
		}
		return tx.Countries().Get(context, owner.CountryID)
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return &country, nil
}

// ListOwnersByCountry returns the owners living in an existing country.
func (service *Service) ListOwnersByCountry(context context.Context, countryID int) ([]*entity.Owner, error) {
	owners, err := store.Query(context, service.store, func(tx store.Tx) ([]entity.Owner, error) {
		if _, err := tx.Countries().Get(context, countryID); err != nil {
			return nil, err
		}
		return tx.Owners().Scan(context, func(o entity.Owner) bool { return o.CountryID == countryID })
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return slice.Ref(owners), nil
}

// FindByNormalizedName returns the colliding country, or nil.
func (service *Service) FindByNormalizedName(context context.Context, name string) (*entity.Country, error) {
	country, err := store.Query(context, service.store, func(tx store.Tx) (*entity.Country, error) {
		return store.FindFirst(context, tx.Countries(), func(c entity.Country) bool {
			return entity.SameName(c.Name, name)
		})
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return country, nil
}

// # Writes

func (service *Service) CreateCountry(context context.Context, country *entity.Country) error {
	if err := validateCountry(country); err != nil {
		return err
	}

	err := service.store.Atomic(context, func(tx store.Tx) error {
		if err := rejectDuplicate(context, tx, country.Name, 0); err != nil {
			return err
		}
		id, err := tx.Countries().Insert(context, *country)
		if err != nil {
			return err
		}
		country.ID = id
		return nil
	})
	if err != nil {
		return dberr.Wrap(err, Resource)
	}

	service.logger.Info("country_created", slog.String("actor", ctxutil.Subject(context)), slog.Int("country_id", country.ID), slog.String("name", country.Name))
	return nil
}

func (service *Service) UpdateCountry(context context.Context, country *entity.Country) error {
	err := service.store.Atomic(context, func(tx store.Tx) error {
		if _, err := tx.Countries().Get(context, country.ID); err != nil {
			return err
		}
		if err := validateCountry(country); err != nil {
			return err
		}
		if err := rejectDuplicate(context, tx, country.Name, country.ID); err != nil {
			return err
		}
		return tx.Countries().Replace(context, *country)
	})
	if err != nil {
		return dberr.Wrap(err, Resource)
	}

	service.logger.Info("country_updated", slog.String("actor", ctxutil.Subject(context)), slog.Int("country_id", country.ID))
	return nil
}

// DeleteCountry removes a country no owner lives in. A referenced country
// is rejected with Conflict.
func (service *Service) DeleteCountry(context context.Context, id int) error {
	err := service.store.Atomic(context, func(tx store.Tx) error {
		if _, err := tx.Countries().Get(context, id); err != nil {
			return err
		}

		resident, err := store.FindFirst(context, tx.Owners(), func(o entity.Owner) bool { return o.CountryID == id })
		if err != nil {
			return err
		}
		if resident != nil {
			return apperr.Conflict("Country still has owners")
		}

		return tx.Countries().Remove(context, id)
	})
	if err != nil {
		return dberr.Wrap(err, Resource)
	}

	service.logger.Warn("country_deleted", slog.String("actor", ctxutil.Subject(context)), slog.Int("country_id", id))
	return nil
}

func rejectDuplicate(context context.Context, tx store.Tx, name string, exceptID int) error {
	existing, err := store.FindFirst(context, tx.Countries(), func(c entity.Country) bool {
		return c.ID != exceptID && entity.SameName(c.Name, name)
	})
	if err != nil {
		return err
	}
	if existing != nil {
		return apperr.Unprocessable("Country already exists")
	}
	return nil
}

func validateCountry(country *entity.Country) error {
	validator := &validate.Validator{}
	validator.Required(entity.FieldName, country.Name).MaxLen(entity.FieldName, country.Name, entity.MaxNameLen)
	return validator.Err()
}
