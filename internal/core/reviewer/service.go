// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package reviewer is the facade over review authors.
package reviewer

import (
	"context"
	"log/slog"

	"github.com/taibuivan/pokereview/internal/core/entity"
	"github.com/taibuivan/pokereview/internal/platform/ctxutil"
	"github.com/taibuivan/pokereview/internal/platform/dberr"
	"github.com/taibuivan/pokereview/internal/platform/store"
	"github.com/taibuivan/pokereview/internal/platform/validate"
	"github.com/taibuivan/pokereview/pkg/slice"
)

const Resource = "Reviewer"

type Service struct {
	store  store.Store
	logger *slog.Logger
}

func NewService(s store.Store, logger *slog.Logger) *Service {
	return &Service{store: s, logger: logger}
}

func (service *Service) Exists(context context.Context, id int) (bool, error) {
	exists, err := store.Query(context, service.store, func(tx store.Tx) (bool, error) {
		return tx.Reviewers().Exists(context, id)
	})
	return exists, dberr.Wrap(err, Resource)
}

func (service *Service) GetReviewer(context context.Context, id int) (*entity.Reviewer, error) {
	reviewer, err := store.Query(context, service.store, func(tx store.Tx) (entity.Reviewer, error) {
		return tx.Reviewers().Get(context, id)
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return &reviewer, nil
}

func (service *Service) ListReviewers(context context.Context) ([]*entity.Reviewer, error) {
	rows, err := store.Query(context, service.store, func(tx store.Tx) ([]entity.Reviewer, error) {
		return tx.Reviewers().List(context)
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return slice.Ref(rows), nil
}

// ListReviewsByReviewer returns the reviews written by an existing reviewer.
func (service *Service) ListReviewsByReviewer(context context.Context, reviewerID int) ([]*entity.Review, error) {
	rows, err := store.Query(context, service.store, func(tx store.Tx) ([]entity.Review, error) {
		if _, err := tx.Reviewers().Get(context, reviewerID); err != nil {
			return nil, err
		}
		return tx.Reviews().Scan(context, func(r entity.Review) bool { return r.ReviewerID == reviewerID })
	})
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return slice.Ref(rows), nil
}

func (service *Service) CreateReviewer(context context.Context, reviewer *entity.Reviewer) error {
	if err := validateReviewer(reviewer); err != nil {
		return err
	}

	err := service.store.Atomic(context, func(tx store.Tx) error {
		id, err := tx.Reviewers().Insert(context, *reviewer)
		if err != nil {
			return err
		}
		reviewer.ID = id
		return nil
	})
	if err != nil {
		return dberr.Wrap(err, Resource)
	}

	service.logger.Info("reviewer_created", slog.String("actor", ctxutil.Subject(context)), slog.Int("reviewer_id", reviewer.ID))
	return nil
}

func (service *Service) UpdateReviewer(context context.Context, reviewer *entity.Reviewer) error {
	err := service.store.Atomic(context, func(tx store.Tx) error {
		if _, err := tx.Reviewers().Get(context, reviewer.ID); err != nil {
			return err
		}
		if err := validateReviewer(reviewer); err != nil {
			return err
		}
		return tx.Reviewers().Replace(context, *reviewer)
	})
	if err != nil {
		return dberr.Wrap(err, Resource)
	}

	service.logger.Info("reviewer_updated", slog.String("actor", ctxutil.Subject(context)), slog.Int("reviewer_id", reviewer.ID))
	return nil
}

// DeleteReviewer removes the reviewer's reviews, then the reviewer.
func (service *Service) DeleteReviewer(context context.Context, id int) error {
	removedReviews := 0

	err := service.store.Atomic(context, func(tx store.Tx) error {
		if _, err := tx.Reviewers().Get(context, id); err != nil {
			return err
		}

		reviews, err := tx.Reviews().Scan(context, func(r entity.Review) bool { return r.ReviewerID == id })
		if err != nil {
			return err
		}
		for _, review := range reviews {
			if err := tx.Reviews().Remove(context, review.ID); err != nil {
				return err
			}
		}
		removedReviews = len(reviews)

		return tx.Reviewers().Remove(context, id)
	})
	if err != nil {
		return dberr.Wrap(err, Resource)
	}

	service.logger.Warn("reviewer_deleted", slog.String("actor", ctxutil.Subject(context)), slog.Int("reviewer_id", id), slog.Int("reviews_removed", removedReviews))
	return nil
}

func validateReviewer(reviewer *entity.Reviewer) error {
	validator := &validate.Validator{}
	validator.Required(entity.FieldFirstName, reviewer.FirstName).MaxLen(entity.FieldFirstName, reviewer.FirstName, entity.MaxNameLen)
	validator.Required(entity.FieldLastName, reviewer.LastName).MaxLen(entity.FieldLastName, reviewer.LastName, entity.MaxNameLen)
	return validator.Err()
}
