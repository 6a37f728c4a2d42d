// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reviewer_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pokereview/internal/core/entity"
	"github.com/taibuivan/pokereview/internal/core/reviewer"
	"github.com/taibuivan/pokereview/internal/core/seed"
	"github.com/taibuivan/pokereview/internal/platform/apperr"
	"github.com/taibuivan/pokereview/internal/platform/store"
)

func newService(t *testing.T) (*reviewer.Service, store.Store, seed.Fixture) {
	t.Helper()

	s := store.NewMemoryStore()
	fixture, err := seed.Demo(context.Background(), s)
	require.NoError(t, err)
	return reviewer.NewService(s, slog.New(slog.DiscardHandler)), s, fixture
}

/*
TestService_CRUD round-trips a reviewer.
*/
func TestService_CRUD(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newService(t)

	created := &entity.Reviewer{FirstName: "Gary", LastName: "Oak"}
	require.NoError(t, service.CreateReviewer(ctx, created))

	got, err := service.GetReviewer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	require.NoError(t, service.UpdateReviewer(ctx, &entity.Reviewer{ID: created.ID, FirstName: "Blue", LastName: "Oak"}))
	got, err = service.GetReviewer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blue", got.FirstName)

	err = service.UpdateReviewer(ctx, &entity.Reviewer{ID: 9999, FirstName: "A", LastName: "B"})
	assert.Equal(t, "Reviewer not found", err.Error())

	err = service.CreateReviewer(ctx, &entity.Reviewer{FirstName: "Solo"})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	list, err := service.ListReviewers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 4)
}

/*
TestService_DeleteReviewer removes the reviewer's reviews in the same unit.
*/
func TestService_DeleteReviewer(t *testing.T) {
	ctx := context.Background()
	service, s, fixture := newService(t)
	id := fixture.ReviewerIDs[2]

	written, err := service.ListReviewsByReviewer(ctx, id)
	require.NoError(t, err)
	assert.Len(t, written, seed.DemoPokemonCount)

	require.NoError(t, service.DeleteReviewer(ctx, id))

	exists, err := service.Exists(ctx, id)
	require.NoError(t, err)
	assert.False(t, exists)

	err = service.DeleteReviewer(ctx, id)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.ListReviewsByReviewer(ctx, id)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	require.NoError(t, s.Atomic(ctx, func(tx store.Tx) error {
		all, err := tx.Reviews().List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, seed.DemoPokemonCount*2)
		return nil
	}))
}

/*
TestHandler_Routes checks status codes of the HTTP surface.
*/
func TestHandler_Routes(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"list", http.MethodGet, "/api/reviewer", "", http.StatusOK},
		{"get", http.MethodGet, "/api/reviewer/1", "", http.StatusOK},
		{"reviews", http.MethodGet, "/api/reviewer/1/reviews", "", http.StatusOK},
		{"create", http.MethodPost, "/api/reviewer", `{"first_name":"Gary","last_name":"Oak"}`, http.StatusCreated},
		{"create_invalid_json", http.MethodPost, "/api/reviewer", `{"first_name":`, http.StatusBadRequest},
		{"update", http.MethodPut, "/api/reviewer/1", `{"first_name":"Ted","last_name":"Smith"}`, http.StatusNoContent},
		{"update_missing", http.MethodPut, "/api/reviewer/99", `{"first_name":"Ted","last_name":"Smith"}`, http.StatusNotFound},
		{"delete", http.MethodDelete, "/api/reviewer/1", "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newService(t)
			router := chi.NewRouter()
			router.Route("/api/reviewer", reviewer.NewHandler(service).RegisterRoutes)

			request := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code, recorder.Body.String())
		})
	}
}

/*
TestService_UpdateMissingBeforeValidation reports NotFound for an unknown id
even when the payload is invalid, and still validates existing records.
*/
func TestService_UpdateMissingBeforeValidation(t *testing.T) {
	ctx := context.Background()
	service, _, fixture := newService(t)

	err := service.UpdateReviewer(ctx, &entity.Reviewer{ID: 9999})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound), "got %v", err)

	err = service.UpdateReviewer(ctx, &entity.Reviewer{ID: fixture.ReviewerIDs[0]})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation), "got %v", err)
}
