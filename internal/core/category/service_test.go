// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category_test

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

	"github.com/taibuivan/pokereview/internal/core/category"
	"github.com/taibuivan/pokereview/internal/core/entity"
	"github.com/taibuivan/pokereview/internal/core/relation"
	"github.com/taibuivan/pokereview/internal/core/seed"
	"github.com/taibuivan/pokereview/internal/platform/apperr"
	"github.com/taibuivan/pokereview/internal/platform/store"
)

func newService(t *testing.T) (*category.Service, store.Store, seed.Fixture) {
	t.Helper()

	s := store.NewMemoryStore()
	fixture, err := seed.Demo(context.Background(), s)
	require.NoError(t, err)
	return category.NewService(s, relation.NewResolver(), slog.New(slog.DiscardHandler)), s, fixture
}

/*
TestService_Reads covers get, list and the Pokemon scoped read.
*/
func TestService_Reads(t *testing.T) {
	ctx := context.Background()
	service, _, fixture := newService(t)

	got, err := service.GetCategory(ctx, fixture.CategoryID)
	require.NoError(t, err)
	assert.Equal(t, "Electric", got.Name)

	list, err := service.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	members, err := service.ListPokemonByCategory(ctx, fixture.CategoryID)
	require.NoError(t, err)
	require.Len(t, members, seed.DemoPokemonCount)
	assert.Equal(t, "Pikachu1", members[0].Name)
	assert.Equal(t, []int{fixture.CategoryID}, members[0].CategoryIDs)

	_, err = service.ListPokemonByCategory(ctx, 404)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.GetCategory(ctx, 404)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestService_CreateAndUpdate round-trips a category and rejects duplicates.
*/
func TestService_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	service, _, fixture := newService(t)

	water := &entity.Category{Name: "Water"}
	require.NoError(t, service.CreateCategory(ctx, water))

	got, err := service.GetCategory(ctx, water.ID)
	require.NoError(t, err)
	assert.Equal(t, *water, *got)

	err = service.CreateCategory(ctx, &entity.Category{Name: "  ELECTRIC "})
	assert.True(t, apperr.HasCode(err, apperr.CodeUnprocessable))

	list, err := service.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	found, err := service.FindByNormalizedName(ctx, "water")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, water.ID, found.ID)

	err = service.UpdateCategory(ctx, &entity.Category{ID: water.ID, Name: "electric"})
	assert.True(t, apperr.HasCode(err, apperr.CodeUnprocessable))

	require.NoError(t, service.UpdateCategory(ctx, &entity.Category{ID: fixture.CategoryID, Name: "Thunder"}))
	got, err = service.GetCategory(ctx, fixture.CategoryID)
	require.NoError(t, err)
	assert.Equal(t, "Thunder", got.Name)

	err = service.UpdateCategory(ctx, &entity.Category{ID: 404, Name: "Ghost"})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	err = service.CreateCategory(ctx, &entity.Category{Name: " "})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestService_DeleteCategory removes the links along with the row.
*/
func TestService_DeleteCategory(t *testing.T) {
	ctx := context.Background()
	service, s, fixture := newService(t)

	require.NoError(t, service.DeleteCategory(ctx, fixture.CategoryID))

	exists, err := service.Exists(ctx, fixture.CategoryID)
	require.NoError(t, err)
	assert.False(t, exists)

	err = service.DeleteCategory(ctx, fixture.CategoryID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	require.NoError(t, s.Atomic(ctx, func(tx store.Tx) error {
		members, err := tx.PokemonCategories().Lefts(ctx, fixture.CategoryID)
		require.NoError(t, err)
		assert.Empty(t, members)

		all, err := tx.Pokemon().List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, seed.DemoPokemonCount)
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
		{"list", http.MethodGet, "/api/category", "", http.StatusOK},
		{"get", http.MethodGet, "/api/category/1", "", http.StatusOK},
		{"get_missing", http.MethodGet, "/api/category/9", "", http.StatusNotFound},
		{"pokemon", http.MethodGet, "/api/category/pokemon/1", "", http.StatusOK},
		{"create", http.MethodPost, "/api/category", `{"name":"Fire"}`, http.StatusCreated},
		{"create_duplicate", http.MethodPost, "/api/category", `{"name":"electric"}`, http.StatusUnprocessableEntity},
		{"create_null", http.MethodPost, "/api/category", `null`, http.StatusBadRequest},
		{"update", http.MethodPut, "/api/category/1", `{"id":1,"name":"Spark"}`, http.StatusNoContent},
		{"update_mismatch", http.MethodPut, "/api/category/1", `{"id":2,"name":"Spark"}`, http.StatusBadRequest},
		{"delete", http.MethodDelete, "/api/category/1", "", http.StatusNoContent},
		{"delete_missing", http.MethodDelete, "/api/category/9", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newService(t)
			router := chi.NewRouter()
			router.Route("/api/category", category.NewHandler(service).RegisterRoutes)

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

	err := service.UpdateCategory(ctx, &entity.Category{ID: 9999, Name: ""})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound), "got %v", err)

	err = service.UpdateCategory(ctx, &entity.Category{ID: fixture.CategoryID, Name: ""})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation), "got %v", err)
}
