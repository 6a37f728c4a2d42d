// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package owner_test

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
	"github.com/taibuivan/pokereview/internal/core/owner"
	"github.com/taibuivan/pokereview/internal/core/relation"
	"github.com/taibuivan/pokereview/internal/core/seed"
	"github.com/taibuivan/pokereview/internal/platform/apperr"
	"github.com/taibuivan/pokereview/internal/platform/store"
)

func newService(t *testing.T) (*owner.Service, store.Store, seed.Fixture) {
	t.Helper()

	s := store.NewMemoryStore()
	fixture, err := seed.Demo(context.Background(), s)
	require.NoError(t, err)
	return owner.NewService(s, relation.NewResolver(), slog.New(slog.DiscardHandler)), s, fixture
}

/*
TestService_Reads covers the owner reads in both relation directions.
*/
func TestService_Reads(t *testing.T) {
	ctx := context.Background()
	service, _, fixture := newService(t)

	got, err := service.GetOwner(ctx, fixture.OwnerID)
	require.NoError(t, err)
	assert.Equal(t, "Ash", got.FirstName)
	assert.Equal(t, fixture.CountryID, got.CountryID)

	kept, err := service.ListPokemonByOwner(ctx, fixture.OwnerID)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "Pikachu1", kept[0].Name)

	owners, err := service.ListOwnersOfPokemon(ctx, fixture.PokemonIDs[0])
	require.NoError(t, err)
	require.Len(t, owners, 1)
	assert.Equal(t, fixture.OwnerID, owners[0].ID)

	none, err := service.ListOwnersOfPokemon(ctx, fixture.PokemonIDs[1])
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = service.ListOwnersOfPokemon(ctx, 9999)
	assert.Equal(t, "Pokemon not found", err.Error())

	_, err = service.ListPokemonByOwner(ctx, 9999)
	assert.Equal(t, "Owner not found", err.Error())

	found, err := service.FindByNormalizedName(ctx, " ash", "KETCHUM ")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, fixture.OwnerID, found.ID)
}

/*
TestService_CreateOwner resolves the country and rejects duplicates.
*/
func TestService_CreateOwner(t *testing.T) {
	ctx := context.Background()
	service, _, fixture := newService(t)

	misty := &entity.Owner{FirstName: "Misty", LastName: "Waterflower", CountryID: fixture.CountryID}
	require.NoError(t, service.CreateOwner(ctx, misty))

	got, err := service.GetOwner(ctx, misty.ID)
	require.NoError(t, err)
	assert.Equal(t, *misty, *got)

	tests := []struct {
		name  string
		input entity.Owner
		code  string
	}{
		{"duplicate", entity.Owner{FirstName: "ASH", LastName: "ketchum", CountryID: fixture.CountryID}, apperr.CodeUnprocessable},
		{"unknown_country", entity.Owner{FirstName: "Brock", LastName: "Harrison", CountryID: 77}, apperr.CodeValidation},
		{"missing_country", entity.Owner{FirstName: "Brock", LastName: "Harrison"}, apperr.CodeValidation},
		{"missing_last_name", entity.Owner{FirstName: "Brock", CountryID: fixture.CountryID}, apperr.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			err := service.CreateOwner(ctx, &input)
			assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
			assert.Zero(t, input.ID)
		})
	}

	list, err := service.ListOwners(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

/*
TestService_UpdateOwner keeps the country on a zero reference.
*/
func TestService_UpdateOwner(t *testing.T) {
	ctx := context.Background()
	service, _, fixture := newService(t)

	update := &entity.Owner{ID: fixture.OwnerID, FirstName: "Satoshi", LastName: "Ketchum"}
	require.NoError(t, service.UpdateOwner(ctx, update))

	got, err := service.GetOwner(ctx, fixture.OwnerID)
	require.NoError(t, err)
	assert.Equal(t, "Satoshi", got.FirstName)
	assert.Equal(t, fixture.CountryID, got.CountryID)

	err = service.UpdateOwner(ctx, &entity.Owner{ID: fixture.OwnerID, FirstName: "Satoshi", LastName: "Ketchum", CountryID: 77})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	err = service.UpdateOwner(ctx, &entity.Owner{ID: 9999, FirstName: "Gary", LastName: "Oak"})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestService_DeleteOwner removes the links but keeps the Pokemon.
*/
func TestService_DeleteOwner(t *testing.T) {
	ctx := context.Background()
	service, s, fixture := newService(t)

	require.NoError(t, service.DeleteOwner(ctx, fixture.OwnerID))

	exists, err := service.Exists(ctx, fixture.OwnerID)
	require.NoError(t, err)
	assert.False(t, exists)

	err = service.DeleteOwner(ctx, fixture.OwnerID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	require.NoError(t, s.Atomic(ctx, func(tx store.Tx) error {
		owners, err := tx.PokemonOwners().Rights(ctx, fixture.PokemonIDs[0])
		require.NoError(t, err)
		assert.Empty(t, owners)

		exists, err := tx.Pokemon().Exists(ctx, fixture.PokemonIDs[0])
		require.NoError(t, err)
		assert.True(t, exists)
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
		{"list", http.MethodGet, "/api/owner", "", http.StatusOK},
		{"get", http.MethodGet, "/api/owner/1", "", http.StatusOK},
		{"pokemon", http.MethodGet, "/api/owner/1/pokemon", "", http.StatusOK},
		{"owners_of_pokemon", http.MethodGet, "/api/owner/pokemon/1", "", http.StatusOK},
		{"create_query_country", http.MethodPost, "/api/owner?countryId=1", `{"first_name":"Misty","last_name":"W"}`, http.StatusCreated},
		{"create_no_country", http.MethodPost, "/api/owner", `{"first_name":"Misty","last_name":"W"}`, http.StatusBadRequest},
		{"create_duplicate", http.MethodPost, "/api/owner?countryId=1", `{"first_name":"ash","last_name":"ketchum"}`, http.StatusUnprocessableEntity},
		{"update", http.MethodPut, "/api/owner/1", `{"first_name":"Ash","last_name":"K"}`, http.StatusNoContent},
		{"update_missing", http.MethodPut, "/api/owner/7", `{"first_name":"Ash","last_name":"K"}`, http.StatusNotFound},
		{"delete", http.MethodDelete, "/api/owner/1", "", http.StatusNoContent},
		{"delete_bad_id", http.MethodDelete, "/api/owner/-1", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newService(t)
			router := chi.NewRouter()
			router.Route("/api/owner", owner.NewHandler(service).RegisterRoutes)

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

	err := service.UpdateOwner(ctx, &entity.Owner{ID: 9999})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound), "got %v", err)

	err = service.UpdateOwner(ctx, &entity.Owner{ID: fixture.OwnerID})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation), "got %v", err)
}

/*
TestService_CreateOwnerComparesNamePartsSeparately accepts owners whose
joined names coincide but whose parts differ.
*/
func TestService_CreateOwnerComparesNamePartsSeparately(t *testing.T) {
	ctx := context.Background()
	service, _, fixture := newService(t)

	maryAnn := &entity.Owner{FirstName: "Mary Ann", LastName: "Smith", CountryID: fixture.CountryID}
	require.NoError(t, service.CreateOwner(ctx, maryAnn))

	mary := &entity.Owner{FirstName: "Mary", LastName: "Ann Smith", CountryID: fixture.CountryID}
	require.NoError(t, service.CreateOwner(ctx, mary))
	assert.NotEqual(t, maryAnn.ID, mary.ID)

	found, err := service.FindByNormalizedName(ctx, "mary", "ANN SMITH")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, mary.ID, found.ID)
}
