// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pokemon

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/pokereview/internal/core/entity"
	requestutil "github.com/taibuivan/pokereview/internal/platform/request"
	"github.com/taibuivan/pokereview/internal/platform/respond"
	"github.com/taibuivan/pokereview/internal/platform/validate"
)

// Query parameters carrying relation identities on writes.
const (
	QueryOwnerID    = "ownerId"
	QueryCategoryID = "catId"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listPokemon)
	router.Get("/name/{name}", handler.getPokemonByName)
	router.Get("/{id}", handler.getPokemon)
	router.Get("/{id}/rating", handler.getRating)

	router.Post("/", handler.createPokemon)
	router.Put("/{id}", handler.updatePokemon)
	router.Delete("/{id}", handler.deletePokemon)
}

func (handler *Handler) listPokemon(writer http.ResponseWriter, request *http.Request) {
	list, err := handler.service.ListPokemon(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, list)
}

func (handler *Handler) getPokemon(writer http.ResponseWriter, request *http.Request) {
	pokemonID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.GetPokemon(request.Context(), pokemonID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, p)
}

func (handler *Handler) getPokemonByName(writer http.ResponseWriter, request *http.Request) {
	p, err := handler.service.GetPokemonByName(request.Context(), chi.URLParam(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, p)
}

func (handler *Handler) getRating(writer http.ResponseWriter, request *http.Request) {
	pokemonID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	average, err := handler.service.Rating(request.Context(), pokemonID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Sent as a JSON number, not the quoted string decimal emits by default
	respond.OK(writer, json.Number(average.String()))
}

func (handler *Handler) createPokemon(writer http.ResponseWriter, request *http.Request) {
	var input entity.Pokemon
	if err := handler.decode(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.ID = 0

	if err := handler.service.CreatePokemon(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updatePokemon(writer http.ResponseWriter, request *http.Request) {
	pokemonID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input entity.Pokemon
	if err := handler.decode(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.ID != 0 && input.ID != pokemonID {
		respond.Error(writer, request, validate.FieldError(entity.FieldID, "Does not match the path"))
		return
	}
	input.ID = pokemonID

	if err := handler.service.UpdatePokemon(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deletePokemon(writer http.ResponseWriter, request *http.Request) {
	pokemonID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePokemon(request.Context(), pokemonID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// decode reads the body and folds the ownerId and catId query identities
// into the relation lists.
func (handler *Handler) decode(writer http.ResponseWriter, request *http.Request, input *entity.Pokemon) error {
	if err := requestutil.DecodeJSON(writer, request, input); err != nil {
		return err
	}

	ownerIDs, err := requestutil.QueryIDs(request, QueryOwnerID)
	if err != nil {
		return err
	}
	categoryIDs, err := requestutil.QueryIDs(request, QueryCategoryID)
	if err != nil {
		return err
	}

	if ownerIDs != nil {
		input.OwnerIDs = merge(input.OwnerIDs, ownerIDs)
	}
	if categoryIDs != nil {
		input.CategoryIDs = merge(input.CategoryIDs, categoryIDs)
	}
	return nil
}

// merge appends the ids of extra not already present in base.
func merge(base, extra []int) []int {
	result := append(make([]int, 0, len(base)+len(extra)), base...)
	for _, id := range extra {
		if !slices.Contains(result, id) {
			result = append(result, id)
		}
	}
	return result
}

