// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package owner

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/pokereview/internal/core/entity"
	requestutil "github.com/taibuivan/pokereview/internal/platform/request"
	"github.com/taibuivan/pokereview/internal/platform/respond"
	"github.com/taibuivan/pokereview/internal/platform/validate"
)

// QueryCountryID overrides the payload's country_id when present.
const QueryCountryID = "countryId"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listOwners)
	router.Get("/{id}", handler.getOwner)
	router.Get("/{id}/pokemon", handler.listPokemonByOwner)
	router.Get("/pokemon/{pokeId}", handler.listOwnersOfPokemon)

	router.Post("/", handler.createOwner)
	router.Put("/{id}", handler.updateOwner)
	router.Delete("/{id}", handler.deleteOwner)
}

func (handler *Handler) listOwners(writer http.ResponseWriter, request *http.Request) {
	owners, err := handler.service.ListOwners(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, owners)
}

func (handler *Handler) getOwner(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	owner, err := handler.service.GetOwner(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, owner)
}

func (handler *Handler) listPokemonByOwner(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	list, err := handler.service.ListPokemonByOwner(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, list)
}

func (handler *Handler) listOwnersOfPokemon(writer http.ResponseWriter, request *http.Request) {
	pokemonID, err := requestutil.ID(request, "pokeId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	owners, err := handler.service.ListOwnersOfPokemon(request.Context(), pokemonID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, owners)
}

func (handler *Handler) createOwner(writer http.ResponseWriter, request *http.Request) {
	var input entity.Owner
	if err := handler.decode(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateOwner(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateOwner(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input entity.Owner
	if err := handler.decode(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.ID != 0 && input.ID != ownerID {
		respond.Error(writer, request, validate.FieldError(entity.FieldID, "Does not match the path"))
		return
	}
	input.ID = ownerID

	if err := handler.service.UpdateOwner(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteOwner(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteOwner(request.Context(), ownerID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) decode(writer http.ResponseWriter, request *http.Request, input *entity.Owner) error {
	if err := requestutil.DecodeJSON(writer, request, input); err != nil {
		return err
	}

	countryID, err := requestutil.QueryID(request, QueryCountryID)
	if err != nil {
		return err
	}
	if countryID != 0 {
		input.CountryID = countryID
	}
	return nil
}
