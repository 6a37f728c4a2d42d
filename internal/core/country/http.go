// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package country

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/pokereview/internal/core/entity"
	requestutil "github.com/taibuivan/pokereview/internal/platform/request"
	"github.com/taibuivan/pokereview/internal/platform/respond"
	"github.com/taibuivan/pokereview/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listCountries)
	router.Get("/{id}", handler.getCountry)
	router.Get("/{id}/owners", handler.listOwnersByCountry)
	router.Get("/owners/{ownerId}", handler.getCountryByOwner)

	router.Post("/", handler.createCountry)
	router.Put("/{id}", handler.updateCountry)
	router.Delete("/{id}", handler.deleteCountry)
}

func (handler *Handler) listCountries(writer http.ResponseWriter, request *http.Request) {
	countries, err := handler.service.ListCountries(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, countries)
}

func (handler *Handler) getCountry(writer http.ResponseWriter, request *http.Request) {
	countryID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	country, err := handler.service.GetCountry(request.Context(), countryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, country)
}

func (handler *Handler) listOwnersByCountry(writer http.ResponseWriter, request *http.Request) {
	countryID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	owners, err := handler.service.ListOwnersByCountry(request.Context(), countryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, owners)
}

func (handler *Handler) getCountryByOwner(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.ID(request, "ownerId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	country, err := handler.service.GetCountryByOwner(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, country)
}

func (handler *Handler) createCountry(writer http.ResponseWriter, request *http.Request) {
	var input entity.Country
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.ID = 0

	if err := handler.service.CreateCountry(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateCountry(writer http.ResponseWriter, request *http.Request) {
	countryID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input entity.Country
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.ID != 0 && input.ID != countryID {
		respond.Error(writer, request, validate.FieldError(entity.FieldID, "Does not match the path"))
		return
	}
	input.ID = countryID

	if err := handler.service.UpdateCountry(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteCountry(writer http.ResponseWriter, request *http.Request) {
	countryID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCountry(request.Context(), countryID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
