// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/pokereview/internal/core/entity"
	requestutil "github.com/taibuivan/pokereview/internal/platform/request"
	"github.com/taibuivan/pokereview/internal/platform/respond"
	"github.com/taibuivan/pokereview/internal/platform/validate"
)

// Query parameters overriding the payload references on create.
const (
	QueryReviewerID = "reviewerId"
	QueryPokemonID  = "pokeId"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listReviews)
	router.Get("/{id}", handler.getReview)
	router.Get("/pokemon/{pokeId}", handler.listReviewsByPokemon)

	router.Post("/", handler.createReview)
	router.Put("/{id}", handler.updateReview)
	router.Delete("/{id}", handler.deleteReview)
}

func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	reviews, err := handler.service.ListReviews(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, reviews)
}

func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.GetReview(request.Context(), reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, review)
}

func (handler *Handler) listReviewsByPokemon(writer http.ResponseWriter, request *http.Request) {
	pokemonID, err := requestutil.ID(request, "pokeId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviews, err := handler.service.ListReviewsByPokemon(request.Context(), pokemonID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, reviews)
}

func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	var input entity.Review
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.ID = 0

	reviewerID, err := requestutil.QueryID(request, QueryReviewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	pokemonID, err := requestutil.QueryID(request, QueryPokemonID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if reviewerID != 0 {
		input.ReviewerID = reviewerID
	}
	if pokemonID != 0 {
		input.PokemonID = pokemonID
	}

	if err := handler.service.CreateReview(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input entity.Review
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.ID != 0 && input.ID != reviewID {
		respond.Error(writer, request, validate.FieldError(entity.FieldID, "Does not match the path"))
		return
	}
	input.ID = reviewID

	if err := handler.service.UpdateReview(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReview(request.Context(), reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
