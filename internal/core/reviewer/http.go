// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reviewer

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
	router.Get("/", handler.listReviewers)
	router.Get("/{id}", handler.getReviewer)
	router.Get("/{id}/reviews", handler.listReviewsByReviewer)

	router.Post("/", handler.createReviewer)
	router.Put("/{id}", handler.updateReviewer)
	router.Delete("/{id}", handler.deleteReviewer)
}

func (handler *Handler) listReviewers(writer http.ResponseWriter, request *http.Request) {
	reviewers, err := handler.service.ListReviewers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, reviewers)
}

func (handler *Handler) getReviewer(writer http.ResponseWriter, request *http.Request) {
	reviewerID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviewer, err := handler.service.GetReviewer(request.Context(), reviewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, reviewer)
}

func (handler *Handler) listReviewsByReviewer(writer http.ResponseWriter, request *http.Request) {
	reviewerID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	list, err := handler.service.ListReviewsByReviewer(request.Context(), reviewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, list)
}

func (handler *Handler) createReviewer(writer http.ResponseWriter, request *http.Request) {
	var input entity.Reviewer
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.ID = 0

	if err := handler.service.CreateReviewer(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateReviewer(writer http.ResponseWriter, request *http.Request) {
	reviewerID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input entity.Reviewer
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.ID != 0 && input.ID != reviewerID {
		respond.Error(writer, request, validate.FieldError(entity.FieldID, "Does not match the path"))
		return
	}
	input.ID = reviewerID

	if err := handler.service.UpdateReviewer(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteReviewer(writer http.ResponseWriter, request *http.Request) {
	reviewerID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReviewer(request.Context(), reviewerID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
