// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/pokereview/internal/core/entity"
	requestutil "github.com/taibuivan/pokereview/internal/platform/request"
	"github.com/taibuivan/pokereview/internal/platform/respond"
	"github.com/taibuivan/pokereview/internal/platform/validate"
)

// Handler implements the credential endpoint.
//
// # Scope
//
// It is the only route mounted outside the authenticated group.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// RegisterRoutes mounts the endpoint.
//
// # Endpoints
//   - POST / : Exchanges a Pokemon identity for a bearer token.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.authenticate)
}

// authenticateRequest is the JSON payload naming the principal.
type authenticateRequest struct {
	ID int `json:"id"`
}

// authenticate handles POST /api/auth requests.
//
// # Returns
//   - Writes HTTP 200 OK with the token and its expiry.
//   - Writes HTTP 400 Bad Request for a null payload or unknown Pokemon.
//   - Writes HTTP 401 Unauthorized if the token cannot be issued.
func (handler *Handler) authenticate(writer http.ResponseWriter, request *http.Request) {
	// 1. Payload Extraction
	var input authenticateRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 2. Boundary Validation
	validator := &validate.Validator{}
	if err := validator.Reference(entity.FieldID, input.ID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 3. Application Execution
	credential, err := handler.authService.Authenticate(request.Context(), input.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, credential)
}
