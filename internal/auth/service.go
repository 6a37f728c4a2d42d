// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package auth implements the credential exchange of the review API.
//
// # Flow
//
// A client names a Pokemon by identity; when it exists, a bearer token is
// issued for the Pokemon's name. That token then unlocks every other route.
// There are no passwords, refresh tokens or sessions.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taibuivan/pokereview/internal/core/entity"
	"github.com/taibuivan/pokereview/internal/platform/apperr"
	"github.com/taibuivan/pokereview/internal/platform/dberr"
	"github.com/taibuivan/pokereview/internal/platform/store"
)

// TokenIssuer defines the contract for minting bearer credentials.
type TokenIssuer interface {
	// Issue signs a token naming subject.
	//
	// # Returns
	//   - The compact JWT and its expiry instant, or an error if signing fails.
	Issue(subject string) (string, time.Time, error)
}

// Credential is the result of a successful exchange.
type Credential struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service implements the credential exchange.
type Service struct {
	store  store.Store
	issuer TokenIssuer
	logger *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(s store.Store, issuer TokenIssuer, logger *slog.Logger) *Service {
	return &Service{store: s, issuer: issuer, logger: logger}
}

// Authenticate resolves the Pokemon and issues a token for its name.
//
// # Parameters
//   - context: Context for the store read.
//   - pokemonID: Identity of the Pokemon acting as principal.
//
// # Returns
//   - A [Credential] on success.
//   - [apperr.ValidationError] ("Pokemon not found") when the identity is unknown.
//   - [apperr.Unauthorized] when the token cannot be issued.
func (service *Service) Authenticate(context context.Context, pokemonID int) (*Credential, error) {
	// 1. Resolve the principal
	p, err := store.Query(context, service.store, func(tx store.Tx) (entity.Pokemon, error) {
		return tx.Pokemon().Get(context, pokemonID)
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.ValidationError("Pokemon not found", apperr.FieldError{
			Field:   entity.FieldID,
			Message: "No Pokemon has this identity",
		})
	}
	if err != nil {
		return nil, dberr.Wrap(err, "Pokemon")
	}

	// 2. Sign
	token, expiresAt, err := service.issuer.Issue(p.Name)
	if err != nil {
		service.logger.WarnContext(context, "credential_issue_failed",
			slog.Int("pokemon_id", pokemonID),
			slog.String("error", err.Error()),
		)
		return nil, apperr.Unauthorized("Credential could not be issued")
	}

	service.logger.InfoContext(context, "credential_issued",
		slog.Int("pokemon_id", pokemonID),
		slog.Time("expires_at", expiresAt),
	)
	return &Credential{Token: token, ExpiresAt: expiresAt}, nil
}
