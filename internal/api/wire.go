// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"log/slog"

	"github.com/taibuivan/pokereview/internal/auth"
	"github.com/taibuivan/pokereview/internal/core/category"
	"github.com/taibuivan/pokereview/internal/core/country"
	"github.com/taibuivan/pokereview/internal/core/owner"
	"github.com/taibuivan/pokereview/internal/core/pokemon"
	"github.com/taibuivan/pokereview/internal/core/rating"
	"github.com/taibuivan/pokereview/internal/core/relation"
	"github.com/taibuivan/pokereview/internal/core/review"
	"github.com/taibuivan/pokereview/internal/core/reviewer"
	"github.com/taibuivan/pokereview/internal/platform/store"
)

// NewHandlers builds every facade over s and wraps each in its handler.
//
// The health probes check s itself; storeName labels that check.
func NewHandlers(s store.Store, storeName string, issuer auth.TokenIssuer, logger *slog.Logger) Handlers {
	resolver := relation.NewResolver()
	calculator := rating.NewCalculator()

	liveness, readiness := NewHealthHandlers(HealthDependencies{
		StoreName:  storeName,
		CheckStore: s.Ping,
	}, logger)

	return Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(auth.NewService(s, issuer, logger)),
		Pokemon:   pokemon.NewHandler(pokemon.NewService(s, resolver, calculator, logger)),
		Category:  category.NewHandler(category.NewService(s, resolver, logger)),
		Owner:     owner.NewHandler(owner.NewService(s, resolver, logger)),
		Country:   country.NewHandler(country.NewService(s, logger)),
		Review:    review.NewHandler(review.NewService(s, resolver, logger)),
		Reviewer:  reviewer.NewHandler(reviewer.NewService(s, logger)),
	}
}
