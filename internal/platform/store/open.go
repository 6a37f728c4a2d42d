// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/pokereview/internal/platform/postgres"
)

// Options selects and configures a backend.
type Options struct {
	Driver      string
	DatabaseURL string
	SQLitePath  string
}

// Open constructs the backend named by options.Driver.
//
// PostgreSQL schema migrations are not applied here; the caller runs them
// before serving traffic.
func Open(ctx context.Context, options Options, logger *slog.Logger) (Store, error) {
	switch options.Driver {
	case DriverPostgres:
		pool, err := postgres.NewPool(ctx, options.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(pool), nil

	case DriverSQLite:
		s, err := NewSQLiteStore(ctx, options.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("sqlite store opened", slog.String("path", s.Path()))
		return s, nil

	case DriverMemory:
		logger.Warn("memory store selected, data will not survive a restart")
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("store: unknown driver %q", options.Driver)
	}
}
