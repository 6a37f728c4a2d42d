// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package store is the Entity Store: durable keyed storage for every entity
family plus the two many-to-many join relations.

Architecture:

  - Store: opens units of work via [Store.Atomic]. A unit commits when the
    callback returns nil and rolls back otherwise, so a logical operation that
    touches several rows is never left half-applied.
  - Tx: typed access to every [Table] and [LinkTable] inside one unit of work.
  - Backends: PostgreSQL (pgx), SQLite snapshot and in-memory. All three share
    the same observable semantics and are interchangeable behind [Store].

The store knows nothing about validation or uniqueness; those rules belong to
the service layer. Missing rows are reported with [ErrNotFound].
*/
package store

import (
	"context"
	"errors"
	"math"

	"github.com/taibuivan/pokereview/internal/core/entity"
)

// ErrNotFound is returned when a keyed lookup, replace or remove targets an
// identity that does not exist.
var ErrNotFound = errors.New("store: record not found")

// MaxID is the largest identity any backend can hold (SQL INTEGER).
const MaxID = math.MaxInt32

// ValidID reports whether id lies in the assignable identity range.
// Identities outside it can never name a stored record.
func ValidID(id int) bool {
	return id > 0 && id <= MaxID
}

// # Contracts

// Store is the entry point to persisted state.
type Store interface {
	// Atomic runs fn inside a single transaction.
	//
	// The transaction is committed when fn returns nil and rolled back on any
	// error (including a failed commit). The error from fn is returned as-is.
	Atomic(ctx context.Context, fn func(tx Tx) error) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close()
}

// Tx exposes every table within one unit of work.
//
// A Tx must not be retained after the [Store.Atomic] callback returns.
type Tx interface {
	Pokemon() Table[entity.Pokemon]
	Categories() Table[entity.Category]
	Owners() Table[entity.Owner]
	Countries() Table[entity.Country]
	Reviews() Table[entity.Review]
	Reviewers() Table[entity.Reviewer]

	// PokemonCategories pairs (pokemon id, category id).
	PokemonCategories() LinkTable

	// PokemonOwners pairs (pokemon id, owner id).
	PokemonOwners() LinkTable
}

// Table is keyed storage for one entity family.
type Table[E entity.Record[E]] interface {
	// Get returns the record or [ErrNotFound].
	Get(ctx context.Context, id int) (E, error)

	// Exists reports whether a record with the identity is present.
	Exists(ctx context.Context, id int) (bool, error)

	// List returns every record in insertion order.
	List(ctx context.Context) ([]E, error)

	// Scan returns, in insertion order, every record for which match is true.
	Scan(ctx context.Context, match func(E) bool) ([]E, error)

	// Insert stores the record and returns the assigned identity.
	// Any identity already set on the value is ignored.
	Insert(ctx context.Context, record E) (int, error)

	// Replace overwrites the stored scalar fields. [ErrNotFound] if absent.
	Replace(ctx context.Context, record E) error

	// Remove deletes the record. [ErrNotFound] if absent.
	Remove(ctx context.Context, id int) error
}

// LinkTable is a pure association between two identities.
//
// It has no surrogate key: a pair is either present or not.
type LinkTable interface {
	// Link records the pair. Linking an existing pair is a no-op.
	Link(ctx context.Context, left, right int) error

	// Unlink removes the pair if present.
	Unlink(ctx context.Context, left, right int) error

	// UnlinkLeft removes every pair whose left side equals left.
	UnlinkLeft(ctx context.Context, left int) error

	// UnlinkRight removes every pair whose right side equals right.
	UnlinkRight(ctx context.Context, right int) error

	// Rights lists the right identities paired with left, ascending.
	Rights(ctx context.Context, left int) ([]int, error)

	// Lefts lists the left identities paired with right, ascending.
	Lefts(ctx context.Context, right int) ([]int, error)
}

// # Drivers

// Driver names accepted by [Open].
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// # Helpers

// Query runs fn in its own unit of work and returns its result.
func Query[T any](ctx context.Context, s Store, fn func(tx Tx) (T, error)) (T, error) {
	var result T
	err := s.Atomic(ctx, func(tx Tx) error {
		var err error
		result, err = fn(tx)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// FindFirst returns the first record (insertion order) matching match, or
// nil when none does.
func FindFirst[E entity.Record[E]](ctx context.Context, table Table[E], match func(E) bool) (*E, error) {
	found, err := table.Scan(ctx, match)
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return &found[0], nil
}
