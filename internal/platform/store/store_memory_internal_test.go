// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pokereview/internal/core/entity"
)

func countingStore() (*MemoryStore, *int) {
	s := NewMemoryStore()
	writes := 0
	s.afterCommit = func(context.Context, Snapshot) error {
		writes++
		return nil
	}
	return s, &writes
}

/*
TestMemoryStore_ReadOnlyUnitsSkipCommit checks that units which only read
never reach the commit hook.
*/
func TestMemoryStore_ReadOnlyUnitsSkipCommit(t *testing.T) {
	ctx := context.Background()
	s, writes := countingStore()

	// 1. One write commits once
	require.NoError(t, s.Atomic(ctx, func(tx Tx) error {
		id, err := tx.Pokemon().Insert(ctx, entity.Pokemon{Name: "Pikachu"})
		if err != nil {
			return err
		}
		return tx.PokemonCategories().Link(ctx, id, 1)
	}))
	assert.Equal(t, 1, *writes)

	// 2. Reads of every kind do not
	for range 5 {
		require.NoError(t, s.Atomic(ctx, func(tx Tx) error {
			if _, err := tx.Pokemon().Exists(ctx, 1); err != nil {
				return err
			}
			if _, err := tx.Pokemon().Get(ctx, 1); err != nil {
				return err
			}
			if _, err := tx.Pokemon().List(ctx); err != nil {
				return err
			}
			_, err := tx.PokemonCategories().Rights(ctx, 1)
			return err
		}))
	}
	assert.Equal(t, 1, *writes)

	// 3. Misses on Replace and Remove leave the unit clean
	require.NoError(t, s.Atomic(ctx, func(tx Tx) error {
		assert.ErrorIs(t, tx.Pokemon().Replace(ctx, entity.Pokemon{ID: 42}), ErrNotFound)
		assert.ErrorIs(t, tx.Pokemon().Remove(ctx, 42), ErrNotFound)
		return nil
	}))
	assert.Equal(t, 1, *writes)
}

/*
TestMemoryStore_WriteAfterReadSeesOwnChanges covers the switch from the live
state to the working copy inside one unit.
*/
func TestMemoryStore_WriteAfterReadSeesOwnChanges(t *testing.T) {
	ctx := context.Background()
	s, writes := countingStore()

	err := s.Atomic(ctx, func(tx Tx) error {
		table := tx.Categories()

		exists, err := table.Exists(ctx, 1)
		require.NoError(t, err)
		assert.False(t, exists)

		id, err := table.Insert(ctx, entity.Category{Name: "Electric"})
		require.NoError(t, err)

		// The handle obtained before the write reads the working copy now
		got, err := table.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Electric", got.Name)

		// The live state is untouched until commit
		assert.Empty(t, s.state.categories.rows)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, *writes)
	assert.Len(t, s.state.categories.rows, 1)
}
