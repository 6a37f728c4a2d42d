// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pokereview/internal/core/entity"
	"github.com/taibuivan/pokereview/internal/platform/store"
)

/*
TestMemoryStore_TableLifecycle walks one table through insert, read, replace
and remove.
*/
func TestMemoryStore_TableLifecycle(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	err := s.Atomic(ctx, func(tx store.Tx) error {
		table := tx.Categories()

		// 1. Identities are assigned in sequence starting at 1
		first, err := table.Insert(ctx, entity.Category{ID: 99, Name: "Electric"})
		require.NoError(t, err)
		second, err := table.Insert(ctx, entity.Category{Name: "Water"})
		require.NoError(t, err)
		assert.Equal(t, 1, first)
		assert.Equal(t, 2, second)

		// 2. Read back
		got, err := table.Get(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, entity.Category{ID: 1, Name: "Electric"}, got)

		exists, err := table.Exists(ctx, 3)
		require.NoError(t, err)
		assert.False(t, exists)

		// 3. Replace
		require.NoError(t, table.Replace(ctx, entity.Category{ID: 2, Name: "Fire"}))
		got, err = table.Get(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Fire", got.Name)
		assert.ErrorIs(t, table.Replace(ctx, entity.Category{ID: 42}), store.ErrNotFound)

		// 4. Remove
		require.NoError(t, table.Remove(ctx, first))
		assert.ErrorIs(t, table.Remove(ctx, first), store.ErrNotFound)
		_, err = table.Get(ctx, first)
		assert.ErrorIs(t, err, store.ErrNotFound)

		all, err := table.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []entity.Category{{ID: 2, Name: "Fire"}}, all)
		return nil
	})
	require.NoError(t, err)
}

/*
TestMemoryStore_InsertionOrder ensures List and Scan preserve insertion order.
*/
func TestMemoryStore_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	require.NoError(t, s.Atomic(ctx, func(tx store.Tx) error {
		for _, name := range []string{"Charlie", "Alpha", "Bravo"} {
			if _, err := tx.Countries().Insert(ctx, entity.Country{Name: name}); err != nil {
				return err
			}
		}
		return nil
	}))

	require.NoError(t, s.Atomic(ctx, func(tx store.Tx) error {
		all, err := tx.Countries().List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "Charlie", all[0].Name)
		assert.Equal(t, "Bravo", all[2].Name)

		matched, err := tx.Countries().Scan(ctx, func(c entity.Country) bool { return c.Name != "Alpha" })
		require.NoError(t, err)
		assert.Equal(t, []entity.Country{{ID: 1, Name: "Charlie"}, {ID: 3, Name: "Bravo"}}, matched)
		return nil
	}))
}

/*
TestMemoryStore_Rollback verifies that a failing unit of work leaves no trace.
*/
func TestMemoryStore_Rollback(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	boom := errors.New("boom")

	err := s.Atomic(ctx, func(tx store.Tx) error {
		id, err := tx.Pokemon().Insert(ctx, entity.Pokemon{Name: "Pikachu"})
		require.NoError(t, err)
		require.NoError(t, tx.PokemonCategories().Link(ctx, id, 1))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	require.NoError(t, s.Atomic(ctx, func(tx store.Tx) error {
		all, err := tx.Pokemon().List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		categories, err := tx.PokemonCategories().Rights(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, categories)

		// The identity sequence is rolled back too
		id, err := tx.Pokemon().Insert(ctx, entity.Pokemon{Name: "Raichu"})
		require.NoError(t, err)
		assert.Equal(t, 1, id)
		return nil
	}))
}

/*
TestMemoryStore_Links covers idempotent linking and both lookup directions.
*/
func TestMemoryStore_Links(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	require.NoError(t, s.Atomic(ctx, func(tx store.Tx) error {
		links := tx.PokemonOwners()

		require.NoError(t, links.Link(ctx, 1, 10))
		require.NoError(t, links.Link(ctx, 1, 10))
		require.NoError(t, links.Link(ctx, 1, 5))
		require.NoError(t, links.Link(ctx, 2, 10))

		rights, err := links.Rights(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, []int{5, 10}, rights)

		lefts, err := links.Lefts(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, lefts)

		require.NoError(t, links.Unlink(ctx, 1, 5))
		require.NoError(t, links.Unlink(ctx, 1, 5))
		rights, err = links.Rights(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, []int{10}, rights)

		require.NoError(t, links.UnlinkRight(ctx, 10))
		lefts, err = links.Lefts(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, lefts)

		require.NoError(t, links.Link(ctx, 3, 7))
		require.NoError(t, links.UnlinkLeft(ctx, 3))
		rights, err = links.Rights(ctx, 3)
		require.NoError(t, err)
		assert.Empty(t, rights)
		return nil
	}))
}

/*
TestMemoryStore_CancelledContext refuses to start work on a dead context.
*/
func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.NewMemoryStore().Atomic(ctx, func(store.Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

/*
TestMemoryStore_ExportImport round-trips the committed state.
*/
func TestMemoryStore_ExportImport(t *testing.T) {
	ctx := context.Background()
	source := store.NewMemoryStore()

	require.NoError(t, source.Atomic(ctx, func(tx store.Tx) error {
		id, err := tx.Reviewers().Insert(ctx, entity.Reviewer{FirstName: "Teddy", LastName: "Smith"})
		require.NoError(t, err)
		return tx.PokemonCategories().Link(ctx, 4, id)
	}))

	target := store.NewMemoryStore()
	target.ImportState(source.ExportState())

	require.NoError(t, target.Atomic(ctx, func(tx store.Tx) error {
		got, err := tx.Reviewers().Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Teddy", got.FirstName)

		rights, err := tx.PokemonCategories().Rights(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, []int{1}, rights)

		// The sequence continues after the imported rows
		next, err := tx.Reviewers().Insert(ctx, entity.Reviewer{FirstName: "Taylor"})
		require.NoError(t, err)
		assert.Equal(t, 2, next)
		return nil
	}))
}

/*
TestValidID pins the identity range shared by every backend.
*/
func TestValidID(t *testing.T) {
	assert.True(t, store.ValidID(1))
	assert.True(t, store.ValidID(store.MaxID))
	assert.False(t, store.ValidID(0))
	assert.False(t, store.ValidID(-3))

	above := store.MaxID
	above++
	assert.False(t, store.ValidID(above))
}
