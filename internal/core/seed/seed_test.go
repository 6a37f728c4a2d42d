// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pokereview/internal/core/seed"
	"github.com/taibuivan/pokereview/internal/platform/store"
)

func TestDemo(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	fixture, err := seed.Demo(ctx, s)
	require.NoError(t, err)
	assert.Len(t, fixture.PokemonIDs, seed.DemoPokemonCount)
	assert.Equal(t, 1, fixture.PokemonIDs[0])
	assert.Len(t, fixture.ReviewerIDs, 3)

	require.NoError(t, s.Atomic(ctx, func(tx store.Tx) error {
		reviews, err := tx.Reviews().List(ctx)
		require.NoError(t, err)
		assert.Len(t, reviews, 3*seed.DemoPokemonCount)

		p, err := tx.Pokemon().Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Pikachu1", p.Name)
		assert.True(t, seed.DemoBirthDate.Equal(p.BirthDate))
		return nil
	}))

	// A second run refuses to duplicate the catalogue
	_, err = seed.Demo(ctx, s)
	assert.ErrorIs(t, err, seed.ErrNotEmpty)
}
