// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pokereview/pkg/query"
)

func TestPositiveInt(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"7", 7, false},
		{" 12 ", 12, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"2147483647", 2147483647, false},
		{"2147483648", 0, true},
		{"9999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := query.PositiveInt(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionalInt(t *testing.T) {
	got, err := query.OptionalInt("")
	require.NoError(t, err)
	assert.Zero(t, got)

	got, err = query.OptionalInt("3")
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	_, err = query.OptionalInt("x")
	assert.Error(t, err)
}

func TestIntSlice(t *testing.T) {
	got, err := query.IntSlice([]string{"1,2", "5", ""})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 5}, got)

	got, err = query.IntSlice(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = query.IntSlice([]string{"1,zero"})
	assert.Error(t, err)
}
