// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/pokereview/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []int{2, 4}, slice.Map([]int{1, 2}, func(v int) int { return v * 2 }))
	assert.NotNil(t, slice.Map[int, int](nil, func(v int) int { return v }))
}

func TestReduce(t *testing.T) {
	assert.Equal(t, 11, slice.Reduce([]int{5, 5, 1}, 0, func(acc, v int) int { return acc + v }))
}

func TestRef(t *testing.T) {
	values := []string{"a", "b"}
	refs := slice.Ref(values)

	*refs[0] = "z"
	assert.Equal(t, "a", values[0], "pointers refer to copies")
	assert.Equal(t, "b", *refs[1])
}
