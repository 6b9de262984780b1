// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/libris/pkg/slice"
)

func TestMap(t *testing.T) {
	ids := slice.Map([]int{7, 3, 11}, strconv.Itoa)
	assert.Equal(t, []string{"7", "3", "11"}, ids)

	assert.Nil(t, slice.Map[int, string](nil, strconv.Itoa))
	assert.Equal(t, []string{}, slice.Map([]int{}, strconv.Itoa))
}
