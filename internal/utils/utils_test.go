package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	out := Map([]int{1, 2, 3}, strconv.Itoa)

	require.Equal(t, []string{"1", "2", "3"}, out)
	require.Empty(t, Map([]int{}, strconv.Itoa))
}

func TestFilter(t *testing.T) {
	out := Filter([]int{1, 2, 3, 4}, func(v int) bool { return v%2 == 0 })

	require.Equal(t, []int{2, 4}, out)
	require.Empty(t, Filter([]int{1, 3}, func(v int) bool { return v%2 == 0 }))
}

func TestContains(t *testing.T) {
	require.True(t, Contains([]string{"todo", "done"}, "done"))
	require.False(t, Contains([]string{"todo", "done"}, "archived"))
	require.False(t, Contains(nil, "todo"))
}
