package rtree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func grid(n int) ([]float64, []float64) {
	xs := make([]float64, 0, n*n)
	ys := make([]float64, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			xs = append(xs, float64(i))
			ys = append(ys, float64(j))
		}
	}
	return xs, ys
}

func TestBuildEmpty(t *testing.T) {
	tr := Build(nil, nil)
	assert.True(t, tr.Empty())
	assert.Equal(t, 0, tr.Size())
}

func TestBuildAndSize(t *testing.T) {
	xs, ys := grid(10)
	tr := Build(xs, ys)
	assert.False(t, tr.Empty())
	assert.Equal(t, 100, tr.Size())
}

func TestNearestNeighbor(t *testing.T) {
	xs, ys := grid(10)
	tr := Build(xs, ys)
	pos, d2, ok := tr.NearestNeighbor(5.1, 5.1)
	assert.True(t, ok)
	assert.InDelta(t, xs[pos], 5.0, 1e-9)
	assert.InDelta(t, ys[pos], 5.0, 1e-9)
	assert.InDelta(t, 0.02, d2, 1e-6)
}

func TestNearestNeighborEmptyTree(t *testing.T) {
	tr := New()
	_, _, ok := tr.NearestNeighbor(0, 0)
	assert.False(t, ok)
}

func TestNearestNeighborsWithinSquaredDistance(t *testing.T) {
	xs, ys := grid(10)
	tr := Build(xs, ys)
	results := tr.NearestNeighborsWithinSquaredDistance(5, 5, 1.01)
	// (5,5) plus 4 neighbors at distance 1
	assert.Len(t, results, 5)
}

func TestQueryResultSizeAndAt(t *testing.T) {
	xs, ys := grid(10)
	tr := Build(xs, ys)
	n := tr.QueryResultSize(5, 5, 1.01)
	assert.Equal(t, 5, n)
	first := tr.QueryResultAt(5, 5, 1.01, 0)
	assert.InDelta(t, 5.0, xs[first], 1e-9)
	assert.InDelta(t, 5.0, ys[first], 1e-9)
	assert.Equal(t, -1, tr.QueryResultAt(5, 5, 1.01, 99))
}

func TestInsertGrowsTree(t *testing.T) {
	tr := New()
	for i := 0; i < 50; i++ {
		tr.Insert(float64(i), float64(i), i)
	}
	assert.Equal(t, 50, tr.Size())
	pos, _, ok := tr.NearestNeighbor(25.2, 25.2)
	assert.True(t, ok)
	assert.Equal(t, 25, pos)
}

func TestRemoveByPosition(t *testing.T) {
	xs, ys := grid(5)
	tr := Build(xs, ys)
	found := false
	for i := range xs {
		if xs[i] == 2 && ys[i] == 2 {
			found = true
			assert.True(t, tr.RemoveByPosition(i))
			break
		}
	}
	assert.True(t, found)
	assert.Equal(t, 24, tr.Size())

	pos, d2, ok := tr.NearestNeighbor(2, 2)
	assert.True(t, ok)
	assert.False(t, xs[pos] == 2 && ys[pos] == 2)
	assert.Greater(t, d2, 0.0)
}

func TestRemoveByPositionNotFound(t *testing.T) {
	tr := Build(grid(3))
	assert.False(t, tr.RemoveByPosition(999))
}

func TestRemoveAllLeavesEmptyTree(t *testing.T) {
	tr := New()
	tr.Insert(0, 0, 0)
	assert.True(t, tr.RemoveByPosition(0))
	assert.True(t, tr.Empty())
}

func TestBoxSquaredDistanceTo(t *testing.T) {
	b := Box{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	assert.Equal(t, 0.0, b.squaredDistanceTo(0.5, 0.5))
	assert.InDelta(t, 1.0, b.squaredDistanceTo(2, 0.5), 1e-9)
	assert.InDelta(t, math.Sqrt(2)*math.Sqrt(2), b.squaredDistanceTo(2, 2), 1e-9)
}

func TestLargeBulkLoadConsistency(t *testing.T) {
	xs, ys := grid(30) // 900 points, exercises multi-level bulk load
	tr := Build(xs, ys)
	assert.Equal(t, 900, tr.Size())
	for i := 0; i < len(xs); i += 137 {
		pos, d2, ok := tr.NearestNeighbor(xs[i], ys[i])
		assert.True(t, ok)
		assert.Equal(t, 0.0, d2)
		assert.Equal(t, i, pos)
	}
}
