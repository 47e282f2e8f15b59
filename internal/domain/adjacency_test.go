package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAdjacency(t *testing.T) {
	t.Run("empty pipelines give empty graph", func(t *testing.T) {
		adj := BuildAdjacency(nil)

		assert.NotNil(t, adj)
		assert.Empty(t, adj)
		assert.Zero(t, adj.EdgeCount())
	})

	t.Run("one edge per pipeline in collection order", func(t *testing.T) {
		pipes := []Pipeline{
			connected(1, 10, 1, 2),
			connected(2, 10, 1, 3),
			connected(3, 10, 2, 3),
		}

		adj := BuildAdjacency(pipes)

		assert.Equal(t, []int{2, 3}, adj.Neighbors(1))
		assert.Equal(t, []int{3}, adj.Neighbors(2))
		assert.Nil(t, adj.Neighbors(3))
		assert.Equal(t, 3, adj.EdgeCount())
	})

	t.Run("parallel pipelines keep duplicate edges", func(t *testing.T) {
		pipes := []Pipeline{connected(1, 10, 1, 2), connected(2, 20, 1, 2)}

		adj := BuildAdjacency(pipes)

		assert.Equal(t, []int{2, 2}, adj.Neighbors(1))
	})

	t.Run("unset endpoints use the unset key", func(t *testing.T) {
		pipes := []Pipeline{*NewPipeline("new", 1, 10, false)}

		adj := BuildAdjacency(pipes)

		assert.Equal(t, []int{UnsetStationID}, adj.Neighbors(UnsetStationID))
	})
}
