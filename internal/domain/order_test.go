package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stations(ids ...int) []Station {
	out := make([]Station, 0, len(ids))
	for _, id := range ids {
		out = append(out, Station{ID: id, Name: string(rune('A' + id - 1))})
	}
	return out
}

func connected(id, diameter, in, out int) Pipeline {
	p := NewPipeline("", id, diameter, false)
	p.SetStations(in, out, diameter)
	return *p
}

// recursiveOrder is the straightforward recursive traversal the iterative
// implementation must agree with.
func recursiveOrder(sts []Station, adj Adjacency) []int {
	visited := make(map[int]bool)
	var order []int
	var visit func(id int)
	visit = func(id int) {
		visited[id] = true
		for _, n := range adj[id] {
			if !visited[n] {
				visit(n)
			}
		}
		order = append(order, id)
	}
	for _, st := range sts {
		if !visited[st.ID] {
			visit(st.ID)
		}
	}
	return order
}

func indexOf(order []int, id int) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return -1
}

func TestTopologicalOrder(t *testing.T) {
	t.Run("chain emits downstream stations first", func(t *testing.T) {
		pipes := []Pipeline{connected(1, 10, 1, 2), connected(2, 12, 2, 3)}

		order := TopologicalOrder(stations(1, 2, 3), BuildAdjacency(pipes))

		assert.Equal(t, []int{3, 2, 1}, order)
	})

	t.Run("no pipelines keeps collection order", func(t *testing.T) {
		order := TopologicalOrder(stations(1, 2), BuildAdjacency(nil))

		assert.Equal(t, []int{1, 2}, order)
	})

	t.Run("empty store", func(t *testing.T) {
		order := TopologicalOrder(nil, BuildAdjacency(nil))

		assert.Empty(t, order)
	})

	t.Run("dangling id is emitted before its source", func(t *testing.T) {
		adj := Adjacency{1: {99}}

		order := TopologicalOrder(stations(1), adj)

		assert.Equal(t, []int{99, 1}, order)
	})

	t.Run("unset endpoints are an ordinary node", func(t *testing.T) {
		half := NewPipeline("half", 1, 10, false)
		half.Input = At(1)
		pipes := []Pipeline{*half, *NewPipeline("loose", 2, 20, false)}

		adj := BuildAdjacency(pipes)
		order := TopologicalOrder(stations(1, 2), adj)

		assert.Equal(t, []int{UnsetStationID, 1, 2}, order)
	})

	t.Run("unset-only pipeline does not seed traversal", func(t *testing.T) {
		pipes := []Pipeline{*NewPipeline("loose", 1, 20, false)}

		order := TopologicalOrder(stations(1), BuildAdjacency(pipes))

		assert.Equal(t, []int{1}, order)
	})

	t.Run("cycle terminates", func(t *testing.T) {
		pipes := []Pipeline{
			connected(1, 10, 1, 2),
			connected(2, 10, 2, 3),
			connected(3, 10, 3, 1),
		}

		order := TopologicalOrder(stations(1, 2, 3), BuildAdjacency(pipes))

		assert.ElementsMatch(t, []int{1, 2, 3}, order)
		assert.Equal(t, []int{3, 2, 1}, order)
	})

	t.Run("duplicate edges do not duplicate ids", func(t *testing.T) {
		pipes := []Pipeline{connected(1, 10, 1, 2), connected(2, 11, 1, 2)}

		order := TopologicalOrder(stations(1, 2), BuildAdjacency(pipes))

		assert.Equal(t, []int{2, 1}, order)
	})

	t.Run("station reached earlier is not revisited", func(t *testing.T) {
		pipes := []Pipeline{connected(1, 10, 2, 1), connected(2, 10, 3, 1)}

		order := TopologicalOrder(stations(1, 2, 3), BuildAdjacency(pipes))

		assert.Equal(t, []int{1, 2, 3}, order)
	})

	t.Run("deep chain does not overflow", func(t *testing.T) {
		const n = 200000
		sts := make([]Station, 0, n)
		pipes := make([]Pipeline, 0, n-1)
		for i := 1; i <= n; i++ {
			sts = append(sts, Station{ID: i})
			if i < n {
				pipes = append(pipes, connected(i, 10, i, i+1))
			}
		}

		order := TopologicalOrder(sts, BuildAdjacency(pipes))

		require.Len(t, order, n)
		assert.Equal(t, n, order[0])
		assert.Equal(t, 1, order[n-1])
	})
}

func TestTopologicalOrderIdempotent(t *testing.T) {
	sts := stations(1, 2, 3, 4)
	pipes := []Pipeline{connected(1, 10, 4, 2), connected(2, 10, 2, 1), connected(3, 10, 3, 1)}

	first := TopologicalOrder(sts, BuildAdjacency(pipes))
	second := TopologicalOrder(sts, BuildAdjacency(pipes))

	assert.Equal(t, first, second)
}

func TestTopologicalOrderMatchesRecursive(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		n := 1 + rng.Intn(8)
		ids := rng.Perm(n)
		sts := make([]Station, 0, n)
		for _, id := range ids {
			sts = append(sts, Station{ID: id + 1})
		}

		var pipes []Pipeline
		for e := rng.Intn(n * 2); e > 0; e-- {
			in, out := 1+rng.Intn(n+1), 1+rng.Intn(n+1)
			pipes = append(pipes, connected(len(pipes)+1, 10, in, out))
		}

		adj := BuildAdjacency(pipes)
		assert.Equal(t, recursiveOrder(sts, adj), TopologicalOrder(sts, adj), "round %d", round)
	}
}

func TestTopologicalOrderRespectsEdges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		n := 2 + rng.Intn(8)
		sts := make([]Station, 0, n)
		for _, id := range rng.Perm(n) {
			sts = append(sts, Station{ID: id + 1})
		}

		// Edges only go from a lower to a higher id, so the graph is acyclic.
		var pipes []Pipeline
		for e := rng.Intn(n * 2); e > 0; e-- {
			a, b := 1+rng.Intn(n), 1+rng.Intn(n)
			if a == b {
				continue
			}
			if a > b {
				a, b = b, a
			}
			pipes = append(pipes, connected(len(pipes)+1, 10, a, b))
		}

		order := TopologicalOrder(sts, BuildAdjacency(pipes))
		require.Len(t, order, n)
		for _, p := range pipes {
			in, _ := p.Input.StationID()
			out, _ := p.Output.StationID()
			assert.Less(t, indexOf(order, out), indexOf(order, in), "round %d edge %d->%d", round, in, out)
		}
	}
}

func TestOrderedStations(t *testing.T) {
	t.Run("skips ids without a station", func(t *testing.T) {
		sts := stations(1, 2)

		got := OrderedStations(sts, []int{99, 2, UnsetStationID, 1})

		require.Len(t, got, 2)
		assert.Equal(t, 2, got[0].ID)
		assert.Equal(t, 1, got[1].ID)
	})

	t.Run("first station with an id wins", func(t *testing.T) {
		sts := []Station{{ID: 1, Name: "first"}, {ID: 1, Name: "second"}}

		got := OrderedStations(sts, []int{1})

		require.Len(t, got, 1)
		assert.Equal(t, "first", got[0].Name)
	})
}
