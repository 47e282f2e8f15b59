package domain

// Adjacency maps a station id to the ids reachable through one outgoing
// pipeline, in pipeline collection order.
type Adjacency map[int][]int

// BuildAdjacency derives the directed station graph from the pipelines.
//
// Every pipeline contributes the edge input -> output, duplicates included.
// Unset endpoints are keyed by UnsetStationID and behave like any other node.
func BuildAdjacency(pipelines []Pipeline) Adjacency {
	adj := make(Adjacency)
	for _, p := range pipelines {
		from, to := p.Input.Key(), p.Output.Key()
		adj[from] = append(adj[from], to)
	}
	return adj
}

// Neighbors returns the downstream ids of a station, or nil.
func (a Adjacency) Neighbors(id int) []int {
	return a[id]
}

// EdgeCount returns the total number of edges, duplicates included.
func (a Adjacency) EdgeCount() int {
	n := 0
	for _, out := range a {
		n += len(out)
	}
	return n
}
