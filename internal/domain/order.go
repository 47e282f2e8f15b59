package domain

// TopologicalOrder returns station ids in depth-first finish order.
//
// Stations seed the traversal in collection order. Neighbours are walked in
// adjacency order and a node is emitted once all of its neighbours are done,
// so for every edge i -> o of an acyclic graph, o comes before i. Ids that
// only appear as neighbours (dangling ids, UnsetStationID) are emitted when
// reached. A cycle does not stop the traversal, but the order inside the
// cycle is not a valid topological order.
//
// The walk uses an explicit stack, so deep chains cannot exhaust the call stack.
func TopologicalOrder(stations []Station, adj Adjacency) []int {
	type frame struct {
		id   int
		next int
	}

	visited := make(map[int]bool, len(stations))
	order := make([]int, 0, len(stations))
	var stack []frame

	for _, st := range stations {
		if visited[st.ID] {
			continue
		}
		visited[st.ID] = true
		stack = append(stack[:0], frame{id: st.ID})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			neighbors := adj[top.id]
			if top.next < len(neighbors) {
				n := neighbors[top.next]
				top.next++
				if !visited[n] {
					visited[n] = true
					stack = append(stack, frame{id: n})
				}
				continue
			}
			order = append(order, top.id)
			stack = stack[:len(stack)-1]
		}
	}

	return order
}

// OrderedStations resolves an id order to station records.
// Ids without a matching station are skipped.
func OrderedStations(stations []Station, order []int) []Station {
	byID := make(map[int]int, len(stations))
	for i := len(stations) - 1; i >= 0; i-- {
		byID[stations[i].ID] = i
	}

	out := make([]Station, 0, len(order))
	for _, id := range order {
		if i, ok := byID[id]; ok {
			out = append(out, stations[i])
		}
	}
	return out
}
