package registry

import "pipenet/internal/domain"

// Order rebuilds the station graph from the current pipelines and returns
// station ids in topological (downstream first) order.
func (r *Registry) Order() []int {
	return domain.TopologicalOrder(r.stations, domain.BuildAdjacency(r.pipelines))
}

// OrderedStations returns the stations in topological order, skipping ids
// that have no station record.
func (r *Registry) OrderedStations() []domain.Station {
	return domain.OrderedStations(r.stations, r.Order())
}
