// Package registry holds the in-memory record store of stations and
// pipelines and the connection planner that binds stations through pipelines.
//
// A Registry keeps records in insertion order; every lookup that can match
// several records returns the first one in that order. It is not safe for
// concurrent use.
package registry

import (
	"fmt"
	"strconv"
	"strings"

	"pipenet/internal/domain"
)

// Registry is the ordered record store.
type Registry struct {
	stations  []domain.Station
	pipelines []domain.Pipeline
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		stations:  make([]domain.Station, 0),
		pipelines: make([]domain.Pipeline, 0),
	}
}

// Stations returns a copy of the stations in insertion order.
func (r *Registry) Stations() []domain.Station {
	out := make([]domain.Station, len(r.stations))
	copy(out, r.stations)
	return out
}

// Pipelines returns a copy of the pipelines in insertion order.
func (r *Registry) Pipelines() []domain.Pipeline {
	out := make([]domain.Pipeline, len(r.pipelines))
	copy(out, r.pipelines)
	return out
}

// StationCount returns the number of stations.
func (r *Registry) StationCount() int { return len(r.stations) }

// PipelineCount returns the number of pipelines.
func (r *Registry) PipelineCount() int { return len(r.pipelines) }

// AddStation validates and appends a station.
func (r *Registry) AddStation(s domain.Station) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if r.stationIndex(s.ID) >= 0 {
		return domain.NewValidationError("id", strconv.Itoa(s.ID), domain.ErrDuplicateID)
	}
	r.stations = append(r.stations, s)
	return nil
}

// AddPipeline validates and appends a pipeline.
func (r *Registry) AddPipeline(p domain.Pipeline) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if r.pipelineIndex(p.ID) >= 0 {
		return domain.NewValidationError("id", strconv.Itoa(p.ID), domain.ErrDuplicateID)
	}
	r.pipelines = append(r.pipelines, p)
	return nil
}

// Station returns the first station with the given id.
func (r *Registry) Station(id int) (domain.Station, bool) {
	if i := r.stationIndex(id); i >= 0 {
		return r.stations[i], true
	}
	return domain.Station{}, false
}

// Pipeline returns the first pipeline with the given id.
func (r *Registry) Pipeline(id int) (domain.Pipeline, bool) {
	if i := r.pipelineIndex(id); i >= 0 {
		return r.pipelines[i], true
	}
	return domain.Pipeline{}, false
}

// HasStation reports whether a station with the given id exists.
func (r *Registry) HasStation(id int) bool {
	return r.stationIndex(id) >= 0
}

// PipelineByDiameter returns the first pipeline with exactly the given diameter.
func (r *Registry) PipelineByDiameter(d int) (domain.Pipeline, bool) {
	if i := r.diameterIndex(d); i >= 0 {
		return r.pipelines[i], true
	}
	return domain.Pipeline{}, false
}

// EditStation applies fn to the station with the given id. The change is
// kept only if the changed fields validate and the id is unchanged.
func (r *Registry) EditStation(id int, fn func(*domain.Station) error) error {
	i := r.stationIndex(id)
	if i < 0 {
		return fmt.Errorf("station %d: %w", id, domain.ErrNotFound)
	}
	edited := r.stations[i]
	if err := fn(&edited); err != nil {
		return err
	}
	if edited.ID != id {
		return domain.NewValidationError("id", strconv.Itoa(edited.ID), domain.ErrInvalidID)
	}
	if err := edited.ValidateChange(r.stations[i]); err != nil {
		return err
	}
	r.stations[i] = edited
	return nil
}

// EditPipeline applies fn to the pipeline with the given id. The change is
// kept only if the changed fields validate and the id is unchanged.
func (r *Registry) EditPipeline(id int, fn func(*domain.Pipeline) error) error {
	i := r.pipelineIndex(id)
	if i < 0 {
		return fmt.Errorf("pipeline %d: %w", id, domain.ErrNotFound)
	}
	edited := r.pipelines[i]
	if err := fn(&edited); err != nil {
		return err
	}
	if edited.ID != id {
		return domain.NewValidationError("id", strconv.Itoa(edited.ID), domain.ErrInvalidID)
	}
	if err := edited.ValidateChange(r.pipelines[i]); err != nil {
		return err
	}
	r.pipelines[i] = edited
	return nil
}

// FilterStationsByName returns stations whose name contains substr.
func (r *Registry) FilterStationsByName(substr string) []domain.Station {
	var out []domain.Station
	for _, s := range r.stations {
		if strings.Contains(s.Name, substr) {
			out = append(out, s)
		}
	}
	return out
}

// FilterPipelinesByName returns pipelines whose name contains substr.
func (r *Registry) FilterPipelinesByName(substr string) []domain.Pipeline {
	var out []domain.Pipeline
	for _, p := range r.pipelines {
		if strings.Contains(p.Name, substr) {
			out = append(out, p)
		}
	}
	return out
}

// FilterPipelinesByRepair returns pipelines whose repair flag equals inRepair.
func (r *Registry) FilterPipelinesByRepair(inRepair bool) []domain.Pipeline {
	var out []domain.Pipeline
	for _, p := range r.pipelines {
		if p.InRepair == inRepair {
			out = append(out, p)
		}
	}
	return out
}

// NextStationID returns one more than the highest station id.
func (r *Registry) NextStationID() int {
	next := 1
	for _, s := range r.stations {
		if s.ID >= next {
			next = s.ID + 1
		}
	}
	return next
}

// NextPipelineID returns one more than the highest pipeline id.
func (r *Registry) NextPipelineID() int {
	next := 1
	for _, p := range r.pipelines {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}

// Snapshot copies the current content of the registry.
func (r *Registry) Snapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Stations:  r.Stations(),
		Pipelines: r.Pipelines(),
	}
}

// Replace clears the registry and loads the snapshot as is. Records are not
// re-validated and endpoints are not checked against the loaded stations.
func (r *Registry) Replace(snap *domain.Snapshot) {
	r.stations = make([]domain.Station, 0, len(snap.Stations))
	r.pipelines = make([]domain.Pipeline, 0, len(snap.Pipelines))
	r.stations = append(r.stations, snap.Stations...)
	r.pipelines = append(r.pipelines, snap.Pipelines...)
}

func (r *Registry) stationIndex(id int) int {
	for i := range r.stations {
		if r.stations[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) pipelineIndex(id int) int {
	for i := range r.pipelines {
		if r.pipelines[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) diameterIndex(d int) int {
	for i := range r.pipelines {
		if r.pipelines[i].HasDiameter(d) {
			return i
		}
	}
	return -1
}
