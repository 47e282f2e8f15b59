package service

import (
	"context"
	"fmt"
	"log/slog"

	"pipenet/internal/domain"
	"pipenet/internal/registry"
	"pipenet/internal/repository"
)

// NetworkService provides business logic for the pipeline network
type NetworkService struct {
	reg      *registry.Registry
	repo     repository.Repository
	eventBus *EventBus
	logger   *slog.Logger
}

// NewNetworkService creates a new network service over an empty registry
func NewNetworkService(repo repository.Repository, eventBus *EventBus, logger *slog.Logger) *NetworkService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NetworkService{
		reg:      registry.New(),
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Stations returns all stations in insertion order
func (s *NetworkService) Stations() []domain.Station {
	return s.reg.Stations()
}

// Pipelines returns all pipelines in insertion order
func (s *NetworkService) Pipelines() []domain.Pipeline {
	return s.reg.Pipelines()
}

// Station retrieves a single station by ID
func (s *NetworkService) Station(id int) (domain.Station, error) {
	st, ok := s.reg.Station(id)
	if !ok {
		return domain.Station{}, fmt.Errorf("station %d: %w", id, domain.ErrNotFound)
	}
	return st, nil
}

// HasStation reports whether a station exists
func (s *NetworkService) HasStation(id int) bool {
	return s.reg.HasStation(id)
}

// HasPipeline reports whether a pipeline exists
func (s *NetworkService) HasPipeline(id int) bool {
	_, ok := s.reg.Pipeline(id)
	return ok
}

// NextStationID suggests an unused station id
func (s *NetworkService) NextStationID() int {
	return s.reg.NextStationID()
}

// NextPipelineID suggests an unused pipeline id
func (s *NetworkService) NextPipelineID() int {
	return s.reg.NextPipelineID()
}

// AddStation creates a new station
func (s *NetworkService) AddStation(st domain.Station) error {
	if err := s.reg.AddStation(st); err != nil {
		return fmt.Errorf("add station: %w", err)
	}

	s.publish(EventStationCreated, map[string]any{"station_id": st.ID, "name": st.Name})
	return nil
}

// AddPipeline creates a new pipeline
func (s *NetworkService) AddPipeline(p domain.Pipeline) error {
	if err := s.reg.AddPipeline(p); err != nil {
		return fmt.Errorf("add pipeline: %w", err)
	}

	s.publish(EventPipelineCreated, map[string]any{"pipeline_id": p.ID, "diameter": p.Diameter})
	return nil
}

// EditStations applies fn to each listed station. Unknown ids are skipped
// and reported in the returned slice; the first failing edit aborts.
func (s *NetworkService) EditStations(ids []int, fn func(*domain.Station) error) (missing []int, err error) {
	for _, id := range ids {
		if !s.reg.HasStation(id) {
			missing = append(missing, id)
			continue
		}
		if err := s.reg.EditStation(id, fn); err != nil {
			return missing, fmt.Errorf("edit station %d: %w", id, err)
		}
		s.publish(EventStationUpdated, map[string]any{"station_id": id})
	}
	return missing, nil
}

// EditPipelines applies fn to each listed pipeline. Unknown ids are skipped
// and reported in the returned slice; the first failing edit aborts.
func (s *NetworkService) EditPipelines(ids []int, fn func(*domain.Pipeline) error) (missing []int, err error) {
	for _, id := range ids {
		if _, ok := s.reg.Pipeline(id); !ok {
			missing = append(missing, id)
			continue
		}
		if err := s.reg.EditPipeline(id, fn); err != nil {
			return missing, fmt.Errorf("edit pipeline %d: %w", id, err)
		}
		s.publish(EventPipelineUpdated, map[string]any{"pipeline_id": id})
	}
	return missing, nil
}

// Connect links two stations, reusing the first pipeline of the requested
// diameter or creating an unbound one through fill
func (s *NetworkService) Connect(inputID, outputID, diameter int, fill registry.PipelineFiller) (registry.Connection, error) {
	conn, err := s.reg.Connect(inputID, outputID, diameter, fill)
	if err != nil {
		return conn, fmt.Errorf("connect %d -> %d: %w", inputID, outputID, err)
	}

	if conn.Reused {
		s.publish(EventStationsLinked, map[string]any{
			"pipeline_id": conn.PipelineID,
			"input":       inputID,
			"output":      outputID,
			"diameter":    diameter,
		})
	} else {
		s.publish(EventPipelineCreated, map[string]any{"pipeline_id": conn.PipelineID, "diameter": diameter})
	}
	return conn, nil
}

// FilterByName returns pipelines and stations whose name contains substr
func (s *NetworkService) FilterByName(substr string) ([]domain.Pipeline, []domain.Station) {
	return s.reg.FilterPipelinesByName(substr), s.reg.FilterStationsByName(substr)
}

// PipelinesInRepair returns pipelines whose repair flag equals inRepair
func (s *NetworkService) PipelinesInRepair(inRepair bool) []domain.Pipeline {
	return s.reg.FilterPipelinesByRepair(inRepair)
}

// Order returns station ids in topological order, rebuilt from the current pipelines
func (s *NetworkService) Order() []int {
	return s.reg.Order()
}

// OrderedStations returns the stations in topological order
func (s *NetworkService) OrderedStations() []domain.Station {
	return s.reg.OrderedStations()
}

// Save persists the whole network
func (s *NetworkService) Save(ctx context.Context) error {
	snap := s.reg.Snapshot()
	if err := s.repo.Save(ctx, snap); err != nil {
		return fmt.Errorf("save network: %w", err)
	}

	s.publish(EventNetworkSaved, map[string]any{
		"stations":  len(snap.Stations),
		"pipelines": len(snap.Pipelines),
	})
	return nil
}

// Load clears the registry and replaces it with the stored network.
// On error the registry is left untouched.
func (s *NetworkService) Load(ctx context.Context) error {
	snap, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load network: %w", err)
	}

	s.reg.Replace(snap)
	if dangling := danglingEndpoints(snap); dangling > 0 {
		s.logger.Warn("loaded pipelines reference unknown stations", "count", dangling)
	}

	s.publish(EventNetworkLoaded, map[string]any{
		"stations":  len(snap.Stations),
		"pipelines": len(snap.Pipelines),
	})
	return nil
}

// Snapshot returns a copy of the current network
func (s *NetworkService) Snapshot() *domain.Snapshot {
	return s.reg.Snapshot()
}

func (s *NetworkService) publish(t EventType, payload map[string]any) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(Event{Type: t, Payload: payload})
}

// danglingEndpoints counts bound endpoints that reference no loaded station
func danglingEndpoints(snap *domain.Snapshot) int {
	known := make(map[int]bool, len(snap.Stations))
	for _, st := range snap.Stations {
		known[st.ID] = true
	}

	n := 0
	for _, p := range snap.Pipelines {
		for _, e := range []domain.Endpoint{p.Input, p.Output} {
			if id, ok := e.StationID(); ok && !known[id] {
				n++
			}
		}
	}
	return n
}
