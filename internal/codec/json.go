package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"pipenet/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return FormatJSON
}

type jsonSnapshot struct {
	Pipelines []jsonPipeline `json:"pipelines"`
	Stations  []jsonStation  `json:"stations"`
}

type jsonPipeline struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Diameter int    `json:"diameter"`
	InRepair bool   `json:"in_repair"`
	Input    *int   `json:"input,omitempty"`
	Output   *int   `json:"output,omitempty"`
}

type jsonStation struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Workshops       int     `json:"workshops"`
	ActiveWorkshops int     `json:"active_workshops"`
	Efficiency      float64 `json:"efficiency"`
}

// Parse imports network data from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Snapshot, error) {
	var js jsonSnapshot
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&js); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	snap := domain.NewSnapshot()
	for _, jp := range js.Pipelines {
		snap.AddPipeline(domain.Pipeline{
			ID:       jp.ID,
			Name:     jp.Name,
			Diameter: jp.Diameter,
			InRepair: jp.InRepair,
			Input:    endpointFromPtr(jp.Input),
			Output:   endpointFromPtr(jp.Output),
		})
	}
	for _, st := range js.Stations {
		snap.AddStation(domain.Station(st))
	}

	return snap, nil
}

// Export exports network data to JSON
func (c *JSONCodec) Export(snap *domain.Snapshot, w io.Writer) error {
	js := jsonSnapshot{
		Pipelines: make([]jsonPipeline, 0, len(snap.Pipelines)),
		Stations:  make([]jsonStation, 0, len(snap.Stations)),
	}
	for _, p := range snap.Pipelines {
		js.Pipelines = append(js.Pipelines, jsonPipeline{
			ID:       p.ID,
			Name:     p.Name,
			Diameter: p.Diameter,
			InRepair: p.InRepair,
			Input:    endpointToPtr(p.Input),
			Output:   endpointToPtr(p.Output),
		})
	}
	for _, st := range snap.Stations {
		js.Stations = append(js.Stations, jsonStation(st))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(js); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

func endpointFromPtr(id *int) domain.Endpoint {
	if id == nil {
		return domain.Unset()
	}
	return domain.At(*id)
}

func endpointToPtr(e domain.Endpoint) *int {
	id, ok := e.StationID()
	if !ok {
		return nil
	}
	return &id
}
