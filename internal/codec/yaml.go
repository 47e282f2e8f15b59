package codec

import (
	"fmt"
	"io"

	"pipenet/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return FormatYAML
}

// yamlSnapshot represents the YAML structure for network data
type yamlSnapshot struct {
	Pipelines []yamlPipeline `yaml:"pipelines"`
	Stations  []yamlStation  `yaml:"stations"`
}

type yamlPipeline struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Diameter int    `yaml:"diameter"`
	InRepair bool   `yaml:"in_repair"`
	Input    *int   `yaml:"input,omitempty"`
	Output   *int   `yaml:"output,omitempty"`
}

type yamlStation struct {
	ID              int     `yaml:"id"`
	Name            string  `yaml:"name"`
	Workshops       int     `yaml:"workshops"`
	ActiveWorkshops int     `yaml:"active_workshops"`
	Efficiency      float64 `yaml:"efficiency"`
}

// Parse imports network data from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Snapshot, error) {
	var ys yamlSnapshot
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&ys); err != nil {
		if err == io.EOF {
			return domain.NewSnapshot(), nil
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	snap := domain.NewSnapshot()

	for _, yp := range ys.Pipelines {
		snap.AddPipeline(domain.Pipeline{
			ID:       yp.ID,
			Name:     yp.Name,
			Diameter: yp.Diameter,
			InRepair: yp.InRepair,
			Input:    endpointFromPtr(yp.Input),
			Output:   endpointFromPtr(yp.Output),
		})
	}

	for _, st := range ys.Stations {
		snap.AddStation(domain.Station(st))
	}

	return snap, nil
}

// Export exports network data to YAML
func (c *YAMLCodec) Export(snap *domain.Snapshot, w io.Writer) error {
	ys := yamlSnapshot{
		Pipelines: make([]yamlPipeline, 0, len(snap.Pipelines)),
		Stations:  make([]yamlStation, 0, len(snap.Stations)),
	}

	for _, p := range snap.Pipelines {
		ys.Pipelines = append(ys.Pipelines, yamlPipeline{
			ID:       p.ID,
			Name:     p.Name,
			Diameter: p.Diameter,
			InRepair: p.InRepair,
			Input:    endpointToPtr(p.Input),
			Output:   endpointToPtr(p.Output),
		})
	}

	for _, st := range snap.Stations {
		ys.Stations = append(ys.Stations, yamlStation(st))
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(&ys); err != nil {
		encoder.Close()
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finish YAML stream: %w", err)
	}

	return nil
}
