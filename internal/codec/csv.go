package codec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"pipenet/internal/domain"
)

// Record kinds in the first CSV column.
const (
	kindPipeline = "pipeline"
	kindStation  = "station"
)

const csvHeader = "pipenet flat file: pipeline,id,name,diameter,in_repair,input,output | station,id,name,workshops,active_workshops,efficiency"

// CSVCodec handles the flat-file format: one record per line, the first field
// naming the record kind. Unset endpoints are written as -1.
type CSVCodec struct{}

// NewCSVCodec creates a new CSV codec
func NewCSVCodec() *CSVCodec {
	return &CSVCodec{}
}

// Format returns the codec format identifier
func (c *CSVCodec) Format() string {
	return FormatCSV
}

// Parse imports network data from CSV
func (c *CSVCodec) Parse(r io.Reader) (*domain.Snapshot, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1

	snap := domain.NewSnapshot()
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)

		switch rec[0] {
		case kindPipeline:
			p, err := parsePipelineRecord(rec)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			snap.AddPipeline(p)
		case kindStation:
			s, err := parseStationRecord(rec)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			snap.AddStation(s)
		default:
			return nil, fmt.Errorf("line %d: unknown record kind %q", line, rec[0])
		}
	}

	return snap, nil
}

// Export exports network data to CSV
func (c *CSVCodec) Export(snap *domain.Snapshot, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# %s\n", csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	writer := csv.NewWriter(w)
	for _, p := range snap.Pipelines {
		rec := []string{
			kindPipeline,
			strconv.Itoa(p.ID),
			p.Name,
			strconv.Itoa(p.Diameter),
			strconv.FormatBool(p.InRepair),
			strconv.Itoa(p.Input.Key()),
			strconv.Itoa(p.Output.Key()),
		}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("failed to encode pipeline %d: %w", p.ID, err)
		}
	}
	for _, s := range snap.Stations {
		rec := []string{
			kindStation,
			strconv.Itoa(s.ID),
			s.Name,
			strconv.Itoa(s.Workshops),
			strconv.Itoa(s.ActiveWorkshops),
			strconv.FormatFloat(s.Efficiency, 'f', -1, 64),
		}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("failed to encode station %d: %w", s.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to encode CSV: %w", err)
	}
	return nil
}

func parsePipelineRecord(rec []string) (domain.Pipeline, error) {
	if len(rec) != 7 {
		return domain.Pipeline{}, fmt.Errorf("pipeline record has %d fields, want 7", len(rec))
	}
	ints, err := atoiFields(rec, 1, 3, 5, 6)
	if err != nil {
		return domain.Pipeline{}, err
	}
	inRepair, err := strconv.ParseBool(rec[4])
	if err != nil {
		return domain.Pipeline{}, fmt.Errorf("in_repair: %w", err)
	}
	return domain.Pipeline{
		ID:       ints[0],
		Name:     rec[2],
		Diameter: ints[1],
		InRepair: inRepair,
		Input:    domain.EndpointFromKey(ints[2]),
		Output:   domain.EndpointFromKey(ints[3]),
	}, nil
}

func parseStationRecord(rec []string) (domain.Station, error) {
	if len(rec) != 6 {
		return domain.Station{}, fmt.Errorf("station record has %d fields, want 6", len(rec))
	}
	ints, err := atoiFields(rec, 1, 3, 4)
	if err != nil {
		return domain.Station{}, err
	}
	efficiency, err := strconv.ParseFloat(rec[5], 64)
	if err != nil {
		return domain.Station{}, fmt.Errorf("efficiency: %w", err)
	}
	return domain.Station{
		ID:              ints[0],
		Name:            rec[2],
		Workshops:       ints[1],
		ActiveWorkshops: ints[2],
		Efficiency:      efficiency,
	}, nil
}

func atoiFields(rec []string, idx ...int) ([]int, error) {
	out := make([]int, 0, len(idx))
	for _, i := range idx {
		n, err := strconv.Atoi(rec[i])
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i+1, err)
		}
		out = append(out, n)
	}
	return out, nil
}
