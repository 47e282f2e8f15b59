package sqlite

import (
	"database/sql"

	"pipenet/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// endpointToNull stores an unset endpoint as NULL
func endpointToNull(e domain.Endpoint) sql.NullInt64 {
	id, ok := e.StationID()
	if !ok {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(id), Valid: true}
}

// nullToEndpoint reads a nullable station reference
func nullToEndpoint(ni sql.NullInt64) domain.Endpoint {
	if !ni.Valid {
		return domain.Unset()
	}
	return domain.At(int(ni.Int64))
}

// boolToInt converts bool to the 0/1 integer SQLite stores
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ============================================================================
// Schema Evolution Guide
// ============================================================================
//
// To add a new column to a table:
// 1. Add field to the row struct (below)
// 2. Update scanArgs() - APPEND to end to match column order
// 3. Update the columns constant - APPEND to end
// 4. Update toDomain() and the insert args function
// 5. Add the column to migrate() in sqlite.go
//
// CRITICAL: Column order must match between the columns constant,
// scanArgs() and the insert args function.

// ============================================================================
// Station Row Scanner
// ============================================================================

const stationColumns = `position, id, name, workshops, active_workshops, efficiency`

// stationRow holds all columns from a station query for scanning
type stationRow struct {
	Position        int
	ID              int
	Name            string
	Workshops       int
	ActiveWorkshops int
	Efficiency      float64
}

// scanArgs returns pointers to all fields for sql.Rows.Scan
func (r *stationRow) scanArgs() []any {
	return []any{
		&r.Position,
		&r.ID,
		&r.Name,
		&r.Workshops,
		&r.ActiveWorkshops,
		&r.Efficiency,
	}
}

// toDomain converts the row to a domain.Station
func (r *stationRow) toDomain() domain.Station {
	return domain.Station{
		ID:              r.ID,
		Name:            r.Name,
		Workshops:       r.Workshops,
		ActiveWorkshops: r.ActiveWorkshops,
		Efficiency:      r.Efficiency,
	}
}

// stationInsertArgs returns the values for an INSERT over stationColumns
func stationInsertArgs(position int, s domain.Station) []any {
	return []any{position, s.ID, s.Name, s.Workshops, s.ActiveWorkshops, s.Efficiency}
}

// ============================================================================
// Pipeline Row Scanner
// ============================================================================

const pipelineColumns = `position, id, name, diameter, in_repair, input_station, output_station`

// pipelineRow holds all columns from a pipeline query for scanning
type pipelineRow struct {
	Position int
	ID       int
	Name     string
	Diameter int
	InRepair bool
	Input    sql.NullInt64
	Output   sql.NullInt64
}

// scanArgs returns pointers to all fields for sql.Rows.Scan
func (r *pipelineRow) scanArgs() []any {
	return []any{
		&r.Position,
		&r.ID,
		&r.Name,
		&r.Diameter,
		&r.InRepair,
		&r.Input,
		&r.Output,
	}
}

// toDomain converts the row to a domain.Pipeline
func (r *pipelineRow) toDomain() domain.Pipeline {
	return domain.Pipeline{
		ID:       r.ID,
		Name:     r.Name,
		Diameter: r.Diameter,
		InRepair: r.InRepair,
		Input:    nullToEndpoint(r.Input),
		Output:   nullToEndpoint(r.Output),
	}
}

// pipelineInsertArgs returns the values for an INSERT over pipelineColumns
func pipelineInsertArgs(position int, p domain.Pipeline) []any {
	return []any{
		position,
		p.ID,
		p.Name,
		p.Diameter,
		boolToInt(p.InRepair),
		endpointToNull(p.Input),
		endpointToNull(p.Output),
	}
}
