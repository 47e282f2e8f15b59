package domain

import (
	"fmt"
	"strconv"
)

// Pipeline is a transport segment between two compressor stations.
type Pipeline struct {
	ID       int
	Name     string
	Diameter int
	InRepair bool
	Input    Endpoint
	Output   Endpoint
}

// NewPipeline creates a pipeline with both endpoints unset.
func NewPipeline(name string, id, diameter int, inRepair bool) *Pipeline {
	return &Pipeline{
		ID:       id,
		Name:     name,
		Diameter: diameter,
		InRepair: inRepair,
		Input:    Unset(),
		Output:   Unset(),
	}
}

// GetName returns the pipeline name.
func (p Pipeline) GetName() string {
	return p.Name
}

// HasDiameter reports whether the pipeline has exactly the given diameter.
func (p Pipeline) HasDiameter(d int) bool {
	return p.Diameter == d
}

// SetStations binds both endpoints and the diameter in one step.
// Previously bound endpoints are overwritten.
func (p *Pipeline) SetStations(inputID, outputID, diameter int) {
	p.Input = At(inputID)
	p.Output = At(outputID)
	p.Diameter = diameter
}

// IsConnected reports whether both endpoints are bound.
func (p Pipeline) IsConnected() bool {
	return p.Input.IsSet() && p.Output.IsSet()
}

// ToggleRepair flips the under-repair flag.
func (p *Pipeline) ToggleRepair() {
	p.InRepair = !p.InRepair
}

// Validate checks the pipeline's own fields. Uniqueness is checked by the store.
func (p Pipeline) Validate() error {
	if p.ID <= 0 {
		return NewValidationError("id", strconv.Itoa(p.ID), ErrInvalidID)
	}
	if p.Diameter <= 0 {
		return NewValidationError("diameter", strconv.Itoa(p.Diameter), ErrInvalidDiameter)
	}
	return nil
}

// ValidateChange checks only the fields that differ from prev. Loaded
// records skip validation, so an edit must not fail on fields it left alone.
func (p Pipeline) ValidateChange(prev Pipeline) error {
	if p.ID != prev.ID && p.ID <= 0 {
		return NewValidationError("id", strconv.Itoa(p.ID), ErrInvalidID)
	}
	if p.Diameter != prev.Diameter && p.Diameter <= 0 {
		return NewValidationError("diameter", strconv.Itoa(p.Diameter), ErrInvalidDiameter)
	}
	return nil
}

func (p Pipeline) String() string {
	status := "operational"
	if p.InRepair {
		status = "in repair"
	}
	return fmt.Sprintf("Pipeline ID: %d, Name: %s, Diameter: %d, Status: %s, Input: %s, Output: %s",
		p.ID, p.Name, p.Diameter, status, p.Input, p.Output)
}
