package domain

import (
	"fmt"
	"strconv"
)

// Station is a compressor station, a node of the pipeline network.
type Station struct {
	ID              int
	Name            string
	Workshops       int
	ActiveWorkshops int
	Efficiency      float64
}

// NewStation creates a station with all workshops active.
func NewStation(name string, id, workshops int, efficiency float64) *Station {
	return &Station{
		ID:              id,
		Name:            name,
		Workshops:       workshops,
		ActiveWorkshops: workshops,
		Efficiency:      efficiency,
	}
}

// GetName returns the station name. It lets stations be filtered alongside pipelines.
func (s Station) GetName() string {
	return s.Name
}

// IdleWorkshops returns the number of workshops not currently running.
func (s Station) IdleWorkshops() int {
	return s.Workshops - s.ActiveWorkshops
}

// SetActiveWorkshops changes the number of running workshops.
func (s *Station) SetActiveWorkshops(n int) error {
	if n < 0 || n > s.Workshops {
		return NewValidationError("active_workshops", strconv.Itoa(n), ErrInvalidWorkshops)
	}
	s.ActiveWorkshops = n
	return nil
}

// Validate checks the station's own fields. Uniqueness is checked by the store.
func (s Station) Validate() error {
	if s.ID <= 0 {
		return NewValidationError("id", strconv.Itoa(s.ID), ErrInvalidID)
	}
	if s.Workshops < 0 {
		return NewValidationError("workshops", strconv.Itoa(s.Workshops), ErrInvalidWorkshops)
	}
	if s.ActiveWorkshops < 0 || s.ActiveWorkshops > s.Workshops {
		return NewValidationError("active_workshops", strconv.Itoa(s.ActiveWorkshops), ErrInvalidWorkshops)
	}
	if s.Efficiency < 0 || s.Efficiency > 100 {
		return NewValidationError("efficiency", fmt.Sprintf("%g", s.Efficiency), ErrInvalidEfficiency)
	}
	return nil
}

// ValidateChange checks only the fields that differ from prev.
func (s Station) ValidateChange(prev Station) error {
	if s.ID != prev.ID && s.ID <= 0 {
		return NewValidationError("id", strconv.Itoa(s.ID), ErrInvalidID)
	}
	if s.Workshops != prev.Workshops || s.ActiveWorkshops != prev.ActiveWorkshops {
		if s.Workshops < 0 {
			return NewValidationError("workshops", strconv.Itoa(s.Workshops), ErrInvalidWorkshops)
		}
		if s.ActiveWorkshops < 0 || s.ActiveWorkshops > s.Workshops {
			return NewValidationError("active_workshops", strconv.Itoa(s.ActiveWorkshops), ErrInvalidWorkshops)
		}
	}
	if s.Efficiency != prev.Efficiency && (s.Efficiency < 0 || s.Efficiency > 100) {
		return NewValidationError("efficiency", fmt.Sprintf("%g", s.Efficiency), ErrInvalidEfficiency)
	}
	return nil
}

func (s Station) String() string {
	return fmt.Sprintf("Station ID: %d, Name: %s, Workshops: %d/%d active, Efficiency: %g%%",
		s.ID, s.Name, s.ActiveWorkshops, s.Workshops, s.Efficiency)
}
