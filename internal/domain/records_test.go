package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoint(t *testing.T) {
	t.Run("zero value is unset", func(t *testing.T) {
		var e Endpoint

		id, ok := e.StationID()
		assert.False(t, ok)
		assert.Zero(t, id)
		assert.Equal(t, UnsetStationID, e.Key())
		assert.Equal(t, "unset", e.String())
	})

	t.Run("bound endpoint", func(t *testing.T) {
		e := At(7)

		id, ok := e.StationID()
		assert.True(t, ok)
		assert.Equal(t, 7, id)
		assert.Equal(t, 7, e.Key())
		assert.Equal(t, "7", e.String())
	})

	t.Run("legacy keys", func(t *testing.T) {
		assert.Equal(t, Unset(), EndpointFromKey(UnsetStationID))
		assert.Equal(t, At(3), EndpointFromKey(3))
	})
}

func TestPipeline(t *testing.T) {
	t.Run("new pipeline is unconnected", func(t *testing.T) {
		p := NewPipeline("main", 1, 10, false)

		assert.False(t, p.Input.IsSet())
		assert.False(t, p.Output.IsSet())
		assert.False(t, p.IsConnected())
	})

	t.Run("set stations overwrites endpoints", func(t *testing.T) {
		p := NewPipeline("main", 1, 10, false)
		p.SetStations(5, 6, 10)
		p.SetStations(1, 2, 12)

		assert.Equal(t, At(1), p.Input)
		assert.Equal(t, At(2), p.Output)
		assert.Equal(t, 12, p.Diameter)
		assert.True(t, p.HasDiameter(12))
		assert.False(t, p.HasDiameter(10))
	})

	t.Run("toggle repair", func(t *testing.T) {
		p := NewPipeline("main", 1, 10, false)
		p.ToggleRepair()
		assert.True(t, p.InRepair)
		p.ToggleRepair()
		assert.False(t, p.InRepair)
	})

	t.Run("validate", func(t *testing.T) {
		assert.NoError(t, NewPipeline("ok", 1, 10, false).Validate())
		assert.ErrorIs(t, NewPipeline("", 0, 10, false).Validate(), ErrInvalidID)
		assert.ErrorIs(t, NewPipeline("", 1, 0, false).Validate(), ErrInvalidDiameter)
	})
}

func TestValidateChange(t *testing.T) {
	prev := Pipeline{ID: 3, Name: "old", Diameter: 0}
	next := prev
	next.InRepair = true
	assert.NoError(t, next.ValidateChange(prev))
	assert.ErrorIs(t, next.Validate(), ErrInvalidDiameter)

	next.Diameter = -1
	assert.ErrorIs(t, next.ValidateChange(prev), ErrInvalidDiameter)

	st := Station{ID: 1, Workshops: 2, ActiveWorkshops: 2, Efficiency: 140}
	edited := st
	edited.ActiveWorkshops = 1
	assert.NoError(t, edited.ValidateChange(st))

	edited.ActiveWorkshops = 3
	assert.ErrorIs(t, edited.ValidateChange(st), ErrInvalidWorkshops)

	edited = st
	edited.Efficiency = 101
	assert.ErrorIs(t, edited.ValidateChange(st), ErrInvalidEfficiency)
}

func TestStation(t *testing.T) {
	t.Run("new station has all workshops active", func(t *testing.T) {
		s := NewStation("North", 1, 5, 80)

		assert.Equal(t, 5, s.ActiveWorkshops)
		assert.Zero(t, s.IdleWorkshops())
	})

	t.Run("active workshops bounded by total", func(t *testing.T) {
		s := NewStation("North", 1, 5, 80)

		require.NoError(t, s.SetActiveWorkshops(3))
		assert.Equal(t, 2, s.IdleWorkshops())

		err := s.SetActiveWorkshops(6)
		assert.ErrorIs(t, err, ErrInvalidWorkshops)
		assert.Equal(t, 3, s.ActiveWorkshops)
	})

	t.Run("validate", func(t *testing.T) {
		tests := []struct {
			name    string
			station Station
			want    error
		}{
			{"valid", Station{ID: 1, Workshops: 2, ActiveWorkshops: 1, Efficiency: 50}, nil},
			{"zero id", Station{ID: 0}, ErrInvalidID},
			{"negative workshops", Station{ID: 1, Workshops: -1}, ErrInvalidWorkshops},
			{"too many active", Station{ID: 1, Workshops: 1, ActiveWorkshops: 2}, ErrInvalidWorkshops},
			{"efficiency above 100", Station{ID: 1, Efficiency: 101}, ErrInvalidEfficiency},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.station.Validate()
				if tt.want == nil {
					assert.NoError(t, err)
					return
				}
				assert.ErrorIs(t, err, tt.want)
			})
		}
	})
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("diameter", "-3", ErrInvalidDiameter)

	assert.True(t, errors.Is(err, ErrInvalidDiameter))
	assert.Equal(t, `validation: invalid diameter: diameter (value="-3")`, err.Error())
}
