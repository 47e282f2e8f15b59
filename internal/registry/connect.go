package registry

import (
	"fmt"
	"strconv"

	"pipenet/internal/domain"
)

// PipelineFiller populates the name and id of a pipeline created by Connect.
type PipelineFiller func(p *domain.Pipeline) error

// Connection describes what Connect did.
type Connection struct {
	PipelineID int
	Reused     bool
}

// Connect links two stations through a pipeline of the given diameter.
//
// The first pipeline with that diameter is reused and its endpoints are
// overwritten with (inputID, outputID), whatever they were before. When no
// pipeline has that diameter a new one is created, filled by fill and
// appended with both endpoints left unset; binding it is a separate step.
func (r *Registry) Connect(inputID, outputID, diameter int, fill PipelineFiller) (Connection, error) {
	if !r.HasStation(inputID) {
		return Connection{}, domain.NewValidationError("input", strconv.Itoa(inputID), domain.ErrInvalidEndpoint)
	}
	if !r.HasStation(outputID) {
		return Connection{}, domain.NewValidationError("output", strconv.Itoa(outputID), domain.ErrInvalidEndpoint)
	}
	if inputID == outputID {
		return Connection{}, domain.NewValidationError("output", strconv.Itoa(outputID), domain.ErrSameEndpoint)
	}
	if diameter <= 0 {
		return Connection{}, domain.NewValidationError("diameter", strconv.Itoa(diameter), domain.ErrInvalidDiameter)
	}

	if i := r.diameterIndex(diameter); i >= 0 {
		r.pipelines[i].SetStations(inputID, outputID, diameter)
		return Connection{PipelineID: r.pipelines[i].ID, Reused: true}, nil
	}

	p := domain.NewPipeline("", 0, diameter, false)
	if fill != nil {
		if err := fill(p); err != nil {
			return Connection{}, fmt.Errorf("fill pipeline: %w", err)
		}
	}
	// The filler must not bind endpoints or change the requested diameter.
	p.Input, p.Output = domain.Unset(), domain.Unset()
	p.Diameter = diameter
	if err := r.AddPipeline(*p); err != nil {
		return Connection{}, err
	}
	return Connection{PipelineID: p.ID}, nil
}
