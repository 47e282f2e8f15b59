package domain

// Snapshot is the complete, ordered content of the record store.
// It is the unit exchanged with codecs and repositories.
type Snapshot struct {
	Stations  []Station
	Pipelines []Pipeline
}

// NewSnapshot creates an empty snapshot with initialized collections.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Stations:  make([]Station, 0),
		Pipelines: make([]Pipeline, 0),
	}
}

// AddStation appends a station to the snapshot.
func (s *Snapshot) AddStation(st Station) {
	s.Stations = append(s.Stations, st)
}

// AddPipeline appends a pipeline to the snapshot.
func (s *Snapshot) AddPipeline(p Pipeline) {
	s.Pipelines = append(s.Pipelines, p)
}

// IsEmpty returns true if the snapshot holds no records.
func (s *Snapshot) IsEmpty() bool {
	return len(s.Stations) == 0 && len(s.Pipelines) == 0
}
