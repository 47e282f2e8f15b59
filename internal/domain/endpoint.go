package domain

import "strconv"

// UnsetStationID is the graph key used for a pipeline end that is not bound
// to any station. Flat files written by earlier versions use it as well.
const UnsetStationID = -1

// Endpoint is an optional reference to a station from one end of a pipeline.
// The zero value is unset.
type Endpoint struct {
	stationID int
	set       bool
}

// At returns an endpoint bound to the given station.
func At(stationID int) Endpoint {
	return Endpoint{stationID: stationID, set: true}
}

// Unset returns an endpoint not bound to any station.
func Unset() Endpoint {
	return Endpoint{}
}

// EndpointFromKey converts a legacy key (UnsetStationID for unset) to an Endpoint.
func EndpointFromKey(key int) Endpoint {
	if key == UnsetStationID {
		return Unset()
	}
	return At(key)
}

// StationID returns the referenced station and whether the endpoint is set.
func (e Endpoint) StationID() (int, bool) {
	return e.stationID, e.set
}

// IsSet reports whether the endpoint references a station.
func (e Endpoint) IsSet() bool {
	return e.set
}

// Key returns the graph node key for the endpoint.
func (e Endpoint) Key() int {
	if !e.set {
		return UnsetStationID
	}
	return e.stationID
}

func (e Endpoint) String() string {
	if !e.set {
		return "unset"
	}
	return strconv.Itoa(e.stationID)
}
