package climate

import (
	"math"

	"ph_calc/diagnostics"
)

// Location is the geographic position of a site.
type Location struct {
	Latitude    float64 // degree, north positive
	Longitude   float64 // degree, east positive
	Elevation   float64 // m
	TimeZone    float64 // h from UTC
	ClimateZone string
	Source      string
}

// Validate checks the coordinate ranges.
func (l Location) Validate() error {
	switch {
	case l.Latitude < -90 || l.Latitude > 90:
		return diagnostics.Errorf(diagnostics.InputInvalid, "location", "latitude must be within [-90, 90], got %g", l.Latitude)
	case l.Longitude < -180 || l.Longitude > 180:
		return diagnostics.Errorf(diagnostics.InputInvalid, "location", "longitude must be within [-180, 180], got %g", l.Longitude)
	case l.TimeZone < -12 || l.TimeZone > 14:
		return diagnostics.Errorf(diagnostics.InputInvalid, "location", "time zone must be within [-12, 14] h, got %g", l.TimeZone)
	}
	return nil
}

// latLon returns latitude and longitude, rad.
func (l Location) latLon() (float64, float64) {
	const toRad = math.Pi / 180
	return l.Latitude * toRad, l.Longitude * toRad
}

// standardMeridian returns the longitude of the time zone's meridian, rad.
func (l Location) standardMeridian() float64 {
	return l.TimeZone * 15.0 * math.Pi / 180.0
}

// Site binds a location to its climate record.
type Site struct {
	Location Location
	Climate  Climate
}

// Validate checks location and climate.
func (s *Site) Validate() error {
	if err := s.Location.Validate(); err != nil {
		return err
	}
	return s.Climate.Validate()
}
