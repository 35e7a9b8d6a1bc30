package models

import "time"

// Incident is a single reported crime event loaded from the store.
// Nullable store columns are pointers; nil means the value was NULL (or the
// column absent) at the source.
type Incident struct {
	ID                  int64
	PrimaryType         string
	Description         string
	Block               string
	LocationDescription string
	RawDate             string
	Latitude            *float64
	Longitude           *float64
	VictimAge           *float64
	VictimSex           *string
	Arrest              bool

	// Filled in by services.Deriver. Rows whose raw date cannot be parsed
	// keep Date nil, DayOfWeek/TimeOfDay empty and Hour -1.
	Date      *time.Time
	DayOfWeek string
	Hour      int
	TimeOfDay string
}

// HasCoordinates reports whether both latitude and longitude are present.
func (i *Incident) HasCoordinates() bool {
	return i.Latitude != nil && i.Longitude != nil
}

// Dataset is the filtered incident set plus schema-presence flags, so an
// optional column missing from the store entirely is distinguishable from
// one that is present but all-NULL.
type Dataset struct {
	Incidents    []*Incident
	HasVictimAge bool
	HasVictimSex bool
}

// LocationCount pairs a premise description with its incident count.
type LocationCount struct {
	Location string
	Count    int
}

// SummaryReport holds the aggregates computed over the filtered dataset.
type SummaryReport struct {
	TotalIncidents int

	// ByDay is keyed by full English weekday name; ByHour is indexed 0-23 so
	// hours with zero incidents stay representable.
	ByDay  map[string]int
	ByHour [24]int

	MostCommonDay  string // "" when no row has a parsed timestamp
	MostCommonHour int    // -1 when no row has a parsed timestamp

	MeanVictimAge float64
	AgeAvailable  bool

	GenderCounts map[string]int
	SexAvailable bool

	ArrestRatePct float64
	TopLocations  []LocationCount
	GeoCount      int
}
