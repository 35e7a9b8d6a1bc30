package services

import (
	"strings"
	"time"

	"crime-report/models"
	"crime-report/utils"
)

// dateLayouts are tried in order when parsing the raw timestamp column. The
// Chicago data portal exports "01/02/2006 03:04:05 PM"; the rest cover
// ISO-style exports of the same table.
var dateLayouts = []string{
	"01/02/2006 03:04:05 PM",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Deriver adds the temporal fields computed from each incident's raw
// timestamp: weekday name, hour of day and a 12-hour clock string.
type Deriver struct {
	logger *utils.Logger
}

// NewDeriver creates a Deriver with the given logger.
func NewDeriver(logger *utils.Logger) *Deriver {
	return &Deriver{logger: logger}
}

// Derive parses the raw date of every incident in place. Rows with an
// unparsable timestamp keep nil/sentinel derived fields; no row is ever
// dropped at this stage.
func (d *Deriver) Derive(incidents []*models.Incident) {
	unparsed := 0
	for _, inc := range incidents {
		t, ok := parseTimestamp(inc.RawDate)
		if !ok {
			inc.Date = nil
			inc.DayOfWeek = ""
			inc.Hour = -1
			inc.TimeOfDay = ""
			unparsed++
			continue
		}
		inc.Date = &t
		inc.DayOfWeek = t.Weekday().String()
		inc.Hour = t.Hour()
		inc.TimeOfDay = t.Format("03:04 PM")
	}

	if unparsed > 0 {
		d.logger.Warn("[derive] %d of %d incidents had unparsable timestamps",
			unparsed, len(incidents))
	}
	d.logger.Info("[derive] Derived temporal fields for %d incidents", len(incidents))
}

func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
