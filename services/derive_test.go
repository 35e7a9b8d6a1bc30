package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crime-report/models"
	"crime-report/utils"
)

func TestDeriveChicagoPortalFormat(t *testing.T) {
	// 2020-01-06 was a Monday.
	inc := &models.Incident{RawDate: "01/06/2020 03:40:00 PM"}
	NewDeriver(utils.NewLogger()).Derive([]*models.Incident{inc})

	require.NotNil(t, inc.Date)
	assert.Equal(t, "Monday", inc.DayOfWeek)
	assert.Equal(t, 15, inc.Hour)
	assert.Equal(t, "03:40 PM", inc.TimeOfDay)
}

func TestDeriveMidnightAndNoon(t *testing.T) {
	d := NewDeriver(utils.NewLogger())

	midnight := &models.Incident{RawDate: "01/06/2020 12:05:00 AM"}
	noon := &models.Incident{RawDate: "01/06/2020 12:05:00 PM"}
	d.Derive([]*models.Incident{midnight, noon})

	assert.Equal(t, 0, midnight.Hour)
	assert.Equal(t, "12:05 AM", midnight.TimeOfDay)
	assert.Equal(t, 12, noon.Hour)
	assert.Equal(t, "12:05 PM", noon.TimeOfDay)
}

func TestDeriveISOFormats(t *testing.T) {
	d := NewDeriver(utils.NewLogger())

	for _, raw := range []string{
		"2020-01-07 09:15:00",
		"2020-01-07T09:15:00",
	} {
		inc := &models.Incident{RawDate: raw}
		d.Derive([]*models.Incident{inc})
		require.NotNil(t, inc.Date, "raw %q", raw)
		assert.Equal(t, "Tuesday", inc.DayOfWeek, "raw %q", raw)
		assert.Equal(t, 9, inc.Hour, "raw %q", raw)
	}
}

func TestDeriveUnparsableKeepsRow(t *testing.T) {
	incidents := []*models.Incident{
		{RawDate: "not a date"},
		{RawDate: ""},
		{RawDate: "01/06/2020 03:40:00 PM"},
	}
	NewDeriver(utils.NewLogger()).Derive(incidents)

	// No row is dropped; unparsable rows carry null/sentinel derived fields.
	require.Len(t, incidents, 3)
	for _, inc := range incidents[:2] {
		assert.Nil(t, inc.Date)
		assert.Equal(t, "", inc.DayOfWeek)
		assert.Equal(t, -1, inc.Hour)
		assert.Equal(t, "", inc.TimeOfDay)
	}
	assert.NotNil(t, incidents[2].Date)
}

func TestDeriveBounds(t *testing.T) {
	incidents := []*models.Incident{
		{RawDate: "01/06/2020 12:00:00 AM"},
		{RawDate: "01/07/2020 06:30:00 AM"},
		{RawDate: "01/08/2020 11:59:00 PM"},
		{RawDate: "garbage"},
	}
	NewDeriver(utils.NewLogger()).Derive(incidents)

	valid := map[string]bool{
		"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
		"Friday": true, "Saturday": true, "Sunday": true,
	}
	for _, inc := range incidents {
		if inc.Date == nil {
			assert.Equal(t, -1, inc.Hour)
			continue
		}
		assert.True(t, inc.Hour >= 0 && inc.Hour <= 23, "hour %d out of range", inc.Hour)
		assert.True(t, valid[inc.DayOfWeek], "invalid weekday %q", inc.DayOfWeek)
	}
}
