package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crime-report/models"
)

func TestCSVWriterExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "homicides.csv")

	w, err := NewCSVWriter(path)
	require.NoError(t, err)

	lat, lng, age := 41.88, -87.63, 25.0
	sex := "M"
	date := time.Date(2020, 1, 6, 15, 40, 0, 0, time.UTC)
	incidents := []*models.Incident{
		{
			PrimaryType: "HOMICIDE", Description: "FIRST DEGREE MURDER",
			Block: "100 N STATE ST", LocationDescription: "STREET",
			RawDate: "01/06/2020 03:40:00 PM", Arrest: true,
			Latitude: &lat, Longitude: &lng, VictimAge: &age, VictimSex: &sex,
			Date: &date, DayOfWeek: "Monday", Hour: 15, TimeOfDay: "03:40 PM",
		},
		{
			PrimaryType: "HOMICIDE", Description: "FIRST DEGREE MURDER",
			Block: "200 W MADISON ST", RawDate: "bad date", Hour: -1,
		},
	}
	require.NoError(t, w.Write(incidents))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])

	full := rows[1]
	assert.Equal(t, "HOMICIDE", full[0])
	assert.Equal(t, "Monday", full[5])
	assert.Equal(t, "15", full[6])
	assert.Equal(t, "03:40 PM", full[7])
	assert.Equal(t, "41.88", full[8])
	assert.Equal(t, "true", full[12])

	// NULL and sentinel fields render as empty cells, not zeros.
	sparse := rows[2]
	assert.Equal(t, "", sparse[5])
	assert.Equal(t, "", sparse[6])
	assert.Equal(t, "", sparse[8])
	assert.Equal(t, "", sparse[10])
	assert.Equal(t, "", sparse[11])
	assert.Equal(t, "false", sparse[12])
}

func TestCSVWriterOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "homicides.csv")

	for i := 0; i < 2; i++ {
		w, err := NewCSVWriter(path)
		require.NoError(t, err)
		require.NoError(t, w.Write([]*models.Incident{{PrimaryType: "HOMICIDE", Hour: -1}}))
		require.NoError(t, w.Close())
	}

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 2) // header + one row, not appended across runs
}
