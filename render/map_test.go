package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crime-report/models"
	"crime-report/utils"
)

func renderMap(t *testing.T, incidents []*models.Incident) string {
	t.Helper()

	dir := t.TempDir()
	m, err := NewMapRenderer(dir, utils.NewLogger())
	require.NoError(t, err)

	path, err := m.Render(incidents)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "homicides_map_toggle.html"), path)

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(out)
}

func TestMapLayersAndControls(t *testing.T) {
	lat1, lng1 := 41.0, -87.0
	lat2, lng2 := 42.0, -88.0
	out := renderMap(t, []*models.Incident{
		{Description: "FIRST DEGREE MURDER", Block: "100 N STATE ST",
			RawDate: "01/06/2020 03:40:00 PM", Arrest: true,
			Latitude: &lat1, Longitude: &lng1},
		{Description: "FIRST DEGREE MURDER", Block: "200 W MADISON ST",
			Latitude: &lat2, Longitude: &lng2},
	})

	assert.Contains(t, out, "leaflet-heat")
	assert.Contains(t, out, "leaflet.markercluster")
	assert.Contains(t, out, "markerClusterGroup")
	assert.Contains(t, out, "L.control.layers")
	assert.Contains(t, out, "fullscreenControl")
	assert.Contains(t, out, "'Heatmap'")
	assert.Contains(t, out, "'Points'")

	// Initial view centers on the mean of the valid coordinates.
	assert.Contains(t, out, "41.5")
	assert.Contains(t, out, "-87.5")

	// Popup content carries the human-readable fields.
	assert.Contains(t, out, "FIRST DEGREE MURDER")
	assert.Contains(t, out, "100 N STATE ST")
	assert.Contains(t, out, "Arrest: Yes")
}

func TestMapExcludesRowsWithoutCoordinates(t *testing.T) {
	lat, lng := 41.0, -87.0
	out := renderMap(t, []*models.Incident{
		{Description: "INCLUDED ROW", Block: "100 N STATE ST", Latitude: &lat, Longitude: &lng},
		{Description: "EXCLUDED ROW", Block: "200 W MADISON ST"},
		{Description: "HALF COORD ROW", Block: "300 S CLARK ST", Latitude: &lat},
	})

	assert.Contains(t, out, "INCLUDED ROW")
	assert.NotContains(t, out, "EXCLUDED ROW")
	assert.NotContains(t, out, "HALF COORD ROW")
}

func TestMapEmptyDatasetFallsBackToChicago(t *testing.T) {
	out := renderMap(t, []*models.Incident{
		{Description: "NO COORDS", Block: "100 N STATE ST"},
	})

	assert.Contains(t, out, "41.8781")
	assert.Contains(t, out, "-87.6298")
}

func TestMapPopupEscapesFieldValues(t *testing.T) {
	lat, lng := 41.0, -87.0
	out := renderMap(t, []*models.Incident{
		{Description: `<script>alert("x")</script>`, Block: "100 N STATE ST",
			Latitude: &lat, Longitude: &lng},
	})

	assert.NotContains(t, out, `<script>alert`)
}
