package render

import (
	"encoding/json"
	"fmt"
	"html"
	"html/template"
	"os"
	"path/filepath"

	"crime-report/models"
	"crime-report/utils"
)

const mapFile = "homicides_map_toggle.html"

// Fallback view center when no row carries coordinates (downtown Chicago).
const (
	fallbackLat = 41.8781
	fallbackLng = -87.6298
	mapZoom     = 12
)

// markerColor is the fixed color shared by every point marker.
const markerColor = "#B22222"

// MapRenderer writes a self-contained Leaflet document with a heat layer and
// a clustered point layer, each toggleable independently, plus a fullscreen
// control.
type MapRenderer struct {
	logger *utils.Logger
	dir    string
}

// NewMapRenderer creates the output directory if needed.
func NewMapRenderer(dir string, logger *utils.Logger) (*MapRenderer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("map: create output dir %q: %w", dir, err)
	}
	return &MapRenderer{logger: logger, dir: dir}, nil
}

type mapPoint struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Popup string  `json:"popup"`
}

type mapData struct {
	CenterLat   float64
	CenterLng   float64
	Zoom        int
	MarkerColor string
	Points      template.JS
}

// Render writes the map for every incident with valid coordinates and
// returns the artifact path. Rows without coordinates are excluded from this
// artifact only; they stay in every other aggregate.
func (m *MapRenderer) Render(incidents []*models.Incident) (string, error) {
	points := make([]mapPoint, 0, len(incidents))
	var latSum, lngSum float64
	for _, inc := range incidents {
		if !inc.HasCoordinates() {
			continue
		}
		points = append(points, mapPoint{
			Lat:   *inc.Latitude,
			Lng:   *inc.Longitude,
			Popup: popupHTML(inc),
		})
		latSum += *inc.Latitude
		lngSum += *inc.Longitude
	}

	data := mapData{
		CenterLat:   fallbackLat,
		CenterLng:   fallbackLng,
		Zoom:        mapZoom,
		MarkerColor: markerColor,
	}
	if len(points) > 0 {
		data.CenterLat = latSum / float64(len(points))
		data.CenterLng = lngSum / float64(len(points))
	}

	encoded, err := json.Marshal(points)
	if err != nil {
		return "", fmt.Errorf("map: encode points: %w", err)
	}
	data.Points = template.JS(encoded)

	path := filepath.Join(m.dir, mapFile)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("map: create %q: %w", path, err)
	}
	defer f.Close()

	if err := mapTmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("map: render: %w", err)
	}

	m.logger.Info("[map] Wrote %s (%d points, %d rows without coordinates)",
		path, len(points), len(incidents)-len(points))
	return path, nil
}

// popupHTML builds the marker popup body. Field values are escaped here
// because the assembled fragment is injected into the page as raw HTML.
func popupHTML(inc *models.Incident) string {
	date := inc.RawDate
	if inc.Date != nil {
		date = inc.Date.Format("Jan 2, 2006 03:04 PM")
	}
	arrest := "No"
	if inc.Arrest {
		arrest = "Yes"
	}
	location := inc.Block
	if location == "" {
		location = inc.LocationDescription
	}
	return fmt.Sprintf("<b>%s</b><br>Date: %s<br>Location: %s<br>Arrest: %s",
		html.EscapeString(inc.Description),
		html.EscapeString(date),
		html.EscapeString(location),
		arrest)
}

var mapTmpl = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Homicide Locations</title>
    <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
    <link rel="stylesheet" href="https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.css">
    <link rel="stylesheet" href="https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.Default.css">
    <link rel="stylesheet" href="https://api.mapbox.com/mapbox.js/plugins/leaflet-fullscreen/v1.0.1/leaflet.fullscreen.css">
    <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
    <script src="https://unpkg.com/leaflet.markercluster@1.5.3/dist/leaflet.markercluster.js"></script>
    <script src="https://unpkg.com/leaflet.heat@0.2.0/dist/leaflet-heat.js"></script>
    <script src="https://api.mapbox.com/mapbox.js/plugins/leaflet-fullscreen/v1.0.1/Leaflet.fullscreen.min.js"></script>
    <style>
        html, body { margin: 0; padding: 0; height: 100%; }
        #map { width: 100%; height: 100%; }
    </style>
</head>
<body>
    <div id="map"></div>
    <script>
        var map = L.map('map', { fullscreenControl: true })
            .setView([{{.CenterLat}}, {{.CenterLng}}], {{.Zoom}});

        L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
            maxZoom: 19,
            attribution: '&copy; OpenStreetMap contributors'
        }).addTo(map);

        var points = {{.Points}};

        var heatGroup = L.featureGroup();
        L.heatLayer(points.map(function (p) { return [p.lat, p.lng]; })).addTo(heatGroup);

        var pointGroup = L.featureGroup();
        var cluster = L.markerClusterGroup();
        points.forEach(function (p) {
            L.circleMarker([p.lat, p.lng], {
                radius: 6,
                color: '{{.MarkerColor}}',
                fillColor: '{{.MarkerColor}}',
                fillOpacity: 0.8
            }).bindPopup(p.popup).addTo(cluster);
        });
        cluster.addTo(pointGroup);

        heatGroup.addTo(map);
        pointGroup.addTo(map);

        L.control.layers(null, { 'Heatmap': heatGroup, 'Points': pointGroup }).addTo(map);
    </script>
</body>
</html>
`))
