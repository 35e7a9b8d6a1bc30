package render

import (
	"fmt"
	"html/template"
	"os"
	"sort"

	"crime-report/models"
	"crime-report/services"
	"crime-report/utils"
)

// ReportComposer renders the final summary HTML document embedding the two
// chart images, the interactive map and every computed statistic.
type ReportComposer struct {
	logger *utils.Logger
	path   string
}

// NewReportComposer writes the report to the given fixed path on Compose.
func NewReportComposer(path string, logger *utils.Logger) *ReportComposer {
	return &ReportComposer{logger: logger, path: path}
}

type statRow struct {
	Label string
	Value string
}

type reportData struct {
	TotalHomicides int
	Stats          []statRow
	TopLocations   []models.LocationCount
	DayChartPath   string
	HourChartPath  string
	MapPath        string
}

// Compose renders the report from the summary and the artifact paths,
// overwriting any previous report file. Missing statistics render as literal
// placeholder text, never blank.
func (rc *ReportComposer) Compose(r *models.SummaryReport, dayChart, hourChart, mapPath string) error {
	data := reportData{
		TotalHomicides: r.TotalIncidents,
		Stats:          statRows(r),
		TopLocations:   r.TopLocations,
		DayChartPath:   dayChart,
		HourChartPath:  hourChart,
		MapPath:        mapPath,
	}

	f, err := os.Create(rc.path)
	if err != nil {
		return fmt.Errorf("report: create %q: %w", rc.path, err)
	}
	defer f.Close()

	if err := reportTmpl.Execute(f, data); err != nil {
		return fmt.Errorf("report: render: %w", err)
	}

	rc.logger.Info("[report] Wrote %s", rc.path)
	return nil
}

func statRows(r *models.SummaryReport) []statRow {
	rows := []statRow{
		{"Total Homicides", fmt.Sprintf("%d", r.TotalIncidents)},
	}

	if r.MostCommonDay != "" {
		rows = append(rows, statRow{"Most Common Day for Homicides", r.MostCommonDay})
	} else {
		rows = append(rows, statRow{"Most Common Day for Homicides", "N/A"})
	}

	if r.MostCommonHour >= 0 {
		rows = append(rows, statRow{"Most Common Hour", services.HourLabel(r.MostCommonHour)})
	} else {
		rows = append(rows, statRow{"Most Common Hour", "N/A"})
	}

	if r.AgeAvailable {
		rows = append(rows, statRow{"Mean Victim Age", fmt.Sprintf("%.1f", r.MeanVictimAge)})
	} else {
		rows = append(rows, statRow{"Mean Victim Age", "Not available"})
	}

	rows = append(rows, statRow{"Victim Gender Breakdown", genderSummary(r)})
	rows = append(rows, statRow{"Arrest Rate", fmt.Sprintf("%.1f%%", r.ArrestRatePct)})
	return rows
}

// genderSummary renders the canonical M/F categories first ("N/A" when a
// category is absent from the data), then any other observed categories in
// alphabetical order.
func genderSummary(r *models.SummaryReport) string {
	if !r.SexAvailable {
		return "Not available"
	}

	countOrNA := func(g string) string {
		if n, ok := r.GenderCounts[g]; ok {
			return fmt.Sprintf("%d", n)
		}
		return "N/A"
	}
	out := fmt.Sprintf("M: %s, F: %s", countOrNA("M"), countOrNA("F"))

	var extras []string
	for g := range r.GenderCounts {
		if g != "M" && g != "F" {
			extras = append(extras, g)
		}
	}
	sort.Strings(extras)
	for _, g := range extras {
		out += fmt.Sprintf(", %s: %d", g, r.GenderCounts[g])
	}
	return out
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Homicide Data Analysis</title>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; color: #333; }
        .container { width: 80%; margin: 0 auto; }
        h1, h2 { text-align: center; color: #B22222; }
        .image-container { text-align: center; margin-bottom: 30px; }
        img { width: 80%; max-width: 600px; border: 2px solid #ccc; }
        iframe { width: 100%; height: 500px; border: none; }
        .stats { margin-bottom: 20px; }
        .stat { font-size: 1.2em; margin: 10px 0; }
        ol.locations { font-size: 1.1em; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Homicide Data Analysis Report</h1>
        <div class="stats">
            <h2>Key Insights</h2>
{{- range .Stats}}
            <p class="stat"><strong>{{.Label}}:</strong> {{.Value}}</p>
{{- end}}
        </div>
        <div class="stats">
            <h2>Top 5 Locations</h2>
{{- if .TopLocations}}
            <ol class="locations">
{{- range .TopLocations}}
                <li>{{.Location}} &mdash; {{.Count}}</li>
{{- end}}
            </ol>
{{- else}}
            <p class="stat">No location data</p>
{{- end}}
        </div>
        <div class="image-container">
            <h2>Homicides by Day of the Week</h2>
            <img src="{{.DayChartPath}}" alt="Homicides by Day of the Week">
        </div>
        <div class="image-container">
            <h2>Homicides by Time of Day (Hourly)</h2>
            <img src="{{.HourChartPath}}" alt="Homicides by Time of Day">
        </div>
        <div class="image-container">
            <h2>Homicides Locations (Toggleable Points and Heatmap)</h2>
            <iframe src="{{.MapPath}}"></iframe>
        </div>
    </div>
</body>
</html>
`))
