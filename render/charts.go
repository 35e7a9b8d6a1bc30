package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"

	"crime-report/models"
	"crime-report/services"
	"crime-report/utils"
)

const (
	dayChartFile  = "homicides_by_day_of_week.png"
	hourChartFile = "homicides_by_time_of_day.png"
)

// ChartRenderer writes the aggregate bar charts as PNG files into a fixed
// output directory, overwriting any previous run's artifacts.
type ChartRenderer struct {
	logger *utils.Logger
	dir    string
}

// NewChartRenderer creates the output directory if needed.
func NewChartRenderer(dir string, logger *utils.Logger) (*ChartRenderer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("chart: create output dir %q: %w", dir, err)
	}
	return &ChartRenderer{logger: logger, dir: dir}, nil
}

// RenderDayChart writes the homicides-by-day-of-week bar chart and returns
// its path. Days render in Monday-first calendar order.
func (c *ChartRenderer) RenderDayChart(report *models.SummaryReport) (string, error) {
	bars := make([]chart.Value, 0, len(services.WeekdayOrder))
	for _, day := range services.WeekdayOrder {
		bars = append(bars, chart.Value{
			Label: day,
			Value: float64(report.ByDay[day]),
		})
	}
	return c.render(dayChartFile, "Homicides by Day of the Week", bars, 1000, 90, 40)
}

// RenderHourChart writes the homicides-by-hour bar chart and returns its
// path. Hours render ascending 0-23 with 12-hour AM/PM labels.
func (c *ChartRenderer) RenderHourChart(report *models.SummaryReport) (string, error) {
	bars := make([]chart.Value, 0, 24)
	for hour := 0; hour < 24; hour++ {
		bars = append(bars, chart.Value{
			Label: services.HourLabel(hour),
			Value: float64(report.ByHour[hour]),
		})
	}
	return c.render(hourChartFile, "Homicides by Time of Day (Hourly)", bars, 1400, 36, 15)
}

func (c *ChartRenderer) render(name, title string, bars []chart.Value, width, barWidth, barSpacing int) (string, error) {
	maxCount := 0.0
	for _, b := range bars {
		if b.Value > maxCount {
			maxCount = b.Value
		}
	}
	// go-chart rejects a zero-height value range, so pad the axis upper
	// bound; an all-zero dataset must still render.
	upper := maxCount * 1.1
	if upper < 1 {
		upper = 1
	}

	bc := chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 25, Right: 25, Bottom: 40}},
		Width:      width,
		Height:     600,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		XAxis: chart.Style{
			TextRotationDegrees: 45.0,
		},
		YAxis: chart.YAxis{
			Name:           "Number of Homicides",
			Range:          &chart.ContinuousRange{Min: 0, Max: upper},
			ValueFormatter: chart.IntValueFormatter,
		},
		Bars: bars,
	}

	path := filepath.Join(c.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("chart: create %q: %w", path, err)
	}
	defer f.Close()

	if err := bc.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("chart: render %q: %w", name, err)
	}

	c.logger.Info("[chart] Wrote %s", path)
	return path, nil
}
