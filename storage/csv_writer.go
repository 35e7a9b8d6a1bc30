package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"crime-report/models"
)

var csvHeader = []string{
	"primary_type", "description", "block", "location_description",
	"date", "day_of_week", "hour", "time_of_day",
	"latitude", "longitude", "victim_age", "victim_sex", "arrest",
}

// CSVWriter exports the filtered, derived incident table to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends one row per incident. NULL fields render as empty cells and
// sentinel derived values (hour -1) render as empty rather than numeric.
func (c *CSVWriter) Write(incidents []*models.Incident) error {
	for _, inc := range incidents {
		hour := ""
		if inc.Hour >= 0 {
			hour = strconv.Itoa(inc.Hour)
		}
		row := []string{
			inc.PrimaryType,
			inc.Description,
			inc.Block,
			inc.LocationDescription,
			inc.RawDate,
			inc.DayOfWeek,
			hour,
			inc.TimeOfDay,
			floatCell(inc.Latitude),
			floatCell(inc.Longitude),
			floatCell(inc.VictimAge),
			stringCell(inc.VictimSex),
			strconv.FormatBool(inc.Arrest),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func floatCell(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func stringCell(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
