package services

import (
	"fmt"
	"sort"
	"strings"

	"crime-report/models"
	"crime-report/utils"
)

// WeekdayOrder is the Monday-first calendar order used for every rendered
// breakdown and for the day-mode tie-break.
var WeekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday",
	"Friday", "Saturday", "Sunday",
}

// HourLabel formats an hour of day (0-23) as a 12-hour clock label,
// e.g. 0 → "12 AM", 13 → "1 PM".
func HourLabel(hour int) string {
	h := hour % 12
	if h == 0 {
		h = 12
	}
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d %s", h, suffix)
}

// InsightService computes the summary statistics over the filtered dataset.
type InsightService struct {
	logger *utils.Logger
}

// NewInsightService creates an InsightService with the given logger.
func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate reduces the dataset to a SummaryReport. It is a pure read-only
// pass: the dataset is never mutated and the report is recomputed fresh on
// every run.
//
// Tie-breaks are deterministic: the day mode prefers the earliest day in
// Monday-first calendar order, the hour mode prefers the lowest hour, and
// top-location ties keep first-seen order.
func (s *InsightService) Generate(ds *models.Dataset) *models.SummaryReport {
	report := &models.SummaryReport{
		ByDay:          make(map[string]int),
		GenderCounts:   make(map[string]int),
		MostCommonHour: -1,
		SexAvailable:   ds.HasVictimSex,
	}

	report.TotalIncidents = len(ds.Incidents)
	if report.TotalIncidents == 0 {
		return report
	}

	var (
		ageSum   float64
		ageCount int
		arrests  int
	)
	locCounts := make(map[string]int)
	locFirst := make(map[string]int)

	for i, inc := range ds.Incidents {
		if inc.DayOfWeek != "" {
			report.ByDay[inc.DayOfWeek]++
		}
		if inc.Hour >= 0 && inc.Hour < 24 {
			report.ByHour[inc.Hour]++
		}
		if inc.VictimAge != nil {
			ageSum += *inc.VictimAge
			ageCount++
		}
		if inc.VictimSex != nil {
			report.GenderCounts[strings.TrimSpace(*inc.VictimSex)]++
		}
		if inc.Arrest {
			arrests++
		}
		if inc.HasCoordinates() {
			report.GeoCount++
		}
		if loc := strings.TrimSpace(inc.LocationDescription); loc != "" {
			if _, seen := locCounts[loc]; !seen {
				locFirst[loc] = i
			}
			locCounts[loc]++
		}
	}

	report.MostCommonDay = mostCommonDay(report.ByDay)
	report.MostCommonHour = mostCommonHour(report.ByHour)

	if ds.HasVictimAge && ageCount > 0 {
		report.AgeAvailable = true
		report.MeanVictimAge = round2(ageSum / float64(ageCount))
	}

	report.ArrestRatePct = round2(float64(arrests) / float64(report.TotalIncidents) * 100)
	report.TopLocations = topLocations(locCounts, locFirst, 5)

	s.logger.Info("[insights] Aggregated %d incidents (%d with coordinates)",
		report.TotalIncidents, report.GeoCount)
	return report
}

func mostCommonDay(byDay map[string]int) string {
	best := ""
	bestCount := 0
	for _, day := range WeekdayOrder {
		if byDay[day] > bestCount {
			best = day
			bestCount = byDay[day]
		}
	}
	return best
}

func mostCommonHour(byHour [24]int) int {
	best := -1
	bestCount := 0
	for h, count := range byHour {
		if count > bestCount {
			best = h
			bestCount = count
		}
	}
	return best
}

func topLocations(counts map[string]int, first map[string]int, limit int) []models.LocationCount {
	locs := make([]models.LocationCount, 0, len(counts))
	for loc, count := range counts {
		locs = append(locs, models.LocationCount{Location: loc, Count: count})
	}
	sort.Slice(locs, func(i, j int) bool {
		if locs[i].Count != locs[j].Count {
			return locs[i].Count > locs[j].Count
		}
		return first[locs[i].Location] < first[locs[j].Location]
	})
	if len(locs) > limit {
		locs = locs[:limit]
	}
	return locs
}

// Print writes an operator-facing summary of the report to stdout.
func (s *InsightService) Print(r *models.SummaryReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 HOMICIDE DATA INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total homicides       : \033[1m%d\033[0m\n", r.TotalIncidents)
	fmt.Printf("  With coordinates      : \033[1m%d\033[0m\n", r.GeoCount)
	fmt.Println()

	fmt.Printf("\033[1;33m  Temporal Patterns\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.MostCommonDay != "" {
		fmt.Printf("  Most common day  : \033[1;31m%s\033[0m\n", r.MostCommonDay)
	} else {
		fmt.Printf("  Most common day  : N/A\n")
	}
	if r.MostCommonHour >= 0 {
		fmt.Printf("  Most common hour : \033[1;31m%s\033[0m\n", HourLabel(r.MostCommonHour))
	} else {
		fmt.Printf("  Most common hour : N/A\n")
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Victims\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.AgeAvailable {
		fmt.Printf("  Mean victim age : \033[1m%.1f\033[0m\n", r.MeanVictimAge)
	} else {
		fmt.Printf("  Mean victim age : Not available\n")
	}
	if len(r.GenderCounts) == 0 {
		fmt.Printf("  Gender breakdown : N/A\n")
	} else {
		genders := make([]string, 0, len(r.GenderCounts))
		for g := range r.GenderCounts {
			genders = append(genders, g)
		}
		sort.Strings(genders)
		for _, g := range genders {
			fmt.Printf("  %-16s : %d\n", g, r.GenderCounts[g])
		}
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Arrests\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Arrest rate : \033[1m%.1f%%\033[0m\n", r.ArrestRatePct)
	fmt.Println()

	fmt.Printf("\033[1;33m  Top 5 Locations\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.TopLocations) == 0 {
		fmt.Printf("  No location data\n")
	} else {
		for i, lc := range r.TopLocations {
			fmt.Printf("  \033[1m%d.\033[0m %-36s \033[1;32m%d\033[0m\n",
				i+1, truncate(lc.Location, 34), lc.Count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
