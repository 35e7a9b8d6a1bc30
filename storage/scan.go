package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"crime-report/models"
)

// requiredColumns must exist in the store schema; their absence is fatal.
// Optional columns (victim age, victim sex) only flip the dataset flags.
var requiredColumns = []string{"primary type", "date"}

// scanIncidents maps a SELECT * result set onto the incident model. Columns
// are discovered at runtime so the loader works against the store's native
// column set, whatever extras it carries.
func scanIncidents(rows *sql.Rows) (*models.Dataset, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("scan: columns: %w", err)
	}

	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		idx[normalizeColumn(c)] = i
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("scan: required column %q missing from store schema", c)
		}
	}

	ds := &models.Dataset{}
	_, ds.HasVictimAge = idx["victim age"]
	_, ds.HasVictimSex = idx["victim sex"]

	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: row: %w", err)
		}

		inc := &models.Incident{Hour: -1}
		inc.ID = asInt(column(vals, idx, "id"))
		inc.PrimaryType = asString(column(vals, idx, "primary type"))
		inc.Description = asString(column(vals, idx, "description"))
		inc.Block = asString(column(vals, idx, "block"))
		inc.LocationDescription = asString(column(vals, idx, "location description"))
		inc.RawDate = asString(column(vals, idx, "date"))
		inc.Latitude = asFloatPtr(column(vals, idx, "latitude"))
		inc.Longitude = asFloatPtr(column(vals, idx, "longitude"))
		if ds.HasVictimAge {
			inc.VictimAge = asFloatPtr(column(vals, idx, "victim age"))
		}
		if ds.HasVictimSex {
			inc.VictimSex = asStringPtr(column(vals, idx, "victim sex"))
		}
		// NULL arrest flags count as "no arrest".
		inc.Arrest = asBool(column(vals, idx, "arrest"))

		ds.Incidents = append(ds.Incidents, inc)
	}
	return ds, rows.Err()
}

// normalizeColumn folds "Primary Type", "primary_type" and "PRIMARY TYPE"
// onto the same key.
func normalizeColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, "_", " ")
}

func column(vals []any, idx map[string]int, name string) any {
	i, ok := idx[name]
	if !ok {
		return nil
	}
	return vals[i]
}

func asString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

func asStringPtr(v any) *string {
	if v == nil {
		return nil
	}
	s := asString(v)
	if s == "" {
		return nil
	}
	return &s
}

func asInt(v any) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case int:
		return int64(x)
	case float64:
		return int64(x)
	case string:
		n, _ := strconv.ParseInt(x, 10, 64)
		return n
	case []byte:
		n, _ := strconv.ParseInt(string(x), 10, 64)
		return n
	default:
		return 0
	}
}

func asFloatPtr(v any) *float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int64:
		f = float64(x)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		f = parsed
	case []byte:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(string(x)), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	return &f
}

func asBool(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case int64:
		return x != 0
	case float64:
		return x != 0
	case string:
		return boolString(x)
	case []byte:
		return boolString(string(x))
	default:
		return false
	}
}

func boolString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "1":
		return true
	default:
		return false
	}
}
