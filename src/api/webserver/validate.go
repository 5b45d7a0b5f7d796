package webserver

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// parseAge accepts the age either as a JSON number or a numeric string and
// requires it to be finite. Reports false on anything else.
func parseAge(v interface{}) (int, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return int(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}

// normalizeList unifies the two accepted input shapes for places/actions into
// a list of trimmed non-empty strings. A collection value wins; a string
// value is treated as comma-delimited; otherwise a scalar fallback field
// ("place"/"action") contributes a single element.
func normalizeList(v, fallback interface{}) []string {
	switch t := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				s = fmt.Sprint(e)
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return splitList(t)
	}

	if s, ok := fallback.(string); ok {
		if s = strings.TrimSpace(s); s != "" {
			return []string{s}
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseEventDate maps a blank input to nil and rejects non-blank input that
// matches none of the accepted layouts. Zone-less inputs (the datetime-local
// form shapes) are read as server-local time; an explicit offset wins.
func parseEventDate(raw string) (*time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	for _, layout := range eventDateLayouts {
		if d, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return &d, true
		}
	}
	return nil, false
}
