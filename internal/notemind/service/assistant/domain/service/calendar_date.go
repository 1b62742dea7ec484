package service

import (
	"strings"
	"time"
)

const dateNotSpecified = "date not specified"

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ExtractEventDate picks the date shown for an event: start timestamp,
// end timestamp, start date, end date, an 8-digit YYYYMMDD suffix after the
// last "_" of the event id, or "date not specified".
func ExtractEventDate(ev CalendarEvent) string {
	if ev.Start != nil && ev.Start.DateTime != "" {
		return ev.Start.DateTime
	}
	if ev.End != nil && ev.End.DateTime != "" {
		return ev.End.DateTime
	}
	if ev.Start != nil && ev.Start.Date != "" {
		return ev.Start.Date
	}
	if ev.End != nil && ev.End.Date != "" {
		return ev.End.Date
	}
	if i := strings.LastIndex(ev.ID, "_"); i >= 0 {
		suffix := ev.ID[i+1:]
		if len(suffix) == 8 && allDigits(suffix) {
			return suffix[:4] + "-" + suffix[4:6] + "-" + suffix[6:]
		}
	}
	return dateNotSpecified
}

// DisplayEventDate renders an extracted date for humans.
func DisplayEventDate(date string) string {
	switch {
	case strings.Contains(date, "T"):
		normalized := date
		if strings.HasSuffix(normalized, "Z") {
			normalized = strings.TrimSuffix(normalized, "Z") + "+00:00"
		}
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, normalized); err == nil {
				return t.Format("2006-01-02 15:04")
			}
		}
		return date
	case date != dateNotSpecified && date != "":
		return "All-day event on " + date
	default:
		return "All-day event (date not specified)"
	}
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
