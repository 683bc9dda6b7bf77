package sim

import "time"

const dateLayout = "2006-01-02"

// holidays is the static exchange-closure table (weekday closures only;
// weekends are excluded by rule). Covers the supported backtest range.
var holidays = map[string]bool{
	// 2024
	"2024-01-01": true,
	"2024-02-09": true, "2024-02-12": true, "2024-02-13": true,
	"2024-02-14": true, "2024-02-15": true, "2024-02-16": true,
	"2024-04-04": true, "2024-04-05": true,
	"2024-05-01": true, "2024-05-02": true, "2024-05-03": true,
	"2024-06-10": true,
	"2024-09-16": true, "2024-09-17": true,
	"2024-10-01": true, "2024-10-02": true, "2024-10-03": true,
	"2024-10-04": true, "2024-10-07": true,
	// 2025
	"2025-01-01": true,
	"2025-01-28": true, "2025-01-29": true, "2025-01-30": true,
	"2025-01-31": true, "2025-02-03": true, "2025-02-04": true,
	"2025-04-04": true,
	"2025-05-01": true, "2025-05-02": true, "2025-05-05": true,
	"2025-06-02": true,
	"2025-10-01": true, "2025-10-02": true, "2025-10-03": true,
	"2025-10-06": true, "2025-10-07": true, "2025-10-08": true,
	// 2026
	"2026-01-01": true, "2026-01-02": true,
	"2026-02-16": true, "2026-02-17": true, "2026-02-18": true,
	"2026-02-19": true, "2026-02-20": true,
	"2026-04-06": true,
	"2026-05-01": true,
	"2026-10-01": true, "2026-10-02": true,
	"2026-10-05": true, "2026-10-06": true, "2026-10-07": true,
}

// IsTradable reports whether the exchange is open on the given date:
// not a weekend and not a listed closure.
func IsTradable(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !holidays[t.Format(dateLayout)]
}

// TradingDays returns every tradable date in [start, end], ascending.
// Empty when start is after end.
func TradingDays(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsTradable(d) {
			days = append(days, d)
		}
	}
	return days
}

// ParseDate parses an ISO-8601 calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// parseRange resolves a ParameterSet date range into tradable days.
// Malformed or inverted ranges yield an empty slice, never an error.
func parseRange(startDate, endDate string) []time.Time {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return nil
	}
	return TradingDays(start, end)
}
