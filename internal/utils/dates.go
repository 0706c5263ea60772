package utils

import (
	"math"
	"time"

	"equipshare-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd string into a UTC calendar date.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, domain.NewValidationError("date", "expected yyyy-mm-dd")
	}
	return t, nil
}

// FormatDate renders a calendar date as yyyy-mm-dd.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// TruncateToDay drops the time component, keeping the UTC calendar day.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ExpandDateRange returns the ordered, inclusive sequence of calendar days
// from start to end. Both seeding the availability ledger and range-based
// upserts iterate this sequence in date order.
func ExpandDateRange(start, end time.Time) ([]time.Time, error) {
	start = TruncateToDay(start)
	end = TruncateToDay(end)
	if start.After(end) {
		return nil, domain.ErrInvalidRange
	}

	days := int(end.Sub(start).Hours()/24) + 1
	dates := make([]time.Time, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates, nil
}

// RentalDays is the billable day count for a stay: the elapsed time from
// start to end divided into 24h units, rounded up. A zero or negative
// count is an invalid range.
func RentalDays(start, end time.Time) (int32, error) {
	days := int32(math.Ceil(end.Sub(start).Hours() / 24))
	if days <= 0 {
		return 0, domain.ErrInvalidRange
	}
	return days, nil
}
