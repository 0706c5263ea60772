package utils

import (
	"time"

	"equipshare-backend/internal/domain"
)

const (
	daysPerWeek  = 7
	daysPerMonth = 30
)

// CalculateBookingTotal prices a stay using the equipment's flat tiers.
// Tier precedence: monthly price for stays of 30+ days, weekly price for
// 7+ days, daily price otherwise; a tier only applies when the host set
// that price. Units are rounded up, so a 10-day stay against a weekly
// price bills 2 weeks.
func CalculateBookingTotal(eq *domain.Equipment, start, end time.Time) (int32, error) {
	days, err := RentalDays(start, end)
	if err != nil {
		return 0, err
	}

	switch {
	case days >= daysPerMonth && eq.MonthlyPriceCents > 0:
		return eq.MonthlyPriceCents * ceilDiv(days, daysPerMonth), nil
	case days >= daysPerWeek && eq.WeeklyPriceCents > 0:
		return eq.WeeklyPriceCents * ceilDiv(days, daysPerWeek), nil
	default:
		return eq.DailyPriceCents * days, nil
	}
}

// QuoteWithOverrides prices a stay day by day, honoring per-day price
// overrides from the availability ledger. This is the display-quote
// contract; booking totals use CalculateBookingTotal, which ignores
// overrides.
func QuoteWithOverrides(eq *domain.Equipment, start, end time.Time, overrides map[string]int32) (int32, error) {
	days, err := RentalDays(start, end)
	if err != nil {
		return 0, err
	}

	start = TruncateToDay(start)
	var total int32
	for i := int32(0); i < days; i++ {
		day := start.AddDate(0, 0, int(i))
		if cents, ok := overrides[FormatDate(day)]; ok {
			total += cents
		} else {
			total += eq.DailyPriceCents
		}
	}
	return total, nil
}

func ceilDiv(n, unit int32) int32 {
	return (n + unit - 1) / unit
}
