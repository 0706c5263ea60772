package utils

import (
	"testing"
	"time"

	"equipshare-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		d, err := ParseDate("2024-01-15")
		assert.NoError(t, err)
		assert.Equal(t, date(2024, 1, 15), d)
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseDate("2024/01/15")
		assert.Error(t, err)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "date", verr.Field)
	})
}

func TestExpandDateRange(t *testing.T) {
	t.Run("Single day", func(t *testing.T) {
		dates, err := ExpandDateRange(date(2024, 3, 10), date(2024, 3, 10))
		assert.NoError(t, err)
		assert.Len(t, dates, 1)
		assert.Equal(t, date(2024, 3, 10), dates[0])
	})

	t.Run("Inclusive of both endpoints", func(t *testing.T) {
		start := date(2024, 3, 10)
		end := date(2024, 3, 14)
		dates, err := ExpandDateRange(start, end)
		assert.NoError(t, err)
		assert.Len(t, dates, 5) // (end - start).days + 1
		assert.Equal(t, start, dates[0])
		assert.Equal(t, end, dates[len(dates)-1])
		for i := 1; i < len(dates); i++ {
			assert.True(t, dates[i].After(dates[i-1]), "dates must be strictly increasing")
		}
	})

	t.Run("Cross month boundary", func(t *testing.T) {
		dates, err := ExpandDateRange(date(2024, 1, 30), date(2024, 2, 2))
		assert.NoError(t, err)
		assert.Len(t, dates, 4)
		assert.Equal(t, date(2024, 2, 2), dates[3])
	})

	t.Run("Leap year february", func(t *testing.T) {
		dates, err := ExpandDateRange(date(2024, 2, 28), date(2024, 3, 1))
		assert.NoError(t, err)
		assert.Len(t, dates, 3)
		assert.Equal(t, date(2024, 2, 29), dates[1])
	})

	t.Run("Full 365-day horizon", func(t *testing.T) {
		start := date(2025, 1, 1)
		end := start.AddDate(0, 0, domain.AvailabilityHorizonDays-1)
		dates, err := ExpandDateRange(start, end)
		assert.NoError(t, err)
		assert.Len(t, dates, domain.AvailabilityHorizonDays)
	})

	t.Run("Start after end", func(t *testing.T) {
		_, err := ExpandDateRange(date(2024, 3, 14), date(2024, 3, 10))
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})

	t.Run("Time components are dropped", func(t *testing.T) {
		start := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
		end := time.Date(2024, 3, 11, 1, 0, 0, 0, time.UTC)
		dates, err := ExpandDateRange(start, end)
		assert.NoError(t, err)
		assert.Len(t, dates, 2)
		assert.Equal(t, date(2024, 3, 10), dates[0])
	})
}

func TestRentalDays(t *testing.T) {
	t.Run("Whole days", func(t *testing.T) {
		days, err := RentalDays(date(2024, 3, 10), date(2024, 3, 13))
		assert.NoError(t, err)
		assert.Equal(t, int32(3), days)
	})

	t.Run("Fractional elapsed time rounds up", func(t *testing.T) {
		start := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
		end := time.Date(2024, 3, 13, 14, 0, 0, 0, time.UTC)
		days, err := RentalDays(start, end)
		assert.NoError(t, err)
		assert.Equal(t, int32(4), days)
	})

	t.Run("Same day is invalid", func(t *testing.T) {
		_, err := RentalDays(date(2024, 3, 10), date(2024, 3, 10))
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})

	t.Run("End before start is invalid", func(t *testing.T) {
		_, err := RentalDays(date(2024, 3, 13), date(2024, 3, 10))
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})
}
