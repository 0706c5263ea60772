package jobs

import (
	"context"
	"time"

	"equipshare-backend/internal/domain"
	"equipshare-backend/internal/logger"
)

// ExtendAvailabilityHorizon keeps every active listing's availability
// ledger materialized out to the full horizon. New rows default to
// available; existing rows are untouched.
func (jr *JobRunner) ExtendAvailabilityHorizon() {
	jr.runWithRecovery("ExtendAvailabilityHorizon", func() {
		ctx := context.Background()

		rows, err := jr.db.QueryContext(ctx, `SELECT id FROM equipment WHERE is_active = true`)
		if err != nil {
			logger.Error("Failed to list active equipment", "error", err)
			return
		}
		defer rows.Close()

		var ids []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				logger.Error("Failed to scan equipment id", "error", err)
				continue
			}
			ids = append(ids, id)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating active equipment", "error", err)
			return
		}

		today := time.Now().UTC().Truncate(24 * time.Hour)
		extended := 0
		for _, id := range ids {
			if err := jr.store.AvailabilityRepository.SeedDays(ctx, id, today, domain.AvailabilityHorizonDays); err != nil {
				logger.Error("Failed to extend availability horizon", "equipment_id", id, "error", err)
				continue
			}
			extended++
		}

		logger.Info("Extended availability horizons", "equipment_count", extended, "horizon_days", domain.AvailabilityHorizonDays)
	})
}

// CompleteEndedBookings moves confirmed bookings whose end date has passed
// into the completed state.
func (jr *JobRunner) CompleteEndedBookings() {
	jr.runWithRecovery("CompleteEndedBookings", func() {
		ctx := context.Background()

		query := `
			UPDATE bookings
			SET status = 'completed',
			    updated_at = NOW()
			WHERE status = 'confirmed'
			  AND end_date < $1
			RETURNING id, equipment_id, end_date
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().UTC().Format("2006-01-02"))
		if err != nil {
			logger.Error("Failed to complete ended bookings", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var id, equipmentID string
			var endDate time.Time
			if err := rows.Scan(&id, &equipmentID, &endDate); err != nil {
				logger.Error("Failed to scan completed booking", "error", err)
				continue
			}
			logger.Debug("Completed booking", "booking_id", id, "equipment_id", equipmentID, "end_date", endDate)
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating completed bookings", "error", err)
			return
		}

		logger.Info("Completed ended bookings", "count", count)
	})
}

// PurgeExpiredPendingUploads deletes trip photo rows whose upload window
// expired before the bytes arrived.
func (jr *JobRunner) PurgeExpiredPendingUploads() {
	jr.runWithRecovery("PurgeExpiredPendingUploads", func() {
		ctx := context.Background()

		deleted, err := jr.store.BookingRepository.DeleteExpiredPendingPhotos(ctx)
		if err != nil {
			logger.Error("Failed to purge expired pending uploads", "error", err)
			return
		}

		logger.Info("Purged expired pending uploads", "count", deleted)
	})
}
