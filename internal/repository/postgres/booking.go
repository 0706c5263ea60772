package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"equipshare-backend/internal/domain"
	"equipshare-backend/internal/repository"

	"github.com/lib/pq"
)

const bookingColumns = `id, guest_id, host_id, equipment_id, start_date, end_date, total_price_cents, status, COALESCE(guest_message, ''), COALESCE(host_notes, ''), created_at, updated_at`

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

// CreateIfAvailable runs the availability gate and the insert inside one
// transaction. The equipment row lock serializes concurrent requests for
// the same item, so of two overlapping create calls exactly one commits;
// the booked days are flipped to unavailable before the commit, keeping
// the ledger and the booking set in sync.
func (r *bookingRepository) CreateIfAvailable(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var equipmentID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM equipment WHERE id = $1 FOR UPDATE`, b.EquipmentID).Scan(&equipmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}

	var blocked int32
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM availability WHERE equipment_id = $1 AND date BETWEEN $2 AND $3 AND is_available = false`,
		b.EquipmentID, b.StartDate, b.EndDate,
	).Scan(&blocked)
	if err != nil {
		return err
	}
	if blocked > 0 {
		return domain.ErrUnavailableRange
	}

	var overlapping int32
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM bookings WHERE equipment_id = $1 AND status IN ('pending', 'confirmed') AND start_date <= $3 AND end_date >= $2`,
		b.EquipmentID, b.StartDate, b.EndDate,
	).Scan(&overlapping)
	if err != nil {
		return err
	}
	if overlapping > 0 {
		return domain.ErrUnavailableRange
	}

	now := time.Now()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO bookings (guest_id, host_id, equipment_id, start_date, end_date, total_price_cents, status, guest_message, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		b.GuestID, b.HostID, b.EquipmentID, b.StartDate, b.EndDate, b.TotalPriceCents, b.Status, b.GuestMessage, now, now,
	).Scan(&b.ID)
	if err != nil {
		return err
	}
	b.CreatedAt = now
	b.UpdatedAt = now

	// Block every booked day, creating rows for days outside the seeded
	// horizon.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO availability (equipment_id, date, is_available, created_at)
		 SELECT $1, d::date, false, $4
		 FROM generate_series($2::date, $3::date, '1 day') AS d
		 ON CONFLICT (equipment_id, date) DO UPDATE SET is_available = false`,
		b.EquipmentID, b.StartDate, b.EndDate, now,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b := &domain.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.GuestID, &b.HostID, &b.EquipmentID, &b.StartDate, &b.EndDate, &b.TotalPriceCents, &b.Status, &b.GuestMessage, &b.HostNotes, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status = $1, host_notes = $2, updated_at = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, b.Status, b.HostNotes, time.Now(), b.ID)
	return err
}

func (r *bookingRepository) ListByGuest(ctx context.Context, guestID string, status string) ([]domain.BookingDetail, error) {
	return r.listWithCounterpart(ctx, "guest_id", "host_id", guestID, status)
}

func (r *bookingRepository) ListByHost(ctx context.Context, hostID string, status string) ([]domain.BookingDetail, error) {
	return r.listWithCounterpart(ctx, "host_id", "guest_id", hostID, status)
}

// listWithCounterpart joins bookings with their equipment and the user on
// the other side of the transaction (the host when listing as guest, the
// guest when listing as host).
func (r *bookingRepository) listWithCounterpart(ctx context.Context, userColumn, counterpartColumn, userID, status string) ([]domain.BookingDetail, error) {
	query := fmt.Sprintf(`SELECT b.id, b.guest_id, b.host_id, b.equipment_id, b.start_date, b.end_date, b.total_price_cents, b.status, COALESCE(b.guest_message, ''), COALESCE(b.host_notes, ''), b.created_at, b.updated_at,
	       e.id, e.title, e.equipment_type, e.daily_price_cents, e.location, e.images,
	       u.id, u.first_name, u.last_name, COALESCE(u.avatar_url, '')
	FROM bookings b
	JOIN equipment e ON e.id = b.equipment_id
	JOIN users u ON u.id = b.%s
	WHERE b.%s = $1`, counterpartColumn, userColumn)

	args := []interface{}{userID}
	if status != "" {
		query += " AND b.status = $2"
		args = append(args, status)
	}
	query += " ORDER BY b.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []domain.BookingDetail
	for rows.Next() {
		var d domain.BookingDetail
		eq := &domain.Equipment{}
		cp := &domain.UserSummary{}
		err := rows.Scan(
			&d.Booking.ID, &d.Booking.GuestID, &d.Booking.HostID, &d.Booking.EquipmentID,
			&d.Booking.StartDate, &d.Booking.EndDate, &d.Booking.TotalPriceCents, &d.Booking.Status,
			&d.Booking.GuestMessage, &d.Booking.HostNotes, &d.Booking.CreatedAt, &d.Booking.UpdatedAt,
			&eq.ID, &eq.Title, &eq.EquipmentType, &eq.DailyPriceCents, &eq.Location, pq.Array(&eq.Images),
			&cp.ID, &cp.FirstName, &cp.LastName, &cp.AvatarURL,
		)
		if err != nil {
			return nil, err
		}
		d.Equipment = eq
		d.Counterpart = cp
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *bookingRepository) CreateTripPhoto(ctx context.Context, p *domain.TripPhoto) error {
	query := `INSERT INTO trip_photos (booking_id, user_id, photo_type, file_key, status, expires_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	p.CreatedAt = time.Now()
	return r.db.QueryRowContext(ctx, query, p.BookingID, p.UserID, p.PhotoType, p.FileKey, p.Status, p.ExpiresAt, p.CreatedAt).Scan(&p.ID)
}

func (r *bookingRepository) GetTripPhoto(ctx context.Context, id string) (*domain.TripPhoto, error) {
	query := `SELECT id, booking_id, user_id, photo_type, file_key, status, expires_at, created_at FROM trip_photos WHERE id = $1`
	p := &domain.TripPhoto{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.BookingID, &p.UserID, &p.PhotoType, &p.FileKey, &p.Status, &p.ExpiresAt, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *bookingRepository) ConfirmTripPhoto(ctx context.Context, id string) error {
	query := `UPDATE trip_photos SET status = 'CONFIRMED', expires_at = NULL WHERE id = $1 AND status = 'PENDING'`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) ListTripPhotos(ctx context.Context, bookingID string) ([]domain.TripPhoto, error) {
	query := `SELECT id, booking_id, user_id, photo_type, file_key, status, expires_at, created_at FROM trip_photos WHERE booking_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []domain.TripPhoto
	for rows.Next() {
		var p domain.TripPhoto
		if err := rows.Scan(&p.ID, &p.BookingID, &p.UserID, &p.PhotoType, &p.FileKey, &p.Status, &p.ExpiresAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (r *bookingRepository) DeleteExpiredPendingPhotos(ctx context.Context) (int64, error) {
	query := `DELETE FROM trip_photos WHERE status = 'PENDING' AND expires_at IS NOT NULL AND expires_at < $1`
	res, err := r.db.ExecContext(ctx, query, time.Now())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
