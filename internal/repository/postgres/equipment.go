package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"equipshare-backend/internal/domain"
	"equipshare-backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const equipmentColumns = `id, host_id, title, description, equipment_type, COALESCE(scooter_subtype, ''), COALESCE(stroller_subtype, ''), brand, model, COALESCE(year, 0), daily_price_cents, COALESCE(weekly_price_cents, 0), COALESCE(monthly_price_cents, 0), location, latitude, longitude, features, images, is_verified, is_active, created_at, updated_at`

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

func scanEquipment(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Equipment, error) {
	e := &domain.Equipment{}
	var lat, lng sql.NullFloat64
	err := row.Scan(&e.ID, &e.HostID, &e.Title, &e.Description, &e.EquipmentType, &e.ScooterSubtype, &e.StrollerSubtype, &e.Brand, &e.Model, &e.Year, &e.DailyPriceCents, &e.WeeklyPriceCents, &e.MonthlyPriceCents, &e.Location, &lat, &lng, pq.Array(&e.Features), pq.Array(&e.Images), &e.IsVerified, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lat.Valid {
		e.Latitude = &lat.Float64
	}
	if lng.Valid {
		e.Longitude = &lng.Float64
	}
	return e, nil
}

func (r *equipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	query := `INSERT INTO equipment (host_id, title, description, equipment_type, scooter_subtype, stroller_subtype, brand, model, year, daily_price_cents, weekly_price_cents, monthly_price_cents, location, latitude, longitude, features, images, is_verified, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, NULLIF($9, 0), $10, NULLIF($11, 0), NULLIF($12, 0), $13, $14, $15, $16, $17, $18, $19, $20, $21) RETURNING id`
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	return r.db.QueryRowContext(ctx, query,
		e.HostID, e.Title, e.Description, e.EquipmentType, string(e.ScooterSubtype), string(e.StrollerSubtype),
		e.Brand, e.Model, e.Year, e.DailyPriceCents, e.WeeklyPriceCents, e.MonthlyPriceCents,
		e.Location, e.Latitude, e.Longitude, pq.Array(e.Features), pq.Array(e.Images),
		e.IsVerified, e.IsActive, now, now,
	).Scan(&e.ID)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	e, err := scanEquipment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *equipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	query := `UPDATE equipment SET title=$1, description=$2, scooter_subtype=NULLIF($3, ''), stroller_subtype=NULLIF($4, ''), brand=$5, model=$6, year=NULLIF($7, 0), daily_price_cents=$8, weekly_price_cents=NULLIF($9, 0), monthly_price_cents=NULLIF($10, 0), location=$11, latitude=$12, longitude=$13, features=$14, images=$15, is_active=$16, updated_at=$17 WHERE id=$18`
	_, err := r.db.ExecContext(ctx, query,
		e.Title, e.Description, string(e.ScooterSubtype), string(e.StrollerSubtype), e.Brand, e.Model, e.Year,
		e.DailyPriceCents, e.WeeklyPriceCents, e.MonthlyPriceCents, e.Location, e.Latitude, e.Longitude,
		pq.Array(e.Features), pq.Array(e.Images), e.IsActive, time.Now(), e.ID,
	)
	return err
}

// Deactivate soft-deletes a listing. Rows are never removed while bookings
// reference them.
func (r *equipmentRepository) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE equipment SET is_active = false, updated_at = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *equipmentRepository) ListByHost(ctx context.Context, hostID string, limit, offset int32) ([]domain.Equipment, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM equipment WHERE host_id = $1 AND is_active = true`
	if err := r.db.QueryRowContext(ctx, countQuery, hostID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE host_id = $1 AND is_active = true ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, hostID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items, err := collectEquipment(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

// Search applies the catalog filters. The query builder keeps the dynamic
// WHERE clause manageable; every filter is optional.
func (r *equipmentRepository) Search(ctx context.Context, f repository.EquipmentFilter) ([]domain.Equipment, int32, error) {
	base := psql.Select(equipmentColumns).
		From("equipment").
		Where(sq.Eq{"is_active": true})

	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		base = base.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
			sq.ILike{"brand": pattern},
			sq.ILike{"model": pattern},
		})
	}
	if f.EquipmentType != "" {
		base = base.Where(sq.Eq{"equipment_type": f.EquipmentType})
		if f.Subtype != "" {
			// The subtype column depends on the type; a subtype without a
			// type is ignored.
			switch domain.EquipmentType(f.EquipmentType) {
			case domain.EquipmentTypeMobilityScooter:
				base = base.Where(sq.Eq{"scooter_subtype": f.Subtype})
			case domain.EquipmentTypeBabyStroller:
				base = base.Where(sq.Eq{"stroller_subtype": f.Subtype})
			}
		}
	}
	if f.Location != "" {
		base = base.Where(sq.ILike{"location": "%" + f.Location + "%"})
	}
	if f.MinPriceCents > 0 {
		base = base.Where(sq.GtOrEq{"daily_price_cents": f.MinPriceCents})
	}
	if f.MaxPriceCents > 0 {
		base = base.Where(sq.LtOrEq{"daily_price_cents": f.MaxPriceCents})
	}
	if len(f.Features) > 0 {
		base = base.Where(sq.Expr("features && ?", pq.Array(f.Features)))
	}
	if f.Bounds != nil {
		base = base.Where(sq.And{
			sq.GtOrEq{"latitude": f.Bounds.MinLat},
			sq.LtOrEq{"latitude": f.Bounds.MaxLat},
			sq.GtOrEq{"longitude": f.Bounds.MinLng},
			sq.LtOrEq{"longitude": f.Bounds.MaxLng},
		})
	}

	countSQL, countArgs, err := psql.Select("count(*)").
		FromSelect(base, "sub").
		ToSql()
	if err != nil {
		return nil, 0, err
	}
	var count int32
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&count); err != nil {
		return nil, 0, err
	}

	pageSQL, pageArgs, err := base.
		OrderBy("created_at DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items, err := collectEquipment(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func collectEquipment(rows *sql.Rows) ([]domain.Equipment, error) {
	var items []domain.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

func (r *equipmentRepository) AddDocument(ctx context.Context, d *domain.EquipmentDocument) error {
	query := `INSERT INTO equipment_documents (equipment_id, document_type, document_url, is_verified, uploaded_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	d.UploadedAt = time.Now()
	return r.db.QueryRowContext(ctx, query, d.EquipmentID, d.DocumentType, d.DocumentURL, d.IsVerified, d.UploadedAt).Scan(&d.ID)
}

func (r *equipmentRepository) ListDocuments(ctx context.Context, equipmentID string) ([]domain.EquipmentDocument, error) {
	query := `SELECT id, equipment_id, document_type, document_url, is_verified, uploaded_at FROM equipment_documents WHERE equipment_id = $1 ORDER BY uploaded_at DESC`
	rows, err := r.db.QueryContext(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.EquipmentDocument
	for rows.Next() {
		var d domain.EquipmentDocument
		if err := rows.Scan(&d.ID, &d.EquipmentID, &d.DocumentType, &d.DocumentURL, &d.IsVerified, &d.UploadedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
