package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/karravan/booking-backend/internal/domain/valueobject"
	"github.com/karravan/booking-backend/internal/models"
	"github.com/karravan/booking-backend/internal/pkg/apperror"
)

// CaravanRepository отвечает за работу с таблицей caravans.
type CaravanRepository struct {
	db *sqlx.DB
}

// NewCaravanRepository создаёт экземпляр репозитория.
func NewCaravanRepository(db *sqlx.DB) *CaravanRepository {
	return &CaravanRepository{db: db}
}

// Create создаёт караван.
func (r *CaravanRepository) Create(ctx context.Context, caravan *models.Caravan) error {
	query := `
		INSERT INTO caravans (id, host_id, name, capacity, amenities, daily_rate, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		caravan.ID, caravan.HostID, caravan.Name, caravan.Capacity,
		pq.Array(caravan.Amenities), caravan.DailyRate, caravan.Status,
	).Scan(&caravan.CreatedAt, &caravan.UpdatedAt); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeStorage, "caravan repository: create")
	}

	return nil
}

// GetByID возвращает караван по идентификатору.
func (r *CaravanRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Caravan, error) {
	row := r.db.QueryRowxContext(ctx, `
		SELECT id, host_id, name, capacity, amenities, daily_rate, status, created_at, updated_at
		FROM caravans WHERE id = $1
	`, id)
	caravan, err := scanCaravan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrCaravanNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "caravan repository: get by id")
	}
	return caravan, nil
}

// List возвращает все караваны.
func (r *CaravanRepository) List(ctx context.Context) ([]models.Caravan, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT id, host_id, name, capacity, amenities, daily_rate, status, created_at, updated_at
		FROM caravans ORDER BY created_at
	`)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "caravan repository: list")
	}
	defer rows.Close()

	var caravans []models.Caravan
	for rows.Next() {
		caravan, err := scanCaravan(rows)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "caravan repository: list scan")
		}
		caravans = append(caravans, *caravan)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "caravan repository: list rows")
	}
	return caravans, nil
}

// UpdateStatus меняет статус каравана.
func (r *CaravanRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status valueobject.CaravanStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE caravans SET status = $2, updated_at = NOW() WHERE id = $1
	`, id, status)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeStorage, "caravan repository: update status")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return apperror.ErrCaravanNotFound
	}
	return nil
}

// rowScanner покрывает sqlx.Row и sqlx.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanCaravan читает караван вместе с массивом удобств.
func scanCaravan(row rowScanner) (*models.Caravan, error) {
	var caravan models.Caravan
	err := row.Scan(
		&caravan.ID, &caravan.HostID, &caravan.Name, &caravan.Capacity,
		pq.Array(&caravan.Amenities), &caravan.DailyRate, &caravan.Status,
		&caravan.CreatedAt, &caravan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &caravan, nil
}
