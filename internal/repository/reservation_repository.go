package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/karravan/booking-backend/internal/domain/valueobject"
	"github.com/karravan/booking-backend/internal/models"
	"github.com/karravan/booking-backend/internal/pkg/apperror"
	"github.com/karravan/booking-backend/internal/repository/common"
)

// ReservationRepository отвечает за работу с таблицей reservations.
type ReservationRepository struct {
	db *sqlx.DB
}

// NewReservationRepository создаёт экземпляр репозитория.
func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create вставляет бронь, повторно проверяя пересечение дат внутри транзакции
// с блокировкой строки каравана. Сервис уже проверил пересечение под своим
// мьютексом; здесь тот же инвариант защищается на случай нескольких процессов.
func (r *ReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		var caravanID uuid.UUID
		err := tx.GetContext(ctx, &caravanID,
			`SELECT id FROM caravans WHERE id = $1 FOR UPDATE`, reservation.CaravanID)
		if err != nil {
			return apperror.Wrap(err, apperror.ErrCodeStorage, "reservation repository: lock caravan")
		}

		var conflicts int
		err = tx.GetContext(ctx, &conflicts, `
			SELECT COUNT(*) FROM reservations
			WHERE caravan_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date < $3 AND $2 < end_date
		`, reservation.CaravanID, reservation.StartDate, reservation.EndDate)
		if err != nil {
			return apperror.Wrap(err, apperror.ErrCodeStorage, "reservation repository: conflict check")
		}
		if conflicts > 0 {
			return apperror.ErrDatesConflict
		}

		err = tx.QueryRowxContext(ctx, `
			INSERT INTO reservations (id, user_id, caravan_id, start_date, end_date, status, total_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING created_at, updated_at
		`,
			reservation.ID, reservation.UserID, reservation.CaravanID,
			reservation.StartDate, reservation.EndDate, reservation.Status, reservation.TotalPrice,
		).Scan(&reservation.CreatedAt, &reservation.UpdatedAt)
		if err != nil {
			return apperror.Wrap(err, apperror.ErrCodeStorage, "reservation repository: create")
		}
		return nil
	})
}

// GetByID возвращает бронь по идентификатору.
func (r *ReservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	return common.GetByID[models.Reservation](ctx, r.db, "reservations", id, apperror.ErrReservationNotFound)
}

// ListByCaravanID возвращает все брони каравана.
func (r *ReservationRepository) ListByCaravanID(ctx context.Context, caravanID uuid.UUID) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.SelectContext(ctx, &reservations, `
		SELECT * FROM reservations WHERE caravan_id = $1 ORDER BY start_date
	`, caravanID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "reservation repository: list by caravan")
	}
	return reservations, nil
}

// ListByUserID возвращает все брони гостя.
func (r *ReservationRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.SelectContext(ctx, &reservations, `
		SELECT * FROM reservations WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "reservation repository: list by user")
	}
	return reservations, nil
}

// TransitionStatus атомарно переводит бронь из from в to.
// Возвращает false, если статус уже не from: проигравший конкурентный
// вызов получает InvalidState на уровне сервиса.
func (r *ReservationRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to valueobject.ReservationStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reservations SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`, id, from, to)
	if err != nil {
		return false, apperror.Wrap(err, apperror.ErrCodeStorage, "reservation repository: transition status")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, apperror.Wrap(err, apperror.ErrCodeStorage, "reservation repository: transition status rows")
	}
	return affected > 0, nil
}
