package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/karravan/booking-backend/internal/domain/valueobject"
	"github.com/karravan/booking-backend/internal/models"
	"github.com/karravan/booking-backend/internal/pkg/apperror"
	"github.com/karravan/booking-backend/internal/repository/common"
)

// PaymentRepository отвечает за работу с таблицей payments и балансами users.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository создаёт экземпляр репозитория.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Capture проводит оплату брони одной транзакцией: списывает средства гостя,
// создаёт завершённый платёж и переводит бронь pending -> approved.
// Частичных состояний не остаётся: при любой ошибке всё откатывается.
func (r *PaymentRepository) Capture(ctx context.Context, reservationID, guestID uuid.UUID, amount float64) (*models.Payment, error) {
	var payment models.Payment

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		// Блокируем строку гостя и проверяем баланс
		var balance float64
		err := tx.GetContext(ctx, &balance,
			`SELECT balance FROM users WHERE id = $1 FOR UPDATE`, guestID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperror.ErrUserNotFound
			}
			return apperror.Wrap(err, apperror.ErrCodeStorage, "payment repository: lock guest")
		}
		if balance < amount {
			return apperror.ErrInsufficientFunds
		}

		// Подтверждаем бронь; проигравшая конкурентная попытка здесь остановится
		res, err := tx.ExecContext(ctx, `
			UPDATE reservations SET status = 'approved', updated_at = NOW()
			WHERE id = $1 AND status = 'pending'
		`, reservationID)
		if err != nil {
			return apperror.Wrap(err, apperror.ErrCodeStorage, "payment repository: approve reservation")
		}
		if affected, err := res.RowsAffected(); err != nil || affected == 0 {
			return apperror.New(apperror.ErrCodeInvalidState, "оплатить можно только бронь в ожидании")
		}

		// Списываем средства
		_, err = tx.ExecContext(ctx, `
			UPDATE users SET balance = balance - $2, updated_at = NOW() WHERE id = $1
		`, guestID, amount)
		if err != nil {
			return apperror.Wrap(err, apperror.ErrCodeStorage, "payment repository: debit balance")
		}

		// Создаём платёж; уникальный индекс по reservation_id защищает
		// от второго завершённого платежа на ту же бронь
		err = tx.GetContext(ctx, &payment, `
			INSERT INTO payments (id, reservation_id, amount, status, payment_date)
			VALUES ($1, $2, $3, 'completed', NOW())
			RETURNING id, reservation_id, amount, status, payment_date
		`, uuid.New(), reservationID, amount)
		if err != nil {
			return apperror.Wrap(err, apperror.ErrCodeStorage, "payment repository: create payment")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// GetByID возвращает платёж по идентификатору.
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return common.GetByID[models.Payment](ctx, r.db, "payments", id, apperror.ErrPaymentNotFound)
}

// ListCompletedByGuestID возвращает завершённые платежи по броням гостя.
func (r *PaymentRepository) ListCompletedByGuestID(ctx context.Context, guestID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.SelectContext(ctx, &payments, `
		SELECT p.id, p.reservation_id, p.amount, p.status, p.payment_date
		FROM payments p
		JOIN reservations res ON res.id = p.reservation_id
		WHERE res.user_id = $1 AND p.status = $2
	`, guestID, valueobject.PaymentStatusCompleted)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "payment repository: list by guest")
	}
	return payments, nil
}

// Deposit пополняет баланс пользователя.
func (r *PaymentRepository) Deposit(ctx context.Context, userID uuid.UUID, amount float64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET balance = balance + $2, updated_at = NOW() WHERE id = $1
	`, userID, amount)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeStorage, "payment repository: deposit")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return apperror.ErrUserNotFound
	}
	return nil
}
