package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/karravan/booking-backend/internal/domain/valueobject"
	"github.com/karravan/booking-backend/internal/logger"
	"github.com/karravan/booking-backend/internal/models"
	"github.com/karravan/booking-backend/internal/pkg/apperror"
)

type PaymentRepository interface {
	// Capture атомарно списывает средства гостя, создаёт завершённый платёж
	// и переводит бронь pending -> approved. Либо происходят все три мутации,
	// либо ни одной.
	Capture(ctx context.Context, reservationID, guestID uuid.UUID, amount float64) (*models.Payment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListCompletedByGuestID(ctx context.Context, guestID uuid.UUID) ([]models.Payment, error)
	Deposit(ctx context.Context, userID uuid.UUID, amount float64) error
}

type ReservationRepoForPayment interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
}

type UserRepoForPayment interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// PaymentService проводит оплату брони. Успешная оплата заменяет ручное
// подтверждение хоста: бронь сразу становится approved.
type PaymentService struct {
	repo         PaymentRepository
	reservations ReservationRepoForPayment
	users        UserRepoForPayment

	// Сериализует оплату по брони: из двух конкурентных попыток
	// списать средства может только одна.
	reservationLocks *keyedMutex
}

func NewPaymentService(repo PaymentRepository, reservations ReservationRepoForPayment, users UserRepoForPayment) *PaymentService {
	return &PaymentService{
		repo:             repo,
		reservations:     reservations,
		users:            users,
		reservationLocks: newKeyedMutex(),
	}
}

// ProcessPayment списывает стоимость брони с баланса гостя и подтверждает бронь.
func (s *PaymentService) ProcessPayment(ctx context.Context, guestID, reservationID uuid.UUID) (*models.Payment, error) {
	unlock := s.reservationLocks.Lock(reservationID)
	defer unlock()

	guest, err := s.users.GetByID(ctx, guestID)
	if err != nil {
		return nil, err
	}

	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.UserID != guestID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "оплатить бронь может только её гость")
	}

	if reservation.Status != valueobject.ReservationStatusPending {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "оплатить можно только бронь в ожидании")
	}

	if guest.Balance < reservation.TotalPrice {
		return nil, apperror.ErrInsufficientFunds
	}

	payment, err := s.repo.Capture(ctx, reservationID, guestID, reservation.TotalPrice)
	if err != nil {
		return nil, err
	}

	if logger.Log != nil {
		logger.Log.WithFields(map[string]interface{}{
			"payment_id":     payment.ID,
			"reservation_id": reservationID,
			"amount":         payment.Amount,
		}).Info("payment service: оплата проведена, бронь подтверждена")
	}

	return payment, nil
}

// GetPaymentHistory возвращает завершённые платежи по броням гостя.
// Порядок не гарантируется.
func (s *PaymentService) GetPaymentHistory(ctx context.Context, guestID uuid.UUID) ([]models.Payment, error) {
	if _, err := s.users.GetByID(ctx, guestID); err != nil {
		return nil, err
	}
	return s.repo.ListCompletedByGuestID(ctx, guestID)
}

// GetPaymentByID возвращает платёж по идентификатору.
func (s *PaymentService) GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return s.repo.GetByID(ctx, id)
}

// Deposit пополняет баланс пользователя.
func (s *PaymentService) Deposit(ctx context.Context, userID uuid.UUID, amount float64) error {
	if amount <= 0 {
		return apperror.New(apperror.ErrCodeValidation, "сумма должна быть положительной")
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.repo.Deposit(ctx, userID, amount)
}
