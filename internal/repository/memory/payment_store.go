package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/karravan/booking-backend/internal/domain/valueobject"
	"github.com/karravan/booking-backend/internal/models"
	"github.com/karravan/booking-backend/internal/pkg/apperror"
)

// PaymentStore реализует интерфейс репозитория платежей.
type PaymentStore struct {
	s *Store
}

// Capture выполняет списание, платёж и подтверждение брони под одним
// захватом мьютекса: частичных состояний не остаётся.
func (p *PaymentStore) Capture(ctx context.Context, reservationID, guestID uuid.UUID, amount float64) (*models.Payment, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	guest, ok := p.s.users[guestID]
	if !ok {
		return nil, apperror.ErrUserNotFound
	}

	reservation, ok := p.s.reservations[reservationID]
	if !ok {
		return nil, apperror.ErrReservationNotFound
	}
	if reservation.Status != valueobject.ReservationStatusPending {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "оплатить можно только бронь в ожидании")
	}

	if guest.Balance < amount {
		return nil, apperror.ErrInsufficientFunds
	}

	now := time.Now().UTC()
	guest.Balance -= amount
	guest.UpdatedAt = now
	reservation.Status = valueobject.ReservationStatusApproved
	reservation.UpdatedAt = now

	payment := &models.Payment{
		ID:            uuid.New(),
		ReservationID: reservationID,
		Amount:        amount,
		Status:        valueobject.PaymentStatusCompleted,
		PaymentDate:   now,
	}
	p.s.payments[payment.ID] = payment

	clone := *payment
	return &clone, nil
}

func (p *PaymentStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	payment, ok := p.s.payments[id]
	if !ok {
		return nil, apperror.ErrPaymentNotFound
	}
	clone := *payment
	return &clone, nil
}

func (p *PaymentStore) ListCompletedByGuestID(ctx context.Context, guestID uuid.UUID) ([]models.Payment, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	var payments []models.Payment
	for _, pay := range p.s.payments {
		if pay.Status != valueobject.PaymentStatusCompleted {
			continue
		}
		reservation, ok := p.s.reservations[pay.ReservationID]
		if !ok || reservation.UserID != guestID {
			continue
		}
		payments = append(payments, *pay)
	}
	return payments, nil
}

func (p *PaymentStore) Deposit(ctx context.Context, userID uuid.UUID, amount float64) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	user, ok := p.s.users[userID]
	if !ok {
		return apperror.ErrUserNotFound
	}
	user.Balance += amount
	user.UpdatedAt = time.Now().UTC()
	return nil
}
