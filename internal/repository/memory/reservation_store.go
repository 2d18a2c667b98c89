package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/karravan/booking-backend/internal/domain/valueobject"
	"github.com/karravan/booking-backend/internal/models"
	"github.com/karravan/booking-backend/internal/pkg/apperror"
)

// ReservationStore реализует интерфейс репозитория броней.
type ReservationStore struct {
	s *Store
}

// Create повторяет защиту Postgres-репозитория: проверка пересечения
// и вставка происходят под одним захватом мьютекса.
func (r *ReservationStore) Create(ctx context.Context, reservation *models.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	candidate := reservation.Range()
	for _, existing := range r.s.reservations {
		if existing.CaravanID != reservation.CaravanID || !existing.Status.IsActive() {
			continue
		}
		if candidate.Overlaps(existing.Range()) {
			return apperror.ErrDatesConflict
		}
	}

	now := time.Now().UTC()
	reservation.CreatedAt = now
	reservation.UpdatedAt = now
	clone := *reservation
	r.s.reservations[reservation.ID] = &clone
	return nil
}

func (r *ReservationStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	reservation, ok := r.s.reservations[id]
	if !ok {
		return nil, apperror.ErrReservationNotFound
	}
	clone := *reservation
	return &clone, nil
}

func (r *ReservationStore) ListByCaravanID(ctx context.Context, caravanID uuid.UUID) ([]models.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var reservations []models.Reservation
	for _, rsv := range r.s.reservations {
		if rsv.CaravanID == caravanID {
			reservations = append(reservations, *rsv)
		}
	}
	return reservations, nil
}

func (r *ReservationStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var reservations []models.Reservation
	for _, rsv := range r.s.reservations {
		if rsv.UserID == userID {
			reservations = append(reservations, *rsv)
		}
	}
	return reservations, nil
}

// TransitionStatus атомарно переводит бронь из from в to.
// false означает, что статус уже изменился конкурентным вызовом.
func (r *ReservationStore) TransitionStatus(ctx context.Context, id uuid.UUID, from, to valueobject.ReservationStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	reservation, ok := r.s.reservations[id]
	if !ok {
		return false, apperror.ErrReservationNotFound
	}
	if reservation.Status != from {
		return false, nil
	}
	reservation.Status = to
	reservation.UpdatedAt = time.Now().UTC()
	return true, nil
}
