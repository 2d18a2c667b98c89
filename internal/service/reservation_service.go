package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/karravan/booking-backend/internal/domain/valueobject"
	"github.com/karravan/booking-backend/internal/logger"
	"github.com/karravan/booking-backend/internal/models"
	"github.com/karravan/booking-backend/internal/pkg/apperror"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	ListByCaravanID(ctx context.Context, caravanID uuid.UUID) ([]models.Reservation, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Reservation, error)
	// TransitionStatus атомарно переводит бронь из from в to и сообщает,
	// была ли запись обновлена. false означает, что статус уже изменился.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to valueobject.ReservationStatus) (bool, error)
}

type UserRepoForReservation interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type CaravanRepoForReservation interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Caravan, error)
}

// ReservationService владеет машиной состояний брони и правилами доступности.
type ReservationService struct {
	repo     ReservationRepository
	users    UserRepoForReservation
	caravans CaravanRepoForReservation

	// Сериализует проверку пересечения и вставку по каравану,
	// чтобы два конкурентных Create не прошли оба.
	caravanLocks *keyedMutex
}

func NewReservationService(repo ReservationRepository, users UserRepoForReservation, caravans CaravanRepoForReservation) *ReservationService {
	return &ReservationService{
		repo:         repo,
		users:        users,
		caravans:     caravans,
		caravanLocks: newKeyedMutex(),
	}
}

// Create создаёт бронь в статусе pending. Средства при создании не списываются
// и не проверяются: оплата и есть подтверждение (см. PaymentService).
func (s *ReservationService) Create(ctx context.Context, guestID, caravanID uuid.UUID, start, end time.Time) (*models.Reservation, error) {
	if _, err := s.users.GetByID(ctx, guestID); err != nil {
		return nil, err
	}

	caravan, err := s.caravans.GetByID(ctx, caravanID)
	if err != nil {
		return nil, err
	}

	rng, err := valueobject.NewDateRange(start, end)
	if err != nil {
		return nil, err
	}

	if caravan.Status != valueobject.CaravanStatusAvailable {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "караван недоступен для бронирования")
	}

	// Цена фиксируется по ставке, действующей на момент создания брони.
	totalPrice := float64(rng.Nights()) * caravan.DailyRate

	unlock := s.caravanLocks.Lock(caravanID)
	defer unlock()

	existing, err := s.repo.ListByCaravanID(ctx, caravanID)
	if err != nil {
		return nil, err
	}

	var held []valueobject.DateRange
	for _, r := range existing {
		if r.Status.IsActive() {
			held = append(held, r.Range())
		}
	}

	if valueobject.HasConflict(rng, held) {
		return nil, apperror.ErrDatesConflict
	}

	reservation := &models.Reservation{
		ID:         uuid.New(),
		UserID:     guestID,
		CaravanID:  caravanID,
		StartDate:  rng.Start,
		EndDate:    rng.End,
		Status:     valueobject.ReservationStatusPending,
		TotalPrice: totalPrice,
	}

	if err := s.repo.Create(ctx, reservation); err != nil {
		return nil, err
	}

	if logger.Log != nil {
		logger.Log.WithFields(map[string]interface{}{
			"reservation_id": reservation.ID,
			"caravan_id":     caravanID,
			"nights":         rng.Nights(),
			"total_price":    totalPrice,
		}).Info("reservation service: бронь создана")
	}

	return reservation, nil
}

// Approve переводит бронь pending -> approved. Разрешено только хосту каравана.
func (s *ReservationService) Approve(ctx context.Context, id, actingHostID uuid.UUID) (*models.Reservation, error) {
	return s.hostTransition(ctx, id, actingHostID, valueobject.ReservationStatusApproved)
}

// Reject переводит бронь pending -> rejected. Разрешено только хосту каравана.
func (s *ReservationService) Reject(ctx context.Context, id, actingHostID uuid.UUID) (*models.Reservation, error) {
	return s.hostTransition(ctx, id, actingHostID, valueobject.ReservationStatusRejected)
}

func (s *ReservationService) hostTransition(ctx context.Context, id, actingHostID uuid.UUID, to valueobject.ReservationStatus) (*models.Reservation, error) {
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	caravan, err := s.caravans.GetByID(ctx, reservation.CaravanID)
	if err != nil {
		return nil, err
	}
	if caravan.HostID != actingHostID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "только хост каравана может изменить статус брони")
	}

	if reservation.Status != valueobject.ReservationStatusPending {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "бронь уже обработана")
	}

	updated, err := s.repo.TransitionStatus(ctx, id, valueobject.ReservationStatusPending, to)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Конкурентный вызов успел раньше.
		return nil, apperror.New(apperror.ErrCodeInvalidState, "бронь уже обработана")
	}

	reservation.Status = to
	return reservation, nil
}

// Complete переводит бронь approved -> completed после окончания аренды.
// Проверка календарной даты окончания сознательно не выполняется.
func (s *ReservationService) Complete(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if reservation.Status != valueobject.ReservationStatusApproved {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "завершить можно только подтверждённую бронь")
	}

	updated, err := s.repo.TransitionStatus(ctx, id, valueobject.ReservationStatusApproved, valueobject.ReservationStatusCompleted)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "завершить можно только подтверждённую бронь")
	}

	reservation.Status = valueobject.ReservationStatusCompleted
	return reservation, nil
}

// Cancel отменяет бронь из pending или approved. Разрешено гостю брони и хосту каравана.
func (s *ReservationService) Cancel(ctx context.Context, id, actingUserID uuid.UUID) (*models.Reservation, error) {
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	caravan, err := s.caravans.GetByID(ctx, reservation.CaravanID)
	if err != nil {
		return nil, err
	}
	if actingUserID != reservation.UserID && actingUserID != caravan.HostID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "отменить бронь может только её гость или хост каравана")
	}

	if !reservation.Status.CanTransitionTo(valueobject.ReservationStatusCancelled) {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "бронь нельзя отменить в текущем статусе")
	}

	updated, err := s.repo.TransitionStatus(ctx, id, reservation.Status, valueobject.ReservationStatusCancelled)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "бронь нельзя отменить в текущем статусе")
	}

	reservation.Status = valueobject.ReservationStatusCancelled
	return reservation, nil
}

// GetByID возвращает бронь по идентификатору.
func (s *ReservationService) GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByCaravan возвращает все брони каравана.
func (s *ReservationService) ListByCaravan(ctx context.Context, caravanID uuid.UUID) ([]models.Reservation, error) {
	return s.repo.ListByCaravanID(ctx, caravanID)
}

// ListByUser возвращает все брони гостя.
func (s *ReservationService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Reservation, error) {
	return s.repo.ListByUserID(ctx, userID)
}
