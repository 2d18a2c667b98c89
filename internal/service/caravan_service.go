package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/karravan/booking-backend/internal/domain/valueobject"
	"github.com/karravan/booking-backend/internal/models"
	"github.com/karravan/booking-backend/internal/pkg/apperror"
	"github.com/karravan/booking-backend/internal/validation"
)

type CaravanRepository interface {
	Create(ctx context.Context, caravan *models.Caravan) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Caravan, error)
	List(ctx context.Context) ([]models.Caravan, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status valueobject.CaravanStatus) error
}

type UserRepoForCaravan interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// CaravanService отвечает за объявления караванов.
type CaravanService struct {
	repo  CaravanRepository
	users UserRepoForCaravan
}

func NewCaravanService(repo CaravanRepository, users UserRepoForCaravan) *CaravanService {
	return &CaravanService{repo: repo, users: users}
}

// CreateCaravan создаёт караван. Владелец должен существовать и иметь роль host.
func (s *CaravanService) CreateCaravan(ctx context.Context, hostID uuid.UUID, name string, capacity int, amenities []string, dailyRate float64) (*models.Caravan, error) {
	host, err := s.users.GetByID(ctx, hostID)
	if err != nil {
		return nil, err
	}
	if !host.IsHost() {
		return nil, apperror.New(apperror.ErrCodeNotFound, "хост не найден")
	}

	if err := validation.ValidateLength("название", name, 1, validation.MaxCaravanNameLen); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateCapacity(capacity); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateDailyRate(dailyRate); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	caravan := &models.Caravan{
		ID:        uuid.New(),
		HostID:    hostID,
		Name:      name,
		Capacity:  capacity,
		Amenities: amenities,
		DailyRate: dailyRate,
		Status:    valueobject.CaravanStatusAvailable,
	}

	if err := s.repo.Create(ctx, caravan); err != nil {
		return nil, err
	}
	return caravan, nil
}

// GetCaravanByID возвращает караван по идентификатору.
func (s *CaravanService) GetCaravanByID(ctx context.Context, id uuid.UUID) (*models.Caravan, error) {
	return s.repo.GetByID(ctx, id)
}

// ListCaravans возвращает все караваны.
func (s *CaravanService) ListCaravans(ctx context.Context) ([]models.Caravan, error) {
	return s.repo.List(ctx)
}

// SetStatus меняет статус каравана: так хост выводит его на обслуживание
// и возвращает в доступность. Бронирование статус не трогает.
func (s *CaravanService) SetStatus(ctx context.Context, id, actingHostID uuid.UUID, status string) (*models.Caravan, error) {
	caravan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caravan.HostID != actingHostID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "статус каравана может менять только его хост")
	}

	newStatus, err := valueobject.NewCaravanStatus(status)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}

	caravan.Status = newStatus
	return caravan, nil
}
