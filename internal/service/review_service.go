package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/karravan/booking-backend/internal/domain/valueobject"
	"github.com/karravan/booking-backend/internal/logger"
	"github.com/karravan/booking-backend/internal/models"
	"github.com/karravan/booking-backend/internal/pkg/apperror"
	"github.com/karravan/booking-backend/internal/validation"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	// GetByReservationAndReviewer возвращает nil, nil если отзыва ещё нет.
	GetByReservationAndReviewer(ctx context.Context, reservationID, reviewerID uuid.UUID) (*models.Review, error)
	ListByRevieweeID(ctx context.Context, revieweeID uuid.UUID) ([]models.Review, error)
	GetAverageRating(ctx context.Context, userID uuid.UUID) (float64, int, error)
}

type ReservationRepoForReview interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
}

type CaravanRepoForReview interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Caravan, error)
}

type UserRepoForReview interface {
	UpdateRating(ctx context.Context, userID uuid.UUID, rating float64, count int) error
}

// ReviewService проверяет право на отзыв и ведёт агрегированный рейтинг хоста.
type ReviewService struct {
	repo         ReviewRepository
	reservations ReservationRepoForReview
	caravans     CaravanRepoForReview
	users        UserRepoForReview
}

func NewReviewService(repo ReviewRepository, reservations ReservationRepoForReview, caravans CaravanRepoForReview, users UserRepoForReview) *ReviewService {
	return &ReviewService{repo: repo, reservations: reservations, caravans: caravans, users: users}
}

// CreateReview создаёт отзыв о хосте по завершённой брони и пересчитывает
// его рейтинг как среднее по всем полученным отзывам.
func (s *ReviewService) CreateReview(ctx context.Context, reservationID, reviewerID uuid.UUID, rating int, comment string) (*models.Review, error) {
	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.Status != valueobject.ReservationStatusCompleted {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "отзыв можно оставить только по завершённой брони")
	}

	if reservation.UserID != reviewerID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "отзыв может оставить только гость этой брони")
	}

	existing, err := s.repo.GetByReservationAndReviewer(ctx, reservationID, reviewerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.New(apperror.ErrCodeConflict, "вы уже оставили отзыв по этой брони")
	}

	if err := validation.ValidateRating(rating); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateComment(comment); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	caravan, err := s.caravans.GetByID(ctx, reservation.CaravanID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:            uuid.New(),
		ReservationID: reservationID,
		ReviewerID:    reviewerID,
		RevieweeID:    caravan.HostID,
		Rating:        rating,
		Comment:       comment,
		ReviewDate:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	// Рейтинг хоста — среднее по всем отзывам, а не последняя оценка.
	if err := s.recalcHostRating(ctx, caravan.HostID); err != nil {
		if logger.Log != nil {
			logger.Log.WithFields(map[string]interface{}{
				"host_id": caravan.HostID,
				"error":   err.Error(),
			}).Warn("review service: не удалось пересчитать рейтинг хоста")
		}
	}

	return review, nil
}

func (s *ReviewService) recalcHostRating(ctx context.Context, hostID uuid.UUID) error {
	avg, count, err := s.repo.GetAverageRating(ctx, hostID)
	if err != nil {
		return err
	}
	return s.users.UpdateRating(ctx, hostID, avg, count)
}

// GetReview возвращает отзыв по идентификатору.
func (s *ReviewService) GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByReviewee возвращает отзывы, полученные хостом.
func (s *ReviewService) ListByReviewee(ctx context.Context, revieweeID uuid.UUID) ([]models.Review, error) {
	return s.repo.ListByRevieweeID(ctx, revieweeID)
}

// GetHostRating возвращает средний рейтинг хоста и количество отзывов.
func (s *ReviewService) GetHostRating(ctx context.Context, hostID uuid.UUID) (float64, int, error) {
	return s.repo.GetAverageRating(ctx, hostID)
}
