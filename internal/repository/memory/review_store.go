package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/karravan/booking-backend/internal/models"
	"github.com/karravan/booking-backend/internal/pkg/apperror"
)

// ReviewStore реализует интерфейс репозитория отзывов.
type ReviewStore struct {
	s *Store
}

func (r *ReviewStore) Create(ctx context.Context, review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.reviews {
		if existing.ReservationID == review.ReservationID && existing.ReviewerID == review.ReviewerID {
			return apperror.New(apperror.ErrCodeConflict, "вы уже оставили отзыв по этой брони")
		}
	}

	clone := *review
	r.s.reviews[review.ID] = &clone
	return nil
}

func (r *ReviewStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	review, ok := r.s.reviews[id]
	if !ok {
		return nil, apperror.ErrReviewNotFound
	}
	clone := *review
	return &clone, nil
}

func (r *ReviewStore) GetByReservationAndReviewer(ctx context.Context, reservationID, reviewerID uuid.UUID) (*models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, review := range r.s.reviews {
		if review.ReservationID == reservationID && review.ReviewerID == reviewerID {
			clone := *review
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *ReviewStore) ListByRevieweeID(ctx context.Context, revieweeID uuid.UUID) ([]models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var reviews []models.Review
	for _, review := range r.s.reviews {
		if review.RevieweeID == revieweeID {
			reviews = append(reviews, *review)
		}
	}
	return reviews, nil
}

func (r *ReviewStore) GetAverageRating(ctx context.Context, userID uuid.UUID) (float64, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var sum, count int
	for _, review := range r.s.reviews {
		if review.RevieweeID == userID {
			sum += review.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}
