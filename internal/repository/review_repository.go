package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/karravan/booking-backend/internal/models"
	"github.com/karravan/booking-backend/internal/pkg/apperror"
	"github.com/karravan/booking-backend/internal/repository/common"
)

// ReviewRepository отвечает за работу с таблицей reviews.
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository создаёт экземпляр репозитория.
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create создаёт отзыв.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reviews (id, reservation_id, reviewer_id, reviewee_id, rating, comment, review_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, review.ID, review.ReservationID, review.ReviewerID, review.RevieweeID,
		review.Rating, review.Comment, review.ReviewDate)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeStorage, "review repository: create")
	}
	return nil
}

// GetByID возвращает отзыв по идентификатору.
func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	return common.GetByID[models.Review](ctx, r.db, "reviews", id, apperror.ErrReviewNotFound)
}

// GetByReservationAndReviewer проверяет, оставлял ли гость отзыв по брони.
// Возвращает nil, nil если отзыва нет.
func (r *ReviewRepository) GetByReservationAndReviewer(ctx context.Context, reservationID, reviewerID uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := r.db.GetContext(ctx, &review,
		`SELECT * FROM reviews WHERE reservation_id = $1 AND reviewer_id = $2`, reservationID, reviewerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "review repository: get by reservation and reviewer")
	}
	return &review, nil
}

// ListByRevieweeID возвращает отзывы, полученные пользователем.
func (r *ReviewRepository) ListByRevieweeID(ctx context.Context, revieweeID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.SelectContext(ctx, &reviews, `
		SELECT * FROM reviews WHERE reviewee_id = $1 ORDER BY review_date DESC
	`, revieweeID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "review repository: list by reviewee")
	}
	return reviews, nil
}

// GetAverageRating возвращает средний рейтинг пользователя и число отзывов.
func (r *ReviewRepository) GetAverageRating(ctx context.Context, userID uuid.UUID) (float64, int, error) {
	var result struct {
		Avg   sql.NullFloat64 `db:"avg"`
		Count int             `db:"count"`
	}
	err := r.db.GetContext(ctx, &result, `
		SELECT COALESCE(AVG(rating), 0) as avg, COUNT(*) as count FROM reviews WHERE reviewee_id = $1
	`, userID)
	if err != nil {
		return 0, 0, apperror.Wrap(err, apperror.ErrCodeStorage, "review repository: get average rating")
	}
	return result.Avg.Float64, result.Count, nil
}
