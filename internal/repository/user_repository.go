package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/karravan/booking-backend/internal/models"
	"github.com/karravan/booking-backend/internal/pkg/apperror"
	"github.com/karravan/booking-backend/internal/repository/common"
)

// UserRepository отвечает за работу с таблицей users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create создаёт нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, email, role, name, contact, balance, rating, rating_count, identity_verified)
		VALUES ($1, $2, $3, $4, $5, $6, 0, 0, 0, FALSE)
		RETURNING created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		user.ID, user.Username, user.Email, user.Role, user.Name, user.Contact,
	).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeStorage, "user repository: create")
	}

	return nil
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return common.GetByID[models.User](ctx, r.db, "users", id, apperror.ErrUserNotFound)
}

// List возвращает всех пользователей.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.SelectContext(ctx, &users, `SELECT * FROM users ORDER BY created_at`)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "user repository: list")
	}
	return users, nil
}

// UpdateProfile обновляет имя и контакт пользователя.
func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, contact string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET name = $2, contact = $3, updated_at = NOW() WHERE id = $1
	`, id, name, contact)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeStorage, "user repository: update profile")
	}
	return nil
}

// SetIdentityVerified помечает личность пользователя как подтверждённую.
func (r *UserRepository) SetIdentityVerified(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET identity_verified = TRUE, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeStorage, "user repository: set identity verified")
	}
	return nil
}

// UpdateRating сохраняет агрегированный рейтинг хоста.
func (r *UserRepository) UpdateRating(ctx context.Context, userID uuid.UUID, rating float64, count int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET rating = $2, rating_count = $3, updated_at = NOW() WHERE id = $1
	`, userID, rating, count)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeStorage, "user repository: update rating")
	}
	return nil
}
