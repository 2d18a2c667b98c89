package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/karravan/booking-backend/internal/models"
	"github.com/karravan/booking-backend/internal/pkg/apperror"
)

// UserStore реализует интерфейсы пользовательских репозиториев сервисов.
type UserStore struct {
	s *Store
}

func (u *UserStore) Create(ctx context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	clone := *user
	u.s.users[user.ID] = &clone
	return nil
}

func (u *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	user, ok := u.s.users[id]
	if !ok {
		return nil, apperror.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (u *UserStore) List(ctx context.Context) ([]models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	users := make([]models.User, 0, len(u.s.users))
	for _, usr := range u.s.users {
		users = append(users, *usr)
	}
	return users, nil
}

func (u *UserStore) UpdateProfile(ctx context.Context, id uuid.UUID, name, contact string) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	user, ok := u.s.users[id]
	if !ok {
		return apperror.ErrUserNotFound
	}
	user.Name = name
	user.Contact = contact
	user.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *UserStore) SetIdentityVerified(ctx context.Context, id uuid.UUID) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	user, ok := u.s.users[id]
	if !ok {
		return apperror.ErrUserNotFound
	}
	user.IdentityVerified = true
	user.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *UserStore) UpdateRating(ctx context.Context, userID uuid.UUID, rating float64, count int) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	user, ok := u.s.users[userID]
	if !ok {
		return apperror.ErrUserNotFound
	}
	user.Rating = rating
	user.RatingCount = count
	user.UpdatedAt = time.Now().UTC()
	return nil
}
