package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/karravan/booking-backend/internal/models"
	"github.com/karravan/booking-backend/internal/pkg/apperror"
	"github.com/karravan/booking-backend/internal/validation"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, contact string) error
	SetIdentityVerified(ctx context.Context, id uuid.UUID) error
}

// UserService отвечает за учётные записи хостов и гостей.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// CreateUser создаёт пользователя с нулевым балансом и рейтингом.
func (s *UserService) CreateUser(ctx context.Context, username, email, role, name, contact string) (*models.User, error) {
	if _, ok := models.ValidRoles[role]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "роль должна быть host или guest")
	}
	if err := validation.ValidateLength("username", username, validation.MinUsernameLength, validation.MaxUsernameLength); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Role:     role,
		Name:     name,
		Contact:  contact,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID возвращает пользователя по идентификатору.
func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListUsers возвращает всех пользователей.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

// UpdateProfile обновляет имя и контакт пользователя.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, name, contact string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.UpdateProfile(ctx, id, name, contact)
}

// VerifyIdentity помечает личность пользователя как подтверждённую.
func (s *UserService) VerifyIdentity(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SetIdentityVerified(ctx, id)
}
