package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/karravan/booking-backend/internal/domain/valueobject"
	"github.com/karravan/booking-backend/internal/models"
	"github.com/karravan/booking-backend/internal/pkg/apperror"
)

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) Capture(ctx context.Context, reservationID, guestID uuid.UUID, amount float64) (*models.Payment, error) {
	args := m.Called(ctx, reservationID, guestID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *mockPaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *mockPaymentRepo) ListCompletedByGuestID(ctx context.Context, guestID uuid.UUID) ([]models.Payment, error) {
	args := m.Called(ctx, guestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *mockPaymentRepo) Deposit(ctx context.Context, userID uuid.UUID, amount float64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

type mockPaymentReservationRepo struct {
	mock.Mock
}

func (m *mockPaymentReservationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

type mockPaymentUserRepo struct {
	mock.Mock
}

func (m *mockPaymentUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newPaymentFixture() (*PaymentService, *mockPaymentRepo, *mockPaymentReservationRepo, *mockPaymentUserRepo) {
	repo := new(mockPaymentRepo)
	reservations := new(mockPaymentReservationRepo)
	users := new(mockPaymentUserRepo)
	return NewPaymentService(repo, reservations, users), repo, reservations, users
}

func TestPaymentService_ProcessPayment_Success(t *testing.T) {
	svc, repo, reservations, users := newPaymentFixture()
	ctx := context.Background()

	guestID := uuid.New()
	reservationID := uuid.New()

	users.On("GetByID", ctx, guestID).Return(&models.User{ID: guestID, Balance: 500}, nil)
	reservations.On("GetByID", ctx, reservationID).Return(&models.Reservation{
		ID:         reservationID,
		UserID:     guestID,
		Status:     valueobject.ReservationStatusPending,
		TotalPrice: 400,
	}, nil)

	expected := &models.Payment{
		ID:            uuid.New(),
		ReservationID: reservationID,
		Amount:        400,
		Status:        valueobject.PaymentStatusCompleted,
		PaymentDate:   time.Now().UTC(),
	}
	repo.On("Capture", ctx, reservationID, guestID, float64(400)).Return(expected, nil)

	payment, err := svc.ProcessPayment(ctx, guestID, reservationID)
	assert.NoError(t, err)
	assert.Equal(t, expected, payment)
	repo.AssertExpectations(t)
}

func TestPaymentService_ProcessPayment_InsufficientFunds(t *testing.T) {
	svc, repo, reservations, users := newPaymentFixture()
	ctx := context.Background()

	guestID := uuid.New()
	reservationID := uuid.New()

	users.On("GetByID", ctx, guestID).Return(&models.User{ID: guestID, Balance: 100}, nil)
	reservations.On("GetByID", ctx, reservationID).Return(&models.Reservation{
		ID:         reservationID,
		UserID:     guestID,
		Status:     valueobject.ReservationStatusPending,
		TotalPrice: 400,
	}, nil)

	_, err := svc.ProcessPayment(ctx, guestID, reservationID)
	assert.ErrorIs(t, err, apperror.ErrInsufficientFunds)
	repo.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_ProcessPayment_Forbidden(t *testing.T) {
	svc, _, reservations, users := newPaymentFixture()
	ctx := context.Background()

	guestID := uuid.New()
	reservationID := uuid.New()

	users.On("GetByID", ctx, guestID).Return(&models.User{ID: guestID, Balance: 1000}, nil)
	reservations.On("GetByID", ctx, reservationID).Return(&models.Reservation{
		ID:         reservationID,
		UserID:     uuid.New(),
		Status:     valueobject.ReservationStatusPending,
		TotalPrice: 400,
	}, nil)

	_, err := svc.ProcessPayment(ctx, guestID, reservationID)
	assert.True(t, apperror.IsForbidden(err))
}

func TestPaymentService_ProcessPayment_NotPending(t *testing.T) {
	svc, _, reservations, users := newPaymentFixture()
	ctx := context.Background()

	guestID := uuid.New()
	reservationID := uuid.New()

	users.On("GetByID", ctx, guestID).Return(&models.User{ID: guestID, Balance: 1000}, nil)
	reservations.On("GetByID", ctx, reservationID).Return(&models.Reservation{
		ID:         reservationID,
		UserID:     guestID,
		Status:     valueobject.ReservationStatusApproved,
		TotalPrice: 400,
	}, nil)

	_, err := svc.ProcessPayment(ctx, guestID, reservationID)
	assert.True(t, apperror.IsInvalidState(err))
}

func TestPaymentService_ProcessPayment_ReservationNotFound(t *testing.T) {
	svc, _, reservations, users := newPaymentFixture()
	ctx := context.Background()

	guestID := uuid.New()
	reservationID := uuid.New()

	users.On("GetByID", ctx, guestID).Return(&models.User{ID: guestID, Balance: 1000}, nil)
	reservations.On("GetByID", ctx, reservationID).Return(nil, apperror.ErrReservationNotFound)

	_, err := svc.ProcessPayment(ctx, guestID, reservationID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestPaymentService_GetPaymentHistory(t *testing.T) {
	svc, repo, _, users := newPaymentFixture()
	ctx := context.Background()

	guestID := uuid.New()

	users.On("GetByID", ctx, guestID).Return(&models.User{ID: guestID}, nil)
	expected := []models.Payment{
		{ID: uuid.New(), Amount: 400, Status: valueobject.PaymentStatusCompleted},
	}
	repo.On("ListCompletedByGuestID", ctx, guestID).Return(expected, nil)

	payments, err := svc.GetPaymentHistory(ctx, guestID)
	assert.NoError(t, err)
	assert.Equal(t, expected, payments)
}

func TestPaymentService_GetPaymentHistory_GuestNotFound(t *testing.T) {
	svc, repo, _, users := newPaymentFixture()
	ctx := context.Background()

	guestID := uuid.New()
	users.On("GetByID", ctx, guestID).Return(nil, apperror.ErrUserNotFound)

	_, err := svc.GetPaymentHistory(ctx, guestID)
	assert.True(t, apperror.IsNotFound(err))
	repo.AssertNotCalled(t, "ListCompletedByGuestID", mock.Anything, mock.Anything)
}

func TestPaymentService_Deposit_InvalidAmount(t *testing.T) {
	svc, repo, _, _ := newPaymentFixture()
	ctx := context.Background()

	err := svc.Deposit(ctx, uuid.New(), 0)
	assert.True(t, apperror.IsValidation(err))

	err = svc.Deposit(ctx, uuid.New(), -100)
	assert.True(t, apperror.IsValidation(err))

	repo.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_Deposit_Success(t *testing.T) {
	svc, repo, _, users := newPaymentFixture()
	ctx := context.Background()

	userID := uuid.New()
	users.On("GetByID", ctx, userID).Return(&models.User{ID: userID}, nil)
	repo.On("Deposit", ctx, userID, float64(1000)).Return(nil)

	err := svc.Deposit(ctx, userID, 1000)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
