package valueobject

import "github.com/karravan/booking-backend/internal/pkg/apperror"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusApproved  ReservationStatus = "approved"
	ReservationStatusRejected  ReservationStatus = "rejected"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusApproved, ReservationStatusRejected,
		ReservationStatusCompleted, ReservationStatusCancelled:
		return true
	}
	return false
}

// IsTerminal сообщает, что из статуса нет исходящих переходов.
func (s ReservationStatus) IsTerminal() bool {
	switch s {
	case ReservationStatusRejected, ReservationStatusCompleted, ReservationStatusCancelled:
		return true
	}
	return false
}

// IsActive сообщает, что бронь удерживает даты: pending или approved.
func (s ReservationStatus) IsActive() bool {
	return s == ReservationStatusPending || s == ReservationStatusApproved
}

// CanTransitionTo проверяет допустимость перехода по машине состояний брони.
func (s ReservationStatus) CanTransitionTo(newStatus ReservationStatus) bool {
	transitions := map[ReservationStatus][]ReservationStatus{
		ReservationStatusPending:   {ReservationStatusApproved, ReservationStatusRejected, ReservationStatusCancelled},
		ReservationStatusApproved:  {ReservationStatusCompleted, ReservationStatusCancelled},
		ReservationStatusRejected:  {},
		ReservationStatusCompleted: {},
		ReservationStatusCancelled: {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == newStatus {
			return true
		}
	}
	return false
}

func NewReservationStatus(status string) (ReservationStatus, error) {
	s := ReservationStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус брони")
	}
	return s, nil
}

type CaravanStatus string

const (
	CaravanStatusAvailable   CaravanStatus = "available"
	CaravanStatusReserved    CaravanStatus = "reserved"
	CaravanStatusMaintenance CaravanStatus = "maintenance"
)

func (s CaravanStatus) IsValid() bool {
	switch s {
	case CaravanStatusAvailable, CaravanStatusReserved, CaravanStatusMaintenance:
		return true
	}
	return false
}

func NewCaravanStatus(status string) (CaravanStatus, error) {
	s := CaravanStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус каравана")
	}
	return s, nil
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}
