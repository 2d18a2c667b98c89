package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/karravan/booking-backend/internal/domain/valueobject"
)

// Payment описывает платёж по брони. На одну бронь может существовать
// не более одного завершённого платежа; после завершения запись неизменяема.
type Payment struct {
	ID            uuid.UUID                 `db:"id" json:"id"`
	ReservationID uuid.UUID                 `db:"reservation_id" json:"reservationId"`
	Amount        float64                   `db:"amount" json:"amount"`
	Status        valueobject.PaymentStatus `db:"status" json:"status"`
	PaymentDate   time.Time                 `db:"payment_date" json:"payment_date"`
}
