package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/karravan/booking-backend/internal/domain/valueobject"
)

// Reservation описывает бронь каравана на полузакрытый интервал дат [StartDate, EndDate).
// TotalPrice фиксируется в момент создания и больше не пересчитывается.
type Reservation struct {
	ID         uuid.UUID                     `db:"id" json:"id"`
	UserID     uuid.UUID                     `db:"user_id" json:"userId"`
	CaravanID  uuid.UUID                     `db:"caravan_id" json:"caravanId"`
	StartDate  time.Time                     `db:"start_date" json:"startDate"`
	EndDate    time.Time                     `db:"end_date" json:"endDate"`
	Status     valueobject.ReservationStatus `db:"status" json:"status"`
	TotalPrice float64                       `db:"total_price" json:"totalPrice"`
	CreatedAt  time.Time                     `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time                     `db:"updated_at" json:"updated_at"`
}

// Range возвращает интервал дат брони как value object.
func (r *Reservation) Range() valueobject.DateRange {
	return valueobject.DateRange{Start: r.StartDate, End: r.EndDate}
}
