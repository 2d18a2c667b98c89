package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/karravan/booking-backend/internal/domain/valueobject"
)

// Caravan описывает караван, выставленный хостом в аренду.
type Caravan struct {
	ID        uuid.UUID                 `db:"id" json:"id"`
	HostID    uuid.UUID                 `db:"host_id" json:"hostId"`
	Name      string                    `db:"name" json:"name"`
	Capacity  int                       `db:"capacity" json:"capacity"`
	Amenities []string                  `db:"amenities" json:"amenities,omitempty"`
	DailyRate float64                   `db:"daily_rate" json:"dailyRate"`
	Status    valueobject.CaravanStatus `db:"status" json:"status"`
	CreatedAt time.Time                 `db:"created_at" json:"created_at"`
	UpdatedAt time.Time                 `db:"updated_at" json:"updated_at"`
}
