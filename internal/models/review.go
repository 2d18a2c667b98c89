package models

import (
	"time"

	"github.com/google/uuid"
)

// Review описывает отзыв гостя о хосте после завершённой брони.
// Уникален по паре (ReservationID, ReviewerID).
type Review struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ReservationID uuid.UUID `db:"reservation_id" json:"reservationId"`
	ReviewerID    uuid.UUID `db:"reviewer_id" json:"reviewerId"`
	RevieweeID    uuid.UUID `db:"reviewee_id" json:"reviewee_id"`
	Rating        int       `db:"rating" json:"rating"`
	Comment       string    `db:"comment" json:"comment"`
	ReviewDate    time.Time `db:"review_date" json:"review_date"`
}
