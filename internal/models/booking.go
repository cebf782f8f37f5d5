package models

import (
	"time"

	"github.com/google/uuid"
)

// TimeSlots is the fixed set of bookable hourly slots.
var TimeSlots = []string{
	"09:00", "10:00", "11:00", "12:00", "13:00", "14:00",
	"15:00", "16:00", "17:00", "18:00", "19:00",
}

// IsValidTimeSlot reports whether slot is one of the bookable hourly slots.
func IsValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// Booking ties a user to a service at a date/time slot. The tuple
// (user_id, service_id, date, time_slot) is unique; the schema-level
// constraint is the authoritative guard.
type Booking struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	ServiceID uuid.UUID `json:"service_id" db:"service_id"`
	Service   *Service  `json:"service,omitempty" db:"-"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Date      string    `json:"date" db:"booking_date"` // YYYY-MM-DD
	TimeSlot  string    `json:"time" db:"time_slot"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
