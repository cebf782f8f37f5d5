package models

import (
	"time"

	"github.com/google/uuid"
)

// Service is a catalog entry. The catalog is immutable from the booking
// flow's perspective; rows are seeded at startup.
type Service struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
