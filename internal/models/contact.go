package models

import (
	"time"

	"github.com/google/uuid"
)

// Practice areas a submitter can pick on the contact form.
const (
	PracticeAreaFamily    = "family"
	PracticeAreaCriminal  = "criminal"
	PracticeAreaCorporate = "corporate"
	PracticeAreaProperty  = "property"
	PracticeAreaOther     = "other"
)

var practiceAreaDisplay = map[string]string{
	PracticeAreaFamily:    "Family Law",
	PracticeAreaCriminal:  "Criminal Defense",
	PracticeAreaCorporate: "Corporate Law",
	PracticeAreaProperty:  "Property Law",
	PracticeAreaOther:     "General Inquiry",
}

// Preferred contact methods.
const (
	ContactMethodEmail = "email"
	ContactMethodPhone = "phone"
)

// PracticeAreaDisplay returns the human-readable name for a practice
// area code, falling back to "General Inquiry" for unknown values.
func PracticeAreaDisplay(area string) string {
	if d, ok := practiceAreaDisplay[area]; ok {
		return d
	}
	return practiceAreaDisplay[PracticeAreaOther]
}

// ValidPracticeArea reports whether area is a known practice area code.
func ValidPracticeArea(area string) bool {
	_, ok := practiceAreaDisplay[area]
	return ok
}

type ContactSubmission struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Email            string    `json:"email" db:"email"`
	PhoneNumber      *string   `json:"phone_number,omitempty" db:"phone_number"`
	PracticeArea     *string   `json:"practice_area,omitempty" db:"practice_area"`
	PreferredContact *string   `json:"preferred_contact,omitempty" db:"preferred_contact"`
	Message          string    `json:"message" db:"message"`
	Responded        bool      `json:"responded" db:"responded"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
