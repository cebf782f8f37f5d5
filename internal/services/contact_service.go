package services

import (
	"context"
	"strings"

	"lexbook/internal/common"
	"lexbook/internal/models"
	"lexbook/internal/repositories"

	"github.com/google/uuid"
)

// Minimum accepted message length for contact submissions.
const minMessageLen = 10

// ContactInput is an inbound contact-form payload.
type ContactInput struct {
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	PhoneNumber      *string `json:"phone_number"`
	PracticeArea     *string `json:"practice_area"`
	PreferredContact *string `json:"preferred_contact"`
	Message          string  `json:"message"`
}

type ContactService interface {
	Submit(ctx context.Context, input *ContactInput) (*models.ContactSubmission, error)
	List(ctx context.Context) ([]*models.ContactSubmission, error)
}

type contactService struct {
	contactRepo repositories.ContactRepository
	notifier    NotificationService
}

func NewContactService(contactRepo repositories.ContactRepository, notifier NotificationService) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		notifier:    notifier,
	}
}

// Submit validates and persists a submission, then dispatches the firm
// notification and the submitter confirmation. Persistence is the only
// thing the caller observes as success; notification failures are logged
// inside the notifier and never propagated.
func (s *contactService) Submit(ctx context.Context, input *ContactInput) (*models.ContactSubmission, error) {
	if err := common.ValidateRequiredString(input.Name, "name"); err != nil {
		return nil, &ValidationError{Field: "name", Message: err.Error()}
	}
	if err := common.ValidateEmail(input.Email, "email"); err != nil {
		return nil, &ValidationError{Field: "email", Message: err.Error()}
	}
	if len(strings.TrimSpace(input.Message)) < minMessageLen {
		return nil, &ValidationError{Field: "message", Message: "message must be at least 10 characters"}
	}
	if input.PracticeArea != nil && *input.PracticeArea != "" && !models.ValidPracticeArea(*input.PracticeArea) {
		return nil, &ValidationError{Field: "practice_area", Message: "unknown practice area"}
	}
	if input.PreferredContact != nil && *input.PreferredContact != "" {
		if pc := *input.PreferredContact; pc != models.ContactMethodEmail && pc != models.ContactMethodPhone {
			return nil, &ValidationError{Field: "preferred_contact", Message: "preferred contact must be email or phone"}
		}
	}

	submission := &models.ContactSubmission{
		ID:               uuid.New(),
		Name:             strings.TrimSpace(input.Name),
		Email:            strings.TrimSpace(input.Email),
		PhoneNumber:      input.PhoneNumber,
		PracticeArea:     input.PracticeArea,
		PreferredContact: input.PreferredContact,
		Message:          strings.TrimSpace(input.Message),
	}

	if err := s.contactRepo.Create(ctx, submission); err != nil {
		return nil, err
	}

	s.notifier.NotifyContactSubmission(ctx, submission)
	s.notifier.ConfirmContactSubmission(ctx, submission)

	return submission, nil
}

func (s *contactService) List(ctx context.Context) ([]*models.ContactSubmission, error) {
	return s.contactRepo.List(ctx)
}
