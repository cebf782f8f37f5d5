package services

import (
	"context"
	"errors"
	"fmt"

	"lexbook/internal/common"
	"lexbook/internal/models"
	"lexbook/internal/repositories"

	"github.com/google/uuid"
)

// ErrBookingNotFound is returned for missing bookings and for bookings
// owned by a different user; callers cannot tell the two apart.
var ErrBookingNotFound = errors.New("booking not found")

// ValidationError carries field-level detail for bad booking input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// BookingInput is the caller-supplied portion of a booking.
type BookingInput struct {
	ServiceID uuid.UUID
	Name      string
	Email     string
	Date      string
	TimeSlot  string
}

type BookingService interface {
	Create(ctx context.Context, userID uuid.UUID, input *BookingInput) (*models.Booking, error)
	Get(ctx context.Context, userID, bookingID uuid.UUID) (*models.Booking, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Booking, error)
	Update(ctx context.Context, userID, bookingID uuid.UUID, input *BookingInput) (*models.Booking, error)
	Delete(ctx context.Context, userID, bookingID uuid.UUID) error
}

type bookingService struct {
	bookingRepo repositories.BookingRepository
	serviceRepo repositories.ServiceRepository
}

func NewBookingService(bookingRepo repositories.BookingRepository, serviceRepo repositories.ServiceRepository) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
	}
}

// validate checks the input fields and the composite-key pre-check. The
// pre-check and the insert are not atomic: two concurrent duplicates can
// both pass here, so Create relies on the schema constraint as backstop.
func (s *bookingService) validate(ctx context.Context, userID uuid.UUID, input *BookingInput) error {
	if err := common.ValidateRequiredString(input.Name, "name"); err != nil {
		return &ValidationError{Field: "name", Message: err.Error()}
	}
	if err := common.ValidateEmail(input.Email, "email"); err != nil {
		return &ValidationError{Field: "email", Message: err.Error()}
	}
	if err := common.ValidateDateFormat(input.Date, "date"); err != nil {
		return &ValidationError{Field: "date", Message: err.Error()}
	}
	if !models.IsValidTimeSlot(input.TimeSlot) {
		return &ValidationError{Field: "time", Message: "time must be an hourly slot between 09:00 and 19:00"}
	}
	if input.ServiceID == uuid.Nil {
		return &ValidationError{Field: "service_id", Message: "service_id is required"}
	}

	if _, err := s.serviceRepo.GetByID(ctx, input.ServiceID); err != nil {
		if repositories.IsNotFound(err) {
			return &ValidationError{Field: "service_id", Message: "service does not exist"}
		}
		return err
	}

	exists, err := s.bookingRepo.ExistsByCompositeKey(ctx, userID, input.ServiceID, input.Date, input.TimeSlot)
	if err != nil {
		return err
	}
	if exists {
		return &ValidationError{Field: "booking", Message: "you have already booked this service at the selected date and time"}
	}
	return nil
}

func (s *bookingService) Create(ctx context.Context, userID uuid.UUID, input *BookingInput) (*models.Booking, error) {
	if err := s.validate(ctx, userID, input); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:        uuid.New(),
		UserID:    userID,
		ServiceID: input.ServiceID,
		Name:      input.Name,
		Email:     input.Email,
		Date:      input.Date,
		TimeSlot:  input.TimeSlot,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, repositories.ErrDuplicateBooking) {
			// Lost the race against a concurrent duplicate; surface the
			// same error shape the pre-check produces.
			return nil, &ValidationError{Field: "booking", Message: "you have already booked this service at the selected date and time"}
		}
		return nil, err
	}

	if svc, err := s.serviceRepo.GetByID(ctx, input.ServiceID); err == nil {
		booking.Service = svc
	}
	return booking, nil
}

func (s *bookingService) Get(ctx context.Context, userID, bookingID uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrBookingNotFound
	}
	if svc, err := s.serviceRepo.GetByID(ctx, booking.ServiceID); err == nil {
		booking.Service = svc
	}
	return booking, nil
}

func (s *bookingService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}

func (s *bookingService) Update(ctx context.Context, userID, bookingID uuid.UUID, input *BookingInput) (*models.Booking, error) {
	existing, err := s.Get(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	// PATCH semantics: empty fields keep their current value.
	if input.ServiceID == uuid.Nil {
		input.ServiceID = existing.ServiceID
	}
	if input.Name == "" {
		input.Name = existing.Name
	}
	if input.Email == "" {
		input.Email = existing.Email
	}
	if input.Date == "" {
		input.Date = existing.Date
	}
	if input.TimeSlot == "" {
		input.TimeSlot = existing.TimeSlot
	}

	tupleChanged := input.ServiceID != existing.ServiceID ||
		input.Date != existing.Date ||
		input.TimeSlot != existing.TimeSlot
	if tupleChanged {
		if err := s.validate(ctx, userID, input); err != nil {
			return nil, err
		}
	} else {
		if err := common.ValidateRequiredString(input.Name, "name"); err != nil {
			return nil, &ValidationError{Field: "name", Message: err.Error()}
		}
		if err := common.ValidateEmail(input.Email, "email"); err != nil {
			return nil, &ValidationError{Field: "email", Message: err.Error()}
		}
	}

	updated := &models.Booking{
		ID:        bookingID,
		UserID:    userID,
		ServiceID: input.ServiceID,
		Name:      input.Name,
		Email:     input.Email,
		Date:      input.Date,
		TimeSlot:  input.TimeSlot,
		CreatedAt: existing.CreatedAt,
	}
	if err := s.bookingRepo.Update(ctx, updated); err != nil {
		if errors.Is(err, repositories.ErrDuplicateBooking) {
			return nil, &ValidationError{Field: "booking", Message: "you have already booked this service at the selected date and time"}
		}
		return nil, err
	}
	if svc, err := s.serviceRepo.GetByID(ctx, updated.ServiceID); err == nil {
		updated.Service = svc
	}
	return updated, nil
}

func (s *bookingService) Delete(ctx context.Context, userID, bookingID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, bookingID); err != nil {
		return err
	}
	return s.bookingRepo.Delete(ctx, bookingID, userID)
}
