package repositories

import (
	"context"
	"errors"

	"lexbook/internal/models"

	"github.com/google/uuid"
)

// ErrDuplicateBooking is returned when an insert collides with the
// (user_id, service_id, booking_date, time_slot) unique constraint. The
// constraint is the final arbiter under concurrent duplicate requests;
// the ExistsByCompositeKey pre-check only exists for a friendlier error.
var ErrDuplicateBooking = errors.New("booking already exists for this service, date and time")

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Booking, error)
	ListByDate(ctx context.Context, date string) ([]*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	ExistsByCompositeKey(ctx context.Context, userID, serviceID uuid.UUID, date, timeSlot string) (bool, error)
}

type bookingRepo struct {
	db Database
}

func NewBookingRepo(db Database) BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, service_id, name, email, booking_date, time_slot, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.Exec(ctx, query, booking.ID, booking.UserID, booking.ServiceID, booking.Name, booking.Email, booking.Date, booking.TimeSlot)
	if isUniqueViolation(err) {
		return ErrDuplicateBooking
	}
	return err
}

func (r *bookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	b := &models.Booking{}
	query := `
		SELECT id, user_id, service_id, name, email, to_char(booking_date, 'YYYY-MM-DD'), time_slot, created_at
		FROM bookings
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&b.ID, &b.UserID, &b.ServiceID, &b.Name, &b.Email, &b.Date, &b.TimeSlot, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Booking, error) {
	query := `
		SELECT id, user_id, service_id, name, email, to_char(booking_date, 'YYYY-MM-DD'), time_slot, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY booking_date, time_slot
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b := &models.Booking{}
		if err := rows.Scan(&b.ID, &b.UserID, &b.ServiceID, &b.Name, &b.Email, &b.Date, &b.TimeSlot, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepo) ListByDate(ctx context.Context, date string) ([]*models.Booking, error) {
	query := `
		SELECT id, user_id, service_id, name, email, to_char(booking_date, 'YYYY-MM-DD'), time_slot, created_at
		FROM bookings
		WHERE booking_date = $1
		ORDER BY time_slot
	`
	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b := &models.Booking{}
		if err := rows.Scan(&b.ID, &b.UserID, &b.ServiceID, &b.Name, &b.Email, &b.Date, &b.TimeSlot, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	query := `
		UPDATE bookings
		SET service_id = $1, name = $2, email = $3, booking_date = $4, time_slot = $5
		WHERE id = $6 AND user_id = $7
	`
	_, err := r.db.Exec(ctx, query, booking.ServiceID, booking.Name, booking.Email, booking.Date, booking.TimeSlot, booking.ID, booking.UserID)
	if isUniqueViolation(err) {
		return ErrDuplicateBooking
	}
	return err
}

func (r *bookingRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1 AND user_id = $2`
	_, err := r.db.Exec(ctx, query, id, userID)
	return err
}

func (r *bookingRepo) ExistsByCompositeKey(ctx context.Context, userID, serviceID uuid.UUID, date, timeSlot string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE user_id = $1 AND service_id = $2 AND booking_date = $3 AND time_slot = $4
		)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, userID, serviceID, date, timeSlot).Scan(&exists)
	return exists, err
}
