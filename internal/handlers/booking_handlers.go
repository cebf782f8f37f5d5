package handlers

import (
	"errors"
	"net/http"

	"lexbook/internal/common"
	"lexbook/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BookingHandlers handles owner-scoped booking CRUD. All routes require
// an authenticated identity.
type BookingHandlers struct {
	bookings services.BookingService
}

func NewBookingHandlers(bookings services.BookingService) *BookingHandlers {
	return &BookingHandlers{bookings: bookings}
}

// BookingRequest is the create/update payload.
type BookingRequest struct {
	ServiceID string `json:"service_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

func (r *BookingRequest) toInput() (*services.BookingInput, error) {
	input := &services.BookingInput{
		Name:     r.Name,
		Email:    r.Email,
		Date:     r.Date,
		TimeSlot: r.Time,
	}
	if r.ServiceID != "" {
		serviceID, err := uuid.Parse(r.ServiceID)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "service_id must be a valid UUID")
		}
		input.ServiceID = serviceID
	}
	return input, nil
}

// ListBookings returns the caller's bookings.
func (h *BookingHandlers) ListBookings(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookings.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return common.SendServerError(c, "Failed to list bookings")
	}
	return c.JSON(http.StatusOK, bookings)
}

// CreateBooking books a slot for the caller.
func (h *BookingHandlers) CreateBooking(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req BookingRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	booking, err := h.bookings.Create(c.Request().Context(), userID, input)
	if err != nil {
		return bookingError(c, err, "Failed to create booking")
	}
	return c.JSON(http.StatusCreated, booking)
}

// GetBooking returns one of the caller's bookings.
func (h *BookingHandlers) GetBooking(c echo.Context) error {
	userID, bookingID, err := callerAndBookingID(c)
	if err != nil {
		return err
	}

	booking, err := h.bookings.Get(c.Request().Context(), userID, bookingID)
	if err != nil {
		return bookingError(c, err, "Failed to get booking")
	}
	return c.JSON(http.StatusOK, booking)
}

// UpdateBooking handles PUT and PATCH; omitted fields keep their values.
func (h *BookingHandlers) UpdateBooking(c echo.Context) error {
	userID, bookingID, err := callerAndBookingID(c)
	if err != nil {
		return err
	}

	var req BookingRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	booking, err := h.bookings.Update(c.Request().Context(), userID, bookingID, input)
	if err != nil {
		return bookingError(c, err, "Failed to update booking")
	}
	return c.JSON(http.StatusOK, booking)
}

// DeleteBooking removes one of the caller's bookings.
func (h *BookingHandlers) DeleteBooking(c echo.Context) error {
	userID, bookingID, err := callerAndBookingID(c)
	if err != nil {
		return err
	}

	if err := h.bookings.Delete(c.Request().Context(), userID, bookingID); err != nil {
		return bookingError(c, err, "Failed to delete booking")
	}
	return c.NoContent(http.StatusNoContent)
}

func callerID(c echo.Context) (uuid.UUID, error) {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	return userID, nil
}

func callerAndBookingID(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	userID, err := callerID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "id must be a valid UUID")
	}
	return userID, bookingID, nil
}

// bookingError maps service errors onto the standard response envelope.
func bookingError(c echo.Context, err error, fallback string) error {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		return common.SendValidationError(c, vErr.Field, vErr.Message)
	}
	if errors.Is(err, services.ErrBookingNotFound) {
		return common.SendNotFoundError(c, "Booking")
	}
	return common.SendServerError(c, fallback)
}
