package handlers

import (
	"errors"
	"log"
	"net/http"

	"lexbook/internal/common"
	"lexbook/internal/services"

	"github.com/labstack/echo/v4"
)

// ContactHandlers handles contact-form submissions.
type ContactHandlers struct {
	contacts services.ContactService
}

func NewContactHandlers(contacts services.ContactService) *ContactHandlers {
	return &ContactHandlers{contacts: contacts}
}

// ContactResponse is the submission response envelope.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// SubmitContact accepts an anonymous contact submission. Notification
// dispatch is best-effort inside the service; persistence success is the
// only thing reflected in the response.
func (h *ContactHandlers) SubmitContact(c echo.Context) error {
	var input services.ContactInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, ContactResponse{
			Success: false,
			Message: "Please check your input and try again.",
		})
	}

	submission, err := h.contacts.Submit(c.Request().Context(), &input)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			return c.JSON(http.StatusBadRequest, ContactResponse{
				Success: false,
				Message: "Please check your input and try again.",
				Errors:  map[string]string{vErr.Field: vErr.Message},
			})
		}
		log.Printf("Contact submission error: %v", err)
		return c.JSON(http.StatusInternalServerError, ContactResponse{
			Success: false,
			Message: "An error occurred while processing your request. Please try again.",
		})
	}

	return c.JSON(http.StatusCreated, ContactResponse{
		Success: true,
		Message: "Thank you for your message. We will contact you within 24 hours.",
		Data:    submission,
	})
}

// ListContacts lists submissions, newest first. Staff-facing; behind
// authentication.
func (h *ContactHandlers) ListContacts(c echo.Context) error {
	submissions, err := h.contacts.List(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to list contact submissions")
	}
	return c.JSON(http.StatusOK, ContactResponse{
		Success: true,
		Data:    submissions,
	})
}
