package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"lexbook/internal/models"
	"lexbook/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubContactService struct {
	submitted  *models.ContactSubmission
	submitErr  error
	listResult []*models.ContactSubmission
}

func (s *stubContactService) Submit(ctx context.Context, input *services.ContactInput) (*models.ContactSubmission, error) {
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	s.submitted = &models.ContactSubmission{
		ID:      uuid.New(),
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
	}
	return s.submitted, nil
}

func (s *stubContactService) List(ctx context.Context) ([]*models.ContactSubmission, error) {
	return s.listResult, nil
}

func TestSubmitContactSuccessEnvelope(t *testing.T) {
	stub := &stubContactService{}
	handler := NewContactHandlers(stub)
	e := echo.New()

	req := jsonRequest(http.MethodPost, "/contact",
		`{"name":"Casey Morgan","email":"casey@example.com","message":"I need advice regarding a custody arrangement."}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.SubmitContact(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), "We will contact you within 24 hours")
	require.NotNil(t, stub.submitted)
	assert.Equal(t, "casey@example.com", stub.submitted.Email)
}

func TestSubmitContactValidationEnvelope(t *testing.T) {
	stub := &stubContactService{
		submitErr: &services.ValidationError{Field: "message", Message: "message must be at least 10 characters"},
	}
	handler := NewContactHandlers(stub)
	e := echo.New()

	req := jsonRequest(http.MethodPost, "/contact",
		`{"name":"Casey","email":"casey@example.com","message":"short"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.SubmitContact(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Contains(t, rec.Body.String(), "message must be at least 10 characters")
}

func TestListContacts(t *testing.T) {
	stub := &stubContactService{
		listResult: []*models.ContactSubmission{
			{ID: uuid.New(), Name: "Casey", Email: "casey@example.com", Message: "A sufficiently long message."},
		},
	}
	handler := NewContactHandlers(stub)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.ListContacts(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "casey@example.com")
}
