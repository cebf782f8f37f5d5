package services

import (
	"context"
	"testing"

	"lexbook/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, submission *models.ContactSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockContactRepository) List(ctx context.Context) ([]*models.ContactSubmission, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.ContactSubmission), args.Error(1)
}

func (m *MockContactRepository) ListUnresponded(ctx context.Context) ([]*models.ContactSubmission, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.ContactSubmission), args.Error(1)
}

func (m *MockContactRepository) MarkResponded(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) NotifyContactSubmission(ctx context.Context, submission *models.ContactSubmission) {
	m.Called(ctx, submission)
}

func (m *MockNotificationService) ConfirmContactSubmission(ctx context.Context, submission *models.ContactSubmission) {
	m.Called(ctx, submission)
}

func (m *MockNotificationService) SendBookingReminder(ctx context.Context, booking *models.Booking) {
	m.Called(ctx, booking)
}

func (m *MockNotificationService) SendPendingContactDigest(ctx context.Context, submissions []*models.ContactSubmission) {
	m.Called(ctx, submissions)
}

type ContactServiceTestSuite struct {
	suite.Suite
	contactRepo *MockContactRepository
	notifier    *MockNotificationService
	svc         ContactService
	ctx         context.Context
}

func (suite *ContactServiceTestSuite) SetupTest() {
	suite.contactRepo = new(MockContactRepository)
	suite.notifier = new(MockNotificationService)
	suite.svc = NewContactService(suite.contactRepo, suite.notifier)
	suite.ctx = context.Background()
}

func TestContactServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ContactServiceTestSuite))
}

func (suite *ContactServiceTestSuite) validInput() *ContactInput {
	area := models.PracticeAreaFamily
	return &ContactInput{
		Name:         "Casey Morgan",
		Email:        "casey@example.com",
		PracticeArea: &area,
		Message:      "I need advice regarding a custody arrangement.",
	}
}

func (suite *ContactServiceTestSuite) TestSubmit_Success() {
	suite.contactRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.ContactSubmission")).Return(nil)
	suite.notifier.On("NotifyContactSubmission", suite.ctx, mock.AnythingOfType("*models.ContactSubmission")).Return()
	suite.notifier.On("ConfirmContactSubmission", suite.ctx, mock.AnythingOfType("*models.ContactSubmission")).Return()

	submission, err := suite.svc.Submit(suite.ctx, suite.validInput())
	suite.NoError(err)
	suite.Equal("casey@example.com", submission.Email)
	suite.False(submission.Responded)
	suite.contactRepo.AssertExpectations(suite.T())
	suite.notifier.AssertExpectations(suite.T())
}

func (suite *ContactServiceTestSuite) TestSubmit_ShortMessageRejectedBeforePersistence() {
	input := suite.validInput()
	input.Message = "too short"

	_, err := suite.svc.Submit(suite.ctx, input)

	var vErr *ValidationError
	suite.ErrorAs(err, &vErr)
	suite.Equal("message", vErr.Field)
	suite.contactRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
	suite.notifier.AssertNotCalled(suite.T(), "NotifyContactSubmission", mock.Anything, mock.Anything)
}

func (suite *ContactServiceTestSuite) TestSubmit_InvalidEmailRejected() {
	for _, email := range []string{"", "no-at-sign", "@leading", "trailing@"} {
		input := suite.validInput()
		input.Email = email

		_, err := suite.svc.Submit(suite.ctx, input)

		var vErr *ValidationError
		suite.ErrorAs(err, &vErr, "email %q", email)
		suite.Equal("email", vErr.Field)
	}
}

func (suite *ContactServiceTestSuite) TestSubmit_UnknownPracticeAreaRejected() {
	area := "maritime"
	input := suite.validInput()
	input.PracticeArea = &area

	_, err := suite.svc.Submit(suite.ctx, input)

	var vErr *ValidationError
	suite.ErrorAs(err, &vErr)
	suite.Equal("practice_area", vErr.Field)
}

func (suite *ContactServiceTestSuite) TestSubmit_PersistenceFailureIsFatal() {
	suite.contactRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.ContactSubmission")).Return(assert.AnError)

	_, err := suite.svc.Submit(suite.ctx, suite.validInput())
	suite.Error(err)
	// Notifications must not fire when persistence fails.
	suite.notifier.AssertNotCalled(suite.T(), "NotifyContactSubmission", mock.Anything, mock.Anything)
	suite.notifier.AssertNotCalled(suite.T(), "ConfirmContactSubmission", mock.Anything, mock.Anything)
}
