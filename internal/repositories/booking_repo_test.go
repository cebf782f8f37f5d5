package repositories

import (
	"context"
	"testing"
	"time"

	"lexbook/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type BookingRepoTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	repo      BookingRepository
	userID    uuid.UUID
	serviceID uuid.UUID
	ctx       context.Context
}

func (suite *BookingRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewBookingRepo(mock)
	suite.userID = uuid.New()
	suite.serviceID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *BookingRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestBookingRepoTestSuite(t *testing.T) {
	suite.Run(t, new(BookingRepoTestSuite))
}

func (suite *BookingRepoTestSuite) booking() *models.Booking {
	return &models.Booking{
		ID:        uuid.New(),
		UserID:    suite.userID,
		ServiceID: suite.serviceID,
		Name:      "Jordan Blake",
		Email:     "jordan@example.com",
		Date:      "2026-10-01",
		TimeSlot:  "10:00",
	}
}

func (suite *BookingRepoTestSuite) TestCreate_Success() {
	b := suite.booking()

	suite.mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(b.ID, b.UserID, b.ServiceID, b.Name, b.Email, b.Date, b.TimeSlot).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.ctx, b)
	assert.NoError(suite.T(), err)
}

func (suite *BookingRepoTestSuite) TestCreate_UniqueViolationMapsToDuplicate() {
	b := suite.booking()

	suite.mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(b.ID, b.UserID, b.ServiceID, b.Name, b.Email, b.Date, b.TimeSlot).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "bookings_unique_slot"})

	err := suite.repo.Create(suite.ctx, b)
	assert.ErrorIs(suite.T(), err, ErrDuplicateBooking)
}

func (suite *BookingRepoTestSuite) TestExistsByCompositeKey() {
	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(suite.userID, suite.serviceID, "2026-10-01", "10:00").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := suite.repo.ExistsByCompositeKey(suite.ctx, suite.userID, suite.serviceID, "2026-10-01", "10:00")
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), exists)

	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(suite.userID, suite.serviceID, "2026-10-01", "11:00").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err = suite.repo.ExistsByCompositeKey(suite.ctx, suite.userID, suite.serviceID, "2026-10-01", "11:00")
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), exists)
}

func (suite *BookingRepoTestSuite) TestGetByID() {
	b := suite.booking()
	created := time.Now()

	suite.mock.ExpectQuery(`SELECT (.+) FROM bookings`).
		WithArgs(b.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "service_id", "name", "email", "to_char", "time_slot", "created_at"}).
			AddRow(b.ID, b.UserID, b.ServiceID, b.Name, b.Email, b.Date, b.TimeSlot, created))

	got, err := suite.repo.GetByID(suite.ctx, b.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), b.UserID, got.UserID)
	assert.Equal(suite.T(), "2026-10-01", got.Date)
}

func (suite *BookingRepoTestSuite) TestDelete_ScopedToOwner() {
	bookingID := uuid.New()

	suite.mock.ExpectExec(`DELETE FROM bookings`).
		WithArgs(bookingID, suite.userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.ctx, bookingID, suite.userID)
	assert.NoError(suite.T(), err)
}

func (suite *BookingRepoTestSuite) TestUpdate_UniqueViolationMapsToDuplicate() {
	b := suite.booking()

	suite.mock.ExpectExec(`UPDATE bookings`).
		WithArgs(b.ServiceID, b.Name, b.Email, b.Date, b.TimeSlot, b.ID, b.UserID).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "bookings_unique_slot"})

	err := suite.repo.Update(suite.ctx, b)
	assert.ErrorIs(suite.T(), err, ErrDuplicateBooking)
}
