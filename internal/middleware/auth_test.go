package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lexbook/internal/common"
	"lexbook/internal/models"
	"lexbook/internal/services"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo serves a fixed set of users.
type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error { return nil }
func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type authFixture struct {
	tokens services.TokenService
	repo   *fakeUserRepo
	mw     *AuthMiddleware
	user   *models.User
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	user := &models.User{ID: uuid.New(), Email: "a@b.com", FirstName: "Avery", LastName: "Brooks"}
	tokens := services.NewTokenService("test-secret", time.Hour)
	repo := &fakeUserRepo{users: map[uuid.UUID]*models.User{user.ID: user}}
	return &authFixture{
		tokens: tokens,
		repo:   repo,
		mw:     NewAuthMiddleware(tokens, repo),
		user:   user,
	}
}

// invoke runs the Authenticate middleware around a probe handler and
// returns the user id the handler observed, if any.
func invoke(fx *authFixture, req *http.Request) (uuid.UUID, bool, error) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenID uuid.UUID
	var seen bool
	handler := fx.mw.Authenticate()(func(c echo.Context) error {
		seenID, seen = common.GetUserIDFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return seenID, seen, err
}

func TestNoTokenIsAnonymousNotError(t *testing.T) {
	fx := newAuthFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/services", nil)

	_, seen, err := invoke(fx, req)
	require.NoError(t, err)
	assert.False(t, seen, "anonymous request must not carry an identity")
}

func TestCookieTokenAuthenticates(t *testing.T) {
	fx := newAuthFixture(t)
	token, err := fx.tokens.Issue(fx.user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

	seenID, seen, err := invoke(fx, req)
	require.NoError(t, err)
	assert.True(t, seen)
	assert.Equal(t, fx.user.ID, seenID)
}

func TestBearerHeaderFallback(t *testing.T) {
	fx := newAuthFixture(t)
	token, err := fx.tokens.Issue(fx.user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	seenID, _, err := invoke(fx, req)
	require.NoError(t, err)
	assert.Equal(t, fx.user.ID, seenID)
}

func TestCookieTakesPrecedenceOverHeader(t *testing.T) {
	fx := newAuthFixture(t)
	other := &models.User{ID: uuid.New(), Email: "other@b.com"}
	fx.repo.users[other.ID] = other

	cookieToken, err := fx.tokens.Issue(fx.user.ID)
	require.NoError(t, err)
	headerToken, err := fx.tokens.Issue(other.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookieToken})
	req.Header.Set("Authorization", "Bearer "+headerToken)

	seenID, _, err := invoke(fx, req)
	require.NoError(t, err)
	assert.Equal(t, fx.user.ID, seenID)
}

func TestExpiredTokenRejected(t *testing.T) {
	fx := newAuthFixture(t)
	expired := services.NewTokenService("test-secret", -time.Minute)
	token, err := expired.Issue(fx.user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

	_, _, err = invoke(fx, req)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	assert.Equal(t, "Token expired", httpErr.Message)
}

func TestMalformedTokenRejected(t *testing.T) {
	fx := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage"})

	_, _, err := invoke(fx, req)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	assert.Equal(t, "Invalid token", httpErr.Message)
}

func TestValidTokenForDeletedUserRejected(t *testing.T) {
	fx := newAuthFixture(t)
	token, err := fx.tokens.Issue(uuid.New()) // no such user
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

	_, _, err = invoke(fx, req)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	assert.Equal(t, "User not found", httpErr.Message)
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	fx := newAuthFixture(t)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := fx.mw.RequireAuth()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
