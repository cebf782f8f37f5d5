package handlers

import (
	"net/http"
	"time"

	"lexbook/internal/common"
	"lexbook/internal/middleware"
	"lexbook/internal/models"
	"lexbook/internal/repositories"
	"lexbook/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandlers handles registration, login, profile and logout.
type AuthHandlers struct {
	userRepo repositories.UserRepository
	tokens   services.TokenService
}

func NewAuthHandlers(userRepo repositories.UserRepository, tokens services.TokenService) *AuthHandlers {
	return &AuthHandlers{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	PhoneNumber *string `json:"phone_number"`
}

// Register creates a new user account.
func (h *AuthHandlers) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.FirstName, "first_name"); err != nil {
		return common.SendValidationError(c, "first_name", err.Error())
	}
	if err := common.ValidateRequiredString(req.LastName, "last_name"); err != nil {
		return common.SendValidationError(c, "last_name", err.Error())
	}
	if err := common.ValidateEmail(req.Email, "email"); err != nil {
		return common.SendValidationError(c, "email", err.Error())
	}
	if len(req.Password) < 8 {
		return common.SendValidationError(c, "password", "password must be at least 8 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return common.SendServerError(c, "Failed to create user")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hashed),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
	}

	if err := h.userRepo.Create(ctx, user); err != nil {
		if err == repositories.ErrEmailTaken {
			return common.SendValidationError(c, "email", "email is already registered")
		}
		return common.SendServerError(c, "Failed to create user")
	}

	return c.JSON(http.StatusCreated, user)
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the profile along with the session token for
// clients using the Authorization header instead of the cookie.
type LoginResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Login verifies credentials, mints a session token and sets the session
// cookie.
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Email == "" || req.Password == "" {
		return common.SendClientError(c, "Email and password are required")
	}

	user, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
		}
		return common.SendServerError(c, "Login failed")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect password")
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		return common.SendServerError(c, "Failed to generate token")
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokens.TTL()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, LoginResponse{User: user, Token: token})
}

// Me returns the caller's profile.
func (h *AuthHandlers) Me(c echo.Context) error {
	user, ok := middleware.UserFromEchoContext(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	return c.JSON(http.StatusOK, user)
}

// Logout clears the session cookie. The token itself stays valid until
// its expiry; there is no server-side revocation list.
func (h *AuthHandlers) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, map[string]string{"message": "success"})
}
