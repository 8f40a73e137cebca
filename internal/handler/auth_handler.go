package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"chronotask/internal/auth"
	apperrors "chronotask/internal/errors"
	"chronotask/internal/model"
	"chronotask/internal/service"
)

// AuthHandler handles account lifecycle endpoints.
type AuthHandler struct {
	authService service.AuthService
	cookieTTL   time.Duration
}

// NewAuthHandler creates a new auth handler. cookieTTL bounds the session
// cookie lifetime.
func NewAuthHandler(authService service.AuthService, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, cookieTTL: cookieTTL}
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=4,max=15"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=15"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest represents a password recovery request.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest carries the replacement password.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=15"`
}

// UserOutput is the fixed projection of a user returned by the API. Nothing
// credential-related ever appears here.
type UserOutput struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}

func newUserOutput(user *model.User) UserOutput {
	return UserOutput{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Photo: user.Photo,
	}
}

// Signup godoc
// @Summary Register a new account
// @Tags users
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration data"
// @Success 200 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 409 {object} errors.Envelope
// @Failure 500 {object} errors.Envelope
// @Router /users/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.New(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	// No session until the email is confirmed.
	return c.JSON(http.StatusOK, apperrors.Envelope{
		Status:  apperrors.StatusSuccess,
		Data:    echo.Map{"user": newUserOutput(user)},
		Message: "signup successful, please confirm your email",
	})
}

// ConfirmEmail godoc
// @Summary Confirm an account email
// @Tags users
// @Produce json
// @Param token path string true "Confirmation token"
// @Success 200 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Router /users/confirmEmail/{token} [patch]
func (h *AuthHandler) ConfirmEmail(c echo.Context) error {
	token, user, err := h.authService.ConfirmEmail(c.Request().Context(), c.Param("token"))
	if err != nil {
		return err
	}
	return h.sendSession(c, http.StatusOK, token, user)
}

// Login godoc
// @Summary Log in
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 401 {object} errors.Envelope
// @Router /users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.New(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.sendSession(c, http.StatusOK, token, user)
}

// Me godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Envelope
// @Failure 401 {object} errors.Envelope
// @Router /users/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.ErrUnauthenticated
	}
	return c.JSON(http.StatusOK, apperrors.Envelope{
		Status: apperrors.StatusSuccess,
		Data:   echo.Map{"user": newUserOutput(user)},
	})
}

// ForgotPassword godoc
// @Summary Request a password reset email
// @Tags users
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} errors.Envelope
// @Failure 401 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Failure 500 {object} errors.Envelope
// @Router /users/forgotPassword [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.New(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, apperrors.Envelope{
		Status:  apperrors.StatusSuccess,
		Data:    nil,
		Message: "token sent to email",
	})
}

// ResetPassword godoc
// @Summary Reset the password with an emailed token
// @Tags users
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body ResetPasswordRequest true "New password"
// @Success 200 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Router /users/resetPassword/{token} [patch]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.New(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.authService.ResetPassword(c.Request().Context(), c.Param("token"), req.Password)
	if err != nil {
		return err
	}
	return h.sendSession(c, http.StatusOK, token, user)
}

// sendSession writes the session cookie and the success envelope. The cookie
// is HTTP-only and marked secure when the request arrived over TLS, directly
// or behind a forwarding proxy.
func (h *AuthHandler) sendSession(c echo.Context, code int, token string, user *model.User) error {
	secure := c.IsTLS() || c.Request().Header.Get(echo.HeaderXForwardedProto) == "https"
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieTTL),
		HttpOnly: true,
		Secure:   secure,
	})

	return c.JSON(code, apperrors.Envelope{
		Status: apperrors.StatusSuccess,
		Token:  token,
		Data:   echo.Map{"user": newUserOutput(user)},
	})
}
