package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"chronotask/internal/auth"
	apperrors "chronotask/internal/errors"
	"chronotask/internal/model"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, name, email, password string) (*model.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) ConfirmEmail(ctx context.Context, token string) (string, *model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, password string) (string, *model.User, error) {
	args := m.Called(ctx, token, password)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestEcho(svc *MockAuthService) *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler

	h := NewAuthHandler(svc, 72*time.Hour)
	e.POST("/api/v1/users/signup", h.Signup)
	e.POST("/api/v1/users/login", h.Login)
	e.POST("/api/v1/users/forgotPassword", h.ForgotPassword)
	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Login", mock.Anything, "ann@x.com", "pass1234").
		Return("session-token", &model.User{ID: 7, Name: "Ann", Email: "ann@x.com"}, nil)

	rec := postJSON(newTestEcho(svc), "/api/v1/users/login", `{"email":"ann@x.com","password":"pass1234"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(rec)
	assert.NotNil(t, cookie)
	assert.Equal(t, "session-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure, "plain HTTP request must not set a secure cookie")

	var body apperrors.Envelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperrors.StatusSuccess, body.Status)
	assert.Equal(t, "session-token", body.Token)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Login", mock.Anything, "ann@x.com", "wrong123").
		Return("", nil, apperrors.ErrInvalidCredentials)

	rec := postJSON(newTestEcho(svc), "/api/v1/users/login", `{"email":"ann@x.com","password":"wrong123"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookie(rec))

	var body apperrors.Envelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperrors.StatusFail, body.Status)
	assert.Equal(t, apperrors.ErrInvalidCredentials.Error(), body.Message)
}

func TestAuthHandler_Signup_NoSessionIssued(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Signup", mock.Anything, "Annie", "ann@x.com", "pass1234").
		Return(&model.User{ID: 7, Name: "Annie", Email: "ann@x.com"}, nil)

	rec := postJSON(newTestEcho(svc), "/api/v1/users/signup", `{"name":"Annie","email":"ann@x.com","password":"pass1234"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, sessionCookie(rec), "signup must not log the user in")

	var body apperrors.Envelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperrors.StatusSuccess, body.Status)
	assert.Empty(t, body.Token)
	assert.Contains(t, body.Message, "confirm your email")
}

func TestAuthHandler_Signup_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"name too short", `{"name":"Al","email":"al@x.com","password":"pass1234"}`},
		{"bad email", `{"name":"Alice","email":"not-an-email","password":"pass1234"}`},
		{"password too short", `{"name":"Alice","email":"al@x.com","password":"short"}`},
		{"password too long", `{"name":"Alice","email":"al@x.com","password":"0123456789abcdef"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAuthService)
			rec := postJSON(newTestEcho(svc), "/api/v1/users/signup", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			svc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("ForgotPassword", mock.Anything, "ann@x.com").Return(nil)

	rec := postJSON(newTestEcho(svc), "/api/v1/users/forgotPassword", `{"email":"ann@x.com"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body apperrors.Envelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "token sent to email", body.Message)
}

func TestAuthHandler_ForgotPassword_MailFailure(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("ForgotPassword", mock.Anything, "ann@x.com").Return(apperrors.ErrEmailDelivery)

	rec := postJSON(newTestEcho(svc), "/api/v1/users/forgotPassword", `{"email":"ann@x.com"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body apperrors.Envelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperrors.StatusError, body.Status)
}
