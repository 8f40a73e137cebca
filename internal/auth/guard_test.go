package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "chronotask/internal/errors"
	"chronotask/internal/model"
)

// MockUserResolver is a mock implementation of UserResolver.
type MockUserResolver struct {
	mock.Mock
}

func (m *MockUserResolver) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func guardContext(t *testing.T, svc *JWTService, token string) echo.Context {
	t.Helper()
	claims, err := svc.ValidateSessionToken(token)
	assert.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set(contextClaimsKey, claims)
	return c
}

func TestGuard_AttachesUser(t *testing.T) {
	svc, _ := NewJWTService("test-secret")
	token, _ := svc.GenerateSessionToken(42, time.Hour)

	resolver := new(MockUserResolver)
	user := &model.User{ID: 42, Email: "ann@x.com", Confirmed: true}
	resolver.On("FindByID", mock.Anything, uint(42)).Return(user, nil)

	c := guardContext(t, svc, token)
	called := false
	err := NewGuard(resolver).Middleware()(func(c echo.Context) error {
		called = true
		got, ok := CurrentUser(c)
		assert.True(t, ok)
		assert.Equal(t, user, got)
		return nil
	})(c)

	assert.NoError(t, err)
	assert.True(t, called)
	resolver.AssertExpectations(t)
}

func TestGuard_UserGone(t *testing.T) {
	svc, _ := NewJWTService("test-secret")
	token, _ := svc.GenerateSessionToken(42, time.Hour)

	resolver := new(MockUserResolver)
	resolver.On("FindByID", mock.Anything, uint(42)).Return(nil, assert.AnError)

	c := guardContext(t, svc, token)
	err := NewGuard(resolver).Middleware()(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})(c)

	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestGuard_StalePassword(t *testing.T) {
	svc, _ := NewJWTService("test-secret")
	token, _ := svc.GenerateSessionToken(42, time.Hour)

	// Password changed an hour after the token was issued.
	changed := time.Now().Add(time.Hour)
	resolver := new(MockUserResolver)
	resolver.On("FindByID", mock.Anything, uint(42)).Return(&model.User{
		ID:                42,
		PasswordChangedAt: &changed,
	}, nil)

	c := guardContext(t, svc, token)
	err := NewGuard(resolver).Middleware()(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})(c)

	assert.ErrorIs(t, err, apperrors.ErrStalePassword)
}

func TestGuard_MissingClaims(t *testing.T) {
	resolver := new(MockUserResolver)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	err := NewGuard(resolver).Middleware()(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})(c)

	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	resolver.AssertNotCalled(t, "FindByID")
}
