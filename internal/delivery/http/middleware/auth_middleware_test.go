package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deliverycontext "servease/internal/delivery/context"
	"servease/internal/domain/entity"
	"servease/internal/domain/service"
)

type stubTokenService struct {
	claims *service.Claims
	err    error
}

func (s *stubTokenService) GenerateToken(userID uuid.UUID, role string) (string, error) {
	return "token", nil
}

func (s *stubTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	return s.claims, s.err
}

func (s *stubTokenService) GetAccessTokenDuration() time.Duration {
	return time.Hour
}

func newAuthTestContext(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthenticate_SetsActorOnContext(t *testing.T) {
	userID := uuid.New()
	m := NewAuthMiddleware(&stubTokenService{claims: &service.Claims{
		UserID: userID,
		Role:   entity.RoleCustomer.String(),
	}})

	c, _ := newAuthTestContext(t, "Bearer some-token")

	var gotID uuid.UUID
	var gotRole entity.Role
	next := func(c echo.Context) error {
		id, ok := deliverycontext.GetUserID(c)
		require.True(t, ok)
		gotID = id

		role, ok := deliverycontext.GetRole(c)
		require.True(t, ok)
		gotRole = role

		return nil
	}

	require.NoError(t, m.Authenticate(next)(c))
	assert.Equal(t, userID, gotID)
	assert.Equal(t, entity.RoleCustomer, gotRole)
}

func TestAuthenticate_RejectsMissingAndMalformedHeaders(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{claims: &service.Claims{UserID: uuid.New()}})
	next := func(c echo.Context) error { return nil }

	c, rec := newAuthTestContext(t, "")
	require.NoError(t, m.Authenticate(next)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c, rec = newAuthTestContext(t, "Basic abc")
	require.NoError(t, m.Authenticate(next)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_RejectsInvalidToken(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{err: errors.New("expired")})
	next := func(c echo.Context) error { return nil }

	c, rec := newAuthTestContext(t, "Bearer bad-token")
	require.NoError(t, m.Authenticate(next)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole_AllowsListedRole(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{})

	c, _ := newAuthTestContext(t, "")
	deliverycontext.SetActor(c, uuid.New(), entity.RoleServiceProvider)

	called := false
	next := func(c echo.Context) error {
		called = true

		return nil
	}

	handler := m.RequireRole(entity.RoleServiceProvider, entity.RoleAdmin)(next)
	require.NoError(t, handler(c))
	assert.True(t, called)
}

func TestRequireRole_RejectsUnlistedRole(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{})

	c, rec := newAuthTestContext(t, "")
	deliverycontext.SetActor(c, uuid.New(), entity.RoleCustomer)

	next := func(c echo.Context) error { return nil }
	handler := m.RequireRole(entity.RoleAdmin)(next)

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_RejectsMissingActor(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{})

	c, rec := newAuthTestContext(t, "")
	next := func(c echo.Context) error { return nil }
	handler := m.RequireRole(entity.RoleAdmin)(next)

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
