package context

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servease/internal/domain/entity"
)

func newEchoContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	return e.NewContext(req, httptest.NewRecorder())
}

func TestActorRoundTrip(t *testing.T) {
	c := newEchoContext()

	_, ok := GetUserID(c)
	assert.False(t, ok)
	_, ok = GetRole(c)
	assert.False(t, ok)

	userID := uuid.New()
	SetActor(c, userID, entity.RoleDeliveryPartner)

	gotID, ok := GetUserID(c)
	require.True(t, ok)
	assert.Equal(t, userID, gotID)

	gotRole, ok := GetRole(c)
	require.True(t, ok)
	assert.Equal(t, entity.RoleDeliveryPartner, gotRole)
}

func TestRequestIDRoundTrip(t *testing.T) {
	c := newEchoContext()

	SetRequestID(c, "req-123")
	assert.Equal(t, "req-123", GetRequestID(c))

	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", GetRequestIDFromContext(ctx))
	assert.Empty(t, GetRequestIDFromContext(context.Background()))
}

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	c := newEchoContext()

	id := GetRequestID(c)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}
