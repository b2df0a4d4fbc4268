package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/idine/internal/auth"
	"github.com/mmynk/idine/internal/metrics"
	"github.com/mmynk/idine/internal/models"
)

type ping struct{}

func newJWT(t *testing.T) (*auth.JWTManager, string) {
	t.Helper()
	m := auth.NewJWTManager("middleware-test-secret", time.Hour)
	token, err := m.Generate(&models.User{ID: "u1", Email: "kat@example.com", DisplayName: "Kat"})
	require.NoError(t, err)
	return m, token
}

// captured records the identity the wrapped handler saw.
type captured struct {
	userID, email, name string
	called              bool
}

func (c *captured) handler(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
	c.called = true
	c.userID = GetUserID(ctx)
	c.email = GetEmail(ctx)
	c.name = GetDisplayName(ctx)
	return connect.NewResponse(&ping{}), nil
}

func TestRequireAuth(t *testing.T) {
	jwtManager, token := newJWT(t)

	tests := []struct {
		name   string
		header string
		wantOK bool
	}{
		{"valid token", "Bearer " + token, true},
		{"lowercase scheme", "bearer " + token, true},
		{"missing header", "", false},
		{"wrong scheme", "Basic " + token, false},
		{"no token", "Bearer ", false},
		{"garbage token", "Bearer abc.def.ghi", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c captured
			req := connect.NewRequest(&ping{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}

			_, err := RequireAuth(jwtManager)(c.handler)(context.Background(), req)
			if !tt.wantOK {
				require.Error(t, err)
				assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
				assert.False(t, c.called)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "u1", c.userID)
			assert.Equal(t, "kat@example.com", c.email)
			assert.Equal(t, "Kat", c.name)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	jwtManager, token := newJWT(t)

	var anon captured
	_, err := OptionalAuth(jwtManager)(anon.handler)(context.Background(), connect.NewRequest(&ping{}))
	require.NoError(t, err)
	assert.True(t, anon.called)
	assert.Empty(t, anon.userID)

	var bad captured
	req := connect.NewRequest(&ping{})
	req.Header().Set("Authorization", "Bearer nope")
	_, err = OptionalAuth(jwtManager)(bad.handler)(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, bad.userID)

	var good captured
	req = connect.NewRequest(&ping{})
	req.Header().Set("Authorization", "Bearer "+token)
	_, err = OptionalAuth(jwtManager)(good.handler)(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "u1", good.userID)
}

func TestLoggingInterceptor(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	m := metrics.New()
	interceptor := LoggingInterceptor(logger, m)

	ok := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&ping{}), nil
	}
	notFound := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("no such order"))
	}
	plain := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, errors.New("boom")
	}

	ctx := context.WithValue(context.Background(), UserIDKey, "u1")
	_, err := interceptor(ok)(ctx, connect.NewRequest(&ping{}))
	require.NoError(t, err)
	_, err = interceptor(notFound)(ctx, connect.NewRequest(&ping{}))
	require.Error(t, err)
	_, err = interceptor(plain)(ctx, connect.NewRequest(&ping{}))
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "RPC ok")
	assert.Contains(t, out, "code=not_found")
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "user_id=u1")
	assert.Equal(t, 3, testutil.CollectAndCount(m.RPCDuration))
}

func TestLoggingInterceptorWithoutMetrics(t *testing.T) {
	interceptor := LoggingInterceptor(nil, nil)
	_, err := interceptor(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&ping{}), nil
	})(context.Background(), connect.NewRequest(&ping{}))
	assert.NoError(t, err)
}
