package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, cooldowns CooldownStore) *DemoGateway {
	t.Helper()
	g, err := NewDemoGateway(DemoConfig{Cooldowns: cooldowns})
	require.NoError(t, err)
	return g
}

func TestDemoLogin(t *testing.T) {
	g := newTestGateway(t, nil)
	ctx := context.Background()

	p, err := g.Login(ctx, "my@gmail.com", "hello123")
	require.NoError(t, err)
	require.Equal(t, RoleCustomer, p.Role)
	require.Equal(t, "/my-dashboard", p.RedirectURL)

	p, err = g.Login(ctx, "provider@gmail.com", "hello123")
	require.NoError(t, err)
	require.Equal(t, RoleProvider, p.Role)
	require.Equal(t, "/provider", p.RedirectURL)

	_, err = g.Login(ctx, "my@gmail.com", "wrong-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = g.Login(ctx, "someone@gmail.com", "hello123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDemoGatewayHonoursContext(t *testing.T) {
	g, err := NewDemoGateway(DemoConfig{Delay: time.Minute})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, g.Signup(ctx, "Jane", "jane@example.com", "password1"), context.DeadlineExceeded)
}

func TestResendVerificationCooldown(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := NewMemoryCooldownStore(func() time.Time { return now })
	g := newTestGateway(t, store)
	ctx := context.Background()

	require.NoError(t, g.ResendVerification(ctx, "jane@example.com"))
	require.ErrorIs(t, g.ResendVerification(ctx, "JANE@example.com"), ErrResendTooSoon)
	require.NoError(t, g.ResendVerification(ctx, "other@example.com"))

	now = now.Add(DefaultResendCooldown)
	require.NoError(t, g.ResendVerification(ctx, "jane@example.com"))
}
