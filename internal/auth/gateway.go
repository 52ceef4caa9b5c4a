package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultDelay          = 1500 * time.Millisecond
	DefaultResendCooldown = 59 * time.Second
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrResendTooSoon      = errors.New("verification code recently sent")
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
)

// Principal is who a successful login resolved to and where they land.
type Principal struct {
	Email       string
	Role        Role
	RedirectURL string
}

// Gateway is the account backend behind the auth screens.
type Gateway interface {
	Login(ctx context.Context, email, password string) (Principal, error)
	Signup(ctx context.Context, fullName, email, password string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, password string) error
	VerifyEmail(ctx context.Context, code string) error
	ResendVerification(ctx context.Context, email string) error
}

type demoAccount struct {
	hash      []byte
	principal Principal
}

// DemoGateway accepts two fixed accounts and succeeds every other call after
// a fixed delay. It stands in until a real identity backend exists.
type DemoGateway struct {
	delay     time.Duration
	cooldown  time.Duration
	cooldowns CooldownStore
	accounts  map[string]demoAccount
	logger    *slog.Logger
}

type DemoConfig struct {
	Delay          time.Duration
	ResendCooldown time.Duration
	Cooldowns      CooldownStore
	Logger         *slog.Logger
}

func NewDemoGateway(cfg DemoConfig) (*DemoGateway, error) {
	if cfg.ResendCooldown <= 0 {
		cfg.ResendCooldown = DefaultResendCooldown
	}
	if cfg.Cooldowns == nil {
		cfg.Cooldowns = NewMemoryCooldownStore(time.Now)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	g := &DemoGateway{
		delay:     cfg.Delay,
		cooldown:  cfg.ResendCooldown,
		cooldowns: cfg.Cooldowns,
		accounts:  make(map[string]demoAccount),
		logger:    cfg.Logger,
	}
	for _, p := range []Principal{
		{Email: "my@gmail.com", Role: RoleCustomer, RedirectURL: "/my-dashboard"},
		{Email: "provider@gmail.com", Role: RoleProvider, RedirectURL: "/provider"},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte("hello123"), bcrypt.MinCost)
		if err != nil {
			return nil, fmt.Errorf("hash demo password: %w", err)
		}
		g.accounts[p.Email] = demoAccount{hash: hash, principal: p}
	}
	return g, nil
}

func (g *DemoGateway) Login(ctx context.Context, email, password string) (Principal, error) {
	if err := g.wait(ctx); err != nil {
		return Principal{}, err
	}
	acct, ok := g.accounts[email]
	if !ok {
		return Principal{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.hash, []byte(password)); err != nil {
		return Principal{}, ErrInvalidCredentials
	}
	g.logger.Info("demo login", "role", acct.principal.Role)
	return acct.principal, nil
}

func (g *DemoGateway) Signup(ctx context.Context, fullName, email, password string) error {
	if err := g.wait(ctx); err != nil {
		return err
	}
	g.logger.Info("demo signup", "email_domain", emailDomain(email))
	return nil
}

func (g *DemoGateway) RequestPasswordReset(ctx context.Context, email string) error {
	if err := g.wait(ctx); err != nil {
		return err
	}
	g.logger.Info("demo password reset requested", "email_domain", emailDomain(email))
	return nil
}

func (g *DemoGateway) ResetPassword(ctx context.Context, password string) error {
	return g.wait(ctx)
}

func (g *DemoGateway) VerifyEmail(ctx context.Context, code string) error {
	return g.wait(ctx)
}

// ResendVerification sends a new code unless one went out within the
// cooldown window.
func (g *DemoGateway) ResendVerification(ctx context.Context, email string) error {
	ok, err := g.cooldowns.Acquire(ctx, "verify-resend:"+strings.ToLower(email), g.cooldown)
	if err != nil {
		return fmt.Errorf("acquire resend cooldown: %w", err)
	}
	if !ok {
		return ErrResendTooSoon
	}
	g.logger.Info("demo verification code resent", "email_domain", emailDomain(email))
	return nil
}

func (g *DemoGateway) wait(ctx context.Context) error {
	if g.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(g.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func emailDomain(email string) string {
	if i := strings.LastIndex(email, "@"); i >= 0 {
		return email[i+1:]
	}
	return ""
}
