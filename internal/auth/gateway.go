package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Tedomi2525/My-project/internal/api"
	"github.com/Tedomi2525/My-project/internal/session"
	"github.com/Tedomi2525/My-project/types"
)

// LoginPath is where the gateway navigates after logging out.
const LoginPath = "/login"

// Navigator moves the client to a route and returns where it landed.
type Navigator interface {
	Navigate(path string) string
}

// Transport is the subset of api.Client used by the gateway.
type Transport interface {
	DoPublic(ctx context.Context, method, path string, body, out any) error
	DoBearer(ctx context.Context, method, path, token string, body, out any) error
}

// Gateway owns the login, logout and restore flows.
type Gateway struct {
	store  *session.Store
	api    Transport
	nav    Navigator
	secret string
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithSecret enables signature verification of restored tokens.
func WithSecret(secret string) Option {
	return func(g *Gateway) { g.secret = secret }
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

func NewGateway(store *session.Store, transport Transport, nav Navigator, opts ...Option) *Gateway {
	g := &Gateway{
		store:  store,
		api:    transport,
		nav:    nav,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Login exchanges username and password for a session and navigates to the
// role's landing route. On failure the session is left untouched.
func (g *Gateway) Login(ctx context.Context, username, password string) (types.Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return types.Identity{}, ErrMissingCredentials
	}

	var resp types.AuthResponse
	req := types.LoginRequest{Username: username, Password: password}
	if err := g.api.DoPublic(ctx, http.MethodPost, "/login", req, &resp); err != nil {
		if errors.Is(err, api.ErrUnauthorized) || errors.Is(err, api.ErrForbidden) {
			return types.Identity{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		return types.Identity{}, fmt.Errorf("login: %w", err)
	}

	if strings.TrimSpace(resp.AccessToken) == "" {
		return types.Identity{}, errors.New("login: backend returned no access token")
	}
	role, ok := types.ParseRole(resp.Role)
	if !ok {
		return types.Identity{}, fmt.Errorf("login: unknown role %q", resp.Role)
	}

	identity := types.Identity{
		ID:          resp.UserID,
		Username:    username,
		DisplayName: resp.FullName,
		Role:        role,
	}
	if resp.Email != nil {
		identity.Email = *resp.Email
	}
	if resp.StudentID != nil {
		identity.StudentCode = *resp.StudentID
	}

	cred := session.Credential{Token: resp.AccessToken, UserID: resp.UserID, Role: role}
	if claims, err := DecodeClaims(resp.AccessToken, g.secret, g.now()); err == nil {
		cred.ExpiresAt = claims.ExpiresAt
	}

	if err := g.store.Establish(ctx, cred, identity); err != nil {
		if !g.store.Authenticated() {
			return types.Identity{}, fmt.Errorf("login: %w", err)
		}
		g.logger.Warn("session not persisted", "error", err)
	}

	g.logger.Debug("logged in", "user_id", identity.ID, "role", identity.Role)
	g.nav.Navigate(role.Home())
	return identity, nil
}

// Logout clears the session and navigates to the login route. Calling it
// without a session is a no-op apart from the navigation.
func (g *Gateway) Logout(ctx context.Context) {
	if err := g.store.Clear(ctx); err != nil {
		g.logger.Warn("failed to delete persisted session", "error", err)
	}
	g.nav.Navigate(LoginPath)
}

// RestoreSession validates a persisted credential. An expired or rejected
// credential forces a logout and ErrSessionExpired is returned. It does
// nothing when there is no credential or the session is already live.
func (g *Gateway) RestoreSession(ctx context.Context) error {
	if g.store.Authenticated() {
		return nil
	}
	if err := g.store.Load(ctx); err != nil {
		if errors.Is(err, session.ErrNoCredential) {
			return nil
		}
		return fmt.Errorf("load session: %w", err)
	}

	pending, snapshot, ok := g.store.Pending()
	if !ok {
		return nil
	}

	cred, err := DecodeClaims(pending.Token, g.secret, g.now())
	switch {
	case err == nil:
	case errors.Is(err, ErrMalformedToken):
		// Opaque token; the backend is the only judge.
		cred = session.Credential{Token: pending.Token}
	default:
		return g.expire(ctx, err)
	}

	identity, ok := matchSnapshot(snapshot, cred)
	if !ok {
		identity, err = g.whoAmI(ctx, pending.Token)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return g.expire(ctx, err)
		}
	}
	if cred.UserID == 0 {
		cred.UserID = identity.ID
	}
	if cred.Role == "" {
		cred.Role = identity.Role
	}

	if err := g.store.Validate(ctx, cred, identity); err != nil {
		if g.store.Authenticated() {
			g.logger.Warn("session not persisted", "error", err)
			return nil
		}
		return g.expire(ctx, err)
	}
	g.logger.Debug("session restored", "user_id", identity.ID, "role", identity.Role)
	return nil
}

func (g *Gateway) whoAmI(ctx context.Context, token string) (types.Identity, error) {
	var user types.User
	if err := g.api.DoBearer(ctx, http.MethodGet, "/auth/me", token, nil, &user); err != nil {
		return types.Identity{}, fmt.Errorf("fetch current user: %w", err)
	}
	return user.Identity(), nil
}

func (g *Gateway) expire(ctx context.Context, cause error) error {
	g.logger.Info("stored session rejected, logging out", "reason", cause)
	g.Logout(ctx)
	if errors.Is(cause, ErrSessionExpired) {
		return cause
	}
	return fmt.Errorf("%w: %w", ErrSessionExpired, cause)
}

// matchSnapshot returns the persisted identity when it agrees with the
// decoded claims. Claims without a user id never match.
func matchSnapshot(snapshot *types.Identity, cred session.Credential) (types.Identity, bool) {
	if snapshot == nil || !snapshot.Role.Valid() || cred.UserID == 0 {
		return types.Identity{}, false
	}
	if snapshot.ID != cred.UserID {
		return types.Identity{}, false
	}
	if cred.Role != "" && snapshot.Role != cred.Role {
		return types.Identity{}, false
	}
	return *snapshot, true
}
