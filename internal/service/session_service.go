package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// Session bundles a freshly issued token with its claim.
type Session struct {
	Claim     domain.SessionClaim
	Token     string
	ExpiresAt time.Time
}

// SessionService coordinates registration, login and the refresh
// reconciliation that re-derives a claim from persisted truth.
type SessionService struct {
	users       repository.UserRepository
	state       repository.SessionStateStore
	tokens      *auth.TokenManager
	bcryptCost  int
	ttl         time.Duration
	rememberTTL time.Duration
}

// SessionDependencies encapsulates requirements for the session service.
type SessionDependencies struct {
	UserRepo     repository.UserRepository
	SessionState repository.SessionStateStore
	Tokens       *auth.TokenManager
}

// NewSessionService builds the service.
func NewSessionService(cfg config.AuthConfig, deps SessionDependencies) *SessionService {
	return &SessionService{
		users:       deps.UserRepo,
		state:       deps.SessionState,
		tokens:      deps.Tokens,
		bcryptCost:  cfg.BcryptCost,
		ttl:         cfg.CookieMaxAge(),
		rememberTTL: cfg.RememberMaxAge(),
	}
}

// Register creates a new buyer account and issues a first session.
func (s *SessionService) Register(ctx context.Context, name, email, password string) (*domain.User, *Session, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleBuyer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	session, err := s.issue(user, false)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login authenticates a user by email and password. Bad credentials
// surface as unauthenticated without revealing which part was wrong.
func (s *SessionService) Login(ctx context.Context, email, password string, remember bool) (*domain.User, *Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthenticated("invalid credentials")
		}
		return nil, nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthenticated("invalid credentials")
	}

	session, err := s.issue(user, remember)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Refresh reloads the persisted user and issues a claim built from the
// live role and shop flags. Idempotent: when nothing changed the new
// claim matches the old one apart from timestamps. A vanished user means
// the session is invalid, not retryable.
func (s *SessionService) Refresh(ctx context.Context, claim *domain.SessionClaim) (*domain.User, *Session, error) {
	user, err := s.users.GetByID(ctx, claim.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("user", nil)
		}
		return nil, nil, err
	}

	// Re-issuing with the original remember choice keeps a long-lived
	// session long-lived across refreshes.
	session, err := s.issue(user, claim.Remember)
	if err != nil {
		return nil, nil, err
	}
	// Marker cleanup is best effort; the next refresh retries it.
	_ = s.state.ClearStale(ctx, user.ID)
	return user, session, nil
}

// Logout clears the stale marker for the user. Tokens are stateless so
// there is nothing else to revoke server-side.
func (s *SessionService) Logout(ctx context.Context, userID string) {
	_ = s.state.ClearStale(ctx, userID)
}

// IsStale reports whether the user's persisted role changed since the
// claim was issued. Used as a refresh hint for the client's watcher.
func (s *SessionService) IsStale(ctx context.Context, userID string) bool {
	stale, err := s.state.IsStale(ctx, userID)
	if err != nil {
		return false
	}
	return stale
}

func (s *SessionService) issue(user *domain.User, remember bool) (*Session, error) {
	claim := domain.NewSessionClaim(user)
	claim.Remember = remember
	ttl := s.ttl
	if remember {
		ttl = s.rememberTTL
	}
	token, expiresAt, err := s.tokens.Issue(claim, ttl)
	if err != nil {
		return nil, err
	}
	claim.ExpiresAt = expiresAt
	return &Session{Claim: claim, Token: token, ExpiresAt: expiresAt}, nil
}
