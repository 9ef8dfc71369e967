// Package session holds the authenticated identity and the operations that
// may change it. The store is the single source of truth for "is the user
// authenticated"; nothing else writes the identity.
package session

import (
	"context"
	"sync"

	"github.com/colbuilder-dev/colbuild/internal/api"
	"github.com/colbuilder-dev/colbuild/internal/logging"
	"github.com/colbuilder-dev/colbuild/internal/models"
)

// GenericErrorMessage is shown for transport failures. The real error is
// logged; the user never sees raw network or parse errors.
const GenericErrorMessage = "an unexpected error occurred"

// Result is the normalized outcome every store operation returns. Network
// failures are caught here and never propagate as raw errors to callers.
type Result struct {
	Success bool
	Message string
}

// Gateway is the slice of the API client the store needs. Tests provide a
// stub; production wiring passes *api.Client.
type Gateway interface {
	CheckAuth(ctx context.Context) (*api.CheckAuthResult, error)
	Login(ctx context.Context, username, password string, remember bool) (*api.LoginResult, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, username, email, password string) (*api.LoginResult, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	VerifyResetToken(ctx context.Context, token string) (string, error)
	ResetPassword(ctx context.Context, token, password string) error
	GetProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) error
	DeleteAccount(ctx context.Context, password string) error
}

// Store owns the session state. All writes to identity happen inside store
// operations; readers use the accessor methods.
type Store struct {
	gateway Gateway
	logger  *logging.Logger

	// teardown clears local credentials (the persisted cookie). It runs on
	// logout and account deletion, regardless of what the server said.
	teardown func()

	mu          sync.Mutex
	identity    *models.Identity
	authLoading bool
}

// NewStore creates a store in the Checking state: authLoading stays true
// until CheckSession resolves.
func NewStore(gateway Gateway, logger *logging.Logger, teardown func()) *Store {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Store{
		gateway:     gateway,
		logger:      logger,
		teardown:    teardown,
		authLoading: true,
	}
}

// Identity returns the current identity, or nil when unauthenticated.
func (s *Store) Identity() *models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// IsAuthenticated reports whether a confirmed identity is held.
func (s *Store) IsAuthenticated() bool {
	return s.Identity() != nil
}

// Loading reports whether the initial session check is still outstanding.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authLoading
}

// CheckSession validates the persisted session cookie against the backend.
// It is called once at startup. A failed check is treated identically to
// "not logged in"; authLoading is cleared no matter what happens.
func (s *Store) CheckSession(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.authLoading = false
		s.mu.Unlock()
	}()

	result, err := s.gateway.CheckAuth(ctx)
	if err != nil {
		s.logger.Debug().Err(err).Msg("session check failed")
		s.setIdentity(nil)
		return
	}
	if result.Authenticated {
		s.setIdentity(&models.Identity{Username: result.Username})
	} else {
		s.setIdentity(nil)
	}
}

// Login authenticates and, on server-confirmed success, stores the identity.
func (s *Store) Login(ctx context.Context, username, password string, remember bool) Result {
	result, err := s.gateway.Login(ctx, username, password, remember)
	if err != nil {
		return s.failure("login", err)
	}
	s.setIdentity(&models.Identity{Username: result.Username})
	return Result{Success: true}
}

// Logout tears the session down. The local identity is always cleared, even
// when the server request fails: a failed logout must not leave the client
// looking authenticated. This fail-open-to-logged-out policy is deliberate.
func (s *Store) Logout(ctx context.Context) Result {
	if err := s.gateway.Logout(ctx); err != nil {
		s.logger.Debug().Err(err).Msg("logout request failed; clearing local session anyway")
	}
	s.setIdentity(nil)
	if s.teardown != nil {
		s.teardown()
	}
	return Result{Success: true}
}

// Register creates an account. The server logs the new user in, so the
// identity is stored on success, mirroring Login.
func (s *Store) Register(ctx context.Context, username, email, password string) Result {
	result, err := s.gateway.Register(ctx, username, email, password)
	if err != nil {
		return s.failure("register", err)
	}
	s.setIdentity(&models.Identity{Username: result.Username})
	return Result{Success: true}
}

// RequestPasswordReset is a stateless pass-through; it never mutates identity.
func (s *Store) RequestPasswordReset(ctx context.Context, email string) Result {
	message, err := s.gateway.RequestPasswordReset(ctx, email)
	if err != nil {
		return s.failure("password reset request", err)
	}
	return Result{Success: true, Message: message}
}

// VerifyResetToken checks a reset token once and returns the token state.
func (s *Store) VerifyResetToken(ctx context.Context, token string) (models.ResetToken, Result) {
	email, err := s.gateway.VerifyResetToken(ctx, token)
	if err != nil {
		return models.ResetToken{Token: token}, s.failure("token verification", err)
	}
	return models.ResetToken{Token: token, Email: email, Valid: true}, Result{Success: true}
}

// ResetPassword sets a new password authorized by a reset token.
func (s *Store) ResetPassword(ctx context.Context, token, password string) Result {
	if err := s.gateway.ResetPassword(ctx, token, password); err != nil {
		return s.failure("password reset", err)
	}
	return Result{Success: true}
}

// Profile fetches the account record. Requires an existing identity.
func (s *Store) Profile(ctx context.Context) (*models.Profile, Result) {
	if !s.IsAuthenticated() {
		return nil, Result{Message: "not logged in"}
	}
	profile, err := s.gateway.GetProfile(ctx)
	if err != nil {
		return nil, s.failure("profile read", err)
	}
	return profile, Result{Success: true}
}

// UpdateProfile applies a partial account update. Requires an identity.
func (s *Store) UpdateProfile(ctx context.Context, update models.ProfileUpdate) Result {
	if !s.IsAuthenticated() {
		return Result{Message: "not logged in"}
	}
	if err := s.gateway.UpdateProfile(ctx, update); err != nil {
		return s.failure("profile update", err)
	}
	return Result{Success: true}
}

// DeleteAccount deletes the account and clears the identity on success.
func (s *Store) DeleteAccount(ctx context.Context, password string) Result {
	if !s.IsAuthenticated() {
		return Result{Message: "not logged in"}
	}
	if err := s.gateway.DeleteAccount(ctx, password); err != nil {
		return s.failure("account deletion", err)
	}
	s.setIdentity(nil)
	if s.teardown != nil {
		s.teardown()
	}
	return Result{Success: true}
}

func (s *Store) setIdentity(identity *models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = identity
}

// failure normalizes an error into a Result. Business-rule failures surface
// the server's message verbatim; transport failures get the generic message
// and a log entry for diagnostics.
func (s *Store) failure(op string, err error) Result {
	if apiErr, ok := api.AsAPIError(err); ok {
		return Result{Message: apiErr.Message}
	}
	s.logger.Error().Str("op", op).Err(err).Msg("request failed")
	return Result{Message: GenericErrorMessage}
}
