// Package guard gates protected commands on the session state.
package guard

import (
	"context"
	"sync"
)

// State is the guard's view of the session.
type State int

const (
	// StateChecking means the initial session check has not resolved yet.
	// Protected content is never shown in this state.
	StateChecking State = iota
	// StateAuthenticated permits the protected command to run.
	StateAuthenticated
	// StateUnauthenticated redirects to login, capturing the requested
	// command so it can be replayed after a successful login.
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// sessionState is the slice of the session store the guard reads.
type sessionState interface {
	Loading() bool
	IsAuthenticated() bool
	CheckSession(ctx context.Context)
}

// Guard consults the session store and decides whether a protected command
// may proceed. It also remembers the command that was blocked so the login
// flow can return the user to it.
type Guard struct {
	store sessionState

	mu         sync.Mutex
	returnPath string
}

// New creates a guard over the given session store.
func New(store sessionState) *Guard {
	return &Guard{store: store}
}

// State returns the current guard state without triggering a session check.
func (g *Guard) State() State {
	if g.store.Loading() {
		return StateChecking
	}
	if g.store.IsAuthenticated() {
		return StateAuthenticated
	}
	return StateUnauthenticated
}

// Resolve settles the Checking state by running the session check, then
// returns Authenticated or Unauthenticated. The transition out of Checking
// is unconditional: a failed check is identical to "not logged in".
func (g *Guard) Resolve(ctx context.Context) State {
	if g.store.Loading() {
		g.store.CheckSession(ctx)
	}
	if g.store.IsAuthenticated() {
		return StateAuthenticated
	}
	return StateUnauthenticated
}

// Allow reports whether protected content may be shown right now.
func (g *Guard) Allow() bool {
	return g.State() == StateAuthenticated
}

// CaptureReturnPath records the command invocation that was blocked.
func (g *Guard) CaptureReturnPath(path string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.returnPath = path
}

// ConsumeReturnPath returns the pending return path and clears it.
func (g *Guard) ConsumeReturnPath() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	path := g.returnPath
	g.returnPath = ""
	return path
}
