package guard

import (
	"context"
	"testing"
)

// fakeSession is a scriptable session state.
type fakeSession struct {
	loading       bool
	authenticated bool
	checkCalls    int
	afterCheck    bool
}

func (f *fakeSession) Loading() bool         { return f.loading }
func (f *fakeSession) IsAuthenticated() bool { return f.authenticated }
func (f *fakeSession) CheckSession(ctx context.Context) {
	f.checkCalls++
	f.loading = false
	f.authenticated = f.afterCheck
}

func TestStateWhileChecking(t *testing.T) {
	g := New(&fakeSession{loading: true})
	if got := g.State(); got != StateChecking {
		t.Errorf("State = %v, want checking", got)
	}
	if g.Allow() {
		t.Error("protected content must not be shown while checking")
	}
}

func TestResolveSettlesChecking(t *testing.T) {
	tests := []struct {
		name       string
		afterCheck bool
		want       State
	}{
		{"valid session", true, StateAuthenticated},
		{"no session", false, StateUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &fakeSession{loading: true, afterCheck: tt.afterCheck}
			g := New(session)

			got := g.Resolve(context.Background())
			if got != tt.want {
				t.Errorf("Resolve = %v, want %v", got, tt.want)
			}
			if session.checkCalls != 1 {
				t.Errorf("checkCalls = %d, want 1", session.checkCalls)
			}
			// Resolve never leaves the guard in Checking.
			if g.State() == StateChecking {
				t.Error("guard stuck in checking after Resolve")
			}
		})
	}
}

func TestResolveSkipsCheckWhenSettled(t *testing.T) {
	session := &fakeSession{loading: false, authenticated: true}
	g := New(session)

	if got := g.Resolve(context.Background()); got != StateAuthenticated {
		t.Errorf("Resolve = %v", got)
	}
	if session.checkCalls != 0 {
		t.Errorf("checkCalls = %d, want 0", session.checkCalls)
	}
}

func TestReturnPath(t *testing.T) {
	g := New(&fakeSession{})

	if got := g.ConsumeReturnPath(); got != "" {
		t.Errorf("fresh guard return path = %q", got)
	}

	g.CaptureReturnPath("colbuild jobs new")
	if got := g.ConsumeReturnPath(); got != "colbuild jobs new" {
		t.Errorf("return path = %q", got)
	}
	// Consumed once, gone.
	if got := g.ConsumeReturnPath(); got != "" {
		t.Errorf("second consume = %q, want empty", got)
	}
}

func TestStateString(t *testing.T) {
	if StateChecking.String() != "checking" || StateAuthenticated.String() != "authenticated" {
		t.Error("unexpected state strings")
	}
}
