// Package cli provides client wiring helpers.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/colbuilder-dev/colbuild/internal/api"
	"github.com/colbuilder-dev/colbuild/internal/config"
	"github.com/colbuilder-dev/colbuild/internal/guard"
	"github.com/colbuilder-dev/colbuild/internal/http"
	"github.com/colbuilder-dev/colbuild/internal/session"
)

// app bundles the wired client components a command needs: config, gateway,
// session store and route guard. The session store instance is constructed
// here and injected everywhere identity is read - there is no global
// session singleton.
type app struct {
	cfg    *config.Config
	client *api.Client
	store  *session.Store
	guard  *guard.Guard
	reader *bufio.Reader
	out    io.Writer
}

// newApp loads configuration and wires the client stack. This is the
// standard way for commands to get at the backend.
func newApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cookiePath, err := cfg.CookieFilePath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session file path: %w", err)
	}
	jar, err := http.NewPersistentJar(cookiePath, cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open session file: %w", err)
	}

	client, err := api.NewClient(cfg, jar, GetLogger())
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	store := session.NewStore(client, GetLogger(), jar.Clear)

	return &app{
		cfg:    cfg,
		client: client,
		store:  store,
		guard:  guard.New(store),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// requireAuth gates a protected command on the route guard. The Checking
// state is settled with a session check; Unauthenticated captures the
// blocked command as the return path, offers an interactive login, and
// replays the command on success.
func (a *app) requireAuth(cmd *cobra.Command, run func() error) error {
	ctx, cancel := opContext(requestTimeout)
	state := a.guard.Resolve(ctx)
	cancel()

	if state == guard.StateAuthenticated {
		return run()
	}

	a.guard.CaptureReturnPath(cmd.CommandPath())
	fmt.Println("You are not logged in.")
	login, err := promptBool(a.reader, a.out, "Log in now?", true)
	if err != nil || !login {
		return fmt.Errorf("login required: run 'colbuild login'")
	}
	if err := a.interactiveLogin(); err != nil {
		return err
	}

	if path := a.guard.ConsumeReturnPath(); path != "" {
		GetLogger().Debugf("returning to %s", path)
	}
	return run()
}
