// Package cli provides the command-line interface for colbuild.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/colbuilder-dev/colbuild/internal/logging"
	"github.com/colbuilder-dev/colbuild/internal/version"
)

var (
	// Global flags
	cfgFile   string
	serverURL string
	verbose   bool
	debug     bool

	// Global logger
	logger *logging.Logger

	// Global context for signal handling
	rootContext context.Context
	cancelFunc  context.CancelFunc
)

// Version information - set by main package at startup.
var (
	Version   = version.Version
	BuildTime = version.BuildTime
)

// Per-operation timeouts. Submission gets longer because the backend
// validates the parameter set before answering.
const (
	requestTimeout = 30 * time.Second
	submitTimeout  = 60 * time.Second
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "colbuild",
		Short: "Colbuilder client - submit and track structure-generation jobs",
		Long: `Colbuild ` + Version + ` - Built: ` + BuildTime + `
Terminal client for the Colbuilder collagen structure-generation service.

Manage your account session and configure, submit and track
structure-generation jobs (molecules and fibrils) from the command line.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewDefaultLogger()
			if verbose || debug {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Colbuilder server URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output (same as --verbose)")

	rootCmd.Version = Version + " (" + BuildTime + ")"

	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	rootContext, cancelFunc = context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		for sig := range sigChan {
			if sig != nil {
				fmt.Fprintf(os.Stderr, "\nReceived signal %v, cancelling...\n", sig)
				cancelFunc()
			}
		}
	}()

	rootCmd := NewRootCmd()
	AddCommands(rootCmd)
	err := rootCmd.Execute()

	signal.Stop(sigChan)
	close(sigChan)

	return err
}

// AddCommands adds all subcommands to the root command.
func AddCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newPasswordCmd())
	rootCmd.AddCommand(newAccountCmd())
	rootCmd.AddCommand(newJobsCmd())
	rootCmd.AddCommand(newConfigCmd())
}

// GetLogger returns the global CLI logger.
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return logger
}

// GetContext returns the global CLI context with signal handling.
func GetContext() context.Context {
	if rootContext == nil {
		return context.Background()
	}
	return rootContext
}

// opContext derives a per-request timeout from the signal-cancelled root
// context. A hung request therefore fails instead of wedging its panel.
func opContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(GetContext(), timeout)
}
