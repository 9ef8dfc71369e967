// Package cli provides session and account commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// interactiveLogin prompts for credentials and authenticates through the
// session store. Server-reported failures are shown verbatim; transport
// failures surface as the generic message.
func (a *app) interactiveLogin() error {
	username, err := promptRequired(a.reader, a.out, "Username")
	if err != nil {
		return err
	}
	password, err := promptPassword(a.out, "Password")
	if err != nil {
		return err
	}

	ctx, cancel := opContext(requestTimeout)
	defer cancel()
	result := a.store.Login(ctx, username, password, a.cfg.Session.Remember)
	if !result.Success {
		return fmt.Errorf("login failed: %s", result.Message)
	}

	fmt.Printf("Logged in as %s\n", a.store.Identity().Username)
	return nil
}

// newLoginCmd creates the 'login' command.
func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in to the Colbuilder server",
		Long: `Authenticate against the Colbuilder server.

The session cookie is persisted, so you stay logged in across invocations
until you log out or the session expires.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.interactiveLogin()
		},
	}
}

// newLogoutCmd creates the 'logout' command.
func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx, cancel := opContext(requestTimeout)
			defer cancel()
			// Logout always clears the local session, even when the
			// server request fails.
			a.store.Logout(ctx)
			fmt.Println("Logged out.")
			return nil
		},
	}
}

// newRegisterCmd creates the 'register' command.
func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			username, err := promptRequired(a.reader, a.out, "Username")
			if err != nil {
				return err
			}
			email, err := promptRequired(a.reader, a.out, "Email")
			if err != nil {
				return err
			}
			password, err := promptPassword(a.out, "Password")
			if err != nil {
				return err
			}

			ctx, cancel := opContext(requestTimeout)
			defer cancel()
			result := a.store.Register(ctx, username, email, password)
			if !result.Success {
				return fmt.Errorf("registration failed: %s", result.Message)
			}

			fmt.Printf("Account created; logged in as %s\n", a.store.Identity().Username)
			return nil
		},
	}
}

// newPasswordCmd creates the 'password' command group for reset-by-token.
func newPasswordCmd() *cobra.Command {
	passwordCmd := &cobra.Command{
		Use:   "password",
		Short: "Password reset operations (request, reset)",
	}
	passwordCmd.AddCommand(newPasswordRequestCmd())
	passwordCmd.AddCommand(newPasswordResetCmd())
	return passwordCmd
}

// newPasswordRequestCmd creates the 'password request' command.
func newPasswordRequestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "request <email>",
		Short: "Request a password reset email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx, cancel := opContext(requestTimeout)
			defer cancel()
			result := a.store.RequestPasswordReset(ctx, args[0])
			if !result.Success {
				return fmt.Errorf("reset request failed: %s", result.Message)
			}
			fmt.Println(result.Message)
			return nil
		},
	}
}

// newPasswordResetCmd creates the 'password reset' command. The token is
// verified exactly once before the new password is prompted for, so the
// user learns about an expired token before typing anything.
func newPasswordResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <token>",
		Short: "Set a new password using a reset token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			ctx, cancel := opContext(requestTimeout)
			token, result := a.store.VerifyResetToken(ctx, args[0])
			cancel()
			if !result.Success {
				return fmt.Errorf("token verification failed: %s", result.Message)
			}
			fmt.Printf("Resetting password for %s\n", token.Email)

			password, err := promptPassword(a.out, "New password")
			if err != nil {
				return err
			}
			confirm, err := promptPassword(a.out, "Confirm new password")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}

			ctx, cancel = opContext(requestTimeout)
			defer cancel()
			reset := a.store.ResetPassword(ctx, token.Token, password)
			if !reset.Success {
				return fmt.Errorf("password reset failed: %s", reset.Message)
			}
			fmt.Println("Password has been reset. You can now log in.")
			return nil
		},
	}
}
