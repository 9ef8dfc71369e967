// Package cli provides account management commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/colbuilder-dev/colbuild/internal/models"
)

// newAccountCmd creates the 'account' command group.
func newAccountCmd() *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations (show, update, delete)",
	}
	accountCmd.AddCommand(newAccountShowCmd())
	accountCmd.AddCommand(newAccountUpdateCmd())
	accountCmd.AddCommand(newAccountDeleteCmd())
	return accountCmd
}

// newAccountShowCmd creates the 'account show' command.
func newAccountShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current account profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.requireAuth(cmd, func() error {
				ctx, cancel := opContext(requestTimeout)
				defer cancel()
				profile, result := a.store.Profile(ctx)
				if !result.Success {
					return fmt.Errorf("failed to read profile: %s", result.Message)
				}
				fmt.Printf("Username:       %s\n", profile.Username)
				fmt.Printf("Email:          %s\n", profile.Email)
				fmt.Printf("Created:        %s\n", profile.CreatedAt)
				fmt.Printf("Email verified: %t\n", profile.EmailVerified)
				return nil
			})
		},
	}
}

// newAccountUpdateCmd creates the 'account update' command.
func newAccountUpdateCmd() *cobra.Command {
	var email string
	var changePassword bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update email or password",
		Long: `Update the account email, the password, or both.

Example:
  # Change the account email
  colbuild account update --email new@example.org

  # Change the password (prompts for current and new password)
  colbuild account update --password`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.requireAuth(cmd, func() error {
				update := models.ProfileUpdate{Email: email}

				if changePassword {
					current, err := promptPassword(a.out, "Current password")
					if err != nil {
						return err
					}
					next, err := promptPassword(a.out, "New password")
					if err != nil {
						return err
					}
					update.CurrentPassword = current
					update.NewPassword = next
				}

				if update.Email == "" && update.NewPassword == "" {
					return fmt.Errorf("nothing to update: pass --email and/or --password")
				}

				ctx, cancel := opContext(requestTimeout)
				defer cancel()
				result := a.store.UpdateProfile(ctx, update)
				if !result.Success {
					return fmt.Errorf("profile update failed: %s", result.Message)
				}
				fmt.Println("Profile updated.")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "New account email")
	cmd.Flags().BoolVar(&changePassword, "password", false, "Change the password (interactive)")
	return cmd
}

// newAccountDeleteCmd creates the 'account delete' command.
func newAccountDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the account permanently",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.requireAuth(cmd, func() error {
				fmt.Println("This permanently deletes your account and all jobs.")
				confirmed, err := promptBool(a.reader, a.out, "Continue?", false)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Aborted.")
					return nil
				}

				password, err := promptPassword(a.out, "Password")
				if err != nil {
					return err
				}

				ctx, cancel := opContext(requestTimeout)
				defer cancel()
				result := a.store.DeleteAccount(ctx, password)
				if !result.Success {
					return fmt.Errorf("account deletion failed: %s", result.Message)
				}
				fmt.Println("Account deleted.")
				return nil
			})
		},
	}
}
