// Package cli provides configuration management commands.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/colbuilder-dev/colbuild/internal/config"
)

// newConfigCmd creates the 'config' command group.
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage colbuild configuration",
		Long: `Configuration management commands for colbuild.

Commands:
  init  - Interactive configuration setup
  show  - Display current configuration
  test  - Test server connection
  path  - Show configuration file path`,
	}

	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigShowCmd())
	configCmd.AddCommand(newConfigTestCmd())
	configCmd.AddCommand(newConfigPathCmd())

	return configCmd
}

// newConfigInitCmd creates the 'config init' command.
func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration interactively",
		Long: `Interactive configuration setup for colbuild.

The configuration is saved to ~/.config/colbuild/config

Use --force to overwrite an existing configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := GetLogger()

			configPath, err := config.DefaultConfigPath()
			if err != nil {
				return fmt.Errorf("failed to resolve config path: %w", err)
			}
			if cfgFile != "" {
				configPath = cfgFile
			}

			if !force {
				if _, err := os.Stat(configPath); err == nil {
					fmt.Printf("Configuration already exists at: %s\n", configPath)
					fmt.Println("Use --force to overwrite or run 'config show' to view current config.")
					return nil
				}
			}

			fmt.Println("Colbuild Configuration Setup")
			fmt.Println("============================")
			fmt.Println()

			reader := bufio.NewReader(os.Stdin)
			cfg := config.New()

			fmt.Printf("Server URL [%s]: ", cfg.ServerURL)
			urlInput, _ := reader.ReadString('\n')
			urlInput = strings.TrimSpace(urlInput)
			if urlInput != "" {
				cfg.ServerURL = urlInput
			}

			fmt.Print("Remember login sessions? [Y/n]: ")
			rememberInput, _ := reader.ReadString('\n')
			rememberInput = strings.TrimSpace(strings.ToLower(rememberInput))
			cfg.Session.Remember = rememberInput != "n" && rememberInput != "no"

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			if err := config.Save(cfg, configPath); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			logger.Info().Str("path", configPath).Msg("Configuration saved")

			fmt.Println()
			fmt.Printf("Configuration saved to: %s\n", configPath)
			fmt.Println()
			fmt.Println("Test your configuration with: colbuild config test")

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration")

	return cmd
}

// newConfigShowCmd creates the 'config show' command.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the current configuration settings.

This command shows the merged configuration from:
  1. Configuration file (~/.config/colbuild/config)
  2. Command-line flags (--server)

Priority: flags > config file > defaults`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if serverURL != "" {
				cfg.ServerURL = serverURL
			}

			configPath := cfgFile
			if configPath == "" {
				configPath, err = config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("failed to resolve config path: %w", err)
				}
			}

			cookiePath, err := cfg.CookieFilePath()
			if err != nil {
				return fmt.Errorf("failed to resolve session file path: %w", err)
			}

			fmt.Println("Current Configuration")
			fmt.Println("=====================")
			fmt.Println()

			fmt.Println("Server Settings:")
			fmt.Printf("  Server URL: %s\n", cfg.ServerURL)
			fmt.Println()

			fmt.Println("Session Settings:")
			fmt.Printf("  Remember:     %t\n", cfg.Session.Remember)
			fmt.Printf("  Session file: %s\n", cookiePath)
			fmt.Println()

			fmt.Printf("Configuration file: %s\n", configPath)
			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				fmt.Println("  (file does not exist - using defaults)")
			}

			return nil
		},
	}
}

// newConfigTestCmd creates the 'config test' command.
func newConfigTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Test server connection",
		Long: `Test the server connection with the current configuration.

Use this to verify the server URL and network connectivity. The check
does not require a login; it reports whether an existing session is
still valid.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := GetLogger()

			fmt.Println("Testing Server Connection")
			fmt.Println("=========================")
			fmt.Println()

			a, err := newApp()
			if err != nil {
				return err
			}

			fmt.Printf("Server URL: %s\n", a.cfg.ServerURL)
			fmt.Println("Testing connection...")
			fmt.Println()

			ctx, cancel := opContext(requestTimeout)
			defer cancel()

			check, err := a.client.CheckAuth(ctx)
			if err != nil {
				logger.Error().Err(err).Msg("Connection test failed")
				fmt.Println("Connection FAILED")
				fmt.Printf("  Error: %v\n", err)
				return fmt.Errorf("connection test failed")
			}

			logger.Info().Msg("Connection test successful")

			fmt.Println("Connection SUCCESSFUL")
			fmt.Println()
			if check.Authenticated {
				fmt.Printf("Logged in as: %s\n", check.Username)
			} else {
				fmt.Println("No active session. Run 'colbuild login' to authenticate.")
			}

			return nil
		},
	}
}

// newConfigPathCmd creates the 'config path' command.
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Long:  `Display the path to the configuration file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := cfgFile
			if configPath == "" {
				var err error
				configPath, err = config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("failed to resolve config path: %w", err)
				}
				fmt.Println("Default configuration path:")
			} else {
				fmt.Println("Configuration path (from --config flag):")
			}

			fmt.Printf("  %s\n", configPath)
			fmt.Println()

			if fileInfo, err := os.Stat(configPath); err == nil {
				fmt.Println("Status: File exists")
				fmt.Printf("Size:   %d bytes\n", fileInfo.Size())
				fmt.Printf("Modified: %s\n", fileInfo.ModTime().Format("2006-01-02 15:04:05"))
			} else {
				fmt.Println("Status: File does not exist")
				fmt.Println()
				fmt.Println("Create a configuration file with: colbuild config init")
			}

			return nil
		},
	}
}
