package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Strob0t/clientdesk/internal/domain/user"
	"github.com/Strob0t/clientdesk/internal/operation"
	"github.com/Strob0t/clientdesk/internal/port/database"
	"github.com/Strob0t/clientdesk/internal/service"
)

var (
	adminEmail    string
	adminPassword string
	adminRole     string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for an existing user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withAdminDeps(cmd.Context(), func(ctx context.Context, store database.Store, auth *service.AuthService) error {
			u, err := store.GetUserByEmail(ctx, strings.ToLower(adminEmail))
			if err != nil {
				return fmt.Errorf("lookup %s: %w", adminEmail, err)
			}
			token, err := auth.IssueToken(u.Actor())
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}
			fmt.Fprintln(os.Stdout, token)
			return nil
		})
	},
}

var setPasswordCmd = &cobra.Command{
	Use:   "set-password",
	Short: "Set a user's password",
	RunE: func(cmd *cobra.Command, _ []string) error {
		pass, err := passwordOrPrompt(adminPassword)
		if err != nil {
			return err
		}
		return withAdminDeps(cmd.Context(), func(ctx context.Context, _ database.Store, auth *service.AuthService) error {
			if err := auth.SetPassword(ctx, strings.ToLower(adminEmail), pass); err != nil {
				return fmt.Errorf("set password: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Password updated for %s\n", adminEmail)
			return nil
		})
	},
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a user account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		role := user.Role(adminRole)
		if !user.ValidRoles[role] {
			return fmt.Errorf("--role %q must be admin, affiliate or member", adminRole)
		}
		pass, err := passwordOrPrompt(adminPassword)
		if err != nil {
			return err
		}
		return withAdminDeps(cmd.Context(), func(ctx context.Context, store database.Store, auth *service.AuthService) error {
			hash, err := auth.HashPassword(pass)
			if err != nil {
				return err
			}
			u := &user.User{Email: strings.ToLower(adminEmail), PasswordHash: hash, Role: role}
			id, err := store.CreateUser(ctx, u)
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			fmt.Fprintf(os.Stderr, "User created: %s (id=%d, role=%s)\n", u.Email, id, u.Role)
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{tokenCmd, setPasswordCmd, createUserCmd} {
		c.Flags().StringVar(&adminEmail, "email", "", "user email address (required)")
		_ = c.MarkFlagRequired("email")
	}
	for _, c := range []*cobra.Command{setPasswordCmd, createUserCmd} {
		c.Flags().StringVar(&adminPassword, "password", "", "password (prompted if not provided)")
	}
	createUserCmd.Flags().StringVar(&adminRole, "role", string(user.RoleAdmin), "admin, affiliate or member")
}

func withAdminDeps(ctx context.Context, fn func(context.Context, database.Store, *service.AuthService) error) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	auth := service.NewAuthService(store, &cfg.Auth, operation.NewRunner(log, nil))
	return fn(ctx, store, auth)
}

func passwordOrPrompt(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	pass, err := promptPassword("Password: ")
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if pass != confirm {
		return "", fmt.Errorf("passwords do not match")
	}
	return pass, nil
}

// promptPassword reads a password from the terminal without echoing.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin)) //nolint:unconvert // int conversion needed on some platforms
	fmt.Fprintln(os.Stderr)                         // newline after password input
	if err != nil {
		return "", err
	}
	return string(b), nil
}
