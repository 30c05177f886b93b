package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"syscall"

	"golang.org/x/term"

	"github.com/reachforge/reachforge/internal/adapter/postgres"
	"github.com/reachforge/reachforge/internal/config"
	"github.com/reachforge/reachforge/internal/domain/user"
	"github.com/reachforge/reachforge/internal/service"
)

// runAdmin dispatches admin subcommands.
func runAdmin(args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" {
		printAdminHelp()
		return nil
	}

	switch args[0] {
	case "create-user":
		return runAdminCreateUser(args[1:])
	default:
		printAdminHelp()
		return fmt.Errorf("unknown admin command: %s", args[0])
	}
}

func printAdminHelp() {
	fmt.Fprintf(os.Stderr, `Usage: reachforge admin <command> [options]

Commands:
  create-user   Create a new user
  help          Show this help message

Examples:
  reachforge admin create-user --email founder@example.com --name "Founder"
`)
}

func loadAdminDeps() (*service.AuthService, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	store := postgres.NewStore(pool)
	authSvc := service.NewAuthService(store, &cfg.Auth)

	cleanup := func() {
		pool.Close()
	}
	return authSvc, cleanup, nil
}

func runAdminCreateUser(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	email := fs.String("email", "", "user email address (required)")
	name := fs.String("name", "", "display name (required)")
	password := fs.String("password", "", "password (prompted if not provided)") //nolint:gosec // CLI flag
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		return fmt.Errorf("--email is required")
	}
	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	pass := *password
	if pass == "" {
		var err error
		pass, err = promptPassword()
		if err != nil {
			return err
		}
	}

	authSvc, cleanup, err := loadAdminDeps()
	if err != nil {
		return err
	}
	defer cleanup()

	u, err := authSvc.Register(context.Background(), &user.CreateRequest{
		Email:    *email,
		Name:     *name,
		Password: pass,
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("created user %s (%s)\n", u.Email, u.ID)
	return nil
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	pass, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	fmt.Fprint(os.Stderr, "Confirm: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read confirmation: %w", err)
	}
	if string(pass) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(pass), nil
}

// runMigrate dispatches migration subcommands against the configured
// database.
func runMigrate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: reachforge migrate <up|down|version> [steps]")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	ctx := context.Background()

	switch args[0] {
	case "up":
		if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
			return err
		}
		fmt.Println("migrations applied")
	case "down":
		steps := 1
		if len(args) > 1 {
			steps, err = strconv.Atoi(args[1])
			if err != nil || steps < 1 {
				return fmt.Errorf("steps must be a positive integer")
			}
		}
		if err := postgres.RollbackMigrations(ctx, cfg.Postgres.DSN, steps); err != nil {
			return err
		}
		fmt.Printf("rolled back %d migration(s)\n", steps)
	case "version":
		v, err := postgres.MigrationVersion(ctx, cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		fmt.Printf("migration version: %d\n", v)
	default:
		return fmt.Errorf("unknown migrate command: %s", args[0])
	}
	return nil
}
