package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cdotel "github.com/Strob0t/clientdesk/internal/adapter/otel"
)

var rollbackSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(cmd.Context(), "up", func(ctx context.Context, m *migrator) error {
			if err := m.up(ctx); err != nil {
				return err
			}
			return printVersion(ctx, m)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if rollbackSteps < 1 {
			return fmt.Errorf("--steps must be >= 1")
		}
		return withMigrator(cmd.Context(), "down", func(ctx context.Context, m *migrator) error {
			if err := m.down(ctx, rollbackSteps); err != nil {
				return err
			}
			return printVersion(ctx, m)
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(cmd.Context(), "version", printVersion)
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&rollbackSteps, "steps", 1, "number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}

func withMigrator(ctx context.Context, direction string, fn func(context.Context, *migrator) error) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := newMigrator(ctx, cfg)
	if err != nil {
		return err
	}
	defer m.close()

	ctx, span := cdotel.StartMigrationSpan(ctx, cfg.Store.Driver, direction)
	defer span.End()

	log.Info("migrate", "driver", cfg.Store.Driver, "direction", direction)
	if err := fn(ctx, m); err != nil {
		span.RecordError(err)
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	return nil
}

func printVersion(ctx context.Context, m *migrator) error {
	v, err := m.version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "schema version: %d\n", v)
	return nil
}
