// Package migrate implements the schema migration command.
package migrate

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // migration driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // migration source
	"github.com/spf13/cobra"

	"github.com/jonesrussell/goharvest/internal/config"
)

// migrationsPath is the relative path to the migrations directory.
const migrationsPath = "file://migrations"

// Command returns the migrate command.
func Command(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back database migrations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(*cfgFile, args[0])
		},
	}
	return cmd
}

// run executes the migration in the given direction.
func run(cfgFile, direction string) error {
	if direction != "up" && direction != "down" {
		return fmt.Errorf("invalid direction: %q (must be \"up\" or \"down\")", direction)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	m, err := migrate.New(migrationsPath, cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}

	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("No migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", direction, err)
	}

	fmt.Printf("Migration %s completed successfully\n", direction)
	return nil
}
