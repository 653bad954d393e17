// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"fmt"
	"log/slog"

	"codeberg.org/oliverandrich/ledger-api/internal/config"
	"codeberg.org/oliverandrich/ledger-api/internal/database"
	"codeberg.org/oliverandrich/ledger-api/internal/repository"
	"codeberg.org/oliverandrich/ledger-api/internal/seed"
	"codeberg.org/oliverandrich/ledger-api/internal/server"
	"codeberg.org/oliverandrich/ledger-api/internal/services/password"
	"github.com/urfave/cli/v3"
	"github.com/vinovest/sqlx"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: withDB(func(_ context.Context, cmd *cli.Command, db *sqlx.DB) error {
					if err := database.RunMigrations(db.DB); err != nil {
						return err
					}
					return printVersion(cmd, db)
				}),
			},
			{
				Name:  "down",
				Usage: "Roll back the most recent migration",
				Action: withDB(func(_ context.Context, cmd *cli.Command, db *sqlx.DB) error {
					if err := database.MigrateDown(db.DB); err != nil {
						return err
					}
					return printVersion(cmd, db)
				}),
			},
			{
				Name:  "reset",
				Usage: "Roll back all migrations",
				Action: withDB(func(_ context.Context, cmd *cli.Command, db *sqlx.DB) error {
					if err := database.MigrateReset(db.DB); err != nil {
						return err
					}
					return printVersion(cmd, db)
				}),
			},
			{
				Name:  "version",
				Usage: "Print the current schema version",
				Action: withDB(func(_ context.Context, cmd *cli.Command, db *sqlx.DB) error {
					return printVersion(cmd, db)
				}),
			},
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Create the sample company and admin user",
		Action: withDB(func(ctx context.Context, cmd *cli.Command, db *sqlx.DB) error {
			if err := database.RunMigrations(db.DB); err != nil {
				return err
			}

			cfg := config.NewFromCLI(cmd)
			res, err := seed.Run(ctx, repository.New(db), password.NewBcrypt(cfg.Auth.BcryptCost), cfg.Seed)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.Root().Writer, "company %d (created: %t), admin %s (created: %t)\n",
				res.Company.ID, res.CompanyCreated, res.Admin.Email, res.AdminCreated)
			return err
		}),
	}
}

// withDB opens the configured database without migrating it and closes it
// once the action returns.
func withDB(fn func(ctx context.Context, cmd *cli.Command, db *sqlx.DB) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg := config.NewFromCLI(cmd)
		server.SetupLogger(cfg.Log.Level, cfg.Log.Format)

		db, err := database.Connect(cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("failed to close database", "error", closeErr)
			}
		}()

		return fn(ctx, cmd, db)
	}
}

func printVersion(cmd *cli.Command, db *sqlx.DB) error {
	version, err := database.Version(db.DB)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.Root().Writer, "schema version %d\n", version)
	return err
}
