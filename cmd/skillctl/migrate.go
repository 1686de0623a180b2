package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"skill-match/internal/app"
	dbpostgres "skill-match/internal/database/postgres"

	"github.com/spf13/cobra"
)

var migrateStatus bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE:  runMigrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert the embedded catalog into the database",
	RunE:  runSeed,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "List migrations and whether they are applied")

	rootCmd.AddCommand(migrateCmd, seedCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	r := app.Migrator(lg)
	if !migrateStatus {
		return r.Run(ctx, db.SQLDB())
	}

	statuses, err := r.Status(ctx, db.SQLDB())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tNAME\tAPPLIED\tDRIFTED")
	for _, s := range statuses {
		fmt.Fprintf(w, "%d\t%s\t%t\t%t\n", s.Version, s.Name, s.Applied, s.Drifted)
	}
	return w.Flush()
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	return app.Seed(ctx, db, lg)
}
