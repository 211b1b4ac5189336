package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/config"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/dataset"
	infrapostgres "github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/postgres"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/postgres"
)

func migrateCmd() *cli.Command {
	step := func(name, usage string, fn func(source, dsn string) (postgres.MigrationResult, error)) *cli.Command {
		return &cli.Command{
			Name:  name,
			Usage: usage,
			Action: func(_ context.Context, cmd *cli.Command) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				res, err := fn(cfg.DB.MigrationsPath, cfg.Postgres().DSN())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.Root().Writer, "schema version %d (changed: %t, dirty: %t)\n", res.Version, res.Changed, res.Dirty)
				return nil
			},
		}
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "Applies or rolls back the loan history schema",
		Commands: []*cli.Command{
			step("up", "Applies every pending migration", postgres.Migrate),
			step("down", "Rolls back every applied migration", postgres.MigrateDown),
		},
	}
}

func importDatasetCmd() *cli.Command {
	return &cli.Command{
		Name:  "import-dataset",
		Usage: "Loads a loan history CSV into PostgreSQL, replacing the table contents",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Usage: "CSV file (defaults to DATASET_FILE)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			file := cfg.Dataset.File
			if v := cmd.String("file"); v != "" {
				file = v
			}

			ds, err := dataset.NewCSVLoader(file).Load(ctx)
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			pgCfg := cfg.Postgres()
			if _, err := postgres.Migrate(cfg.DB.MigrationsPath, pgCfg.DSN()); err != nil {
				return err
			}

			pool, err := postgres.NewPool(ctx, pgCfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			n, err := dataset.NewPostgresLoader(pool, cfg.Dataset.Table).Import(ctx, ds)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.Root().Writer, "imported %d rows into %s\n", n, cfg.Dataset.Table)
			return nil
		},
	}
}

func predictionsCmd() *cli.Command {
	return &cli.Command{
		Name:  "predictions",
		Usage: "Lists the most recent entries of the prediction log",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum rows"},
			&cli.StringFlag{Name: "risk-level", Usage: "Only show LOW, MEDIUM or HIGH"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			pool, err := postgres.NewPool(ctx, cfg.Postgres())
			if err != nil {
				return err
			}
			defer pool.Close()

			rows, err := infrapostgres.NewPredictionLog(pool).Recent(ctx, cmd.String("risk-level"), cmd.Int("limit"))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.Root().Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SCORED AT\tID\tPROBABILITY\tRISK\tDEFAULT")
			for _, p := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
					p.ScoredAt.Format(time.RFC3339), p.ID, p.DefaultProbability.StringFixed(4), p.RiskLevel, p.DefaultPrediction)
			}
			return w.Flush()
		},
	}
}
