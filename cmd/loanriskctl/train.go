package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/config"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/dataset"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/ml"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/ml/forest"
)

const urbanizationTestSize = 0.2

func trainUrbanizationCmd() *cli.Command {
	return &cli.Command{
		Name:  "train-urbanization",
		Usage: "Trains the GDP per capita to urbanization rate regressor on the built-in data",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: "urbanization_growth_model.json", Usage: "Artifact path"},
			&cli.IntFlag{Name: "trees", Value: 100, Usage: "Number of trees"},
			&cli.IntFlag{Name: "seed", Value: 42, Usage: "Random seed for the split and the forest"},
			&cli.IntFlag{Name: "example-gdp", Value: 150000, Usage: "GDP per capita to predict after training"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := cmd.Root().Writer

			reg, report, err := ml.TrainUrbanization(ctx, forest.Params{
				Trees: cmd.Int("trees"),
				Seed:  uint64(cmd.Int("seed")),
			}, urbanizationTestSize)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "Model trained successfully using Random Forest")
			fmt.Fprintf(out, "MSE : %.4f\n", report.MSE)
			fmt.Fprintf(out, "R²  : %.4f\n", report.R2)

			gdp := cmd.Int("example-gdp")
			prediction, err := reg.Predict([]float64{float64(gdp)})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Prediction for GDP %d: %.6f\n", gdp, prediction)

			path := cmd.String("output")
			if err := ml.SaveRegressor(path, reg, report); err != nil {
				return fmt.Errorf("failed to save model: %w", err)
			}
			fmt.Fprintf(out, "Model saved as %s\n", path)
			return nil
		},
	}
}

func trainModelCmd() *cli.Command {
	return &cli.Command{
		Name:  "train-model",
		Usage: "Retrains the loan default classifier from the CSV dataset and overwrites the artifact",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dataset", Usage: "CSV file (defaults to DATASET_FILE)"},
			&cli.StringFlag{Name: "output", Usage: "Artifact path (defaults to MODEL_FILE)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if v := cmd.String("dataset"); v != "" {
				cfg.Dataset.File = v
			}
			if v := cmd.String("output"); v != "" {
				cfg.Model.ArtifactPath = v
			}
			logger := newLogger(cmd)

			ds, err := dataset.NewCSVLoader(cfg.Dataset.File).Load(ctx)
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			trainer := ml.NewForestTrainer(forest.Params{
				Trees: cfg.Model.Trees,
				Seed:  cfg.Model.Seed,
			}, cfg.Model.TestSize)
			clf, report, err := trainer.Train(ctx, ds)
			if err != nil {
				return fmt.Errorf("failed to train classifier: %w", err)
			}
			logger.Debug("classifier trained", slog.Int("rows", ds.Len()))

			if err := ml.NewFileModelStore(cfg.Model.ArtifactPath).Save(ctx, clf, report); err != nil {
				return fmt.Errorf("failed to save model: %w", err)
			}

			out := cmd.Root().Writer
			fmt.Fprintf(out, "Accuracy : %.4f (train %d, test %d)\n", report.Accuracy, report.TrainRows, report.TestRows)
			fmt.Fprintf(out, "Model saved as %s\n", cfg.Model.ArtifactPath)
			return nil
		},
	}
}
