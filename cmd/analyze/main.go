package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/japapin/martcon9/internal/batch"
	"github.com/japapin/martcon9/internal/config"
	"github.com/japapin/martcon9/internal/service"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	cfg := config.Load()

	app := &cli.App{
		Name:  "analyze",
		Usage: "Build coverage-analysis reports from inventory exports",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Process XLSX exports into styled coverage reports, one report per file",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "input",
						Usage:    "Input XLSX file or glob pattern (repeatable)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output-dir",
						Usage:   "Directory for generated reports",
						Value:   cfg.App.OutputDir,
						EnvVars: []string{"APP_OUTPUT_DIR"},
					},
					&cli.IntFlag{
						Name:    "workers",
						Usage:   "Number of files processed concurrently",
						Value:   cfg.App.BatchWorkers,
						EnvVars: []string{"APP_BATCH_WORKERS"},
					},
				},
				Action: runAnalyze,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runAnalyze(c *cli.Context) error {
	inputs, err := expandInputs(c.StringSlice("input"))
	if err != nil {
		return err
	}

	runner := batch.NewRunner(service.NewReportService(), c.Int("workers"))
	return runner.Run(c.Context, inputs, c.String("output-dir"))
}

// expandInputs resolves glob patterns and verifies every input exists.
func expandInputs(patterns []string) ([]string, error) {
	var inputs []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid input pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr != nil {
				return nil, fmt.Errorf("input %s not found", pattern)
			}
			matches = []string{pattern}
		}
		inputs = append(inputs, matches...)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}
	return inputs, nil
}
