package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rigtool/internal/batch"
	"rigtool/internal/config"
	"rigtool/internal/pipeline"
)

// ManifestName is the file written into the output root after a bulk run.
const ManifestName = "manifest.json"

var errNoInput = errors.New("an input file is required (-i)")

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if jointsPath != "" {
		var err error
		if cfg, err = config.Load(jointsPath); err != nil {
			return cfg, err
		}
	}

	flags := config.Flags{AddIK: addIK, FixRig: fixRig, Workers: workers, Verbose: verbose}
	if cmd.Flags().Changed("scale") {
		if scale <= 0 {
			return cfg, fmt.Errorf("--scale must be positive, got %v", scale)
		}
		flags.Scale = scale
	}
	cfg.Resolve(flags)
	return cfg, nil
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if bulk {
		return runBulk(cmd.Context(), cfg)
	}

	if inputPath == "" {
		return errNoInput
	}
	out := outputPath
	if out == "" {
		out = inputPath
	}

	p, err := pipeline.New(cfg, logger, pipeline.Options{Preview: withPreview})
	if err != nil {
		return err
	}
	if err := p.ProcessFile(inputPath, out); err != nil {
		logger.Error("processing failed", zap.String("file", inputPath), zap.Error(err))
		return err
	}
	return nil
}

func runBulk(ctx context.Context, cfg config.Config) error {
	if outputPath == "" {
		return errors.New("an output path is required for bulk processing (-o)")
	}
	in := inputPath
	if in == "" {
		in = "."
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	runID := uuid.NewString()
	log := logger.With(zap.String("run", runID))

	p, err := pipeline.New(cfg, log, pipeline.Options{Preview: withPreview})
	if err != nil {
		return err
	}

	jobs, err := batch.Discover(in, outputPath)
	if err != nil {
		return err
	}
	log.Info("bulk run", zap.String("input", in), zap.String("output", outputPath),
		zap.Int("files", len(jobs)), zap.Int("workers", cfg.Workers))

	started := time.Now()
	results := batch.Run(ctx, log, jobs, cfg.Workers, p.ProcessFile)

	for _, r := range results {
		if !r.Success {
			log.Error("processing failed", zap.String("file", r.Input), zap.String("error", r.Error))
		}
	}
	failed := batch.Failed(results)
	log.Info("bulk run finished", zap.Int("files", len(results)), zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(started)))

	if err := os.MkdirAll(outputPath, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	manifest := batch.NewManifest(runID, started, results)
	if err := batch.WriteManifest(filepath.Join(outputPath, ManifestName), manifest); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}
