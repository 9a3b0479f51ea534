package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/tlemoine/classeur/internal/config"
	"github.com/tlemoine/classeur/internal/counterparty"
	"github.com/tlemoine/classeur/internal/infrastructure"
	"github.com/tlemoine/classeur/internal/refine"
	"github.com/tlemoine/classeur/internal/rules"
)

func main() {
	inputPath := flag.String("input", "", "input JSONL file (default stdin)")
	outputPath := flag.String("output", "", "output JSONL file (default stdout)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed: ", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		log.Fatal("infrastructure init failed: ", err)
	}

	if err := run(cfg, infra, *inputPath, *outputPath); err != nil {
		infra.Logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, infra *infrastructure.Infrastructure, inputPath, outputPath string) error {
	logger := infra.Logger
	logger.Info(
		"classeur starting",
		"version", cfg.Version,
		"env", cfg.Env(),
		"workers", cfg.Refine.Workers,
		"database", infra.Database != nil,
	)

	infra.Start()
	defer func() {
		if err := infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	opts := []refine.Option{
		refine.WithJokerFallback(cfg.Refine.JokerFallback),
	}
	if infra.Database != nil {
		opts = append(opts,
			refine.WithDirectory(counterparty.NewRepository(infra.Database.Connection(), logger)),
			refine.WithRules(rules.NewRepository(infra.Database.Connection(), logger)),
		)
	}
	pipeline := refine.NewPipeline(logger, opts...)

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	inputs, err := refine.ReadInputs(in)
	if err != nil {
		return err
	}

	ctx := infra.Lifecycle.Context()
	items, err := pipeline.ProcessBatch(ctx, inputs, cfg.Refine.Workers)
	if err != nil {
		return err
	}

	out, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := refine.WriteItems(out, items); err != nil {
		return err
	}

	degraded := 0
	for _, item := range items {
		if item.Degraded {
			degraded++
		}
	}
	logger.Info("classeur finished", "documents", len(items), "degraded", degraded)

	return nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
