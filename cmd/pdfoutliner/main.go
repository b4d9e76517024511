package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docrill/pdfoutliner/internal/api"
	"github.com/docrill/pdfoutliner/internal/config"
	"github.com/docrill/pdfoutliner/internal/extractor"
	"github.com/docrill/pdfoutliner/internal/pipeline"
	"github.com/spf13/cobra"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var inputDir, outputDir string

	root := &cobra.Command{
		Use:           "pdfoutliner",
		Short:         "Extract hierarchical outlines (title, H1-H3) from PDF documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Process every PDF in the input directory, one JSON outline per file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(inputDir, outputDir)
			if err != nil {
				return err
			}

			ex := extractor.New(cfg.MaxPages, cfg.PreferNativeOutline, log)
			res, err := pipeline.RunBatch(cmd.Context(), ex, cfg.InputDir, cfg.OutputDir, cfg.WorkerCount, log)
			if err != nil {
				return err
			}
			if res.Failures() > 0 {
				return fmt.Errorf("%d of %d documents produced no outline", res.Failures(), res.Processed+res.Failures())
			}
			return nil
		},
	}
	runCmd.Flags().StringVarP(&inputDir, "input", "i", "", "input directory (overrides INPUT_DIR)")
	runCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides OUTPUT_DIR)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the outline extraction HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(inputDir, outputDir)
			if err != nil {
				return err
			}
			return serve(cfg, log)
		},
	}
	serveCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides OUTPUT_DIR)")

	root.AddCommand(runCmd, serveCmd)

	if err := root.Execute(); err != nil {
		log.Error("exiting", "error", err)
		os.Exit(1)
	}
}

func loadConfig(inputDir, outputDir string) (config.Config, error) {
	cfg := config.Load()
	if inputDir != "" {
		cfg.InputDir = inputDir
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func serve(cfg config.Config, log *slog.Logger) error {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ex := extractor.New(cfg.MaxPages, cfg.PreferNativeOutline, log)

	orch := pipeline.NewOrchestrator(cfg, ex, log)
	orch.Start(ctx)

	srv := api.NewServer(orch, ex, ex.Stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting pdfoutliner", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
