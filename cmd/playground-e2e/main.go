package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"playground-e2e/internal/application/service"
	"playground-e2e/internal/config"
	"playground-e2e/internal/di"
	"playground-e2e/internal/infrastructure/env"
	"playground-e2e/internal/infrastructure/fixture"
	"playground-e2e/internal/usecase/scenario"
	"playground-e2e/internal/usecase/suite"

	"github.com/spf13/cobra"
)

var errSuiteFailed = errors.New("suite failed")

var (
	configFile string
	envDir     string

	baseURL  string
	headless bool
	retries  int
	fixtures bool

	serveAddr string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "playground-e2e",
		Short: "End-to-end checks for the Selenium Playground demo pages",
		Long: `playground-e2e drives Chrome through the Simple Form, Drag & Drop Sliders
and Input Form Submit demos and reports which scenarios pass.

Example:
  playground-e2e run --headless
  playground-e2e run sliders --fixtures`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ./playground.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&envDir, "env-dir", ".", "Directory holding .env files")

	runCmd := &cobra.Command{
		Use:   "run [scenario...]",
		Short: "Run scenarios (all when none are named)",
		RunE:  run,
	}
	runCmd.Flags().StringVar(&baseURL, "base-url", "", "Override the site origin")
	runCmd.Flags().BoolVar(&headless, "headless", false, "Run Chrome headless")
	runCmd.Flags().IntVar(&retries, "retries", 0, "Extra attempts for a failed scenario")
	runCmd.Flags().BoolVar(&fixtures, "fixtures", false, "Serve local replica pages and run against them")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local replica pages",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8080", "Listen address")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List available scenarios",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range service.NewScenarioRegistry(scenario.All()...).All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", s.Name, s.Description)
			}
		},
	}

	rootCmd.AddCommand(runCmd, serveCmd, scenariosCmd)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSuiteFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(env.NewEnvService(envDir), configFile)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg = cfg.WithBaseURL(baseURL)
	}
	if flags.Changed("headless") {
		cfg.Headless = headless
	}
	if flags.Changed("retries") {
		cfg.Retries = retries
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if fixtures {
		srv, err := fixture.Start(fixture.Config{Addr: "127.0.0.1:0", Quiet: true})
		if err != nil {
			return err
		}
		defer shutdown(srv)
		cfg = cfg.WithBaseURL(srv.URL)
	}

	container, err := di.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer container.Close()

	container.Logger.Info("run started", "scenarios", args, "base_url", cfg.BaseURL)
	report, err := container.Runner.Run(ctx, args...)
	if report != nil {
		if werr := suite.WriteList(cmd.OutOrStdout(), report); werr != nil {
			container.Logger.Error("write report", "error", werr)
		}
	}
	if err != nil {
		container.Logger.Error("run aborted", "error", err)
		return err
	}
	if !report.OK() {
		return errSuiteFailed
	}
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := fixture.Start(fixture.Config{Addr: serveAddr})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "serving %s%s\n", srv.URL, fixture.PlaygroundPath)

	<-ctx.Done()
	shutdown(srv)
	return nil
}

func shutdown(srv *fixture.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Close(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "fixture:", err)
	}
}
