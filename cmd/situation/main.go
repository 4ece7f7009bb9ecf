// Command situation is a terminal UI for browsing and changing the change sets
// of a workspace on a remote change-management service.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"situation/internal/api"
	"situation/internal/config"
	"situation/internal/controller"
	"situation/internal/session"
	"situation/internal/trace"
	"situation/internal/ui"
)

var (
	// BuildTag is set during build
	BuildTag = "dev"
	// BuildDate is set during build
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "situation",
	Short: "Browse and manage change sets from the terminal",
	Long: `situation - browse and manage change sets from the terminal

Shows the change sets of your workspace, their merge status, schemas and
components, and lets you create, abandon and force-apply change sets.

Environment Variables:
  SI_API                  Base URL of the service API
  JWT_TOKEN               Bearer token for the service API
  SITUATION_CONFIG        Config file (default: ~/.config/situation/config.toml)
  OTEL_EXPORTER_OTLP_ENDPOINT  Export request traces over OTLP/HTTP
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if config.IsConfigError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.Flags()
	f.String("api-url", "", "service API base URL (env SI_API)")
	f.String("token", "", "bearer token (env JWT_TOKEN)")
	f.Duration("timeout", 30*time.Second, "per-request timeout")
	f.String("log-file", "", "write process logs to this file")
	f.String("log-level", "info", "process log level (debug, info, warn, error)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("situation version %s (built %s)\n", BuildTag, BuildDate)
		},
	})
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	logger, closeLog, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tp, err := trace.NewProvider(ctx, cfg.Trace)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("trace shutdown failed", "err", err)
		}
	}()

	client := api.New(cfg.API,
		api.WithTracer(tp.Tracer()),
		api.WithLogger(logger.WithPrefix("api")),
	)
	logger.Info("starting session", "api", client.BaseURL(), "tracing", tp.Enabled())

	state := session.New(cfg.UI.LogHeight, cfg.UI.LogMaxLines)
	ctrl := controller.New(state, client,
		controller.WithLogger(logger.WithPrefix("controller")),
		controller.WithContext(ctx),
	)

	p := tea.NewProgram(ui.NewApp(ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal: %w", err)
	}
	logger.Info("session ended")
	return nil
}
