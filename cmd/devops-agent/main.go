package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	githubadapter "github.com/ericfisherdev/devops-agent/internal/adapter/driven/github"
	"github.com/ericfisherdev/devops-agent/internal/adapter/driven/preview"
	"github.com/ericfisherdev/devops-agent/internal/adapter/driving/event"
	"github.com/ericfisherdev/devops-agent/internal/application"
	"github.com/ericfisherdev/devops-agent/internal/config"
)

type options struct {
	dryRun      bool
	previewHTML string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "devops-agent",
		Short: "Read-only CI observer that keeps one status comment per pull request",
		Long: `devops-agent inspects the GitHub Actions run it is executing in, classifies
failed jobs by their first failed step, and creates or updates a single sticky
comment on the pull request. It never changes build state.

Behaviour is configured by .devops-agent.yml in the workspace root.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "compose the comment and print it without reading or writing PR comments")
	cmd.Flags().StringVar(&opts.previewHTML, "preview-html", "", "write the composed comment rendered as HTML to this path")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	// 1. Load configuration (fail fast on missing required env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	slog.Info("config loaded",
		"workspace", cfg.Workspace,
		"repository", cfg.RepoFullName,
		"run_id", cfg.RunID,
		"api_url", cfg.APIURL,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Resolve repository policy.
	agentCfg := config.Resolve(cfg.Workspace)
	slog.Debug("agent config resolved",
		"version", agentCfg.Version,
		"enabled", agentCfg.PRComment.Enabled,
		"mode", agentCfg.PRComment.Mode,
		"post_on", agentCfg.PRComment.PostOn,
	)

	// 4. Read the triggering event.
	ev, err := event.Load(cfg.EventPath)
	if err != nil {
		return err
	}

	// 5. Wire adapters.
	ghClient, err := githubadapter.NewClient(cfg.Token, cfg.APIURL)
	if err != nil {
		return err
	}
	svc := application.NewObserveService(ghClient, ghClient, slog.Default())

	// 6. Observe and reconcile.
	result, err := svc.Run(ctx, application.ObserveRequest{
		RepoFullName: cfg.RepoFullName,
		RunID:        cfg.RunID,
		Event:        ev,
		Config:       agentCfg,
		DryRun:       opts.dryRun,
	})
	if err != nil {
		return err
	}

	if result.Outcome == application.OutcomeDryRun {
		fmt.Fprintln(os.Stdout, result.Body)
	}
	if opts.previewHTML != "" && result.Body != "" {
		if err := preview.WriteFile(opts.previewHTML, "devops-agent preview", result.Body); err != nil {
			return err
		}
		slog.Info("preview written", "path", opts.previewHTML)
	}

	slog.Info("devops-agent finished",
		"outcome", result.Outcome,
		"failed_jobs", len(result.Findings),
		"comment_id", result.CommentID,
	)
	return nil
}
