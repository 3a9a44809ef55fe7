package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aaronbrethorst/gh-review-queue/internal/config"
	"github.com/aaronbrethorst/gh-review-queue/internal/github"
	"github.com/aaronbrethorst/gh-review-queue/internal/service"
	"github.com/aaronbrethorst/gh-review-queue/internal/ui"
)

type queueFlags struct {
	configPath  string
	output      string
	ignore      string
	noOpen      bool
	interactive bool
}

func runQueue(ctx context.Context, org string, flags queueFlags) error {
	cfg, err := config.Resolve(config.Flags{
		Org:        org,
		ConfigPath: flags.configPath,
		Output:     flags.output,
		Ignore:     flags.ignore,
	})
	if err != nil {
		return err
	}

	client, err := github.NewClient()
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	reporter := ui.NewStatusReporter(os.Stderr)
	queueService := service.NewQueueService(client, reporter)

	queue, err := queueService.BuildQueue(ctx, cfg.Org, cfg.Ignore)
	if err != nil {
		return errors.New(github.Diagnose(err))
	}

	switch cfg.Output {
	case config.OutputHTML:
		reporter.Start("Generating HTML report…")
		path, err := ui.WriteReport(queue.Org, queue.Items)
		if err != nil {
			return err
		}
		reporter.Done(fmt.Sprintf("Report written to %s", path))
		fmt.Println(path)
		if cfg.ShouldOpen(flags.noOpen) {
			if err := ui.OpenInBrowser("file://" + path); err != nil {
				return err
			}
		}
	case config.OutputCSV:
		if err := ui.WriteQueueCSV(os.Stdout, queue.Items); err != nil {
			return err
		}
	default:
		ui.RenderTable(os.Stdout, queue.Items)
	}

	if flags.interactive {
		prompter := &ui.DefaultPrompter{}
		picked, err := prompter.PickPR(queue.Items)
		if err != nil {
			return err
		}
		return ui.OpenInBrowser(picked.URL)
	}

	return nil
}

func runStats(ctx context.Context, repoArg, outputPath string) error {
	parts := strings.Split(repoArg, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("repo must be in owner/repo format (e.g. onebusaway/maglev)")
	}
	owner, repo := parts[0], parts[1]

	client, err := github.NewClient()
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	reporter := ui.NewStatusReporter(os.Stderr)
	queueService := service.NewQueueService(client, reporter)

	stats, err := queueService.RepoStats(ctx, owner, repo)
	if err != nil {
		return errors.New(github.Diagnose(err))
	}

	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", outputPath, err)
		}
		defer f.Close()
		if err := ui.WriteStatsCSV(f, stats); err != nil {
			return err
		}
		reporter.Done(fmt.Sprintf("Wrote %s", outputPath))
		return nil
	}

	return ui.WriteStatsCSV(os.Stdout, stats)
}

func newStatsCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "stats <owner>/<repo>",
		Short: "Export every pull request (open and closed) for a repository as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.Context(), args[0], outputPath)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write CSV to FILE instead of stdout")

	return cmd
}

func newRootCmd() *cobra.Command {
	var flags queueFlags

	cmd := &cobra.Command{
		Use:   "gh-review-queue [org]",
		Short: "Rank an organization's open pull requests into a review queue",
		Long: "Fetches every open pull request across a GitHub organization, flags the\n" +
			"ones that need your review, and presents them as a stably ordered queue.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			org := ""
			if len(args) > 0 {
				org = args[0]
			}
			return runQueue(cmd.Context(), org, flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "Path to JSON config file")
	cmd.Flags().StringVar(&flags.output, "output", "", "Output format: table, html, or csv (default: table)")
	cmd.Flags().StringVar(&flags.ignore, "ignore", "", "Comma-separated list of repo names to ignore")
	cmd.Flags().BoolVar(&flags.noOpen, "no-open", false, "Don't open HTML report in default browser")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "Pick a PR from the queue and open it in the browser")

	cmd.AddCommand(newStatsCmd())

	return cmd
}

func main() {
	// Matches the token resolution of the original tooling; a missing .env
	// is fine.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
