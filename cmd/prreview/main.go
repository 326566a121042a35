package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/juparave/prreview/internal/app"
	"github.com/juparave/prreview/internal/config"
	"github.com/spf13/cobra"
)

var (
	version   = "0.1.0"
	cfgFile   string
	outputDir string
	post      bool
	verbose   bool

	fetchOut string
	repoPath string
	baseRef  string
	headRef  string
)

func main() {
	// Local runs keep secrets in .env; CI injects real env vars
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "prreview <diff_file> [<semgrep_json>]",
		Short:   "Automated pull-request reviewer",
		Long:    `prreview reads a PR diff and static-analysis output, asks an LLM for a concise structured review, and optionally posts it as a PR comment.`,
		Version: version,
		Args:    cobra.RangeArgs(1, 2),
		RunE:    runReview,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (default: .prreview.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for metadata and review artifacts (default: analysis_output)")
	rootCmd.Flags().BoolVar(&post, "post", false, "Post the review as a PR comment")

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Materialize the PR diff to a file",
		Long:  `Fetches the pull-request diff (GitHub API, or a local git range with --base/--head) and writes it where the review step expects it.`,
		Args:  cobra.NoArgs,
		RunE:  runFetch,
	}
	fetchCmd.Flags().StringVarP(&fetchOut, "out", "O", "pr.diff", "Output path for the diff file")
	fetchCmd.Flags().StringVarP(&repoPath, "repo-path", "C", ".", "Local repository path (used with --base/--head)")
	fetchCmd.Flags().StringVar(&baseRef, "base", "", "Base ref for a local diff")
	fetchCmd.Flags().StringVar(&headRef, "head", "", "Head ref for a local diff")

	rootCmd.AddCommand(fetchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if outputDir != "" {
		cfg.Outputs.Dir = outputDir
	}
	cfg.Verbose = verbose
	return cfg, nil
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	findingsPath := ""
	if len(args) > 1 {
		findingsPath = args[1]
	}

	runner := app.NewRunner(cfg)
	return runner.Run(cmd.Context(), args[0], findingsPath, post)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	runner := app.NewRunner(cfg)
	return runner.Fetch(cmd.Context(), fetchOut, repoPath, baseRef, headRef)
}
