package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/juparave/prreview/internal/analysis"
	"github.com/juparave/prreview/internal/config"
	"github.com/juparave/prreview/internal/domain"
	"github.com/juparave/prreview/internal/git"
	"github.com/juparave/prreview/internal/github"
	"github.com/juparave/prreview/internal/input"
	"github.com/juparave/prreview/internal/prompt"
	"github.com/juparave/prreview/internal/report"
	"github.com/juparave/prreview/internal/review"
)

// Reviewer generates review text from a prompt
type Reviewer interface {
	Review(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Publisher posts the review text to the PR discussion
type Publisher interface {
	PostComment(ctx context.Context, prNumber, body string) error
}

// Runner orchestrates the review pipeline: read inputs, summarize findings,
// build the prompt, call the model, emit and optionally publish the result.
// Data flows strictly forward; each run is one pass.
type Runner struct {
	config *config.Config
	logger *log.Logger
	reader *input.Reader
	report *report.Writer

	// Reviewer and Publisher are constructed on demand in Run; tests
	// inject stubs here
	Reviewer  Reviewer
	Publisher Publisher

	// Stdout is where the review text is emitted; defaults to os.Stdout
	Stdout io.Writer
}

// NewRunner creates a new Runner instance
func NewRunner(cfg *config.Config) *Runner {
	logger := log.New(os.Stderr, "[prreview] ", log.LstdFlags)

	return &Runner{
		config: cfg,
		logger: logger,
		reader: input.NewReader(logger),
		report: report.NewWriter(cfg.Outputs.Dir),
		Stdout: os.Stdout,
	}
}

// Run executes the review pipeline. post controls whether the result is
// published as a PR comment afterwards.
func (r *Runner) Run(ctx context.Context, diffPath, findingsPath string, post bool) error {
	startTime := time.Now()

	// Fail fast on configuration, before any file or network work
	if err := r.config.Validate(post); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if r.config.PRNumber != "" {
		r.log("Reviewing PR #%s (semgrep config: %s)", r.config.PRNumber, r.config.SemgrepConfig)
	}

	// Step 1: Read diff
	diff, err := r.reader.ReadDiff(diffPath)
	if err != nil {
		return err
	}

	if diff.TooSmall() {
		// Valid terminal state: nothing worth sending to the model
		fmt.Fprintln(r.Stdout, "Diff missing or too small to review.")
		return nil
	}

	// Step 2: Read findings and reduce them to metadata
	findings := r.reader.ReadFindings(findingsPath)
	meta := analysis.Summarize(findings, diff.Truncated)
	r.log("Findings summarized: %d total", meta.TotalFindings)

	artifactPath := r.config.ArtifactPath()
	if err := analysis.WriteArtifact(meta, artifactPath); err != nil {
		r.logger.Printf("Warning: could not persist metadata artifact: %v", err)
	} else {
		r.log("Saved analysis metadata to %s", artifactPath)
	}

	// Step 3: Build the prompt
	reviewPrompt := prompt.Build(diff, meta, prompt.DefaultContract())
	r.log("Prompt built: %d characters", len(reviewPrompt))

	// Step 4: Call the model
	reviewer := r.Reviewer
	if reviewer == nil {
		client, err := review.NewClient(r.config.Review, r.logger)
		if err != nil {
			return fmt.Errorf("initializing reviewer: %w", err)
		}
		reviewer = client
	}

	r.log("Requesting review from %s...", reviewer.Model())
	text, err := reviewer.Review(ctx, reviewPrompt)
	if err != nil {
		return fmt.Errorf("generating review: %w", err)
	}

	result := &domain.ReviewResult{
		Outcome:  domain.OutcomeReviewed,
		Text:     text,
		Model:    reviewer.Model(),
		PRNumber: r.config.PRNumber,
		Date:     time.Now(),
	}

	// Step 5: Emit the review before any publish attempt so the text is
	// never lost to a failed comment post
	fmt.Fprintln(r.Stdout, result.Text)

	if path, err := r.report.Write(result); err != nil {
		r.logger.Printf("Warning: could not save review file: %v", err)
	} else {
		r.log("Review saved to %s", path)
	}

	// Step 6: Publish as a PR comment
	if post {
		publisher := r.Publisher
		if publisher == nil {
			publisher = github.NewClient(r.config.GitHub, r.logger)
		}
		if err := publisher.PostComment(ctx, r.config.PRNumber, result.Text); err != nil {
			return err
		}
	}

	r.log("Review complete in %s", time.Since(startTime).Round(time.Millisecond))
	return nil
}

// Fetch materializes the PR diff to outPath, the upstream step the review
// pipeline expects a CI job to have done. Uses a local git diff when
// baseRef/headRef are given, the GitHub API otherwise.
func (r *Runner) Fetch(ctx context.Context, outPath, repoPath, baseRef, headRef string) error {
	var diffText string

	if baseRef != "" && headRef != "" {
		if !git.IsValidRepo(repoPath) {
			return fmt.Errorf("not a git repository: %s", repoPath)
		}
		text, err := git.NewClient(r.logger).Diff(ctx, repoPath, baseRef, headRef)
		if err != nil {
			return err
		}
		diffText = text
	} else {
		if err := r.config.ValidateFetch(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		client := github.NewClient(r.config.GitHub, r.logger)
		text, err := client.FetchPRDiff(ctx, r.config.PRNumber)
		if err != nil {
			return err
		}
		diffText = text
	}

	if err := os.WriteFile(outPath, []byte(diffText), 0644); err != nil {
		return fmt.Errorf("writing diff file: %w", err)
	}

	r.log("Wrote %d bytes of diff to %s", len(diffText), outPath)
	return nil
}

func (r *Runner) log(format string, args ...interface{}) {
	if r.config.Verbose {
		r.logger.Printf(format, args...)
	}
}
