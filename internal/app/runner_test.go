package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juparave/prreview/internal/config"
	"github.com/juparave/prreview/internal/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReviewer struct {
	calls  int
	prompt string
	text   string
	err    error
}

func (s *stubReviewer) Review(ctx context.Context, prompt string) (string, error) {
	s.calls++
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func (s *stubReviewer) Model() string { return "stub-model" }

type stubPublisher struct {
	calls int
	body  string
	err   error
}

func (s *stubPublisher) PostComment(ctx context.Context, prNumber, body string) error {
	s.calls++
	s.body = body
	return s.err
}

func testRunner(t *testing.T) (*Runner, *stubReviewer, *stubPublisher, *bytes.Buffer) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Review.APIKey = "test-key"
	cfg.Outputs.Dir = filepath.Join(t.TempDir(), "out")

	reviewer := &stubReviewer{text: "## Why It Matters\nLooks fine."}
	publisher := &stubPublisher{}
	stdout := &bytes.Buffer{}

	runner := NewRunner(cfg)
	runner.Reviewer = reviewer
	runner.Publisher = publisher
	runner.Stdout = stdout

	return runner, reviewer, publisher, stdout
}

func writeDiff(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pr.diff")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_MissingDiffFile(t *testing.T) {
	runner, reviewer, _, _ := testRunner(t)

	err := runner.Run(context.Background(), filepath.Join(t.TempDir(), "absent.diff"), "", false)

	assert.Error(t, err)
	assert.Zero(t, reviewer.calls, "no LLM call for a missing diff")
}

func TestRun_DiffTooSmall(t *testing.T) {
	runner, reviewer, _, stdout := testRunner(t)
	path := writeDiff(t, "   ")

	err := runner.Run(context.Background(), path, "", false)

	assert.NoError(t, err, "a tiny diff is a valid terminal state")
	assert.Zero(t, reviewer.calls)
	assert.Contains(t, stdout.String(), "too small to review")
}

func TestRun_NoFindingsFile(t *testing.T) {
	runner, reviewer, _, stdout := testRunner(t)
	path := writeDiff(t, strings.Repeat("+change\n", 25))

	err := runner.Run(context.Background(), path, filepath.Join(t.TempDir(), "absent.json"), false)

	require.NoError(t, err)
	assert.Equal(t, 1, reviewer.calls)
	assert.Contains(t, reviewer.prompt, `"total_findings": 0`)
	assert.Contains(t, reviewer.prompt, `"relevant_findings": "No findings."`)
	assert.Contains(t, stdout.String(), "Looks fine.")
}

func TestRun_FindingsInPrompt(t *testing.T) {
	runner, reviewer, _, _ := testRunner(t)
	diffPath := writeDiff(t, strings.Repeat("+change\n", 25))

	findingsPath := filepath.Join(t.TempDir(), "semgrep.json")
	require.NoError(t, os.WriteFile(findingsPath,
		[]byte(`{"version":"1.130.0","results":[{"check_id":"sqli"},{"check_id":"xss"}]}`), 0644))

	err := runner.Run(context.Background(), diffPath, findingsPath, false)

	require.NoError(t, err)
	assert.Contains(t, reviewer.prompt, `"total_findings": 2`)
	assert.Contains(t, reviewer.prompt, `"check_id": "sqli"`)
}

func TestRun_WritesArtifacts(t *testing.T) {
	runner, _, _, _ := testRunner(t)
	path := writeDiff(t, strings.Repeat("+change\n", 25))

	require.NoError(t, runner.Run(context.Background(), path, "", false))

	meta, err := os.ReadFile(runner.config.ArtifactPath())
	require.NoError(t, err)
	assert.Contains(t, string(meta), `"total_findings": 0`)

	reviewFile, err := os.ReadFile(filepath.Join(runner.config.Outputs.Dir, "review.md"))
	require.NoError(t, err)
	assert.Contains(t, string(reviewFile), "Looks fine.")
}

func TestRun_UpstreamFailure(t *testing.T) {
	runner, reviewer, publisher, _ := testRunner(t)
	reviewer.err = &review.UpstreamError{Err: errors.New("rate limited")}
	runner.config.GitHub.Token = "t"
	runner.config.GitHub.Repository = "owner/name"
	runner.config.PRNumber = "7"
	path := writeDiff(t, strings.Repeat("+change\n", 25))

	err := runner.Run(context.Background(), path, "", true)

	require.Error(t, err)
	var upstream *review.UpstreamError
	assert.ErrorAs(t, err, &upstream)
	assert.Zero(t, publisher.calls, "no comment posted when the review failed")
}

func TestRun_PublishFailureStillEmitsText(t *testing.T) {
	runner, _, publisher, stdout := testRunner(t)
	publisher.err = errors.New("403 Forbidden")
	runner.config.GitHub.Token = "t"
	runner.config.GitHub.Repository = "owner/name"
	runner.config.PRNumber = "7"
	path := writeDiff(t, strings.Repeat("+change\n", 25))

	err := runner.Run(context.Background(), path, "", true)

	assert.Error(t, err)
	assert.Equal(t, 1, publisher.calls)
	assert.Contains(t, stdout.String(), "Looks fine.", "review text must survive a publish failure")
}

func TestRun_PostsComment(t *testing.T) {
	runner, _, publisher, _ := testRunner(t)
	runner.config.GitHub.Token = "t"
	runner.config.GitHub.Repository = "owner/name"
	runner.config.PRNumber = "7"
	path := writeDiff(t, strings.Repeat("+change\n", 25))

	require.NoError(t, runner.Run(context.Background(), path, "", true))
	assert.Equal(t, 1, publisher.calls)
	assert.Contains(t, publisher.body, "Looks fine.")
}

func TestRun_MissingCredentialBeforeAnyWork(t *testing.T) {
	runner, reviewer, _, _ := testRunner(t)
	runner.config.Review.APIKey = ""
	path := writeDiff(t, strings.Repeat("+change\n", 25))

	err := runner.Run(context.Background(), path, "", false)

	require.Error(t, err)
	var missing *config.MissingKeysError
	assert.ErrorAs(t, err, &missing)
	assert.Zero(t, reviewer.calls)
}
