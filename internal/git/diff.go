package git

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Client runs git against a local checkout. Used by the fetch command when
// no GitHub credentials are available, e.g. local dry runs.
type Client struct {
	logger *log.Logger
}

// NewClient creates a new Git client
func NewClient(logger *log.Logger) *Client {
	return &Client{logger: logger}
}

// Diff returns the combined diff between the merge base of baseRef and
// headRef, the same shape a CI checkout would produce for a PR
func (c *Client) Diff(ctx context.Context, repoPath, baseRef, headRef string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "diff",
		"--no-color",
		baseRef+"..."+headRef,
	)
	cmd.Dir = repoPath

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git diff failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git diff failed: %w", err)
	}

	return string(output), nil
}

// IsValidRepo checks if a path is a valid Git repository
func IsValidRepo(path string) bool {
	gitDir := filepath.Join(path, ".git")
	info, err := os.Stat(gitDir)
	if err != nil {
		return false
	}
	return info.IsDir()
}
