package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/juparave/prreview/internal/config"
)

// PublishError wraps a failed comment post. The pipeline still emits the
// review text to its own output before exiting non-zero.
type PublishError struct {
	Err error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("posting PR comment: %v", e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// Client talks to the GitHub REST API for the two collaborator roles the
// pipeline has: materializing a PR diff and publishing the review comment
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	repo    string
	logger  *log.Logger
}

// NewClient creates a new GitHub API client
func NewClient(cfg config.GitHubConfig, logger *log.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		repo:    cfg.Repository,
		logger:  logger,
	}
}

// prFile is the slice of the pulls/files payload we consume
type prFile struct {
	Filename string `json:"filename"`
	Patch    string `json:"patch"`
}

// FetchPRDiff concatenates the per-file patches of a pull request into one
// unified diff, with a file separator line before each patch
func (c *Client) FetchPRDiff(ctx context.Context, prNumber string) (string, error) {
	var sb strings.Builder

	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/repos/%s/pulls/%s/files?per_page=100&page=%d", c.baseURL, c.repo, prNumber, page)

		var files []prFile
		if err := c.get(ctx, url, &files); err != nil {
			return "", fmt.Errorf("fetching PR files: %w", err)
		}
		if len(files) == 0 {
			break
		}

		for _, f := range files {
			// Binary and oversized files come back without a patch
			if f.Patch == "" {
				continue
			}
			fmt.Fprintf(&sb, "--- File: %s ---\n", f.Filename)
			sb.WriteString(f.Patch)
			sb.WriteString("\n\n")
		}

		if len(files) < 100 {
			break
		}
	}

	return sb.String(), nil
}

// PostComment publishes the review text as an issue comment on the PR
func (c *Client) PostComment(ctx context.Context, prNumber, body string) error {
	url := fmt.Sprintf("%s/repos/%s/issues/%s/comments", c.baseURL, c.repo, prNumber)

	payload, err := json.Marshal(map[string]string{"body": body})
	if err != nil {
		return &PublishError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &PublishError{Err: err}
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &PublishError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return &PublishError{Err: apiError(resp)}
	}

	c.logger.Printf("Posted review comment to %s#%s", c.repo, prNumber)
	return nil
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = resp.Status
	}
	return fmt.Errorf("GitHub API %d: %s", resp.StatusCode, msg)
}
