package review

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	oai "github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/juparave/prreview/internal/config"
	"github.com/openai/openai-go/option"
)

// ErrNoCredential means the provider API key is absent. Callers must fail
// the run before any network call is attempted.
var ErrNoCredential = errors.New("missing LLM provider credential")

// ErrEmptyResponse means the endpoint answered but returned no usable text
var ErrEmptyResponse = errors.New("empty response from completion endpoint")

// UpstreamError wraps an API-level failure from the completion endpoint
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion endpoint: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Client sends review prompts to an LLM completion endpoint
type Client struct {
	config  config.ReviewConfig
	logger  *log.Logger
	genkit  *genkit.Genkit
	modelID string
}

// NewClient creates a new Client for the configured provider
func NewClient(cfg config.ReviewConfig, logger *log.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoCredential
	}

	ctx := context.Background()

	var g *genkit.Genkit
	var modelID string

	switch cfg.Provider {
	case "openai":
		// OpenAI-compatible API
		var opts []option.RequestOption
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}

		plugin := &oai.OpenAI{
			APIKey: cfg.APIKey,
			Opts:   opts,
		}

		modelID = cfg.Model
		if modelID == "" {
			modelID = "gpt-4o-mini"
		}
		// Prefix with openai/ for Genkit
		if !strings.Contains(modelID, "/") {
			modelID = "openai/" + modelID
		}

		g = genkit.Init(ctx,
			genkit.WithDefaultModel(modelID),
			genkit.WithPlugins(plugin),
		)

	case "googleai":
		fallthrough
	default:
		// Google AI (Gemini)
		modelID = cfg.Model
		if modelID == "" {
			modelID = "gemini-2.5-flash"
		}
		// Prefix with googleai/ for Genkit
		if !strings.Contains(modelID, "/") {
			modelID = "googleai/" + modelID
		}

		g = genkit.Init(ctx,
			genkit.WithDefaultModel(modelID),
			genkit.WithPlugins(&googlegenai.GoogleAI{
				APIKey: cfg.APIKey,
			}),
		)
	}

	return &Client{
		config:  cfg,
		logger:  logger,
		genkit:  g,
		modelID: modelID,
	}, nil
}

// Model returns the resolved model identifier
func (c *Client) Model() string {
	return c.modelID
}

// Review sends the prompt and returns the trimmed plain-text response.
// One blocking request per run; no retries, no streaming.
func (c *Client) Review(ctx context.Context, prompt string) (string, error) {
	answer, err := genkit.GenerateText(ctx, c.genkit,
		ai.WithModelName(c.modelID),
		ai.WithPrompt(prompt),
	)
	if err != nil {
		return "", &UpstreamError{Err: err}
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", ErrEmptyResponse
	}

	return answer, nil
}
