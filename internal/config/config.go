package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/juparave/prreview/internal/util"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Review  ReviewConfig  `yaml:"review"`
	GitHub  GitHubConfig  `yaml:"github"`
	Outputs OutputsConfig `yaml:"outputs"`
	Verbose bool          `yaml:"-"` // Set via CLI only

	// PRNumber labels the run; optional, taken from the PR_NUMBER env var
	PRNumber string `yaml:"-"`
	// SemgrepConfig is echoed into logs only; defaults to "auto"
	SemgrepConfig string `yaml:"-"`
}

// ReviewConfig holds LLM review settings
type ReviewConfig struct {
	Provider string `yaml:"provider"` // googleai, openai
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"` // Custom API endpoint (OpenAI-compatible providers)
}

// GitHubConfig holds settings for fetching diffs and posting comments
type GitHubConfig struct {
	Token      string `yaml:"token"`
	Repository string `yaml:"repository"` // owner/name
	BaseURL    string `yaml:"base_url"`   // GitHub API root, for GHE
}

// OutputsConfig holds artifact storage settings
type OutputsConfig struct {
	Dir string `yaml:"dir"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Review: ReviewConfig{
			Provider: "googleai",
			Model:    "gemini-2.5-flash",
		},
		GitHub: GitHubConfig{
			BaseURL: "https://api.github.com",
		},
		Outputs: OutputsConfig{
			Dir: "analysis_output",
		},
		SemgrepConfig: "auto",
	}
}

// Load reads configuration from file, merges with defaults, and applies
// the environment
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Determine config file path
	explicit := path != ""
	if path == "" {
		path = ".prreview.yaml"
	}
	path = util.ExpandPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			cfg.applyEnv()
			return cfg, nil // Use defaults if file doesn't exist
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Outputs.Dir = util.ExpandPath(cfg.Outputs.Dir)
	cfg.applyEnv()

	return cfg, nil
}

// applyEnv fills blanks from the environment. File values win so CI can
// still pin a provider while the secrets come from the job env.
func (c *Config) applyEnv() {
	if c.Review.APIKey == "" {
		switch c.Review.Provider {
		case "openai":
			c.Review.APIKey = os.Getenv("OPENAI_API_KEY")
		default:
			if key := os.Getenv("GEMINI_API_KEY"); key != "" {
				c.Review.APIKey = key
			} else {
				c.Review.APIKey = os.Getenv("GOOGLE_API_KEY")
			}
		}
	}
	if c.GitHub.Token == "" {
		c.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}
	if c.GitHub.Repository == "" {
		c.GitHub.Repository = os.Getenv("GITHUB_REPOSITORY")
	}
	if c.PRNumber == "" {
		c.PRNumber = os.Getenv("PR_NUMBER")
	}
	if v := os.Getenv("SEMGREP_CONFIG"); v != "" {
		c.SemgrepConfig = v
	}
}

// MissingKeysError lists every configuration key a run is missing, so a
// broken CI setup surfaces in one pass instead of one key at a time
type MissingKeysError struct {
	Keys []string
}

func (e *MissingKeysError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Keys, ", "))
}

// Validate checks the configuration needed for the review pipeline.
// posting indicates whether a comment will be published afterwards.
func (c *Config) Validate(posting bool) error {
	var missing []string

	if c.Review.APIKey == "" {
		switch c.Review.Provider {
		case "openai":
			missing = append(missing, "review.api_key (or OPENAI_API_KEY)")
		default:
			missing = append(missing, "review.api_key (or GEMINI_API_KEY)")
		}
	}

	if posting {
		if c.GitHub.Token == "" {
			missing = append(missing, "github.token (or GITHUB_TOKEN)")
		}
		if c.GitHub.Repository == "" {
			missing = append(missing, "github.repository (or GITHUB_REPOSITORY)")
		}
		if c.PRNumber == "" {
			missing = append(missing, "PR_NUMBER")
		}
	}

	if len(missing) > 0 {
		return &MissingKeysError{Keys: missing}
	}

	if c.GitHub.Repository != "" && !strings.Contains(c.GitHub.Repository, "/") {
		return fmt.Errorf("github.repository must be owner/name, got %q", c.GitHub.Repository)
	}

	return nil
}

// ValidateFetch checks the configuration needed by the fetch command
func (c *Config) ValidateFetch() error {
	var missing []string
	if c.GitHub.Token == "" {
		missing = append(missing, "github.token (or GITHUB_TOKEN)")
	}
	if c.GitHub.Repository == "" {
		missing = append(missing, "github.repository (or GITHUB_REPOSITORY)")
	}
	if c.PRNumber == "" {
		missing = append(missing, "PR_NUMBER")
	}
	if len(missing) > 0 {
		return &MissingKeysError{Keys: missing}
	}
	return nil
}

// ArtifactPath returns where the metadata artifact is written
func (c *Config) ArtifactPath() string {
	return filepath.Join(c.Outputs.Dir, "semgrep_metadata.json")
}
