package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/juparave/prreview/internal/domain"
	"github.com/juparave/prreview/internal/util"
)

// Writer persists the generated review so the text survives even when
// publishing it as a PR comment fails
type Writer struct {
	outputDir string
}

// NewWriter creates a new Writer
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// Write saves the review as a markdown file and returns its path
func (w *Writer) Write(result *domain.ReviewResult) (string, error) {
	if err := util.EnsureDir(w.outputDir); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	path := filepath.Join(w.outputDir, "review.md")

	var sb strings.Builder
	fmt.Fprintf(&sb, "<!-- generated %s", result.Date.Format("2006-01-02 15:04"))
	if result.Model != "" {
		fmt.Fprintf(&sb, " by %s", result.Model)
	}
	if result.PRNumber != "" {
		fmt.Fprintf(&sb, " for PR #%s", result.PRNumber)
	}
	sb.WriteString(" -->\n\n")
	sb.WriteString(result.Text)
	sb.WriteString("\n")

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("writing review file: %w", err)
	}

	return path, nil
}
