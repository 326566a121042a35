package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/juparave/prreview/internal/domain"
	"github.com/juparave/prreview/internal/util"
)

// WriteArtifact persists the metadata record as a JSON file for downstream
// tooling. Callers treat a failure here as a warning, not a run failure.
func WriteArtifact(meta domain.AnalysisMetadata, path string) error {
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("creating artifact dir: %w", err)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing metadata artifact: %w", err)
	}

	return nil
}
