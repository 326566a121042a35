package input

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/juparave/prreview/internal/domain"
	"github.com/juparave/prreview/internal/util"
)

var (
	// ErrNoDiffPath means the caller never supplied a diff file argument
	ErrNoDiffPath = errors.New("diff path not provided")
	// ErrDiffNotFound means the diff file is missing on disk
	ErrDiffNotFound = errors.New("diff file not found")
)

// Reader loads the diff and findings inputs for a run
type Reader struct {
	logger *log.Logger
}

// NewReader creates a new Reader
func NewReader(logger *log.Logger) *Reader {
	return &Reader{logger: logger}
}

// ReadDiff loads the diff file and applies the size cap. A missing path or
// file is fatal for the run; the upstream CI step should have produced it.
func (r *Reader) ReadDiff(path string) (domain.Diff, error) {
	if path == "" {
		return domain.Diff{}, ErrNoDiffPath
	}
	if !util.FileExists(path) {
		return domain.Diff{}, fmt.Errorf("%w: %s", ErrDiffNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Diff{}, fmt.Errorf("reading diff %s: %w", path, err)
	}

	diff := domain.NewDiff(string(data))
	if diff.Truncated {
		r.logger.Printf("Warning: diff truncated to %d characters", domain.MaxDiffChars)
	}
	return diff, nil
}

// ReadFindings loads the static-analysis JSON. It never fails: a missing
// or unparsable file degrades to an empty report with a warning, and the
// review proceeds without findings.
func (r *Reader) ReadFindings(path string) domain.FindingsReport {
	var report domain.FindingsReport

	if path == "" || !util.FileExists(path) {
		r.logger.Printf("Warning: findings file not found, proceeding without findings")
		return report
	}

	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Printf("Warning: error reading findings file: %v", err)
		return domain.FindingsReport{}
	}

	if err := json.Unmarshal(data, &report); err != nil {
		r.logger.Printf("Warning: failed to parse findings JSON, proceeding without findings: %v", err)
		return domain.FindingsReport{}
	}

	return report
}
