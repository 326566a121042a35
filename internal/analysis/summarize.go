package analysis

import (
	"bytes"
	"encoding/json"

	"github.com/juparave/prreview/internal/domain"
)

// Summarize reduces a findings report to the metadata record embedded in
// the prompt. It has no failure mode: every missing or malformed field
// degrades to a safe default.
func Summarize(report domain.FindingsReport, diffTruncated bool) domain.AnalysisMetadata {
	meta := domain.AnalysisMetadata{
		DiffTruncated:    diffTruncated,
		Version:          report.Version,
		Errors:           rawOrDefault(report.Errors, domain.NoErrors),
		PathsScanned:     rawOrDefault(report.Paths.Scanned, domain.NoValue),
		RelevantFindings: domain.NoFindings,
	}
	if meta.Version == "" {
		meta.Version = domain.NoValue
	}

	if results, ok := report.ResultList(); ok {
		meta.TotalFindings = len(results)
		if len(results) > 0 {
			n := len(results)
			if n > domain.MaxRelevantFindings {
				n = domain.MaxRelevantFindings
			}
			meta.RelevantFindings = results[:n]
		}
	}

	return meta
}

// rawOrDefault keeps a raw JSON value as-is unless it is absent or null
func rawOrDefault(raw json.RawMessage, def string) any {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return def
	}
	return raw
}
