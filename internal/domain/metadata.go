package domain

// Sentinel values used when the scanner output is missing a field
const (
	NoValue    = "N/A"
	NoErrors   = "None"
	NoFindings = "No findings."
)

// MaxRelevantFindings caps how many finding records go into the prompt
const MaxRelevantFindings = 5

// AnalysisMetadata is the reduced summary of a findings report that gets
// embedded in the prompt and persisted as an artifact. Field order is the
// serialization order; keep it stable.
type AnalysisMetadata struct {
	DiffTruncated    bool   `json:"diff_truncated"`
	Version          string `json:"version"`
	TotalFindings    int    `json:"total_findings"`
	Errors           any    `json:"errors"`
	PathsScanned     any    `json:"paths_scanned"`
	RelevantFindings any    `json:"relevant_findings"`
}
