package domain

import "encoding/json"

// FindingsReport is the raw static-analysis output for one scan run.
// Only the top-level fields the review cares about are decoded; finding
// records and error entries stay as raw JSON so malformed shapes cannot
// abort the pipeline.
type FindingsReport struct {
	Version string          `json:"version"`
	Results json.RawMessage `json:"results"`
	Errors  json.RawMessage `json:"errors"`
	Paths   ScanPaths       `json:"paths"`
}

// ScanPaths holds the scanner's path accounting
type ScanPaths struct {
	Scanned json.RawMessage `json:"scanned"`
}

// ResultList decodes the results field when it is a well-formed list.
// A missing or non-list results field yields ok == false.
func (r *FindingsReport) ResultList() ([]json.RawMessage, bool) {
	if len(r.Results) == 0 {
		return nil, false
	}
	var list []json.RawMessage
	if err := json.Unmarshal(r.Results, &list); err != nil {
		return nil, false
	}
	return list, true
}
