package domain

import "strings"

// MaxDiffChars is the maximum number of diff characters sent to the model
const MaxDiffChars = 15000

// MinDiffChars is the smallest trimmed diff worth reviewing
const MinDiffChars = 10

// Diff represents the unified-diff text of a pull request
type Diff struct {
	Content   string
	Truncated bool
}

// NewDiff caps the content at MaxDiffChars and records whether it was cut
func NewDiff(content string) Diff {
	if len(content) > MaxDiffChars {
		return Diff{Content: content[:MaxDiffChars], Truncated: true}
	}
	return Diff{Content: content}
}

// TooSmall returns true if the diff carries nothing reviewable
func (d *Diff) TooSmall() bool {
	return len(strings.TrimSpace(d.Content)) < MinDiffChars
}
