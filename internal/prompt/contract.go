package prompt

// Section is one required markdown heading in the model's response
type Section struct {
	Heading     string
	Instruction string
}

// Contract pins down the response format: which sections, in which order,
// and how much text overall. Every caller goes through the same contract
// so the output format cannot drift between entry points.
type Contract struct {
	Sections   []Section
	WordBudget int
}

// DefaultContract is the review format posted to pull requests
func DefaultContract() Contract {
	return Contract{
		WordBudget: 140,
		Sections: []Section{
			{Heading: "Why It Matters", Instruction: "A short paragraph explaining the impact"},
			{Heading: "Issues", Instruction: "State any security/logic issues found. If none, state: 'No critical issues found.'"},
			{Heading: "Changes Required", Instruction: "List 1-2 essential fixes. If none, state: 'No immediate changes required.'"},
			{Heading: "Summary", Instruction: "2-3 bullets covering the exact changes"},
		},
	}
}
