package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/juparave/prreview/internal/domain"
)

const persona = `You are an expert, meticulous technical Pull Request (PR) reviewer.
Your goal is to analyze the provided PR diff and static analysis data, and generate a concise, structured review summary.`

// Build assembles the full prompt from the diff, the metadata record, and
// the output contract. Pure string assembly; it never fails.
func Build(diff domain.Diff, meta domain.AnalysisMetadata, contract Contract) string {
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		metaJSON = []byte("{}")
	}

	var sb strings.Builder

	sb.WriteString(persona)
	sb.WriteString("\n\n### INPUT DATA\n")
	sb.WriteString("- **PR Diff:**\n")
	sb.WriteString(diff.Content)
	sb.WriteString("\n\n- **Static Analysis Metadata (relevant findings included):**\n")
	sb.Write(metaJSON)

	sb.WriteString("\n\n### CONSTRAINTS\n")
	fmt.Fprintf(&sb, "- The total review text must be concise (strive for under %d words).\n", contract.WordBudget)
	sb.WriteString("- Your review must adhere *strictly* to the output format below.\n")
	sb.WriteString("- Do not invent information.\n")
	sb.WriteString("- Do not use any introductory sentences.\n")
	sb.WriteString("- Do not mention any tool names.\n")

	sb.WriteString("\nGenerate the automated PR review summary based *only* on the input data above.\n\n")
	fmt.Fprintf(&sb, "**Output Format (START IMMEDIATELY with '## %s' and use markdown headings in this exact order):**\n", contract.Sections[0].Heading)
	for _, s := range contract.Sections {
		fmt.Fprintf(&sb, "\n## %s\n[%s]\n", s.Heading, s.Instruction)
	}

	return sb.String()
}
