package complexity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mwiater/frameworkstats/internal/source"
)

// Criterion is one weighted part of the complexity rubric.
type Criterion struct {
	Name      string
	Weight    int
	Questions []string
}

// Rubric is the weighted scoring guide embedded in every prompt. Weights sum to 100.
var Rubric = []Criterion{
	{
		Name:   "State Management Complexity",
		Weight: 40,
		Questions: []string{
			"How is checkbox state stored and updated?",
			"Is state management centralized or distributed?",
			"How many state variables are needed?",
		},
	},
	{
		Name:   "Event Handling Complexity",
		Weight: 35,
		Questions: []string{
			"How are parent-child checkbox interactions managed?",
			"How many event listeners are needed?",
			"How complex is the event propagation logic?",
		},
	},
	{
		Name:   "Code Overhead",
		Weight: 25,
		Questions: []string{
			"Amount of boilerplate code required",
			"Number of helper functions needed",
			"Framework-specific abstractions used",
		},
	},
}

const requirements = `The component requirements:
1. A parent checkbox that toggles all child checkboxes.
2. Three child checkboxes that can be toggled independently.
3. Parent checkbox becomes:
   - Checked when all children are checked.
   - Unchecked when all children are unchecked.
   - Indeterminate when some children are checked.`

// BuildPrompt renders the single batched prompt for every implementation.
// Implementations appear in id order so identical inputs yield identical prompts.
func BuildPrompt(impls map[string]source.Implementation) string {
	ids := sortedIDs(impls)

	var b strings.Builder
	b.WriteString("You are tasked with evaluating implementations of a checkbox tree component written in different frameworks based on their complexity.\n\n")
	b.WriteString(requirements)
	b.WriteString("\n\nEvaluate each implementation based on its **complexity index** (0-100), with the following weighted criteria:\n\n")
	for i, c := range Rubric {
		fmt.Fprintf(&b, "%d. **%s** (%d%% of score):\n", i+1, c.Name, c.Weight)
		for _, q := range c.Questions {
			fmt.Fprintf(&b, "   - %s\n", q)
		}
		b.WriteString("\n")
	}
	b.WriteString("Lower scores indicate simpler implementations. Respond with a JSON object containing only integer scores for these frameworks: ")
	b.WriteString(strings.Join(ids, ", "))
	b.WriteString("\n{\n  \"scores\": {\n")
	for i, id := range ids {
		sep := ","
		if i == len(ids)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "    %q: <0-100>%s\n", id, sep)
	}
	b.WriteString("  }\n}\n\nHere are the implementations:\n\n")

	blocks := make([]string, 0, len(ids))
	for _, id := range ids {
		blocks = append(blocks, formatImplementation(id, impls[id]))
	}
	b.WriteString(strings.Join(blocks, "\n\n"))
	return b.String()
}

func formatImplementation(id string, impl source.Implementation) string {
	return fmt.Sprintf("### %s\n```%s\n%s\n```", id, fence(impl.Extension), strings.TrimRight(impl.Source, "\n"))
}

func fence(ext string) string {
	switch lang := source.Language(ext); lang {
	case "text":
		return ""
	case "html":
		return strings.TrimPrefix(ext, ".")
	default:
		return lang
	}
}

func sortedIDs(impls map[string]source.Implementation) []string {
	ids := make([]string, 0, len(impls))
	for id := range impls {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
