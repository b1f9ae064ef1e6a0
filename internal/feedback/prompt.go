package feedback

import (
	"fmt"
	"strings"

	"github.com/abhisek/parley/internal/catalog"
)

// BuildPrompt renders the tutor request for one answer. Prior turns of the
// scenario are included so the tutor can judge the answer in context.
func BuildPrompt(sc catalog.Scenario, prompt, response string, history []Turn) string {
	var b strings.Builder

	b.WriteString("You are a German language tutor providing feedback on workplace conversation practice.\n\n")
	fmt.Fprintf(&b, "Scenario: %s\n", sc.Title)
	fmt.Fprintf(&b, "Context: %s\n", sc.Context)
	fmt.Fprintf(&b, "Formality: %s\n", sc.Formality)
	fmt.Fprintf(&b, "Difficulty: %s\n\n", sc.Difficulty)

	if len(history) > 0 {
		b.WriteString("Previous conversation:\n")
		for _, t := range history {
			fmt.Fprintf(&b, "Prompt: %s\nUser: %s\n\n", t.Prompt, t.Response)
		}
	}

	fmt.Fprintf(&b, "\nCurrent Prompt: \"%s\"\n", prompt)
	fmt.Fprintf(&b, "User Response: \"%s\"\n\n", response)

	b.WriteString("Provide feedback in this exact JSON format:\n")
	b.WriteString("{\n")
	b.WriteString("    \"relevance_score\": <1-5>,\n")
	fmt.Fprintf(&b, "    \"transcript\": \"%s\",\n", response)
	b.WriteString("    \"what_worked\": [\"point 1\", \"point 2\"],\n")
	b.WriteString("    \"improvement\": \"one specific improvement area\",\n")
	b.WriteString("    \"suggested_response\": \"a better German response\",\n")
	b.WriteString("    \"score_explanation\": \"brief explanation of score\"\n")
	b.WriteString("}\n\n")

	b.WriteString("Evaluate:\n")
	b.WriteString("1. Relevance to the prompt (1-5)\n")
	fmt.Fprintf(&b, "2. Appropriateness of formality (%s)\n", sc.Formality)
	b.WriteString("3. Grammar and vocabulary\n")
	b.WriteString("4. Cultural appropriateness for German workplace\n\n")
	b.WriteString("Be encouraging but specific. Focus on practical improvements.")

	return b.String()
}
