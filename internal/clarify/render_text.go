package clarify

import (
	"fmt"
	"strings"

	"gandalf.app/compiler/internal/model"
)

// RenderText produces the textual form of a clarification set for character
// counting: a fixed preamble, then each numbered question with its indented
// options.
func RenderText(set model.ClarificationSet) string {
	if len(set.Asked) == 0 {
		return ""
	}

	parts := []string{"Before proceeding, clarification is needed:"}
	for i, q := range set.Asked {
		parts = append(parts, fmt.Sprintf("\n%d) %s", i+1, q.Question))
		for _, opt := range q.Options {
			parts = append(parts, "   - "+opt)
		}
	}
	return strings.Join(parts, "\n")
}
