package contract

import (
	"strings"

	"gandalf.app/compiler/internal/model"
)

// Render produces the canonical textual form of a contract: the five
// sections in fixed order, one bullet per line. This is the representation
// the efficiency calculator counts — telemetry never appears here.
func Render(c model.Contract) string {
	var parts []string

	parts = append(parts, "# Task: "+c.Title)

	parts = append(parts, "\n## Context")
	for _, item := range c.Context {
		parts = append(parts, "- "+item)
	}

	parts = append(parts, "\n## Definition of Done")
	for _, item := range c.DefinitionOfDone {
		parts = append(parts, "- [ ] "+item)
	}

	if len(c.Constraints) > 0 {
		parts = append(parts, "\n## Constraints")
		for _, item := range c.Constraints {
			parts = append(parts, "- "+item)
		}
	}

	parts = append(parts, "\n## Deliverables")
	for _, item := range c.Deliverables {
		parts = append(parts, "- "+item)
	}

	return strings.Join(parts, "\n")
}
