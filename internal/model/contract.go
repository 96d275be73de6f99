package model

// Shape bounds for a compiled task contract. Lower bounds are enforced by
// padding, upper bounds by truncation, never by failing.
const (
	MaxContextItems     = 2
	MinDefinitionOfDone = 3
	MaxDefinitionOfDone = 7
	MaxConstraints      = 5
	MaxDeliverables     = 5
)

// Contract is the Compiled Task Contract: the minimal, objectively verifiable
// task specification produced for a clear intent.
type Contract struct {
	Title            string   `json:"title"`
	Context          []string `json:"context"`
	DefinitionOfDone []string `json:"definition_of_done"`
	Constraints      []string `json:"constraints"`
	Deliverables     []string `json:"deliverables"`
}
