package nodes

// Graph node keys.
const (
	NodeCategorize = "Categorize"
	NodeRespond    = "Respond"
	NodeFinalize   = "Finalize"
)
