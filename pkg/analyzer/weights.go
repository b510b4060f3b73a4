package analyzer

// tagWeight pairs a structural HTML tag with the multiplier applied to
// tokens extracted from it.
type tagWeight struct {
	Tag    string
	Weight float64
}

// structuralOrder is the fixed traversal order used when minting
// positions: title first, down through headings and emphasis, before
// the full-body pass. Order matters — it determines which occurrence
// of a repeated phrase gets which position.
var structuralOrder = []tagWeight{
	{Tag: "title", Weight: 3.0},
	{Tag: "h1", Weight: 2.5},
	{Tag: "h2", Weight: 2.0},
	{Tag: "h3", Weight: 1.4},
	{Tag: "b", Weight: 1.6},
	{Tag: "strong", Weight: 1.6},
}

const bodyWeight = 1.0

// stopwordFactor demotes (not removes) a stopword occurrence's weight.
const stopwordFactor = 0.5

// prunedTags are removed, subtree and all, before any extraction pass.
var prunedTags = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"footer":   {},
	"header":   {},
	"nav":      {},
}
