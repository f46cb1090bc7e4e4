package domain

// Stage identifies which classifier stage produced the final verdict
type Stage string

const (
	StageHeuristic Stage = "heuristic"
	StageLLM       Stage = "llm"
)

// Assessment is the classifier's verdict for a single message
type Assessment struct {
	IsScam     bool     `json:"is_scam"`
	Confidence float64  `json:"confidence"`
	Categories []string `json:"categories,omitempty"`
	Stage      Stage    `json:"stage"`
	Reasoning  string   `json:"reasoning,omitempty"`
}

// Category returns the primary category tag, or "" when none was assigned.
func (a Assessment) Category() string {
	if len(a.Categories) == 0 {
		return ""
	}
	return a.Categories[0]
}

// ReplySource records how a persona reply was produced
type ReplySource string

const (
	ReplyLLM      ReplySource = "llm"
	ReplyFallback ReplySource = "fallback"
)

// Reply is the persona agent's output for one turn
type Reply struct {
	Text   string      `json:"text"`
	Source ReplySource `json:"source"`
}
