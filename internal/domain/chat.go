package domain

// ChatRequest is one inbound engagement turn
type ChatRequest struct {
	SessionID           string    `json:"sessionId" validate:"required,max=128"`
	Message             Message   `json:"message"`
	ConversationHistory []Message `json:"conversationHistory,omitempty" validate:"omitempty,dive"`
	Metadata            *Metadata `json:"metadata,omitempty"`
}

// ChatResponse is the turn result returned to the caller
type ChatResponse struct {
	Status                 string              `json:"status"`
	Reply                  string              `json:"reply"`
	ScamDetected           bool                `json:"scamDetected"`
	TotalMessagesExchanged int                 `json:"totalMessagesExchanged"`
	ExtractedIntelligence  IntelligenceSummary `json:"extractedIntelligence"`
	AgentNotes             string              `json:"agentNotes"`
}
