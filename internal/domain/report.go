package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Report is the final intelligence payload delivered to the callback endpoint
type Report struct {
	SessionID              string              `json:"sessionId"`
	ScamDetected           bool                `json:"scamDetected"`
	TotalMessagesExchanged int                 `json:"totalMessagesExchanged"`
	ExtractedIntelligence  IntelligenceSummary `json:"extractedIntelligence"`
	AgentNotes             string              `json:"agentNotes"`
}

// DeliveryStatus is the terminal outcome of a report delivery attempt series
type DeliveryStatus string

const (
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryExhausted DeliveryStatus = "exhausted"
)

// DeliveryOutcome records how report delivery ended
type DeliveryOutcome struct {
	Status   DeliveryStatus `json:"status"`
	Attempts int            `json:"attempts"`
}

// ArchivedReport is a delivered (or exhausted) report retained for operator
// review after the session itself has expired
type ArchivedReport struct {
	ID           uuid.UUID           `json:"id"`
	SessionID    string              `json:"sessionId"`
	ScamDetected bool                `json:"scamDetected"`
	MessageCount int                 `json:"messageCount"`
	Intelligence IntelligenceSummary `json:"intelligence"`
	AgentNotes   string              `json:"agentNotes"`
	Outcome      DeliveryStatus      `json:"outcome"`
	Attempts     int                 `json:"attempts"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// ReportArchive defines the interface for durable report storage
type ReportArchive interface {
	Record(ctx context.Context, report *Report, outcome DeliveryOutcome) error
	List(ctx context.Context, limit int) ([]ArchivedReport, error)
}
