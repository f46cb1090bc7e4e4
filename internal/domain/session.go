package domain

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned by a SessionStore when no live session
// exists for the requested id.
var ErrSessionNotFound = errors.New("session not found")

// Session is the engagement state for one scammer conversation. It is
// serialized as a single JSON document per session key.
type Session struct {
	ID            string         `json:"sessionId"`
	History       []Message      `json:"conversationHistory"`
	Intelligence  Intelligence   `json:"intelligence"`
	MessageCount  int            `json:"messageCount"`
	ScamConfirmed bool           `json:"scamConfirmed"`
	Confidence    float64        `json:"confidence"`
	Categories    []string       `json:"categories,omitempty"`
	Reported      bool           `json:"reported"`
	ReportOutcome DeliveryStatus `json:"reportOutcome,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// NewSession returns an empty session for the given id.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:           id,
		History:      make([]Message, 0),
		Intelligence: make(Intelligence, 0),
		Categories:   make([]string, 0),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Append adds one message to the conversation history. The counterpart
// message counter only advances for scammer turns.
func (s *Session) Append(msg Message) {
	s.History = append(s.History, msg)
	if msg.Sender == SenderScammer {
		s.MessageCount++
	}
}

// RecordAssessment folds a classifier verdict into the session:
// scam_confirmed is sticky once set, confidence keeps its peak, and new
// categories accumulate without duplicates.
func (s *Session) RecordAssessment(a Assessment) {
	if a.IsScam {
		s.ScamConfirmed = true
	}
	if a.Confidence > s.Confidence {
		s.Confidence = a.Confidence
	}
	for _, c := range a.Categories {
		if c == "" {
			continue
		}
		seen := false
		for _, have := range s.Categories {
			if have == c {
				seen = true
				break
			}
		}
		if !seen {
			s.Categories = append(s.Categories, c)
		}
	}
}

// Touch updates the modification timestamp.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now().UTC()
}

// StoreStatus reports which backend is currently serving session state
type StoreStatus string

const (
	StoreConnected StoreStatus = "connected"
	StoreFallback  StoreStatus = "fallback"
)

// SessionStore defines the interface for session persistence
type SessionStore interface {
	// Load returns the live session for id, or ErrSessionNotFound when the
	// session is absent or expired.
	Load(ctx context.Context, id string) (*Session, error)
	// Save overwrites the stored session and resets its TTL.
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
	// List returns the ids of live sessions, for operator inspection.
	List(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}
