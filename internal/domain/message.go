package domain

// Sender identifies who authored a message in an engagement.
//
// Wire values follow the evaluator contract: the scammer counterpart is
// "scammer" and the honeypot persona writes as "user" (the persona poses
// as an ordinary user from the scammer's point of view).
type Sender string

const (
	SenderScammer Sender = "scammer"
	SenderAgent   Sender = "user"
)

// Message represents one turn of an engagement conversation. The text cap
// leaves room for inline base64 image payloads.
type Message struct {
	Sender    Sender `json:"sender" validate:"required,oneof=scammer user"`
	Text      string `json:"text" validate:"max=1000000"`
	Timestamp int64  `json:"timestamp,omitempty"` // epoch milliseconds
}

// Metadata carries channel context supplied by the caller
type Metadata struct {
	Channel  string `json:"channel,omitempty" validate:"omitempty,max=32"`
	Language string `json:"language,omitempty" validate:"omitempty,max=32"`
	Locale   string `json:"locale,omitempty" validate:"omitempty,max=32"`
}
