// Package persona generates the honeypot's conversational replies. The agent
// stays in character as a regular person and degrades to canned fallbacks
// instead of surfacing generation errors.
package persona

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/anuragkar/scambait/internal/domain"
	"github.com/anuragkar/scambait/internal/llm"
)

const (
	// replyMaxTokens keeps generated replies SMS-sized.
	replyMaxTokens = 150

	// replyMaxLen is the character budget before sentence truncation kicks in.
	replyMaxLen = 300

	defaultTemperature = 0.7
)

// Config selects the provider and sampling behavior for reply generation.
type Config struct {
	Provider    string
	Model       string
	Temperature float64
}

// Agent produces persona replies through the LLM router.
type Agent struct {
	router *llm.Router
	cfg    Config
}

func NewAgent(router *llm.Router, cfg Config) *Agent {
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	return &Agent{router: router, cfg: cfg}
}

// GenerateReply answers the current scammer message in character. history is
// the conversation before the current message. The returned reply is always
// usable: generation failures fall back to keyword-driven canned responses.
func (a *Agent) GenerateReply(ctx context.Context, current domain.Message, history []domain.Message, meta *domain.Metadata, found domain.Intelligence) domain.Reply {
	provider, err := a.router.GetProvider(a.cfg.Provider)
	if err != nil {
		log.Warn().Err(err).Msg("Persona provider unavailable, using fallback reply")
		return fallback(current, history)
	}

	conversation := make([]domain.Message, 0, len(history)+1)
	conversation = append(conversation, history...)
	conversation = append(conversation, current)

	req := llm.Request{
		System:      buildPersonaPrompt(conversation, meta, found),
		Prompt:      fmt.Sprintf("Scammer just said: %q\n\nRespond naturally as a regular person would.", current.Text),
		Temperature: a.cfg.Temperature,
		MaxTokens:   replyMaxTokens,
	}

	resp, err := provider.Complete(ctx, req, a.cfg.Model)
	if err != nil {
		log.Warn().Err(err).Str("provider", provider.Name()).Msg("Persona generation failed, using fallback reply")
		return fallback(current, history)
	}

	text := clampReply(resp.Text)
	if text == "" {
		log.Warn().Str("provider", provider.Name()).Msg("Persona generation returned empty reply, using fallback")
		return fallback(current, history)
	}
	return domain.Reply{Text: text, Source: domain.ReplyLLM}
}

// clampReply trims the reply and, when it overruns the SMS budget, cuts it
// back to its first sentence.
func clampReply(reply string) string {
	reply = strings.TrimSpace(reply)
	if len(reply) <= replyMaxLen {
		return reply
	}
	if i := strings.Index(reply, "."); i >= 0 {
		return strings.TrimSpace(reply[:i]) + "."
	}
	return reply
}

func fallback(current domain.Message, history []domain.Message) domain.Reply {
	return domain.Reply{Text: fallbackReply(current.Text, len(history) == 0), Source: domain.ReplyFallback}
}

// fallbackReply picks a canned response keyed on what the scammer mentioned.
// Opening messages get confusion, follow-ups get compliance questions that
// keep the scammer talking.
func fallbackReply(text string, firstMessage bool) string {
	lower := strings.ToLower(text)

	if firstMessage {
		switch {
		case strings.Contains(lower, "bank"), strings.Contains(lower, "account"):
			return "Wait, which bank account are you talking about?"
		case strings.Contains(lower, "upi"):
			return "What about my UPI? Can you explain?"
		case strings.Contains(lower, "blocked"), strings.Contains(lower, "suspended"):
			return "Why would it be blocked??"
		default:
			return "I don't understand. Can you explain what this is about?"
		}
	}

	switch {
	case strings.Contains(lower, "link"), strings.Contains(lower, "http"):
		return "Ok send me the link"
	case strings.Contains(lower, "call"), strings.Contains(lower, "contact"):
		return "What number should I call?"
	case strings.Contains(lower, "payment"), strings.Contains(lower, "pay"), strings.Contains(lower, "transfer"):
		return "Where do I send the payment?"
	default:
		return "Can you give me more details about this?"
	}
}

// neutralReplies rotate on turns where no scam has been confirmed yet, so the
// honeypot stays responsive without committing the persona.
var neutralReplies = []string{
	"I'm not sure what this is about. Can you clarify?",
	"Sorry, who is this?",
	"Ok... what is this regarding?",
	"I don't think I know you. What's this about?",
}

// NeutralReply returns the acknowledgment for the given counterpart turn.
func NeutralReply(turn int) string {
	if turn < 0 {
		turn = 0
	}
	return neutralReplies[turn%len(neutralReplies)]
}
