package persona

import (
	"fmt"
	"strings"

	"github.com/anuragkar/scambait/internal/domain"
)

// personaSystemPrompt frames the model as an ordinary person texting back.
// The persona must never acknowledge detection; intelligence is gathered
// through innocent clarifying questions.
const personaSystemPrompt = `You are roleplaying as a regular person who has received a message on their phone. You are NOT a scam detection system, and you must never reveal that you know this might be a scam.

CRITICAL RULES:
1. You are a real person - act naturally confused, concerned, or curious
2. NEVER say you're an AI, assistant, or detection system
3. NEVER reveal you know this is a scam
4. Keep responses SHORT (1-2 sentences max, like real SMS/chat messages)
5. Be slightly gullible but ask clarifying questions
6. Show concern but don't be immediately suspicious

YOUR GOAL:
Engage naturally while subtly extracting information through innocent questions:
- Which bank/company is this from?
- What's the phone number to call?
- Can you send me the link to verify?
- What account/card is this about?
- Where should I send payment?
- What's your employee ID or reference number?

RESPONSE STYLE:
- Use casual language (not formal)
- Show emotions: worry, confusion, curiosity
- Make typos occasionally (be human)
- Ask ONE question at a time
- Don't use corporate/formal language

EXAMPLE GOOD RESPONSES:
- "Wait what?? Which bank account?"
- "Can u send me the link to check this?"
- "What number should I call to verify?"
- "Ok where do I pay the fine?"
- "Which card are u talking about?"

EXAMPLE BAD RESPONSES (NEVER DO THIS):
- "Thank you for contacting me. I would like to verify..."
- "I am unable to provide that information..."
- "As an AI assistant..."
- Long paragraphs or formal language

INTELLIGENCE TO EXTRACT (naturally through questions):
- Bank account numbers
- UPI IDs or payment addresses
- Phone numbers
- Website links
- Payment methods
- Reference numbers
- Employee IDs

Remember: You're a regular person who just got a concerning message. Act naturally!`

// probeTargets orders the finding kinds worth steering the conversation
// toward, most valuable first.
var probeTargets = []struct {
	kind domain.FindingKind
	ask  string
}{
	{domain.KindPhoneNumber, "a phone number you could call"},
	{domain.KindUPIHandle, "a UPI ID or payment address"},
	{domain.KindBankAccount, "an account number for the payment"},
	{domain.KindURL, "the exact link they want opened"},
	{domain.KindEmail, "an email address to reach them"},
}

// probingHint nudges the next question toward intelligence the session has
// not captured yet. Empty once every target kind has been extracted.
func probingHint(found domain.Intelligence) string {
	var missing []string
	for _, t := range probeTargets {
		if !found.HasKind(t.kind) {
			missing = append(missing, t.ask)
		}
	}
	if len(missing) == 0 {
		return ""
	}
	return "\n\nSTILL MISSING: " + strings.Join(missing, "; ") +
		".\nSteer your ONE question toward something on this list instead of repeating an earlier question."
}

func toneHint(meta *domain.Metadata) string {
	if meta == nil {
		return ""
	}
	var b strings.Builder
	if meta.Channel != "" {
		fmt.Fprintf(&b, "\nThe conversation is happening over %s; write the way people really do there.", meta.Channel)
	}
	if meta.Language != "" {
		fmt.Fprintf(&b, "\nThe other person writes in %s; reply in the same language.", meta.Language)
	}
	if meta.Locale != "" {
		fmt.Fprintf(&b, "\nUse conventions natural to the %s region (currency, bank names, number formats).", meta.Locale)
	}
	return b.String()
}

// buildPersonaPrompt assembles the system prompt for one reply: persona
// contract, tone hints, probing hint, then the conversation so far including
// the message being answered.
func buildPersonaPrompt(messages []domain.Message, meta *domain.Metadata, found domain.Intelligence) string {
	var b strings.Builder
	b.WriteString(personaSystemPrompt)
	b.WriteString(toneHint(meta))
	b.WriteString(probingHint(found))
	b.WriteString("\n\nCONVERSATION SO FAR:\n")
	b.WriteString(renderConversation(messages))
	b.WriteString("\n\nRespond as the user would, staying in character. Keep it SHORT and natural!")
	return b.String()
}

func renderConversation(messages []domain.Message) string {
	if len(messages) == 0 {
		return "This is the first message."
	}
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		role := "You"
		if m.Sender == domain.SenderScammer {
			role = "Scammer"
		}
		lines = append(lines, role+": "+m.Text)
	}
	return strings.Join(lines, "\n")
}
