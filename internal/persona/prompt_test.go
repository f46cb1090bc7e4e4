package persona

import (
	"strings"
	"testing"

	"github.com/anuragkar/scambait/internal/domain"
)

func TestProbingHintEmptyWhenEverythingCaptured(t *testing.T) {
	found := domain.Intelligence{
		{Kind: domain.KindPhoneNumber, Value: "+919876543210"},
		{Kind: domain.KindUPIHandle, Value: "x@paytm"},
		{Kind: domain.KindBankAccount, Value: "12345678901"},
		{Kind: domain.KindURL, Value: "http://x.example"},
		{Kind: domain.KindEmail, Value: "a@b.example"},
	}
	if hint := probingHint(found); hint != "" {
		t.Errorf("probingHint = %q, want empty", hint)
	}
}

func TestProbingHintListsAllKindsWhenNothingCaptured(t *testing.T) {
	hint := probingHint(nil)
	for _, want := range []string{"phone number", "UPI", "account number", "link", "email"} {
		if !strings.Contains(hint, want) {
			t.Errorf("probingHint missing %q in %q", want, hint)
		}
	}
}

func TestRenderConversationEmpty(t *testing.T) {
	if got := renderConversation(nil); got != "This is the first message." {
		t.Errorf("renderConversation(nil) = %q", got)
	}
}

func TestToneHintNilMetadata(t *testing.T) {
	if got := toneHint(nil); got != "" {
		t.Errorf("toneHint(nil) = %q, want empty", got)
	}
}

func TestBuildPersonaPromptKeepsPersonaContract(t *testing.T) {
	prompt := buildPersonaPrompt([]domain.Message{
		{Sender: domain.SenderScammer, Text: "Pay now"},
	}, nil, nil)

	for _, want := range []string{
		"NEVER say you're an AI",
		"NEVER reveal you know this is a scam",
		"CONVERSATION SO FAR:",
		"Scammer: Pay now",
		"staying in character",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
