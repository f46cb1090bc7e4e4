package detect

import (
	"fmt"
	"strings"

	"github.com/anuragkar/scambait/internal/domain"
)

const detectionSystemPrompt = `You are a scam detection AI analyzing messages for potential fraud.

Analyze the following message and conversation history for signs of scam/fraud attempts.

SCAM INDICATORS:
1. Urgency and threats (immediate action required, account will be blocked)
2. Requests for sensitive information (OTP, PIN, CVV, passwords, account numbers)
3. Impersonation (claiming to be bank, government, courier service)
4. Financial requests (payments, transfers, deposits)
5. Suspicious links (shortened URLs, misspelled domains)
6. Prizes or rewards (lottery winner, cashback, refund)
7. Fear tactics (legal action, arrest, fine)
8. Grammar/spelling issues in "official" messages

SCAM CATEGORIES:
- Bank fraud (fake bank alerts, account verification)
- UPI fraud (payment requests, QR codes)
- Phishing (fake login links, credential theft)
- Prize scams (lottery, rewards)
- Courier/delivery scams (failed delivery, customs fee)
- Government impersonation (tax, legal notices)
- Job/income scams (work from home, investment)

Respond with a JSON object:
{
  "is_scam": true/false,
  "confidence": 0.0-1.0,
  "categories": ["category1", "category2"],
  "reasoning": "Brief explanation of why this is/isn't a scam"
}

Be accurate - false positives are bad. Only flag as scam if you're confident.`

// buildDetectionPrompt renders the current message and a bounded history
// window for the semantic stage.
func buildDetectionPrompt(text string, history []domain.Message, window int) string {
	var b strings.Builder

	if len(history) > 0 {
		start := len(history) - window
		if start < 0 {
			start = 0
		}
		b.WriteString("CONVERSATION HISTORY:\n")
		for _, msg := range history[start:] {
			fmt.Fprintf(&b, "%s: %s\n", msg.Sender, msg.Text)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "CURRENT MESSAGE TO ANALYZE:\n%q\n\nAnalyze and respond with JSON only.", text)
	return b.String()
}
