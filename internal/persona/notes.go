package persona

import (
	"strings"

	"github.com/anuragkar/scambait/internal/intel"
)

// noteForCategory maps detection categories to operator-facing phrases, in
// report order.
var noteForCategory = []struct {
	category string
	note     string
}{
	{"urgency", "Used urgency tactics"},
	{"threat", "Employed threats"},
	{"banking", "Banking/financial scam"},
	{"phishing_link", "Shared suspicious links"},
	{"reward", "Prize/reward scam"},
	{"verification", "Verification/authentication attempt"},
	{"sensitive_info_request", "Requested sensitive information"},
	{"payment_deadline", "Pressed payment deadlines"},
}

var credentialTerms = []string{"otp", "pin", "cvv", "password"}

// Notes summarizes the scammer's observed behavior for the report, one
// phrase per detected category plus a credentials flag when the message
// asks for any outright.
func Notes(categories []string, messageText string) string {
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		seen[c] = true
	}

	var parts []string
	for _, m := range noteForCategory {
		if seen[m.category] {
			parts = append(parts, m.note)
		}
	}

	lower := strings.ToLower(messageText)
	for _, term := range credentialTerms {
		if intel.ContainsTerm(lower, term) {
			parts = append(parts, "Asked for credentials")
			break
		}
	}

	if len(parts) == 0 {
		return "Scam attempt detected"
	}
	return strings.Join(parts, "; ")
}
