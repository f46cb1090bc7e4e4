// Package detect classifies messages for scam intent in two stages: a fast
// pattern stage over weighted signal vocabularies, escalating to an LLM
// judgment only when the pattern score is inconclusive.
package detect

import (
	"regexp"
	"strings"

	"github.com/anuragkar/scambait/internal/intel"
)

var (
	urgencyTerms = []string{
		"urgent", "immediately", "now", "today", "asap", "hurry",
		"quick", "fast", "expire", "expires", "expired", "last chance", "limited time",
	}
	bankingTerms = []string{
		"bank", "account", "upi", "payment", "transfer", "otp",
		"cvv", "pin", "atm", "card", "debit", "credit", "netbanking",
	}
	threatTerms = []string{
		"blocked", "suspended", "locked", "frozen", "deactivated",
		"legal action", "police", "arrest", "fine", "penalty", "court",
	}
	verificationTerms = []string{
		"verify", "confirm", "authenticate", "validate", "update details",
		"kyc", "click here", "link", "portal",
	}
	rewardTerms = []string{
		"won", "winner", "prize", "lottery", "reward", "cashback",
		"refund", "congratulations", "selected",
	}
	actionVerbs = []string{
		"click", "clicking", "verify", "login", "visit", "open", "confirm", "update",
	}
	deadlineTerms = []string{
		"today", "tonight", "tomorrow", "minutes", "hours", "deadline", "expires", "before",
	}
)

var (
	linkPattern  = regexp.MustCompile(`https?://|www\.`)
	moneyPattern = regexp.MustCompile(`(?:rs\.?|inr|₹|\$|€)\s*\d|\d+\s*(?:rupees|rs)\b`)

	sensitivePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(otp|cvv|pin|password)\b`),
		regexp.MustCompile(`\bshare.*\b(account|number|details)\b`),
		regexp.MustCompile(`\bsend.*\b(upi|payment)\b`),
	}
)

// scoreCap keeps the pattern stage below full certainty; only the weighted
// evidence decides, never a single saturated score.
const scoreCap = 0.95

// Score runs the pattern stage over one message text and returns a
// confidence in [0, 0.95] with the matched signal categories.
func Score(text string) (float64, []string) {
	lower := strings.ToLower(text)
	score := 0.0
	categories := make([]string, 0, 4)

	if n := countTerms(lower, urgencyTerms); n > 0 {
		score += 0.2 * float64(min(n, 2))
		categories = append(categories, "urgency")
	}
	if n := countTerms(lower, bankingTerms); n > 0 {
		score += 0.15 * float64(min(n, 2))
		categories = append(categories, "banking")
	}
	if n := countTerms(lower, threatTerms); n > 0 {
		score += 0.25 * float64(min(n, 2))
		categories = append(categories, "threat")
	}
	if n := countTerms(lower, verificationTerms); n > 0 {
		score += 0.2 * float64(min(n, 2))
		categories = append(categories, "verification")
	}
	if n := countTerms(lower, rewardTerms); n > 0 {
		score += 0.2 * float64(min(n, 2))
		categories = append(categories, "reward")
	}

	if linkPattern.MatchString(lower) {
		score += 0.15
		categories = append(categories, "phishing_link")
		// A link the victim is told to act on is a stronger signal than a
		// bare link.
		if countTerms(lower, actionVerbs) > 0 {
			score += 0.1
		}
	}

	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(lower) {
			score += 0.2
			categories = append(categories, "sensitive_info_request")
			break
		}
	}

	if moneyPattern.MatchString(lower) && countTerms(lower, deadlineTerms) > 0 {
		score += 0.1
		categories = append(categories, "payment_deadline")
	}

	if score > scoreCap {
		score = scoreCap
	}
	return score, categories
}

func countTerms(lower string, terms []string) int {
	n := 0
	for _, term := range terms {
		if intel.ContainsTerm(lower, term) {
			n++
		}
	}
	return n
}
