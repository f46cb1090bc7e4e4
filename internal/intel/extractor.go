// Package intel extracts actionable intelligence from scammer messages.
// Everything in this package is pure computation over the input text.
package intel

import (
	"regexp"
	"strings"

	"github.com/anuragkar/scambait/internal/domain"
)

var (
	urlPattern   = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s<>"']+`)
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)
	upiPattern   = regexp.MustCompile(`\b[A-Za-z0-9._\-]{2,}@[A-Za-z]{2,}\b`)
)

// keywordVocabulary is the fixed set of scam-indicative terms tracked as
// keyword findings. Single words match on word boundaries; phrases match as
// substrings.
var keywordVocabulary = []string{
	// urgency
	"urgent", "immediately", "now", "today", "asap", "hurry", "quick", "fast",
	// verification and security
	"verify", "confirm", "authenticate", "validate", "security", "alert", "kyc",
	// account state
	"blocked", "suspended", "locked", "frozen", "deactivated", "expired",
	// banking
	"bank", "account", "upi", "payment", "transfer", "transaction",
	"otp", "cvv", "pin", "password", "atm", "card", "debit", "credit",
	// threats
	"legal action", "police", "arrest", "fine", "penalty", "court",
	// rewards
	"prize", "winner", "won", "lottery", "reward", "cashback", "refund",
	// links
	"click here", "link", "website", "portal", "login",
	// data requests
	"share", "send", "provide", "details", "information",
}

const snippetMargin = 20

// Extract parses one message text into a finding set. It never fails; the
// worst case for any input is an empty set.
//
// Patterns apply in fixed priority order (url, email, upi_handle, then digit
// runs classified as phone_number or bank_account, then keywords), and a span
// consumed by a higher-priority pattern is invisible to the ones below it, so
// digits inside a URL are never double-counted as an account number.
func Extract(text string) domain.Intelligence {
	findings := make(domain.Intelligence, 0)
	if text == "" {
		return findings
	}

	consumed := make([]bool, len(text))

	for _, span := range urlPattern.FindAllStringIndex(text, -1) {
		start, end := span[0], span[1]
		value := strings.TrimRight(text[start:end], `.,;:!?)]}"'`)
		end = start + len(value)
		if value == "" || overlaps(consumed, start, end) {
			continue
		}
		findings.Add(domain.Finding{Kind: domain.KindURL, Value: value, Context: snippet(text, start, end)})
		consume(consumed, start, end)
	}

	for _, span := range emailPattern.FindAllStringIndex(text, -1) {
		start, end := span[0], span[1]
		if overlaps(consumed, start, end) {
			continue
		}
		value := strings.ToLower(text[start:end])
		findings.Add(domain.Finding{Kind: domain.KindEmail, Value: value, Context: snippet(text, start, end)})
		consume(consumed, start, end)
	}

	// Dotted providers were consumed as emails above, so what remains here
	// is the pure handle@provider shape.
	for _, span := range upiPattern.FindAllStringIndex(text, -1) {
		start, end := span[0], span[1]
		if overlaps(consumed, start, end) {
			continue
		}
		value := strings.ToLower(text[start:end])
		findings.Add(domain.Finding{Kind: domain.KindUPIHandle, Value: value, Context: snippet(text, start, end)})
		consume(consumed, start, end)
	}

	scanDigitRuns(text, consumed, func(start, end int, digits string, plus bool) {
		kind, value, ok := classifyDigits(digits, plus)
		if !ok {
			return
		}
		findings.Add(domain.Finding{Kind: kind, Value: value, Context: snippet(text, start, end)})
		consume(consumed, start, end)
	})

	masked := maskConsumed(text, consumed)
	for _, term := range keywordVocabulary {
		if ContainsTerm(masked, term) {
			findings.Add(domain.Finding{Kind: domain.KindKeyword, Value: term})
		}
	}

	return findings
}

// scanDigitRuns walks maximal runs of digits, allowing a single space or
// hyphen between digit groups and an optional leading plus, and reports each
// run not touching an already consumed span.
func scanDigitRuns(text string, consumed []bool, report func(start, end int, digits string, plus bool)) {
	n := len(text)
	for i := 0; i < n; {
		if consumed[i] {
			i++
			continue
		}
		start := i
		j := i
		plus := false
		switch {
		case text[i] == '+' && i+1 < n && !consumed[i+1] && isDigit(text[i+1]):
			plus = true
			j = i + 1
		case isDigit(text[i]):
		default:
			i++
			continue
		}

		var digits strings.Builder
		k := j
		for k < n && !consumed[k] {
			c := text[k]
			if isDigit(c) {
				digits.WriteByte(c)
				k++
				continue
			}
			if (c == ' ' || c == '-') && k+1 < n && !consumed[k+1] && isDigit(text[k+1]) {
				k++
				continue
			}
			break
		}
		report(start, k, digits.String(), plus)
		i = k
	}
}

// classifyDigits maps a separator-stripped digit run to a finding.
// International numbers keep a canonical +digits form; ten-digit domestic
// mobiles stay digits-only; remaining runs of account-number length become
// bank accounts; seven to nine digits read as a landline or helpline number.
// Anything shorter is ignored, so reference codes like "HDFC1234" never
// produce a false account match.
func classifyDigits(digits string, plus bool) (domain.FindingKind, string, bool) {
	n := len(digits)
	switch {
	case plus && n >= 8 && n <= 15:
		return domain.KindPhoneNumber, "+" + digits, true
	case plus:
		return "", "", false
	case n == 10 && digits[0] >= '6' && digits[0] <= '9':
		return domain.KindPhoneNumber, digits, true
	case n >= 10 && n <= 18:
		return domain.KindBankAccount, digits, true
	case n >= 7 && n <= 9:
		return domain.KindPhoneNumber, digits, true
	default:
		return "", "", false
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func overlaps(consumed []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if consumed[i] {
			return true
		}
	}
	return false
}

func consume(consumed []bool, start, end int) {
	for i := start; i < end; i++ {
		consumed[i] = true
	}
}

// maskConsumed blanks consumed spans and lowercases the rest, leaving only
// unclaimed text visible to the keyword pass.
func maskConsumed(text string, consumed []bool) string {
	b := []byte(text)
	for i := range b {
		if consumed[i] {
			b[i] = ' '
		}
	}
	return strings.ToLower(string(b))
}

// ContainsTerm reports a vocabulary hit against lowercased text. Term edges
// must fall on word boundaries so that "now" does not fire inside "know".
func ContainsTerm(text, term string) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], term)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(term)
		beforeOK := idx == 0 || !isWordByte(text[idx-1])
		afterOK := end == len(text) || !isWordByte(text[end])
		if beforeOK && afterOK {
			return true
		}
		start = idx + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || isDigit(b) || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// snippet returns a short context window around a match, clamped to rune
// boundaries.
func snippet(text string, start, end int) string {
	lo := start - snippetMargin
	if lo < 0 {
		lo = 0
	}
	hi := end + snippetMargin
	if hi > len(text) {
		hi = len(text)
	}
	for lo > 0 && isContinuation(text[lo]) {
		lo--
	}
	for hi < len(text) && isContinuation(text[hi]) {
		hi++
	}
	return strings.TrimSpace(text[lo:hi])
}

func isContinuation(b byte) bool { return b&0xC0 == 0x80 }
