package detect

import "testing"

func hasCategory(categories []string, want string) bool {
	for _, c := range categories {
		if c == want {
			return true
		}
	}
	return false
}

func TestScoreStrongScamSignals(t *testing.T) {
	score, categories := Score("Your bank account will be blocked today. Verify immediately by clicking http://fake-bank.com")

	if score < 0.7 {
		t.Errorf("score = %v, want >= 0.7 for a blatant phishing message", score)
	}
	if score > 0.95 {
		t.Errorf("score = %v, must stay capped at 0.95", score)
	}
	for _, want := range []string{"urgency", "banking", "threat", "verification", "phishing_link"} {
		if !hasCategory(categories, want) {
			t.Errorf("categories = %v, missing %q", categories, want)
		}
	}
}

func TestScoreBenignText(t *testing.T) {
	tests := []string{
		"",
		"hello, how are you doing?",
		"see you at lunch tomorrow",
		"the meeting got moved to room 4",
	}
	for _, text := range tests {
		if score, _ := Score(text); score > 0.3 {
			t.Errorf("Score(%q) = %v, want <= 0.3", text, score)
		}
	}
}

func TestScoreMidRangeStaysInconclusive(t *testing.T) {
	score, categories := Score("Update your bank details today")

	if score <= 0.3 || score >= 0.7 {
		t.Errorf("score = %v, want strictly between floor and threshold", score)
	}
	if !hasCategory(categories, "banking") || !hasCategory(categories, "urgency") {
		t.Errorf("categories = %v", categories)
	}
}

func TestScoreRewardScam(t *testing.T) {
	score, categories := Score("Congratulations! You won a lottery prize. Claim now, the offer expires today")

	if score < 0.7 {
		t.Errorf("score = %v, want >= 0.7", score)
	}
	if !hasCategory(categories, "reward") || !hasCategory(categories, "urgency") {
		t.Errorf("categories = %v", categories)
	}
}

func TestScoreSensitiveInfoRequest(t *testing.T) {
	_, categories := Score("Please share your OTP and PIN to continue")

	if !hasCategory(categories, "sensitive_info_request") {
		t.Errorf("categories = %v, missing sensitive_info_request", categories)
	}
}

func TestScorePaymentDeadline(t *testing.T) {
	_, categories := Score("Pay Rs.5000 before tonight or the offer lapses")

	if !hasCategory(categories, "payment_deadline") {
		t.Errorf("categories = %v, missing payment_deadline", categories)
	}
}

func TestScoreWordBoundaries(t *testing.T) {
	// "know" must not fire the "now" signal, "wonders" must not fire "won".
	if score, categories := Score("I know the plan and it wonders me"); score != 0 {
		t.Errorf("score = %v (categories %v), want 0", score, categories)
	}
}
