package intel

import (
	"strings"
	"testing"

	"github.com/anuragkar/scambait/internal/domain"
)

func values(in domain.Intelligence, kind domain.FindingKind) []string {
	return in.Values(kind)
}

func TestExtractMixedMessage(t *testing.T) {
	in := Extract("Call +91-9876543210 now, ref HDFC1234, pay to pramod@paytm, click http://fake-bank.com")

	if got := values(in, domain.KindPhoneNumber); len(got) != 1 || got[0] != "+919876543210" {
		t.Errorf("phone numbers = %v, want [+919876543210]", got)
	}
	if got := values(in, domain.KindUPIHandle); len(got) != 1 || got[0] != "pramod@paytm" {
		t.Errorf("upi handles = %v, want [pramod@paytm]", got)
	}
	if got := values(in, domain.KindURL); len(got) != 1 || got[0] != "http://fake-bank.com" {
		t.Errorf("urls = %v, want [http://fake-bank.com]", got)
	}
	// "HDFC1234" is a reference code, not a qualifying digit run.
	if got := values(in, domain.KindBankAccount); len(got) != 0 {
		t.Errorf("bank accounts = %v, want none", got)
	}
}

func TestExtractTable(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind domain.FindingKind
		want []string
	}{
		{
			name: "international phone with separators",
			text: "reach me at +91 98765 43210",
			kind: domain.KindPhoneNumber,
			want: []string{"+919876543210"},
		},
		{
			name: "domestic ten digit mobile",
			text: "call 9876543210 immediately",
			kind: domain.KindPhoneNumber,
			want: []string{"9876543210"},
		},
		{
			name: "bank account plain run",
			text: "account number 1234567890123456 is flagged",
			kind: domain.KindBankAccount,
			want: []string{"1234567890123456"},
		},
		{
			name: "bank account with spaces",
			text: "transfer to 1234 5678 9012",
			kind: domain.KindBankAccount,
			want: []string{"123456789012"},
		},
		{
			name: "ten digit run not starting 6-9 is an account",
			text: "use 1234567890 as reference",
			kind: domain.KindBankAccount,
			want: []string{"1234567890"},
		},
		{
			name: "landline length run is a phone",
			text: "call our helpline 04412345 for help",
			kind: domain.KindPhoneNumber,
			want: []string{"04412345"},
		},
		{
			name: "short digit runs ignored",
			text: "send Rs.500 by 5 pm",
			kind: domain.KindBankAccount,
			want: []string{},
		},
		{
			name: "url with trailing punctuation",
			text: "verify at http://sbi-secure-verify.com/kyc.",
			kind: domain.KindURL,
			want: []string{"http://sbi-secure-verify.com/kyc"},
		},
		{
			name: "bare www link",
			text: "go to www.fake-sbi.com, hurry",
			kind: domain.KindURL,
			want: []string{"www.fake-sbi.com"},
		},
		{
			name: "email lowercased",
			text: "write to Support@Fraud-Desk.com today",
			kind: domain.KindEmail,
			want: []string{"support@fraud-desk.com"},
		},
		{
			name: "upi handle lowercased",
			text: "pay Scammer.Fraud@fakebank now",
			kind: domain.KindUPIHandle,
			want: []string{"scammer.fraud@fakebank"},
		},
		{
			name: "email is not a upi handle",
			text: "send it to help@bank.com",
			kind: domain.KindUPIHandle,
			want: []string{},
		},
		{
			name: "numeric upi handle consumes its digits",
			text: "pay to 9876543210@ybl please",
			kind: domain.KindPhoneNumber,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := values(Extract(tt.text), tt.kind)
			if len(got) != len(tt.want) {
				t.Fatalf("Extract(%q) %s = %v, want %v", tt.text, tt.kind, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Extract(%q) %s = %v, want %v", tt.text, tt.kind, got, tt.want)
				}
			}
		})
	}
}

func TestExtractDigitsInsideURLNotDoubleCounted(t *testing.T) {
	in := Extract("click http://pay.example.com/9876543210 to continue")

	if got := values(in, domain.KindURL); len(got) != 1 {
		t.Fatalf("urls = %v, want one", got)
	}
	if got := values(in, domain.KindPhoneNumber); len(got) != 0 {
		t.Errorf("phone numbers = %v, digits inside a url must not count", got)
	}
	if got := values(in, domain.KindBankAccount); len(got) != 0 {
		t.Errorf("bank accounts = %v, digits inside a url must not count", got)
	}
}

func TestExtractKeywords(t *testing.T) {
	in := Extract("URGENT: verify your account or face legal action")

	got := values(in, domain.KindKeyword)
	for _, want := range []string{"urgent", "verify", "account", "legal action"} {
		found := false
		for _, v := range got {
			if v == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("keywords = %v, missing %q", got, want)
		}
	}
}

func TestExtractKeywordsWholeWordOnly(t *testing.T) {
	in := Extract("I know the sender wonders about this")

	for _, v := range values(in, domain.KindKeyword) {
		if v == "now" || v == "won" {
			t.Errorf("keyword %q matched inside a larger word", v)
		}
	}
}

func TestExtractNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"+++",
		"@@@@",
		strings.Repeat("9", 400),
		"\x80\xfe invalid utf8 \xff",
		"минуты срочно 9876543210",
	}
	for _, text := range inputs {
		in := Extract(text)
		if in == nil {
			t.Errorf("Extract(%q) returned nil set", text)
		}
	}
}

func TestExtractIsIdempotentAcrossMerges(t *testing.T) {
	text := "pay scammer@upi or call +918812345678, see http://bad.example"

	session := make(domain.Intelligence, 0)
	session.Merge(Extract(text))
	first := len(session)
	session.Merge(Extract(text))

	if len(session) != first {
		t.Errorf("re-extracting the same text grew the set from %d to %d", first, len(session))
	}
}

func TestExtractContextSnippets(t *testing.T) {
	in := Extract("please transfer the full amount to account 12345678901234 before tonight")

	for _, f := range in {
		if f.Kind == domain.KindBankAccount {
			if f.Context == "" || !strings.Contains(f.Context, "12345678901234") {
				t.Errorf("context = %q, want window around the match", f.Context)
			}
			return
		}
	}
	t.Fatal("no bank account finding")
}
