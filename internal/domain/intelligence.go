package domain

// FindingKind classifies one extracted intelligence value
type FindingKind string

const (
	KindBankAccount FindingKind = "bank_account"
	KindUPIHandle   FindingKind = "upi_handle"
	KindPhoneNumber FindingKind = "phone_number"
	KindURL         FindingKind = "url"
	KindEmail       FindingKind = "email"
	KindKeyword     FindingKind = "keyword"
)

// Finding is one normalized piece of extracted intelligence
type Finding struct {
	Kind    FindingKind `json:"kind"`
	Value   string      `json:"value"`
	Context string      `json:"context,omitempty"`
}

// Intelligence is the cumulative finding set of a session. Order is first
// occurrence; the set never contains two findings with the same (kind, value).
type Intelligence []Finding

// Has reports whether the set already contains (kind, value).
func (in Intelligence) Has(kind FindingKind, value string) bool {
	for _, f := range in {
		if f.Kind == kind && f.Value == value {
			return true
		}
	}
	return false
}

// HasKind reports whether any finding of the given kind is present.
func (in Intelligence) HasKind(kind FindingKind) bool {
	for _, f := range in {
		if f.Kind == kind {
			return true
		}
	}
	return false
}

// Add appends the finding unless its (kind, value) is already present.
// Returns true when the set grew.
func (in *Intelligence) Add(f Finding) bool {
	if f.Value == "" || in.Has(f.Kind, f.Value) {
		return false
	}
	*in = append(*in, f)
	return true
}

// Merge unions other into the set, keeping first-seen order. Returns the
// number of findings actually added.
func (in *Intelligence) Merge(other Intelligence) int {
	added := 0
	for _, f := range other {
		if in.Add(f) {
			added++
		}
	}
	return added
}

// Values returns the values of all findings of one kind, in set order.
func (in Intelligence) Values(kind FindingKind) []string {
	out := make([]string, 0)
	for _, f := range in {
		if f.Kind == kind {
			out = append(out, f.Value)
		}
	}
	return out
}

// ActionableCount counts findings that identify the scammer's payment
// infrastructure or contact points: bank accounts, UPI handles, phone numbers
// and links. Emails and keyword matches are corroborating signals and do not
// advance the reporting trigger.
func (in Intelligence) ActionableCount() int {
	n := 0
	for _, f := range in {
		switch f.Kind {
		case KindBankAccount, KindUPIHandle, KindPhoneNumber, KindURL:
			n++
		}
	}
	return n
}

// Summary groups the set into the reporting wire shape.
func (in Intelligence) Summary() IntelligenceSummary {
	return IntelligenceSummary{
		BankAccounts:       in.Values(KindBankAccount),
		UPIIDs:             in.Values(KindUPIHandle),
		PhoneNumbers:       in.Values(KindPhoneNumber),
		PhishingLinks:      in.Values(KindURL),
		EmailAddresses:     in.Values(KindEmail),
		SuspiciousKeywords: in.Values(KindKeyword),
	}
}

// IntelligenceSummary is the grouped wire representation used by the chat
// response and the final report payload
type IntelligenceSummary struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	PhishingLinks      []string `json:"phishingLinks"`
	EmailAddresses     []string `json:"emailAddresses"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// Total returns the number of grouped values across all categories.
func (s IntelligenceSummary) Total() int {
	return len(s.BankAccounts) + len(s.UPIIDs) + len(s.PhoneNumbers) +
		len(s.PhishingLinks) + len(s.EmailAddresses) + len(s.SuspiciousKeywords)
}
