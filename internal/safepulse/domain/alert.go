package domain

// Alert is a single SOS request. It is never persisted.
type Alert struct {
	SenderPhone string
	SenderName  string
	Contacts    []string
	Latitude    *float64
	Longitude   *float64
}

// Outcome statuses for a single contact.
const (
	OutcomeSent      = "sent"
	OutcomeSimulated = "simulated"
	OutcomeFailed    = "failed"
	OutcomeInvalid   = "invalid"

	// OutcomeDuplicate marks an entry that normalizes to a contact listed
	// earlier in the same alert. It is not sent twice.
	OutcomeDuplicate = "duplicate"
)

// Outcome reports what happened for one contact of an alert.
type Outcome struct {
	Contact    string `json:"contact"`
	Status     string `json:"status"`
	ProviderID string `json:"provider_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

// DispatchResult summarizes an alert fan-out. Outcomes holds one entry per
// non-blank contact, in request order.
type DispatchResult struct {
	Provider  string    `json:"provider"`
	Simulated bool      `json:"simulated"`
	Message   string    `json:"message"`
	Sent      int       `json:"sent"`
	Failed    int       `json:"failed"`
	Skipped   int       `json:"skipped"`
	Outcomes  []Outcome `json:"outcomes"`
}
