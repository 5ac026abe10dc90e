package models

import "time"

// ExpiryStatus describes how a document's expiry date relates to "today".
type ExpiryStatus string

const (
	ExpiryExpired      ExpiryStatus = "expired"
	ExpiryExpiringSoon ExpiryStatus = "expiring_soon"
	ExpiryValid        ExpiryStatus = "valid"
	ExpiryUnknown      ExpiryStatus = "unknown"
)

// ExpiringSoonWindowDays is the inclusive number of days before expiry during
// which a document is flagged as expiring soon. Business-rule assumption
// inherited from the registry's operators, not an external requirement.
const ExpiringSoonWindowDays = 30

// ExpiryInfo is the derived expiry annotation for a record. DaysRemaining is
// nil when no expiry date is recorded.
type ExpiryInfo struct {
	Status        ExpiryStatus `json:"status"`
	DaysRemaining *int         `json:"days_remaining,omitempty"`
}

// EvaluateExpiry derives the expiry status of a document relative to today.
// Both operands are truncated to calendar dates before subtracting, so the
// result is stable across the whole day regardless of clock time. Any
// presentation layer recomputing this must apply the same truncation.
func EvaluateExpiry(expiry *Date, today time.Time) ExpiryInfo {
	if expiry == nil {
		return ExpiryInfo{Status: ExpiryUnknown}
	}

	days := DateOf(today).DaysUntil(*expiry)
	info := ExpiryInfo{DaysRemaining: &days}
	switch {
	case days < 0:
		info.Status = ExpiryExpired
	case days <= ExpiringSoonWindowDays:
		info.Status = ExpiryExpiringSoon
	default:
		info.Status = ExpiryValid
	}
	return info
}
