package models

import "time"

// Lexeme lookup outcome constants
const (
	OutcomeResolved = "resolved"
	OutcomeFallback = "fallback"
)

// WordLookup represents a per-word lookup count by outcome.
type WordLookup struct {
	Word       string
	Outcome    string
	Count      int64
	LastSeenAt time.Time
}
