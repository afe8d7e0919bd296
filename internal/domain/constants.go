package domain

// Default values
const (
	DefaultSeatsRequired  = 1
	DefaultMaxLabCapacity = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Occupancy view labels
const (
	LabStatusActive   = "Active"
	LabStatusDisabled = "Disabled"
	BadgeActive       = "🟢"
	BadgeDisabled     = "🔴"
)

// Validation constants
const (
	MaxLabNameLength       = 100
	MaxDisableReasonLength = 500
)
