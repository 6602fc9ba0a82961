package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity represents the severity level of a finding
type Severity int

const (
	// SeverityInfo is informational, no action needed
	SeverityInfo Severity = iota
	// SeverityLow is a style or hygiene issue
	SeverityLow
	// SeverityModerate may affect performance or maintainability
	SeverityModerate
	// SeverityHigh is a likely defect or risky construct
	SeverityHigh
	// SeverityCritical is a security or data-access risk
	SeverityCritical
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "Critical"
	case SeverityHigh:
		return "High"
	case SeverityModerate:
		return "Moderate"
	case SeverityLow:
		return "Low"
	case SeverityInfo:
		return "Info"
	default:
		return "Unknown"
	}
}

// MarshalJSON implements json.Marshaler
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseSeverity(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity parses a string into a Severity
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(s) {
	case "CRITICAL":
		return SeverityCritical, nil
	case "HIGH":
		return SeverityHigh, nil
	case "MODERATE":
		return SeverityModerate, nil
	case "LOW":
		return SeverityLow, nil
	case "INFO":
		return SeverityInfo, nil
	default:
		return SeverityInfo, fmt.Errorf("unknown severity: %s", s)
	}
}

// AtLeast returns true if this severity is at least as severe as other
func (s Severity) AtLeast(other Severity) bool {
	return s >= other
}
