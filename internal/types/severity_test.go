package types

import (
	"encoding/json"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityCritical, "Critical"},
		{SeverityHigh, "High"},
		{SeverityModerate, "Moderate"},
		{SeverityLow, "Low"},
		{SeverityInfo, "Info"},
		{Severity(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.severity.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input   string
		want    Severity
		wantErr bool
	}{
		{"Critical", SeverityCritical, false},
		{"CRITICAL", SeverityCritical, false},
		{"high", SeverityHigh, false},
		{"Moderate", SeverityModerate, false},
		{"low", SeverityLow, false},
		{"info", SeverityInfo, false},
		{"bogus", SeverityInfo, true},
		{"", SeverityInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseSeverity(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSeverity(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseSeverity(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSeverity_AtLeast(t *testing.T) {
	if !SeverityCritical.AtLeast(SeverityHigh) {
		t.Error("Critical should be at least High")
	}
	if !SeverityHigh.AtLeast(SeverityHigh) {
		t.Error("High should be at least High")
	}
	if SeverityLow.AtLeast(SeverityModerate) {
		t.Error("Low should not be at least Moderate")
	}
}

func TestSeverity_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(SeverityHigh)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"High"` {
		t.Errorf("Marshal() = %s, want %q", data, `"High"`)
	}

	var s Severity
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if s != SeverityHigh {
		t.Errorf("Unmarshal() = %v, want %v", s, SeverityHigh)
	}
}
