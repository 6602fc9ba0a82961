package fix

import (
	"testing"

	"github.com/apexfix/apexfix-core/internal/priority"
	"github.com/apexfix/apexfix-core/internal/types"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"never", ModeNever, false},
		{"Conditional", ModeConditional, false},
		{"ALWAYS", ModeAlways, false},
		{" always ", ModeAlways, false},
		{"sometimes", ModeNever, true},
		{"", ModeNever, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		rule string
		tier priority.Tier
		want bool
	}{
		{"SEC001", priority.TierCritical, true},
		{"SEC002", priority.TierCritical, true},
		{"SEC003", priority.TierCritical, false},
		{"QC001", priority.TierImportant, false},
		{"QC002", priority.TierImportant, false},
		{"QC003", priority.TierCleanup, true},
	}

	for _, tt := range tests {
		f := types.NewFinding(tt.rule, "", types.SeverityCritical, "A.cls", 1, 1, "")
		if got := p.Allows(tt.tier, f); got != tt.want {
			t.Errorf("Allows(%v, %s) = %v, want %v", tt.tier, tt.rule, got, tt.want)
		}
	}
}

func TestPolicy_SetMode(t *testing.T) {
	p := DefaultPolicy()
	p.SetMode(priority.TierImportant, ModeAlways)

	f := types.NewFinding("QC001", "", types.SeverityModerate, "A.cls", 1, 1, "")
	if !p.Allows(priority.TierImportant, f) {
		t.Error("Important tier set to always should allow QC001")
	}

	p.SetMode(priority.TierCleanup, ModeNever)
	f = types.NewFinding("QC003", "", types.SeverityLow, "A.cls", 1, 1, "")
	if p.Allows(priority.TierCleanup, f) {
		t.Error("Cleanup tier set to never should block QC003")
	}
}
