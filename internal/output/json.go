package output

import (
	"encoding/json"
	"io"

	"github.com/apexfix/apexfix-core/internal/priority"
)

// JSONRenderer renders the full pipeline report in JSON format
type JSONRenderer struct{}

// jsonTier mirrors one tier report with a stable key, since the in-memory
// tier map is keyed by the Tier enum and excluded from marshaling
type jsonTier struct {
	Key    string      `json:"tier"`
	Report interface{} `json:"report"`
}

// Render writes the pipeline report in JSON format
func (r *JSONRenderer) Render(w io.Writer, report *Report) error {
	out := struct {
		*Report
		FailOn string     `json:"fail_on"`
		Tiers  []jsonTier `json:"tiers,omitempty"`
	}{
		Report: report,
		FailOn: report.FailOn.String(),
	}

	if report.Prioritized != nil {
		for _, tier := range priority.Order {
			if tr := report.Prioritized.Tiers[tier]; tr != nil {
				out.Tiers = append(out.Tiers, jsonTier{Key: tier.Key(), Report: tr})
			}
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
