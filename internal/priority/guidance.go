package priority

// remediationGuidance holds the static per-rule guidance attached to rule
// groups in the prioritized report
var remediationGuidance = map[string]string{
	"SEC001": "Add Schema.sObjectType checks for isAccessible(), isCreateable(), isUpdateable(), or isDeletable() before DML operations and SOQL queries.",
	"SEC002": "Add 'with sharing' to the class declaration to enforce record-level security.",
	"SEC003": "Use bind variables or String.escapeSingleQuotes() to prevent SOQL injection attacks. Avoid concatenating user input directly into SOQL queries.",
	"QC001":  "Remove or comment out System.debug statements to improve performance and reduce log clutter.",
	"QC002":  "Refactor complex methods by extracting logic into smaller, focused methods. Reduce nesting levels and simplify conditional logic.",
	"QC003":  "Remove trailing whitespace from lines to maintain clean code.",
}

// defaultGuidance covers rules without a dedicated entry
const defaultGuidance = "Review each occurrence and remediate according to your team's coding standards."

// GuidanceFor returns the remediation guidance text for a rule
func GuidanceFor(ruleID string) string {
	if g, ok := remediationGuidance[ruleID]; ok {
		return g
	}
	return defaultGuidance
}
