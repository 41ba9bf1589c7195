package domain

import "fmt"

// Category partitions rules by concern.
type Category string

const (
	CategoryStructural Category = "structural"
	CategoryQuality    Category = "quality"
	CategoryNumeric    Category = "numeric"
)

// Categories lists the rule categories in execution order.
var Categories = []Category{CategoryStructural, CategoryQuality, CategoryNumeric}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Rule is a stateless check over a profile. Evaluate must not mutate the profile.
// A returned error is reported as a failed rule; it never aborts a run.
type Rule interface {
	Name() string
	Category() Category
	Evaluate(p *Profile) (Outcome, error)
}

// Finding is the raw payload of a rule, before the engine tags it with the rule name.
type Finding struct {
	Warning bool
	Message string
	Details Details
}

// Outcome is either a Finding or nothing. Rules that always report a fact
// return Fire; rules that only report problems return Silent when clean.
type Outcome struct {
	finding Finding
	fired   bool
}

// Fire wraps a finding into an outcome.
func Fire(f Finding) Outcome {
	return Outcome{finding: f, fired: true}
}

// Silent is the outcome of a rule with nothing to report.
func Silent() Outcome {
	return Outcome{}
}

// Finding returns the payload and whether the rule fired.
func (o Outcome) Finding() (Finding, bool) {
	return o.finding, o.fired
}

// ValidationResult is the engine-tagged outcome of one rule evaluation.
type ValidationResult struct {
	RuleName string
	Warning  bool
	Message  string
	Details  Details

	// Failed marks results synthesized from a rule that errored or panicked.
	Failed bool
}

// NewResult copies a finding into a result owned by the named rule.
func NewResult(ruleName string, f Finding) ValidationResult {
	return ValidationResult{
		RuleName: ruleName,
		Warning:  f.Warning,
		Message:  f.Message,
		Details:  NormalizeDetails(f.Details),
	}
}

// FailedResult is the warning that stands in for a rule that could not run.
func FailedResult(ruleName string, err error) ValidationResult {
	return ValidationResult{
		RuleName: ruleName,
		Warning:  true,
		Message:  fmt.Sprintf("Rule '%s' failed", ruleName),
		Details:  Details{"error": err.Error()},
		Failed:   true,
	}
}
