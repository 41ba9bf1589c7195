package rules

import "github.com/dfguard/dfguard/internal/domain"

// Builtin returns the built-in rules in registration order.
func Builtin() []domain.Rule {
	return []domain.Rule{
		NonEmpty{},
		DuplicateRows{},
		Whitespace{},
		NullRatio{},
		TypeMismatch{},
		NumericOutlier{},
	}
}
