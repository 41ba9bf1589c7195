// Package engine runs rules against a profile and assembles the report.
package engine

import (
	"errors"
	"fmt"

	"github.com/dfguard/dfguard/internal/domain"
	"github.com/dfguard/dfguard/internal/domain/rules"
)

// RuleEngine holds an ordered rule list per category. It is immutable after
// construction and safe to reuse across runs.
type RuleEngine struct {
	buckets map[domain.Category][]domain.Rule
}

// New groups rules by category, keeping their registration order.
// Rule names must be unique and non-empty.
func New(rs ...domain.Rule) (*RuleEngine, error) {
	e := &RuleEngine{buckets: make(map[domain.Category][]domain.Rule, len(domain.Categories))}
	seen := make(map[string]bool, len(rs))
	for _, r := range rs {
		if r == nil {
			return nil, errors.New("nil rule")
		}
		name := r.Name()
		if name == "" {
			return nil, fmt.Errorf("rule %T has no name", r)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate rule name %q", name)
		}
		if !r.Category().Valid() {
			return nil, fmt.Errorf("rule %q has unknown category %q", name, r.Category())
		}
		seen[name] = true
		e.buckets[r.Category()] = append(e.buckets[r.Category()], r)
	}
	return e, nil
}

// Default returns an engine loaded with the built-in rules.
func Default() *RuleEngine {
	e, err := New(rules.Builtin()...)
	if err != nil {
		panic(fmt.Sprintf("built-in rules: %v", err))
	}
	return e
}

// Rules returns the rules registered for a category, in execution order.
func (e *RuleEngine) Rules(c domain.Category) []domain.Rule {
	out := make([]domain.Rule, len(e.buckets[c]))
	copy(out, e.buckets[c])
	return out
}

// Run evaluates every rule, category by category, against p. A rule that
// errors, panics or returns an unusable finding becomes a warning result;
// Run itself only fails when the profile is invalid.
func (e *RuleEngine) Run(p *domain.Profile) (*domain.ValidationReport, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return domain.NewValidationReport(p,
		e.runBucket(domain.CategoryStructural, p),
		e.runBucket(domain.CategoryQuality, p),
		e.runBucket(domain.CategoryNumeric, p),
	), nil
}

func (e *RuleEngine) runBucket(c domain.Category, p *domain.Profile) []domain.ValidationResult {
	var results []domain.ValidationResult
	for _, r := range e.buckets[c] {
		if res, ok := evaluate(r, p); ok {
			results = append(results, res)
		}
	}
	return results
}

// evaluate runs one rule and converts its outcome into a tagged result.
// ok is false only when the rule ran cleanly and stayed silent.
func evaluate(r domain.Rule, p *domain.Profile) (res domain.ValidationResult, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			res, ok = domain.FailedResult(r.Name(), fmt.Errorf("panic: %v", rec)), true
		}
	}()

	outcome, err := r.Evaluate(p)
	if err != nil {
		return domain.FailedResult(r.Name(), err), true
	}
	finding, fired := outcome.Finding()
	if !fired {
		return domain.ValidationResult{}, false
	}
	if finding.Message == "" {
		return domain.FailedResult(r.Name(), errors.New("returned a finding without a message")), true
	}
	return domain.NewResult(r.Name(), finding), true
}
