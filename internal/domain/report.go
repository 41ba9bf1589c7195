package domain

import (
	"encoding/json"
	"strings"

	"github.com/dfguard/dfguard/internal/version"
)

// Status is the overall verdict of a report.
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// ValidationReport is the outcome of one engine run. It is never mutated
// after construction; accessors hand out copies.
type ValidationReport struct {
	profile    *Profile
	structural []ValidationResult
	quality    []ValidationResult
	numeric    []ValidationResult
}

// NewValidationReport assembles a report from per-category results.
func NewValidationReport(p *Profile, structural, quality, numeric []ValidationResult) *ValidationReport {
	return &ValidationReport{
		profile:    p,
		structural: clone(structural),
		quality:    clone(quality),
		numeric:    clone(numeric),
	}
}

func clone(results []ValidationResult) []ValidationResult {
	out := make([]ValidationResult, len(results))
	copy(out, results)
	return out
}

// Profile returns the profile the report was produced from.
func (r *ValidationReport) Profile() *Profile { return r.profile }

func (r *ValidationReport) Structural() []ValidationResult { return clone(r.structural) }
func (r *ValidationReport) Quality() []ValidationResult    { return clone(r.quality) }
func (r *ValidationReport) Numeric() []ValidationResult    { return clone(r.numeric) }

// Results returns the results of one category.
func (r *ValidationReport) Results(c Category) []ValidationResult {
	switch c {
	case CategoryStructural:
		return r.Structural()
	case CategoryQuality:
		return r.Quality()
	case CategoryNumeric:
		return r.Numeric()
	default:
		return nil
	}
}

// AllResults concatenates structural, quality and numeric results.
func (r *ValidationReport) AllResults() []ValidationResult {
	all := make([]ValidationResult, 0, len(r.structural)+len(r.quality)+len(r.numeric))
	all = append(all, r.structural...)
	all = append(all, r.quality...)
	return append(all, r.numeric...)
}

// HasWarnings reports whether any result is a warning.
func (r *ValidationReport) HasWarnings() bool {
	for _, res := range r.AllResults() {
		if res.Warning {
			return true
		}
	}
	return false
}

// Status derives the verdict. A structural warning mentioning "empty" is an
// error; any other warning is a warning.
func (r *ValidationReport) Status() Status {
	for _, res := range r.structural {
		if res.Warning && strings.Contains(strings.ToLower(res.Message), "empty") {
			return StatusError
		}
	}
	if r.HasWarnings() {
		return StatusWarning
	}
	return StatusOK
}

type resultJSON struct {
	RuleName string  `json:"ruleName"`
	Message  string  `json:"message"`
	Warning  bool    `json:"warning"`
	Details  Details `json:"details"`
}

type typesJSON struct {
	Numeric int `json:"numeric"`
	Text    int `json:"text"`
	Other   int `json:"other"`
}

type summaryJSON struct {
	Rows        int       `json:"rows"`
	Columns     int       `json:"columns"`
	ColumnNames []string  `json:"columnNames"`
	Types       typesJSON `json:"types"`
}

type groupedJSON struct {
	Structural []resultJSON `json:"structural"`
	Quality    []resultJSON `json:"quality"`
	Numeric    []resultJSON `json:"numeric"`
}

type reportJSON struct {
	ValidatorVersion string       `json:"validatorVersion"`
	File             *string      `json:"file"`
	Summary          summaryJSON  `json:"summary"`
	Structural       []resultJSON `json:"structural"`
	Quality          []resultJSON `json:"quality"`
	Numeric          []resultJSON `json:"numeric"`
	Results          groupedJSON  `json:"results"`
	Status           Status       `json:"status"`
}

func serializeResults(results []ValidationResult) []resultJSON {
	out := make([]resultJSON, 0, len(results))
	for _, res := range results {
		out = append(out, resultJSON{
			RuleName: res.RuleName,
			Message:  res.Message,
			Warning:  res.Warning,
			Details:  NormalizeDetails(res.Details),
		})
	}
	return out
}

func (r *ValidationReport) document() reportJSON {
	structural := serializeResults(r.structural)
	quality := serializeResults(r.quality)
	numeric := serializeResults(r.numeric)

	doc := reportJSON{
		ValidatorVersion: version.Short(),
		Structural:       structural,
		Quality:          quality,
		Numeric:          numeric,
		Results: groupedJSON{
			Structural: structural,
			Quality:    quality,
			Numeric:    numeric,
		},
		Status: r.Status(),
	}

	if p := r.profile; p != nil {
		if p.Path != "" {
			path := p.Path
			doc.File = &path
		}
		types := p.TypeBreakdown()
		names := p.ColumnNames
		if names == nil {
			names = []string{}
		}
		doc.Summary = summaryJSON{
			Rows:        p.RowCount,
			Columns:     p.ColumnCount,
			ColumnNames: names,
			Types: typesJSON{
				Numeric: types[ClassNumeric],
				Text:    types[ClassText],
				Other:   types[ClassOther],
			},
		}
	}
	return doc
}

// MarshalJSON implements json.Marshaler with the stable report document.
func (r *ValidationReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.document())
}

// ToJSON renders the report as an indented JSON document.
func (r *ValidationReport) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r.document(), "", "  ")
}
