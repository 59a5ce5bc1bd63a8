package validate

import (
	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/record"
)

// Pass inspects a record tree and returns its defects.
type Pass func(record.Value) []Defect

// ExtraPass is an auxiliary check over the raw decoded document, typically
// a compiled schema descriptor. A returned error degrades to a warning.
type ExtraPass func(doc any) ([]Defect, error)

// DefaultPasses returns the explicit passes in report order.
func DefaultPasses() []Pass {
	return []Pass{CheckRequired, CheckTypes, CheckEnums, CheckFormats, CheckRanges}
}

// Validator runs every pass over a record and aggregates the defects.
type Validator struct {
	version string
	passes  []Pass
	extra   ExtraPass
}

// Option configures a Validator.
type Option func(*Validator)

// WithVersion stamps reports with the given validator version.
func WithVersion(v string) Option {
	return func(val *Validator) {
		val.version = v
	}
}

// WithPasses replaces the default pass list.
func WithPasses(passes ...Pass) Option {
	return func(val *Validator) {
		val.passes = passes
	}
}

// WithExtraPass adds an auxiliary document-level pass whose findings are
// folded in after the explicit passes, deduplicated by field path and
// category.
func WithExtraPass(p ExtraPass) Option {
	return func(val *Validator) {
		val.extra = p
	}
}

// New builds a Validator with the default passes.
func New(opts ...Option) *Validator {
	v := &Validator{
		version: "1.0.0",
		passes:  DefaultPasses(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Version returns the validator version stamped on reports.
func (v *Validator) Version() string { return v.version }

// Validate runs every pass and returns the aggregated report. Passes never
// short-circuit: a record failing the required pass still gets type, enum,
// format, and range findings for whatever structure is present.
func (v *Validator) Validate(rec record.Record) *Report {
	report := newReport(v.version)
	root := rec.Root()

	for _, pass := range v.passes {
		report.Add(pass(root)...)
	}

	if v.extra != nil {
		extras, err := v.extra(root.Interface())
		if err != nil {
			report.AddWarning(err.Error())
			return report
		}
		for _, d := range extras {
			if report.Has(d.FieldPath, d.Category) {
				continue
			}
			report.Add(d)
		}
	}

	return report
}
