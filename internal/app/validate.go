package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/record"
	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/validate"
	"github.com/fastcraft-ai/pawmate-ai-results/pkg/logger"
	"github.com/fastcraft-ai/pawmate-ai-results/pkg/metrics"
)

// ValidationEnvelope is the validation stage's structured output: the full
// report plus, on success, the record with validation provenance stamped.
type ValidationEnvelope struct {
	*validate.Report
	File          string `json:"file,omitempty"`
	ValidatedData any    `json:"validated_data,omitempty"`

	rec record.Record
}

// Record returns the validated record for the next stage. Only meaningful
// when the report is valid.
func (e *ValidationEnvelope) Record() record.Record { return e.rec }

// Validate runs the schema validator and, when the record is clean, stamps
// validation provenance onto it.
func (s *Service) Validate(ctx context.Context, rec record.Record) *ValidationEnvelope {
	report := s.validator.Validate(rec)
	env := &ValidationEnvelope{Report: report}

	for _, cat := range validate.Categories() {
		metrics.RecordDefects(string(cat), len(report.ByCategory[cat]))
	}
	if !report.Valid {
		metrics.RecordRejected()
		s.log.Warn(ctx, "record rejected", logger.Int("defects", report.ErrorCount))
		return env
	}

	s.stampValidation(ctx, rec)
	metrics.RecordValidated()

	env.ValidatedData = rec.Interface()
	env.rec = rec
	s.log.Debug(ctx, "record validated", logger.String("version", report.ValidatorVersion))
	return env
}

func (s *Service) stampValidation(ctx context.Context, rec record.Record) {
	stamp := map[string]any{
		"validated_at":      record.FormatTimestamp(s.now()),
		"validator_version": s.validator.Version(),
	}
	for key, val := range stamp {
		if err := rec.Set([]string{record.FieldResultData, "validation_metadata", key}, val); err != nil {
			s.log.Warn(ctx, "cannot stamp validation provenance",
				logger.String("field", key), logger.Error(err))
			return
		}
	}
}

// FileReport is one file's outcome in a batch validation.
type FileReport struct {
	File       string            `json:"file"`
	FilePath   string            `json:"file_path"`
	Valid      bool              `json:"valid"`
	ErrorCount int               `json:"error_count"`
	Errors     []validate.Defect `json:"errors"`
}

// BatchEnvelope summarizes a batch validation over many files.
type BatchEnvelope struct {
	Success          bool         `json:"success"`
	Message          string       `json:"message,omitempty"`
	TotalFiles       int          `json:"total_files"`
	ValidFiles       int          `json:"valid_files"`
	InvalidFiles     int          `json:"invalid_files"`
	Files            []FileReport `json:"files"`
	ValidatorVersion string       `json:"validator_version"`
	Error            string       `json:"error,omitempty"`
}

// ValidateDir validates every file in dir matching pattern (non-recursive).
func (s *Service) ValidateDir(ctx context.Context, dir, pattern string) *BatchEnvelope {
	env := &BatchEnvelope{
		Files:            []FileReport{},
		ValidatorVersion: s.validator.Version(),
	}
	if pattern == "" {
		pattern = "*.json"
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		env.Error = fmt.Sprintf("Bad pattern %q: %v", pattern, err)
		return env
	}
	env.Success = true
	if len(matches) == 0 {
		env.Message = fmt.Sprintf("No files matching pattern '%s' found in %s", pattern, dir)
		return env
	}

	for _, path := range matches {
		env.add(s.validateFile(ctx, path))
	}
	return env
}

// ValidateTree validates every record stored in the partitioned tree.
func (s *Service) ValidateTree(ctx context.Context) *BatchEnvelope {
	env := &BatchEnvelope{
		Files:            []FileReport{},
		ValidatorVersion: s.validator.Version(),
	}
	if s.store == nil {
		env.Error = "no store configured"
		return env
	}

	err := s.store.Walk(ctx, func(path string, rec record.Record, err error) error {
		if err != nil {
			env.add(FileReport{
				File:       filepath.Base(path),
				FilePath:   path,
				ErrorCount: 1,
				Errors: []validate.Defect{{
					Category:  validate.CategoryRequired,
					FieldPath: "root",
					Message:   err.Error(),
					Code:      "UNREADABLE_FILE",
				}},
			})
			return nil
		}
		report := s.validator.Validate(rec)
		env.add(FileReport{
			File:       filepath.Base(path),
			FilePath:   path,
			Valid:      report.Valid,
			ErrorCount: report.ErrorCount,
			Errors:     report.Errors,
		})
		return nil
	})
	if err != nil {
		env.Error = err.Error()
		return env
	}
	env.Success = true
	return env
}

func (s *Service) validateFile(ctx context.Context, path string) FileReport {
	rep := FileReport{File: filepath.Base(path), FilePath: path, Errors: []validate.Defect{}}

	rec, err := readRecordFile(path)
	if err != nil {
		rep.ErrorCount = 1
		rep.Errors = append(rep.Errors, validate.Defect{
			Category:  validate.CategoryRequired,
			FieldPath: "root",
			Message:   err.Error(),
			Code:      "UNREADABLE_FILE",
		})
		return rep
	}

	report := s.validator.Validate(rec)
	rep.Valid = report.Valid
	rep.ErrorCount = report.ErrorCount
	rep.Errors = report.Errors
	return rep
}

func (e *BatchEnvelope) add(rep FileReport) {
	e.Files = append(e.Files, rep)
	e.TotalFiles++
	if rep.Valid {
		e.ValidFiles++
	} else {
		e.InvalidFiles++
	}
}
