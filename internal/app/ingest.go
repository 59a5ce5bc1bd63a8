package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/extract"
	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/record"
	"github.com/fastcraft-ai/pawmate-ai-results/pkg/logger"
	"github.com/fastcraft-ai/pawmate-ai-results/pkg/metrics"
)

// IssueMetadata identifies the GitHub issue a submission arrived through.
type IssueMetadata struct {
	IssueNumber any    `json:"issue_number"`
	IssueURL    string `json:"issue_url"`
	IssueTitle  string `json:"issue_title"`
	Submitter   string `json:"submitter"`
	CreatedAt   string `json:"created_at"`
}

// ExtractionInfo reports which technique located the payload.
type ExtractionInfo struct {
	Method  string `json:"method"`
	Success bool   `json:"success"`
}

// SyntaxInfo reports whether the payload parsed.
type SyntaxInfo struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// IngestEnvelope is the ingest stage's structured output.
type IngestEnvelope struct {
	Success       bool           `json:"success"`
	IssueMetadata IssueMetadata  `json:"issue_metadata"`
	Extraction    ExtractionInfo `json:"extraction"`
	Validation    SyntaxInfo     `json:"validation"`
	ResultData    any            `json:"result_data,omitempty"`
	Error         string         `json:"error,omitempty"`

	rec record.Record
}

// Record returns the parsed record for the next stage. Only meaningful
// when Success is true.
func (e *IngestEnvelope) Record() record.Record { return e.rec }

// Ingest reads a GitHub issue event, extracts the embedded payload, parses
// it, and stamps ingest provenance onto the record.
func (s *Service) Ingest(ctx context.Context, event []byte) *IngestEnvelope {
	env := &IngestEnvelope{
		Extraction: ExtractionInfo{Method: string(extract.MethodNone)},
	}

	eventDoc, err := record.Decode(event)
	if err != nil {
		env.Error = fmt.Sprintf("Invalid event JSON: %v", err)
		return env
	}
	issue := eventDoc.Get("issue")
	env.IssueMetadata = issueMetadata(issue)
	body, _ := issue.Get("body").Str()

	payload, err := s.extractor.Extract(body)
	env.Extraction.Method = string(payload.Method)
	if err != nil && errors.Is(err, extract.ErrNoPayload) {
		metrics.RecordExtractionFailure()
		env.Error = fmt.Sprintf("Failed to extract JSON from issue body. Extraction method attempted: %s", payload.Method)
		s.log.Warn(ctx, "extraction failed", logger.Any("issue_number", env.IssueMetadata.IssueNumber))
		return env
	}
	metrics.RecordExtraction(string(payload.Method))

	rec, err := record.Parse([]byte(payload.Text))
	if err != nil {
		metrics.RecordSyntaxFailure()
		env.Extraction.Success = true
		env.Validation.Error = syntaxMessage(err)
		env.Error = fmt.Sprintf("JSON validation failed: %s", env.Validation.Error)
		s.log.Warn(ctx, "payload rejected",
			logger.String("method", string(payload.Method)),
			logger.String("reason", env.Validation.Error))
		return env
	}

	s.stampIngest(ctx, rec)

	env.Success = true
	env.Extraction.Success = true
	env.Validation.Valid = true
	env.ResultData = rec.Interface()
	env.rec = rec
	s.log.Info(ctx, "payload ingested",
		logger.String("method", string(payload.Method)),
		logger.Any("issue_number", env.IssueMetadata.IssueNumber))
	return env
}

// stampIngest records when and under which id the record entered the
// pipeline.
func (s *Service) stampIngest(ctx context.Context, rec record.Record) {
	stamp := map[string]any{
		"ingest_id":          s.newID(),
		"ingested_timestamp": record.FormatTimestamp(s.now()),
	}
	for key, val := range stamp {
		if err := rec.Set([]string{record.FieldResultData, "processing", key}, val); err != nil {
			s.log.Warn(ctx, "cannot stamp ingest provenance",
				logger.String("field", key), logger.Error(err))
			return
		}
	}
}

func issueMetadata(issue record.Value) IssueMetadata {
	meta := IssueMetadata{}
	if n, ok := issue.Get("number").Int(); ok {
		meta.IssueNumber = n
	}
	meta.IssueURL, _ = issue.Get("html_url").Str()
	meta.IssueTitle, _ = issue.Get("title").Str()
	meta.Submitter, _ = issue.At("user", "login").Str()
	meta.CreatedAt, _ = issue.Get("created_at").Str()
	return meta
}

func syntaxMessage(err error) string {
	var syn *record.SyntaxError
	if errors.As(err, &syn) {
		return fmt.Sprintf("Invalid JSON syntax: %s at line %d, column %d", syn.Msg, syn.Line, syn.Column)
	}
	return err.Error()
}
