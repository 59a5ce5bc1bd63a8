package validate

import (
	"fmt"

	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/record"
)

// Required field sets of the identity, metric, and submission sections.
var (
	runIdentityFields = []string{
		"tool_name", "tool_version", "run_id", "run_number",
		"target_model", "api_style", "spec_reference",
		"workspace_path", "run_environment",
	}
	generationMetricFields = []string{
		"llm_model", "start_timestamp", "end_timestamp", "duration_minutes",
		"clarifications_count", "interventions_count", "reruns_count",
	}
	acceptanceFields  = []string{"pass_count", "fail_count", "not_run_count", "passrate"}
	apiArtifactFields = []string{"contract_artifact_path", "run_instructions_path"}
	uiArtifactFields  = []string{"ui_source_path", "ui_run_summary_path"}
	submissionFields  = []string{"submitted_timestamp", "submitted_by", "submission_method"}
)

// missing treats an absent or explicitly-null value as not provided.
func missing(v record.Value) bool { return !v.Exists() || v.IsNull() }

// CheckRequired validates presence of every mandated field and section.
func CheckRequired(root record.Value) []Defect {
	var ds []Defect

	field := func(parent record.Value, base, name string) {
		if missing(parent.Get(name)) {
			ds = append(ds, Defect{
				Category:  CategoryRequired,
				FieldPath: join(base, name),
				Message:   fmt.Sprintf("Missing required field '%s'", name),
				Code:      CodeRequiredFieldMissing,
			})
		}
	}
	section := func(parent record.Value, base, name string) record.Value {
		v := parent.Get(name)
		if missing(v) {
			ds = append(ds, Defect{
				Category:  CategoryRequired,
				FieldPath: join(base, name),
				Message:   fmt.Sprintf("Missing required section '%s'", name),
				Code:      CodeRequiredSectionMissing,
			})
		}
		return v
	}

	field(root, "", record.FieldSchemaVersion)

	resultData := root.Get(record.FieldResultData)
	if missing(resultData) {
		ds = append(ds, Defect{
			Category:  CategoryRequired,
			FieldPath: record.FieldResultData,
			Message:   "Missing required field 'result_data'",
			Code:      CodeRequiredFieldMissing,
		})
		return ds // nothing below is reachable
	}
	base := record.FieldResultData

	if identity := section(resultData, base, "run_identity"); identity.Exists() {
		for _, name := range runIdentityFields {
			field(identity, join(base, "run_identity"), name)
		}
	}

	impls := section(resultData, base, "implementations")
	if impls.Exists() {
		implBase := join(base, "implementations")
		api, ui := impls.Get("api"), impls.Get("ui")
		if !api.Exists() && !ui.Exists() {
			ds = append(ds, Defect{
				Category:  CategoryRequired,
				FieldPath: implBase,
				Message:   "At least one of 'api' or 'ui' must be present",
				Code:      CodeRequiredImplementationMissing,
			})
		}

		if api.Exists() {
			apiBase := join(implBase, "api")
			if metrics := section(api, apiBase, "generation_metrics"); metrics.Exists() {
				for _, name := range generationMetricFields {
					field(metrics, join(apiBase, "generation_metrics"), name)
				}
			}
			if acceptance := section(api, apiBase, "acceptance"); acceptance.Exists() {
				for _, name := range acceptanceFields {
					field(acceptance, join(apiBase, "acceptance"), name)
				}
			}
			if artifacts := section(api, apiBase, "artifacts"); artifacts.Exists() {
				for _, name := range apiArtifactFields {
					field(artifacts, join(apiBase, "artifacts"), name)
				}
			}
		}

		if ui.Exists() {
			uiBase := join(implBase, "ui")
			if metrics := section(ui, uiBase, "generation_metrics"); metrics.Exists() {
				for _, name := range generationMetricFields {
					field(metrics, join(uiBase, "generation_metrics"), name)
				}
			}
			field(ui, uiBase, "build_success")
			if artifacts := section(ui, uiBase, "artifacts"); artifacts.Exists() {
				for _, name := range uiArtifactFields {
					field(artifacts, join(uiBase, "artifacts"), name)
				}
			}
		}
	}

	if submission := section(resultData, base, "submission"); submission.Exists() {
		for _, name := range submissionFields {
			field(submission, join(base, "submission"), name)
		}
	}

	return ds
}
