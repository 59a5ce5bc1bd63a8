package validate

import (
	"fmt"

	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/record"
)

// CheckTypes validates scalar/array/object type agreement for every field
// with a declared type, reporting expected vs. actual type names.
func CheckTypes(root record.Value) []Defect {
	var ds []Defect

	check := func(v record.Value, path, want string) {
		if missing(v) {
			return
		}
		if !v.Is(want) {
			ds = append(ds, Defect{
				Category:  CategoryType,
				FieldPath: path,
				Message:   fmt.Sprintf("Type mismatch: expected %s, got %s", want, v.TypeName()),
				Code:      CodeTypeMismatch,
			})
		}
	}

	check(root.Get("schema_version"), "schema_version", "string")

	resultData := root.Get(record.FieldResultData)
	if resultData.Kind() != record.Object {
		return ds
	}
	base := record.FieldResultData

	if identity := resultData.Get("run_identity"); identity.Kind() == record.Object {
		idBase := join(base, "run_identity")
		for _, name := range []string{
			"tool_name", "tool_version", "run_id", "target_model",
			"api_style", "spec_reference", "workspace_path", "run_environment",
		} {
			check(identity.Get(name), join(idBase, name), "string")
		}
		check(identity.Get("run_number"), join(idBase, "run_number"), "integer")
	}

	impls := resultData.Get("implementations")
	if impls.Kind() == record.Object {
		implBase := join(base, "implementations")

		if api := impls.Get("api"); api.Kind() == record.Object {
			apiBase := join(implBase, "api")
			if metrics := api.Get("generation_metrics"); metrics.Kind() == record.Object {
				mBase := join(apiBase, "generation_metrics")
				checkGenerationMetrics(check, metrics, mBase)
				check(metrics.Get("test_runs"), join(mBase, "test_runs"), "array")
				check(metrics.Get("test_iterations_count"), join(mBase, "test_iterations_count"), "integer")
				check(metrics.Get("llm_usage"), join(mBase, "llm_usage"), "object")
			}
			if acceptance := api.Get("acceptance"); acceptance.Kind() == record.Object {
				aBase := join(apiBase, "acceptance")
				check(acceptance.Get("pass_count"), join(aBase, "pass_count"), "integer")
				check(acceptance.Get("fail_count"), join(aBase, "fail_count"), "integer")
				check(acceptance.Get("not_run_count"), join(aBase, "not_run_count"), "integer")
				check(acceptance.Get("passrate"), join(aBase, "passrate"), "number")
			}
			if quality := api.Get("quality_metrics"); quality.Kind() == record.Object {
				qBase := join(apiBase, "quality_metrics")
				check(quality.Get("determinism_compliance"), join(qBase, "determinism_compliance"), "string")
				check(quality.Get("overreach_incidents_count"), join(qBase, "overreach_incidents_count"), "integer")
				check(quality.Get("contract_completeness_passrate"), join(qBase, "contract_completeness_passrate"), "number")
				check(quality.Get("instructions_quality_rating"), join(qBase, "instructions_quality_rating"), "integer")
				check(quality.Get("reproducibility_rating"), join(qBase, "reproducibility_rating"), "string")
			}
		}

		if ui := impls.Get("ui"); ui.Kind() == record.Object {
			uiBase := join(implBase, "ui")
			if metrics := ui.Get("generation_metrics"); metrics.Kind() == record.Object {
				mBase := join(uiBase, "generation_metrics")
				checkGenerationMetrics(check, metrics, mBase)
				check(metrics.Get("backend_changes_required"), join(mBase, "backend_changes_required"), "boolean")
			}
			check(ui.Get("build_success"), join(uiBase, "build_success"), "boolean")
		}
	}

	if submission := resultData.Get("submission"); submission.Kind() == record.Object {
		sBase := join(base, "submission")
		check(submission.Get("submitted_timestamp"), join(sBase, "submitted_timestamp"), "string")
		check(submission.Get("submitted_by"), join(sBase, "submitted_by"), "string")
		check(submission.Get("submission_method"), join(sBase, "submission_method"), "string")
	}

	return ds
}

// checkGenerationMetrics covers the seven fields both implementations share.
func checkGenerationMetrics(check func(record.Value, string, string), metrics record.Value, base string) {
	check(metrics.Get("llm_model"), join(base, "llm_model"), "string")
	check(metrics.Get("start_timestamp"), join(base, "start_timestamp"), "string")
	check(metrics.Get("end_timestamp"), join(base, "end_timestamp"), "string")
	check(metrics.Get("duration_minutes"), join(base, "duration_minutes"), "number")
	check(metrics.Get("clarifications_count"), join(base, "clarifications_count"), "integer")
	check(metrics.Get("interventions_count"), join(base, "interventions_count"), "integer")
	check(metrics.Get("reruns_count"), join(base, "reruns_count"), "integer")
}
