package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/record"
)

// CheckEnums validates fields restricted to a closed value set. Wrongly
// typed values also fail here: a string "1" is not the integer 1.
func CheckEnums(root record.Value) []Defect {
	var ds []Defect

	stringEnum := func(v record.Value, path, name string, allowed ...string) {
		if missing(v) {
			return
		}
		if s, ok := v.Str(); ok {
			for _, a := range allowed {
				if s == a {
					return
				}
			}
		}
		ds = append(ds, Defect{
			Category:  CategoryEnum,
			FieldPath: path,
			Message:   fmt.Sprintf("Invalid value '%s' for %s. Allowed values: %s", v.Display(), name, strings.Join(allowed, ", ")),
			Code:      CodeInvalidEnumValue,
		})
	}

	intEnum := func(v record.Value, path, name string, allowed ...int64) {
		if missing(v) {
			return
		}
		if i, ok := v.Int(); ok {
			for _, a := range allowed {
				if i == a {
					return
				}
			}
		}
		names := make([]string, len(allowed))
		for i, a := range allowed {
			names[i] = strconv.FormatInt(a, 10)
		}
		ds = append(ds, Defect{
			Category:  CategoryEnum,
			FieldPath: path,
			Message:   fmt.Sprintf("Invalid value '%s' for %s. Allowed values: %s", v.Display(), name, strings.Join(names, ", ")),
			Code:      CodeInvalidEnumValue,
		})
	}

	stringEnum(root.Get(record.FieldSchemaVersion), record.FieldSchemaVersion, record.FieldSchemaVersion, record.SchemaV3, record.SchemaV2)

	resultData := root.Get(record.FieldResultData)
	if resultData.Kind() != record.Object {
		return ds
	}
	base := record.FieldResultData

	if identity := resultData.Get("run_identity"); identity.Kind() == record.Object {
		idBase := join(base, "run_identity")
		stringEnum(identity.Get("target_model"), join(idBase, "target_model"), "target_model", "A", "B")
		stringEnum(identity.Get("api_style"), join(idBase, "api_style"), "api_style", "REST", "GraphQL")
		intEnum(identity.Get("run_number"), join(idBase, "run_number"), "run_number", 1, 2)
	}

	if api := resultData.At("implementations", "api"); api.Kind() == record.Object {
		apiBase := join(base, "implementations.api")

		if quality := api.Get("quality_metrics"); quality.Kind() == record.Object {
			qBase := join(apiBase, "quality_metrics")
			stringEnum(quality.Get("determinism_compliance"), join(qBase, "determinism_compliance"), "determinism_compliance", "Pass", "Fail", "Unknown")
			intEnum(quality.Get("instructions_quality_rating"), join(qBase, "instructions_quality_rating"), "instructions_quality_rating", 100, 70, 40, 0)
			stringEnum(quality.Get("reproducibility_rating"), join(qBase, "reproducibility_rating"), "reproducibility_rating", "None", "Minor", "Major", "Unknown")
		}

		if usage := api.At("generation_metrics", "llm_usage"); usage.Kind() == record.Object {
			stringEnum(usage.Get("usage_source"),
				join(apiBase, "generation_metrics.llm_usage.usage_source"), "usage_source",
				"tool_reported", "operator_estimated", "unknown")
		}
	}

	if submission := resultData.Get("submission"); submission.Kind() == record.Object {
		stringEnum(submission.Get("submission_method"),
			join(base, "submission.submission_method"), "submission_method",
			"automated", "manual")
	}

	if processing := resultData.Get("processing"); processing.Kind() == record.Object {
		pBase := join(base, "processing")
		stringEnum(processing.Get("validation_status"), join(pBase, "validation_status"), "validation_status",
			"pending", "valid", "invalid", "error")
		stringEnum(processing.Get("storage_status"), join(pBase, "storage_status"), "storage_status",
			"pending", "stored", "failed", "duplicate_replaced")
	}

	return ds
}
