package validate

import (
	"fmt"

	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/record"
)

type bound struct {
	set   bool
	value float64
}

func boundAt(v float64) bound { return bound{set: true, value: v} }

var noBound bound

// CheckRanges validates numeric bounds. Values that are not numbers are
// skipped here; the type pass already reports them.
func CheckRanges(root record.Value) []Defect {
	var ds []Defect

	check := func(v record.Value, path, name string, lo, hi bound) {
		if missing(v) {
			return
		}
		f, ok := v.Float()
		if !ok {
			return
		}
		if lo.set && f < lo.value {
			ds = append(ds, Defect{
				Category:  CategoryRange,
				FieldPath: path,
				Message:   fmt.Sprintf("%s value %s is below minimum %v", name, v.Display(), lo.value),
				Code:      CodeValueBelowMinimum,
			})
		}
		if hi.set && f > hi.value {
			ds = append(ds, Defect{
				Category:  CategoryRange,
				FieldPath: path,
				Message:   fmt.Sprintf("%s value %s exceeds maximum %v", name, v.Display(), hi.value),
				Code:      CodeValueAboveMaximum,
			})
		}
	}

	nonNegative := func(container record.Value, base string, names ...string) {
		for _, name := range names {
			check(container.Get(name), join(base, name), name, boundAt(0), noBound)
		}
	}

	resultData := root.Get(record.FieldResultData)
	if resultData.Kind() != record.Object {
		return ds
	}
	base := record.FieldResultData

	impls := resultData.Get("implementations")

	if api := impls.Get("api"); api.Kind() == record.Object {
		apiBase := join(base, "implementations.api")

		if metrics := api.Get("generation_metrics"); metrics.Kind() == record.Object {
			mBase := join(apiBase, "generation_metrics")
			nonNegative(metrics, mBase, "duration_minutes", "clarifications_count", "interventions_count", "reruns_count")
			check(metrics.Get("test_iterations_count"), join(mBase, "test_iterations_count"), "test_iterations_count", boundAt(1), noBound)

			if runs := metrics.Get("test_runs"); runs.Kind() == record.Array {
				for i := 0; i < runs.Len(); i++ {
					run := runs.Index(i)
					if run.Kind() != record.Object {
						continue
					}
					runBase := fmt.Sprintf("%s.test_runs[%d]", mBase, i)
					check(run.Get("pass_rate"), join(runBase, "pass_rate"), "pass_rate", boundAt(0), boundAt(1))
					nonNegative(run, runBase, "total_tests", "passed", "failed")
				}
			}

			if usage := metrics.Get("llm_usage"); usage.Kind() == record.Object {
				nonNegative(usage, join(mBase, "llm_usage"),
					"input_tokens", "output_tokens", "total_tokens", "requests_count", "estimated_cost_usd")
			}
		}

		if acceptance := api.Get("acceptance"); acceptance.Kind() == record.Object {
			aBase := join(apiBase, "acceptance")
			nonNegative(acceptance, aBase, "pass_count", "fail_count", "not_run_count")
			check(acceptance.Get("passrate"), join(aBase, "passrate"), "passrate", boundAt(0), boundAt(1))
		}

		if quality := api.Get("quality_metrics"); quality.Kind() == record.Object {
			qBase := join(apiBase, "quality_metrics")
			nonNegative(quality, qBase, "overreach_incidents_count")
			check(quality.Get("contract_completeness_passrate"), join(qBase, "contract_completeness_passrate"), "contract_completeness_passrate", boundAt(0), boundAt(1))
		}

		if scores := api.Get("scores"); scores.Kind() == record.Object {
			sBase := join(apiBase, "scores")
			for _, name := range []string{
				"correctness_C", "reproducibility_R", "determinism_D",
				"effort_E", "speed_S", "contract_docs_K", "overall_score",
			} {
				check(scores.Get(name), join(sBase, name), name, boundAt(0), boundAt(100))
			}
			check(scores.Get("penalty_overreach_PO"), join(sBase, "penalty_overreach_PO"), "penalty_overreach_PO", boundAt(0), boundAt(40))
		}
	}

	if ui := impls.Get("ui"); ui.Kind() == record.Object {
		if metrics := ui.Get("generation_metrics"); metrics.Kind() == record.Object {
			nonNegative(metrics, join(base, "implementations.ui.generation_metrics"),
				"duration_minutes", "clarifications_count", "interventions_count", "reruns_count")
		}
	}

	if issue := resultData.At("submission", "github_issue"); issue.Kind() == record.Object {
		check(issue.Get("issue_number"), join(base, "submission.github_issue.issue_number"), "issue_number", boundAt(1), noBound)
	}

	if storage := resultData.Get("storage_metadata"); storage.Kind() == record.Object {
		check(storage.Get("partition_month"), join(base, "storage_metadata.partition_month"), "partition_month", boundAt(1), boundAt(12))
	}

	return ds
}
