package app

import (
	"fmt"
	"strings"

	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/validate"
)

// RenderText formats a validation envelope for humans, grouping defects by
// category.
func RenderText(env *ValidationEnvelope, filePath string) string {
	var lines []string

	if filePath != "" {
		lines = append(lines, fmt.Sprintf("Validation Result for: %s", filePath))
		lines = append(lines, strings.Repeat("=", 60))
	}

	if env.Valid {
		lines = append(lines, "VALID - All validation checks passed")
	} else {
		lines = append(lines, "INVALID - Validation failed")
		lines = append(lines, fmt.Sprintf("\nTotal Errors: %d", env.ErrorCount))

		for _, cat := range validate.Categories() {
			defects := env.ByCategory[cat]
			if len(defects) == 0 {
				continue
			}
			lines = append(lines, fmt.Sprintf("\n%s (%d errors):", categoryTitle(cat), len(defects)))
			for _, d := range defects {
				lines = append(lines, fmt.Sprintf("  - [%s] %s", d.FieldPath, d.Message))
			}
		}
	}

	if len(env.Warnings) > 0 {
		lines = append(lines, fmt.Sprintf("\nWarnings (%d):", len(env.Warnings)))
		for _, w := range env.Warnings {
			lines = append(lines, fmt.Sprintf("  - %s", w))
		}
	}

	return strings.Join(lines, "\n")
}

// RenderBatchText formats a batch envelope as a per-file summary.
func RenderBatchText(env *BatchEnvelope) string {
	var lines []string

	if env.Error != "" {
		return fmt.Sprintf("ERROR - %s", env.Error)
	}
	if env.Message != "" {
		return env.Message
	}

	lines = append(lines, fmt.Sprintf("Validated %d files: %d valid, %d invalid",
		env.TotalFiles, env.ValidFiles, env.InvalidFiles))
	for _, f := range env.Files {
		status := "VALID"
		if !f.Valid {
			status = fmt.Sprintf("INVALID (%d errors)", f.ErrorCount)
		}
		lines = append(lines, fmt.Sprintf("  %s: %s", f.File, status))
	}
	return strings.Join(lines, "\n")
}

// categoryTitle renders a category identifier as a heading:
// required_fields becomes "Required Fields".
func categoryTitle(cat validate.Category) string {
	words := strings.Split(string(cat), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
