// Package schema compiles a JSON Schema descriptor and maps its findings
// onto the validator's defect categories.
package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/validate"
)

// Descriptor is a compiled schema usable as an auxiliary validation pass.
type Descriptor struct {
	compiled *jsonschema.Schema
	source   string
}

// Load compiles the descriptor at path.
func Load(path string) (*Descriptor, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	compiled, err := compiler.Compile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCompileDescriptor, path, err)
	}
	return &Descriptor{compiled: compiled, source: path}, nil
}

// Source returns the path the descriptor was compiled from.
func (d *Descriptor) Source() string { return d.source }

// Check validates the decoded document and returns its leaf failures as
// categorized defects. It satisfies validate.ExtraPass.
func (d *Descriptor) Check(doc any) ([]validate.Defect, error) {
	err := d.compiled.Validate(doc)
	if err == nil {
		return nil, nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrDescriptorCheck, err)
	}

	var ds []validate.Defect
	for _, unit := range ve.BasicOutput().Errors {
		// Aggregation units restate their children; keep leaves only.
		if strings.Contains(unit.Error, "doesn't validate with") {
			continue
		}
		keyword := lastSegment(unit.KeywordLocation)
		if keyword == "" {
			continue
		}
		ds = append(ds, validate.Defect{
			Category:  categoryFor(keyword),
			FieldPath: dottedPath(unit.InstanceLocation),
			Message:   unit.Error,
			Code:      strings.ToUpper(keyword),
		})
	}
	return ds, nil
}

// categoryFor buckets a schema keyword the same way the explicit passes
// bucket their findings.
func categoryFor(keyword string) validate.Category {
	switch keyword {
	case "type":
		return validate.CategoryType
	case "enum", "const":
		return validate.CategoryEnum
	case "pattern", "format":
		return validate.CategoryFormat
	case "minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum":
		return validate.CategoryRange
	default:
		return validate.CategoryRequired
	}
}

// lastSegment returns the final keyword of a JSON pointer, skipping
// applicator segments like anyOf/0.
func lastSegment(pointer string) string {
	segs := strings.Split(pointer, "/")
	for i := len(segs) - 1; i >= 0; i-- {
		seg := unescape(segs[i])
		if seg == "" {
			continue
		}
		if _, err := strconv.Atoi(seg); err == nil {
			continue
		}
		return seg
	}
	return ""
}

// dottedPath converts a JSON pointer instance location into the dotted
// form defect paths use, with [i] for array indices.
func dottedPath(pointer string) string {
	if pointer == "" || pointer == "/" {
		return "root"
	}
	var b strings.Builder
	for _, seg := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		seg = unescape(seg)
		if _, err := strconv.Atoi(seg); err == nil {
			fmt.Fprintf(&b, "[%s]", seg)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

func unescape(seg string) string {
	seg = strings.ReplaceAll(seg, "~1", "/")
	return strings.ReplaceAll(seg, "~0", "~")
}
