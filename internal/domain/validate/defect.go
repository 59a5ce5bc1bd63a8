// Package validate runs the schema validation passes over a record tree.
//
// Each pass is a pure function from the tree to a list of defects; passes
// never short-circuit each other, so a record missing a whole section
// still gets type, enum, format, and range checks run on whatever partial
// structure remains reachable.
package validate

// Category tags a defect with the validation dimension that produced it.
type Category string

// Validation categories, in report order.
const (
	CategoryRequired Category = "required_fields"
	CategoryType     Category = "data_types"
	CategoryEnum     Category = "enum_values"
	CategoryFormat   Category = "formats"
	CategoryRange    Category = "ranges"
)

// Categories returns all categories in stable report order.
func Categories() []Category {
	return []Category{CategoryRequired, CategoryType, CategoryEnum, CategoryFormat, CategoryRange}
}

// Machine-readable defect codes.
const (
	CodeRequiredFieldMissing          = "REQUIRED_FIELD_MISSING"
	CodeRequiredSectionMissing        = "REQUIRED_SECTION_MISSING"
	CodeRequiredImplementationMissing = "REQUIRED_IMPLEMENTATION_MISSING"
	CodeTypeMismatch                  = "TYPE_MISMATCH"
	CodeInvalidEnumValue              = "INVALID_ENUM_VALUE"
	CodeInvalidFormat                 = "INVALID_FORMAT"
	CodeInvalidTimestampFormat        = "INVALID_TIMESTAMP_FORMAT"
	CodeValueBelowMinimum             = "VALUE_BELOW_MINIMUM"
	CodeValueAboveMaximum             = "VALUE_ABOVE_MAXIMUM"
)

// Defect is a single validation failure.
type Defect struct {
	Category  Category `json:"category"`
	FieldPath string   `json:"field_path"`
	Message   string   `json:"message"`
	Code      string   `json:"error_code"`
}

// join extends a dotted field path.
func join(base, field string) string {
	if base == "" {
		return field
	}
	return base + "." + field
}
