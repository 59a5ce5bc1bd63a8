package validate

// Report accumulates the defects of every pass into one categorized list.
type Report struct {
	Valid            bool                  `json:"valid"`
	ErrorCount       int                   `json:"error_count"`
	WarningCount     int                   `json:"warning_count"`
	Errors           []Defect              `json:"errors"`
	Warnings         []string              `json:"warnings"`
	ByCategory       map[Category][]Defect `json:"errors_by_category"`
	ValidatorVersion string                `json:"validator_version"`
}

func newReport(version string) *Report {
	byCat := make(map[Category][]Defect, len(Categories()))
	for _, c := range Categories() {
		byCat[c] = []Defect{}
	}
	return &Report{
		Valid:            true,
		Errors:           []Defect{},
		Warnings:         []string{},
		ByCategory:       byCat,
		ValidatorVersion: version,
	}
}

// Add records defects and flips the report to invalid.
func (r *Report) Add(defects ...Defect) {
	for _, d := range defects {
		r.Errors = append(r.Errors, d)
		r.ByCategory[d.Category] = append(r.ByCategory[d.Category], d)
		r.ErrorCount++
		r.Valid = false
	}
}

// AddWarning records a non-fatal observation.
func (r *Report) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
	r.WarningCount++
}

// Has reports whether a defect already exists for the path and category.
// The descriptor pass uses it to avoid duplicating explicit-pass findings.
func (r *Report) Has(path string, cat Category) bool {
	for _, d := range r.ByCategory[cat] {
		if d.FieldPath == path {
			return true
		}
	}
	return false
}
