package validate

import (
	"fmt"
	"strings"

	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/record"
)

// CheckFormats validates every timestamp-bearing field under result_data.
// Timestamps are recognized by name (*_timestamp or *_at suffix) so fields
// added by later pipeline stages are covered without enumeration.
func CheckFormats(root record.Value) []Defect {
	var ds []Defect

	resultData := root.Get(record.FieldResultData)
	if resultData.Kind() != record.Object {
		return ds
	}
	walkTimestamps(resultData, record.FieldResultData, &ds)
	return ds
}

func walkTimestamps(v record.Value, path string, ds *[]Defect) {
	switch v.Kind() {
	case record.Object:
		for _, key := range v.Keys() {
			child := v.Get(key)
			childPath := join(path, key)
			if timestampField(key) {
				checkTimestamp(child, childPath, key, ds)
				continue
			}
			walkTimestamps(child, childPath, ds)
		}
	case record.Array:
		for i := 0; i < v.Len(); i++ {
			walkTimestamps(v.Index(i), fmt.Sprintf("%s[%d]", path, i), ds)
		}
	}
}

func timestampField(name string) bool {
	return strings.HasSuffix(name, "_timestamp") || strings.HasSuffix(name, "_at")
}

func checkTimestamp(v record.Value, path, name string, ds *[]Defect) {
	if missing(v) {
		return
	}
	s, ok := v.Str()
	if !ok {
		*ds = append(*ds, Defect{
			Category:  CategoryFormat,
			FieldPath: path,
			Message:   fmt.Sprintf("%s must be a string in ISO-8601 format", name),
			Code:      CodeInvalidFormat,
		})
		return
	}
	if !record.ValidTimestampFormat(s) {
		*ds = append(*ds, Defect{
			Category:  CategoryFormat,
			FieldPath: path,
			Message:   fmt.Sprintf("Invalid timestamp format for %s: '%s'. Expected ISO-8601 UTC format: YYYY-MM-DDTHH:MM:SS.sssZ", name, s),
			Code:      CodeInvalidTimestampFormat,
		})
	}
}
