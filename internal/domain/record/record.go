package record

import (
	"bytes"
	"encoding/json"
	"time"
)

// Wire field names shared by the pipeline stages.
const (
	FieldSchemaVersion = "schema_version"
	FieldResultData    = "result_data"

	// Schema revisions this pipeline understands.
	SchemaV2 = "2.0"
	SchemaV3 = "3.0"
)

// Record is one benchmark submission, keyed by run_id.
type Record struct {
	root Value
}

// Parse decodes raw JSON into a Record.
func Parse(data []byte) (Record, error) {
	v, err := Decode(data)
	if err != nil {
		return Record{}, err
	}
	return Record{root: v}, nil
}

// FromValue wraps an already-decoded tree.
func FromValue(v Value) Record { return Record{root: v} }

// Root returns the record tree.
func (r Record) Root() Value { return r.root }

// Interface exposes the underlying decoded document.
func (r Record) Interface() any { return r.root.Interface() }

// SchemaVersion returns the declared schema revision, defaulting to the
// 2.0 revision when the field is missing (pre-3.0 files never carried it).
func (r Record) SchemaVersion() string {
	if s, ok := r.root.Get(FieldSchemaVersion).Str(); ok {
		return s
	}
	return SchemaV2
}

// RunID returns the record's logical identity.
func (r Record) RunID() (string, bool) {
	return r.root.At(FieldResultData, "run_identity", "run_id").Str()
}

// SubmittedTimestamp returns the raw submission timestamp string.
func (r Record) SubmittedTimestamp() (string, bool) {
	return r.root.At(FieldResultData, "submission", "submitted_timestamp").Str()
}

// SubmissionTime parses the submission timestamp into an absolute instant.
func (r Record) SubmissionTime() (time.Time, error) {
	s, ok := r.SubmittedTimestamp()
	if !ok {
		return time.Time{}, ErrTimestampUnparseable
	}
	return ParseTimestamp(s)
}

// Set writes val at the dotted object path, creating intermediate objects
// as needed. Used to stamp pipeline provenance metadata onto accepted
// records; it never touches arrays.
func (r Record) Set(path []string, val any) error {
	obj, ok := r.root.raw.(map[string]any)
	if !ok {
		return ErrNotObject
	}
	for _, key := range path[:len(path)-1] {
		next, ok := obj[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			obj[key] = next
		}
		obj = next
	}
	obj[path[len(path)-1]] = val
	return nil
}

// MarshalPretty renders the record as deterministic, byte-stable pretty
// JSON: two-space indent, sorted object keys, numbers preserved verbatim
// via json.Number, no HTML escaping, trailing newline.
func (r Record) MarshalPretty() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.root.Interface()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
