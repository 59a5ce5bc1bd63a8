package schema

import "errors"

// Sentinel kinds for descriptor errors.
var (
	ErrCompileDescriptor = errors.New("cannot compile schema descriptor")
	ErrDescriptorCheck   = errors.New("schema descriptor check failed")
)
