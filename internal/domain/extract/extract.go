// Package extract locates the structured payload inside free-form
// submission text such as an issue body.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Method names the strategy that produced a payload.
type Method string

// Extraction methods, in the order they are attempted.
const (
	MethodCodeBlock Method = "code_block"
	MethodDirect    Method = "direct"
	MethodLineScan  Method = "line_scan"
	MethodNone      Method = "none"
)

// Payload is the candidate substring plus the technique that found it.
type Payload struct {
	Text   string
	Method Method
}

// Found reports whether a candidate was located.
func (p Payload) Found() bool { return p.Method != MethodNone }

const defaultMaxScanBytes = 1 << 20

var fencePattern = regexp.MustCompile("(?s)```(?:json|JSON)[ \t]*\r?\n(.*?)```")

// Extractor finds structured payloads in free text. It is a pure function
// of its input; the only state is configuration.
type Extractor struct {
	maxScanBytes int
}

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithMaxScanBytes caps the body size fed to the quadratic balanced-brace
// scan. Larger bodies still get the fenced and line-buffered strategies.
func WithMaxScanBytes(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxScanBytes = n
		}
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{maxScanBytes: defaultMaxScanBytes}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract attempts, in order: the first fenced block tagged as JSON, the
// longest balanced-brace substring that parses, and a line-buffered brace
// accumulation fallback. When every strategy fails but a non-empty fenced
// block was present, that block is returned anyway so the syntax stage can
// report a precise parse failure instead of a bare "not found".
func (e *Extractor) Extract(body string) (Payload, error) {
	if strings.TrimSpace(body) == "" {
		return Payload{Method: MethodNone}, ErrNoPayload
	}

	fenced, fencedFound := e.fromFence(body)
	if fencedFound && json.Valid([]byte(fenced)) {
		return Payload{Text: fenced, Method: MethodCodeBlock}, nil
	}

	if candidate, ok := e.longestBalanced(body); ok {
		return Payload{Text: candidate, Method: MethodDirect}, nil
	}

	if candidate, ok := e.lineScan(body); ok {
		return Payload{Text: candidate, Method: MethodLineScan}, nil
	}

	if fencedFound {
		return Payload{Text: fenced, Method: MethodCodeBlock}, nil
	}
	return Payload{Method: MethodNone}, ErrNoPayload
}

// fromFence returns the first non-empty fenced block tagged json.
func (e *Extractor) fromFence(body string) (string, bool) {
	for _, m := range fencePattern.FindAllStringSubmatch(body, -1) {
		if candidate := strings.TrimSpace(m[1]); candidate != "" {
			return candidate, true
		}
	}
	return "", false
}

// longestBalanced scans every opening-brace position and every subsequent
// balanced closing position, keeping the longest substring that parses.
// O(n²) worst case, but always correct: free text may contain nested or
// decorative braces before the real payload.
func (e *Extractor) longestBalanced(body string) (string, bool) {
	if len(body) > e.maxScanBytes {
		return "", false
	}

	best := ""
	for i := 0; i < len(body); i++ {
		if body[i] != '{' {
			continue
		}
		if len(body)-i <= len(best) {
			break // no later start can beat the current best
		}
		depth := 0
		for j := i; j < len(body); j++ {
			switch body[j] {
			case '{':
				depth++
			case '}':
				depth--
			default:
				continue
			}
			if depth < 0 {
				break // overshot: no balanced end remains for this start
			}
			if depth != 0 {
				continue
			}
			candidate := body[i : j+1]
			if len(candidate) > len(best) && json.Valid([]byte(candidate)) {
				best = candidate
			}
		}
	}
	return best, best != ""
}

// lineScan accumulates lines from the first line starting with an opening
// brace until brace counts balance, retrying the parse on each balanced
// candidate and resetting after a failed attempt.
func (e *Extractor) lineScan(body string) (string, bool) {
	var (
		buf    []string
		opens  int
		closes int
		inside bool
	)
	for _, line := range strings.Split(body, "\n") {
		stripped := strings.TrimSpace(line)
		if !inside {
			if !strings.HasPrefix(stripped, "{") {
				continue
			}
			inside = true
			buf = buf[:0]
			opens, closes = 0, 0
			line = stripped
		}
		buf = append(buf, line)
		opens += strings.Count(line, "{")
		closes += strings.Count(line, "}")
		if strings.HasSuffix(stripped, "}") && opens <= closes {
			candidate := strings.TrimSpace(strings.Join(buf, "\n"))
			if json.Valid([]byte(candidate)) {
				return candidate, true
			}
			inside = false
		}
	}
	return "", false
}
