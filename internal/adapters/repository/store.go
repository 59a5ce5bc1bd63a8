// Package repository persists validated submission records in a
// time-partitioned directory tree keyed by run identity.
package repository

import (
	"context"

	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/record"
)

// Result describes the outcome of storing one record.
type Result struct {
	// RunID is the record's run identity.
	RunID string
	// Path is the stored file location relative to the root's parent.
	Path string
	// AbsolutePath is the stored file's absolute location.
	AbsolutePath string
	// Year and Month are the partition derived from the submission time.
	Year  int
	Month int
	// DuplicateRemoved reports whether stale files with the same run
	// identity were removed before the write.
	DuplicateRemoved bool
	// RemovedFiles lists the removed stale files.
	RemovedFiles []string
	// Warnings carries non-fatal problems, such as a duplicate that
	// could not be removed.
	Warnings []string
}

// Store persists records and walks the stored tree.
type Store interface {
	// Put stores a record in its partition, replacing any stale files
	// with the same run identity. Returns ErrStaleSubmission when a
	// strictly newer record already exists.
	Put(ctx context.Context, rec record.Record) (Result, error)

	// Walk visits every stored record in deterministic order. Files that
	// no longer parse are reported through the callback's err argument.
	Walk(ctx context.Context, fn func(path string, rec record.Record, err error) error) error
}
