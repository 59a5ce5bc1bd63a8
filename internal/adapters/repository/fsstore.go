package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/record"
	"github.com/fastcraft-ai/pawmate-ai-results/pkg/logger"
	"github.com/fastcraft-ai/pawmate-ai-results/pkg/metrics"
)

// FSStore stores records as <root>/<YYYY>/<MM>/<run_id>.json.
type FSStore struct {
	root   string
	log    logger.Logger
	remove func(path string) error
}

var _ Store = (*FSStore)(nil)

// NewFSStore builds a store rooted at dir.
func NewFSStore(dir string, opts ...Option) *FSStore {
	s := &FSStore{
		root:   dir,
		log:    logger.Named("store"),
		remove: os.Remove,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the store's root directory.
func (s *FSStore) Root() string { return s.root }

// Put stores the record in its submission-time partition. Conflicts on run
// identity resolve newest-wins: every stale file is removed first, and a
// strictly newer existing file rejects the incoming record untouched.
func (s *FSStore) Put(ctx context.Context, rec record.Record) (Result, error) {
	runID, ok := rec.RunID()
	if !ok || runID == "" {
		return Result{}, fmt.Errorf("%w: run_id", ErrIdentityMissing)
	}
	if _, ok := rec.SubmittedTimestamp(); !ok {
		return Result{}, fmt.Errorf("%w: submitted_timestamp", ErrIdentityMissing)
	}
	submitted, err := rec.SubmissionTime()
	if err != nil {
		return Result{}, err
	}

	year, month := record.Partition(submitted)
	res := Result{RunID: runID, Year: year, Month: month}

	duplicates := s.findDuplicates(runID)
	if len(duplicates) > 0 {
		newest, found := newestSubmission(duplicates)
		if found && newest.After(submitted) {
			metrics.RecordStaleRejection()
			return Result{}, fmt.Errorf("%w: run_id %s", ErrStaleSubmission, runID)
		}
		for _, dup := range duplicates {
			if err := s.remove(dup); err != nil {
				warn := fmt.Sprintf("%v: %s: %v", ErrDuplicateRemoval, dup, err)
				res.Warnings = append(res.Warnings, warn)
				s.log.Warn(ctx, "stale duplicate not removed",
					logger.String("path", dup), logger.Error(err))
				continue
			}
			res.RemovedFiles = append(res.RemovedFiles, dup)
		}
		res.DuplicateRemoved = len(res.RemovedFiles) > 0
		metrics.RecordDuplicatesRemoved(len(res.RemovedFiles))
	}

	partition := filepath.Join(s.root, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month))
	if err := os.MkdirAll(partition, 0o755); err != nil {
		return Result{}, fmt.Errorf("%w: mkdir %s: %v", ErrStorageIO, partition, err)
	}

	target := filepath.Join(partition, runID+".json")
	start := time.Now()
	if err := s.writeAtomic(target, rec); err != nil {
		return Result{}, err
	}
	metrics.RecordWriteLatency(float64(time.Since(start).Milliseconds()))
	metrics.RecordStored()

	res.AbsolutePath, err = filepath.Abs(target)
	if err != nil {
		res.AbsolutePath = target
	}
	res.Path = relativeToParent(s.root, target)

	s.log.Info(ctx, "record stored",
		logger.String("run_id", runID),
		logger.String("path", res.Path),
		logger.Int("removed", len(res.RemovedFiles)))
	return res, nil
}

// writeAtomic serializes the record through a temp file and renames it
// into place so a failed write never leaves a partial record.
func (s *FSStore) writeAtomic(target string, rec record.Record) error {
	data, err := rec.MarshalPretty()
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrStorageIO, target, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".tmp*")
	if err != nil {
		return fmt.Errorf("%w: temp file for %s: %v", ErrStorageIO, target, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", ErrStorageIO, target, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %v", ErrStorageIO, target, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename %s: %v", ErrStorageIO, target, err)
	}
	return nil
}

// findDuplicates scans every <year>/<month> partition for run_id.json.
func (s *FSStore) findDuplicates(runID string) []string {
	var found []string
	target := runID + ".json"

	for _, month := range s.partitions() {
		path := filepath.Join(month, target)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			found = append(found, path)
		}
	}
	return found
}

// partitions lists every month directory under the root, sorted.
func (s *FSStore) partitions() []string {
	years, err := os.ReadDir(s.root)
	if err != nil {
		return nil
	}

	var months []string
	for _, year := range years {
		if !year.IsDir() {
			continue
		}
		yearDir := filepath.Join(s.root, year.Name())
		entries, err := os.ReadDir(yearDir)
		if err != nil {
			continue
		}
		for _, month := range entries {
			if month.IsDir() {
				months = append(months, filepath.Join(yearDir, month.Name()))
			}
		}
	}
	sort.Strings(months)
	return months
}

// Walk visits every stored .json record, partitions in sorted order.
func (s *FSStore) Walk(ctx context.Context, fn func(path string, rec record.Record, err error) error) error {
	for _, month := range s.partitions() {
		entries, err := os.ReadDir(month)
		if err != nil {
			return fmt.Errorf("%w: read %s: %v", ErrStorageIO, month, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
				continue
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(month, entry.Name())
			rec, err := readRecord(path)
			if err := fn(path, rec, err); err != nil {
				return err
			}
		}
	}
	return nil
}

// newestSubmission returns the latest readable submission time among the
// given files. Unreadable files and unparseable timestamps count as older.
func newestSubmission(paths []string) (time.Time, bool) {
	var newest time.Time
	var found bool
	for _, path := range paths {
		rec, err := readRecord(path)
		if err != nil {
			continue
		}
		t, err := rec.SubmissionTime()
		if err != nil {
			continue
		}
		if !found || t.After(newest) {
			newest, found = t, true
		}
	}
	return newest, found
}

func readRecord(path string) (record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return record.Record{}, fmt.Errorf("%w: read %s: %v", ErrStorageIO, path, err)
	}
	return record.Parse(data)
}

// relativeToParent renders the stored path relative to the root's parent
// directory, keeping the root's name as the leading segment.
func relativeToParent(root, target string) string {
	rel, err := filepath.Rel(filepath.Dir(root), target)
	if err != nil {
		return target
	}
	return filepath.ToSlash(rel)
}
