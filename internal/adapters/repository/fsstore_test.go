package repository_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/fastcraft-ai/pawmate-ai-results/internal/adapters/repository"
	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/record"
)

func recordWith(runID, submitted string) record.Record {
	body := fmt.Sprintf(`{
  "schema_version": "3.0",
  "result_data": {
    "run_identity": {"run_id": %q},
    "submission": {"submitted_timestamp": %q},
    "implementations": {"api": {"acceptance": {"passrate": 0.90}}}
  }
}`, runID, submitted)
	rec, err := record.Parse([]byte(body))
	So(err, ShouldBeNil)
	return rec
}

func tempRoot() string {
	dir, err := os.MkdirTemp("", "submissions")
	So(err, ShouldBeNil)
	Reset(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, "submissions")
}

func TestPutPartitionsBySubmissionTime(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		store := repository.NewFSStore(tempRoot())

		Convey("When a March 2025 record is stored", func() {
			res, err := store.Put(ctx, recordWith("run-001", "2025-03-10T10:00:00.000Z"))

			Convey("Then it lands in the 2025/03 partition", func() {
				So(err, ShouldBeNil)
				So(res.Year, ShouldEqual, 2025)
				So(res.Month, ShouldEqual, 3)
				So(res.Path, ShouldEqual, "submissions/2025/03/run-001.json")
				So(res.DuplicateRemoved, ShouldBeFalse)
				So(res.AbsolutePath, ShouldEndWith, filepath.Join("2025", "03", "run-001.json"))

				_, statErr := os.Stat(res.AbsolutePath)
				So(statErr, ShouldBeNil)
			})
		})
	})
}

func TestPutRoundTripsBytes(t *testing.T) {
	Convey("Given a stored record", t, func() {
		ctx := context.Background()
		store := repository.NewFSStore(tempRoot())
		rec := recordWith("run-bytes", "2025-03-10T10:00:00.000Z")

		res, err := store.Put(ctx, rec)
		So(err, ShouldBeNil)

		Convey("The file on disk matches the record's serialization exactly", func() {
			want, err := rec.MarshalPretty()
			So(err, ShouldBeNil)
			got, err := os.ReadFile(res.AbsolutePath)
			So(err, ShouldBeNil)
			So(string(got), ShouldEqual, string(want))
			So(string(got), ShouldContainSubstring, `"passrate": 0.90`)
		})
	})
}

func TestNewestWins(t *testing.T) {
	Convey("Given two records sharing a run identity", t, func() {
		ctx := context.Background()
		older := recordWith("run-dup", "2025-02-01T08:00:00.000Z")
		newer := recordWith("run-dup", "2025-03-01T08:00:00.000Z")

		Convey("Storing older then newer replaces across partitions", func() {
			store := repository.NewFSStore(tempRoot())
			first, err := store.Put(ctx, older)
			So(err, ShouldBeNil)

			res, err := store.Put(ctx, newer)
			So(err, ShouldBeNil)
			So(res.DuplicateRemoved, ShouldBeTrue)
			So(res.RemovedFiles, ShouldResemble, []string{first.AbsolutePath})
			So(res.Month, ShouldEqual, 3)

			_, statErr := os.Stat(first.AbsolutePath)
			So(os.IsNotExist(statErr), ShouldBeTrue)
		})

		Convey("Storing newer then older rejects the stale record untouched", func() {
			store := repository.NewFSStore(tempRoot())
			first, err := store.Put(ctx, newer)
			So(err, ShouldBeNil)

			_, err = store.Put(ctx, older)
			So(err, ShouldWrap, repository.ErrStaleSubmission)

			_, statErr := os.Stat(first.AbsolutePath)
			So(statErr, ShouldBeNil)
		})

		Convey("An equal timestamp replaces the existing file", func() {
			store := repository.NewFSStore(tempRoot())
			_, err := store.Put(ctx, newer)
			So(err, ShouldBeNil)

			res, err := store.Put(ctx, recordWith("run-dup", "2025-03-01T08:00:00.000Z"))
			So(err, ShouldBeNil)
			So(res.DuplicateRemoved, ShouldBeTrue)
		})

		Convey("An unreadable existing file counts as older", func() {
			store := repository.NewFSStore(tempRoot())
			first, err := store.Put(ctx, newer)
			So(err, ShouldBeNil)
			So(os.WriteFile(first.AbsolutePath, []byte("{broken"), 0o644), ShouldBeNil)

			res, err := store.Put(ctx, older)
			So(err, ShouldBeNil)
			So(res.DuplicateRemoved, ShouldBeTrue)
		})

		Convey("A failed duplicate removal downgrades to a warning", func() {
			root := tempRoot()
			seed := repository.NewFSStore(root)
			first, err := seed.Put(ctx, older)
			So(err, ShouldBeNil)

			store := repository.NewFSStore(root,
				repository.WithRemoveFunc(func(path string) error {
					return &os.PathError{Op: "remove", Path: path, Err: os.ErrPermission}
				}))

			res, err := store.Put(ctx, newer)

			Convey("The new write still proceeds", func() {
				So(err, ShouldBeNil)
				_, statErr := os.Stat(res.AbsolutePath)
				So(statErr, ShouldBeNil)
			})

			Convey("Nothing counts as removed and the warning names the stuck file", func() {
				So(err, ShouldBeNil)
				So(res.DuplicateRemoved, ShouldBeFalse)
				So(res.RemovedFiles, ShouldBeEmpty)
				So(res.Warnings, ShouldHaveLength, 1)
				So(res.Warnings[0], ShouldContainSubstring, first.AbsolutePath)
				So(res.Warnings[0], ShouldContainSubstring, repository.ErrDuplicateRemoval.Error())

				_, statErr := os.Stat(first.AbsolutePath)
				So(statErr, ShouldBeNil)
			})
		})
	})
}

func TestPutRejectsIncompleteIdentity(t *testing.T) {
	Convey("Given a store", t, func() {
		ctx := context.Background()
		store := repository.NewFSStore(tempRoot())

		Convey("A record without run_id is rejected", func() {
			rec, err := record.Parse([]byte(`{"result_data": {"submission": {"submitted_timestamp": "2025-03-01T08:00:00Z"}}}`))
			So(err, ShouldBeNil)
			_, err = store.Put(ctx, rec)
			So(err, ShouldWrap, repository.ErrIdentityMissing)
		})

		Convey("A record without submitted_timestamp is rejected", func() {
			rec, err := record.Parse([]byte(`{"result_data": {"run_identity": {"run_id": "r"}}}`))
			So(err, ShouldBeNil)
			_, err = store.Put(ctx, rec)
			So(err, ShouldWrap, repository.ErrIdentityMissing)
		})

		Convey("An unparseable timestamp is rejected before any write", func() {
			rec := recordWith("run-bad-ts", "March 1st 2025")
			_, err := store.Put(ctx, rec)
			So(err, ShouldWrap, record.ErrTimestampUnparseable)

			entries, readErr := os.ReadDir(store.Root())
			So(os.IsNotExist(readErr) || len(entries) == 0, ShouldBeTrue)
		})
	})
}

func TestWalkVisitsStoredRecords(t *testing.T) {
	Convey("Given a store holding records across partitions", t, func() {
		ctx := context.Background()
		store := repository.NewFSStore(tempRoot())

		_, err := store.Put(ctx, recordWith("run-a", "2025-02-01T08:00:00.000Z"))
		So(err, ShouldBeNil)
		_, err = store.Put(ctx, recordWith("run-b", "2025-03-01T08:00:00.000Z"))
		So(err, ShouldBeNil)

		Convey("Walk visits every record in partition order", func() {
			var ids []string
			err := store.Walk(ctx, func(path string, rec record.Record, err error) error {
				So(err, ShouldBeNil)
				id, _ := rec.RunID()
				ids = append(ids, id)
				return nil
			})
			So(err, ShouldBeNil)
			So(ids, ShouldResemble, []string{"run-a", "run-b"})
		})

		Convey("Walk surfaces unparseable files through the callback", func() {
			broken := filepath.Join(store.Root(), "2025", "02", "run-broken.json")
			So(os.WriteFile(broken, []byte("{"), 0o644), ShouldBeNil)

			var failed []string
			err := store.Walk(ctx, func(path string, rec record.Record, err error) error {
				if err != nil {
					failed = append(failed, filepath.Base(path))
				}
				return nil
			})
			So(err, ShouldBeNil)
			So(failed, ShouldResemble, []string{"run-broken.json"})
		})
	})
}
