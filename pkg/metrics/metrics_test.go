package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		Convey("When creating with default options", func() {
			m := NewManager()

			Convey("Then it should be created with its own registry", func() {
				So(m, ShouldNotBeNil)
				So(m.Registry(), ShouldNotBeNil)
			})
		})

		Convey("When creating with a custom namespace", func() {
			m := NewManager(WithNamespace("custom"))

			Convey("Then it should be created successfully", func() {
				So(m, ShouldNotBeNil)
			})
		})
	})
}

func TestRecordingHelpers(t *testing.T) {
	Convey("Given the package-level manager", t, func() {
		m := Default()

		Convey("When recording extractions", func() {
			before := testutil.ToFloat64(m.extractions.WithLabelValues("code_block"))
			RecordExtraction("code_block")

			Convey("Then the counter should increase", func() {
				So(testutil.ToFloat64(m.extractions.WithLabelValues("code_block")), ShouldEqual, before+1)
			})
		})

		Convey("When recording defects by category", func() {
			before := testutil.ToFloat64(m.defects.WithLabelValues("ranges"))
			RecordDefects("ranges", 3)

			Convey("Then three defects should be counted", func() {
				So(testutil.ToFloat64(m.defects.WithLabelValues("ranges")), ShouldEqual, before+3)
			})
		})

		Convey("When recording store activity", func() {
			stored := testutil.ToFloat64(m.recordsStored)
			stale := testutil.ToFloat64(m.staleRejections)
			removed := testutil.ToFloat64(m.duplicatesRemoved)

			RecordStored()
			RecordStaleRejection()
			RecordDuplicatesRemoved(2)
			RecordWriteLatency(1.2)

			Convey("Then each counter should reflect the activity", func() {
				So(testutil.ToFloat64(m.recordsStored), ShouldEqual, stored+1)
				So(testutil.ToFloat64(m.staleRejections), ShouldEqual, stale+1)
				So(testutil.ToFloat64(m.duplicatesRemoved), ShouldEqual, removed+2)
			})
		})
	})
}
