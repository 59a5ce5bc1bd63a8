package record_test

import (
	"errors"
	"testing"

	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/record"
	. "github.com/smartystreets/goconvey/convey"
)

func TestValueTree(t *testing.T) {
	Convey("Given a decoded record tree", t, func() {
		v, err := record.Decode([]byte(`{
			"schema_version": "3.0",
			"result_data": {
				"run_identity": {"run_id": "toolx_A_20250115", "run_number": 1},
				"implementations": {
					"api": {
						"acceptance": {"passrate": 0.92, "pass_count": 23}
					}
				},
				"flags": {"enabled": true, "note": null},
				"list": [1, "two", 3.5]
			}
		}`))
		So(err, ShouldBeNil)

		Convey("Then path access reaches nested members", func() {
			runID := v.At("result_data", "run_identity", "run_id")
			s, ok := runID.Str()
			So(ok, ShouldBeTrue)
			So(s, ShouldEqual, "toolx_A_20250115")
		})

		Convey("Then missing paths return an absence marker, not a failure", func() {
			missing := v.At("result_data", "no_such", "deeper", "still_deeper")
			So(missing.Exists(), ShouldBeFalse)
			So(missing.Kind(), ShouldEqual, record.Absent)
			So(missing.TypeName(), ShouldEqual, "absent")
		})

		Convey("Then integers and floats are distinguished", func() {
			runNumber := v.At("result_data", "run_identity", "run_number")
			So(runNumber.IsInteger(), ShouldBeTrue)
			So(runNumber.TypeName(), ShouldEqual, "integer")
			So(runNumber.Is("number"), ShouldBeTrue)

			passrate := v.At("result_data", "implementations", "api", "acceptance", "passrate")
			So(passrate.IsInteger(), ShouldBeFalse)
			So(passrate.TypeName(), ShouldEqual, "number")
			f, ok := passrate.Float()
			So(ok, ShouldBeTrue)
			So(f, ShouldAlmostEqual, 0.92)
		})

		Convey("Then nulls are present but null", func() {
			note := v.At("result_data", "flags", "note")
			So(note.Exists(), ShouldBeTrue)
			So(note.IsNull(), ShouldBeTrue)
		})

		Convey("Then arrays index safely", func() {
			list := v.At("result_data", "list")
			So(list.Kind(), ShouldEqual, record.Array)
			So(list.Len(), ShouldEqual, 3)

			s, ok := list.Index(1).Str()
			So(ok, ShouldBeTrue)
			So(s, ShouldEqual, "two")
			So(list.Index(9).Exists(), ShouldBeFalse)
			So(list.Index(-1).Exists(), ShouldBeFalse)
		})

		Convey("Then object keys come back sorted", func() {
			flags := v.At("result_data", "flags")
			So(flags.Keys(), ShouldResemble, []string{"enabled", "note"})
		})
	})
}

func TestDecodeSyntaxErrors(t *testing.T) {
	Convey("Given malformed JSON", t, func() {
		Convey("When a delimiter is missing", func() {
			_, err := record.Decode([]byte("{\n  \"a\": 1,\n  \"b\" 2\n}"))

			Convey("Then the error carries line and column", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, record.ErrSyntaxInvalid), ShouldBeTrue)

				var serr *record.SyntaxError
				So(errors.As(err, &serr), ShouldBeTrue)
				So(serr.Line, ShouldEqual, 3)
				So(serr.Column, ShouldBeGreaterThan, 1)
			})
		})

		Convey("When there is trailing content", func() {
			_, err := record.Decode([]byte(`{"a": 1} garbage`))
			So(errors.Is(err, record.ErrSyntaxInvalid), ShouldBeTrue)

			Convey("Then the location points at the trailing bytes, not the start", func() {
				var serr *record.SyntaxError
				So(errors.As(err, &serr), ShouldBeTrue)
				So(serr.Line, ShouldEqual, 1)
				So(serr.Column, ShouldBeGreaterThan, 8)
			})
		})

		Convey("When trailing content starts on a later line", func() {
			_, err := record.Decode([]byte("{\"a\": 1}\ngarbage"))

			var serr *record.SyntaxError
			So(errors.As(err, &serr), ShouldBeTrue)
			So(serr.Line, ShouldEqual, 2)
		})
	})
}
