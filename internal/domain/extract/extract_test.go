package extract_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/extract"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExtractFencedBlock(t *testing.T) {
	Convey("Given an extractor", t, func() {
		e := extract.New()

		Convey("When the body has a decorative brace pair before a fenced block", func() {
			body := "Results attached {see below}.\n\n```json\n{\"schema_version\": \"3.0\"}\n```\nthanks!"
			p, err := e.Extract(body)

			Convey("Then the fenced block wins", func() {
				So(err, ShouldBeNil)
				So(p.Method, ShouldEqual, extract.MethodCodeBlock)
				So(p.Text, ShouldEqual, `{"schema_version": "3.0"}`)
			})
		})

		Convey("When the fence tag is uppercase", func() {
			body := "```JSON\n{\"a\": 1}\n```"
			p, err := e.Extract(body)
			So(err, ShouldBeNil)
			So(p.Method, ShouldEqual, extract.MethodCodeBlock)
		})

		Convey("When the only fenced block is unparseable", func() {
			body := "```json\n{\"a\": }\n```"
			p, err := e.Extract(body)

			Convey("Then the block is still surfaced for precise syntax diagnostics", func() {
				So(err, ShouldBeNil)
				So(p.Method, ShouldEqual, extract.MethodCodeBlock)
				So(p.Text, ShouldEqual, `{"a": }`)
			})
		})
	})
}

func TestExtractDirect(t *testing.T) {
	Convey("Given an extractor", t, func() {
		e := extract.New()

		Convey("When the body has one well-formed JSON substring and no fence", func() {
			body := `Here are my numbers: {"result_data": {"run_identity": {"run_id": "x"}}} cheers`
			p, err := e.Extract(body)

			Convey("Then that substring is returned as direct", func() {
				So(err, ShouldBeNil)
				So(p.Method, ShouldEqual, extract.MethodDirect)
				So(p.Text, ShouldEqual, `{"result_data": {"run_identity": {"run_id": "x"}}}`)
			})
		})

		Convey("When two nested balanced candidates exist and only the outer parses", func() {
			// The inner {"b": 1} parses too, but the outer is longer and valid.
			body := `junk {"a": {"b": 1}, "c": 2} junk`
			p, err := e.Extract(body)

			Convey("Then the outer (longest) candidate wins", func() {
				So(err, ShouldBeNil)
				So(p.Method, ShouldEqual, extract.MethodDirect)
				So(p.Text, ShouldEqual, `{"a": {"b": 1}, "c": 2}`)
			})
		})

		Convey("When an invalid candidate precedes a valid one", func() {
			body := `{not json} but then {"valid": true}`
			p, err := e.Extract(body)
			So(err, ShouldBeNil)
			So(p.Method, ShouldEqual, extract.MethodDirect)
			So(p.Text, ShouldEqual, `{"valid": true}`)
		})

		Convey("When the body exceeds the scan cap", func() {
			capped := extract.New(extract.WithMaxScanBytes(64))
			body := strings.Repeat("x", 100) + "\n" + `{"still": "found"}`
			p, err := capped.Extract(body)

			Convey("Then the line-buffered fallback still finds it", func() {
				So(err, ShouldBeNil)
				So(p.Method, ShouldEqual, extract.MethodLineScan)
				So(p.Text, ShouldEqual, `{"still": "found"}`)
			})
		})
	})
}

func TestExtractLineScan(t *testing.T) {
	Convey("Given an extractor with the quadratic scan disabled by size", t, func() {
		e := extract.New(extract.WithMaxScanBytes(1))

		Convey("When the payload spans multiple lines", func() {
			body := "report follows\n{\n  \"a\": 1,\n  \"b\": {\"c\": 2}\n}\ntrailing chatter"
			p, err := e.Extract(body)

			Convey("Then the accumulated block is returned", func() {
				So(err, ShouldBeNil)
				So(p.Method, ShouldEqual, extract.MethodLineScan)
				So(p.Text, ShouldEqual, "{\n  \"a\": 1,\n  \"b\": {\"c\": 2}\n}")
			})
		})

		Convey("When a failed candidate precedes a good one", func() {
			body := "{ not json\n}\n\n{\n\"ok\": true\n}"
			p, err := e.Extract(body)
			So(err, ShouldBeNil)
			So(p.Method, ShouldEqual, extract.MethodLineScan)
			So(p.Text, ShouldEqual, "{\n\"ok\": true\n}")
		})
	})
}

func TestExtractNotFound(t *testing.T) {
	Convey("Given an extractor", t, func() {
		e := extract.New()

		Convey("When the body has no payload at all", func() {
			p, err := e.Extract("just words, no data here")

			Convey("Then a not-found result is returned", func() {
				So(errors.Is(err, extract.ErrNoPayload), ShouldBeTrue)
				So(p.Found(), ShouldBeFalse)
				So(p.Method, ShouldEqual, extract.MethodNone)
			})
		})

		Convey("When the body is empty", func() {
			_, err := e.Extract("   \n\t ")
			So(errors.Is(err, extract.ErrNoPayload), ShouldBeTrue)
		})
	})
}
