package mini

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLabel(t *testing.T) {
	Convey("Given a terminal width cap", t, func() {
		orig := truncateAt
		Reset(func() { truncateAt = orig })

		Convey("Short entries should pass through unchanged", func() {
			truncateAt = 20
			So(label("Intro"), ShouldEqual, "Intro")
		})

		Convey("Long entries should be capped with an ellipsis", func() {
			truncateAt = 10
			So(label("A Very Long Mixtape Title"), ShouldEqual, "A Very Lo…")
		})

		Convey("The cut should land on rune boundaries", func() {
			truncateAt = 4
			So(label("débuté début"), ShouldEqual, "déb…")
		})

		Convey("An unknown width should disable the cap", func() {
			truncateAt = 0
			So(label("anything at all"), ShouldEqual, "anything at all")
		})
	})
}
