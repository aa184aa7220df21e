package history

import (
	"testing"

	"github.com/mixtape-cli/mixtape/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given a track", t, func() {
		record := &SavedTrack{
			MixtapeName: "Trap Classics",
			Artist:      "DJ Smoke",
			MixtapeLink: "/Trap-Classics-mixtape.123456.html",
			TrackTitle:  "City Lights",
			TrackNumber: 2,
			TracksTotal: 3,
		}

		Convey("When saving the track", func() {
			err := Save(record, 40)

			Convey("Then the record should be persisted", func() {
				So(err, ShouldBeNil)

				saved, err := Get()
				So(err, ShouldBeNil)
				So(len(saved), ShouldBeGreaterThan, 0)
				So(saved["Trap Classics (DJ Smoke)"].TrackTitle, ShouldEqual, "City Lights")
				So(saved["Trap Classics (DJ Smoke)"].ListenedPercentage, ShouldEqual, 40)
			})

			Convey("Then a lower percentage should not regress the record", func() {
				So(err, ShouldBeNil)
				So(Save(record, 10), ShouldBeNil)

				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved["Trap Classics (DJ Smoke)"].ListenedPercentage, ShouldEqual, 40)
			})

			Convey("Then removing it should delete the record", func() {
				So(err, ShouldBeNil)
				So(Remove(record), ShouldBeNil)

				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved["Trap Classics (DJ Smoke)"], ShouldBeNil)
			})
		})
	})
}
