package inline

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/mixtape-cli/mixtape/scrape"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWriteJson(t *testing.T) {
	Convey("writeJson", t, func() {
		Convey("Should produce valid JSON for an empty result", func() {
			var buf bytes.Buffer
			err := writeJson(&buf, nil, &Options{Query: "test", Json: true})
			So(err, ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Query, ShouldEqual, "test")
			So(output.Result, ShouldHaveLength, 0)
		})

		Convey("Should use the category as the query fallback", func() {
			var buf bytes.Buffer
			err := writeJson(&buf, nil, &Options{Category: "hot"})
			So(err, ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Query, ShouldEqual, "hot")
		})
	})
}

func TestParseMixtapePicker(t *testing.T) {
	entries := []scrape.ListingEntry{
		{Title: "First Tape"},
		{Title: "Second Tape"},
		{Title: "Third Tape"},
	}

	Convey("ParseMixtapePicker", t, func() {
		Convey("first and last", func() {
			picker, err := ParseMixtapePicker("first", "")
			So(err, ShouldBeNil)
			So(picker(entries).Title, ShouldEqual, "First Tape")

			picker, err = ParseMixtapePicker("last", "")
			So(err, ShouldBeNil)
			So(picker(entries).Title, ShouldEqual, "Third Tape")
		})

		Convey("exact", func() {
			picker, err := ParseMixtapePicker("exact", "Second Tape")
			So(err, ShouldBeNil)
			So(picker(entries).Title, ShouldEqual, "Second Tape")

			picker, err = ParseMixtapePicker("exact", "Missing Tape")
			So(err, ShouldBeNil)
			So(picker(entries), ShouldBeNil)
		})

		Convey("index clamps to the listing", func() {
			picker, err := ParseMixtapePicker("index", "99")
			So(err, ShouldBeNil)
			So(picker(entries).Title, ShouldEqual, "Third Tape")
		})

		Convey("unknown kind", func() {
			_, err := ParseMixtapePicker("fanciest", "")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParseTracksFilter(t *testing.T) {
	titles := []string{"Intro", "City Lights", "Night Drive", "Outro"}

	Convey("ParseTracksFilter", t, func() {
		Convey("first, last and all", func() {
			filter, err := ParseTracksFilter("first")
			So(err, ShouldBeNil)
			numbers, _ := filter(titles)
			So(numbers, ShouldResemble, []int{1})

			filter, err = ParseTracksFilter("last")
			So(err, ShouldBeNil)
			numbers, _ = filter(titles)
			So(numbers, ShouldResemble, []int{4})

			filter, err = ParseTracksFilter("all")
			So(err, ShouldBeNil)
			numbers, _ = filter(titles)
			So(numbers, ShouldResemble, []int{1, 2, 3, 4})
		})

		Convey("range", func() {
			filter, err := ParseTracksFilter("2-3")
			So(err, ShouldBeNil)
			numbers, _ := filter(titles)
			So(numbers, ShouldResemble, []int{2, 3})
		})

		Convey("range clamps to the album length", func() {
			filter, err := ParseTracksFilter("3-99")
			So(err, ShouldBeNil)
			numbers, _ := filter(titles)
			So(numbers, ShouldResemble, []int{3, 4})
		})

		Convey("substring", func() {
			filter, err := ParseTracksFilter("@night@")
			So(err, ShouldBeNil)
			numbers, _ := filter(titles)
			So(numbers, ShouldResemble, []int{3})
		})

		Convey("single number", func() {
			filter, err := ParseTracksFilter("2")
			So(err, ShouldBeNil)
			numbers, _ := filter(titles)
			So(numbers, ShouldResemble, []int{2})
		})

		Convey("invalid", func() {
			_, err := ParseTracksFilter("every other one")
			So(err, ShouldNotBeNil)
		})
	})
}
