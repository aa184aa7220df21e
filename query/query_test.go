package query

import (
	"testing"

	"github.com/mixtape-cli/mixtape/filesystem"
	"github.com/mixtape-cli/mixtape/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given query history", t, func() {
		Convey("When remembering queries", func() {
			So(Remember("gucci mane", 1), ShouldBeNil)
			So(Remember("future", 10), ShouldBeNil)

			Convey("Then suggestions should be sorted by rank", func() {
				// drop the in-memory layer to force a read from disk
				suggestionCache = make(map[string][]*queryRecord)

				s := SuggestMany("fut")
				So(len(s), ShouldBeGreaterThanOrEqualTo, 1)
				So(s[0], ShouldEqual, "future")
			})

			Convey("Then Suggest should wrap the best match", func() {
				suggestionCache = make(map[string][]*queryRecord)

				So(Suggest("gucci").IsPresent(), ShouldBeTrue)
				So(Suggest("zzzzz").IsAbsent(), ShouldBeTrue)
			})

			Convey("It sanitizes input", func() {
				So(sanitize("  FUTURE  "), ShouldEqual, "future")
			})
		})

		Convey("When suggestions are disabled", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			defer viper.Set(key.SearchShowQuerySuggestions, true)

			So(SuggestMany("fut"), ShouldBeEmpty)
		})
	})
}
