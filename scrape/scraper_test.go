package scrape

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const embedPage = `
<script>
var tracks = [
	{"title":"1 - Intro","mp3":"01 - Intro.mp3"},
	{"title":"2 - Money Longer","mp3":"02 - Money Longer.mp3"},
	{"title":"3 - Outro","mp3":"03 - Outro.mp3"}
];
var src = "https://hw-mp3.datpiff.com/mixtapes/6/m1393dba/";
</script>
<div class="title">Trap Classics</div>
`

const mobilePage = `
<meta property="og:title" content="Trap Classics (Mobile)"/>
`

const profilePage = `
<a class="profile-link" href="/profile/dj-smoke"> DJ Smoke </a>
<div class="bio">
	The <b>hardest</b> working DJ in the game.
</div>
`

const listingPage = `
<div class="contentItemInner">
	<a href="/mixtapes/Trap-Classics.123456.html" title="Trap Classics"><img/></a>
	<div class="artist">DJ Smoke</div>
</div>
<div class="contentItemInner">
	<a href="/mixtapes/Street-Dreams.654321.html" title="Street Dreams"><img/></a>
	<div class="artist">DJ Wreck</div>
</div>
`

func TestEmbedPlayerExtraction(t *testing.T) {
	Convey("Given an embed player page", t, func() {
		Convey("SongTitles", func() {
			titles, err := SongTitles(embedPage)
			So(err, ShouldBeNil)
			So(titles, ShouldResemble, []string{"1 - Intro", "2 - Money Longer", "3 - Outro"})
		})

		Convey("Mp3URLFragments url-encodes spaces", func() {
			fragments, err := Mp3URLFragments(embedPage)
			So(err, ShouldBeNil)
			So(len(fragments), ShouldEqual, 3)
			So(fragments[1], ShouldEqual, "02%20-%20Money%20Longer.mp3")
		})

		Convey("EmbedPlayerID", func() {
			id, err := EmbedPlayerID(embedPage)
			So(err, ShouldBeNil)
			So(id, ShouldEqual, "6/m1393dba")
		})

		Convey("AlbumName desktop", func() {
			name, err := AlbumName(embedPage, false)
			So(err, ShouldBeNil)
			So(name, ShouldEqual, "Trap Classics")
		})

		Convey("AlbumName mobile fallback", func() {
			name, err := AlbumName(mobilePage, true)
			So(err, ShouldBeNil)
			So(name, ShouldEqual, "Trap Classics (Mobile)")
		})

		Convey("Empty page yields errors, not partial results", func() {
			_, err := SongTitles("<html></html>")
			So(err, ShouldNotBeNil)

			_, err = EmbedPlayerID("<html></html>")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestProfileExtraction(t *testing.T) {
	Convey("Given a mixtape page", t, func() {
		Convey("UploaderName", func() {
			name, err := UploaderName(profilePage)
			So(err, ShouldBeNil)
			So(name, ShouldEqual, "DJ Smoke")
		})

		Convey("UploaderBio strips markup", func() {
			bio, err := UploaderBio(profilePage)
			So(err, ShouldBeNil)
			So(bio, ShouldEqual, "The hardest working DJ in the game.")
		})
	})
}

func TestAlbumSuffixNumber(t *testing.T) {
	Convey("AlbumSuffixNumber", t, func() {
		number, err := AlbumSuffixNumber("/mixtapes/Trap-Classics.123456.html")
		So(err, ShouldBeNil)
		So(number, ShouldEqual, "123456")

		Convey("Links without a numeric suffix fail", func() {
			_, err := AlbumSuffixNumber("/mixtapes/broken-link")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestListing(t *testing.T) {
	Convey("Given a category listing page", t, func() {
		entries, err := Listing(listingPage)
		So(err, ShouldBeNil)
		So(len(entries), ShouldEqual, 2)
		So(entries[0].Title, ShouldEqual, "Trap Classics")
		So(entries[0].Artist, ShouldEqual, "DJ Smoke")
		So(entries[0].Link, ShouldEqual, "/mixtapes/Trap-Classics.123456.html")
		So(entries[1].Artist, ShouldEqual, "DJ Wreck")
	})
}
