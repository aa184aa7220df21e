package media

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mixtape-cli/mixtape/filesystem"
	"github.com/mixtape-cli/mixtape/key"
	"github.com/mixtape-cli/mixtape/network"
	"github.com/mixtape-cli/mixtape/player"
	"github.com/mixtape-cli/mixtape/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

const embedPage = `
<html><body>
<div class="player" data-src="https://hw-mp3.datpiff.com/mixtapes/6/m1393dba/">
<script>
var tracks = [
  {"title":"Intro","mp3":"Trap%20Classics%20-%2001%20-%20Intro.mp3"},
  {"title":"City Lights","mp3":"Trap Classics - 02 - City Lights.mp3"},
  {"title":"Outro","mp3":"Trap%20Classics%20-%2003%20-%20Outro.mp3"}
];
</script>
<div class="title">Trap Classics</div>
</body></html>`

const mobilePage = `
<html><head>
<meta property="og:title" content="Trap Classics" />
</head><body>
<script>
var tracks = [
  {"title":"Intro","mp3":"Trap%20Classics%20-%2001%20-%20Intro.mp3"}
];
</script>
<div data-src="https://hw-mp3.datpiff.com/mixtapes/6/m1393dba/"></div>
</body></html>`

const albumPage = `
<html><body>
<a class="profile-link" href="/profile/dj-smoke">DJ Smoke</a>
<div class="bio">
  The <b>hottest</b> trap mixtape of the year.
</div>
</body></html>`

const listingPage = `
<div class="contentItemInner">
  <a href="/Trap-Classics-mixtape.123456.html" title="Trap Classics"><img/></a>
  <div class="artist">DJ Smoke</div>
</div>
<div class="contentItemInner">
  <a href="/Street-Dreams-mixtape.654321.html" title="Street Dreams"><img/></a>
  <div class="artist">Various Artists</div>
</div>`

// stubSession serves canned pages by URL substring and records fetches.
func stubSession(fetched *[]string) *network.Session {
	return network.NewStubSession(func(url string) (string, error) {
		if fetched != nil {
			*fetched = append(*fetched, url)
		}

		switch {
		case strings.Contains(url, "embeds.datpiff.com"):
			return embedPage, nil
		case strings.Contains(url, "mobile.datpiff.com"):
			return mobilePage, nil
		case strings.Contains(url, "-mixtape."):
			return albumPage, nil
		case strings.Contains(url, "/mixtapes/"), strings.Contains(url, "mixtapes-"):
			return listingPage, nil
		default:
			return "", fmt.Errorf("unexpected url %s", url)
		}
	})
}

func TestAlbum(t *testing.T) {
	viper.Set(key.NetworkCacheRequests, false)

	Convey("Album", t, func() {
		var fetched []string
		session := stubSession(&fetched)

		Convey("Should resolve a listing link through the desktop embed page", func() {
			album, err := NewAlbum(session, "/Trap-Classics-mixtape.123456.html")
			So(err, ShouldBeNil)

			So(fetched[0], ShouldContainSubstring, "embeds.datpiff.com/mixtape/123456")
			So(fetched[0], ShouldContainSubstring, "platform=desktop")

			name, err := album.Name()
			So(err, ShouldBeNil)
			So(name, ShouldEqual, "Trap Classics")

			id, err := album.ID()
			So(err, ShouldBeNil)
			So(id, ShouldEqual, "6/m1393dba")
		})

		Convey("Should fall back to the mobile embed page", func() {
			session := network.NewStubSession(func(url string) (string, error) {
				if strings.Contains(url, "embeds.datpiff.com") {
					return "<html>redesigned page</html>", nil
				}
				return mobilePage, nil
			})

			album, err := NewAlbum(session, "/Trap-Classics-mixtape.123456.html")
			So(err, ShouldBeNil)

			name, err := album.Name()
			So(err, ShouldBeNil)
			So(name, ShouldEqual, "Trap Classics")
		})

		Convey("Should reject a link without an album id", func() {
			_, err := NewAlbum(session, "/profile/dj-smoke")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "no album id")
		})

		Convey("Should fetch uploader details from the album page", func() {
			album, err := NewAlbum(session, "/Trap-Classics-mixtape.123456.html")
			So(err, ShouldBeNil)

			uploader, err := album.Uploader()
			So(err, ShouldBeNil)
			So(uploader, ShouldEqual, "DJ Smoke")

			bio, err := album.Bio()
			So(err, ShouldBeNil)
			So(bio, ShouldEqual, "The hottest trap mixtape of the year.")

			// the album page is fetched once and reused
			pageFetches := 0
			for _, url := range fetched {
				if strings.Contains(url, "-mixtape.123456.html") {
					pageFetches++
				}
			}
			So(pageFetches, ShouldEqual, 1)
		})
	})
}

func TestMp3(t *testing.T) {
	viper.Set(key.NetworkCacheRequests, false)

	Convey("Mp3", t, func() {
		album, err := NewAlbum(stubSession(nil), "/Trap-Classics-mixtape.123456.html")
		So(err, ShouldBeNil)

		mp3s, err := NewMp3(album)
		So(err, ShouldBeNil)

		Convey("Should list every track in album order", func() {
			So(mp3s.Songs(), ShouldResemble, []string{"Intro", "City Lights", "Outro"})
			So(mp3s.Len(), ShouldEqual, 3)
			So(mp3s.Album(), ShouldEqual, "Trap Classics")
		})

		Convey("Should build payload URLs off the media host", func() {
			url, err := mp3s.URLAt(1)
			So(err, ShouldBeNil)
			So(url, ShouldEqual, "https://hw-mp3.datpiff.com/mixtapes/6/m1393dba/Trap%20Classics%20-%2001%20-%20Intro.mp3")
		})

		Convey("Should url-encode spaces in fragments", func() {
			url, err := mp3s.URLAt(2)
			So(err, ShouldBeNil)
			So(url, ShouldNotContainSubstring, " ")
			So(url, ShouldContainSubstring, "%20")
		})

		Convey("Should reject out of range track numbers", func() {
			_, err := mp3s.URLAt(0)
			So(err, ShouldNotBeNil)

			_, err = mp3s.URLAt(4)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestMixtapes(t *testing.T) {
	viper.Set(key.NetworkCacheRequests, false)

	Convey("Mixtapes", t, func() {
		mixtapes := NewMixtapes(stubSession(nil))

		Convey("Should list a category's entries", func() {
			entries, err := mixtapes.ByCategory("hot")
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 2)
			So(entries[0].Title, ShouldEqual, "Trap Classics")
			So(entries[0].Artist, ShouldEqual, "DJ Smoke")
			So(entries[0].Link, ShouldEqual, "/Trap-Classics-mixtape.123456.html")
		})

		Convey("Should reject an unknown category", func() {
			_, err := mixtapes.ByCategory("freshest")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown category")
		})

		Convey("Should search by query", func() {
			entries, err := mixtapes.Search("trap")
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 2)
		})

		Convey("Every category should have a listing path", func() {
			for _, category := range Categories {
				So(ValidCategory(category), ShouldBeTrue)
			}
		})

		Convey("Multi-word categories should use hyphenated names", func() {
			So(ValidCategory("most-download"), ShouldBeTrue)
			So(ValidCategory("most-listen"), ShouldBeTrue)
			So(ValidCategory("most-favorite"), ShouldBeTrue)
			So(ValidCategory("highest-rating"), ShouldBeTrue)
			So(ValidCategory("most download"), ShouldBeFalse)
		})

		Convey("Limit should truncate without reordering", func() {
			entries, err := mixtapes.ByCategory("hot")
			So(err, ShouldBeNil)

			limited := Limit(entries, 1)
			So(limited, ShouldHaveLength, 1)
			So(limited[0].Title, ShouldEqual, "Trap Classics")

			So(Limit(entries, 0), ShouldHaveLength, 2)
			So(Limit(entries, 10), ShouldHaveLength, 2)
		})
	})
}

func TestProbe(t *testing.T) {
	Convey("BuildTrack", t, func() {
		Convey("Should estimate duration when no frames decode", func() {
			// 240000 bytes of silence at the assumed 192 kbps is 10 seconds
			payload := make([]byte, 240000)
			track := BuildTrack("Intro", "Trap Classics", 1, "http://example/x.mp3", payload)

			So(track.Duration, ShouldAlmostEqual, 10, 0.001)
			So(track.ContentLength, ShouldEqual, 240000)
			So(track.Title, ShouldEqual, "Intro")
			So(track.Album, ShouldEqual, "Trap Classics")
			So(track.Valid(), ShouldBeTrue)
		})

		Convey("Should keep the scraped title when the payload has no tags", func() {
			track := BuildTrack("City Lights", "", 2, "", make([]byte, 1000))
			So(track.Title, ShouldEqual, "City Lights")
			So(track.Number, ShouldEqual, 2)
		})
	})
}

func TestDownload(t *testing.T) {
	Convey("Download", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		track := &player.Track{
			Title:         "Intro",
			Album:         "Trap Classics",
			Number:        1,
			Duration:      10,
			ContentLength: 4,
			Content:       []byte("mp3!"),
		}

		Convey("Should write the payload under the downloads directory", func() {
			path, err := Download(track)
			So(err, ShouldBeNil)
			So(path, ShouldContainSubstring, where.Downloads())
			So(path, ShouldContainSubstring, "Trap_Classics")
			So(path, ShouldEndWith, "01 - Intro.mp3")

			data, err := filesystem.API().ReadFile(path)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "mp3!")
		})

		Convey("Should refuse a track without a payload", func() {
			_, err := Download(&player.Track{Title: "Empty"})
			So(err, ShouldNotBeNil)
		})
	})
}
