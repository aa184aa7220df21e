package network

import (
	"errors"
	"testing"

	"github.com/mixtape-cli/mixtape/filesystem"
	"github.com/mixtape-cli/mixtape/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSession(t *testing.T) {
	Convey("Given a session with a stubbed fetch", t, func() {
		calls := 0
		s := &Session{fetch: func(url string) (string, error) {
			calls++
			return "<html>page for " + url + "</html>", nil
		}}

		Convey("When request caching is enabled", func() {
			viper.Set(key.NetworkCacheRequests, true)

			body, err := s.Get("https://example.com/mixtape/1")
			So(err, ShouldBeNil)
			So(body, ShouldContainSubstring, "mixtape/1")

			Convey("Then a repeated request is served from the cache", func() {
				again, err := s.Get("https://example.com/mixtape/1")
				So(err, ShouldBeNil)
				So(again, ShouldEqual, body)
				So(calls, ShouldEqual, 1)
			})
		})

		Convey("When request caching is disabled", func() {
			viper.Set(key.NetworkCacheRequests, false)

			_, _ = s.Get("https://example.com/mixtape/2")
			_, _ = s.Get("https://example.com/mixtape/2")
			So(calls, ShouldEqual, 2)
		})

		Convey("When the fetch fails", func() {
			viper.Set(key.NetworkCacheRequests, false)
			failing := &Session{fetch: func(url string) (string, error) {
				return "", errors.New("connection refused")
			}}

			_, err := failing.Get("https://example.com/down")

			Convey("Then the error is a recoverable network error", func() {
				So(err, ShouldNotBeNil)

				var netErr *Error
				So(errors.As(err, &netErr), ShouldBeTrue)
				So(netErr.Error(), ShouldContainSubstring, "server unavailable")
			})
		})
	})
}
