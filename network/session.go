// Package network provides the HTTP session layer used for all communication with the mixtape site.
package network

import (
	"fmt"
	"io"
	"net/http"

	"github.com/mixtape-cli/mixtape/constant"
	"github.com/mixtape-cli/mixtape/internal/cache"
	"github.com/mixtape-cli/mixtape/key"
	"github.com/mixtape-cli/mixtape/log"
	"github.com/spf13/viper"
)

// Error represents a recoverable network failure. Callers are expected to
// surface the message ("server unavailable") and retry rather than crash.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("mixtape server unavailable for %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Session performs cached HTTP GET requests against the mixtape site.
// Responses for a URL are persisted to the page cache so repeated scrapes of
// the same page never recall the request.
type Session struct {
	// fetch is swappable for tests.
	fetch func(url string) (string, error)
}

// NewSession returns a Session wired to the shared client and page cache.
func NewSession() *Session {
	return &Session{}
}

// NewStubSession returns a Session that serves every request from fetch
// instead of the network. Intended for tests of packages built on Session.
func NewStubSession(fetch func(url string) (string, error)) *Session {
	return &Session{fetch: fetch}
}

type cachedPage struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// Get returns the response body for url, serving from the page cache when possible.
func (s *Session) Get(url string) (string, error) {
	useCache := viper.GetBool(key.NetworkCacheRequests)

	var cacheKey string
	if useCache {
		cacheKey = cache.GenerateKey(url, "GET")
		var page cachedPage
		if cache.Read(cacheKey, &page) {
			log.Debugf("page cache hit: %s", url)
			return page.Body, nil
		}
	}

	body, err := s.doGet(url)
	if err != nil {
		return "", &Error{URL: url, Err: err}
	}

	if useCache {
		_ = cache.Write(cacheKey, cachedPage{Status: http.StatusOK, Body: body})
	}

	return body, nil
}

// GetBytes returns the raw response payload for url. Payloads are never
// cached; this is the path mp3 content comes down through.
func (s *Session) GetBytes(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := Client.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	return payload, nil
}

func (s *Session) doGet(url string) (string, error) {
	if s.fetch != nil {
		return s.fetch(url)
	}

	if viper.GetBool(key.NetworkSpoofTLS) {
		body, status, err := doTLSRequest(http.MethodGet, url, nil, "")
		if err != nil {
			return "", err
		}
		if status != http.StatusOK {
			return "", fmt.Errorf("unexpected status %d", status)
		}
		return body, nil
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
