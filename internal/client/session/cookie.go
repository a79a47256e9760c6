package session

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
)

// CookieStorage mirrors selected keys into a cookie jar scoped to a frontend
// origin, where server-rendered pages look for the credential cookie.
// Keys outside the configured set are ignored.
type CookieStorage struct {
	jar  http.CookieJar
	site *url.URL
	keys []string
}

var _ Storage = (*CookieStorage)(nil)

func NewCookieStorage(jar http.CookieJar, siteURL string, keys ...string) (*CookieStorage, error) {
	u, err := url.Parse(siteURL)
	if err != nil {
		return nil, fmt.Errorf("parse cookie site url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("cookie site url %q must be absolute", siteURL)
	}
	return &CookieStorage{jar: jar, site: u, keys: keys}, nil
}

func (c *CookieStorage) Jar() http.CookieJar { return c.jar }

func (c *CookieStorage) handles(key string) bool {
	return slices.Contains(c.keys, key)
}

func (c *CookieStorage) Get(_ context.Context, key string) (string, bool, error) {
	if !c.handles(key) {
		return "", false, nil
	}
	for _, ck := range c.jar.Cookies(c.site) {
		if ck.Name != key {
			continue
		}
		v, err := url.QueryUnescape(ck.Value)
		if err != nil {
			return "", false, fmt.Errorf("decode cookie %s: %w", key, err)
		}
		return v, true, nil
	}
	return "", false, nil
}

func (c *CookieStorage) Set(_ context.Context, key, value string) error {
	if !c.handles(key) {
		return nil
	}
	c.jar.SetCookies(c.site, []*http.Cookie{{
		Name:     key,
		Value:    url.QueryEscape(value),
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}})
	return nil
}

func (c *CookieStorage) Delete(_ context.Context, key string) error {
	if !c.handles(key) {
		return nil
	}
	c.jar.SetCookies(c.site, []*http.Cookie{{Name: key, Path: "/", MaxAge: -1}})
	return nil
}
