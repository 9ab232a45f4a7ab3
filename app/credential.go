package app

import (
	"net/http"
	"net/url"
	"strings"
)

// CredentialProvider supplies the anti-forgery token attached to mutating requests.
// An empty token means none is available; requests are still sent, without the header.
type CredentialProvider interface {
	CSRFToken() string
}

type StaticCredential string

func (c StaticCredential) CSRFToken() string {
	return string(c)
}

// CookieHeaderCredential reads the token from a raw "a=1; b=2" cookie string.
type CookieHeaderCredential struct {
	Header string
	Name   string
}

func (c CookieHeaderCredential) CSRFToken() string {
	if c.Header == "" {
		return ""
	}

	for _, part := range strings.Split(c.Header, ";") {
		part = strings.TrimSpace(part)
		if !strings.HasPrefix(part, c.Name+"=") {
			continue
		}

		value := part[len(c.Name)+1:]
		if decoded, err := url.PathUnescape(value); err == nil {
			return decoded
		}
		return value
	}

	return ""
}

// CookieJarCredential reads the token from the cookies a jar holds for URL.
type CookieJarCredential struct {
	Jar  http.CookieJar
	URL  *url.URL
	Name string
}

func (c CookieJarCredential) CSRFToken() string {
	if c.Jar == nil || c.URL == nil {
		return ""
	}

	for _, cookie := range c.Jar.Cookies(c.URL) {
		if cookie.Name == c.Name {
			return cookie.Value
		}
	}

	return ""
}
