// Package urlcodec converts between the single URL string an operator types
// and the host/port/path triple the gateway stores.
package urlcodec

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
)

const (
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"

	DefaultHTTPPort  = 80
	DefaultHTTPSPort = 443
)

// ErrInvalidURL is returned when the URL field does not parse
var ErrInvalidURL = errors.New("invalid URL")

// Endpoint is the structured form of a target URL
type Endpoint struct {
	Host string
	Port int
	// Path includes the query suffix, if any
	Path string
}

// Decode parses raw into an Endpoint. A missing port defaults by scheme: 443
// for https, 80 otherwise. Port range is not checked.
func Decode(raw string) (Endpoint, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Endpoint{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Hostname() == "" {
		return Endpoint{}, fmt.Errorf("%w: %q is not an absolute URL", ErrInvalidURL, raw)
	}

	port := DefaultHTTPPort
	if u.Scheme == SchemeHTTPS {
		port = DefaultHTTPSPort
	}
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return Endpoint{}, fmt.Errorf("%w: bad port %q", ErrInvalidURL, p)
		}
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}

	return Endpoint{
		Host: u.Hostname(),
		Port: port,
		Path: path,
	}, nil
}

// Encode renders e as "{scheme}://{host}:{port}{path}". The scheme is https
// only when insecureSkipVerify is set; there is no separate TLS switch, so an
// https endpoint with verification enabled cannot be expressed.
func Encode(e Endpoint, insecureSkipVerify bool) string {
	scheme := SchemeHTTP
	if insecureSkipVerify {
		scheme = SchemeHTTPS
	}
	return scheme + "://" + net.JoinHostPort(e.Host, strconv.Itoa(e.Port)) + e.Path
}
