// Package netguard checks backend addresses before credentials are sent
// to them.
package netguard

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// CheckBaseURL rejects backend URLs that are not absolute http(s) URLs.
func CheckBaseURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid backend url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid backend url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid backend url %q: missing host", raw)
	}
	return nil
}

// IsLoopback reports whether host (optionally with a port) names this
// machine.
func IsLoopback(host string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(strings.TrimSpace(host), "[]")
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// InsecureSession reports whether a session cookie sent to raw would cross
// the network unencrypted.
func InsecureSession(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme != "http" {
		return false
	}
	return !IsLoopback(u.Host)
}
