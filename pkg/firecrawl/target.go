package firecrawl

import (
	"errors"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidURL is returned for targets that are malformed, not http(s),
// or point at a local or private address.
var ErrInvalidURL = errors.New("Invalid URL")

const (
	MaxLimit    = 5000
	MaxMaxDepth = 10
)

// NormalizeURL trims raw, prefixes https:// when no scheme is given and
// rejects non-http(s) schemes, localhost, and literal loopback, private,
// link-local or unspecified IPs. IPv4 literals are only accepted in
// canonical dotted-quad form.
func NormalizeURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrInvalidURL
	}
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		if strings.Contains(s, "://") {
			return "", ErrInvalidURL
		}
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Hostname() == "" {
		return "", ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrInvalidURL
	}

	host := strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return "", ErrInvalidURL
	}
	if addr, err := netip.ParseAddr(host); err == nil {
		addr = addr.Unmap()
		if addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() ||
			addr.IsLinkLocalMulticast() || addr.IsUnspecified() || addr.IsMulticast() {
			return "", ErrInvalidURL
		}
	} else if isLegacyIPv4(host) {
		return "", ErrInvalidURL
	}
	return u.String(), nil
}

// isLegacyIPv4 reports whether host is one of the other IPv4 spellings
// resolvers accept: one to four decimal, octal or hex parts, such as
// 2130706433, 127.1, 0x7f000001 or 0177.0.0.1.
func isLegacyIPv4(host string) bool {
	parts := strings.Split(host, ".")
	if len(parts) > 4 {
		return false
	}
	for _, p := range parts {
		if p == "" || strings.Contains(p, "_") {
			return false
		}
		if _, err := strconv.ParseUint(p, 0, 32); err != nil {
			return false
		}
	}
	return true
}

// ValidateOptions checks numeric option bounds.
func ValidateOptions(opts Options) error {
	if opts.Limit != nil && (*opts.Limit < 1 || *opts.Limit > MaxLimit) {
		return errors.New("limit must be between 1 and 5000")
	}
	if opts.MaxDepth != nil && (*opts.MaxDepth < 1 || *opts.MaxDepth > MaxMaxDepth) {
		return errors.New("maxDepth must be between 1 and 10")
	}
	return nil
}
