package config

import (
	"fmt"
	"strings"
)

// Value checks mirror the host configuration rules the original webmail
// stack enforced: slugs and hostnames are restricted to DNS-safe characters,
// and the URL protocol is a closed set.

func isSlugRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-' || r == '.':
		return true
	default:
		return false
	}
}

// CheckSlug verifies that a string is a valid URL slug.
func CheckSlug(slug string) (string, error) {
	if slug == "" {
		return "", fmt.Errorf("config: invalid URL slug: %q", slug)
	}
	for _, r := range slug {
		if !isSlugRune(r) {
			return "", fmt.Errorf("config: invalid URL slug: %q", slug)
		}
	}
	return slug, nil
}

// CleanSlug lowercases and rewrites a free-form name into a valid slug:
// spaces become underscores, anything else unsafe is dropped.
func CleanSlug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case isSlugRune(r):
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteRune('_')
		}
	}
	return b.String()
}

// CheckHostname verifies that a string is a valid host name and returns it
// lowercased.
func CheckHostname(host string) (string, error) {
	if host == "" || len(host) > 253 {
		return "", fmt.Errorf("config: invalid hostname: %q", host)
	}
	for _, r := range host {
		if !isSlugRune(r) {
			return "", fmt.Errorf("config: invalid hostname: %q", host)
		}
	}
	return strings.ToLower(host), nil
}

// CheckURLProtocol restricts the protocol used when building absolute URLs.
func CheckURLProtocol(proto string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(proto)) {
	case "http":
		return "http", nil
	case "https":
		return "https", nil
	default:
		return "", fmt.Errorf("config: invalid url protocol: %q", proto)
	}
}

// CheckBool parses the boolean spellings accepted in configuration values
// and query flags.
func CheckBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "", "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("config: invalid boolean: %q", value)
	}
}

// CheckPort bounds a TCP port.
func CheckPort(port int) (int, error) {
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("config: invalid port: %d", port)
	}
	return port, nil
}
