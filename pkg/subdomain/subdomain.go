// Package subdomain derives URL-safe store subdomains from display names.
package subdomain

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	disallowed    = regexp.MustCompile(`[^a-z0-9-]`)
)

// Generate maps a store display name to its subdomain slug: lowercase,
// runs of whitespace become a single hyphen, everything outside
// [a-z0-9-] is stripped. Deterministic and pure. An empty result means
// the store name cannot produce a usable subdomain and must be rejected
// by the caller.
func Generate(storeName string) string {
	s := strings.ToLower(storeName)
	s = whitespaceRun.ReplaceAllString(s, "-")
	return disallowed.ReplaceAllString(s, "")
}
