package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	edgeHyphens  = regexp.MustCompile(`^-+|-+$`)
)

// GenerateSlug turns a display name into a URL-safe identifier.
// It lowercases and trims the name, collapses every run of characters outside
// [a-z0-9] into a single hyphen and strips hyphens from both ends.
func GenerateSlug(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	s = nonSlugChars.ReplaceAllString(s, "-")
	return edgeHyphens.ReplaceAllString(s, "")
}

// SlugCandidate returns the slug to probe on the given attempt.
// Attempt 0 is the bare slug; attempt n yields "<slug>-n". The suffix is always
// applied to the base slug, never to a previously suffixed one.
func SlugCandidate(base string, attempt int) string {
	if attempt <= 0 {
		return base
	}
	return base + "-" + strconv.Itoa(attempt)
}

// reservedSlugs are the static first path segments under /api. An instance
// with one of these slugs would lose its task routes to the static route.
var reservedSlugs = map[string]struct{}{
	"check-instance":    {},
	"login":             {},
	"register-instance": {},
	"session":           {},
}

// IsReservedSlug reports whether slug collides with a fixed API route.
func IsReservedSlug(slug string) bool {
	_, ok := reservedSlugs[slug]
	return ok
}
