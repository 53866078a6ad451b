package common

import (
	"regexp"
	"strings"
)

var (
	slugSpaceRX  = regexp.MustCompile(`\s+`)
	slugStripRX  = regexp.MustCompile(`[^a-z0-9-]`)
	slugHyphenRX = regexp.MustCompile(`-{2,}`)
)

// Slugify derives the URL-safe string id of an entity from its
// human-readable title or name: lowercase, spaces become hyphens, anything
// else that is not URL-safe is dropped.
//
// Example: "Everything about the Transpiler" => "everything-about-the-transpiler"
func Slugify(s string) string {
	slug := strings.ToLower(strings.TrimSpace(s))
	slug = slugSpaceRX.ReplaceAllString(slug, "-")
	slug = slugStripRX.ReplaceAllString(slug, "")
	slug = slugHyphenRX.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
