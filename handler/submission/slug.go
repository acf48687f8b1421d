package submission

import (
	"regexp"
	"strings"
)

const maxSlugLen = 50

var (
	slugStripPattern  = regexp.MustCompile(`[^\w\s-]`)
	slugSpacePattern  = regexp.MustCompile(`\s+`)
	slugHyphenPattern = regexp.MustCompile(`-+`)
)

// GenerateSlug derives a URL-friendly token from a title: lowercase,
// word characters and hyphens only, whitespace runs collapsed to single
// hyphens, at most 50 characters, no leading or trailing hyphens.
func GenerateSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStripPattern.ReplaceAllString(slug, "")
	slug = slugSpacePattern.ReplaceAllString(slug, "-")
	slug = slugHyphenPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	return slug
}
