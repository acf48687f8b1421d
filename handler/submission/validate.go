package submission

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	minTitleLen   = 3
	minContentLen = 10
)

// ValidateTitle rejects titles shorter than the minimum length. The
// returned message is shown to the user verbatim.
func ValidateTitle(title string) error {
	if utf8.RuneCountInString(title) < minTitleLen {
		return fmt.Errorf("Title too short. Please enter at least %d characters.", minTitleLen)
	}
	return nil
}

// ValidateContent rejects content shorter than the minimum length.
func ValidateContent(content string) error {
	if utf8.RuneCountInString(content) < minContentLen {
		return fmt.Errorf("Content too short. Please enter at least %d characters.", minContentLen)
	}
	return nil
}

// ValidateMediaURL accepts well-formed absolute http(s) URLs.
func ValidateMediaURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("Please send a valid media URL or type \"skip\".")
	}
	return nil
}

// ParseTags splits comma-separated input into trimmed tags, dropping
// empty entries.
func ParseTags(input string) []string {
	parts := strings.Split(input, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
