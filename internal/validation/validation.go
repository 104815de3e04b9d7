package validation

import (
	"net/url"
	"strings"
)

// NormalizeWord lowercases a requested word so lookups are case-insensitive.
// Surrounding whitespace is kept: the word is used exactly as requested.
func NormalizeWord(word string) string {
	return strings.ToLower(word)
}

// NormalizeGloss collapses runs of whitespace to single spaces and trims the ends.
func NormalizeGloss(gloss string) string {
	return strings.Join(strings.Fields(gloss), " ")
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// LemmaKey maps a word onto the form lexicon indexes are keyed by:
// lowercase, trimmed, with spaces joined by underscores.
func LemmaKey(word string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(word)), " ", "_")
}
