package domain

import "strings"

// ParseTags extracts hashtags from free text. Tokens are split on whitespace;
// only tokens starting with "#" survive, lowercased, in order, duplicates kept.
func ParseTags(text string) []string {
	tags := []string{}
	for _, token := range strings.Fields(text) {
		if strings.HasPrefix(token, "#") {
			tags = append(tags, strings.ToLower(token))
		}
	}
	return tags
}

// FormatTags joins tags back into editable text.
func FormatTags(tags []string) string {
	return strings.Join(tags, " ")
}
