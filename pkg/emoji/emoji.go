package emoji

import (
	"strings"

	"github.com/forPelevin/gomoji"
)

// IsEmoji reports whether s is exactly one emoji with nothing around it.
func IsEmoji(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	if len(gomoji.CollectAll(s)) != 1 {
		return false
	}
	return gomoji.RemoveEmojis(s) == ""
}

// AllEmoji reports whether every value is an emoji. An empty list passes.
func AllEmoji(values []string) bool {
	for _, v := range values {
		if !IsEmoji(v) {
			return false
		}
	}
	return true
}
