package filex

import (
	"regexp"
	"strings"
)

// hostileChars are characters that are unsafe in filenames on at least one
// supported filesystem.
var hostileChars = regexp.MustCompile(`[\\/:*?"<>|#]`)

// SanitizeName makes s safe to use as a filename component: surrounding
// whitespace is trimmed, inner spaces become underscores and
// filesystem-hostile characters are each replaced by an underscore.
func SanitizeName(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
	return hostileChars.ReplaceAllString(s, "_")
}
