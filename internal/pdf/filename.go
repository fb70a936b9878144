package pdf

import (
	"regexp"
	"strings"
)

var unsafeFilenameRe = regexp.MustCompile(`[\x00-\x1f/\\:*?"<>|]+`)

// Filename derives a safe download filename from a document title. Unsafe
// characters collapse to underscores; an empty result falls back to
// "document".
func Filename(title string) string {
	name := unsafeFilenameRe.ReplaceAllString(strings.TrimSpace(title), "_")
	name = strings.Trim(name, "._ ")
	if name == "" {
		name = "document"
	}
	return name + ".pdf"
}
