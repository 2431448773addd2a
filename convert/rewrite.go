package convert

import (
	"path/filepath"
	"regexp"
	"strings"
)

// imageRefPattern matches Markdown image syntax: ![alt](path).
var imageRefPattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)

// relativizeImagePaths rewrites absolute image references to paths relative
// to base, the output file's directory. Only references pointing inside
// base are rewritten; paths outside it (or on another volume, where no
// relative form exists) are left absolute rather than failing. Relative
// results use forward slashes, the portable Markdown form.
func relativizeImagePaths(text, base string) string {
	return imageRefPattern.ReplaceAllStringFunc(text, func(ref string) string {
		parts := imageRefPattern.FindStringSubmatch(ref)
		alt, path := parts[1], parts[2]
		if !filepath.IsAbs(path) {
			return ref
		}
		rel, err := filepath.Rel(base, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return ref
		}
		return "![" + alt + "](" + filepath.ToSlash(rel) + ")"
	})
}
