package photo

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// SanitizeSlug normalizes a caller-supplied album slug into a single safe
// path segment: separators and dot-segments are stripped, anything outside
// [a-zA-Z0-9._-] becomes a hyphen, runs of hyphens collapse, and the result
// is lower-cased. The output never escapes the bucket prefix.
func SanitizeSlug(slug string) string {
	s := strings.TrimSpace(slug)
	s = strings.ReplaceAll(s, "\\", "/")
	s = strings.Trim(s, "/")

	// Drop traversal and empty segments, then fold the rest into one segment.
	var kept []string
	for _, seg := range strings.Split(s, "/") {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		kept = append(kept, seg)
	}
	s = strings.Join(kept, "-")

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	s = b.String()

	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")
	// A slug of only dots would survive the segment filter as e.g. "...";
	// refuse anything that still reduces to dot-segments.
	if strings.Trim(s, ".") == "" {
		return ""
	}
	return strings.ToLower(s)
}

// ObjectPath derives the storage key for an upload: a fresh random
// identifier under the sanitized album prefix, keeping only the original
// filename's extension.
func ObjectPath(albumSlug, originalName string) string {
	name := uuid.NewString()
	if ext := safeExt(originalName); ext != "" {
		name += "." + ext
	}
	return "albums/" + SanitizeSlug(albumSlug) + "/" + name
}

// safeExt extracts the filename extension, keeping alphanumerics only.
func safeExt(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	var b strings.Builder
	for _, r := range ext {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
