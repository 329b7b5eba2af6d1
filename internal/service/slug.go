package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PostSlug derives a URL slug from a post title. Accented Latin letters are
// folded to ASCII, other scripts are kept as-is, and everything else becomes
// a single hyphen. It returns "" when the title has no letters or digits.
func PostSlug(title string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		keep := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') ||
			(r > unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsNumber(r)))
		if !keep {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ValidSlug reports whether slug only contains characters PostSlug produces.
func ValidSlug(slug string) bool {
	if slug == "" || strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return false
	}
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
		case r > unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsNumber(r)):
		default:
			return false
		}
	}
	return true
}

// splitTags parses a comma separated tag list, trimming blanks and dropping
// empty entries and duplicates.
func splitTags(raw string) []string {
	tags := []string{}
	seen := map[string]bool{}
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
