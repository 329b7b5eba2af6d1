package markdown

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// fallbackSlug is used when a heading has no letters or digits at all.
const fallbackSlug = "heading"

// Slug derives a DOM-id safe identifier from heading text.
// Letters and digits are kept (lowercased, any script), every run of other
// characters becomes a single hyphen, and leading/trailing hyphens are dropped.
func Slug(text string) string {
	text = norm.NFC.String(text)

	var b strings.Builder
	b.Grow(len(text))
	pendingHyphen := false
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pendingHyphen = true
	}

	if b.Len() == 0 {
		return fallbackSlug
	}
	return b.String()
}

// Slugger hands out unique slugs within a single document.
// The zero value is ready to use. A Slugger must not be shared between documents.
type Slugger struct {
	// seen maps every emitted id to the last suffix tried for it as a base.
	seen map[string]int
}

// Slug returns Slug(text), suffixed with -2, -3, ... when that id was
// already emitted earlier in the same document.
func (s *Slugger) Slug(text string) string {
	if s.seen == nil {
		s.seen = make(map[string]int)
	}

	base := Slug(text)
	if _, taken := s.seen[base]; !taken {
		s.seen[base] = 1
		return base
	}

	for n := s.seen[base] + 1; ; n++ {
		id := base + "-" + strconv.Itoa(n)
		if _, taken := s.seen[id]; taken {
			continue
		}
		s.seen[base] = n
		s.seen[id] = 1
		return id
	}
}
