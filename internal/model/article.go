package model

import (
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// Article is an authored piece of content. The slug is derived from the
// title at creation time and never changes afterwards, even when the title
// is edited. Draft holds the working copy; Body holds the published copy.
type Article struct {
	gorm.Model
	ID          string `gorm:"primaryKey;uuid;not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	AuthorID    string `gorm:"uuid;not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Tags        string
	Draft       string
	Body        string
	Compression string // codec used for Draft and Body at rest
	Published   bool   `gorm:"default:false"`
	Activated   bool   `gorm:"default:true"`
}

// Visible reports whether the article may appear on any read path.
func (a *Article) Visible() bool {
	return a.Published && a.Activated
}

// Slugify derives a url-safe slug from a title. Runs of non-alphanumeric
// characters collapse into a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	hyphen := false

	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			hyphen = false
		default:
			if !hyphen && b.Len() > 0 {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
