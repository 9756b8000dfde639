package normalize

import "strings"

const maxSlugLength = 250

var germanFolder = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"Ä", "ae", "Ö", "oe", "Ü", "ue",
)

// Slug builds a URL-friendly identifier from company and title, shaped as
// "{company}-{title}" or "extern-{title}" when no company is known. German
// special characters fold to their ASCII digraphs, non-alphanumeric runs
// collapse to single hyphens and the result is capped at 250 characters.
func Slug(title, company string) string {
	prefix := company
	if strings.TrimSpace(prefix) == "" {
		prefix = "extern"
	}

	raw := germanFolder.Replace(strings.ToLower(prefix + "-" + title))

	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLength {
		slug = strings.Trim(slug[:maxSlugLength], "-")
	}
	return slug
}
