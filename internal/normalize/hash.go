package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

const (
	hashTitleLen   = 80
	hashCompanyLen = 40
	hashCityLen    = 30
	hashHexLen     = 16
)

// TitleHash is the weak-signal dedup fingerprint: a truncated SHA-256 over the
// normalized title, company and city. It is insensitive to case, whitespace
// and punctuation, but strict about company and city so that genuinely
// different postings sharing a common job title do not merge.
func TitleHash(title, company, city string) string {
	payload := hashComponent(title, hashTitleLen) + "|" +
		hashComponent(company, hashCompanyLen) + "|" +
		hashComponent(city, hashCityLen)

	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])[:hashHexLen]
}

// URLHash derives a stable identifier from a listing URL for providers that
// expose no native ID. Repeated fetches of the same listing map to the same
// identifier because the URL is the least volatile field available.
func URLHash(url string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(url)))
	return hex.EncodeToString(sum[:])[:hashHexLen]
}

// hashComponent lowercases and strips everything except letters and digits,
// then truncates to length runes.
func hashComponent(s string, length int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	runes := []rune(b.String())
	if len(runes) > length {
		runes = runes[:length]
	}
	return string(runes)
}
