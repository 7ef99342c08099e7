package portrait

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	special    = regexp.MustCompile(`[^\w\s]`)
)

// Variants lists the file stems tried for name, in order, without duplicates.
func Variants(name string) []string {
	lower := strings.ToLower(name)
	candidates := []string{
		name,
		whitespace.ReplaceAllString(name, " "),
		special.ReplaceAllString(name, ""),
		whitespace.ReplaceAllString(name, "_"),
		whitespace.ReplaceAllString(name, "-"),
		lower,
		whitespace.ReplaceAllString(lower, "_"),
		whitespace.ReplaceAllString(lower, "-"),
	}

	seen := make(map[string]struct{}, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Fold reduces a name to a comparison key: accents removed, lower case,
// letters and digits only. "José Buttler" and "jose_buttler" fold alike.
func Fold(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, name)
	if err != nil {
		plain = name
	}
	var b strings.Builder
	for _, r := range strings.ToLower(plain) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
