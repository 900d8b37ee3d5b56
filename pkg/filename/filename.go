// Package filename converts free-text titles into filesystem-safe names.
package filename

import (
	"regexp"
	"strings"
)

// DefaultMaxLength leaves room for an extension on common filesystems
const DefaultMaxLength = 200

// transliterations maps accented and typographic characters to ASCII before
// the non-ASCII strip, so as much of the original title survives as possible.
var transliterations = map[rune]string{
	// Turkish
	'ğ': "g", 'Ğ': "G", // g breve
	'ı': "i", 'İ': "I", // dotless i, dotted I
	'ş': "s", 'Ş': "S", // s cedilla
	'ü': "u", 'Ü': "U", // u umlaut
	'ö': "o", 'Ö': "O", // o umlaut
	'ç': "c", 'Ç': "C", // c cedilla
	// German
	'ä': "ae", 'Ä': "Ae", // a umlaut
	'ß': "ss", // eszett
	// French/Spanish
	'é': "e", 'è': "e", 'ê': "e", 'ë': "e",
	'à': "a", 'á': "a", 'â': "a",
	'ñ': "n", 'Ñ': "N",
	// Common symbols
	'’': "'", '‘': "'", // smart quotes
	'“': `"`, '”': `"`,
	'–': "-", '—': "-", // dashes
	'…': "...", // ellipsis
	'©': "(c)", '®': "(r)",
	'™': "(tm)",
}

var (
	reservedChars  = regexp.MustCompile(`[\\/:*?"<>|]`)
	underscoreRuns = regexp.MustCompile(`[\s_]+`)
)

// toASCII transliterates what it can and drops the rest, including control
// characters.
func toASCII(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if repl, ok := transliterations[r]; ok {
			b.WriteString(repl)
			continue
		}
		if r >= 0x20 && r < 0x7f {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Sanitize converts a raw title into a clean ASCII filename of at most
// maxLength characters. Empty input, or input with nothing left after
// stripping, yields "download". The function is pure and idempotent.
func Sanitize(raw string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	clean := toASCII(raw)
	clean = reservedChars.ReplaceAllString(clean, "")
	clean = underscoreRuns.ReplaceAllString(clean, "_")
	clean = strings.Trim(clean, "_. ")

	if len(clean) > maxLength {
		clean = strings.TrimRight(clean[:maxLength], "_. ")
	}

	if clean == "" {
		return "download"
	}
	return clean
}

// SanitizeTitle is the lighter display-string variant: non-ASCII stripped,
// whitespace and underscore runs collapsed to a single space. Falls back to
// "Playlist" when nothing survives.
func SanitizeTitle(raw string) string {
	clean := toASCII(raw)
	clean = underscoreRuns.ReplaceAllString(clean, " ")
	clean = strings.Trim(clean, " ")
	if clean == "" {
		return "Playlist"
	}
	return clean
}
