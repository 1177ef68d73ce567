// Package transliteration spells Korean Hangul, and Chinese in summoner
// names, in the Latin alphabet.
package transliteration

import (
	"strings"
	"unicode"
)

type script int

const (
	scriptLatin script = iota
	scriptKorean
	scriptChinese
)

// Transliterate converts a username (gameName#tag) to its romanized form.
// Only the gameName part is transliterated; the #tag is stripped.
// Korean names use the Revised system. Returns empty string for Latin-only
// names.
func Transliterate(username string) string {
	gameName, _, _ := strings.Cut(username, "#")

	switch detectScript(gameName) {
	case scriptKorean:
		out, err := Romanize(gameName, WithComposedJamo())
		if err != nil {
			return ""
		}
		return out
	case scriptChinese:
		return romanizeChinese(gameName)
	default:
		return ""
	}
}

func detectScript(text string) script {
	if strings.ContainsFunc(text, func(r rune) bool { return unicode.Is(unicode.Hangul, r) }) {
		return scriptKorean
	}
	if strings.ContainsFunc(text, func(r rune) bool { return unicode.Is(unicode.Han, r) }) {
		return scriptChinese
	}
	return scriptLatin
}
