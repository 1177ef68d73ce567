package transliteration

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

// Toneless pinyin; heteronyms resolve to the first reading.
var pinyinArgs = pinyin.Args{
	Style:     pinyin.Normal,
	Separator: "",
	Fallback:  func(rune, pinyin.Args) []string { return nil },
}

func romanizeChinese(text string) string {
	var b strings.Builder
	for _, r := range text {
		if py, ok := pinyinOf(r); ok {
			b.WriteString(py)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func pinyinOf(r rune) (string, bool) {
	if !unicode.Is(unicode.Han, r) {
		return "", false
	}
	readings := pinyin.SinglePinyin(r, pinyinArgs)
	if len(readings) == 0 {
		return "", false
	}
	return readings[0], true
}
