package transliteration

import "unicode/utf8"

const (
	hangulBase = 0xAC00
	hangulEnd  = 0xD7A3

	leadN  = 19
	vowelN = 21
	tailN  = 28

	// nullLead is the lead index of vowel-initial syllables (ㅇ).
	nullLead = 12
)

// Syllable is a precomposed Hangul syllable split into its jamo indices.
// Lead and Vowel are 1-based; Tail is 0 when the syllable has no final
// consonant.
type Syllable struct {
	Lead  int
	Vowel int
	Tail  int
}

// Lead and tail consonant symbols as they appear in the rule tables.
// Index 0 of leadSymbols is unused; "_" marks the null lead and the
// missing tail.
var (
	leadSymbols = []string{
		"", "g", "gg", "n", "d", "dd", "r", "m", "b", "bb",
		"s", "ss", "_", "j", "jj", "ch", "k", "t", "p", "h",
	}
	tailSymbols = []string{
		"_", "g", "gg", "gs", "n", "nj", "nh", "d", "l", "lg",
		"lm", "lb", "ls", "lt", "lp", "lh", "m", "b", "bs",
		"s", "ss", "ng", "j", "ch", "k", "t", "p", "h",
	}
)

// IsSyllable reports whether r is a precomposed Hangul syllable.
func IsSyllable(r rune) bool {
	return r >= hangulBase && r <= hangulEnd
}

// DecomposeRune splits a precomposed syllable into its lead, vowel and tail
// indices. r must satisfy IsSyllable; other runes yield meaningless indices.
func DecomposeRune(r rune) Syllable {
	offset := int(r) - hangulBase
	tail := offset % tailN
	return Syllable{
		Lead:  1 + offset/(vowelN*tailN),
		Vowel: 1 + ((offset-tail)%(vowelN*tailN))/tailN,
		Tail:  tail,
	}
}

// Decompose splits every rune of text. text is expected to hold only
// precomposed syllables.
func Decompose(text string) []Syllable {
	syls := make([]Syllable, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		syls = append(syls, DecomposeRune(r))
	}
	return syls
}

// Compose is the inverse of DecomposeRune.
func Compose(s Syllable) rune {
	return rune(hangulBase + ((s.Lead-1)*vowelN+(s.Vowel-1))*tailN + s.Tail)
}

func (s Syllable) valid() bool {
	return s.Lead >= 1 && s.Lead <= leadN &&
		s.Vowel >= 1 && s.Vowel <= vowelN &&
		s.Tail >= 0 && s.Tail < tailN
}
