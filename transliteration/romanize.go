package transliteration

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

type config struct {
	system      System
	initial     Context
	composeJamo bool
}

// Option configures Romanize.
type Option func(*config)

// WithSystem selects the romanization system. The default is Revised.
func WithSystem(s System) Option {
	return func(c *config) { c.system = s }
}

// WithInitial sets the context of the first Hangul run in the text. The
// default is Initial; later runs are always romanized as Voiced.
func WithInitial(ctx Context) Option {
	return func(c *config) { c.initial = ctx }
}

// WithComposedJamo composes conjoining jamo (U+1100..U+11FF) into
// precomposed syllables before romanizing.
func WithComposedJamo() Option {
	return func(c *config) { c.composeJamo = true }
}

// Romanize replaces every run of Hangul syllables in text with its Latin
// spelling. Everything else is copied through unchanged.
//
// Only the first Hangul run is treated as utterance-initial; every later run
// continues a voiced context no matter what separates it from the previous
// one.
func Romanize(text string, opts ...Option) (string, error) {
	cfg := config{system: DefaultSystem, initial: Initial}
	for _, opt := range opts {
		opt(&cfg)
	}

	table, err := LoadTable(cfg.system)
	if err != nil {
		return "", err
	}

	if cfg.composeJamo {
		text = composeJamo(text)
	}

	var b strings.Builder
	b.Grow(len(text))
	ctx := cfg.initial
	for _, r := range splitRuns(text) {
		if !r.hangul {
			b.WriteString(r.text)
			continue
		}
		b.WriteString(table.RomanizeSyllables(Decompose(r.text), ctx))
		ctx = Voiced
	}
	return b.String(), nil
}

// RomanizeSyllables spells one contiguous run of syllables. initial is the
// context of the first lead consonant.
//
// A syllable's tail is only written at the end of the run. Inside the run it
// becomes the context of the next lead, which is where assimilation across
// the syllable boundary is spelled.
func (t *Table) RomanizeSyllables(syls []Syllable, initial Context) string {
	var b strings.Builder
	prior := initial
	for i, s := range syls {
		b.WriteString(t.lead(prior, s.Lead))
		b.WriteString(t.vowel(s.Vowel))
		if i == len(syls)-1 {
			b.WriteString(t.final(s.Tail))
		}
		prior = TailContext(s.Tail)
	}

	out := b.String()
	for _, bl := range t.blends {
		out = strings.ReplaceAll(out, bl.From, bl.To)
	}
	return out
}

type run struct {
	text   string
	hangul bool
}

// splitRuns cuts text into maximal runs of syllables and non-syllables.
// Runs are sliced from text by byte offset so their bytes are untouched.
func splitRuns(text string) []run {
	var runs []run
	start, inHangul := 0, false
	for i, r := range text {
		h := IsSyllable(r)
		if i > start && h != inHangul {
			runs = append(runs, run{text: text[start:i], hangul: inHangul})
			start = i
		}
		inHangul = h
	}
	if start < len(text) {
		runs = append(runs, run{text: text[start:], hangul: inHangul})
	}
	return runs
}

func isConjoiningJamo(r rune) bool {
	return r >= 0x1100 && r <= 0x11FF
}

// composeJamo NFC-normalises each stretch of syllables and conjoining jamo
// that contains at least one jamo. Text outside those stretches is left as is.
func composeJamo(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	start, inHangul := 0, false
	flush := func(end int) {
		seg := text[start:end]
		if inHangul && strings.ContainsFunc(seg, isConjoiningJamo) {
			seg = norm.NFC.String(seg)
		}
		b.WriteString(seg)
	}
	for i, r := range text {
		h := IsSyllable(r) || isConjoiningJamo(r)
		if i > start && h != inHangul {
			flush(i)
			start = i
		}
		inHangul = h
	}
	flush(len(text))
	return b.String()
}
