package transliteration

import (
	"strings"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func romanize(t *testing.T, text string, opts ...Option) string {
	t.Helper()
	got, err := Romanize(text, opts...)
	require.NoError(t, err)
	return got
}

func TestRomanizeScenarios(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		system System
		want   string
	}{
		{"vowel only", "아", Revised, "a"},
		{"lead and vowel", "가", Revised, "ga"},
		{"assimilation across syllables", "안녕하십니까", Revised, "annyeonghasimnikka"},
		{
			"mixed text",
			`I said, "안녕하십니까," and she said "누구세요?"`,
			Revised,
			`I said, "annyeonghasimnikka," and she said "nuguseyo?"`,
		},
		{"blend after assembly", "안녕하십니까", McCuneReischauer, "annyŏnghashimnikka"},
		{"nasalisation", "독립문", Revised, "dongnimmun"},
		{"lateralisation", "신라", Revised, "silla"},
		{"hyphen before vowel", "한국어", Revised, "han-gugeo"},
		{"aspirated initial", "같이", McCuneReischauer, "kat'i"},
		{"swi blend", "쉬다", McCuneReischauer, "shwida"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, romanize(t, tt.input, WithSystem(tt.system)))
		})
	}
}

func TestRomanizeDefaultsToRevised(t *testing.T) {
	assert.Equal(t, "busan", romanize(t, "부산"))
}

func TestRomanizeRows(t *testing.T) {
	tests := []struct {
		system System
		hangul string
		latin  string
	}{
		{Revised, vowelRow, "a ae ya yae eo e yeo ye o wa wae oe yo u weo we wi yu eu yi i"},
		{Revised, leadRow, "ga kka na da tta ra ma ba ppa sa ssa a ja jja cha ka ta pa ha"},
		{Revised, tailRow, "ak ak ak an ant an at al alk alm alp alt alt alp al am ap ap at at ang at at ak at ap at"},
		{McCuneReischauer, vowelRow, "a ae ya yae ŏ e yŏ ye o wa wae oe yo u wŏ we wi yu ŭ ŭi i"},
		{McCuneReischauer, leadRow, "ka kka na ta tta ra ma pa ppa sa ssa a cha tcha ch'a k'a t'a p'a ha"},
		{McCuneReischauer, tailRow, "ak akk ak an ant an at al alk alm alp alt alt alp' al am ap ap at at ang at at ak at ap at"},
	}
	for _, tt := range tests {
		hangul := strings.Fields(tt.hangul)
		latin := strings.Fields(tt.latin)
		require.Len(t, latin, len(hangul))
		for i, given := range hangul {
			got := romanize(t, given, WithSystem(tt.system))
			assert.Equal(t, latin[i], got, "%s: %s", tt.system, given)
		}
	}
}

func TestRomanizeInitialVoiced(t *testing.T) {
	assert.Equal(t, "kaja", romanize(t, "가자", WithSystem(McCuneReischauer)))
	assert.Equal(t, "gaja", romanize(t, "가자", WithSystem(McCuneReischauer), WithInitial(Voiced)))
}

func TestRomanizeLaterRunsAreVoiced(t *testing.T) {
	// The second run is voiced even after a sentence break.
	got := romanize(t, "가. 가", WithSystem(McCuneReischauer))
	assert.Equal(t, "ka. ga", got)

	// WithInitial only affects the first run.
	got = romanize(t, "가 가", WithSystem(McCuneReischauer), WithInitial(TailContext(21)))
	assert.Equal(t, "ngga ga", got)
}

func TestRomanizeLeavesOtherTextAlone(t *testing.T) {
	inputs := []string{
		"",
		"hello, world",
		"東京 – Ωμέγα 🙂",
		"ㄱㄴㄷ compatibility jamo",
		"\xff\xfe broken utf-8",
	}
	for _, in := range inputs {
		assert.Equal(t, in, romanize(t, in), "%q", in)
	}
}

func TestRomanizePreservesSurroundingBytes(t *testing.T) {
	got := romanize(t, "\xff서울\t\xfe부산\n")
	assert.Equal(t, "\xffseoul\t\xfebusan\n", got)
}

func TestRomanizeUnknownSystem(t *testing.T) {
	got, err := Romanize("안녕", WithSystem("yale"))
	assert.ErrorIs(t, err, ErrUnknownSystem)
	assert.Empty(t, got)
}

func TestRomanizeComposedJamo(t *testing.T) {
	decomposed := "\u1100\u1161\u11A8 \u1112\u1161\u11AB\u1100\u116E\u11A8"
	assert.Equal(t, "gak han-guk", romanize(t, decomposed, WithComposedJamo()))
	assert.Equal(t, "gak", romanize(t, "가\u11A8", WithComposedJamo()))

	// Without the option conjoining jamo are not syllables.
	assert.Equal(t, decomposed, romanize(t, decomposed))

	// Other combining sequences are not normalised.
	assert.Equal(t, "e\u0301 gak", romanize(t, "e\u0301 \u1100\u1161\u11A8", WithComposedJamo()))
}

func TestRomanizeSyllables(t *testing.T) {
	rr, err := LoadTable(Revised)
	require.NoError(t, err)

	assert.Equal(t, "", rr.RomanizeSyllables(nil, Initial))
	assert.Equal(t, "ak", rr.RomanizeSyllables(Decompose("악"), Initial))
	assert.Equal(t, "sinmun", rr.RomanizeSyllables(Decompose("신문"), Initial))

	// Interior tails only show up through the next lead.
	assert.Equal(t, "gungmul", rr.RomanizeSyllables([]Syllable{
		{Lead: 1, Vowel: 14, Tail: 1},
		{Lead: 7, Vowel: 14, Tail: 8},
	}, Initial))

	// Indices outside the table spell as nothing.
	assert.Equal(t, "a", rr.RomanizeSyllables([]Syllable{{Lead: 99, Vowel: 1, Tail: 99}}, Initial))
}

func TestRomanizeConcurrent(t *testing.T) {
	inputs := []string{"안녕하십니까", "누구세요?", "서울 부산", "독립문"}
	want := lo.Map(inputs, func(in string, _ int) string { return romanize(t, in) })

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for n := 0; n < 16; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, in := range inputs {
				got, err := Romanize(in)
				if err != nil || got != want[i] {
					errs <- in
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	assert.Empty(t, lo.ChannelToSlice(errs))
}

func TestSplitRuns(t *testing.T) {
	runs := splitRuns(`A "안녕" b 가`)
	assert.Equal(t, []run{
		{text: `A "`, hangul: false},
		{text: "안녕", hangul: true},
		{text: `" b `, hangul: false},
		{text: "가", hangul: true},
	}, runs)

	assert.Empty(t, splitRuns(""))
	assert.Equal(t, []run{{text: "가나", hangul: true}}, splitRuns("가나"))
}

func TestSplitRunsCoversInput(t *testing.T) {
	inputs := []string{"", "abc", "가", "a가b나c", "가a", "\xff가\xff"}
	for _, in := range inputs {
		runs := splitRuns(in)
		joined := strings.Join(lo.Map(runs, func(r run, _ int) string { return r.text }), "")
		assert.Equal(t, in, joined)
		for i := 1; i < len(runs); i++ {
			assert.NotEqual(t, runs[i-1].hangul, runs[i].hangul, "runs alternate in %q", in)
		}
	}
}
