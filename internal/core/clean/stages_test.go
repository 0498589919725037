package clean

import (
	"strings"
	"testing"

	"rapih/internal/core/lexicon"
)

func mustLexicon(t *testing.T, tb lexicon.Tables) *lexicon.Store {
	t.Helper()
	lx, err := lexicon.New(tb)
	if err != nil {
		t.Fatalf("lexicon.New: %v", err)
	}
	return lx
}

func fields(s string) string { return strings.Join(strings.Fields(s), " ") }

func TestNormalizeUnicode(t *testing.T) {
	tests := []struct {
		name, in, out string
	}{
		{"empty", "", ""},
		{"fullwidth", "ｂａｒａｎｇ", "barang"},
		{"math bold", "𝐛𝐚𝐠𝐮𝐬", "bagus"},
		{"zero width", "ba\u200bgus", "bagus"},
		{"control to space", "barang\x00bagus", "barang bagus"},
		{"invalid utf8", "bar\xffang", "barang"},
		{"variation selector", "\u2764\ufe0f", "\u2764"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeUnicode(tc.in); got != tc.out {
				t.Fatalf("NormalizeUnicode(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func labelLexicon(t *testing.T) *lexicon.Store {
	return mustLexicon(t, lexicon.Tables{Emoji: map[string]string{"😂": "[EMOJI_LAUGH]"}})
}

func TestLowercase_KeepsLabels(t *testing.T) {
	lx := labelLexicon(t)
	tests := []struct {
		in, out string
	}{
		{"BARANG [EMOJI_LAUGH] Bagus", "barang [EMOJI_LAUGH] bagus"},
		{"Ada [EMOJI_MISC]", "ada [EMOJI_MISC]"},
		{"[HELLO] Barang", "[hello] barang"},
	}
	for _, tc := range tests {
		if got := Lowercase(lx, tc.in); got != tc.out {
			t.Fatalf("Lowercase(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestStripLinksAndEmails(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"cek http://x.co ya", "cek ya"},
		{"cek https://shopee.co.id/produk?id=1 ya", "cek ya"},
		{"kunjungi www.toko.com/promo sekarang", "kunjungi sekarang"},
		{"kunjungi tokopedia.co.id sekarang", "kunjungi sekarang"},
		{"email a.b@mail.com dong", "email dong"},
		{"jam 10.30 sampai", "jam 10.30 sampai"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := fields(StripLinksAndEmails(tc.in)); got != tc.out {
			t.Fatalf("StripLinksAndEmails(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
	// a match never glues its neighbours together
	if got := StripLinksAndEmails("a@b.comlagi"); strings.Contains(got, "comlagi") {
		t.Fatalf("email not removed: %q", got)
	}
	if got := StripLinksAndEmails("beli:http://x.co"); !strings.HasPrefix(got, "beli:") || strings.Contains(got, "http") {
		t.Fatalf("unexpected %q", got)
	}
}

func TestStripPunctuation(t *testing.T) {
	lx := labelLexicon(t)
	tests := []struct {
		in, out string
	}{
		{"bagus!!! 😂 [EMOJI_LAUGH] (ok) rp.100,-", "bagus 😂 [EMOJI_LAUGH] ok rp 100"},
		{"bagus[EMOJI_MISC]banget", "bagus [EMOJI_MISC] banget"},
		{"[HELLO] barang bagus", "HELLO barang bagus"},
		{"[EMOJI_X] ok", "EMOJI X ok"},
	}
	for _, tc := range tests {
		if got := fields(StripPunctuation(lx, tc.in)); got != tc.out {
			t.Fatalf("StripPunctuation(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
	if got := StripPunctuation(lx, "sudah bersih"); got != "sudah bersih" {
		t.Fatalf("clean text changed: %q", got)
	}
}

func TestSplitWordNumber(t *testing.T) {
	lx := labelLexicon(t)
	tests := []struct {
		in, out string
	}{
		{"kata2", "kata kata"},
		{"hati2 ya", "hati hati ya"},
		{"hati2nya", "hati hati nya"},
		{"2hari", "2 hari"},
		{"covid19", "covid"},
		{"covid19😂", "covid😂"},
		{"😂covid19 rapi", "😂covid rapi"},
		{"mantap2👍", "mantap mantap👍"},
		{"a1b3", "a 1 b 3"},
		{"2024", "2024"},
		{"barang", "barang"},
		{"[EMOJI_LAUGH]", "[EMOJI_LAUGH]"},
	}
	for _, tc := range tests {
		if got := SplitWordNumber(lx, tc.in); got != tc.out {
			t.Fatalf("SplitWordNumber(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestIsLaughter(t *testing.T) {
	lx := mustLexicon(t, lexicon.Tables{
		Laughter:  []string{"wk", "ha"},
		Whitelist: []string{"kaka", "barang"},
		Slang:     map[string]string{"kuy": "ayo"},
	})
	yes := []string{"wkwkwkwk", "awokawok", "hahahaha", "hahahaaaa", "wkwkwkwkkkk"}
	no := []string{"kaka", "barang", "kuy", "ok", "wk", "bagus"}
	for _, w := range yes {
		if !IsLaughter(lx, w) {
			t.Fatalf("IsLaughter(%q) = false, want true", w)
		}
	}
	for _, w := range no {
		if IsLaughter(lx, w) {
			t.Fatalf("IsLaughter(%q) = true, want false", w)
		}
	}
}

func TestIsLaughter_PatternsAndDensity(t *testing.T) {
	// no markers, so only the syllable patterns and the letter density fire
	lx := mustLexicon(t, lexicon.Tables{})
	for _, w := range []string{"xixixi", "hehehe", "kwkwkw", "awokawok", "akwoakwo"} {
		if !IsLaughter(lx, w) {
			t.Fatalf("IsLaughter(%q) = false", w)
		}
	}
	if IsLaughter(lx, "barang") {
		t.Fatalf("barang classified as laughter")
	}
}

func TestLaughMarker(t *testing.T) {
	tests := map[string]string{
		"wkwkwk":   lexicon.LaughKW,
		"awokawok": lexicon.LaughKW,
		"ngakak":   lexicon.LaughKW,
		"kekw":     lexicon.LaughKW,
		"hahaha":   lexicon.Laugh,
		"hehehe":   lexicon.Laugh,
		"xixixi":   lexicon.Laugh,
	}
	for in, want := range tests {
		if got := laughMarker(in); got != want {
			t.Fatalf("laughMarker(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeLaughter(t *testing.T) {
	lx := mustLexicon(t, lexicon.Tables{Laughter: []string{"wk", "ha"}, Whitelist: []string{"kaka"}})
	got := NormalizeLaughter(lx, "wkwkwk kaka hahaha!")
	if got != "wkwk kaka haha !" {
		t.Fatalf("NormalizeLaughter = %q", got)
	}
	if got := NormalizeLaughter(lx, "kaka"); got != "kaka " {
		t.Fatalf("kaka rewritten: %q", got)
	}
	if got := NormalizeLaughter(lx, ""); got != "" {
		t.Fatalf("empty = %q", got)
	}
}

func TestMapEmoji(t *testing.T) {
	lx := mustLexicon(t, lexicon.Tables{Emoji: map[string]string{"😂": "[EMOJI_LAUGH]"}})
	tests := []struct {
		in, out string
	}{
		{"mantap😂👍", "mantap [EMOJI_LAUGH] [EMOJI_MISC]"},
		{"👍🏽", "[EMOJI_MISC]"},
		{"✨ ❤", "[EMOJI_MISC] [EMOJI_MISC]"},
		{"🚀🤔", "[EMOJI_MISC] [EMOJI_MISC]"},
		{"tanpa emoji", "tanpa emoji"},
	}
	for _, tc := range tests {
		if got := fields(MapEmoji(lx, tc.in)); got != tc.out {
			t.Fatalf("MapEmoji(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestNormalizeStretch(t *testing.T) {
	lx := mustLexicon(t, lexicon.Tables{
		Whitelist: []string{"bagus", "barang", "banget", "maaf"},
		Slang:     map[string]string{"mantul": "mantap"},
		Typo:      map[string]string{"brang": "barang"},
		Negation:  lexicon.Negation{Words: []string{"gak"}},
	})
	tests := []struct {
		in, out string
	}{
		{"bagusss", "bagus"},
		{"baaaangettt", "banget"},
		{"maaaaf", "maaf"},
		{"mantulll", "mantap"},
		{"brrrang", "barang"},
		{"gaaak", "tidak"},
		{"barangnyaaa", "barang"},
		{"xyzzz", "xyz"},
		{"sekolaah", "sekolaah"},
		{"[EMOJI_X]", "[EMOJI_X]"},
		{"10000", "10000"},
	}
	for _, tc := range tests {
		if got := NormalizeStretch(lx, tc.in); got != tc.out {
			t.Fatalf("NormalizeStretch(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestSegmentCompounds(t *testing.T) {
	lx := mustLexicon(t, lexicon.Tables{Whitelist: []string{"harus", "di", "jual"}})
	tests := []struct {
		in, out string
	}{
		{"harusdijual", "harus di jual"},
		{"harus", "harus"},
		{"harusdijualq", "harus di jual"},
		{"qwerty", "qwerty"},
		{"2hari", "2hari"},
		{"[EMOJI_X]", "[EMOJI_X]"},
	}
	for _, tc := range tests {
		if got := SegmentCompounds(lx, tc.in); got != tc.out {
			t.Fatalf("SegmentCompounds(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestSubstitutions(t *testing.T) {
	lx := mustLexicon(t, lexicon.Tables{
		Slang:    map[string]string{"bgt": "banget", "gpp": "tidak apa apa"},
		Typo:     map[string]string{"barnag": "barang"},
		Negation: lexicon.Negation{Canonical: "tidak", Words: []string{"gak", "nggak"}},
	})
	if got := SubstituteTypo(lx, "barnag bgt"); got != "barang bgt" {
		t.Fatalf("SubstituteTypo = %q", got)
	}
	if got := SubstituteSlang(lx, "barang bgt gpp"); got != "barang banget tidak apa apa" {
		t.Fatalf("SubstituteSlang = %q", got)
	}
	if got := NormalizeNegation(lx, "gak bagus nggak"); got != "tidak bagus tidak" {
		t.Fatalf("NormalizeNegation = %q", got)
	}
}

func TestFuzzyNormalize_Threshold(t *testing.T) {
	lx := mustLexicon(t, lexicon.Tables{
		Whitelist: []string{"kaka"},
		Fuzzy:     []lexicon.FuzzyTarget{{Canonical: "banget", Variants: []string{"bngt"}}},
	})
	scores := map[string]float64{"tok85": 85, "tok84": 84, "kaka": 100}
	score := func(a, b string) float64 {
		if b == "bngt" {
			return scores[a]
		}
		return 0
	}
	got := FuzzyNormalize(lx, score, DefaultFuzzyThreshold, "tok85 tok84 kaka")
	if got != "banget tok84 kaka" {
		t.Fatalf("FuzzyNormalize = %q", got)
	}
}

func TestFuzzyNormalize_FirstCanonicalWinsTies(t *testing.T) {
	lx := mustLexicon(t, lexicon.Tables{
		Fuzzy: []lexicon.FuzzyTarget{
			{Canonical: "mantap", Variants: []string{"v1"}},
			{Canonical: "mantep", Variants: []string{"v2"}},
		},
	})
	score := func(a, b string) float64 {
		if b == "v1" || b == "v2" {
			return 90
		}
		return 0
	}
	if got := FuzzyNormalize(lx, score, 85, "mntp"); got != "mantap" {
		t.Fatalf("tie resolved to %q, want mantap", got)
	}
}

func TestRemoveStopwords(t *testing.T) {
	lx := mustLexicon(t, lexicon.Tables{Stopwords: []string{"yang", "di"}})
	if got := RemoveStopwords(lx, "barang yang dijual di toko"); got != "barang dijual toko" {
		t.Fatalf("RemoveStopwords = %q", got)
	}
}

func TestDropLowInfo(t *testing.T) {
	tests := map[string]string{
		"ok":             "",
		"  ":             "",
		"":               "",
		"barang bagus":   "barang bagus",
		" barang bagus ": "barang bagus",
	}
	for in, want := range tests {
		if got := DropLowInfo(in); got != want {
			t.Fatalf("DropLowInfo(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCollapseWhitespace(t *testing.T) {
	if got := CollapseWhitespace("  a \t b\n\nc  "); got != "a b c" {
		t.Fatalf("CollapseWhitespace = %q", got)
	}
}
