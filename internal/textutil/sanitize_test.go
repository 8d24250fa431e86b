package textutil

import (
	"strings"
	"testing"
)

func TestSanitizeNameRemovesUnsafeCharacters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "My Video Title", "My Video Title"},
		{"slashes", "a/b\\c", "abc"},
		{"all unsafe", `<>:"/\|?*`, ""},
		{"mixed", `Q&A: what is "Go"?`, "Q&A what is Go"},
		{"unicode kept", "日本語のタイトル", "日本語のタイトル"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeNameIdempotent(t *testing.T) {
	inputs := []string{
		`a<b>c:d"e/f\g|h?i*j`,
		"already clean",
		"日本語 | テスト",
	}
	for _, input := range inputs {
		once := SanitizeName(input)
		twice := SanitizeName(once)
		if once != twice {
			t.Errorf("SanitizeName not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestSanitizeNameLeavesNoUnsafeRunes(t *testing.T) {
	got := SanitizeName("a<b>c:d\"e/f\\g|h?i*j<<>>??")
	if strings.ContainsAny(got, `<>:"/\|?*`) {
		t.Errorf("sanitized output still contains unsafe characters: %q", got)
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"shorter than limit", "abc", 10, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"ascii cut", "abcdef", 3, "abc"},
		{"multibyte cut", "日本語のタイトル", 3, "日本語"},
		{"zero", "abc", 0, ""},
		{"negative", "abc", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateRunes(tt.input, tt.n)
			if got != tt.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
			}
		})
	}
}
