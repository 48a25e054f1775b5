package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestValidate covers the three outcomes of Validate.
func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kind   Kind
		reason Reason
	}{
		{"empty is missing", "", KindInvalid, ReasonMissing},
		{"dot is current dir", ".", KindCurrentDir, ""},
		{"dot with spaces is current dir", "  . ", KindCurrentDir, ""},
		{"dot with tab is current dir", "\t.\n", KindCurrentDir, ""},
		{"simple name", "my-app", KindNamed, ""},
		{"single character", "a", KindNamed, ""},
		{"underscore and digits", "app_2", KindNamed, ""},
		{"internal dot", "my.app", KindNamed, ""},
		{"internal space", "my app", KindNamed, ""},
		{"unicode letters", "プロジェクト", KindNamed, ""},
		{"accented", "café-app", KindNamed, ""},
		{"parent traversal", "../evil", KindInvalid, ReasonInvalidCharacters},
		{"double dot", "..", KindInvalid, ReasonInvalidCharacters},
		{"leading dot", ".hidden", KindInvalid, ReasonInvalidCharacters},
		{"trailing dot", "app.", KindInvalid, ReasonInvalidCharacters},
		{"leading space", " app", KindInvalid, ReasonInvalidCharacters},
		{"trailing space", "app ", KindInvalid, ReasonInvalidCharacters},
		{"trailing no-break space", "app\u00a0", KindInvalid, ReasonInvalidCharacters},
		{"whitespace only", "   ", KindInvalid, ReasonInvalidCharacters},
		{"slash", "a/b", KindInvalid, ReasonInvalidCharacters},
		{"backslash", `a\b`, KindInvalid, ReasonInvalidCharacters},
		{"question mark", "a?", KindInvalid, ReasonInvalidCharacters},
		{"asterisk", "a*b", KindInvalid, ReasonInvalidCharacters},
		{"colon", "c:app", KindInvalid, ReasonInvalidCharacters},
		{"double quote", `a"b`, KindInvalid, ReasonInvalidCharacters},
		{"angle brackets", "<app>", KindInvalid, ReasonInvalidCharacters},
		{"pipe", "a|b", KindInvalid, ReasonInvalidCharacters},
		{"nul byte", "a\x00b", KindInvalid, ReasonInvalidCharacters},
		{"newline", "a\nb", KindInvalid, ReasonInvalidCharacters},
		{"escape", "a\x1bb", KindInvalid, ReasonInvalidCharacters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.input)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.reason, got.Reason)
			if tt.kind == KindNamed {
				assert.Equal(t, tt.input, got.Name)
			}
			assert.Equal(t, tt.kind != KindInvalid, got.IsValid())
		})
	}
}

// TestValidate_RejectsForbiddenCharactersAnywhere places every forbidden
// character at the start, middle and end of an otherwise valid name.
func TestValidate_RejectsForbiddenCharactersAnywhere(t *testing.T) {
	forbidden := []rune{'/', '\\', '?', '*', ':', '"', '<', '>', '|'}
	for c := rune(0); c < 0x20; c++ {
		forbidden = append(forbidden, c)
	}

	for _, c := range forbidden {
		for _, input := range []string{
			string(c) + "app",
			"ap" + string(c) + "p",
			"app" + string(c),
		} {
			got := Validate(input)
			assert.Equal(t, KindInvalid, got.Kind, "input %q", input)
		}
	}
}

// TestValidate_AcceptsSafeNames checks a spread of names built only from
// allowed characters with safe first and last characters.
func TestValidate_AcceptsSafeNames(t *testing.T) {
	edges := []string{"a", "Z", "0", "-", "_", "é", "日", "@", "+"}
	middles := []string{"", "x", " ", ".", "-_-", "a.b c", "ü"}

	for _, first := range edges {
		for _, mid := range middles {
			for _, last := range edges {
				input := first + mid + last
				assert.Equal(t, KindNamed, Validate(input).Kind, "input %q", input)
			}
		}
	}
}
