package lex

import (
	"reflect"
	"strings"
	"testing"
)

func TestStripCommentsLineComment(t *testing.T) {
	got := StripComments("int x = 1; // trailing\nint y = 2;\n")
	if strings.Contains(got, "trailing") {
		t.Errorf("line comment survived stripping: %q", got)
	}
	if !strings.Contains(got, "int x = 1;") || !strings.Contains(got, "int y = 2;") {
		t.Errorf("code was damaged: %q", got)
	}
}

func TestStripCommentsBlockComment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		gone  string
	}{
		{"single line", "a /* gone */ b", "gone"},
		{"multi line", "a /* one\ntwo\nthree */ b", "two"},
		{"adjacent stars", "a /** doc **/ b", "doc"},
		{"unterminated", "a /* runs to end", "runs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripComments(tt.input)
			if strings.Contains(got, tt.gone) {
				t.Errorf("StripComments(%q) = %q, comment content survived", tt.input, got)
			}
			if !strings.Contains(got, "a") {
				t.Errorf("StripComments(%q) = %q, surrounding code lost", tt.input, got)
			}
		})
	}
}

func TestStripCommentsPreservesStrings(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"slashes in string", `char *s = "//not a comment";`},
		{"block marker in string", `char *s = "/* still a string */";`},
		{"escaped quote", `char *s = "she said \"hi\" // really";`},
		{"char literal", `char c = '/'; char d = '*';`},
		{"escaped quote in char", `char c = '\''; int x = 1;`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripComments(tt.input)
			if got != tt.input {
				t.Errorf("StripComments(%q) = %q, want input unchanged", tt.input, got)
			}
		})
	}
}

func TestStripCommentsMarkerAfterString(t *testing.T) {
	got := StripComments(`char *s = "text"; // comment`)
	if strings.Contains(got, "comment") {
		t.Errorf("comment after string literal survived: %q", got)
	}
	if !strings.Contains(got, `"text"`) {
		t.Errorf("string literal damaged: %q", got)
	}
}

func TestCompactWhitespace(t *testing.T) {
	input := "int a;   \n\n\t\nint b;\t\nint c;"
	want := "int a;\nint b;\nint c;"
	if got := CompactWhitespace(input); got != want {
		t.Errorf("CompactWhitespace(%q) = %q, want %q", input, got, want)
	}
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"call", "foo(bar, 12)", []string{"foo", "bar"}},
		{"underscore", "_start __x a_b", []string{"_start", "__x", "a_b"}},
		{"hex literal", "x = 0x1f + y", []string{"x", "y"}},
		{"leading digit", "3abc", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Identifiers(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Identifiers(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
