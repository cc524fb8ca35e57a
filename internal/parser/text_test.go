package parser

import (
	"reflect"
	"testing"
)

func TestTrimHelpers(t *testing.T) {
	tests := []struct {
		fn   func(string) string
		in   string
		want string
	}{
		{trimTrailing, "Foo, ", "Foo"},
		{trimTrailing, "Foo,", "Foo"},
		{trimTrailing, "Foo  ", "Foo"},
		{trimTrailing, "Foo", "Foo"},
		{trimSep, "10 ", "10"},
		{trimSep, "10, ", "10"},
		{trimSep, "10", "10"},
		{trimLead, ", London", "London"},
		{trimLead, " London", "London"},
		{trimLead, "London", "London"},
	}
	for _, tt := range tests {
		if got := tt.fn(tt.in); got != tt.want {
			t.Errorf("trim(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitCommaList(t *testing.T) {
	got := splitCommaList("a, b , c")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitCommaList = %v, want %v", got, want)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"STREET", "STREAT", 1},
		{"DOWNING STREET", "DOWNING STREET", 0},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
