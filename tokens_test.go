package argparse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlagName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"--verbose", "verbose"},
		{"-v", "v"},
		{"---x", "x"},
		{"--", ""},
		{"", ""},
		{"+append", "append"},
	}
	for _, tc := range cases {
		if got := flagName(tc.in); got != tc.want {
			t.Errorf("flagName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSplitEqual(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"--foo=bar", []string{"--foo", "bar"}},
		{"--foo=", []string{"--foo", ""}},
		{"--foo", []string{"--foo"}},
		{"a=b=c", []string{"a", "b=c"}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, splitEqual(tc.in)); diff != "" {
			t.Errorf("splitEqual(%q) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestIsNegativeNumber(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"-1", true},
		{"-2.5", true},
		{"-0.0001", true},
		{"0", false},
		{"5", false},
		{"-x", false},
		{"--2", false},
		{"-2x", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := isNegativeNumber(tc.in); got != tc.want {
			t.Errorf("isNegativeNumber(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsOptionToken(t *testing.T) {
	if !isOptionToken("-v", "-") {
		t.Error("-v should be an option token for prefix '-'")
	}
	if isOptionToken("v", "-") {
		t.Error("v should not be an option token")
	}
	if !isOptionToken("+v", "-+") {
		t.Error("+v should be an option token for prefix '-+'")
	}
	if isOptionToken("", "-") {
		t.Error("empty string should not be an option token")
	}
}

func TestRemoveQuotes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`"quoted"`, "quoted"},
		{`'quoted'`, "quoted"},
		{`"mismatch'`, `"mismatch'`},
		{`plain`, "plain"},
		{`"`, `"`},
		{`""`, ""},
	}
	for _, tc := range cases {
		if got := removeQuotes(tc.in); got != tc.want {
			t.Errorf("removeQuotes(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBaseName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/usr/bin/prog", "prog"},
		{`C:\tools\prog.exe`, "prog.exe"},
		{"prog", "prog"},
	}
	for _, tc := range cases {
		if got := baseName(tc.in); got != tc.want {
			t.Errorf("baseName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
