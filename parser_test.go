package argparse

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// stubExit replaces the process exit hook for the duration of a test and
// records the last exit code.
func stubExit(t *testing.T) *int {
	t.Helper()
	old := exitFn
	t.Cleanup(func() { exitFn = old })
	code := -1
	exitFn = func(c int) { code = c }
	return &code
}

func TestExitOnErrorPath(t *testing.T) {
	code := stubExit(t)
	var buf bytes.Buffer

	p := NewParser("prog").SetErrorOutput(&buf)
	p.AddArgument("-r", "--req").Required(true)

	ns, err := p.ParseArgs(nil)
	if ns != nil || err != nil {
		t.Fatalf("ParseArgs = (%v, %v), want (nil, nil) after exit", ns, err)
	}
	if *code != 1 {
		t.Errorf("exit code = %d, want 1", *code)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "usage: prog") {
		t.Errorf("output should begin with usage, got %q", out)
	}
	if !strings.Contains(out, "prog: error: the following arguments are required: -r/--req") {
		t.Errorf("output = %q", out)
	}
}

func TestHelpExitsZero(t *testing.T) {
	code := stubExit(t)
	var buf bytes.Buffer

	p := NewParser("prog").SetOutput(&buf)
	p.AddArgument("--foo").Help("foo help")

	ns, err := p.ParseArgs([]string{"-h"})
	if ns != nil || err != nil {
		t.Fatalf("ParseArgs = (%v, %v), want (nil, nil) after help", ns, err)
	}
	if *code != 0 {
		t.Errorf("exit code = %d, want 0", *code)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "usage: prog") {
		t.Errorf("help should begin with usage, got %q", out)
	}
	if !strings.Contains(out, "show this help message and exit") {
		t.Errorf("help output = %q", out)
	}
	if !strings.Contains(out, "foo help") {
		t.Errorf("help output = %q", out)
	}
}

func TestVersionExitsZero(t *testing.T) {
	code := stubExit(t)
	var buf bytes.Buffer

	p := NewParser("prog").SetOutput(&buf)
	p.AddArgument("--version").Action(Version).Version("prog 1.2.3")

	ns, err := p.ParseArgs([]string{"--version"})
	if ns != nil || err != nil {
		t.Fatalf("ParseArgs = (%v, %v), want (nil, nil) after version", ns, err)
	}
	if *code != 0 {
		t.Errorf("exit code = %d, want 0", *code)
	}
	if got := buf.String(); got != "prog 1.2.3\n" {
		t.Errorf("output = %q", got)
	}
}

func TestVersionWithoutText(t *testing.T) {
	p := NewParser("prog").ExitOnError(false)
	p.AddArgument("--version").Action(Version)

	_, err := p.ParseArgs([]string{"--version"})
	var ae *AttributeError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want *AttributeError", err)
	}
}

func TestParentsFlattening(t *testing.T) {
	parent := NewParser("parent").AddHelp(false)
	parent.AddArgument("--shared")
	parent.AddArgument("base")

	p := NewParser("child").ExitOnError(false).Parents(parent)
	p.AddArgument("--own")
	p.AddArgument("extra")

	positional := p.positionalArguments(true)
	if len(positional) != 2 || positional[0].Name() != "base" || positional[1].Name() != "extra" {
		t.Fatalf("positional order wrong: %v", positional)
	}

	ns := mustParse(t, p, []string{"--shared", "s", "--own", "o", "B", "E"})
	if diff := cmp.Diff([]string{"s"}, mustStrings(t, ns, "shared")); diff != "" {
		t.Errorf("shared mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"B"}, mustStrings(t, ns, "base")); diff != "" {
		t.Errorf("base mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"E"}, mustStrings(t, ns, "extra")); diff != "" {
		t.Errorf("extra mismatch:\n%s", diff)
	}
}

func TestParentConflictSurfacesAtParse(t *testing.T) {
	parent := NewParser("parent").AddHelp(false)
	parent.AddArgument("--same")

	p := NewParser("child").ExitOnError(false).Parents(parent)
	p.AddArgument("--same")

	_, err := p.ParseArgs(nil)
	var ae *ArgumentError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want *ArgumentError", err)
	}
}

func TestGetDefault(t *testing.T) {
	p := NewParser("test").ArgumentDefault("fallback")
	p.AddArgument("--foo").DefaultValue("x")
	p.AddArgument("--bar")
	p.AddArgument("--renamed").Dest("target").DefaultValue("r")
	p.AddArgument("pos").DefaultValue("p")

	cases := []struct {
		dest string
		want string
	}{
		{"foo", "x"},
		{"--foo", "x"},
		{"bar", "fallback"},
		{"target", "r"},
		{"pos", "p"},
		{"missing", ""},
	}
	for _, tc := range cases {
		if got := p.GetDefault(tc.dest); got != tc.want {
			t.Errorf("GetDefault(%q) = %q, want %q", tc.dest, got, tc.want)
		}
	}
}

func TestPrefixChars(t *testing.T) {
	p := NewParser("test").ExitOnError(false).PrefixChars("+")
	p.AddArgument("+f")
	p.AddArgument("path")

	ns := mustParse(t, p, []string{"+f", "v", "-raw"})
	if diff := cmp.Diff([]string{"v"}, mustStrings(t, ns, "f")); diff != "" {
		t.Errorf("f mismatch:\n%s", diff)
	}
	// '-' is not a prefix character here, so -raw is positional
	if diff := cmp.Diff([]string{"-raw"}, mustStrings(t, ns, "path")); diff != "" {
		t.Errorf("path mismatch:\n%s", diff)
	}
}

func TestAddHelpDisabled(t *testing.T) {
	p := NewParser("test").ExitOnError(false).AddHelp(false)
	p.AddArgument("value").Nargs("?").DefaultValue("d")

	// without add_help the token is an ordinary positional value
	ns := mustParse(t, p, []string{"-h"})
	if diff := cmp.Diff([]string{"-h"}, mustStrings(t, ns, "value")); diff != "" {
		t.Errorf("value mismatch:\n%s", diff)
	}
}
