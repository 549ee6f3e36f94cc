package argparse

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUsageLine(t *testing.T) {
	p := NewParser("test")
	p.AddArgument("-f", "--foo")
	p.AddArgument("bar")

	var buf bytes.Buffer
	p.PrintUsage(&buf)
	want := "usage: test [-h] [-f FOO] bar\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("usage mismatch (-want +got):\n%s", diff)
	}
}

func TestUsageOverride(t *testing.T) {
	p := NewParser("test").Usage("test COMMAND [ARGS]")
	p.AddArgument("--foo")

	var buf bytes.Buffer
	p.PrintUsage(&buf)
	if got := buf.String(); got != "usage: test COMMAND [ARGS]\n" {
		t.Errorf("usage = %q", got)
	}
}

func TestUsageWrapsAtColumnBudget(t *testing.T) {
	p := NewParser("averagelyverboseprogram")
	for _, name := range []string{
		"--alpha-setting", "--bravo-setting", "--charlie-setting",
		"--delta-setting", "--echo-setting", "--foxtrot-setting",
	} {
		p.AddArgument(name)
	}
	p.AddArgument("inputs").Nargs("+")

	var buf bytes.Buffer
	p.PrintUsage(&buf)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected a wrapped usage line, got %q", buf.String())
	}
	for _, line := range lines {
		if len(line) > usageLimit {
			t.Errorf("line exceeds %d columns: %q", usageLimit, line)
		}
	}
	// continuation lines align under the fragment column
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, strings.Repeat(" ", len("usage: "))) {
			t.Errorf("continuation line not indented: %q", line)
		}
	}
}

func TestHelpBlockLayout(t *testing.T) {
	p := NewParser("test").
		Description("desc").
		Epilog("tail")
	p.AddArgument("-f", "--foo").Help("foo help")
	p.AddArgument("path").Help("path help")

	var buf bytes.Buffer
	p.PrintHelp(&buf)

	want := strings.Join([]string{
		"usage: test [-h] [-f FOO] path",
		"",
		"desc",
		"",
		"positional arguments:",
		"  path               path help",
		"",
		"optional arguments:",
		"  -h, --help         show this help message and exit",
		"  -f FOO, --foo FOO  foo help",
		"",
		"tail",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("help mismatch (-want +got):\n%s", diff)
	}
}

func TestHelpOverflowingFlagCell(t *testing.T) {
	p := NewParser("test")
	p.AddArgument("--extremely-long-option-name").Help("long help")

	var buf bytes.Buffer
	p.PrintHelp(&buf)
	out := buf.String()
	// the cell exceeds the help column, so the text drops to the next line
	if !strings.Contains(out, "--extremely-long-option-name") {
		t.Fatalf("output = %q", out)
	}
	if !strings.Contains(out, "\n"+strings.Repeat(" ", helpColumnLimit)+"long help") {
		t.Errorf("overflowing help not indented to column %d: %q", helpColumnLimit, out)
	}
}

func TestHelpSuppression(t *testing.T) {
	p := NewParser("test")
	p.AddArgument("--visible").Help("shown")
	p.AddArgument("--hidden").Help("not shown").SuppressHelp()

	var buf bytes.Buffer
	p.PrintHelp(&buf)
	out := buf.String()
	if !strings.Contains(out, "--visible") {
		t.Errorf("visible flag missing: %q", out)
	}
	if strings.Contains(out, "--hidden") {
		t.Errorf("suppressed flag rendered: %q", out)
	}
}

func TestHelpChoicesRendering(t *testing.T) {
	p := NewParser("test")
	p.AddArgument("--level").Choices([]string{"low", "high"}).Help("level help")

	var buf bytes.Buffer
	p.PrintHelp(&buf)
	if !strings.Contains(buf.String(), "{low,high}") {
		t.Errorf("choice metavar missing: %q", buf.String())
	}
}
