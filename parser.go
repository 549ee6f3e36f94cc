package argparse

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// exitFn is swapped out by tests that exercise the help, version and
// exit-on-error paths.
var exitFn = os.Exit

// ArgumentParser is an ordered collection of argument descriptors plus the
// scalar parser settings. A parser may inherit arguments from parent parsers
// and may own one sub-parser group. Builders are not safe for concurrent use;
// a fully built parser may serve concurrent parses.
type ArgumentParser struct {
	prog                string
	name                string
	usageText           string
	description         string
	epilog              string
	parents             []*ArgumentParser
	prefixChars         string
	fromfilePrefixChars string
	argumentDefault     string
	addHelp             bool
	allowAbbrev         bool
	exitOnError         bool

	arguments    []*Argument
	subparsers   *SubparserGroup
	subparserPos int

	helpArgument *Argument

	out    io.Writer
	errOut io.Writer
}

// NewParser constructs a parser with the given program name. An empty name
// falls back to the basename of os.Args[0].
func NewParser(prog string) *ArgumentParser {
	p := &ArgumentParser{
		prog:        "untitled",
		prefixChars: "-",
		addHelp:     true,
		allowAbbrev: true,
		exitOnError: true,
		out:         os.Stdout,
		errOut:      os.Stderr,
	}
	if v := strings.TrimSpace(prog); v != "" {
		p.prog = v
	} else if len(os.Args) > 0 {
		p.prog = baseName(os.Args[0])
	}
	p.helpArgument = newArgument([]string{"-h", "--help"}, "help", optionalKind).
		Help("show this help message and exit").
		Action(StoreTrue)
	return p
}

// Prog overrides the program name; empty values are ignored.
func (p *ArgumentParser) Prog(value string) *ArgumentParser {
	if v := strings.TrimSpace(value); v != "" {
		p.prog = v
	}
	return p
}

// Usage overrides the generated usage line.
func (p *ArgumentParser) Usage(value string) *ArgumentParser {
	p.usageText = strings.TrimSpace(value)
	return p
}

// Description sets the text printed between the usage line and the argument
// sections.
func (p *ArgumentParser) Description(value string) *ArgumentParser {
	p.description = strings.TrimSpace(value)
	return p
}

// Epilog sets the text printed after the argument sections.
func (p *ArgumentParser) Epilog(value string) *ArgumentParser {
	p.epilog = strings.TrimSpace(value)
	return p
}

// Parents appends parsers whose arguments are inherited, in order, ahead of
// this parser's own.
func (p *ArgumentParser) Parents(parents ...*ArgumentParser) *ArgumentParser {
	p.parents = append(p.parents, parents...)
	return p
}

// PrefixChars sets the characters legal as option prefixes; empty values are
// ignored.
func (p *ArgumentParser) PrefixChars(value string) *ArgumentParser {
	if v := strings.TrimSpace(value); v != "" {
		p.prefixChars = v
	}
	return p
}

// FromfilePrefixChars enables file-expansion tokens beginning with any of the
// given characters.
func (p *ArgumentParser) FromfilePrefixChars(value string) *ArgumentParser {
	p.fromfilePrefixChars = strings.TrimSpace(value)
	return p
}

// ArgumentDefault sets the parser-wide fallback default value.
func (p *ArgumentParser) ArgumentDefault(value string) *ArgumentParser {
	p.argumentDefault = strings.TrimSpace(value)
	return p
}

// AddHelp controls the synthetic -h/--help argument.
func (p *ArgumentParser) AddHelp(value bool) *ArgumentParser {
	p.addHelp = value
	return p
}

// AllowAbbrev controls unambiguous prefix matching of long options.
func (p *ArgumentParser) AllowAbbrev(value bool) *ArgumentParser {
	p.allowAbbrev = value
	return p
}

// ExitOnError selects between the print-and-exit error policy and returning
// typed errors from ParseArgs.
func (p *ArgumentParser) ExitOnError(value bool) *ArgumentParser {
	p.exitOnError = value
	return p
}

// SetOutput redirects help and version output, default os.Stdout.
func (p *ArgumentParser) SetOutput(w io.Writer) *ArgumentParser {
	if w != nil {
		p.out = w
	}
	return p
}

// SetErrorOutput redirects the usage/error sink, default os.Stderr.
func (p *ArgumentParser) SetErrorOutput(w io.Writer) *ArgumentParser {
	if w != nil {
		p.errOut = w
	}
	return p
}

// AddArgument declares an argument under one flag or a sequence of flags. The
// canonical name is the body of the flag with the longest prefix run; a bare
// first flag declares a positional, which admits no additional flags.
func (p *ArgumentParser) AddArgument(flags ...string) *Argument {
	if len(flags) == 0 {
		panic(valueErrorf("empty options"))
	}
	fl := make([]string, len(flags))
	copy(fl, flags)
	fl[0] = strings.TrimSpace(fl[0])
	if fl[0] == "" {
		panic(indexErrorf("string index out of range"))
	}

	name := fl[0]
	prefixes := 0
	updateName := func(flag string) {
		body := flagName(flag)
		if count := len(flag) - len(body); count > prefixes {
			prefixes = count
			name = body
		}
	}
	isOptional := isOptionToken(fl[0], p.prefixChars)
	if isOptional {
		updateName(fl[0])
	} else if len(fl) > 1 {
		// no positional multiflag
		panic(valueErrorf("invalid option string %s: must starts with a character '%s'",
			fl[0], p.prefixChars))
	}
	for _, flag := range fl[1:] {
		if flag == "" {
			panic(indexErrorf("string index out of range"))
		}
		if !isOptionToken(flag, p.prefixChars) {
			panic(valueErrorf("invalid option string %s: must starts with a character '%s'",
				flag, p.prefixChars))
		}
		updateName(flag)
	}

	kind := positionalKind
	if isOptional {
		kind = optionalKind
	}
	arg := newArgument(fl, name, kind)
	p.arguments = append(p.arguments, arg)
	return arg
}

// AddSubparsers creates the parser's sub-parser group. Only one group may
// exist across a parser and its transitive parents; the group binds to the
// current count of declared positionals.
func (p *ArgumentParser) AddSubparsers() *SubparserGroup {
	if p.findGroup() != nil {
		panic(argumentErrorf("cannot have multiple subparser arguments"))
	}
	pos := 0
	for _, a := range p.arguments {
		if a.kind == positionalKind {
			pos++
		}
	}
	p.subparserPos = pos
	p.subparsers = &SubparserGroup{prefixChars: p.prefixChars, owner: p}
	return p.subparsers
}

func (p *ArgumentParser) findGroup() *SubparserGroup {
	if p.subparsers != nil {
		return p.subparsers
	}
	for _, parent := range p.parents {
		if g := parent.findGroup(); g != nil {
			return g
		}
	}
	return nil
}

// positionalArguments flattens the positional descriptors: parents first,
// recursively and in order, then this parser's own.
func (p *ArgumentParser) positionalArguments(includeSuppressed bool) []*Argument {
	var result []*Argument
	for _, parent := range p.parents {
		result = append(result, parent.positionalArguments(includeSuppressed)...)
	}
	for _, a := range p.arguments {
		if a.kind == positionalKind && (includeSuppressed || !a.helpSuppressed) {
			result = append(result, a)
		}
	}
	return result
}

// optionalArguments flattens the optional descriptors, with the synthetic
// help argument prepended when enabled.
func (p *ArgumentParser) optionalArguments(includeSuppressed bool) []*Argument {
	var result []*Argument
	if p.addHelp {
		result = append(result, p.helpArgument)
	}
	for _, parent := range p.parents {
		result = append(result, parent.optionalArguments(includeSuppressed)...)
	}
	for _, a := range p.arguments {
		if a.kind == optionalKind && (includeSuppressed || !a.helpSuppressed) {
			result = append(result, a)
		}
	}
	return result
}

// subparserInfo resolves the effective sub-parser group and its index in the
// flattened positional sequence. Lookup walks parents in order and returns
// the first group found.
func (p *ArgumentParser) subparserInfo(includeSuppressed bool) (*SubparserGroup, int) {
	if p.subparsers != nil {
		index := 0
		for _, parent := range p.parents {
			index += len(parent.positionalArguments(includeSuppressed))
		}
		seen := 0
		for _, a := range p.arguments {
			if seen >= p.subparserPos {
				break
			}
			if a.kind == positionalKind {
				seen++
				if includeSuppressed || !a.helpSuppressed {
					index++
				}
			}
		}
		return p.subparsers, index
	}
	for i, parent := range p.parents {
		if g, index := parent.subparserInfo(includeSuppressed); g != nil {
			base := 0
			for j := 0; j < i; j++ {
				base += len(p.parents[j].positionalArguments(includeSuppressed))
			}
			return g, base + index
		}
	}
	return nil, 0
}

// GetDefault resolves the effective default value for a dest or flag: the
// argument-level default, falling back to the parser-wide argument default.
func (p *ArgumentParser) GetDefault(dest string) string {
	effective := func(a *Argument) string {
		if a.defVal != "" {
			return a.defVal
		}
		return p.argumentDefault
	}
	for _, a := range p.positionalArguments(true) {
		for _, flag := range a.flags {
			if flag == dest {
				return effective(a)
			}
		}
	}
	for _, a := range p.optionalArguments(true) {
		if a.dest != "" {
			if a.dest == dest {
				return effective(a)
			}
			continue
		}
		for _, flag := range a.flags {
			if flag == dest || flagName(flag) == dest {
				return effective(a)
			}
		}
	}
	return ""
}

// ParseArgs consumes an explicit token sequence and returns the resulting
// Namespace. With ExitOnError set, any error prints usage plus the message to
// the error sink and exits non-zero; otherwise the typed error is returned.
func (p *ArgumentParser) ParseArgs(args []string) (*Namespace, error) {
	ns, err := p.parseKnownArgs(args)
	if err == errExitRequested {
		return nil, nil
	}
	if err != nil {
		if p.exitOnError {
			p.PrintUsage(p.errOut)
			fmt.Fprintf(p.errOut, "%s: error: %s\n", p.prog, err.Error())
			exitFn(1)
			return nil, nil
		}
		return nil, err
	}
	return ns, nil
}

// ParseArgsFrom parses the given tokens, or the captured program arguments
// with the first element skipped when args is nil.
func (p *ArgumentParser) ParseArgsFrom(args []string) (*Namespace, error) {
	if args == nil && len(os.Args) > 0 {
		args = os.Args[1:]
	}
	return p.ParseArgs(args)
}

// PrintUsage writes the usage line to w, or to the error sink when w is nil.
func (p *ArgumentParser) PrintUsage(w io.Writer) {
	if w == nil {
		w = p.errOut
	}
	fmt.Fprintln(w, "usage: "+p.formatUsage())
}

// PrintHelp writes the usage line and the help block to w, or to the default
// output when w is nil.
func (p *ArgumentParser) PrintHelp(w io.Writer) {
	if w == nil {
		w = p.out
	}
	p.formatHelp(w)
}
