package argparse

import (
	"fmt"
	"io"
	"strings"
)

const (
	// usageLimit is the column budget for the usage line.
	usageLimit = 80
	// helpColumnLimit caps the column where help text begins; help text that
	// does not fit beside its flag cell starts on the next line at this column.
	helpColumnLimit = 24
)

// formatUsage lays out the usage line: optionals in declaration order wrapped
// in brackets, then positionals interleaved with the sub-parser group at its
// recorded index, wrapped at the column budget with the continuation indent.
func (p *ArgumentParser) formatUsage() string {
	if p.usageText != "" {
		return p.usageText
	}
	res := p.prog
	positional := p.positionalArguments(false)
	optional := p.optionalArguments(false)
	group, groupPos := p.subparserInfo(false)

	minSize := 0
	if group != nil {
		if n := len(group.usage()); n > minSize {
			minSize = n
		}
	}
	for _, a := range positional {
		if n := len(a.usage()); n > minSize {
			minSize = n
		}
	}
	for _, a := range optional {
		if n := len(a.usage()); n > minSize {
			minSize = n
		}
	}

	const usagePrefix = len("usage: ")
	pos := usagePrefix + len(p.prog)
	offset := usagePrefix
	extra := 0
	if minSize > 0 {
		extra = 1 + minSize
	}
	if pos+extra <= usageLimit {
		offset += len(p.prog)
		if minSize > 0 {
			offset++
		}
	} else if !(len(optional) == 0 && len(positional) == 0 && group == nil) {
		res += "\n" + strings.Repeat(" ", offset-1)
		pos = offset - 1
	}

	emit := func(str string, bracketed bool) {
		frag := str
		if bracketed {
			frag = "[" + str + "]"
		}
		if pos+1 == offset || pos+1+len(frag) <= usageLimit {
			res += " " + frag
		} else {
			res += "\n" + strings.Repeat(" ", offset) + frag
			pos = offset
		}
		pos += 1 + len(frag)
	}
	for _, a := range optional {
		emit(a.usage(), true)
	}
	for i, a := range positional {
		if group != nil && groupPos == i {
			emit(group.usage(), false)
		}
		emit(a.usage(), false)
	}
	if group != nil && groupPos == len(positional) {
		emit(group.usage(), false)
	}
	return res
}

// formatHelp writes the usage line, description, the aligned argument
// sections and the epilog.
func (p *ArgumentParser) formatHelp(w io.Writer) {
	p.PrintUsage(w)
	if p.description != "" {
		fmt.Fprintf(w, "\n%s\n", p.description)
	}

	positional := p.positionalArguments(false)
	optional := p.optionalArguments(false)
	group, groupPos := p.subparserInfo(false)
	// a group with no title and no description renders inside the
	// positional section
	groupPositional := group != nil && group.title == "" && group.description == ""

	minSize := 0
	if group != nil {
		if n := len(group.flagsToString()); n > minSize {
			minSize = n
		}
	}
	for _, a := range positional {
		if n := len(a.flagsToString()); n > minSize {
			minSize = n
		}
	}
	for _, a := range optional {
		if n := len(a.flagsToString()); n > minSize {
			minSize = n
		}
	}
	minSize += 4
	if minSize > helpColumnLimit {
		minSize = helpColumnLimit
	}

	if len(positional) > 0 || groupPositional {
		fmt.Fprintf(w, "\npositional arguments:\n")
		for i, a := range positional {
			if groupPositional && groupPos == i {
				fmt.Fprintln(w, group.formatHelpLine(minSize))
			}
			fmt.Fprintln(w, a.formatHelpLine(minSize))
		}
		if groupPositional && groupPos == len(positional) {
			fmt.Fprintln(w, group.formatHelpLine(minSize))
		}
	}
	if len(optional) > 0 {
		fmt.Fprintf(w, "\noptional arguments:\n")
		for _, a := range optional {
			fmt.Fprintln(w, a.formatHelpLine(minSize))
		}
	}
	if group != nil && !groupPositional {
		title := group.title
		if title == "" {
			title = "subcommands"
		}
		fmt.Fprintf(w, "\n%s:\n", title)
		if group.description != "" {
			fmt.Fprintf(w, "  %s\n\n", group.description)
		}
		fmt.Fprintln(w, group.formatHelpLine(minSize))
	}
	if p.epilog != "" {
		fmt.Fprintf(w, "\n%s\n", p.epilog)
	}
}
