package argparse

import "strings"

// SubparserGroup is a named, ordered collection of child parsers bound to a
// position in the owning parser's positional sequence. When the resolver
// reaches that position and the token names a child, dispatch switches to the
// child schema for the remaining tokens.
type SubparserGroup struct {
	title       string
	description string
	prog        string
	dest        string
	required    bool
	helpText    string
	metavar     string
	prefixChars string

	owner   *ArgumentParser
	parsers []*ArgumentParser
}

// Title sets the help section title for the group.
func (s *SubparserGroup) Title(value string) *SubparserGroup {
	s.title = strings.TrimSpace(value)
	return s
}

// Description sets the help section description.
func (s *SubparserGroup) Description(value string) *SubparserGroup {
	s.description = strings.TrimSpace(value)
	return s
}

// Prog overrides the program name prefix given to child parsers.
func (s *SubparserGroup) Prog(value string) *SubparserGroup {
	s.prog = strings.TrimSpace(value)
	return s
}

// Dest stores the chosen child name under the given key.
func (s *SubparserGroup) Dest(value string) *SubparserGroup {
	s.dest = strings.TrimSpace(value)
	return s
}

// Required makes choosing a child mandatory.
func (s *SubparserGroup) Required(value bool) *SubparserGroup {
	s.required = value
	return s
}

// Help sets the help text shown next to the child listing.
func (s *SubparserGroup) Help(value string) *SubparserGroup {
	s.helpText = strings.TrimSpace(value)
	return s
}

// Metavar overrides the child listing in usage and help.
func (s *SubparserGroup) Metavar(value string) *SubparserGroup {
	s.metavar = strings.TrimSpace(value)
	return s
}

// AddParser adds a child parser selectable by name. The child inherits the
// group's prefix characters and reports itself as "<prog> <name>".
func (s *SubparserGroup) AddParser(name string) *ArgumentParser {
	name = strings.TrimSpace(name)
	child := NewParser(name)
	child.name = name
	child.prefixChars = s.prefixChars
	prog := s.prog
	if prog == "" && s.owner != nil {
		prog = s.owner.prog
	}
	if prog != "" {
		child.prog = prog + " " + name
	}
	if s.owner != nil {
		child.out = s.owner.out
		child.errOut = s.owner.errOut
		child.exitOnError = s.owner.exitOnError
	}
	s.parsers = append(s.parsers, child)
	return child
}

func (s *SubparserGroup) childByName(name string) *ArgumentParser {
	for _, child := range s.parsers {
		if child.name == name {
			return child
		}
	}
	return nil
}

func (s *SubparserGroup) usage() string {
	return s.flagsToString() + " ..."
}

func (s *SubparserGroup) flagsToString() string {
	if s.metavar != "" {
		return s.metavar
	}
	names := make([]string, 0, len(s.parsers))
	for _, child := range s.parsers {
		names = append(names, child.name)
	}
	return "{" + strings.Join(names, ",") + "}"
}

func (s *SubparserGroup) formatHelpLine(limit int) string {
	res := "  " + s.flagsToString()
	if s.helpText != "" {
		if len(res)+2 > limit {
			res += "\n" + strings.Repeat(" ", helpColumnLimit) + s.helpText
		} else {
			res += strings.Repeat(" ", limit-len(res)) + s.helpText
		}
	}
	return res
}
