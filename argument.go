package argparse

import (
	"strconv"
	"strings"
)

type argumentKind int

const (
	positionalKind argumentKind = iota
	optionalKind
)

type arityKind int

const (
	// arityImplicit consumes exactly one value for store/append/extend and
	// nothing for const, flag and count actions.
	arityImplicit arityKind = iota
	arityExact
	arityOptional   // "?"
	arityZeroOrMore // "*"
	arityOneOrMore  // "+"
)

// Argument describes one declared positional or optional argument. Builder
// methods validate cross-field constraints as they are applied and panic with
// a typed error on programmer misuse; the descriptor is treated as immutable
// once parsing begins.
type Argument struct {
	flags []string
	name  string
	kind  argumentKind

	action   Action
	arity    arityKind
	numArgs  int
	constVal string
	defVal   string
	choices  []string
	required bool

	helpText       string
	helpSuppressed bool
	metavar        string
	dest           string
	versionText    string
	callback       func()
}

func newArgument(flags []string, name string, kind argumentKind) *Argument {
	return &Argument{
		flags:  flags,
		name:   name,
		kind:   kind,
		action: Store,
	}
}

// Flags returns a copy of the declared option strings.
func (a *Argument) Flags() []string {
	out := make([]string, len(a.flags))
	copy(out, a.flags)
	return out
}

// Name returns the canonical flag name used as the default dest.
func (a *Argument) Name() string { return a.name }

// Action sets the argument action, resetting arity, const and default values
// as the action demands.
func (a *Argument) Action(value Action) *Argument {
	if a.action == StoreTrue && value != StoreTrue {
		a.callback = nil
	}
	if a.action == Version {
		a.helpText = ""
	}
	switch value {
	case StoreTrue:
		a.defVal = "0"
		a.constVal = "1"
		a.arity = arityExact
		a.numArgs = 0
		a.choices = nil
	case StoreFalse:
		a.defVal = "1"
		a.constVal = "0"
		a.arity = arityExact
		a.numArgs = 0
		a.choices = nil
	case Version, Help:
		if value == Version {
			a.helpText = "show program's version number and exit"
		}
		if a.kind == positionalKind {
			// version and help actions cannot be positional
			panic(typeErrorf("got an unexpected keyword argument 'required'"))
		}
		a.arity = arityExact
		a.numArgs = 0
		a.choices = nil
	case StoreConst, AppendConst, Count:
		a.arity = arityExact
		a.numArgs = 0
		a.choices = nil
	case Store, Append, Extend:
		if a.arity == arityExact && a.numArgs == 0 {
			a.arity = arityImplicit
		}
	default:
		panic(valueErrorf("unknown action"))
	}
	a.action = value
	return a
}

// ActionNamed sets the action by its string name.
func (a *Argument) ActionNamed(value string) *Argument {
	action, err := ParseAction(value)
	if err != nil {
		panic(err)
	}
	return a.Action(action)
}

// NargsN sets an exact value count.
func (a *Argument) NargsN(value int) *Argument {
	switch a.action {
	case StoreConst, StoreTrue, StoreFalse, AppendConst, Help, Version, Count:
		panic(typeErrorf("got an unexpected keyword argument 'nargs'"))
	case Store:
		if value == 0 {
			panic(valueErrorf("nargs for store actions must be != 0; " +
				"if you have nothing to store, actions such as " +
				"store true or store const may be more appropriate"))
		}
	case Append, Extend:
		if value == 0 {
			panic(valueErrorf("nargs for append actions must be != 0; " +
				"if arg strings are not supplying the value to append, " +
				"the append const action may be more appropriate"))
		}
	default:
		panic(valueErrorf("unknown action"))
	}
	if value < 0 {
		panic(valueErrorf("invalid nargs value '%d'", value))
	}
	a.arity = arityExact
	a.numArgs = value
	return a
}

// Nargs sets a variable arity: "?", "*" or "+".
func (a *Argument) Nargs(value string) *Argument {
	if !a.action.takesValues() {
		panic(typeErrorf("got an unexpected keyword argument 'nargs'"))
	}
	switch strings.TrimSpace(value) {
	case "?":
		a.arity = arityOptional
	case "*":
		a.arity = arityZeroOrMore
	case "+":
		a.arity = arityOneOrMore
	default:
		panic(valueErrorf("invalid nargs value '%s'", strings.TrimSpace(value)))
	}
	a.numArgs = 0
	return a
}

// ConstValue sets the const value stored by const actions and by optionals
// with "?" arity that are named without a value.
func (a *Argument) ConstValue(value string) *Argument {
	switch {
	case a.action&(StoreConst|AppendConst) != 0,
		a.kind == optionalKind && a.arity == arityOptional && a.action.takesValues():
		a.constVal = strings.TrimSpace(value)
	case a.kind == optionalKind && a.arity != arityOptional && a.action.takesValues():
		panic(valueErrorf("nargs must be '?' to supply const"))
	default:
		panic(typeErrorf("got an unexpected keyword argument 'const'"))
	}
	return a
}

// DefaultValue sets the default. Ignored for store_true/store_false, whose
// defaults are fixed by the action.
func (a *Argument) DefaultValue(value string) *Argument {
	if a.action&(StoreTrue|StoreFalse) == 0 {
		a.defVal = strings.TrimSpace(value)
	}
	return a
}

// Choices restricts the set of legal values.
func (a *Argument) Choices(values []string) *Argument {
	if !a.action.takesValues() {
		panic(typeErrorf("got an unexpected keyword argument 'choices'"))
	}
	choices := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			panic(valueErrorf("empty choice value"))
		}
		choices = append(choices, v)
	}
	a.choices = choices
	return a
}

// Required marks an optional argument as mandatory.
func (a *Argument) Required(value bool) *Argument {
	if a.kind == positionalKind {
		panic(typeErrorf("'required' is an invalid argument for positionals"))
	}
	a.required = value
	return a
}

// Help sets the help text shown in the help block.
func (a *Argument) Help(value string) *Argument {
	a.helpText = strings.TrimSpace(value)
	a.helpSuppressed = false
	return a
}

// SuppressHelp hides the argument from help and usage output.
func (a *Argument) SuppressHelp() *Argument {
	a.helpSuppressed = true
	return a
}

// Metavar overrides the display name used in usage and help.
func (a *Argument) Metavar(value string) *Argument {
	a.metavar = strings.TrimSpace(value)
	return a
}

// Dest sets the destination key values are stored under.
func (a *Argument) Dest(value string) *Argument {
	if a.kind == positionalKind {
		panic(valueErrorf("dest supplied twice for positional argument"))
	}
	a.dest = strings.TrimSpace(value)
	return a
}

// Version sets the version text for version actions.
func (a *Argument) Version(value string) *Argument {
	if a.action != Version {
		panic(typeErrorf("got an unexpected keyword argument 'version'"))
	}
	a.versionText = strings.TrimSpace(value)
	return a
}

// Callback attaches a zero-argument hook invoked when a store_true argument
// is matched.
func (a *Argument) Callback(fn func()) *Argument {
	if a.action != StoreTrue {
		panic(typeErrorf("got an unexpected keyword argument 'callback'"))
	}
	a.callback = fn
	return a
}

// arityString renders the arity the way it appears in error messages.
func (a *Argument) arityString() string {
	switch a.arity {
	case arityExact:
		return strconv.Itoa(a.numArgs)
	case arityOptional:
		return "?"
	case arityZeroOrMore:
		return "*"
	case arityOneOrMore:
		return "+"
	}
	return ""
}

// argumentName is the display name: metavar, else the choice set, else dest
// or the canonical name, upper-cased for optionals.
func (a *Argument) argumentName() string {
	if a.metavar != "" {
		return a.metavar
	}
	if len(a.choices) > 0 {
		return "{" + strings.Join(a.choices, ",") + "}"
	}
	res := a.dest
	if res == "" {
		res = a.name
	}
	if a.kind == optionalKind {
		return strings.ToUpper(res)
	}
	return res
}

// nargsSuffix repeats the display name according to the arity.
func (a *Argument) nargsSuffix() string {
	name := a.argumentName()
	var b strings.Builder
	if a.kind == optionalKind {
		b.WriteByte(' ')
	}
	switch a.arity {
	case arityOptional:
		b.WriteString("[" + name + "]")
	case arityZeroOrMore:
		b.WriteString("[" + name + " ...]")
	case arityOneOrMore:
		b.WriteString(name + " [" + name + " ...]")
	case arityExact:
		for i := 0; i < a.numArgs; i++ {
			if i != 0 {
				b.WriteByte(' ')
			}
			b.WriteString(name)
		}
	default:
		b.WriteString(name)
	}
	return b.String()
}

// usage renders the usage-line fragment for the argument.
func (a *Argument) usage() string {
	var res string
	if a.kind == optionalKind {
		res += a.flags[0]
	}
	if a.action&(Store|Append|Extend|AppendConst) != 0 {
		res += a.nargsSuffix()
	}
	return res
}

// flagsToString renders the flag cell used in the help block.
func (a *Argument) flagsToString() string {
	if a.kind != optionalKind {
		return a.argumentName()
	}
	var b strings.Builder
	for _, flag := range a.flags {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(flag)
		if a.action&(Store|Append|Extend|AppendConst) != 0 {
			b.WriteString(a.nargsSuffix())
		}
	}
	return b.String()
}

// formatHelpLine pads the flag cell to limit and appends the help text,
// spilling onto the next line when the cell overflows.
func (a *Argument) formatHelpLine(limit int) string {
	res := "  " + a.flagsToString()
	if a.helpText != "" {
		if len(res)+2 > limit {
			res += "\n" + strings.Repeat(" ", helpColumnLimit) + a.helpText
		} else {
			res += strings.Repeat(" ", limit-len(res)) + a.helpText
		}
	}
	return res
}
