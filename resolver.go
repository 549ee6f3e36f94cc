package argparse

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// errExitRequested marks a help or version invocation; the process has
// already been asked to exit zero by the time it surfaces.
var errExitRequested = errors.New("argparse: exit requested")

type resultEntry struct {
	Action Action
	Values []string
}

// resolver holds the state of a single parse invocation. Every parse builds
// a fresh resolver so repeated parses are independent.
type resolver struct {
	parser     *ArgumentParser
	positional []*Argument
	optional   []*Argument

	result              map[string]*resultEntry
	haveNegativeOptions bool

	group      *SubparserGroup
	groupPos   int
	dispatched bool

	positionalGroups [][]string
	unrecognized     []string
	pos              int
}

func (p *ArgumentParser) parseKnownArgs(args []string) (*Namespace, error) {
	tokens := make([]string, len(args))
	copy(tokens, args)

	if p.fromfilePrefixChars != "" {
		expanded, err := p.expandFileTokens(tokens)
		if err != nil {
			return nil, err
		}
		tokens = expanded
	}

	r := &resolver{
		parser:     p,
		positional: p.positionalArguments(true),
		optional:   p.optionalArguments(true),
		result:     map[string]*resultEntry{},
	}
	r.group, r.groupPos = p.subparserInfo(true)

	if err := r.validateDeclarations(); err != nil {
		return nil, err
	}
	if err := r.createResult(); err != nil {
		return nil, err
	}
	r.haveNegativeOptions = r.negativeOptionsPresent()

	tokens, err := r.expandAbbreviations(tokens)
	if err != nil {
		return nil, err
	}
	if err := r.mainPass(tokens); err != nil {
		return nil, err
	}
	for _, group := range r.positionalGroups {
		if err := r.matchPartial(group); err != nil {
			return nil, err
		}
	}
	if err := r.finalize(); err != nil {
		return nil, err
	}
	return newNamespace(r.result, p.prefixChars), nil
}

// expandFileTokens replaces each token beginning with a fromfile prefix
// character by the lines of the named file, one token per line.
func (p *ArgumentParser) expandFileTokens(tokens []string) ([]string, error) {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" || strings.IndexByte(p.fromfilePrefixChars, tok[0]) < 0 {
			out = append(out, tok)
			continue
		}
		name := tok[1:]
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, parseErrorf("no such file or directory: '%s'", name)
		}
		if len(data) == 0 {
			continue
		}
		out = append(out, strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")...)
	}
	return out, nil
}

// argumentKeys returns the result keys for an argument: the dest when set,
// else every declared flag.
func argumentKeys(a *Argument) []string {
	if a.dest != "" {
		return []string{a.dest}
	}
	return a.flags
}

func (r *resolver) validateDeclarations() error {
	for _, list := range [][]*Argument{r.positional, r.optional} {
		for _, a := range list {
			if a.action&(StoreConst|AppendConst) != 0 && a.constVal == "" {
				return typeErrorf("missing 1 required positional argument: 'const'")
			}
		}
	}
	return nil
}

func (r *resolver) createResult() error {
	for _, list := range [][]*Argument{r.positional, r.optional} {
		for _, a := range list {
			for _, key := range argumentKeys(a) {
				if _, ok := r.result[key]; ok {
					return argumentErrorf("argument %s: conflicting option string: %s", key, key)
				}
				r.result[key] = &resultEntry{Action: a.action}
			}
		}
	}
	return nil
}

// negativeOptionsPresent reports whether '-' is a prefix character and some
// declared optional flag is itself a negative number. When false, tokens
// that look like negative numbers are treated as positional values.
func (r *resolver) negativeOptionsPresent() bool {
	if !strings.Contains(r.parser.prefixChars, "-") {
		return false
	}
	for _, a := range r.optional {
		for _, flag := range a.flags {
			if isNegativeNumber(flag) {
				return true
			}
		}
	}
	return false
}

func (r *resolver) findOptionalByFlag(key string) *Argument {
	for _, a := range r.optional {
		for _, flag := range a.flags {
			if flag == key {
				return a
			}
		}
	}
	return nil
}

func (r *resolver) findOptionalByDestOrFlag(key string) *Argument {
	for _, a := range r.optional {
		if a.dest != "" && a.dest == key {
			return a
		}
		for _, flag := range a.flags {
			if flag == key {
				return a
			}
		}
	}
	return nil
}

// expandAbbreviations rewrites option-shaped tokens that are not exact
// matches: unambiguous prefixes resolve to their full flag, and short-flag
// bundles split into separate tokens.
func (r *resolver) expandAbbreviations(tokens []string) ([]string, error) {
	pc := r.parser.prefixChars
	out := make([]string, 0, len(tokens))
	for _, arg := range tokens {
		_, exact := r.result[arg]
		if arg == "" || exact || !isOptionToken(arg, pc) ||
			(!r.haveNegativeOptions && isNegativeNumber(arg)) {
			out = append(out, arg)
			continue
		}
		if !r.parser.allowAbbrev {
			out = r.separateBundle(out, arg, flagName(arg))
			continue
		}
		flagAdded := false
		var keys []string
		var candidates []string
		for _, opt := range r.optional {
			for _, flag := range opt.flags {
				if strings.HasPrefix(flag, arg) {
					flagAdded = true
					keys = append(keys, flag)
					candidates = append(candidates, flag)
					break
				}
				if len(flag) == 2 && strings.HasPrefix(arg, flag) {
					keys = append(keys, arg)
					candidates = append(candidates, flag)
					break
				}
			}
		}
		if len(keys) > 1 {
			return nil, parseErrorf("ambiguous option: '%s' could match %s",
				arg, strings.Join(candidates, ", "))
		}
		if flagAdded {
			out = append(out, keys[0])
			continue
		}
		base := arg
		if len(keys) > 0 {
			base = keys[0]
		}
		out = r.separateBundle(out, arg, flagName(base))
	}
	return out, nil
}

// separateBundle splits a single-prefix token into bundled short flags. A
// matched flag that takes values consumes the remainder of the body as its
// attached value; an unmatched character folds the remainder into the last
// matched flag, or leaves the token unchanged when nothing matched.
func (r *resolver) separateBundle(out []string, arg string, name string) []string {
	if len(name)+1 != len(arg) {
		return append(out, arg)
	}
	if split := splitEqual(arg); len(split) == 2 && r.findOptionalByFlag(split[0]) != nil {
		return append(out, arg)
	}
	var flags []string
	for i := 0; i < len(name); i++ {
		if name[i] == '=' {
			if len(flags) == 0 {
				flags = append(flags, arg)
			} else {
				flags[len(flags)-1] += name[i:]
			}
			break
		}
		var matched *Argument
		for _, opt := range r.optional {
			for _, flag := range opt.flags {
				if len(flag) == 2 && flag[1] == name[i] {
					flags = append(flags, flag)
					matched = opt
					break
				}
			}
			if matched != nil {
				break
			}
		}
		if len(flags) == i {
			// character not matched by any short flag
			if len(flags) == 0 {
				flags = append(flags, arg)
			} else {
				rest := name[i:]
				if !strings.HasPrefix(rest, "=") {
					flags[len(flags)-1] += "="
				}
				flags[len(flags)-1] += rest
			}
			break
		}
		if matched.action.takesValues() {
			rest := name[i+1:]
			if !strings.HasPrefix(rest, "=") {
				flags[len(flags)-1] += "="
			}
			flags[len(flags)-1] += rest
			break
		}
	}
	return append(out, flags...)
}

func (r *resolver) mainPass(tokens []string) error {
	p := r.parser
	for i := 0; i < len(tokens); i++ {
		arg := tokens[i]
		if p.addHelp && containsString(p.helpArgument.flags, arg) {
			p.PrintHelp(p.out)
			exitFn(0)
			return errExitRequested
		}
		split := splitEqual(arg)
		if len(split) == 2 {
			arg = split[0]
		}
		opt := r.findOptionalByFlag(arg)
		if opt == nil {
			if r.haveNegativeOptions && isNegativeNumber(arg) {
				r.unrecognized = append(r.unrecognized, arg)
				continue
			}
			if r.group != nil && !r.dispatched && r.collectedPositionals() >= r.minBeforeGroup() {
				if child := r.group.childByName(tokens[i]); child != nil {
					return r.dispatch(child, tokens[i+1:])
				}
			}
			i = r.collectPositionalRun(tokens, i)
			continue
		}
		switch opt.action {
		case Store, Append, Extend:
			if opt.action == Store {
				// later specifications overwrite earlier ones
				for _, key := range argumentKeys(opt) {
					r.result[key].Values = nil
				}
			}
			if len(split) == 2 {
				if opt.arity == arityExact && opt.numArgs > 1 {
					return parseErrorf("argument %s: expected %s arguments", arg, opt.arityString())
				}
				if split[1] == "" {
					return parseErrorf("argument %s: expected one argument", arg)
				}
				if err := r.storeValue(opt, split[1]); err != nil {
					return err
				}
			} else {
				next, err := r.consumeValues(tokens, i, opt, arg)
				if err != nil {
					return err
				}
				i = next
			}
		case StoreConst, StoreTrue, StoreFalse:
			if len(split) == 2 {
				return parseErrorf("argument %s: ignored explicit argument '%s'", arg, split[1])
			}
			r.storeConst(opt)
			if opt.action == StoreTrue && opt.callback != nil {
				opt.callback()
			}
		case AppendConst:
			if len(split) == 2 {
				return parseErrorf("argument %s: ignored explicit argument '%s'", arg, split[1])
			}
			if err := r.appendConst(opt); err != nil {
				return err
			}
		case Count:
			if len(split) == 2 {
				return parseErrorf("argument %s: ignored explicit argument '%s'", arg, split[1])
			}
			r.storeCount(opt)
		case Help:
			if len(split) == 2 {
				return parseErrorf("argument %s: ignored explicit argument '%s'", arg, split[1])
			}
			p.PrintHelp(p.out)
			exitFn(0)
			return errExitRequested
		case Version:
			if len(split) == 2 {
				return parseErrorf("argument %s: ignored explicit argument '%s'", arg, split[1])
			}
			if opt.versionText == "" {
				return attributeErrorf("'ArgumentParser' object has no attribute 'version'")
			}
			fmt.Fprintln(p.out, opt.versionText)
			exitFn(0)
			return errExitRequested
		default:
			return parseErrorf("action not supported")
		}
	}
	return nil
}

// dispatch hands the remaining tokens to the chosen child parser and merges
// its namespace into this parse's result.
func (r *resolver) dispatch(child *ArgumentParser, rest []string) error {
	r.dispatched = true
	ns, err := child.parseKnownArgs(rest)
	if err != nil {
		return err
	}
	if r.group.dest != "" {
		r.result[r.group.dest] = &resultEntry{Action: Store, Values: []string{child.name}}
	}
	for key, entry := range ns.entries {
		r.result[key] = entry
	}
	return nil
}

// collectedPositionals counts the positional tokens accumulated so far.
func (r *resolver) collectedPositionals() int {
	n := 0
	for _, g := range r.positionalGroups {
		n += len(g)
	}
	return n
}

// minBeforeGroup sums the minimum token demand of the positional slots ahead
// of the sub-parser position.
func (r *resolver) minBeforeGroup() int {
	min := 0
	for i := 0; i < r.groupPos && i < len(r.positional); i++ {
		min += minimumDemand(r.positional[i])
	}
	return min
}

func minimumDemand(a *Argument) int {
	if !a.action.takesValues() {
		return 0
	}
	switch a.arity {
	case arityImplicit, arityOneOrMore:
		return 1
	case arityExact:
		return a.numArgs
	}
	return 0
}

// collectPositionalRun accumulates the token at i and every following
// non-option token into one group resolved by the partitioning pass. The run
// stops early at a token naming a sub-command once the slots ahead of the
// group can be satisfied, so dispatch gets its turn.
func (r *resolver) collectPositionalRun(tokens []string, i int) int {
	pc := r.parser.prefixChars
	collected := r.collectedPositionals()
	values := []string{tokens[i]}
	j := i + 1
	for ; j < len(tokens); j++ {
		next := tokens[j]
		if isOptionToken(next, pc) && (r.haveNegativeOptions || !isNegativeNumber(next)) {
			break
		}
		if r.group != nil && !r.dispatched && r.group.childByName(next) != nil &&
			collected+len(values) >= r.minBeforeGroup() {
			break
		}
		values = append(values, next)
	}
	r.positionalGroups = append(r.positionalGroups, values)
	return j - 1
}

// consumeValues reads follower tokens for a value-taking option starting
// after index i, returning the index of the last token consumed.
func (r *resolver) consumeValues(tokens []string, i int, opt *Argument, arg string) (int, error) {
	pc := r.parser.prefixChars
	n := 0
	for {
		i++
		if i == len(tokens) {
			if n == 0 {
				switch opt.arity {
				case arityImplicit:
					return i, parseErrorf("argument %s: expected one argument", arg)
				case arityOptional:
					if err := r.storeValue(opt, opt.constVal); err != nil {
						return i, err
					}
				case arityZeroOrMore:
					// zero values accepted
				case arityOneOrMore:
					return i, parseErrorf("argument %s: expected at least one argument", arg)
				default:
					return i, parseErrorf("argument %s: expected %s arguments", arg, opt.arityString())
				}
			} else if opt.arity == arityExact && opt.numArgs != 0 && n < opt.numArgs {
				return i, parseErrorf("argument %s: expected %s arguments", arg, opt.arityString())
			}
			return i - 1, nil
		}
		next := tokens[i]
		if !isOptionToken(next, pc) || (!r.haveNegativeOptions && isNegativeNumber(next)) {
			if err := r.storeValue(opt, next); err != nil {
				return i, err
			}
			n++
		} else if n == 0 {
			i--
			switch opt.arity {
			case arityImplicit:
				return i, parseErrorf("argument %s: expected one argument", arg)
			case arityOptional:
				return i, r.storeValue(opt, opt.constVal)
			case arityZeroOrMore:
				return i, nil
			case arityOneOrMore:
				return i, parseErrorf("argument %s: expected at least one argument", arg)
			default:
				return i, parseErrorf("argument %s: expected %s arguments", arg, opt.arityString())
			}
		} else {
			if opt.arity == arityExact && opt.numArgs != 0 && n < opt.numArgs {
				return i, parseErrorf("argument %s: expected %s arguments", arg, opt.arityString())
			}
			return i - 1, nil
		}
		if opt.arity == arityImplicit || opt.arity == arityOptional ||
			(opt.arity == arityExact && opt.numArgs != 0 && n == opt.numArgs) {
			return i, nil
		}
	}
}

func (r *resolver) validateValue(a *Argument, value string) error {
	if len(a.choices) == 0 {
		return nil
	}
	str := removeQuotes(value)
	if !containsString(a.choices, str) {
		return parseErrorf("argument %s: invalid choice: '%s' (choose from %s)",
			a.flags[0], str, joinQuoted(a.choices, ", ", "'"))
	}
	return nil
}

func (r *resolver) storeValue(a *Argument, value string) error {
	if err := r.validateValue(a, value); err != nil {
		return err
	}
	for _, key := range argumentKeys(a) {
		entry := r.result[key]
		entry.Values = append(entry.Values, value)
	}
	return nil
}

func (r *resolver) defaultValueFor(a *Argument) string {
	if a.defVal != "" {
		return a.defVal
	}
	return r.parser.argumentDefault
}

func (r *resolver) storeDefault(a *Argument) {
	if a.action != Store {
		return
	}
	for _, key := range argumentKeys(a) {
		entry := r.result[key]
		if len(entry.Values) == 0 {
			entry.Values = append(entry.Values, r.defaultValueFor(a))
		}
	}
}

func (r *resolver) storeConst(a *Argument) {
	for _, key := range argumentKeys(a) {
		entry := r.result[key]
		if len(entry.Values) == 0 {
			entry.Values = append(entry.Values, a.constVal)
		}
	}
}

func (r *resolver) appendConst(a *Argument) error {
	if a.defVal != "" {
		return parseErrorf("argument %s: ignored default value '%s'", a.flags[0], a.defVal)
	}
	for _, key := range argumentKeys(a) {
		entry := r.result[key]
		entry.Values = append(entry.Values, a.constVal)
	}
	return nil
}

func (r *resolver) storeCount(a *Argument) {
	for _, key := range argumentKeys(a) {
		entry := r.result[key]
		entry.Values = append(entry.Values, "")
	}
}

// positionalStored satisfies const, flag and count positionals in place.
func (r *resolver) positionalStored(a *Argument) (bool, error) {
	switch {
	case a.action&(StoreConst|StoreTrue|StoreFalse) != 0:
		r.storeConst(a)
		return true, nil
	case a.action == AppendConst:
		return true, r.appendConst(a)
	case a.action == Count:
		r.storeCount(a)
		return true, nil
	}
	return false, nil
}

// matchPartial assigns one accumulated group of positional tokens to the
// longest window of remaining slots whose summed minimum demand fits.
func (r *resolver) matchPartial(args []string) error {
	if r.pos >= len(r.positional) {
		r.unrecognized = append(r.unrecognized, args...)
		return nil
	}
	finish := r.pos
	minArgs := 0
	oneArgs := 0
	moreArgs := false
	for ; finish < len(r.positional); finish++ {
		a := r.positional[finish]
		if !a.action.takesValues() {
			continue
		}
		minAmount := 0
		switch a.arity {
		case arityImplicit:
			minAmount++
		case arityOneOrMore:
			minAmount++
			moreArgs = true
		case arityOptional:
			oneArgs++
		case arityZeroOrMore:
			moreArgs = true
		default:
			minAmount += a.numArgs
		}
		if minArgs+minAmount > len(args) {
			break
		}
		minArgs += minAmount
	}

	switch {
	case finish == r.pos:
		r.unrecognized = append(r.unrecognized, args...)

	case minArgs == len(args):
		// every slot consumes exactly its minimum
		i := 0
		for ; r.pos < finish; r.pos++ {
			a := r.positional[r.pos]
			if stored, err := r.positionalStored(a); err != nil {
				return err
			} else if stored {
				continue
			}
			switch a.arity {
			case arityImplicit, arityOneOrMore:
				if err := r.storeValue(a, args[i]); err != nil {
					return err
				}
				i++
			case arityOptional, arityZeroOrMore:
				r.storeDefault(a)
			default:
				for n := 0; n < a.numArgs; n++ {
					if err := r.storeValue(a, args[i]); err != nil {
						return err
					}
					i++
				}
			}
		}

	case moreArgs:
		// the first greedy slot absorbs the surplus
		overArgs := len(args) - minArgs
		i := 0
		for ; r.pos < finish; r.pos++ {
			a := r.positional[r.pos]
			if stored, err := r.positionalStored(a); err != nil {
				return err
			} else if stored {
				continue
			}
			switch a.arity {
			case arityImplicit:
				if err := r.storeValue(a, args[i]); err != nil {
					return err
				}
				i++
			case arityOneOrMore:
				if err := r.storeValue(a, args[i]); err != nil {
					return err
				}
				i++
				for overArgs > 0 {
					if err := r.storeValue(a, args[i]); err != nil {
						return err
					}
					i++
					overArgs--
				}
			case arityOptional:
				r.storeDefault(a)
			case arityZeroOrMore:
				if overArgs > 0 {
					for overArgs > 0 {
						if err := r.storeValue(a, args[i]); err != nil {
							return err
						}
						i++
						overArgs--
					}
				} else {
					r.storeDefault(a)
				}
			default:
				for n := 0; n < a.numArgs; n++ {
					if err := r.storeValue(a, args[i]); err != nil {
						return err
					}
					i++
				}
			}
		}

	case minArgs+oneArgs >= len(args):
		// distribute the surplus into "?" slots left to right
		overArgs := minArgs + oneArgs - len(args)
		i := 0
		for ; r.pos < finish; r.pos++ {
			a := r.positional[r.pos]
			if stored, err := r.positionalStored(a); err != nil {
				return err
			} else if stored {
				continue
			}
			switch a.arity {
			case arityImplicit:
				if err := r.storeValue(a, args[i]); err != nil {
					return err
				}
				i++
			case arityOptional:
				if overArgs < oneArgs {
					if err := r.storeValue(a, args[i]); err != nil {
						return err
					}
					i++
					overArgs++
				} else {
					r.storeDefault(a)
				}
			default:
				for n := 0; n < a.numArgs; n++ {
					if err := r.storeValue(a, args[i]); err != nil {
						return err
					}
					i++
				}
			}
		}

	default:
		// consume minimums from the left; the rest is unrecognized
		i := 0
		for ; r.pos < finish; r.pos++ {
			a := r.positional[r.pos]
			if stored, err := r.positionalStored(a); err != nil {
				return err
			} else if stored {
				continue
			}
			if a.arity == arityImplicit {
				if err := r.storeValue(a, args[i]); err != nil {
					return err
				}
				i++
				continue
			}
			numArgs := a.numArgs
			if a.arity == arityOptional {
				numArgs = 1
			}
			for n := 0; n < numArgs; n++ {
				if err := r.storeValue(a, args[i]); err != nil {
					return err
				}
				i++
			}
		}
		r.unrecognized = append(r.unrecognized, args[i:]...)
	}
	return nil
}

func (r *resolver) finalize() error {
	var requiredArgs []string
	for _, a := range r.optional {
		if !a.required {
			continue
		}
		for _, key := range argumentKeys(a) {
			if len(r.result[key].Values) == 0 {
				requiredArgs = append(requiredArgs, strings.Join(a.flags, "/"))
				break
			}
		}
	}
	if r.group != nil && r.group.required && !r.dispatched {
		name := r.group.dest
		if name == "" {
			name = r.group.flagsToString()
		}
		requiredArgs = append(requiredArgs, name)
	}

	if len(requiredArgs) > 0 || r.pos < len(r.positional) {
		var parts []string
		for ; r.pos < len(r.positional); r.pos++ {
			a := r.positional[r.pos]
			if len(parts) == 0 {
				if stored, err := r.positionalStored(a); err != nil {
					return err
				} else if stored {
					continue
				}
				if a.arity == arityOptional || a.arity == arityZeroOrMore {
					r.storeDefault(a)
					continue
				}
			}
			parts = append(parts, a.flags[0])
		}
		parts = append(parts, requiredArgs...)
		if len(parts) > 0 {
			return parseErrorf("the following arguments are required: %s", strings.Join(parts, ", "))
		}
	}

	if len(r.unrecognized) > 0 {
		return parseErrorf("unrecognized arguments: %s", strings.Join(r.unrecognized, " "))
	}

	// materialize defaults for untouched entries; count absences stay empty
	for _, key := range sortedKeys(r.result) {
		entry := r.result[key]
		if len(entry.Values) != 0 || entry.Action == Count {
			continue
		}
		a := r.findOptionalByDestOrFlag(key)
		if a == nil {
			continue
		}
		if value := r.defaultValueFor(a); value != "" {
			entry.Values = append(entry.Values, value)
		}
	}
	return nil
}
