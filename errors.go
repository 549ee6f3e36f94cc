package argparse

import "fmt"

// ArgumentError reports a declaration conflict surfaced at parse time, such as
// two arguments resolving to the same result key.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string { return "argument error: " + e.Msg }

// ValueError reports a malformed declaration value (unknown action, invalid
// nargs, empty flags, bad choice set).
type ValueError struct {
	Msg string
}

func (e *ValueError) Error() string { return "value error: " + e.Msg }

// TypeError reports a field that is illegal for the current action or kind,
// or a Namespace get with a mismatched target type.
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string { return "type error: " + e.Msg }

// IndexError reports an out-of-range operation, such as an empty flag string.
type IndexError struct {
	Msg string
}

func (e *IndexError) Error() string { return "index error: " + e.Msg }

// AttributeError reports a Namespace lookup of an absent key.
type AttributeError struct {
	Msg string
}

func (e *AttributeError) Error() string { return "attribute error: " + e.Msg }

// ParseError reports a user-input problem: unrecognized arguments, ambiguous
// abbreviations, missing required arguments, invalid choices and the like.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

func argumentErrorf(format string, args ...any) *ArgumentError {
	return &ArgumentError{Msg: fmt.Sprintf(format, args...)}
}

func valueErrorf(format string, args ...any) *ValueError {
	return &ValueError{Msg: fmt.Sprintf(format, args...)}
}

func typeErrorf(format string, args ...any) *TypeError {
	return &TypeError{Msg: fmt.Sprintf(format, args...)}
}

func indexErrorf(format string, args ...any) *IndexError {
	return &IndexError{Msg: fmt.Sprintf(format, args...)}
}

func attributeErrorf(format string, args ...any) *AttributeError {
	return &AttributeError{Msg: fmt.Sprintf(format, args...)}
}

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}
