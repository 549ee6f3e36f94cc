package argparse

import (
	"sort"
	"strconv"
	"strings"
)

// flagName strips the leading run of the repeated first character from s.
// "--verbose" becomes "verbose", "-v" becomes "v".
func flagName(s string) string {
	if s == "" {
		return s
	}
	prefix := s[0]
	i := 0
	for i < len(s) && s[i] == prefix {
		i++
	}
	return s[i:]
}

// isOptionToken reports whether s begins with one of the prefix characters.
func isOptionToken(s string, prefixChars string) bool {
	return s != "" && strings.IndexByte(prefixChars, s[0]) >= 0
}

// splitEqual splits s on the first '=' into [before, after], or returns [s]
// when no '=' is present.
func splitEqual(s string) []string {
	if i := strings.IndexByte(s, '='); i >= 0 {
		return []string{s[:i], s[i+1:]}
	}
	return []string{s}
}

// isNegativeNumber reports whether s parses entirely as a decimal number with
// a value below zero.
func isNegativeNumber(s string) bool {
	if strings.Trim(s, "0123456789.eE+-") != "" {
		return false
	}
	v, err := strconv.ParseFloat(s, 64)
	return err == nil && v < 0
}

// removeQuotes strips one pair of matching single or double quotes.
func removeQuotes(s string) string {
	if len(s) > 1 && s[0] == s[len(s)-1] && (s[0] == '\'' || s[0] == '"') {
		return s[1 : len(s)-1]
	}
	return s
}

// baseName returns the path component after the last slash or backslash.
func baseName(s string) string {
	if i := strings.LastIndexAny(s, `/\`); i >= 0 {
		return s[i+1:]
	}
	return s
}

// joinQuoted joins values with sep, wrapping each element in quote.
func joinQuoted(values []string, sep string, quote string) string {
	var b strings.Builder
	for _, v := range values {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(quote)
		b.WriteString(v)
		b.WriteString(quote)
	}
	return b.String()
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
