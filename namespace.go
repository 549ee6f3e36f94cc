package argparse

import (
	"strconv"
	"strings"

	"github.com/jinzhu/copier"
)

// clone deep-copies a value so the Namespace owns its data independently of
// the resolver's working state.
func clone[T any](v T) T {
	var n T
	copier.CopyWithOption(&n, v, copier.Option{DeepCopy: true})
	return n
}

// Namespace is the result of one parse: a mapping from destination key to the
// action tag and the ordered raw string values stored under it. Lookup first
// tries the exact key, then compares flag bodies with prefix characters
// stripped.
type Namespace struct {
	entries     map[string]*resultEntry
	prefixChars string
}

func newNamespace(result map[string]*resultEntry, prefixChars string) *Namespace {
	return &Namespace{entries: clone(result), prefixChars: prefixChars}
}

func (n *Namespace) data(key string) (*resultEntry, error) {
	if entry, ok := n.entries[key]; ok {
		return entry, nil
	}
	for _, k := range sortedKeys(n.entries) {
		if isOptionToken(k, n.prefixChars) && flagName(k) == key {
			return n.entries[k], nil
		}
	}
	return nil, attributeErrorf("'Namespace' object has no attribute '%s'", key)
}

// Exists reports whether key resolves to a stored entry.
func (n *Namespace) Exists(key string) bool {
	_, err := n.data(key)
	return err == nil
}

// Get returns the action tag and raw values stored under key.
func (n *Namespace) Get(key string) (Action, []string, error) {
	entry, err := n.data(key)
	if err != nil {
		return 0, nil, err
	}
	values := make([]string, len(entry.Values))
	copy(values, entry.Values)
	return entry.Action, values, nil
}

// Strings returns the raw values stored under key.
func (n *Namespace) Strings(key string) ([]string, error) {
	_, values, err := n.Get(key)
	return values, err
}

// CountOf returns the number of times a count argument was specified.
func (n *Namespace) CountOf(key string) (int, error) {
	entry, err := n.data(key)
	if err != nil {
		return 0, err
	}
	if entry.Action != Count {
		return 0, typeErrorf("invalid get type for argument '%s'", key)
	}
	return len(entry.Values), nil
}

// ToString renders the entry for key: store_const as its single value,
// store_true/store_false as "true" or "false", counts as a decimal, sequence
// actions as a bracketed list with empty strings rendered as None.
func (n *Namespace) ToString(key string) (string, error) {
	entry, err := n.data(key)
	if err != nil {
		return "", err
	}
	switch entry.Action {
	case StoreConst:
		if len(entry.Values) != 1 {
			return "", typeErrorf("trying to get data from array argument '%s'", key)
		}
		return entry.Values[0], nil
	case StoreTrue, StoreFalse:
		if len(entry.Values) != 1 {
			return "", typeErrorf("trying to get data from array argument '%s'", key)
		}
		if entry.Values[0] == "0" {
			return "false", nil
		}
		return "true", nil
	case Count:
		return strconv.Itoa(len(entry.Values)), nil
	case Store, Append, AppendConst, Extend:
		parts := make([]string, 0, len(entry.Values))
		for _, v := range entry.Values {
			if v == "" {
				v = "None"
			}
			parts = append(parts, v)
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	}
	return "", valueErrorf("action not supported")
}
