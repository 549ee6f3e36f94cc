package argparse

// Action selects how a matched argument records values in the Namespace.
type Action int

const (
	Store Action = 1 << iota
	StoreConst
	StoreTrue
	StoreFalse
	Append
	AppendConst
	Count
	Help
	Version
	Extend
)

// ParseAction maps an action name to its Action value.
func ParseAction(value string) (Action, error) {
	switch value {
	case "store":
		return Store, nil
	case "store_const":
		return StoreConst, nil
	case "store_true":
		return StoreTrue, nil
	case "store_false":
		return StoreFalse, nil
	case "append":
		return Append, nil
	case "append_const":
		return AppendConst, nil
	case "count":
		return Count, nil
	case "help":
		return Help, nil
	case "version":
		return Version, nil
	case "extend":
		return Extend, nil
	}
	return 0, valueErrorf("unknown action '%s'", value)
}

func (a Action) String() string {
	switch a {
	case Store:
		return "store"
	case StoreConst:
		return "store_const"
	case StoreTrue:
		return "store_true"
	case StoreFalse:
		return "store_false"
	case Append:
		return "append"
	case AppendConst:
		return "append_const"
	case Count:
		return "count"
	case Help:
		return "help"
	case Version:
		return "version"
	case Extend:
		return "extend"
	}
	return "unknown"
}

// takesValues reports whether the action consumes value tokens.
func (a Action) takesValues() bool {
	return a&(Store|Append|Extend) != 0
}
