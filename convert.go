package argparse

import (
	"fmt"
	"strconv"
)

// converters maps a target type name to its string converter. The registry
// covers the scalar types a Namespace value can coerce to; hosts register
// further types with RegisterConverter.
var converters = map[string]func(string) (any, error){}

// RegisterConverter installs a string-to-T conversion used by Get and
// GetSlice.
func RegisterConverter[T any](zero T, converter func(string) (T, error)) {
	converters[fmt.Sprintf("%T", zero)] = func(s string) (any, error) {
		return converter(s)
	}
}

func init() {
	// string
	RegisterConverter("", func(s string) (string, error) {
		return removeQuotes(s), nil
	})
	// bool
	RegisterConverter(false, func(s string) (bool, error) {
		return strconv.ParseBool(s)
	})
	// int
	RegisterConverter(int(0), func(s string) (int, error) {
		return strconv.Atoi(s)
	})
	// int32
	RegisterConverter(int32(0), func(s string) (int32, error) {
		i, err := strconv.ParseInt(s, 10, 32)
		return int32(i), err
	})
	// int64
	RegisterConverter(int64(0), func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
	// uint
	RegisterConverter(uint(0), func(s string) (uint, error) {
		i, err := strconv.ParseUint(s, 10, 64)
		return uint(i), err
	})
	// uint32
	RegisterConverter(uint32(0), func(s string) (uint32, error) {
		i, err := strconv.ParseUint(s, 10, 32)
		return uint32(i), err
	})
	// uint64
	RegisterConverter(uint64(0), func(s string) (uint64, error) {
		return strconv.ParseUint(s, 10, 64)
	})
	// float32
	RegisterConverter(float32(0), func(s string) (float32, error) {
		f, err := strconv.ParseFloat(s, 32)
		return float32(f), err
	})
	// float64
	RegisterConverter(float64(0), func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

func convertTo[T any](value string) (T, error) {
	var zero T
	fn, ok := converters[fmt.Sprintf("%T", zero)]
	if !ok {
		return zero, typeErrorf("no converter registered for type %T", zero)
	}
	v, err := fn(value)
	if err != nil {
		return zero, typeErrorf("can't convert value '%s'", value)
	}
	return v.(T), nil
}

func isIntegral[T any](zero T) bool {
	switch any(zero).(type) {
	case int, int32, int64, uint, uint32, uint64:
		return true
	}
	return false
}

// Get converts the single value stored under key to T. Count arguments
// convert to their count for integral targets; empty entries yield the zero
// value; multi-value entries are a type error.
func Get[T any](n *Namespace, key string) (T, error) {
	var zero T
	entry, err := n.data(key)
	if err != nil {
		return zero, err
	}
	if entry.Action == Count {
		if !isIntegral(zero) {
			return zero, typeErrorf("invalid get type for argument '%s'", key)
		}
		return convertTo[T](strconv.Itoa(len(entry.Values)))
	}
	if len(entry.Values) == 0 {
		return zero, nil
	}
	if len(entry.Values) != 1 {
		return zero, typeErrorf("trying to get data from array argument '%s'", key)
	}
	if entry.Values[0] == "" {
		return zero, nil
	}
	return convertTo[T](entry.Values[0])
}

// GetSlice converts every value stored under key to T.
func GetSlice[T any](n *Namespace, key string) ([]T, error) {
	entry, err := n.data(key)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(entry.Values))
	for _, v := range entry.Values {
		converted, err := convertTo[T](v)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}
