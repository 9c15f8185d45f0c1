package operation

import (
	"encoding/json"
	"maps"
	"strconv"
	"strings"
)

// Params is the raw, loosely-typed parameter mapping of one request: URL
// parameters, query values and body fields merged into a single map.
// Params is never mutated after decoding; Without returns a copy.
type Params map[string]any

// Has reports whether key is present and non-empty. A value counts as empty
// when it is nil, "", "0", a zero number, false, or an empty list.
func (p Params) Has(key string) bool {
	v, ok := p[key]
	if !ok || v == nil {
		return false
	}
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		return s != "" && s != "0"
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	case float64:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	case bool:
		return x
	case []any:
		return len(x) > 0
	case []string:
		return len(x) > 0
	default:
		return true
	}
}

// String returns the value for key rendered as a trimmed string.
func (p Params) String(key string) string {
	switch x := p[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// Text is String for keys that pass Has, and "" otherwise, so a lone "0"
// reads as missing.
func (p Params) Text(key string) string {
	if !p.Has(key) {
		return ""
	}
	return p.String(key)
}

// Int64 returns the value for key as an integer, or 0 when it is absent or
// not a whole number.
func (p Params) Int64(key string) int64 {
	return toInt64(p[key])
}

// Int64s returns the list value for key as integers. Comma-separated strings
// are accepted; entries that are not whole numbers are skipped.
func (p Params) Int64s(key string) []int64 {
	var raw []any
	switch x := p[key].(type) {
	case []any:
		raw = x
	case []string:
		for _, s := range x {
			raw = append(raw, s)
		}
	case string:
		for _, s := range strings.Split(x, ",") {
			raw = append(raw, s)
		}
	default:
		if x != nil {
			raw = []any{x}
		}
	}
	out := make([]int64, 0, len(raw))
	for _, v := range raw {
		if n := toInt64(v); n != 0 {
			out = append(out, n)
		}
	}
	return out
}

// Without returns a copy of p with the given keys removed.
func (p Params) Without(keys ...string) Params {
	out := maps.Clone(p)
	if out == nil {
		out = Params{}
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0
		}
		return n
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return 0
		}
		return n
	case float64:
		if x != float64(int64(x)) {
			return 0
		}
		return int64(x)
	case int:
		return int64(x)
	case int64:
		return x
	default:
		return 0
	}
}
