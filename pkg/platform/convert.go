package platform

import "encoding/json"

// ToInt64 converts the numeric types a codec or in-process host may produce
// to int64.
func ToInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		return int64(f), err == nil
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

// ToInt is ToInt64 narrowed to int.
func ToInt(v any) (int, bool) {
	n, ok := ToInt64(v)
	return int(n), ok
}
