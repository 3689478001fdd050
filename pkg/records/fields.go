package records

import (
	"encoding/json"
	"math"
)

// fieldReader pulls typed values out of one JSON object and remembers the
// first failure, so mappers read every key without an error check per line.
type fieldReader struct {
	record string
	obj    map[string]any
	err    error
}

func newFieldReader(record string, obj map[string]any) *fieldReader {
	return &fieldReader{record: record, obj: obj}
}

func (r *fieldReader) lookup(key string) (any, bool) {
	if r.err != nil {
		return nil, false
	}
	v, ok := r.obj[key]
	if !ok {
		r.err = missingKey(r.record, key)
		return nil, false
	}
	return v, true
}

func (r *fieldReader) str(key string) string {
	v, ok := r.lookup(key)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.err = wrongKind(r.record, key, "string", v)
		return ""
	}
	return s
}

func (r *fieldReader) integer(key string) int {
	v, ok := r.lookup(key)
	if !ok {
		return 0
	}
	n, ok := asInt(v)
	if !ok {
		r.err = wrongKind(r.record, key, "integer", v)
		return 0
	}
	return n
}

func (r *fieldReader) object(key string) map[string]any {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		r.err = wrongKind(r.record, key, "object", v)
		return nil
	}
	return m
}

// asInt accepts the integer encodings produced by the transport decoder and
// by plain encoding/json (float64, json.Number) as long as the value is integral.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float64:
		if math.Trunc(n) != n || n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return asInt(i)
	default:
		return 0, false
	}
}
