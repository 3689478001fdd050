package placeholder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/minio/simdjson-go"
)

// useSIMD selects the simdjson parser; it needs AVX2/CLMUL on amd64.
var useSIMD = simdjson.SupportedCPU()

// decodeCollection parses body into generic objects. Integers decode to int64,
// other numbers to float64, so mappers can tell the two kinds apart.
func decodeCollection(body []byte) ([]map[string]any, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("json body is empty")
	}
	if trimmed[0] != '[' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("invalid json body")
		}
		return nil, fmt.Errorf("%w: top-level value is not an array", ErrNotCollection)
	}

	var (
		value any
		err   error
	)
	if useSIMD {
		value, err = decodeSIMD(trimmed)
	} else {
		value, err = decodeStd(trimmed)
	}
	if err != nil {
		return nil, err
	}

	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is not an array", ErrNotCollection)
	}
	out := make([]map[string]any, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrNotCollection, i)
		}
		out = append(out, obj)
	}
	return out, nil
}

func decodeSIMD(data []byte) (any, error) {
	parsed, err := simdjson.Parse(data, nil)
	if err != nil {
		return nil, err
	}
	it := parsed.Iter()
	if it.Advance() != simdjson.TypeRoot {
		return nil, fmt.Errorf("json root not found")
	}
	typ, root, err := it.Root(nil)
	if err != nil {
		return nil, err
	}
	return valueFromIter(typ, root)
}

func valueFromIter(typ simdjson.Type, it *simdjson.Iter) (any, error) {
	switch typ {
	case simdjson.TypeNull:
		return nil, nil
	case simdjson.TypeBool:
		return it.Bool()
	case simdjson.TypeInt:
		return it.Int()
	case simdjson.TypeUint:
		v, err := it.Uint()
		if err != nil {
			return nil, err
		}
		if v > math.MaxInt64 {
			return float64(v), nil
		}
		return int64(v), nil
	case simdjson.TypeFloat:
		return it.Float()
	case simdjson.TypeString:
		b, err := it.StringBytes()
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case simdjson.TypeObject:
		obj, err := it.Object(nil)
		if err != nil {
			return nil, err
		}
		out := make(map[string]any)
		var parseErr error
		err = obj.ForEach(func(key []byte, elem simdjson.Iter) {
			if parseErr != nil {
				return
			}
			val, err := valueFromIter(elem.Type(), &elem)
			if err != nil {
				parseErr = err
				return
			}
			out[string(key)] = val
		}, nil)
		if err != nil {
			return nil, err
		}
		if parseErr != nil {
			return nil, parseErr
		}
		return out, nil
	case simdjson.TypeArray:
		arr, err := it.Array(nil)
		if err != nil {
			return nil, err
		}
		out := make([]any, 0)
		iter := arr.Iter()
		for {
			t := iter.Advance()
			if t == simdjson.TypeNone {
				break
			}
			elem := iter
			val, err := valueFromIter(t, &elem)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported json type: %v", typ)
	}
}

func decodeStd(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid character after top-level value")
	}
	return normalizeNumbers(v)
}

// normalizeNumbers rewrites json.Number leaves to int64 or float64.
func normalizeNumbers(v any) (any, error) {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid json number: %s", val)
		}
		return f, nil
	case map[string]any:
		for k, elem := range val {
			n, err := normalizeNumbers(elem)
			if err != nil {
				return nil, err
			}
			val[k] = n
		}
		return val, nil
	case []any:
		for i, elem := range val {
			n, err := normalizeNumbers(elem)
			if err != nil {
				return nil, err
			}
			val[i] = n
		}
		return val, nil
	default:
		return v, nil
	}
}
