package records

import (
	"errors"
	"fmt"
)

// MappingError reports a required key that is absent or of the wrong kind.
type MappingError struct {
	// Record names the record being built (post, user, address, ...).
	Record string
	// Key is the dotted path from the top-level object, e.g. address.geo.lat.
	Key    string
	Reason string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("map %s: key %q: %s", e.Record, e.Key, e.Reason)
}

func missingKey(record, key string) *MappingError {
	return &MappingError{Record: record, Key: key, Reason: "missing"}
}

func wrongKind(record, key, want string, got any) *MappingError {
	return &MappingError{Record: record, Key: key, Reason: fmt.Sprintf("want %s, got %s", want, kindOf(got))}
}

// nested prefixes a child mapping error key with the parent key.
func nested(record, parent string, err error) error {
	var me *MappingError
	if errors.As(err, &me) {
		return &MappingError{Record: record, Key: parent + "." + me.Key, Reason: me.Reason}
	}
	return err
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64, float64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
