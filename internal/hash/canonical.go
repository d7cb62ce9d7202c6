package hash

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// maxCanonicalDepth bounds recursion over pathological input so a
// deeply-nested or cyclic-looking value reports an error instead of
// overflowing the stack.
const maxCanonicalDepth = 64

// ErrCanonicalizationOverflow is returned when a value nests deeper than
// maxCanonicalDepth.
var ErrCanonicalizationOverflow = fmt.Errorf("hash: value exceeds maximum canonicalization depth (%d)", maxCanonicalDepth)

// Canonical renders v as total, key-sorted JSON: object keys are sorted
// ascending at every depth, arrays preserve order, and absent/undefined
// fields are omitted. The same semantic value always renders to the same
// bytes regardless of struct field order or map iteration order.
//
// v is first passed through a JSON round-trip so struct tags (including
// `omitempty`) decide what is "absent" exactly the way encoding/json
// already does; the second pass re-serializes the resulting generic
// value with keys sorted at every depth.
func Canonical(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("hash: marshal value: %w", err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", fmt.Errorf("hash: unmarshal value: %w", err)
	}

	var buf strings.Builder
	if err := encodeCanonical(&buf, generic, 0); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func encodeCanonical(buf *strings.Builder, v any, depth int) error {
	if depth > maxCanonicalDepth {
		return ErrCanonicalizationOverflow
	}

	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case bool, float64, json.Number:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("hash: encode primitive: %w", err)
		}
		buf.Write(encoded)
		return nil
	case string:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("hash: encode string: %w", err)
		}
		buf.Write(encoded)
		return nil
	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeCanonical(buf, item, depth+1); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyBytes, err := json.Marshal(k)
			if err != nil {
				return fmt.Errorf("hash: encode key: %w", err)
			}
			buf.Write(keyBytes)
			buf.WriteByte(':')
			if err := encodeCanonical(buf, val[k], depth+1); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	default:
		return fmt.Errorf("hash: unsupported canonical value type %T", v)
	}
}

// OfValue canonicalizes v and returns the SHA-256 digest of the result.
// This is the composition hash(canonical(x)) referenced throughout the
// governance data model: two values are digest-identical iff they are
// canonical-JSON-identical.
func OfValue(v any) (string, error) {
	canonical, err := Canonical(v)
	if err != nil {
		return "", err
	}
	return StringHash(canonical), nil
}
