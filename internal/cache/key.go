package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
)

// keyHashLen is the number of hex digits kept from the digest. 32 hex digits
// retain 128 bits, which keeps collisions negligible for realistic cache
// sizes.
const keyHashLen = 32

// BuildKey derives a deterministic cache key of the form
// "<namespace>:<hexdigest>" from an operation's effective arguments.
//
// Arguments that are not plain data (functions, channels, pointers, struct
// values) are excluded: they stand in for receivers or live handles and are
// not part of the operation's logical identity. When normalize is set, string
// arguments are canonicalized with NormalizeQuery first, so that similar
// queries share one key.
//
// Determinism: the canonical form is JSON with map keys sorted (encoding/json
// sorts map keys) and positional order preserved, hashed with SHA-256.
func BuildKey(namespace string, args []any, kwargs map[string]any, normalize bool) string {
	filtered := make([]any, 0, len(args))
	for _, arg := range args {
		if !isPlainData(arg) {
			continue
		}
		if s, ok := arg.(string); ok && normalize {
			filtered = append(filtered, NormalizeQuery(s))
		} else {
			filtered = append(filtered, arg)
		}
	}

	named := make(map[string]any, len(kwargs))
	for k, v := range kwargs {
		if s, ok := v.(string); ok && normalize {
			named[k] = NormalizeQuery(s)
		} else {
			named[k] = v
		}
	}

	canonical, err := json.Marshal([2]any{filtered, named})
	if err != nil {
		// Unserializable leftovers (shouldn't pass the plain-data filter);
		// fall back to the formatted value so the key is still deterministic.
		canonical = fmt.Appendf(nil, "%#v|%#v", filtered, named)
	}

	sum := sha256.Sum256(canonical)
	return namespace + ":" + hex.EncodeToString(sum[:])[:keyHashLen]
}

// isPlainData reports whether v is a value type that belongs in a cache key:
// nil, booleans, numbers, strings, and slices/maps of plain data.
func isPlainData(v any) bool {
	if v == nil {
		return true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String,
		reflect.Slice, reflect.Array, reflect.Map:
		return true
	default:
		// Func, Chan, Ptr, Struct, Interface: receiver-like or stateful.
		return false
	}
}
