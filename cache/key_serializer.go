package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// KeySeparator defines the delimiter used between cache key segments. The
// resource name is always the first segment, so keys for different resources
// can never collide.
const KeySeparator = ":"

// KeySerializer builds deterministic cache keys for one resource's entity and
// query reads. Implementations must produce identical keys for logically
// identical parameter sets regardless of map insertion order.
type KeySerializer interface {
	EntityKey(resource, id string) string
	QueryKey(resource, operation string, params map[string]any) string
}

// defaultKeySerializer produces keys of the form "{resource}:{id}" and
// "{resource}:{operation}:{sorted params}". Parameter values are serialized
// reflectively with sorted map keys so keys are stable across runs; complex
// values fall back to JSON.
type defaultKeySerializer struct{}

// NewDefaultKeySerializer creates a new instance of the default key serializer.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{}
}

func (s *defaultKeySerializer) EntityKey(resource, id string) string {
	return resource + KeySeparator + id
}

func (s *defaultKeySerializer) QueryKey(resource, operation string, params map[string]any) string {
	if len(params) == 0 {
		return resource + KeySeparator + operation
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+s.serializeValue(params[k]))
	}

	return resource + KeySeparator + operation + KeySeparator + strings.Join(pairs, ",")
}

// serializeValue handles individual parameter serialization based on type.
func (s *defaultKeySerializer) serializeValue(v any) string {
	if v == nil {
		return "nil"
	}

	rv := reflect.ValueOf(v)
	rt := reflect.TypeOf(v)

	switch rt.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return "nil"
		}
		return s.serializeValue(rv.Elem().Interface())

	case reflect.Slice:
		if rv.IsNil() {
			return "slice:nil"
		}
		return s.serializeList(rv)

	case reflect.Array:
		return s.serializeList(rv)

	case reflect.Map:
		if rv.IsNil() {
			return "map:nil"
		}
		return s.serializeMap(rv)
	}

	if s.isBasicType(rt.Kind()) {
		return fmt.Sprintf("%v", v)
	}

	return s.jsonFallback(v)
}

// serializeList handles slice and array serialization recursively.
func (s *defaultKeySerializer) serializeList(rv reflect.Value) string {
	length := rv.Len()
	parts := make([]string, length)

	for i := 0; i < length; i++ {
		parts[i] = s.serializeValue(rv.Index(i).Interface())
	}

	return fmt.Sprintf("[%s]", strings.Join(parts, ","))
}

// serializeMap handles map serialization with sorted keys for determinism.
func (s *defaultKeySerializer) serializeMap(rv reflect.Value) string {
	keys := rv.MapKeys()

	type pair struct {
		key   string
		value reflect.Value
	}
	pairs := make([]pair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, pair{key: s.serializeValue(k.Interface()), value: rv.MapIndex(k)})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%s", p.key, s.serializeValue(p.value.Interface())))
	}

	return fmt.Sprintf("{%s}", strings.Join(parts, ","))
}

// isBasicType checks if a kind represents a basic Go type.
func (s *defaultKeySerializer) isBasicType(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

// jsonFallback provides JSON serialization as a last resort.
func (s *defaultKeySerializer) jsonFallback(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("fallback:%s", reflect.TypeOf(v).String())
	}
	return fmt.Sprintf("json:%s", string(data))
}
