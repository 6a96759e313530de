package partial

import (
	"fmt"
	"reflect"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// Unmarshaler converts the final text of a reply into a value.
type Unmarshaler[T any] func(text string) (T, error)

// DefaultUnmarshal picks how a reply becomes a T: string kinds receive the
// text verbatim, gjson.Result gets the parsed document and everything else is
// decoded as JSON. Code fences are stripped for the latter two.
func DefaultUnmarshal[T any]() Unmarshaler[T] {
	var zero T
	if _, ok := any(zero).(gjson.Result); ok {
		return func(text string) (T, error) {
			body := StripFences(text)
			if !gjson.Valid(body) {
				return zero, fmt.Errorf("reply is not valid JSON")
			}
			return any(gjson.Parse(body)).(T), nil
		}
	}

	typ := reflect.TypeFor[T]()
	if typ.Kind() == reflect.String {
		return func(text string) (T, error) {
			return reflect.ValueOf(text).Convert(typ).Interface().(T), nil
		}
	}

	return func(text string) (T, error) {
		var v T
		if err := json.Unmarshal([]byte(StripFences(text)), &v); err != nil {
			return v, fmt.Errorf("decode reply into %s: %w", typ, err)
		}
		return v, nil
	}
}
