package storage

import (
	"encoding/json"
	"errors"
	"reflect"
)

var errInvalidTarget = errors.New("load target must be a non-nil pointer")

// decode unmarshals data into a new value of dst's element type.
func decode(data []byte, dst any) (reflect.Value, error) {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, errInvalidTarget
	}

	tmp := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(data, tmp.Interface()); err != nil {
		return reflect.Value{}, err
	}
	return tmp, nil
}

func assign(dst any, tmp reflect.Value) {
	reflect.ValueOf(dst).Elem().Set(tmp.Elem())
}
