package hashing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// encode turns data into the text that is actually hashed.
//
// Strings and byte slices are used as-is, including named types such as
// `type secret string`.  Any other value is encoded to
// JSON and then re-encoded through a generic decode, so object keys are
// always sorted and a struct hashes like the equivalent map.  Numbers keep
// their exact decimal form.
func encode(data any) (string, error) {
	switch v := data.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	if rv := reflect.ValueOf(data); rv.IsValid() {
		switch {
		case rv.Kind() == reflect.String:
			return rv.String(), nil
		case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8:
			return string(rv.Bytes()), nil
		}
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnserializable, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnserializable, err)
	}

	canon, err := json.Marshal(generic)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnserializable, err)
	}
	return string(canon), nil
}
