// Package payload decodes loosely-typed audit payloads and provides safe access into them.
package payload

import (
	"bytes"
	"fmt"

	"github.com/buger/jsonparser"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse decodes a JSON document into ordered values: *Object, []any, string,
// float64, bool or nil. A leading UTF-8 byte order mark is ignored.
func Parse(data []byte) (any, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("failed to parse payload: empty document")
	}
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse payload: %w", err)
	}
	decoded, err := decode(value, dataType)
	if err != nil {
		return nil, fmt.Errorf("failed to parse payload: %w", err)
	}
	return decoded, nil
}

// ParseNode is Parse wrapped in a Node.
func ParseNode(data []byte) (Node, error) {
	v, err := Parse(data)
	if err != nil {
		return Node{}, err
	}
	return Wrap(v), nil
}

func decode(value []byte, dataType jsonparser.ValueType) (any, error) {
	switch dataType {
	case jsonparser.Object:
		obj := NewObject()
		err := jsonparser.ObjectEach(value, func(key []byte, v []byte, vt jsonparser.ValueType, _ int) error {
			k, err := jsonparser.ParseString(key)
			if err != nil {
				return err
			}
			decoded, err := decode(v, vt)
			if err != nil {
				return err
			}
			obj.Set(k, decoded)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return obj, nil

	case jsonparser.Array:
		items := []any{}
		var inner error
		_, err := jsonparser.ArrayEach(value, func(v []byte, vt jsonparser.ValueType, _ int, err error) {
			if inner != nil {
				return
			}
			if err != nil {
				inner = err
				return
			}
			decoded, err := decode(v, vt)
			if err != nil {
				inner = err
				return
			}
			items = append(items, decoded)
		})
		if err != nil {
			return nil, err
		}
		if inner != nil {
			return nil, inner
		}
		return items, nil

	case jsonparser.String:
		return jsonparser.ParseString(value)

	case jsonparser.Number:
		return jsonparser.ParseFloat(value)

	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)

	case jsonparser.Null:
		return nil, nil

	default:
		return nil, fmt.Errorf("unsupported value type %s", dataType)
	}
}
