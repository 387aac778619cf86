package goshape

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// KeysetCursor is a keyset page token: the field path, the field value of the
// last element of the previous page and the strict operator to continue with.
//
// The value travels as JSON, so it is converted back to the declared type of
// the field when the next page is requested.
type KeysetCursor struct {
	element keysetElement
}

// keysetElement is encoded as {"c": path, "v": value, "o": operator}.
type keysetElement struct {
	Path     string   `json:"c"`
	Value    any      `json:"v"`
	Operator Operator `json:"o"`
}

func NewKeysetCursor(path string, value any, operator Operator) *KeysetCursor {
	return &KeysetCursor{
		element: keysetElement{
			Path:     path,
			Value:    value,
			Operator: operator,
		},
	}
}

// DecodeKeysetCursor parses a base64 encoded token. An empty token yields a
// nil cursor.
func DecodeKeysetCursor(b64String string) (*KeysetCursor, error) {
	if len(b64String) == 0 {
		return nil, nil
	}

	jsonData, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, invalidArgf("failed to decode base64 encoded cursor: %v", err)
	}

	var elem keysetElement
	decoder := json.NewDecoder(bytes.NewReader(jsonData))
	// Keep numbers exact until they are converted to the field type.
	decoder.UseNumber()
	if err = decoder.Decode(&elem); err != nil {
		return nil, invalidArgf("failed to unmarshal json encoded cursor: %v", err)
	}

	return &KeysetCursor{element: elem}, nil
}

// String - implements fmt.Stringer.
func (c *KeysetCursor) String() string {
	if c.IsEmpty() {
		return ""
	}

	jTok, err := json.Marshal(c.element)
	if err != nil {
		panic(fmt.Errorf("cannot marshal cursor value: %w", err))
	}

	return _encoder.EncodeToString(jTok)
}

// IsEmpty - implements Cursor.
func (c *KeysetCursor) IsEmpty() bool {
	return c == nil || c.element.Path == ""
}

func (c *KeysetCursor) GetPath() string {
	if c == nil {
		return ""
	}

	return c.element.Path
}

// GetValue returns the boundary value as decoded.
func (c *KeysetCursor) GetValue() any {
	if c == nil {
		return nil
	}

	return c.element.Value
}

func (c *KeysetCursor) GetOperator() Operator {
	if c == nil {
		return ""
	}

	return c.element.Operator
}

// validate - implements Cursor.
func (c *KeysetCursor) validate(orderBy OrderBy) error {
	if c.IsEmpty() {
		return nil
	}

	if !strings.EqualFold(c.element.Path, orderBy.Path) {
		return invalidArgf("unexpected cursor field '%s'", c.element.Path)
	}

	if !c.element.Operator.Valid() {
		return invalidArgf("invalid cursor operator '%s'", c.element.Operator)
	} else if c.element.Operator.ForOrdering() != orderBy.Direction.OrDefault() {
		return invalidArgf("unexpected cursor operator '%s'", c.element.Operator)
	}

	if lo.IsNil(c.element.Value) {
		return invalidArgf("nil keyset cursor value for field '%s'", c.element.Path)
	}

	return nil
}

var (
	_ Cursor       = (*KeysetCursor)(nil)
	_ fmt.Stringer = (*KeysetCursor)(nil)
)
