package typedid

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MarshalText implements encoding.TextMarshaler. A zero ID encodes as "".
func (id ID[K]) MarshalText() ([]byte, error) {
	return []byte(id.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty input yields the
// zero ID; anything else must validate for kind K.
func (id *ID[K]) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*id = ID[K]{}
		return nil
	}
	parsed, err := Parse[K](string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalJSON encodes a zero ID as null and any other as a JSON string.
func (id ID[K]) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON accepts null, "" or a valid id string.
func (id *ID[K]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ID[K]{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding %s id: %w", kindName[K](), err)
	}
	return id.UnmarshalText([]byte(s))
}

// Scan implements sql.Scanner. NULL scans to the zero ID.
func (id *ID[K]) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*id = ID[K]{}
		return nil
	case string:
		return id.UnmarshalText([]byte(v))
	case []byte:
		return id.UnmarshalText(v)
	default:
		return fmt.Errorf("scanning %s id: unsupported type %T", kindName[K](), src)
	}
}

// Value implements driver.Valuer. A zero ID is stored as NULL.
func (id ID[K]) Value() (driver.Value, error) {
	if id.IsZero() {
		return nil, nil
	}
	return id.value, nil
}

// GormDataType tells gorm to map IDs to its string column type.
func (ID[K]) GormDataType() string { return "string" }
