// Package pgjson adapts free-form document fields to PostgreSQL jsonb
// columns. Event payloads, audit snapshots, and agent inputs have no fixed
// schema, so they are persisted as jsonb documents rather than relational
// columns.
package pgjson

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Map is a JSON object stored in a jsonb column. A nil Map is stored as SQL
// NULL and a NULL column scans back to a nil Map.
type Map map[string]any

// Value implements driver.Valuer.
func (m Map) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *Map) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("pgjson: cannot scan %T into Map", src)
	}

	return json.Unmarshal(raw, (*map[string]any)(m))
}

// FromStruct converts a JSON-taggable value into a Map, preserving the
// value's wire field names.
func FromStruct(v any) (Map, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var m Map
	if err = json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
