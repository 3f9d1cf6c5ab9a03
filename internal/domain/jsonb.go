package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// jsonbBytes normalizes a scanned JSONB value into raw bytes.
func jsonbBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, errors.New("unsupported type for JSONB column")
	}
}

// StringList is a custom type for JSONB string arrays in PostgreSQL.
// It implements sql.Scanner and driver.Valuer so image URL lists can be
// stored and read without manual marshaling.
type StringList []string

// Scan implements the sql.Scanner interface.
func (s *StringList) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}

	data, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		*s = StringList{}
		return nil
	}

	return json.Unmarshal(data, s)
}

// Value implements the driver.Valuer interface.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// VariantList holds a product's ordered variant option strings. It is stored
// as a JSONB wrapper object `{"options": [...]}` and as SQL NULL when the
// product has no variants.
type VariantList []string

// variantWrapper is the persisted JSONB shape.
type variantWrapper struct {
	Options []string `json:"options"`
}

// Scan implements the sql.Scanner interface.
func (v *VariantList) Scan(value any) error {
	if value == nil {
		*v = nil
		return nil
	}

	data, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		*v = nil
		return nil
	}

	var w variantWrapper
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*v = w.Options
	return nil
}

// Value implements the driver.Valuer interface. An empty list is persisted
// as NULL, not as an empty wrapper.
func (v VariantList) Value() (driver.Value, error) {
	if len(v) == 0 {
		return nil, nil
	}
	return json.Marshal(variantWrapper{Options: v})
}
