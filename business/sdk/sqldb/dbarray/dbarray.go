// Package dbarray provides support for scanning postgres array columns into
// Go slices without importing a second driver.
package dbarray

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// UUID represents a postgres uuid[] column.
type UUID []uuid.UUID

// Scan implements the sql.Scanner interface.
func (a *UUID) Scan(src any) error {
	if src == nil {
		*a = nil
		return nil
	}

	var s string
	switch v := src.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("dbarray: cannot convert %T to UUID array", src)
	}

	s = strings.Trim(s, "{}")
	if s == "" {
		*a = UUID{}
		return nil
	}

	parts := strings.Split(s, ",")
	ids := make(UUID, len(parts))
	for i, part := range parts {
		id, err := uuid.Parse(strings.Trim(part, `"`))
		if err != nil {
			return fmt.Errorf("dbarray: parse element %d: %w", i, err)
		}
		ids[i] = id
	}

	*a = ids
	return nil
}

// Value implements the driver.Valuer interface.
func (a UUID) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}

	parts := make([]string, len(a))
	for i, id := range a {
		parts[i] = id.String()
	}

	return "{" + strings.Join(parts, ",") + "}", nil
}

// =============================================================================

// String represents a postgres text[] column.
type String []string

// Scan implements the sql.Scanner interface.
func (a *String) Scan(src any) error {
	if src == nil {
		*a = nil
		return nil
	}

	var s string
	switch v := src.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("dbarray: cannot convert %T to String array", src)
	}

	s = strings.Trim(s, "{}")
	if s == "" {
		*a = String{}
		return nil
	}

	parts := strings.Split(s, ",")
	out := make(String, len(parts))
	for i, part := range parts {
		out[i] = strings.Trim(part, `"`)
	}

	*a = out
	return nil
}

// Value implements the driver.Valuer interface.
func (a String) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}

	parts := make([]string, len(a))
	for i, s := range a {
		parts[i] = `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}

	return "{" + strings.Join(parts, ",") + "}", nil
}
