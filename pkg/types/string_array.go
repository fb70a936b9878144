package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
)

// StringArray stores a list of strings as a Postgres text[] column while
// degrading to a JSON array on SQLite.
type StringArray []string

// Value serializes the slice for the database.
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return pq.Array([]string{}).Value()
	}
	return pq.Array([]string(s)).Value()
}

// Scan decodes either a Postgres array literal or a JSON array.
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	if raw, ok := value.([]byte); ok && len(raw) > 0 && raw[0] == '[' {
		var decoded []string
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return fmt.Errorf("string array: %w", err)
		}
		*s = decoded
		return nil
	}

	var arr pq.StringArray
	if err := arr.Scan(value); err != nil {
		return err
	}
	*s = StringArray(arr)
	return nil
}
