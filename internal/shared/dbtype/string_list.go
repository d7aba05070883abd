package dbtype

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is persisted as a jsonb array. nil is stored as [].
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("dbtype: cannot scan %T into StringList", src)
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("dbtype: decode StringList: %w", err)
	}
	*l = out
	return nil
}

func (StringList) GormDataType() string {
	return "jsonb"
}
