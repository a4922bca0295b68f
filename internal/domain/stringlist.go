package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is a list of strings persisted as serialized JSON text.
// Reads accept a JSON array, a JSON string holding an array, or plain
// comma separated text.
type StringList []string

// ParseStringList never fails; unparsable input yields the comma split.
func ParseStringList(raw string) StringList {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return StringList{}
	}
	var arr []string
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		return clean(arr)
	}
	var inner string
	if err := json.Unmarshal([]byte(raw), &inner); err == nil {
		return ParseStringList(inner)
	}
	return clean(strings.Split(raw, ","))
}

func clean(in []string) StringList {
	out := make(StringList, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// String returns the serialized text form.
func (l StringList) String() string {
	if l == nil {
		return "[]"
	}
	b, _ := json.Marshal([]string(l))
	return string(b)
}

func (l StringList) Value() (driver.Value, error) {
	return l.String(), nil
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = StringList{}
	case []byte:
		*l = ParseStringList(string(v))
	case string:
		*l = ParseStringList(v)
	default:
		return fmt.Errorf("stringlist: unsupported source %T", src)
	}
	return nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

func (l *StringList) UnmarshalJSON(b []byte) error {
	*l = ParseStringList(string(b))
	return nil
}
