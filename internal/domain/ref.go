package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Ref is a numeric identifier that clients may send as a JSON number or
// as a numeric string. Anything else decodes to zero.
type Ref int64

func (r *Ref) UnmarshalJSON(b []byte) error {
	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		*r = Ref(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		n, _ = strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	}
	*r = Ref(n)
	return nil
}

// ParseRef parses a path or query value; invalid input yields zero.
func ParseRef(s string) Ref {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return Ref(n)
}
