package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// UserProfile is the read-only snapshot of the viewer consumed by the
// eligibility filter. Missing fields are left at their zero value and
// treated as unknown.
type UserProfile struct {
	UserID     string   `json:"user_id,omitempty"`
	Prefecture string   `json:"prefecture,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Grade      string   `json:"grade,omitempty"`
	Age        Age      `json:"age"`
}

// Age is a possibly unknown numeric age. Profiles store age as free text,
// so anything that does not parse as a finite number becomes unknown
// instead of failing.
type Age struct {
	value float64
	known bool
}

// KnownAge returns an Age holding v.
func KnownAge(v float64) Age {
	return Age{value: v, known: true}
}

// ParseAge coerces raw into an Age. Empty or unparseable input yields an
// unknown age.
func ParseAge(raw string) Age {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Age{}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Age{}
	}
	return KnownAge(v)
}

// Value returns the age and whether it is known.
func (a Age) Value() (float64, bool) {
	return a.value, a.known
}

// UnmarshalJSON accepts a number, a numeric string or null. Any other
// payload decodes to an unknown age without error.
func (a *Age) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Age{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = Age{}
			return nil
		}
		*a = ParseAge(s)
		return nil
	}
	*a = ParseAge(string(data))
	return nil
}

// MarshalJSON writes the age as a number, or null when unknown.
func (a Age) MarshalJSON() ([]byte, error) {
	if !a.known {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(a.value, 'f', -1, 64)), nil
}
