package table

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Role tags a raw measure with what it contributes to the table.
type Role string

const (
	RoleColumnValues Role = "Column Values"
	RoleCapacities   Role = "Capacities"
	RoleLineValues   Role = "Line Values"
)

// ParseRole detects a role from a measure's display name. Matching is
// case-insensitive and checked in order: "capacit", then "threshold" or
// "line", then "value". Exact role names are accepted as-is.
func ParseRole(name string) (Role, bool) {
	switch Role(name) {
	case RoleColumnValues, RoleCapacities, RoleLineValues:
		return Role(name), true
	}
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "capacit"):
		return RoleCapacities, true
	case strings.Contains(n, "threshold"), strings.Contains(n, "line"):
		return RoleLineValues, true
	case strings.Contains(n, "value"):
		return RoleColumnValues, true
	}
	return "", false
}

// Raw is the host-provided columnar input: ordered categories and one group
// per series, each group holding role-tagged measures aligned with
// Categories.
type Raw struct {
	Categories []string `json:"categories"`
	Groups     []Group  `json:"groups"`
}

// Group is one series of raw measures.
type Group struct {
	Name     string    `json:"name"`
	Measures []Measure `json:"measures"`
}

// Measure is a role-tagged value sequence. Role holds the display name the
// host gave the measure; [ParseRole] resolves it.
type Measure struct {
	Role   string  `json:"role"`
	Values []Value `json:"values"`
}

// Value is a raw cell. JSON null, empty strings and unparsable strings decode
// to NaN, which the builder normalizes to 0.
type Value float64

// Float returns v as a float64 with NaN and infinities mapped to 0.
func (v Value) Float() float64 { return finite(float64(v)) }

// UnmarshalJSON accepts numbers, numeric strings and null.
func (v *Value) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*v = Value(math.NaN())
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*v = ParseValue(str)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*v = Value(f)
	return nil
}

// MarshalJSON writes NaN and infinities as null.
func (v Value) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// ParseValue parses a cell string, returning NaN when it is not a number.
// Thousands separators and surrounding spaces are ignored.
func ParseValue(s string) Value {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return Value(math.NaN())
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value(math.NaN())
	}
	return Value(f)
}

// measure returns the first measure of g with role r.
func (g Group) measure(r Role) (Measure, bool) {
	for _, m := range g.Measures {
		if role, ok := ParseRole(m.Role); ok && role == r {
			return m, true
		}
	}
	return Measure{}, false
}

// at returns the i-th value, 0 when out of range or not finite.
func (m Measure) at(i int) float64 {
	if i < 0 || i >= len(m.Values) {
		return 0
	}
	return m.Values[i].Float()
}
