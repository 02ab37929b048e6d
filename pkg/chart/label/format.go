package label

import (
	"math"
	"strconv"
	"strings"
)

// Unit is a display scale for numeric labels.
type Unit struct {
	Scale  float64
	Suffix string
	Name   string
}

// Units lists the supported display scales in ascending order.
var Units = []Unit{
	{1, "", "none"},
	{1e3, "K", "thousands"},
	{1e6, "M", "millions"},
	{1e9, "B", "billions"},
	{1e12, "T", "trillions"},
	{1e15, "P", "quadrillions"},
	{1e18, "E", "quintillions"},
}

// AutoUnit selects the largest scale not exceeding the value.
const AutoUnit = "auto"

// LookupUnit finds a unit by name or suffix, case-insensitively.
func LookupUnit(name string) (Unit, bool) {
	name = strings.TrimSpace(name)
	for _, u := range Units {
		if strings.EqualFold(u.Name, name) || (u.Suffix != "" && strings.EqualFold(u.Suffix, name)) {
			return u, true
		}
	}
	return Unit{}, false
}

// ValidUnit reports whether name is AutoUnit or a known unit.
func ValidUnit(name string) bool {
	if strings.EqualFold(strings.TrimSpace(name), AutoUnit) {
		return true
	}
	_, ok := LookupUnit(name)
	return ok
}

// FormatNumber scales value by unit, rounds it to digits decimal places,
// drops trailing zeros and appends the unit suffix. With AutoUnit (or an
// unknown unit) the largest scale not exceeding |value| is used.
func FormatNumber(value float64, digits int, unit string) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ""
	}
	u, ok := LookupUnit(unit)
	if !ok {
		u = autoUnit(value)
	}
	s := strconv.FormatFloat(value/u.Scale, 'f', max(digits, 0), 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s + u.Suffix
}

func autoUnit(v float64) Unit {
	a := math.Abs(v)
	best := Units[0]
	for _, u := range Units {
		if u.Scale <= a {
			best = u
		}
	}
	return best
}
