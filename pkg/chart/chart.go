// Package chart holds the types shared by every stage of the layout engine.
//
// The engine itself lives in the sub-packages, leaves first:
//
//	table   normalize host data into columns x series
//	scale   resolve axis domains and pixel scales
//	stack   build stacked or clustered segments
//	legend  place legend items with wrapping
//	label   decide label visibility and format numbers
//	growth  resolve growth indicator selectors and geometry
//	layout  sequence the stages into one Layout result
package chart

import (
	"fmt"
	"strings"
)

// Type selects the rendering path. Stacked and clustered charts share the
// scale and label stages and differ in segment building and growth
// selection.
type Type string

const (
	Stacked   Type = "stacked"
	Clustered Type = "clustered"
)

// ParseType parses a chart type name, case-insensitively. An empty name
// selects Stacked.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case "", Stacked:
		return Stacked, nil
	case Clustered:
		return Clustered, nil
	}
	return "", fmt.Errorf("unknown chart type %q (want %q or %q)", s, Stacked, Clustered)
}

// String returns the type name.
func (t Type) String() string { return string(t) }
