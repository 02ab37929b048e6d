package sink

import "github.com/matzehuels/growthchart/pkg/chart/layout"

// RenderJSON writes the layout as indented JSON. The output can be read back
// with [layout.Unmarshal] and rendered again without recomputing.
func RenderJSON(l *layout.Layout) ([]byte, error) {
	return layout.Marshal(l)
}
