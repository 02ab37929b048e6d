// Package scale resolves axis domains and maps values and column indices to
// pixels.
//
// [Resolve] computes the primary and optional secondary [Domain] from a
// table. [Band] and [Linear] are the pixel scales the later stages draw with:
// Band spaces columns across the plot width and Linear maps a domain onto the
// plot height with larger values higher up.
package scale

import (
	"math"
	"strconv"

	"github.com/matzehuels/growthchart/pkg/chart"
	"github.com/matzehuels/growthchart/pkg/chart/table"
	"github.com/matzehuels/growthchart/pkg/errors"
)

// Domain is the numeric range an axis maps to pixel space.
type Domain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Span returns Max - Min.
func (d Domain) Span() float64 { return d.Max - d.Min }

// Options configure domain resolution.
type Options struct {
	Type        chart.Type
	ScaleFactor float64 // headroom multiplier; 0 means 1
	MaxValue    float64 // explicit primary maximum; 0 means automatic
	MaxOptional bool    // accept a MaxValue below the computed maximum with a warning
	Rounded     bool    // round the computed maximum up to a nice number

	Secondary SecondaryOptions
}

// SecondaryOptions configure the secondary axis.
type SecondaryOptions struct {
	Enabled bool
	Min     float64
	Max     float64 // 0 reuses the computed primary maximum
}

// Result holds the resolved domains. Secondary is nil unless enabled.
type Result struct {
	Primary   Domain
	Secondary *Domain
	// Computed is the automatic primary maximum before any override.
	Computed float64
	// Warnings carries the recoverable ErrCodeScaleOverrideInvalid raised
	// when an optional override undercuts the computed maximum.
	Warnings []error
}

// Resolve computes axis domains for t.
//
// The stacked maximum is ceil(maxTotal * factor); the clustered maximum is
// maxTotal * factor. A positive MaxValue replaces the computed maximum. When
// it is smaller than the computed one, Resolve fails with
// ErrCodeScaleOverrideInvalid unless MaxOptional is set, in which case the
// override is used and a warning recorded.
func Resolve(t *table.Table, opts Options) (Result, error) {
	factor := opts.ScaleFactor
	if factor <= 0 {
		factor = 1
	}

	computed := t.MaxTotal() * factor
	if opts.Type != chart.Clustered {
		computed = math.Ceil(computed)
	}
	if opts.Rounded {
		computed = TopRounded(computed)
	}
	if computed <= 0 {
		computed = 1
	}

	res := Result{Primary: Domain{Max: computed}, Computed: computed}
	if opts.MaxValue > 0 {
		if opts.MaxValue < computed {
			err := errors.New(errors.ErrCodeScaleOverrideInvalid,
				"Y Max Value cannot be smaller than: %s. Set to 0 for default value.",
				strconv.FormatFloat(computed, 'f', -1, 64))
			if !opts.MaxOptional {
				return Result{}, err
			}
			res.Warnings = append(res.Warnings, err)
		}
		res.Primary.Max = opts.MaxValue
	}

	if opts.Secondary.Enabled {
		sec := Domain{Min: opts.Secondary.Min, Max: opts.Secondary.Max}
		if sec.Max <= 0 {
			sec.Max = computed
		}
		if sec.Max < sec.Min {
			return Result{}, errors.New(errors.ErrCodeScaleOverrideInvalid,
				"Secondary Max Value cannot be smaller than Min Value: %s.",
				strconv.FormatFloat(sec.Min, 'f', -1, 64))
		}
		res.Secondary = &sec
	}
	return res, nil
}

// TopRounded rounds v up to a multiple of 10^(digits-1), where digits is the
// number of integer digits of v, and never to less than a multiple of 10.
func TopRounded(v float64) float64 {
	if v <= 0 {
		return v
	}
	digits := len(strconv.FormatFloat(math.Ceil(v), 'f', 0, 64))
	roundBy := math.Max(math.Pow(10, float64(digits-1)), 10)
	return math.Ceil(v/roundBy) * roundBy
}

// Ticks returns n evenly spaced values from d.Min to d.Max inclusive.
func Ticks(d Domain, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{d.Max}
	}
	out := make([]float64, n)
	step := d.Span() / float64(n-1)
	for i := range out {
		out[i] = d.Min + step*float64(i)
	}
	out[n-1] = d.Max
	return out
}
