package toc

import (
	"fmt"
	"math"
)

// Policy decides which headings may be highlighted and how they rank.
// Among candidates the smallest Distance wins; ties go to the heading that
// comes first in the document.
type Policy interface {
	// Candidate reports whether a heading whose element top sits at top
	// pixels below the viewport top (viewport pixels tall) may become active.
	Candidate(top, viewport float64) bool
	// Distance ranks a candidate; smaller is better.
	Distance(top, viewport float64) float64
}

// ReferenceSlack is how far in pixels below the reference line a heading may
// sit and still count as reached. Scrolling to a heading lands it on the line
// give or take sub-pixel rounding.
const ReferenceSlack = 1.0

// ReferenceLine highlights the heading closest to a fixed line Offset pixels
// below the viewport top, among headings at or above that line.
type ReferenceLine struct {
	Offset float64
}

// Candidate implements Policy.
func (p ReferenceLine) Candidate(top, _ float64) bool {
	return top <= p.Offset+ReferenceSlack
}

// Distance implements Policy.
func (p ReferenceLine) Distance(top, _ float64) float64 {
	return math.Abs(top - p.Offset)
}

// IntersectionBand highlights the heading nearest the top of a band that
// starts TopMargin and ends BottomMargin (fractions of the viewport height)
// away from the viewport edges. Both edges belong to the band.
type IntersectionBand struct {
	TopMargin    float64
	BottomMargin float64
}

// Candidate implements Policy.
func (p IntersectionBand) Candidate(top, viewport float64) bool {
	upper := viewport * p.TopMargin
	lower := viewport - viewport*p.BottomMargin
	return top >= upper-edgeEpsilon && top <= lower+edgeEpsilon
}

// edgeEpsilon absorbs floating point error in band edges computed from
// fractional margins.
const edgeEpsilon = 1e-9

// Distance implements Policy.
func (p IntersectionBand) Distance(top, viewport float64) float64 {
	return math.Abs(top - viewport*p.TopMargin)
}

// RootMargin renders the band as an IntersectionObserver rootMargin value.
func (p IntersectionBand) RootMargin() string {
	return fmt.Sprintf("-%g%% 0%% -%g%% 0%%", p.TopMargin*100, p.BottomMargin*100)
}

// Policy names accepted by ParsePolicy.
const (
	PolicyReferenceLine    = "reference-line"
	PolicyIntersectionBand = "intersection-band"
)

// ParsePolicy builds a policy from its configuration name.
func ParsePolicy(name string, offset, topMargin, bottomMargin float64) (Policy, error) {
	switch name {
	case "", PolicyReferenceLine:
		return ReferenceLine{Offset: offset}, nil
	case PolicyIntersectionBand:
		if topMargin < 0 || bottomMargin < 0 || topMargin+bottomMargin >= 1 {
			return nil, fmt.Errorf("invalid intersection band margins %g/%g", topMargin, bottomMargin)
		}
		return IntersectionBand{TopMargin: topMargin, BottomMargin: bottomMargin}, nil
	default:
		return nil, fmt.Errorf("unknown toc policy %q", name)
	}
}
