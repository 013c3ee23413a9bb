// Package shotgroup computes the geometry of shot groups on a target and
// simulates groups from a circular normal dispersion model.
package shotgroup

import (
	"math"

	"github.com/Sumatoshi-tech/reloadstats/pkg/alg/stats"
)

// Point is an impact position in MOA relative to the point of aim.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Dist returns the Euclidean distance between two points.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Group is an ordered set of impacts fired at the same aim point.
type Group []Point

// Stats summarises a group.
type Stats struct {
	N        int     `json:"n"        yaml:"n"`
	ES       float64 `json:"es"       yaml:"es"`
	MR       float64 `json:"mr"       yaml:"mr"`
	Centroid Point   `json:"centroid" yaml:"centroid"`
}

// Centroid returns the mean impact position. The zero Point for an empty group.
func (g Group) Centroid() Point {
	if len(g) == 0 {
		return Point{}
	}

	var c Point

	for _, p := range g {
		c.X += p.X
		c.Y += p.Y
	}

	n := float64(len(g))

	return Point{X: c.X / n, Y: c.Y / n}
}

// ExtremeSpread returns the largest center-to-center distance between any
// two impacts. Zero for fewer than two impacts.
func (g Group) ExtremeSpread() float64 {
	var best float64

	for i := range g {
		for j := i + 1; j < len(g); j++ {
			best = max(best, g[i].Dist(g[j]))
		}
	}

	return best
}

// MeanRadius returns the average distance of each impact from the centroid.
// It never exceeds ExtremeSpread.
func (g Group) MeanRadius() float64 {
	if len(g) == 0 {
		return 0
	}

	c := g.Centroid()

	var total float64

	for _, p := range g {
		total += p.Dist(c)
	}

	return total / float64(len(g))
}

// Radii returns each impact's distance from the centroid.
func (g Group) Radii() []float64 {
	c := g.Centroid()
	out := make([]float64, len(g))

	for i, p := range g {
		out[i] = p.Dist(c)
	}

	return out
}

// Stats returns N, ES, MR, and the centroid in one pass over the group.
func (g Group) Stats() Stats {
	return Stats{
		N:        len(g),
		ES:       g.ExtremeSpread(),
		MR:       g.MeanRadius(),
		Centroid: g.Centroid(),
	}
}

// Offset returns a copy of g shifted by (dx, dy).
func (g Group) Offset(dx, dy float64) Group {
	out := make(Group, len(g))

	for i, p := range g {
		out[i] = Point{X: p.X + dx, Y: p.Y + dy}
	}

	return out
}

// Xs returns the horizontal coordinates.
func (g Group) Xs() []float64 {
	out := make([]float64, len(g))

	for i, p := range g {
		out[i] = p.X
	}

	return out
}

// Ys returns the vertical coordinates.
func (g Group) Ys() []float64 {
	out := make([]float64, len(g))

	for i, p := range g {
		out[i] = p.Y
	}

	return out
}

// MedianDistanceFrom returns the median distance from the impacts to p.
func (g Group) MedianDistanceFrom(p Point) float64 {
	return stats.Median(g.distancesFrom(p))
}

// MeanDistanceFrom returns the mean distance from the impacts to p. With p at
// the point of aim this is the mean radius about the true center.
func (g Group) MeanDistanceFrom(p Point) float64 {
	return stats.Mean(g.distancesFrom(p))
}

func (g Group) distancesFrom(p Point) []float64 {
	dists := make([]float64, len(g))

	for i, q := range g {
		dists[i] = q.Dist(p)
	}

	return dists
}
