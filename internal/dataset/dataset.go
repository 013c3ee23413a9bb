// Package dataset reads chronograph shot records and groups them by label.
package dataset

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrMissingColumn indicates a required CSV column was not found.
	ErrMissingColumn = errors.New("missing column")
	// ErrBadVelocity indicates a velocity cell is not a finite number.
	ErrBadVelocity = errors.New("invalid velocity")
	// ErrBadCharge indicates a charge label is not a number.
	ErrBadCharge = errors.New("invalid charge weight")
	// ErrEmpty indicates the input contained no shots.
	ErrEmpty = errors.New("dataset has no shots")
	// ErrUnknownExample indicates an unknown built-in example name.
	ErrUnknownExample = errors.New("unknown example dataset")
)

// Shot is a single chronograph reading.
type Shot struct {
	Index    int     `json:"shot"     yaml:"shot"`
	Label    string  `json:"label"    yaml:"label"`
	Velocity float64 `json:"velocity" yaml:"velocity"`
}

// Dataset is an ordered collection of shots sharing one label column.
type Dataset struct {
	Name        string `json:"name"         yaml:"name"`
	LabelColumn string `json:"label_column" yaml:"label_column"`
	Shots       []Shot `json:"shots"        yaml:"shots"`
}

// Group is the velocities recorded under one label.
type Group struct {
	Label      string
	Shots      []int
	Velocities []float64
}

// ChargeGroup is a Group whose label parsed as a charge weight in grains.
type ChargeGroup struct {
	Group

	Charge float64
}

// Labels returns the distinct labels in first-seen order.
func (d *Dataset) Labels() []string {
	seen := make(map[string]struct{})

	var out []string

	for _, s := range d.Shots {
		if _, ok := seen[s.Label]; ok {
			continue
		}

		seen[s.Label] = struct{}{}
		out = append(out, s.Label)
	}

	return out
}

// Groups splits the shots by label, preserving first-seen label order and
// shot order within each label.
func (d *Dataset) Groups() []Group {
	index := make(map[string]int)

	var groups []Group

	for _, s := range d.Shots {
		i, ok := index[s.Label]
		if !ok {
			i = len(groups)
			index[s.Label] = i
			groups = append(groups, Group{Label: s.Label})
		}

		groups[i].Shots = append(groups[i].Shots, s.Index)
		groups[i].Velocities = append(groups[i].Velocities, s.Velocity)
	}

	return groups
}

// Group returns the velocities for label, matched case-insensitively.
func (d *Dataset) Group(label string) (Group, bool) {
	for _, g := range d.Groups() {
		if strings.EqualFold(g.Label, label) {
			return g, true
		}
	}

	return Group{}, false
}

// GroupsByCharge parses every label as a charge weight and returns the
// groups sorted by ascending charge. Labels naming the same weight ("41",
// "41.0") share one group, labelled with the first spelling seen.
func (d *Dataset) GroupsByCharge() ([]ChargeGroup, error) {
	index := make(map[float64]int)

	var out []ChargeGroup

	for _, s := range d.Shots {
		charge, err := strconv.ParseFloat(strings.TrimSpace(s.Label), 64)
		if err != nil || math.IsNaN(charge) || math.IsInf(charge, 0) {
			return nil, fmt.Errorf("%w: %q", ErrBadCharge, s.Label)
		}

		i, ok := index[charge]
		if !ok {
			i = len(out)
			index[charge] = i
			out = append(out, ChargeGroup{Group: Group{Label: s.Label}, Charge: charge})
		}

		out[i].Shots = append(out[i].Shots, s.Index)
		out[i].Velocities = append(out[i].Velocities, s.Velocity)
	}

	slices.SortStableFunc(out, func(a, b ChargeGroup) int {
		return cmp.Compare(a.Charge, b.Charge)
	})

	return out, nil
}

// Velocities returns every velocity in shot order.
func (d *Dataset) Velocities() []float64 {
	out := make([]float64, len(d.Shots))

	for i, s := range d.Shots {
		out[i] = s.Velocity
	}

	return out
}
