// Package figures renders the curriculum's illustrative figures: seeded
// simulations of shot groups and velocity strings, bias demonstrations, and
// decision diagrams, one PNG per figure.
package figures

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/reloadstats/internal/chart"
	"github.com/Sumatoshi-tech/reloadstats/pkg/shotgroup"
)

// ErrUnknownFigure is returned by Lookup for an unregistered id.
var ErrUnknownFigure = errors.New("unknown figure")

// Stats are the key numbers a figure computed while rendering. They are
// recorded in the manifest so a lesson can quote them.
type Stats map[string]float64

// RenderFunc builds a figure from a seeded generator.
type RenderFunc func(rng *rand.Rand) (*chart.Canvas, Stats)

// Figure describes one curriculum figure.
type Figure struct {
	Lesson int
	Plot   int
	Name   string
	Title  string
	Seed   uint64
	Render RenderFunc
}

// ID returns the "LL_PP" identifier.
func (f Figure) ID() string {
	return fmt.Sprintf("%02d_%02d", f.Lesson, f.Plot)
}

// FileName returns the output file name, e.g. nb01_plot03_three_shot_distribution.png.
func (f Figure) FileName() string {
	return fmt.Sprintf("nb%02d_plot%02d_%s.png", f.Lesson, f.Plot, f.Name)
}

// Rand returns the figure's deterministic generator.
func (f Figure) Rand() *rand.Rand {
	return shotgroup.NewRand(f.Seed)
}

const defaultSeed = 42

var registry = []Figure{
	{Lesson: 0, Plot: 1, Name: "disappointment_cycle", Title: "The Disappointment Cycle", Seed: defaultSeed, Render: disappointmentCycle},
	{Lesson: 1, Plot: 2, Name: "mean_radius_vs_extreme_spread", Title: "Mean Radius Stabilizes, Extreme Spread Grows", Seed: defaultSeed, Render: meanRadiusVsExtremeSpread},
	{Lesson: 1, Plot: 3, Name: "three_shot_distribution", Title: "Distribution of Three-Shot Groups", Seed: defaultSeed, Render: threeShotDistribution},
	{Lesson: 1, Plot: 4, Name: "five_shot_comparison", Title: "3-Shot vs 5-Shot Groups", Seed: defaultSeed, Render: fiveShotComparison},
	{Lesson: 1, Plot: 5, Name: "which_load_better", Title: "Which Load Is Better?", Seed: 108, Render: whichLoadBetter},
	{Lesson: 1, Plot: 6, Name: "sd_illusion_sample_size", Title: "SD Measurement Illusion", Seed: defaultSeed, Render: sdIllusionSampleSize},
	{Lesson: 2, Plot: 8, Name: "cup_and_ocean", Title: "The Cup and the Ocean", Seed: defaultSeed, Render: cupAndOcean},
	{Lesson: 2, Plot: 26, Name: "three_types_of_consistency", Title: "The Three Types of Consistency", Seed: defaultSeed, Render: threeTypesOfConsistency},
	{Lesson: 3, Plot: 7, Name: "confidence_interval_shrinkage", Title: "Confidence Interval Shrinkage", Seed: defaultSeed, Render: confidenceIntervalShrinkage},
	{Lesson: 3, Plot: 10, Name: "sample_size_decision_tree", Title: "Sample Size Decision Guide", Seed: defaultSeed, Render: sampleSizeDecisionTree},
	{Lesson: 3, Plot: 22, Name: "cost_benefit_tradeoff", Title: "Cost vs Confidence Tradeoff", Seed: defaultSeed, Render: costBenefitTradeoff},
	{Lesson: 4, Plot: 27, Name: "factorial_explosion", Title: "The Factorial Explosion", Seed: defaultSeed, Render: factorialExplosion},
	{Lesson: 5, Plot: 15, Name: "sd_illusion_detailed", Title: "Small Samples Underestimate SD", Seed: defaultSeed, Render: sdIllusionDetailed},
	{Lesson: 5, Plot: 16, Name: "velocity_node_illusion", Title: "Velocity Node Illusion", Seed: 456, Render: velocityNodeIllusion},
	{Lesson: 5, Plot: 17, Name: "chronograph_precision_limits", Title: "Chronograph Precision Limits", Seed: defaultSeed, Render: chronographPrecisionLimits},
	{Lesson: 6, Plot: 18, Name: "es_vs_mr_comparison", Title: "ES Grows Forever, MR Stabilizes", Seed: 789, Render: esVsMRComparison},
	{Lesson: 6, Plot: 19, Name: "best_group_bias", Title: "Best Group Bias", Seed: 321, Render: bestGroupBias},
	{Lesson: 6, Plot: 25, Name: "precision_vs_accuracy_quadrants", Title: "Precision vs Accuracy", Seed: defaultSeed, Render: precisionVsAccuracy},
	{Lesson: 7, Plot: 9, Name: "anonymized_ladder_test", Title: "Ladder Test Illusion", Seed: defaultSeed, Render: anonymizedLadderTest},
	{Lesson: 7, Plot: 12, Name: "ocw_round_robin_illusion", Title: "OCW Round-Robin Illusion", Seed: defaultSeed, Render: ocwRoundRobin},
	{Lesson: 7, Plot: 13, Name: "seating_depth_scatter", Title: "Seating Depth Illusion", Seed: defaultSeed, Render: seatingDepthScatter},
	{Lesson: 7, Plot: 14, Name: "primer_swap_illusion", Title: "Primer Swap Illusion", Seed: defaultSeed, Render: primerSwapIllusion},
	{Lesson: 9, Plot: 20, Name: "real_world_precision_distribution", Title: "Real-World Precision by Equipment Class", Seed: defaultSeed, Render: realWorldPrecision},
	{Lesson: 9, Plot: 21, Name: "component_quality_vs_precision", Title: "Diminishing Returns in Precision Equipment", Seed: defaultSeed, Render: componentQualityVsPrecision},
	{Lesson: 10, Plot: 11, Name: "statistical_power_demo", Title: "Understanding Statistical Errors and Power", Seed: defaultSeed, Render: statisticalPowerDemo},
	{Lesson: 10, Plot: 24, Name: "power_analysis_curves", Title: "Detection Calculator", Seed: defaultSeed, Render: powerAnalysisCurves},
	{Lesson: 10, Plot: 25, Name: "type_i_ii_error_tradeoff", Title: "The Error Tradeoff", Seed: defaultSeed, Render: errorTradeoff},
	{Lesson: 11, Plot: 23, Name: "red_flag_gallery", Title: "Data Quality Red Flag Gallery", Seed: defaultSeed, Render: redFlagGallery},
	{Lesson: 12, Plot: 28, Name: "load_vs_skill_impact", Title: "Load Development vs Skill Development", Seed: defaultSeed, Render: loadVsSkillImpact},
}

// Registry returns every figure ordered by lesson, then plot number.
func Registry() []Figure {
	out := slices.Clone(registry)
	slices.SortStableFunc(out, func(a, b Figure) int {
		if a.Lesson != b.Lesson {
			return a.Lesson - b.Lesson
		}

		return a.Plot - b.Plot
	})

	return out
}

// Lookup finds a figure by id ("01_03"), by name, or by file name.
func Lookup(key string) (Figure, error) {
	key = strings.TrimSuffix(strings.TrimSpace(key), ".png")

	for _, f := range registry {
		if f.ID() == key || f.Name == key || strings.TrimSuffix(f.FileName(), ".png") == key {
			return f, nil
		}
	}

	return Figure{}, fmt.Errorf("%w: %q", ErrUnknownFigure, key)
}

// Select resolves keys to figures, keeping registry order. An empty key list
// selects every figure.
func Select(keys []string) ([]Figure, error) {
	if len(keys) == 0 {
		return Registry(), nil
	}

	want := make(map[string]bool, len(keys))

	for _, k := range keys {
		f, err := Lookup(k)
		if err != nil {
			return nil, err
		}

		want[f.ID()] = true
	}

	var out []Figure

	for _, f := range Registry() {
		if want[f.ID()] {
			out = append(out, f)
		}
	}

	return out, nil
}
