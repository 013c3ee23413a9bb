package figures

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/Sumatoshi-tech/reloadstats/internal/chart"
)

type node struct {
	x, y  float64
	label string
	fill  color.Color
}

// connect draws an arrow between two boxes, trimmed to stop short of both.
func connect(p *chart.Plot, from, to node, trim float64) {
	dx, dy := to.x-from.x, to.y-from.y

	length := math.Hypot(dx, dy)
	if length <= 2*trim {
		return
	}

	ux, uy := dx/length, dy/length
	p.Arrow(from.x+ux*trim, from.y+uy*trim, to.x-ux*trim, to.y-uy*trim, chart.Black)
}

func disappointmentCycle(_ *rand.Rand) (*chart.Canvas, Stats) {
	const boxW, boxH = 2.2, 1.2

	stages := []node{
		{0, 3, "EXCITEMENT\nNew load looks great", chart.LightGreen},
		{2.5, 2.5, "CONFIDENCE\nOrder components", chart.Lime},
		{3.5, 0, "CONFUSION\nNext group opens up", chart.Yellow},
		{2.5, -2.5, "DOUBT\nWas it the wind?", chart.Orange},
		{0, -3, "FRUSTRATION\nLoad \"stopped working\"", chart.DarkOrange},
		{-2.5, -2.5, "CHASE\nTry a new component", chart.OrangeRed},
		{-3.5, 0, "BURNOUT\nBarrel life and budget gone", chart.Red},
		{-2.5, 2.5, "CYCLE REPEATS\nNext \"magic\" load", chart.LightCoral},
	}

	p := chart.Blank("The Disappointment Cycle").XRange(-9, 9).YRange(-5, 5)

	for i, s := range stages {
		p.Node(s.x, s.y, boxW, boxH, s.fill, s.label)
		connect(p, s, stages[(i+1)%len(stages)], 0.9)
	}

	p.Rect(-1.6, -0.9, 1.6, 0.9, chart.Fade(chart.LightBlue, 0.6), chart.DarkBlue).
		TextSized(0, 0, "THE SMALL-SAMPLE TRAP\n3-5 shots decide everything\n\nBreak Free With 30+ Shots", 10, chart.DarkBlue)

	p.Text(-7, 0, "WHY THE CYCLE REPEATS\n\n"+
		"Small samples vary wildly\n"+
		"Lucky groups feel like proof\n"+
		"Bad groups feel like failure\n"+
		"Nothing was ever measured")
	p.Text(7, 0, "COST PER CYCLE\n\n"+
		"Components: $50-150\n"+
		"Range time: 4-8 hours\n"+
		"Barrel life: 50-100 rounds\n"+
		"Knowledge gained: none")

	return chart.Single(p, 16, 9), Stats{"stages": float64(len(stages))}
}

func sampleSizeDecisionTree(_ *rand.Rand) (*chart.Canvas, Stats) {
	const (
		boxW, boxH = 2.2, 0.9
		trim       = 0.5
	)

	root := node{5, 8.1, "What are you testing?", chart.LightBlue}
	purposes := []node{
		{1.25, 6.5, "Just want average\nvelocity / zero", chart.Wheat},
		{3.75, 6.5, "Comparing two loads", chart.Wheat},
		{6.25, 6.5, "Claiming one\nis better", chart.Wheat},
		{8.75, 6.5, "Publishing or\nsharing results", chart.Wheat},
	}
	endpoints := []node{
		{1.25, 4.9, "10 shots\n$15-20", chart.LightGreen},
		{3.75, 4.9, "30+ shots per load\n$45-60", chart.LightGreen},
		{6.25, 4.9, "50+ shots per load\n$75-100", chart.Yellow},
		{8.75, 4.9, "100+ shots per load\n$150-200", chart.Orange},
	}
	effect := node{5, 3.3, "Expected Effect Size", chart.LightBlue}
	large := node{3.25, 2.0, "Large effect\n(>15 fps or >0.3 MOA)", chart.Wheat}
	small := node{6.75, 2.0, "Small effect\n(<10 fps or <0.2 MOA)", chart.Wheat}
	largeEnd := node{3.25, 0.7, "30 shots might work\nBut consider 50+", chart.LightGreen}
	smallEnd := node{6.75, 0.7, "100+ shots needed\nfor reliable detection", chart.LightCoral}

	p := chart.Blank("Sample Size Decision Guide").XRange(0, 10).YRange(0, 10)
	p.Node(root.x, root.y, 3.5, 0.7, root.fill, root.label)

	for i := range purposes {
		p.Node(purposes[i].x, purposes[i].y, boxW, boxH, purposes[i].fill, purposes[i].label).
			Node(endpoints[i].x, endpoints[i].y, boxW, boxH, endpoints[i].fill, endpoints[i].label)
		connect(p, root, purposes[i], trim)
		connect(p, purposes[i], endpoints[i], trim)
	}

	p.Node(effect.x, effect.y, 3.5, 0.7, effect.fill, effect.label)

	for _, pair := range [][2]node{{large, largeEnd}, {small, smallEnd}} {
		p.Node(pair[0].x, pair[0].y, 2.8, boxH, pair[0].fill, pair[0].label).
			Node(pair[1].x, pair[1].y, 2.8, boxH, pair[1].fill, pair[1].label)
		connect(p, effect, pair[0], trim)
		connect(p, pair[0], pair[1], trim)
	}

	connect(p, endpoints[1], effect, trim)
	connect(p, endpoints[2], effect, trim)

	p.TextSized(5, 9.5, "Assumes $1.50 per round", 8, chart.Gray)

	return chart.Single(p, 14, 10), Stats{"cost_per_round": costPerRound}
}
