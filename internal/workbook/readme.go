package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const readmeWelcome = `This workbook contains three analysis templates for ammunition testing, matching the analysis commands of reloadstats.

Each template provides:
✓ Automatic statistical calculations
✓ Charts that update as you type
✓ Plain-English interpretation
✓ Clear decision guidance
✓ Protected formulas (you can't accidentally break them)`

const readmeSteps = `STEP 1: Choose Your Template
• Template A: Compare two loads (primers, powders, bullets, etc.)
• Template B: Test multiple powder charges (ladder test)
• Template C: Evaluate a single modification (before/after)

STEP 2: Enter Your Data
• Go to the template sheet
• Find the data entry area (striped columns)
• Paste or type your chronograph readings
• Use the dropdowns for the Load and Condition columns
• Formula cells are protected

STEP 3: Review Results
• Statistics calculate automatically
• Review the charts to the right of the statistics
• Read the interpretation section (plain English)
• Follow the recommendation guidance`

const readmeStats = `Mean: Average velocity (the center of your data)
SD (Standard Deviation): How spread out velocities are (lower is more consistent)
ES (Extreme Spread): Max velocity minus min velocity
95% CI: We're 95% confident the true mean is within this range
P-value: Probability of a difference this large if the loads were identical (< 0.05 means a real difference)
Cohen's d: Effect size (< 0.2 tiny, 0.2-0.5 small, 0.5-0.8 medium, > 0.8 large)`

const readmeTips = `✓ Include ALL shots (even flyers). Don't cherry-pick data
✓ Use equal sample sizes when comparing loads
✓ Test on the same day when possible
✓ Shoot 30+ shots per load for valid SD comparisons
✓ Document conditions (temperature, barrel fouling, lot numbers)
✓ Save completed templates with descriptive names (e.g., "2024-03-15_CCI_vs_Federal.xlsx")

✗ DON'T judge by best groups. Use averages
✗ DON'T stop early because results look good
✗ DON'T test multiple variables at once
✗ DON'T trust ladder tests with < 20 shots per charge`

const readmeTrouble = `Blank results: Not enough data entered. Enter at least 2 shots per group, ideally 10 or more.
#VALUE! error: Non-numeric data in the Velocity column. Check for text entries.
Formula protection: Sheets are protected. Unlock with password "%s" if needed.
Thresholds: The interpretation cut-offs live on the hidden _Calculations sheet.
Dropdowns not working: Make sure data validation is enabled (it is by default).`

type templateInfo struct {
	title string
	lines []string
	warn  string
}

var templateDetails = []templateInfo{
	{
		title: "Template A: Two-Load Comparison",
		lines: []string{
			"Purpose: Compare velocity performance between any two loads",
			"Data Required: 30 shots per load (60 total)",
			"Columns: Shot, Load, Velocity. Rename the loads in the statistics header cells",
			"Use For: Primer comparison, powder comparison, bullet comparison",
		},
	},
	{
		title: "Template B: Charge Weight Ladder",
		lines: []string{
			"Purpose: Test multiple powder charges systematically",
			"Data Required: 10-30 shots per charge, 3-6 different charges",
			"Columns: Shot, Charge, Velocity. List your charges in the statistics table",
			"Use For: Finding optimal charge weight, initial screening",
		},
		warn: "⚠ WARNING: Use for screening only. Validate winners with 30+ shots!",
	},
	{
		title: "Template C: Before/After Modification",
		lines: []string{
			"Purpose: Evaluate the impact of a single component change",
			"Data Required: 20-30 shots before, 20-30 shots after",
			"Columns: Shot, Condition, Velocity",
			"Use For: Barrel cleaning effects, tuner additions, brass lot changes",
		},
	},
}

func writeReadme(f *excelize.File, st *styles, opts Options) error {
	s := newSheetWriter(f, SheetReadme, st)

	s.merged("A1", "H1", "Reloading Analysis Templates - User Guide", st.title).height(1, 30)

	row := 3
	block := func(heading, body string, lines int) {
		s.styled(ref("A", row), heading, st.section)
		row++
		s.merged(ref("A", row), ref("H", row+lines), body, st.text)
		row += lines + 2
	}

	s.styled("A3", "Welcome!", st.bold)
	row++
	s.merged(ref("A", row), ref("H", row+6), readmeWelcome, st.text)
	row += 8

	block("How to Use These Templates (3 Steps)", readmeSteps, 16)

	s.styled(ref("A", row), "Template Details", st.section)
	row += 2

	for _, t := range templateDetails {
		s.styled(ref("A", row), t.title, st.bold)
		row++

		for _, line := range t.lines {
			s.value(ref("A", row), line)
			row++
		}

		if t.warn != "" {
			s.styled(ref("A", row), t.warn, st.warning)
			row++
		}

		row++
	}

	block("Understanding the Statistics", readmeStats, 6)
	block("Best Practices", readmeTips, 12)
	block("Troubleshooting", fmt.Sprintf(readmeTrouble, opts.password()), 6)

	s.width("A", 50)

	for _, col := range []string{"B", "C", "D", "E", "F", "G", "H"} {
		s.width(col, 15)
	}

	return s.err
}
