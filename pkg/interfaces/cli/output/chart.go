package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/vsinha/supplycover/pkg/application/dto"
)

// CoverageChart renders days of supply as an SVG bar chart, one bar per day
type CoverageChart struct {
	Width        int
	Height       int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	BarGap       int
	MaxDays      float64
}

// NewCoverageChart sizes a chart for the report horizon
func NewCoverageChart(report *dto.CoverageReport) *CoverageChart {
	maxDays := 1.0
	for _, r := range report.Results {
		maxDays = math.Max(maxDays, r.DaysOfSupply)
	}

	barWidth := 24
	width := len(report.Results)*barWidth + 140
	if width < 400 {
		width = 400
	}

	return &CoverageChart{
		Width:        width,
		Height:       320,
		MarginLeft:   60,
		MarginTop:    50,
		MarginRight:  40,
		MarginBottom: 60,
		BarGap:       4,
		MaxDays:      math.Ceil(maxDays),
	}
}

// GenerateSVG creates an SVG representation of the projection
func (cc *CoverageChart) GenerateSVG(report *dto.CoverageReport) string {
	if len(report.Results) == 0 {
		return cc.generateEmptyChart()
	}

	var svg strings.Builder

	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, cc.Width, cc.Height))
	svg.WriteString(`<defs>`)
	svg.WriteString(`<style>`)
	svg.WriteString(`.axis-label { font-family: Arial, sans-serif; font-size: 10px; fill: #666; }`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.grid-line { stroke: #e0e0e0; stroke-width: 1; }`)
	svg.WriteString(`.coverage-bar { stroke: #333; stroke-width: 1; }`)
	svg.WriteString(`</style>`)
	svg.WriteString(`</defs>`)

	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, cc.Width, cc.Height))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="30" class="title" text-anchor="middle">Days of Supply - %s (%s)</text>`,
		cc.Width/2, escape(string(report.Material)), report.Role))

	cc.drawValueGrid(&svg)
	cc.drawBars(&svg, report)

	svg.WriteString(`</svg>`)
	return svg.String()
}

func (cc *CoverageChart) chartHeight() int {
	return cc.Height - cc.MarginTop - cc.MarginBottom
}

func (cc *CoverageChart) baseline() int {
	return cc.Height - cc.MarginBottom
}

// drawValueGrid draws horizontal lines for whole days of supply
func (cc *CoverageChart) drawValueGrid(svg *strings.Builder) {
	step := math.Max(1, math.Ceil(cc.MaxDays/5))
	for v := 0.0; v <= cc.MaxDays; v += step {
		y := cc.baseline() - int(v/cc.MaxDays*float64(cc.chartHeight()))
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
			cc.MarginLeft, y, cc.Width-cc.MarginRight, y))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="axis-label" text-anchor="end">%g</text>`,
			cc.MarginLeft-8, y+4, v))
	}
}

func (cc *CoverageChart) drawBars(svg *strings.Builder, report *dto.CoverageReport) {
	chartWidth := cc.Width - cc.MarginLeft - cc.MarginRight
	slot := chartWidth / len(report.Results)
	barWidth := slot - cc.BarGap
	if barWidth < 1 {
		barWidth = 1
	}

	for i, r := range report.Results {
		height := int(r.DaysOfSupply / cc.MaxDays * float64(cc.chartHeight()))
		x := cc.MarginLeft + i*slot + cc.BarGap/2
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s" class="coverage-bar"><title>%s: %.2f</title></rect>`,
			x, cc.baseline()-height, barWidth, height, cc.getBarColor(r.DaysOfSupply),
			r.Day.Format("2006-01-02"), r.DaysOfSupply))
		if i%7 == 0 {
			svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="axis-label" text-anchor="middle">%s</text>`,
				x+barWidth/2, cc.baseline()+15, r.Day.Format("Jan 2")))
		}
	}

	svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
		cc.MarginLeft, cc.baseline(), cc.Width-cc.MarginRight, cc.baseline()))
}

// getBarColor flags days that cannot cover the next day's demand
func (cc *CoverageChart) getBarColor(daysOfSupply float64) string {
	switch {
	case daysOfSupply < 1:
		return "#F44336"
	case daysOfSupply < 3:
		return "#FF9800"
	default:
		return "#4CAF50"
	}
}

func (cc *CoverageChart) generateEmptyChart() string {
	return fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
		<rect width="%d" height="%d" fill="white"/>
		<text x="%d" y="%d" class="title" text-anchor="middle">Empty Horizon</text>
		<style>
			.title { font-family: Arial, sans-serif; font-size: 16px; fill: #666; }
		</style>
	</svg>`, cc.Width, cc.Height, cc.Width, cc.Height, cc.Width/2, cc.Height/2)
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;").Replace(s)
}
