package diagram

import (
	"fmt"
	"math"
	"strings"
)

// ElevationData holds the geometry for a sign elevation drawing. Zero
// foundation fields draw nothing below grade; FootingWidthFt selects a pad
// over a pier.
type ElevationData struct {
	SignWidthFt  float64
	SignHeightFt float64

	// Grade to cabinet bottom
	PoleHeightFt    float64
	OverallHeightFt float64

	SectionName string

	// Two-pole signs set PoleCount 2 and the on-center spacing
	PoleCount     int
	PoleSpacingFt float64

	// Cylindrical foundation
	EmbedDepthFt   float64
	PierDiameterFt float64

	// Spread footing
	FootingWidthFt     float64
	FootingThicknessFt float64
}

const (
	canvasWidth  = 44
	gradeRows    = 16
	drawingWidth = 28.0
)

// DrawElevation renders the sign, poles, grade line and foundation as a
// terminal elevation view with a dimension legend.
func DrawElevation(data ElevationData) string {
	if data.OverallHeightFt <= 0 || data.SignHeightFt <= 0 {
		return ""
	}

	var sb strings.Builder

	poles := data.PoleCount
	if poles < 1 {
		poles = 1
	}

	// Horizontal scale fits the widest feature in the drawing band.
	widest := data.SignWidthFt
	if data.FootingWidthFt > widest {
		widest = data.FootingWidthFt
	}
	if spread := data.PoleSpacingFt + data.PierDiameterFt; poles == 2 && spread > widest {
		widest = spread
	}
	if widest < 1 {
		widest = 1
	}
	scaleX := drawingWidth / widest

	center := canvasWidth / 2
	positions := []int{center}
	if poles == 2 {
		half := chars(data.PoleSpacingFt*scaleX) / 2
		if half < 3 {
			half = 3
		}
		positions = []int{center - half, center + half}
	}

	signRows := chars(data.SignHeightFt / data.OverallHeightFt * gradeRows)
	if signRows < 3 {
		signRows = 3
	}
	if signRows > gradeRows-1 {
		signRows = gradeRows - 1
	}
	clearRows := gradeRows - signRows

	cabinetWidth := chars(data.SignWidthFt * scaleX)
	if cabinetWidth < 8 {
		cabinetWidth = 8
	}
	if cabinetWidth > canvasWidth-4 {
		cabinetWidth = canvasWidth - 4
	}
	cabinetLeft := center - cabinetWidth/2

	sb.WriteString("\n")
	sb.WriteString("  SIGN ELEVATION\n")
	sb.WriteString("  ──────────────\n\n")

	// Cabinet
	for i := 0; i < signRows; i++ {
		row := blankRow()
		switch i {
		case 0:
			place(row, cabinetLeft, "┌"+strings.Repeat("─", cabinetWidth-2)+"┐")
		case signRows - 1:
			place(row, cabinetLeft, "└"+strings.Repeat("─", cabinetWidth-2)+"┘")
		default:
			place(row, cabinetLeft, "│")
			place(row, cabinetLeft+cabinetWidth-1, "│")
			if i == signRows/2 {
				dims := fmt.Sprintf("%.0f x %.0f ft", data.SignWidthFt, data.SignHeightFt)
				place(row, center-len([]rune(dims))/2, dims)
			}
		}
		writeRow(&sb, row, "")
	}

	// Exposed pole length
	for i := 0; i < clearRows; i++ {
		row := blankRow()
		for _, pos := range positions {
			place(row, pos, "││")
		}
		label := ""
		if i == clearRows/2 && data.SectionName != "" {
			label = " " + data.SectionName
		}
		writeRow(&sb, row, label)
	}

	// Grade line with pole pass-through marks
	grade := make([]rune, canvasWidth)
	for i := range grade {
		grade[i] = '═'
	}
	for _, pos := range positions {
		place(grade, pos, "╤╤")
	}
	writeRow(&sb, grade, " grade")

	// Foundation
	switch {
	case data.FootingWidthFt > 0:
		footingWidth := chars(data.FootingWidthFt * scaleX)
		if footingWidth < 6 {
			footingWidth = 6
		}
		rows := depthRows(data.FootingThicknessFt, data.OverallHeightFt)
		for i := 0; i < rows; i++ {
			row := blankRow()
			place(row, center-footingWidth/2, strings.Repeat("▒", footingWidth))
			writeRow(&sb, row, "")
		}
	case data.EmbedDepthFt > 0:
		pierWidth := chars(data.PierDiameterFt * scaleX)
		if pierWidth < 2 {
			pierWidth = 2
		}
		rows := depthRows(data.EmbedDepthFt, data.OverallHeightFt)
		for i := 0; i < rows; i++ {
			row := blankRow()
			for _, pos := range positions {
				place(row, pos+1-pierWidth/2, strings.Repeat("░", pierWidth))
			}
			writeRow(&sb, row, "")
		}
	}

	// Legend
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Overall height: %.1f ft (%.1f ft cabinet + %.1f ft clear)\n",
		data.OverallHeightFt, data.SignHeightFt, data.PoleHeightFt))
	if data.SectionName != "" {
		sb.WriteString(fmt.Sprintf("  Pole section:   %s\n", data.SectionName))
	}
	if poles == 2 {
		sb.WriteString(fmt.Sprintf("  Pole spacing:   %.1f ft on centers\n", data.PoleSpacingFt))
	}
	switch {
	case data.FootingWidthFt > 0:
		sb.WriteString(fmt.Sprintf("  Foundation:     %.1f x %.1f x %.1f ft spread footing\n",
			data.FootingWidthFt, data.FootingWidthFt, data.FootingThicknessFt))
	case data.EmbedDepthFt > 0:
		sb.WriteString(fmt.Sprintf("  Foundation:     %.1f ft dia pier, %.1f ft embedment\n",
			data.PierDiameterFt, data.EmbedDepthFt))
	}

	return sb.String()
}

// chars rounds a scaled dimension to a character count.
func chars(v float64) int {
	return int(math.Round(v))
}

// depthRows scales a below-grade depth against the above-grade band, two
// rows minimum so shallow foundations stay visible.
func depthRows(depthFt, overallFt float64) int {
	rows := chars(depthFt / overallFt * gradeRows)
	if rows < 2 {
		rows = 2
	}
	if rows > 8 {
		rows = 8
	}
	return rows
}

func blankRow() []rune {
	row := make([]rune, canvasWidth)
	for i := range row {
		row[i] = ' '
	}
	return row
}

// place overwrites canvas runes starting at a column, clipping at the edges.
func place(row []rune, at int, s string) {
	for i, r := range []rune(s) {
		idx := at + i
		if idx >= 0 && idx < len(row) {
			row[idx] = r
		}
	}
}

func writeRow(sb *strings.Builder, row []rune, suffix string) {
	sb.WriteString("  ")
	sb.WriteString(strings.TrimRight(string(row), " "))
	sb.WriteString(suffix)
	sb.WriteString("\n")
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len(title)
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
