package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apexsigns/signcalc/internal/solver"
)

var solveSingleCmd = &cobra.Command{
	Use:   "single",
	Short: "Design a sign carried on one pole",
	Long: `Design a single-pole sign structure end to end: wind load, load
combinations, section selection or check, foundation and rebar.

Examples:
  # 10x5 ft pylon cabinet, 15 ft pole, 115 mph exposure C
  signcalc solve single --width 10 --sign-height 5 --height 15 --wind-speed 115

  # Monument on a spread footing with the seismic check
  signcalc solve single --app monument --width 8 --sign-height 4 --height 4 \
    --wind-speed 110 --sds 1.0

  # Force a specific pole and draw the elevation
  signcalc solve single --width 10 --sign-height 5 --height 15 \
    --wind-speed 115 --section HSS8X8X3/8 --diagram`,
	Run: runSolveSingle,
}

func init() {
	solveCmd.AddCommand(solveSingleCmd)
}

func runSolveSingle(cmd *cobra.Command, args []string) {
	cfg, err := buildSingleConfig()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	result, err := solver.SolveSingle(cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if solveJSON {
		printJSON(result)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     SINGLE POLE SIGN DESIGN - %s\n", result.Application)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	printDesignResult(result)
	renderDiagrams(result, 1, 0)
	printVerdict(result.Approved, singleLabel(result), result.CriticalFailureMode,
		result.ContentHash, result.CodeRefs)
}

// singleLabel summarizes the approved design for the verdict box.
func singleLabel(res *solver.DesignResult) string {
	label := res.Section.Designation
	if f := res.Foundation; f != nil {
		label = fmt.Sprintf("%s / %.1f ft dia x %.1f ft pier", label, f.DiameterFt, f.DepthFt)
	}
	if f := res.Footing; f != nil {
		label = fmt.Sprintf("%s / %.1f x %.1f x %.1f ft pad", label, f.WidthFt, f.LengthFt, f.ThicknessFt)
	}
	return label
}
