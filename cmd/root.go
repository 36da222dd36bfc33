package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apexsigns/signcalc/internal/config"
	"github.com/apexsigns/signcalc/internal/logger"
	"github.com/apexsigns/signcalc/internal/version"
)

// cfg and log are initialized in Execute before any command runs.
var (
	cfg *config.Config
	log *logger.Logger

	rootQuiet bool
)

var rootCmd = &cobra.Command{
	Use:   "signcalc",
	Short: "Structural Calculation Engine for Sign Structures",
	Long: `signcalc - Deterministic Structural Calculations for Signs

A CLI tool for code-compliant structural design of ground signs:
pylons, monuments, cantilever posts and wall-mounted cabinets.

This tool helps sign estimators and engineers perform:
  - Wind load derivation (ASCE 7-22 Chapter 29)
  - ASD load combination evaluation (IBC 2024 Section 1605)
  - Steel pole capacity checks and section selection (AISC 360-22)
  - Pole embedment and spread footing design (IBC 2024 Section 1807)
  - Foundation reinforcement schedules (ACI 318-19)
  - Base plate and anchor bolt checks

Identical inputs always produce identical results; every design record
carries a content hash for estimate caching.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   signcalc v%-46s║\n", version.Version)
		fmt.Println("  ║   Structural Calculation Engine for Sign Structures       ║")
		fmt.Println("  ║   ASCE 7-22 · IBC 2024 · AISC 360-22 · ACI 318-19         ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Deterministic structural calculations for the sign industry:")
		fmt.Println("  geometry and site wind in, a code-compliant design (or a")
		fmt.Println("  structured explanation of why none exists) out.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Wind pressure and force on sign faces (ASCE 7-22)")
		fmt.Println("    • ASD load combinations with governing case (IBC 2024)")
		fmt.Println("    • Pole capacity checks and catalog selection (AISC 360-22)")
		fmt.Println("    • Pier embedment, spread footings and rebar (IBC/ACI)")
		fmt.Println("    • Full single- and two-pole design pipelines")
		fmt.Println("    • Parallel batch solving with per-job fault isolation")
		fmt.Println()
		fmt.Println("  Use 'signcalc --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s Apex Signs. All rights reserved.\n", version.Year)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cfg = config.Load()
	log = logger.New(cfg)
	defer log.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().BoolVarP(&rootQuiet, "quiet", "q", false, "Suppress log output, keep calculation results")
	// Flags parse after Execute builds the logger, so the quiet swap
	// happens here.
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if rootQuiet {
			log = logger.Nop()
		}
	}
}

// passMark renders a check flag for tabulated output.
func passMark(ok bool) string {
	if ok {
		return "✓"
	}
	return "⚠"
}
