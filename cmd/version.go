package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apexsigns/signcalc/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of signcalc",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("signcalc v%s\n", version.Version)
		fmt.Println("Structural Calculation Engine for Sign Structures")
		fmt.Println("ASCE 7-22 / IBC 2024 / AISC 360-22 / ACI 318-19")
		if version.GitCommit != "unknown" {
			fmt.Printf("commit %s, built %s\n", version.GitCommit, version.BuildTime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
