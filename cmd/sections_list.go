package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/apexsigns/signcalc/internal/catalog"
)

var (
	listFamily    string
	listMinSx     float64
	listMaxDepth  float64
	listMaxWeight float64
	listA1085     bool
)

var sectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog sections with properties",
	Long: `List the pole sections in the catalog with their AISC properties,
optionally filtered by family and constraints.

Examples:
  # Full catalog
  signcalc sections list

  # Square HSS with at least 20 in³ of section modulus
  signcalc sections list --family HSS --min-sx 20

  # Shallow sections for a tight monument base
  signcalc sections list --max-depth 8`,
	Run: runSectionsList,
}

func init() {
	sectionsCmd.AddCommand(sectionsListCmd)

	sectionsListCmd.Flags().StringVarP(&listFamily, "family", "f", "", "Restrict to one family (HSS, Pipe, W, Aluminum)")
	sectionsListCmd.Flags().Float64Var(&listMinSx, "min-sx", 0, "Minimum section modulus Sx (in³)")
	sectionsListCmd.Flags().Float64Var(&listMaxDepth, "max-depth", 0, "Maximum outside depth (in)")
	sectionsListCmd.Flags().Float64Var(&listMaxWeight, "max-weight", 0, "Maximum self weight (plf)")
	sectionsListCmd.Flags().BoolVar(&listA1085, "a1085", false, "A1085 tolerance product only")
}

func runSectionsList(cmd *cobra.Command, args []string) {
	cat, err := loadCatalog()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	family := catalog.Family(listFamily)
	if listFamily != "" && !family.Valid() {
		fmt.Printf("Error: unknown family %q (HSS, Pipe, W, Aluminum)\n", listFamily)
		return
	}

	sections := cat.Filter(family, catalog.Constraints{
		MinSx:      listMinSx,
		MaxDepthIn: listMaxDepth,
		MaxWeight:  listMaxWeight,
		A1085Only:  listA1085,
	})

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     POLE SECTION CATALOG %s\n", cat.Version())
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	if len(sections) == 0 {
		fmt.Println("  No sections match the filter.")
		fmt.Println()
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  DESIGNATION\tFAMILY\tA (in²)\tDEPTH (in)\tWT (plf)\tSx (in³)\tIx (in⁴)\trx (in)\tFy (ksi)\n")
	fmt.Fprintf(w, "  ───────────\t──────\t───────\t──────────\t────────\t────────\t────────\t───────\t────────\n")
	for _, s := range sections {
		fmt.Fprintf(w, "  %s\t%s\t%.2f\t%.2f\t%.2f\t%.1f\t%.1f\t%.2f\t%.0f\n",
			s.Designation, s.Family, s.AreaIn2, s.DepthIn, s.WeightPLF, s.SxIn3, s.IxIn4, s.RxIn, s.FyKsi)
	}
	w.Flush()
	fmt.Println()
	fmt.Printf("  %d of %d sections\n", len(sections), cat.Len())
	fmt.Println()
}
