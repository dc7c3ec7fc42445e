package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/carbonforge/cbamcalc/internal/allocation"
	"github.com/carbonforge/cbamcalc/internal/emissions"
	"github.com/carbonforge/cbamcalc/internal/render"
)

// NewPCFCmd creates the "pcf" subcommand: allocate aggregated emissions
// across products by mass share and compute specific embedded emissions.
func NewPCFCmd() *cobra.Command {
	var (
		inputPath    string
		residueWaste bool
	)

	cmd := &cobra.Command{
		Use:   "pcf",
		Short: "Allocate emissions to product carbon footprints",
		Long: `Distribute the aggregated installation emissions across products by
mass share and roll precursor footprints into complex goods.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executePCF(cmd, inputPath, residueWaste)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "file", "f", "", "Activity export (JSON)")
	cmd.Flags().BoolVar(&residueWaste, "residue-waste", false, "Exclude residue mass from the allocation base")

	return cmd
}

func executePCF(cmd *cobra.Command, inputPath string, residueWaste bool) error {
	ctx := cmd.Context()

	doc, err := loadDocument(inputPath)
	if err != nil {
		return err
	}
	tables, err := loadTables(ctx)
	if err != nil {
		return err
	}

	cfg := configFromContext(ctx)
	settings := allocation.Settings{TreatResidueAsWaste: residueWaste || cfg.Allocation.TreatResidueAsWaste}

	result := emissions.CalculateTotal(ctx, doc.Activity, tables)
	footprints := allocation.CalculatePCF(ctx, result, doc.Products, settings)

	if outputFormat(ctx) == "json" {
		return printJSON(cmd, footprints)
	}
	renderFootprints(cmd, footprints)
	return nil
}

func renderFootprints(cmd *cobra.Command, footprints []allocation.ProductFootprint) {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, tabwriterPadding, ' ', 0)

	fmt.Fprintln(out, sectionStyle.Render("PRODUCT FOOTPRINTS"))
	fmt.Fprintln(w, headerStyle.Render("PRODUCT\tSHARE\tDIRECT (t)\tINDIRECT (t)\tPRECURSOR (t)\tSEE DIRECT\tSEE"))
	for _, fp := range footprints {
		name := fp.Name
		if fp.Excluded {
			name += " (waste)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			name,
			render.FormatPercent(fp.Share),
			render.FormatFloat(fp.AllocatedDirect, 2),
			render.FormatFloat(fp.AllocatedIndirect, 2),
			render.FormatFloat(fp.PrecursorCO2e, 2),
			render.FormatFloat(fp.SEEDirect, 4),
			render.FormatFloat(fp.SEE, 4))
	}
	w.Flush()
}
