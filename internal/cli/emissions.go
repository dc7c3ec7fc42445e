package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/carbonforge/cbamcalc/internal/emissions"
	"github.com/carbonforge/cbamcalc/internal/render"
)

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// NewEmissionsCmd creates the "emissions" subcommand: aggregate an
// activity export into per-gas masses and CO2e totals.
func NewEmissionsCmd() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "emissions",
		Short: "Aggregate activity data into emission totals",
		Long: `Compute combustion, electricity, legacy process, and formula-block
emissions from an activity export, with the full calculation lineage.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeEmissions(cmd, inputPath)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "file", "f", "", "Activity export (JSON)")

	return cmd
}

func executeEmissions(cmd *cobra.Command, inputPath string) error {
	ctx := cmd.Context()

	doc, err := loadDocument(inputPath)
	if err != nil {
		return err
	}
	tables, err := loadTables(ctx)
	if err != nil {
		return err
	}

	result := emissions.CalculateTotal(ctx, doc.Activity, tables)

	if outputFormat(ctx) == "json" {
		return printJSON(cmd, result)
	}
	renderEmissions(cmd, result)
	return nil
}

// renderEmissions writes the per-entry rows and totals as a table.
func renderEmissions(cmd *cobra.Command, result emissions.Result) {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, tabwriterPadding, ' ', 0)

	if len(result.Fuels) > 0 {
		fmt.Fprintln(out, sectionStyle.Render("COMBUSTION"))
		fmt.Fprintln(w, headerStyle.Render("ENTRY\tFUEL\tENERGY (TJ)\tCO2 (t)\tCH4 (t)\tN2O (t)\tCO2E (t)"))
		for _, row := range result.Fuels {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				row.EntryID, row.FuelType,
				render.FormatFloat(row.EnergyTJ, 3),
				render.FormatFloat(row.MassCO2, 2),
				render.FormatFloat(row.MassCH4, 4),
				render.FormatFloat(row.MassN2O, 4),
				render.FormatFloat(row.CO2e, 2))
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	if len(result.Electricity) > 0 {
		fmt.Fprintln(out, sectionStyle.Render("ELECTRICITY"))
		fmt.Fprintln(w, headerStyle.Render("ENTRY\tCO2E (t)"))
		for _, row := range result.Electricity {
			fmt.Fprintf(w, "%s\t%s\n", row.EntryID, render.FormatFloat(row.CO2e, 2))
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	if len(result.Blocks) > 0 {
		fmt.Fprintln(out, sectionStyle.Render("EMISSION BLOCKS"))
		fmt.Fprintln(w, headerStyle.Render("BLOCK\tGAS\tTONNES\tCO2E (t)\tERROR"))
		for _, row := range result.Blocks {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				row.BlockID, row.Gas,
				render.FormatFloat(row.Tonnes, 4),
				render.FormatFloat(row.CO2e, 2),
				row.Err)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	if len(result.Anodes) > 0 || len(result.PFCs) > 0 {
		note := ""
		if result.Mode == emissions.ModeBlocks {
			note = " (superseded by blocks in the summary)"
		}
		fmt.Fprintln(out, sectionStyle.Render("LEGACY PROCESS")+faintStyle.Render(note))
		fmt.Fprintln(w, headerStyle.Render("ENTRY\tCO2E (t)"))
		for _, row := range result.Anodes {
			fmt.Fprintf(w, "%s\t%s\n", row.EntryID, render.FormatFloat(row.CO2e, 2))
		}
		for _, row := range result.PFCs {
			fmt.Fprintf(w, "%s\t%s\n", row.EntryID, render.FormatFloat(row.CO2e, 2))
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, sectionStyle.Render("TOTALS"))
	fmt.Fprintf(w, "Direct\t%s\n", render.FormatTonnes(result.DirectCO2e))
	fmt.Fprintf(w, "Indirect\t%s\n", render.FormatTonnes(result.IndirectCO2e))
	fmt.Fprintf(w, "Total\t%s\n", render.FormatTonnes(result.TotalCO2e))
	w.Flush()
	fmt.Fprintln(out, faintStyle.Render(fmt.Sprintf("run %s, mode %s", result.RunID, result.Mode)))
}
