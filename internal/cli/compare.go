package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/carbonforge/cbamcalc/internal/projection"
	"github.com/carbonforge/cbamcalc/internal/render"
)

// NewCompareCmd creates the "compare" subcommand: the same projection
// across the low, mid, and high certificate-price paths.
func NewCompareCmd() *cobra.Command {
	opts := &projectionOptions{}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare certificate price scenarios side by side",
		Long: `Run the same cost projection under the low, mid, and high certificate
price paths and report each path's totals.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeCompare(cmd, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.creditEligible, "credit", false, "Apply origin-country carbon price credits")
	cmd.Flags().StringVar(&opts.creditScenario, "credit-scenario", "", "Credit price path: LOW, MID, HIGH, or NONE")

	return cmd
}

func executeCompare(cmd *cobra.Command, opts *projectionOptions) error {
	ctx := cmd.Context()

	tables, err := loadTables(ctx)
	if err != nil {
		return err
	}
	base, err := buildProjectionConfig(ctx, opts, tables)
	if err != nil {
		return err
	}

	results := projection.CompareCertPriceScenarios(ctx, base, tables)

	if outputFormat(ctx) == "json" {
		return printJSON(cmd, results)
	}
	renderComparison(cmd, results)
	return nil
}

func renderComparison(cmd *cobra.Command, results []projection.ScenarioResult) {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, tabwriterPadding, ' ', 0)

	fmt.Fprintln(out, sectionStyle.Render("SCENARIO COMPARISON 2026-2034"))
	fmt.Fprintln(w, headerStyle.Render("SCENARIO\tEMBEDDED (t)\tPAYABLE (t)\tGROSS\tDEDUCTION\tNET"))
	for _, res := range results {
		totals := res.Projection.Totals
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			res.Label,
			render.FormatFloat(totals.EmbeddedT, 1),
			render.FormatFloat(totals.PayableT, 1),
			render.FormatEuro(totals.GrossCost),
			render.FormatEuro(totals.Deduction),
			render.FormatEuro(totals.NetCost))
	}
	w.Flush()

	if len(results) > 1 {
		spread := results[len(results)-1].Projection.Totals.NetCost - results[0].Projection.Totals.NetCost
		fmt.Fprintln(out, faintStyle.Render("net cost spread: "+render.FormatLarge(spread)+" EUR"))
	}
}
