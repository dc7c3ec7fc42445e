package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/carbonforge/cbamcalc/internal/allocation"
	"github.com/carbonforge/cbamcalc/internal/emissions"
	"github.com/carbonforge/cbamcalc/internal/projection"
	"github.com/carbonforge/cbamcalc/internal/refdata"
	"github.com/carbonforge/cbamcalc/internal/render"
)

// projectionOptions holds the flag values for projection and compare.
// The intensity comes either from an activity export (-f plus
// --product) or directly from --see-direct/--see-indirect.
type projectionOptions struct {
	inputPath string
	product   string

	basis       string
	scope       string
	seeDirect   float64
	seeIndirect float64
	cnCode      string
	sector      string

	certScenario   string
	creditEligible bool
	creditScenario string
	imports        float64

	residueWaste bool
}

func (o *projectionOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.inputPath, "file", "f", "", "Activity export to compute SEE from (JSON)")
	cmd.Flags().StringVar(&o.product, "product", "", "Product ID or name to project (with -f)")
	cmd.Flags().StringVar(&o.basis, "basis", string(projection.BasisActual), "Intensity basis: ACTUAL or DEFAULT")
	cmd.Flags().StringVar(&o.scope, "scope", string(projection.ScopeTotal), "Emission scope: DIRECT_ONLY or TOTAL")
	cmd.Flags().Float64Var(&o.seeDirect, "see-direct", 0, "Direct SEE in tCO2e/t (instead of -f)")
	cmd.Flags().Float64Var(&o.seeIndirect, "see-indirect", 0, "Indirect SEE in tCO2e/t (instead of -f)")
	cmd.Flags().StringVar(&o.cnCode, "cn-code", "", "CN code for the DEFAULT basis")
	cmd.Flags().StringVar(&o.sector, "sector", refdata.SectorStandard, "Goods sector for the markup schedule")
	cmd.Flags().Float64Var(&o.imports, "imports", 0, "Annual imported quantity in tonnes")
	cmd.Flags().BoolVar(&o.residueWaste, "residue-waste", false, "Exclude residue mass when computing SEE")
}

// NewProjectionCmd creates the "projection" subcommand: a 2026-2034
// carbon-border cost projection for one configuration.
func NewProjectionCmd() *cobra.Command {
	opts := &projectionOptions{}

	cmd := &cobra.Command{
		Use:   "projection",
		Short: "Project carbon-border costs through 2034",
		Long: `Project year-by-year certificate costs for an imported product, from
either the computed product footprint or a regulatory default intensity.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeProjection(cmd, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.certScenario, "cert-scenario", string(refdata.ScenarioMid), "Certificate price path: LOW, MID, or HIGH")
	cmd.Flags().BoolVar(&opts.creditEligible, "credit", false, "Apply origin-country carbon price credits")
	cmd.Flags().StringVar(&opts.creditScenario, "credit-scenario", string(refdata.ScenarioNone), "Credit price path: LOW, MID, HIGH, or NONE")

	return cmd
}

func executeProjection(cmd *cobra.Command, opts *projectionOptions) error {
	ctx := cmd.Context()

	tables, err := loadTables(ctx)
	if err != nil {
		return err
	}
	cfg, err := buildProjectionConfig(ctx, opts, tables)
	if err != nil {
		return err
	}

	proj := projection.Calculate(ctx, cfg, tables)

	if outputFormat(ctx) == "json" {
		return printJSON(cmd, proj)
	}
	renderProjection(cmd, proj)
	return nil
}

// buildProjectionConfig assembles the projection config from flags,
// computing the SEE from the activity export when one is given.
func buildProjectionConfig(ctx context.Context, opts *projectionOptions, tables refdata.Tables) (projection.Config, error) {
	cfg := projection.Config{
		Basis:          projection.Basis(opts.basis),
		Scope:          projection.Scope(opts.scope),
		SEEDirect:      opts.seeDirect,
		SEEIndirect:    opts.seeIndirect,
		CNCode:         opts.cnCode,
		Sector:         opts.sector,
		CertScenario:   refdata.PriceScenario(opts.certScenario),
		CreditEligible: opts.creditEligible,
		CreditScenario: refdata.PriceScenario(opts.creditScenario),
		ImportedTonnes: opts.imports,
	}

	if opts.inputPath == "" {
		return cfg, nil
	}

	fp, err := footprintFromDocument(ctx, opts, tables)
	if err != nil {
		return projection.Config{}, err
	}
	cfg.SEEDirect = fp.SEEDirect
	cfg.SEEIndirect = fp.SEEIndirect
	if fp.PrecursorCO2e > 0 {
		// Precursor emissions count as direct for projection purposes,
		// matching how embedded emissions of complex goods are declared.
		cfg.SEEDirect = fp.SEE - fp.SEEIndirect
	}
	return cfg, nil
}

// footprintFromDocument runs the full emissions-and-allocation pipeline
// and selects the requested product.
func footprintFromDocument(ctx context.Context, opts *projectionOptions, tables refdata.Tables) (allocation.ProductFootprint, error) {
	doc, err := loadDocument(opts.inputPath)
	if err != nil {
		return allocation.ProductFootprint{}, err
	}
	if len(doc.Products) == 0 {
		return allocation.ProductFootprint{}, fmt.Errorf("activity file has no products")
	}

	appCfg := configFromContext(ctx)
	settings := allocation.Settings{TreatResidueAsWaste: opts.residueWaste || appCfg.Allocation.TreatResidueAsWaste}

	result := emissions.CalculateTotal(ctx, doc.Activity, tables)
	footprints := allocation.CalculatePCF(ctx, result, doc.Products, settings)

	if opts.product == "" {
		return footprints[0], nil
	}
	for _, fp := range footprints {
		if fp.ProductID == opts.product || fp.Name == opts.product {
			return fp, nil
		}
	}
	return allocation.ProductFootprint{}, fmt.Errorf("product %q not found in activity file", opts.product)
}

func renderProjection(cmd *cobra.Command, proj projection.Projection) {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, tabwriterPadding, ' ', 0)

	fmt.Fprintln(out, sectionStyle.Render("COST PROJECTION"))
	fmt.Fprintln(w, headerStyle.Render("YEAR\tINTENSITY\tEMBEDDED (t)\tPAYABLE\tPAYABLE (t)\tPRICE\tGROSS\tDEDUCTION\tNET\t€/t"))
	for _, row := range proj.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Year,
			render.FormatFloat(row.Intensity, 3),
			render.FormatFloat(row.EmbeddedT, 1),
			render.FormatPercent(row.PayableShare),
			render.FormatFloat(row.PayableT, 1),
			render.FormatEuro(row.CertPrice),
			render.FormatEuro(row.GrossCost),
			render.FormatEuro(row.Deduction),
			render.FormatEuro(row.NetCost),
			render.FormatEuro(row.CostPerTonne))
	}
	w.Flush()

	fmt.Fprintln(out)
	fmt.Fprintln(out, sectionStyle.Render("TOTALS 2026-2034"))
	fmt.Fprintf(w, "Embedded\t%s\n", render.FormatTonnes(proj.Totals.EmbeddedT))
	fmt.Fprintf(w, "Payable\t%s\n", render.FormatTonnes(proj.Totals.PayableT))
	fmt.Fprintf(w, "Gross cost\t%s\n", render.FormatEuro(proj.Totals.GrossCost))
	fmt.Fprintf(w, "Deductions\t%s\n", render.FormatEuro(proj.Totals.Deduction))
	fmt.Fprintf(w, "Net cost\t%s\n", render.FormatEuro(proj.Totals.NetCost))
	w.Flush()
	fmt.Fprintln(out, faintStyle.Render(fmt.Sprintf("run %s, basis %s, scope %s, %s EUR net over the period",
		proj.RunID, proj.Config.Basis, proj.Config.Scope, render.FormatLarge(proj.Totals.NetCost))))
}
