package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carbonforge/cbamcalc/internal/formula"
	"github.com/carbonforge/cbamcalc/internal/render"
)

// NewFormulaCmd creates the "formula" subcommand group for working with
// emission-block formulas outside a full activity export.
func NewFormulaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formula",
		Short: "Evaluate and validate emission-block formulas",
	}

	cmd.AddCommand(
		newFormulaEvalCmd(),
		newFormulaValidateCmd(),
		newFormulaVarsCmd(),
	)

	return cmd
}

func newFormulaEvalCmd() *cobra.Command {
	var vars []string

	cmd := &cobra.Command{
		Use:     "eval <expression>",
		Short:   "Evaluate a formula with the given variable values",
		Example: `  cbamcalc formula eval "quantity * ncv / 1000" --var quantity=500 --var ncv=48`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseVarFlags(vars)
			if err != nil {
				return err
			}

			result := formula.Evaluate(args[0], values)
			if outputFormat(cmd.Context()) == "json" {
				return printJSON(cmd, result)
			}
			if result.Err != "" {
				return fmt.Errorf("formula error: %s", result.Err)
			}
			cmd.Println(render.FormatFloat(result.Value, 6))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, "Variable binding name=value (repeatable)")

	return cmd
}

func newFormulaValidateCmd() *cobra.Command {
	var known []string

	cmd := &cobra.Command{
		Use:   "validate <expression>",
		Short: "Check a formula's syntax against known parameter names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := formula.Validate(args[0], known)
			if outputFormat(cmd.Context()) == "json" {
				return printJSON(cmd, result)
			}
			if result.Valid {
				cmd.Println("valid")
				return nil
			}
			if result.Err != "" {
				return fmt.Errorf("invalid formula: %s", result.Err)
			}
			return fmt.Errorf("unknown variables: %s", strings.Join(result.Unknown, ", "))
		},
	}

	cmd.Flags().StringSliceVar(&known, "known", nil, "Known parameter names (comma-separated)")

	return cmd
}

func newFormulaVarsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vars <expression>",
		Short: "List the variables a formula references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := formula.ExtractVariables(args[0])
			if outputFormat(cmd.Context()) == "json" {
				return printJSON(cmd, names)
			}
			for _, name := range names {
				cmd.Println(name)
			}
			return nil
		},
	}
}

// parseVarFlags turns repeated name=value flags into a variable map.
func parseVarFlags(pairs []string) (map[string]float64, error) {
	values := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --var %q, expected name=value", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for variable %q: %w", name, err)
		}
		values[strings.TrimSpace(name)] = v
	}
	return values, nil
}
