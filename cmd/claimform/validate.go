package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/claimform/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate <form>",
	Short: "Validate submitted answers against a form",
	Long: `Runs every rule configured for the form's fields, skipping fields hidden by an
unanswered fold-out, and prints the failures. Exits with status 1 when any rule fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		valuesPath, _ := cmd.Flags().GetString("values")
		existingPath, _ := cmd.Flags().GetString("existing")
		pretty, _ := cmd.Flags().GetBool("pretty")
		if !cmd.Flags().Changed("pretty") {
			pretty = cli.IsTerminal(cmd.OutOrStdout())
		}

		request, err := cli.LoadFieldValues(valuesPath)
		if err != nil {
			return err
		}
		existing, err := cli.LoadFieldValues(existingPath)
		if err != nil {
			return err
		}

		engine, err := newEngine()
		if err != nil {
			return err
		}
		summary, err := engine.Validate(args[0], request, existing)
		if err != nil {
			return err
		}

		if err := cli.PrintSummary(cmd.OutOrStdout(), args[0], summary, pretty); err != nil {
			return err
		}
		if summary.HasFormErrors() {
			cmd.SilenceErrors = true
			return exitError{code: 1}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().String("values", "", "YAML file with the submitted answers")
	validateCmd.Flags().String("existing", "", "YAML file with answers already stored for the claim")
	validateCmd.Flags().Bool("pretty", false, "Render the summary as formatted markdown (default: when stdout is a terminal)")
}
