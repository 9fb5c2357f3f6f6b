package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/claimform/internal/cli"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a question argument expression",
	Long: `Evaluates one expression, either a "${cads:...}" function call or a plain
variable name, against the claim values and prints the result.`,
	Example: `  claimform eval "\${cads:dateOffsetFromCurrent('dd MMMM yyyy', '-3 months')}"
  claimform eval '${carerFirstName}' --values claim.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		valuesPath, _ := cmd.Flags().GetString("values")

		values, err := cli.LoadClaimValues(valuesPath)
		if err != nil {
			return err
		}
		engine, err := newEngine()
		if err != nil {
			return err
		}

		result, err := engine.Evaluate(args[0], values)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), result)
		return err
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().String("values", "", "YAML file with the claim values")
}
