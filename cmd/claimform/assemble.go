package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/aretw0/claimform/internal/cli"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble the claim XML document",
	Long: `Reads claim values from YAML, places them with the named mapping list and prints
the resulting XML document. A transaction id is generated when the values carry none.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		valuesPath, _ := cmd.Flags().GetString("values")
		mapping, _ := cmd.Flags().GetString("mapping")
		pretty, _ := cmd.Flags().GetBool("pretty")
		noDecl, _ := cmd.Flags().GetBool("no-decl")
		txKey, _ := cmd.Flags().GetString("transaction-key")
		txID, _ := cmd.Flags().GetString("transaction-id")

		values, err := cli.LoadClaimValues(valuesPath)
		if err != nil {
			return err
		}
		if txID != "" {
			values[txKey] = txID
		} else if _, ok := values.String(txKey); !ok {
			values[txKey] = uuid.New().String()
		}

		engine, err := newEngine()
		if err != nil {
			return err
		}
		doc, err := engine.Assemble(values, mapping)
		if err != nil {
			return err
		}

		out, err := doc.Render(!noDecl, pretty)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(assembleCmd)

	assembleCmd.Flags().String("values", "", "YAML file with the claim values")
	assembleCmd.Flags().String("mapping", "claim", "Name of the mapping list")
	assembleCmd.Flags().Bool("pretty", false, "Indent the document")
	assembleCmd.Flags().Bool("no-decl", false, "Omit the XML declaration")
	assembleCmd.Flags().String("transaction-key", "transactionId", "Value key holding the transaction id")
	assembleCmd.Flags().String("transaction-id", "", "Transaction id (default: a random UUID)")
}
