package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/claimform/internal/cli"
	"github.com/aretw0/claimform/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <form>",
	Short: "Export the fold-out dependency graph",
	Long: `Outputs a Mermaid diagram (graph TD) of the form's fields and the answers that
reveal them. With --values, fields active for those answers are highlighted and
fields failing validation are marked.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		valuesPath, _ := cmd.Flags().GetString("values")

		engine, err := newEngine()
		if err != nil {
			return err
		}
		form, err := engine.Form(args[0])
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if valuesPath != "" {
			values, err := cli.LoadFieldValues(valuesPath)
			if err != nil {
				return err
			}
			overlay = &graph.GraphOverlay{}
			for _, field := range form.Fields() {
				if form.Graph().IsActive(field, values) {
					overlay.ActiveFields = append(overlay.ActiveFields, field)
				}
			}
			summary, err := engine.Validate(args[0], values, nil)
			if err != nil {
				return err
			}
			for _, e := range summary.FormErrors() {
				overlay.FailedFields = append(overlay.FailedFields, e.ID)
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(form.Graph(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("values", "", "YAML file with answers to overlay on the graph")
}
