package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/claimform"
	"github.com/aretw0/claimform/internal/cli"
	"github.com/aretw0/claimform/pkg/observability"
)

var (
	cfgFile string
	cfg     cli.Config
)

var rootCmd = &cobra.Command{
	Use:   "claimform",
	Short: "claimform validates and assembles benefit claim forms",
	Long: `claimform interprets the configuration of a claim form: it validates submitted
answers against the rules in property files, evaluates question expressions and
assembles the claim XML document from an ordered mapping list.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := cli.LoadConfig(viper.New(), cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exit exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./claimform.yaml)")
	rootCmd.PersistentFlags().StringSlice("messages", nil, "Property files holding the form configuration, merged in order")
	rootCmd.PersistentFlags().String("mappings", "", "Directory containing mapping files")
	rootCmd.PersistentFlags().String("root", claimform.DefaultRootTag, "Root element of assembled documents")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
}

// newEngine builds the engine for a command from the loaded configuration.
func newEngine() (*claimform.Engine, error) {
	logger, err := cli.CreateLogger(cfg)
	if err != nil {
		return nil, err
	}
	return cli.NewEngine(cfg, logger, observability.NewMetrics(nil))
}

// exitError carries a process exit code without printing anything more.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }
