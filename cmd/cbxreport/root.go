package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cbxreport/pkg/contracts"
)

var cfgFile string

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cbxreport",
		Short: "cbxreport - take-off archive reporting",
		Long: `cbxreport reads a folder of Buildsoft take-off archives (.CBX) and
republishes their trade hierarchies, estimating components and rate items as
an Excel workbook with an "Original Data" and an "Unpivoted Data" sheet.`,
		Version:       contracts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} v{{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML); CBX_* environment variables override it")

	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
