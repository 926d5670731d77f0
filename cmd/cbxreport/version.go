package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cbxreport/pkg/contracts"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display cbxreport version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), contracts.GetFullVersionString())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Report format %s\n", contracts.DataFormatVersion)
		},
	}
}
