package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dfguard/dfguard/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dfguard %s\n", version.Full())
		},
	}
}
