package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the ggr-web command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ggr-web",
		Short: "GGR Music Group website",
		Long: `ggr-web serves the GGR Music Group website: landing page, shows,
photo gallery and the subscription form that forwards sign-ups to the
subscriber spreadsheet.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCmd())

	return cmd
}
