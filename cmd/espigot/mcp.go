package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/espigot/internal/cli"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts espigot as an MCP Server over Standard Input/Output.
Tools:
- e_digits: e to a given precision, with either engine.
- cf_terms: partial quotients of the continued fraction of e.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		debug, _ := cmd.Flags().GetBool("debug")
		return cli.RunMCP(cli.RunOptions{Config: cfg, Debug: debug})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Int("max-digits", 0, "Largest precision accepted by e_digits")
}
