package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/espigot/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves digits over HTTP:
  GET /digits?n=N&engine=E&format=text|json&raw=true
  GET /terms?n=N
  GET /health, /info, /metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		debug, _ := cmd.Flags().GetBool("debug")

		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		return cli.RunServe(sc, cli.RunOptions{Config: cfg, Debug: debug})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default :8080)")
	serveCmd.Flags().Int("max-digits", 0, "Largest n accepted by /digits and /terms")
}
