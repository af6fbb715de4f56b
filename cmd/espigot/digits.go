package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/espigot/internal/cli"
)

var digitsCmd = &cobra.Command{
	Use:   "digits",
	Short: "Print the digits of e",
	Long: `Prints "2." followed by the requested number of decimal places of e.
Output wraps at --width columns unless --raw is set. Piping into a command
that exits early (such as head) ends the run quietly.`,
	Args: cobra.NoArgs,
	RunE: runDigits,
}

func runDigits(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	debug, _ := cmd.Flags().GetBool("debug")

	sc := cli.NewSignalContext(cmd.Context())
	defer sc.Cancel()

	return cli.RunDigits(sc, cli.RunOptions{
		Config: cfg,
		Debug:  debug,
		Output: cmd.OutOrStdout(),
	})
}

func addDigitsFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("digits", "n", 0, "Number of decimal places (default from config, 1000)")
	cmd.Flags().Bool("raw", false, "Write all digits on a single line")
	cmd.Flags().Int("width", 0, "Wrap column, counting the leading \"2.\" (default 60)")
}

func init() {
	rootCmd.AddCommand(digitsCmd)
	addDigitsFlags(digitsCmd)

	// Printing digits is the default action.
	addDigitsFlags(rootCmd)
	rootCmd.Args = cobra.NoArgs
	rootCmd.RunE = runDigits
}
