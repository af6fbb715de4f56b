package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/aretw0/espigot/internal/cli"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that both engines produce the same digits",
	Long:  `Runs the series and cfrac engines side by side and compares every digit.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		debug, _ := cmd.Flags().GetBool("debug")

		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		rep, err := cli.RunVerify(sc, cli.RunOptions{
			Config: cfg,
			Debug:  debug,
			Output: cmd.OutOrStdout(),
		})
		if err != nil {
			return err
		}
		if !rep.Match {
			return errors.New("engines disagree")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().IntP("digits", "n", 0, "Number of decimal places to compare (default from config)")
}
