package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func Execute() error {
	return runRoot(newRootCmd())
}

func newRootCmd() (*cobra.Command, func() error) {
	rootCmd := &cobra.Command{
		Use:           "ba",
		Short:         "Bank Accounts CLI (ba): manage accounts, balances and transfers",
		Long:          "ba (Bank Accounts CLI) creates and removes bank accounts, moves money between them and applies interest, storing them in a TOML file or a SQLite database.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd, func() error { return nil }
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountCmd(app),
		newTransferCmd(app),
	)

	return rootCmd, app.close
}

// runRoot closes the repository whether or not the command failed.
func runRoot(rootCmd *cobra.Command, closeApp func() error) error {
	err := rootCmd.Execute()
	if closeErr := closeApp(); closeErr != nil {
		return errors.Join(err, fmt.Errorf("close account repository: %w", closeErr))
	}

	return err
}
