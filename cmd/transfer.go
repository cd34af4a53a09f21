package cmd

import (
	"fmt"

	"github.com/bnema/bank-accounts-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newTransferCmd(app *app) *cobra.Command {
	var (
		from   int
		to     int
		amount float64
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move an amount from one account to another",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.manager.Transfer(cmd.Context(), domain.AccountNumber(from), domain.AccountNumber(to), amount); err != nil {
				return err
			}
			app.log.Debug("transfer completed", "from", from, "to", to, "amount", amount)

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "transferred %s from account %d to account %d\n", formatAmount(amount), from, to)
			return err
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, "Source account number")
	cmd.Flags().IntVar(&to, "to", 0, "Destination account number")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount to transfer")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
