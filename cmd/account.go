package cmd

import (
	"fmt"

	"github.com/bnema/bank-accounts-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}

	cmd.AddCommand(
		newAccountCreateCmd(app),
		newAccountRemoveCmd(app),
		newAccountShowCmd(app),
		newAccountListCmd(app),
		newAccountDepositCmd(app),
		newAccountWithdrawCmd(app),
		newAccountInterestCmd(app),
		newAccountRateCmd(app),
	)

	return cmd
}

func newAccountCreateCmd(app *app) *cobra.Command {
	var (
		number  int
		balance float64
		rate    float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := domain.NewAccount(
				domain.AccountNumber(number),
				domain.WithBalance(balance),
				domain.WithInterestRate(rate),
			)
			if err != nil {
				return err
			}

			if err := app.manager.AddAccount(cmd.Context(), account); err != nil {
				return err
			}
			app.log.Debug("account created", "number", number, "balance", balance, "interest_rate", rate)

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "created account %s\n", account.Number())
			return err
		},
	}

	cmd.Flags().IntVar(&number, "number", 0, "Account number")
	cmd.Flags().Float64Var(&balance, "balance", 0, "Initial balance")
	cmd.Flags().Float64Var(&rate, "rate", domain.DefaultInterestRate, "Interest rate between 0.00 and 0.10")
	_ = cmd.MarkFlagRequired("number")

	return cmd
}

func newAccountRemoveCmd(app *app) *cobra.Command {
	var number int

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove an empty account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// No stored account can carry a non-positive number.
			if number <= 0 {
				return domain.ErrAccountDoesNotExist
			}

			account, found, err := app.manager.GetByID(cmd.Context(), domain.AccountNumber(number))
			if err != nil {
				return err
			}
			if !found {
				// Let the manager report the missing account.
				account, err = domain.NewAccount(domain.AccountNumber(number))
				if err != nil {
					return err
				}
			}

			if err := app.manager.RemoveAccount(cmd.Context(), account); err != nil {
				return err
			}
			app.log.Debug("account removed", "number", number)

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed account %d\n", number)
			return err
		},
	}

	cmd.Flags().IntVar(&number, "number", 0, "Account number")
	_ = cmd.MarkFlagRequired("number")

	return cmd
}

func newAccountShowCmd(app *app) *cobra.Command {
	var (
		number int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, found, err := app.manager.GetByID(cmd.Context(), domain.AccountNumber(number))
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("account %d: %w", number, domain.ErrAccountNotFound)
			}

			return writeAccountsOutput(cmd, app, []*domain.Account{account}, asJSON)
		},
	}

	cmd.Flags().IntVar(&number, "number", 0, "Account number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	_ = cmd.MarkFlagRequired("number")

	return cmd
}

func newAccountListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := app.manager.GetAll(cmd.Context())
			if err != nil {
				return err
			}

			return writeAccountsOutput(cmd, app, accounts, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}

func newAccountDepositCmd(app *app) *cobra.Command {
	return newAmountCmd(app, "deposit", "Deposit an amount", app.manager.Deposit)
}

func newAccountWithdrawCmd(app *app) *cobra.Command {
	return newAmountCmd(app, "withdraw", "Withdraw an amount", app.manager.Withdraw)
}

func newAmountCmd(app *app, use, short string, apply amountFunc) *cobra.Command {
	var (
		number int
		amount float64
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := apply(cmd.Context(), domain.AccountNumber(number), amount)
			if err != nil {
				return err
			}
			app.log.Debug("account "+use, "number", number, "amount", amount, "balance", account.Balance())

			return writeBalance(cmd, account)
		},
	}

	cmd.Flags().IntVar(&number, "number", 0, "Account number")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount")
	_ = cmd.MarkFlagRequired("number")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newAccountInterestCmd(app *app) *cobra.Command {
	var number int

	cmd := &cobra.Command{
		Use:   "interest",
		Short: "Add interest to an account balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := app.manager.AddInterest(cmd.Context(), domain.AccountNumber(number))
			if err != nil {
				return err
			}
			app.log.Debug("interest added", "number", number, "balance", account.Balance())

			return writeBalance(cmd, account)
		},
	}

	cmd.Flags().IntVar(&number, "number", 0, "Account number")
	_ = cmd.MarkFlagRequired("number")

	return cmd
}

func newAccountRateCmd(app *app) *cobra.Command {
	var (
		number int
		rate   float64
	)

	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Set the interest rate of an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := app.manager.SetInterestRate(cmd.Context(), domain.AccountNumber(number), rate)
			if err != nil {
				return err
			}
			app.log.Debug("interest rate set", "number", number, "interest_rate", rate)

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "account %s interest rate %s\n", account.Number(), formatRate(account.InterestRate()))
			return err
		},
	}

	cmd.Flags().IntVar(&number, "number", 0, "Account number")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Interest rate between 0.00 and 0.10")
	_ = cmd.MarkFlagRequired("number")
	_ = cmd.MarkFlagRequired("rate")

	return cmd
}
