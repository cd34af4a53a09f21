package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	accountsrender "github.com/bnema/bank-accounts-cli/internal/adapters/render/accounts"
	"github.com/bnema/bank-accounts-cli/internal/domain"
	"github.com/spf13/cobra"
)

type amountFunc func(ctx context.Context, number domain.AccountNumber, amount float64) (*domain.Account, error)

type accountJSON struct {
	Number       int     `json:"number"`
	Balance      float64 `json:"balance"`
	InterestRate float64 `json:"interest_rate"`
}

func writeAccountsOutput(cmd *cobra.Command, app *app, accounts []*domain.Account, asJSON bool) error {
	if asJSON {
		out := make([]accountJSON, 0, len(accounts))
		for _, account := range accounts {
			out = append(out, accountJSON{
				Number:       int(account.Number()),
				Balance:      account.Balance(),
				InterestRate: account.InterestRate(),
			})
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	rendered, err := app.accountsRenderer(accounts, accountsrender.RenderOptions{})
	if err != nil {
		return fmt.Errorf("render accounts: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func writeBalance(cmd *cobra.Command, account *domain.Account) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "account %s balance %s\n", account.Number(), formatAmount(account.Balance()))
	return err
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}
