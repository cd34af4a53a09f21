package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/bank-accounts-cli/internal/domain"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountCreateThenListShowsAccount(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "account", "create", "--number", "1", "--balance", "123.45")
	require.NoError(t, err)
	assert.Contains(t, stdout, "created account 1")

	stdout, _, err = executeCLI(t, home, "account", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "accounts: 1")
	assert.Contains(t, stdout, "Account 1")
	assert.Contains(t, stdout, "balance: 123.45")
}

func TestAccountCreateRequiresNumberFlag(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "account", "create")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"number\" not set")
}

func TestAccountCreateRejectsInvalidNumber(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "account", "create", "--number", "0")
	require.ErrorIs(t, err, domain.ErrAccountNumberNotPositive)
	assert.EqualError(t, err, "Account number must be positive")
}

func TestAccountCreateDuplicateFails(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))

	_, _, err := executeCLI(t, home, "account", "create", "--number", "1")
	require.ErrorIs(t, err, domain.ErrAccountNumberInUse)

	accounts := listAccountsJSON(t, home)
	require.Len(t, accounts, 2)
	assert.Equal(t, 123.45, accounts[0].Balance)
}

func TestAccountShowJSONOutput(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))

	stdout, _, err := executeCLI(t, home, "account", "show", "--number", "1", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"number\": 1")
	assert.Contains(t, stdout, "\"interest_rate\": 0.01")
}

func TestAccountShowMissingAccount(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "account", "show", "--number", "9")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestTransferMovesBalance(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))

	stdout, _, err := executeCLI(t, home, "transfer", "--from", "1", "--to", "2", "--amount", "123.45")
	require.NoError(t, err)
	assert.Contains(t, stdout, "transferred 123.45 from account 1 to account 2")

	accounts := listAccountsJSON(t, home)
	require.Len(t, accounts, 2)
	assert.Equal(t, 0.0, accounts[0].Balance)
	assert.Equal(t, 123.45, accounts[1].Balance)
}

func TestTransferInsufficientFundsLeavesBalances(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))

	_, _, err := executeCLI(t, home, "transfer", "--from", "1", "--to", "2", "--amount", "200")
	require.ErrorIs(t, err, domain.ErrWithdrawExceedsBalance)

	accounts := listAccountsJSON(t, home)
	assert.Equal(t, 123.45, accounts[0].Balance)
	assert.Equal(t, 0.0, accounts[1].Balance)
}

func TestTransferNegativeAmountFails(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))

	_, _, err := executeCLI(t, home, "transfer", "--from", "1", "--to", "2", "--amount=-5")
	require.ErrorIs(t, err, domain.ErrNegativeTransfer)
	assert.EqualError(t, err, "Amount to transfer cannot be negative")
}

func TestAccountRemoveNonEmptyFails(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))

	_, _, err := executeCLI(t, home, "account", "remove", "--number", "1")
	require.ErrorIs(t, err, domain.ErrFailedPrecondition)
	assert.EqualError(t, err, "Account must be empty before removal")
	assert.Len(t, listAccountsJSON(t, home), 2)
}

func TestAccountRemoveMissingFails(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "account", "remove", "--number", "3")
	require.ErrorIs(t, err, domain.ErrAccountDoesNotExist)
}

func TestAccountRemoveNonPositiveNumberReportsMissingAccount(t *testing.T) {
	for _, number := range []string{"0", "-4"} {
		t.Run(number, func(t *testing.T) {
			_, _, err := executeCLI(t, t.TempDir(), "account", "remove", "--number="+number)
			require.ErrorIs(t, err, domain.ErrAccountDoesNotExist)
			assert.EqualError(t, err, "Account does not exist")
		})
	}
}

func TestAccountRemoveEmptyAccount(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))

	stdout, _, err := executeCLI(t, home, "account", "remove", "--number", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "removed account 2")

	accounts := listAccountsJSON(t, home)
	require.Len(t, accounts, 1)
	assert.Equal(t, 1, accounts[0].Number)
}

func TestAccountDepositWithdrawInterestAndRate(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))

	stdout, _, err := executeCLI(t, home, "account", "deposit", "--number", "2", "--amount", "100")
	require.NoError(t, err)
	assert.Contains(t, stdout, "account 2 balance 100.00")

	stdout, _, err = executeCLI(t, home, "account", "withdraw", "--number", "2", "--amount", "50")
	require.NoError(t, err)
	assert.Contains(t, stdout, "account 2 balance 50.00")

	stdout, _, err = executeCLI(t, home, "account", "rate", "--number", "2", "--rate", "0.1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "account 2 interest rate 10.00%")

	stdout, _, err = executeCLI(t, home, "account", "interest", "--number", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "account 2 balance 55.00")
}

func TestAccountRateOutOfRangeFails(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))

	_, _, err := executeCLI(t, home, "account", "rate", "--number", "1", "--rate", "0.5")
	require.ErrorIs(t, err, domain.ErrInterestRateOutOfRange)
}

func TestSQLiteStorageDriver(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BA_STORAGE_DRIVER", "sqlite")

	_, _, err := executeCLI(t, home, "account", "create", "--number", "5", "--balance", "10")
	require.NoError(t, err)

	accounts := listAccountsJSON(t, home)
	require.Len(t, accounts, 1)
	assert.Equal(t, 5, accounts[0].Number)

	_, err = os.Stat(filepath.Join(home, ".bank-accounts", "accounts.db"))
	require.NoError(t, err)
}

func TestRunRootClosesRepositoryWhenCommandFails(t *testing.T) {
	commandErr := errors.New("boom")
	root := &cobra.Command{
		Use:           "ba",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return commandErr
		},
	}
	root.SetArgs([]string{})

	closed := false
	err := runRoot(root, func() error {
		closed = true
		return nil
	})

	require.ErrorIs(t, err, commandErr)
	assert.True(t, closed)
}

func TestRunRootReportsCloseError(t *testing.T) {
	closeErr := errors.New("database is locked")
	root := &cobra.Command{
		Use: "ba",
		RunE: func(_ *cobra.Command, _ []string) error {
			return nil
		},
	}
	root.SetArgs([]string{})

	err := runRoot(root, func() error { return closeErr })
	require.ErrorIs(t, err, closeErr)
	assert.ErrorContains(t, err, "close account repository")
}

func TestSQLiteFailedCommandClosesDatabase(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BA_STORAGE_DRIVER", "sqlite")

	_, _, err := executeCLI(t, home, "account", "create", "--number", "5", "--balance", "10")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "account", "withdraw", "--number", "5", "--amount", "100")
	require.ErrorIs(t, err, domain.ErrWithdrawExceedsBalance)

	_, err = os.Stat(filepath.Join(home, ".bank-accounts", "accounts.db-wal"))
	assert.True(t, os.IsNotExist(err), "WAL file left behind: %v", err)
}

func TestInvalidConfigSurfacesError(t *testing.T) {
	t.Setenv("BA_STORAGE_DRIVER", "postgres")

	_, _, err := executeCLI(t, t.TempDir(), "account", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root, closeApp := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := runRoot(root, closeApp)
	return stdout.String(), stderr.String(), err
}

func listAccountsJSON(t *testing.T, home string) []accountJSON {
	t.Helper()

	stdout, _, err := executeCLI(t, home, "account", "list", "--json")
	require.NoError(t, err)

	var accounts []accountJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &accounts))
	return accounts
}

func writeAccountsFixture(home string) error {
	configDir := filepath.Join(home, ".bank-accounts")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	accounts := `version = 1

[[accounts]]
number = 1
balance = 123.45
interest_rate = 0.01

[[accounts]]
number = 2
balance = 0.0
interest_rate = 0.01
`

	return os.WriteFile(filepath.Join(configDir, "accounts.toml"), []byte(accounts), 0o644)
}
