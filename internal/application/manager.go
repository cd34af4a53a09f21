package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/bank-accounts-cli/internal/domain"
	"github.com/bnema/bank-accounts-cli/internal/ports"
)

type Manager struct {
	repo ports.AccountRepository
}

func NewManager(repo ports.AccountRepository) (*Manager, error) {
	if repo == nil {
		return nil, domain.ErrMissingRepository
	}

	return &Manager{repo: repo}, nil
}

func (m *Manager) AddAccount(ctx context.Context, account *domain.Account) error {
	if account == nil {
		return domain.ErrNilAccount
	}

	_, found, err := m.repo.GetByID(ctx, account.Number())
	if err != nil {
		return fmt.Errorf("get account by id: %w", err)
	}
	if found {
		return domain.ErrAccountNumberInUse
	}

	if err := m.repo.Add(ctx, account); err != nil {
		return fmt.Errorf("add account: %w", err)
	}

	return nil
}

func (m *Manager) RemoveAccount(ctx context.Context, account *domain.Account) error {
	if account == nil {
		return domain.ErrNoAccountToRemove
	}

	stored, found, err := m.repo.GetByID(ctx, account.Number())
	if err != nil {
		return fmt.Errorf("get account by id: %w", err)
	}
	if !found {
		return domain.ErrAccountDoesNotExist
	}
	if stored.Balance() > 0 {
		return domain.ErrAccountNotEmpty
	}

	if err := m.repo.Remove(ctx, account); err != nil {
		return fmt.Errorf("remove account: %w", err)
	}

	return nil
}

func (m *Manager) GetByID(ctx context.Context, number domain.AccountNumber) (*domain.Account, bool, error) {
	account, found, err := m.repo.GetByID(ctx, number)
	if err != nil {
		return nil, false, fmt.Errorf("get account by id: %w", err)
	}

	return account, found, nil
}

func (m *Manager) GetAll(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := m.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return accounts, nil
}

func (m *Manager) Count(ctx context.Context) (int, error) {
	count, err := m.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}

	return count, nil
}

func (m *Manager) Transfer(ctx context.Context, from, to domain.AccountNumber, amount float64) error {
	source, sourceFound, err := m.repo.GetByID(ctx, from)
	if err != nil {
		return fmt.Errorf("get source account: %w", err)
	}
	destination, destinationFound, err := m.repo.GetByID(ctx, to)
	if err != nil {
		return fmt.Errorf("get destination account: %w", err)
	}
	if !sourceFound || !destinationFound {
		return domain.ErrNonExistingAccount
	}
	if !(amount >= 0) {
		return domain.ErrNegativeTransfer
	}

	originalSource := source.Clone()

	if err := source.Withdraw(amount); err != nil {
		return err
	}
	if from == to {
		destination = source
	}
	if err := destination.Deposit(amount); err != nil {
		return err
	}

	if err := m.repo.Update(ctx, source); err != nil {
		return fmt.Errorf("update source account: %w", err)
	}
	if err := m.repo.Update(ctx, destination); err != nil {
		if rollbackErr := m.repo.Update(ctx, originalSource); rollbackErr != nil {
			return fmt.Errorf("update destination account and restore source account: %w", errors.Join(err, rollbackErr))
		}

		return fmt.Errorf("update destination account: %w", err)
	}

	return nil
}

func (m *Manager) Deposit(ctx context.Context, number domain.AccountNumber, amount float64) (*domain.Account, error) {
	return m.mutate(ctx, number, "deposit", func(account *domain.Account) error {
		return account.Deposit(amount)
	})
}

func (m *Manager) Withdraw(ctx context.Context, number domain.AccountNumber, amount float64) (*domain.Account, error) {
	return m.mutate(ctx, number, "withdraw", func(account *domain.Account) error {
		return account.Withdraw(amount)
	})
}

func (m *Manager) AddInterest(ctx context.Context, number domain.AccountNumber) (*domain.Account, error) {
	return m.mutate(ctx, number, "interest", func(account *domain.Account) error {
		account.AddInterest()
		return nil
	})
}

func (m *Manager) SetInterestRate(ctx context.Context, number domain.AccountNumber, rate float64) (*domain.Account, error) {
	return m.mutate(ctx, number, "interest rate", func(account *domain.Account) error {
		return account.SetInterestRate(rate)
	})
}

func (m *Manager) mutate(ctx context.Context, number domain.AccountNumber, what string, apply func(*domain.Account) error) (*domain.Account, error) {
	account, found, err := m.repo.GetByID(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("get account by id: %w", err)
	}
	if !found {
		return nil, domain.ErrNonExistingAccount
	}

	if err := apply(account); err != nil {
		return nil, err
	}

	if err := m.repo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("save account %s: %w", what, err)
	}

	return account, nil
}
