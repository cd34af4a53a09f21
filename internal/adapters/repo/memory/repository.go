package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/bank-accounts-cli/internal/domain"
	"github.com/bnema/bank-accounts-cli/internal/ports"
)

type Repository struct {
	mu       sync.RWMutex
	order    []domain.AccountNumber
	accounts map[domain.AccountNumber]*domain.Account
}

var _ ports.AccountRepository = (*Repository)(nil)

func NewRepository() *Repository {
	return &Repository{accounts: map[domain.AccountNumber]*domain.Account{}}
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order), nil
}

func (r *Repository) Add(ctx context.Context, account *domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.Number()]; ok {
		return fmt.Errorf("account %s already stored", account.Number())
	}

	r.accounts[account.Number()] = account.Clone()
	r.order = append(r.order, account.Number())
	return nil
}

func (r *Repository) Remove(ctx context.Context, account *domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.Number()]; !ok {
		return nil
	}

	delete(r.accounts, account.Number())
	for i, number := range r.order {
		if number == account.Number() {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, number domain.AccountNumber) (*domain.Account, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[number]
	if !ok {
		return nil, false, nil
	}

	return account.Clone(), true, nil
}

func (r *Repository) GetAll(ctx context.Context) ([]*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]*domain.Account, 0, len(r.order))
	for _, number := range r.order {
		accounts = append(accounts, r.accounts[number].Clone())
	}

	return accounts, nil
}

func (r *Repository) Update(ctx context.Context, account *domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.Number()]; !ok {
		return fmt.Errorf("update account %s: %w", account.Number(), domain.ErrAccountNotFound)
	}

	r.accounts[account.Number()] = account.Clone()
	return nil
}
