package ports

import (
	"context"

	"github.com/bnema/bank-accounts-cli/internal/domain"
)

type AccountRepository interface {
	Count(ctx context.Context) (int, error)
	Add(ctx context.Context, account *domain.Account) error
	Remove(ctx context.Context, account *domain.Account) error
	// A missing key is found == false with a nil error.
	GetByID(ctx context.Context, number domain.AccountNumber) (*domain.Account, bool, error)
	GetAll(ctx context.Context) ([]*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
}
